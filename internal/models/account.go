package models

// Account is a bank account row. Balances are whole integer units; no
// currency subdivision is modeled.
type Account struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountNumber string `gorm:"column:account_number;size:50;not null;unique" json:"account_number"`
	Balance       int64  `gorm:"column:balance;not null;default:0" json:"balance"`
}

func (Account) TableName() string { return "accounts" }

// AccountBalance is the read-model row returned by balance listings.
type AccountBalance struct {
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
}
