package models

import (
	"time"

	"github.com/google/uuid"
)

// Transfer represents an intent to move money between two accounts.
// It is consumed by the transfer coordinator and never persisted.
type Transfer struct {
	ID            uuid.UUID
	FromAccount   string
	ToAccount     string
	Amount        int64
	SimulateFault bool
	CreatedAt     time.Time
}

// NewTransfer builds a transfer intent with a fresh ID and timestamp.
func NewTransfer(fromAccount, toAccount string, amount int64) Transfer {
	return Transfer{
		ID:          uuid.New(),
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}
}
