package interfaces

import (
	"context"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
)

// AccountStore is the storage surface the transfer coordinator drives.
// Implementations exist for postgres, embedded sqlite, GORM over either
// engine, and an in-memory store used in tests.
type AccountStore interface {
	// Begin opens a transaction. Every mutation of a transfer happens
	// through the returned handle; nothing is visible to other readers
	// until Commit.
	Begin(ctx context.Context) (AccountTx, error)

	// ListBalances reads committed state only, sorted by account number
	// ascending.
	ListBalances(ctx context.Context) ([]models.AccountBalance, error)
}

// AccountTx is a single open transaction against the accounts table.
// After Commit or Rollback the handle is dead.
type AccountTx interface {
	// GetBalance reports the balance of an account and whether the
	// account exists.
	GetBalance(ctx context.Context, accountNumber string) (int64, bool, error)

	// AdjustBalance adds delta (which may be negative) to an account
	// balance via a single conditional update. It reports false when no
	// row matched the account number.
	AdjustBalance(ctx context.Context, accountNumber string, delta int64) (bool, error)

	// InsertAccount creates a new account row. Inserting a duplicate
	// account number fails with a constraint violation, either
	// immediately or at commit time depending on the engine.
	InsertAccount(ctx context.Context, account models.Account) error

	Commit() error
	Rollback() error
}
