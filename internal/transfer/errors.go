package transfer

import (
	"errors"
	"fmt"
)

// Failure taxonomy for transfers. Store implementations translate driver
// errors into these sentinels where they can recognize them; anything
// else still rolls back but is reported as-is.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrConnectivity        = errors.New("store unreachable")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

func notFound(accountNumber string) error {
	return fmt.Errorf("account %s: %w", accountNumber, ErrAccountNotFound)
}

func insufficientFunds(accountNumber string, balance, amount int64) error {
	return fmt.Errorf("account %s has %d, need %d: %w", accountNumber, balance, amount, ErrInsufficientFunds)
}
