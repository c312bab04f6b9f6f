// Package sqlite is the raw-SQL account store for the embedded
// file-based engine. It mirrors the postgres store with `?` placeholders
// and mattn/go-sqlite3 error codes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (and creates on first use) the database file at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

func (s *Store) Begin(ctx context.Context) (interfaces.AccountTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify(fmt.Errorf("begin: %w", err))
	}
	return &sqlTx{tx: tx}, nil
}

func (s *Store) ListBalances(ctx context.Context) ([]models.AccountBalance, error) {
	const query = `SELECT account_number, balance FROM accounts ORDER BY account_number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var balances []models.AccountBalance
	for rows.Next() {
		var b models.AccountBalance
		if err := rows.Scan(&b.AccountNumber, &b.Balance); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return balances, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) GetBalance(ctx context.Context, accountNumber string) (int64, bool, error) {
	const query = `SELECT balance FROM accounts WHERE account_number = ?`

	var balance int64
	err := t.tx.QueryRowContext(ctx, query, accountNumber).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, classify(err)
	}
	return balance, true, nil
}

func (t *sqlTx) AdjustBalance(ctx context.Context, accountNumber string, delta int64) (bool, error) {
	const query = `UPDATE accounts SET balance = balance + ? WHERE account_number = ?`

	res, err := t.tx.ExecContext(ctx, query, delta, accountNumber)
	if err != nil {
		return false, classify(err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (t *sqlTx) InsertAccount(ctx context.Context, account models.Account) error {
	const query = `INSERT INTO accounts (account_number, balance) VALUES (?, ?)`

	_, err := t.tx.ExecContext(ctx, query, account.AccountNumber, account.Balance)
	return classify(err)
}

func (t *sqlTx) Commit() error {
	return classify(t.tx.Commit())
}

func (t *sqlTx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%v: %w", err, transfer.ErrConstraintViolation)
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return fmt.Errorf("%v: %w", err, transfer.ErrConnectivity)
		}
	}
	return err
}

var _ interfaces.AccountStore = (*Store)(nil)
