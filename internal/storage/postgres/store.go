package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

// Store is the raw-SQL account store for the client-server engine.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
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
	const query = `SELECT balance FROM accounts WHERE account_number = $1`

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
	const query = `UPDATE accounts SET balance = balance + $1 WHERE account_number = $2`

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
	const query = `INSERT INTO accounts (account_number, balance) VALUES ($1, $2)`

	_, err := t.tx.ExecContext(ctx, query, account.AccountNumber, account.Balance)
	return classify(err)
}

func (t *sqlTx) Commit() error {
	return classify(t.tx.Commit())
}

func (t *sqlTx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		// Already finished, e.g. after a failed Commit.
		return nil
	}
	return err
}

// classify translates lib/pq errors into the transfer failure taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%v: %w", err, transfer.ErrConnectivity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23": // integrity constraint violation
			return fmt.Errorf("%v: %w", err, transfer.ErrConstraintViolation)
		case "08": // connection exception
			return fmt.Errorf("%v: %w", err, transfer.ErrConnectivity)
		}
	}
	return err
}

var _ interfaces.AccountStore = (*Store)(nil)
