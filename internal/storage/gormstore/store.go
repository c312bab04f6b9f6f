// Package gormstore drives the transfer workflow through the ORM layer
// instead of hand-written SQL. It implements the same AccountStore
// contract as the raw stores, so the coordinator is unchanged.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

// OpenSQLite opens the embedded engine at path through GORM.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// OpenPostgres connects to the client-server engine through GORM.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// TranslateError maps driver duplicate-key errors onto
		// gorm.ErrDuplicatedKey across both engines.
		TranslateError: true,
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Begin(ctx context.Context) (interfaces.AccountTx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin: %w", classify(tx.Error))
	}
	return &gormTx{tx: tx}, nil
}

func (s *Store) ListBalances(ctx context.Context) ([]models.AccountBalance, error) {
	var balances []models.AccountBalance
	err := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Select("account_number", "balance").
		Order("account_number ASC").
		Find(&balances).Error
	if err != nil {
		return nil, classify(err)
	}
	return balances, nil
}

type gormTx struct {
	tx   *gorm.DB
	done bool
}

func (t *gormTx) GetBalance(ctx context.Context, accountNumber string) (int64, bool, error) {
	var account models.Account
	err := t.tx.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, classify(err)
	}
	return account.Balance, true, nil
}

func (t *gormTx) AdjustBalance(ctx context.Context, accountNumber string, delta int64) (bool, error) {
	res := t.tx.WithContext(ctx).
		Model(&models.Account{}).
		Where("account_number = ?", accountNumber).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (t *gormTx) InsertAccount(ctx context.Context, account models.Account) error {
	return classify(t.tx.WithContext(ctx).Create(&account).Error)
}

func (t *gormTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	return classify(t.tx.Commit().Error)
}

func (t *gormTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback().Error
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%v: %w", err, transfer.ErrConstraintViolation)
	}
	return err
}

var _ interfaces.AccountStore = (*Store)(nil)
