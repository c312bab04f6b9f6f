// Package schema provisions the demonstration tables. Provisioning is a
// destructive reset, not a migration: existing tables are dropped and
// recreated, then seeded. Calling it twice yields the same schema.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
)

// SeedAccounts is the fixed opening state every demo starts from.
func SeedAccounts() []models.Account {
	return []models.Account{
		{AccountNumber: "ACC001", Balance: 1000},
		{AccountNumber: "ACC002", Balance: 2000},
		{AccountNumber: "ACC003", Balance: 3000},
	}
}

// ProvisionAccountsPostgres resets the accounts table on the
// client-server engine.
func ProvisionAccountsPostgres(ctx context.Context, db *sql.DB) error {
	const create = `CREATE TABLE accounts (
		id SERIAL PRIMARY KEY,
		account_number VARCHAR(50) NOT NULL UNIQUE,
		balance BIGINT NOT NULL DEFAULT 0
	)`
	const insert = `INSERT INTO accounts (account_number, balance) VALUES ($1, $2)`
	return provisionAccounts(ctx, db, create, insert)
}

// ProvisionAccountsSQLite resets the accounts table on the embedded
// engine.
func ProvisionAccountsSQLite(ctx context.Context, db *sql.DB) error {
	const create = `CREATE TABLE accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_number VARCHAR(50) NOT NULL UNIQUE,
		balance INTEGER NOT NULL DEFAULT 0
	)`
	const insert = `INSERT INTO accounts (account_number, balance) VALUES (?, ?)`
	return provisionAccounts(ctx, db, create, insert)
}

func provisionAccounts(ctx context.Context, db *sql.DB, createStmt, insertStmt string) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS accounts`); err != nil {
		return fmt.Errorf("drop accounts: %w", err)
	}
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create accounts: %w", err)
	}
	for _, account := range SeedAccounts() {
		if _, err := db.ExecContext(ctx, insertStmt, account.AccountNumber, account.Balance); err != nil {
			return fmt.Errorf("seed account %s: %w", account.AccountNumber, err)
		}
	}
	return nil
}
