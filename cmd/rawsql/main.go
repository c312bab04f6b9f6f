// Raw SQL walkthrough: textual statements with bound parameters against
// the embedded engine. Values are always bound, never interpolated into
// the statement text.
package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/sqlite"
)

func main() {
	log, err := logger.New(config.LogMode())
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error("raw sql demo failed", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	config.Load(log)
	ctx := context.Background()

	db, err := sqlite.Open(config.SQLitePath(log))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS raw_data`); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE raw_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value VARCHAR(100) NOT NULL
	)`); err != nil {
		return err
	}
	log.Info("raw_data table created")

	// Insert with named parameters.
	const insertStmt = `INSERT INTO raw_data (value) VALUES (:value)`
	for _, v := range []string{"data value 1", "data value 2"} {
		if _, err := db.ExecContext(ctx, insertStmt, sql.Named("value", v)); err != nil {
			return err
		}
	}
	log.Info("rows inserted")

	if err := report(ctx, db, log, "data%"); err != nil {
		return err
	}

	// Update by primary key.
	if _, err := db.ExecContext(ctx, `UPDATE raw_data SET value = :new_value WHERE id = :id`,
		sql.Named("new_value", "updated value"), sql.Named("id", 1)); err != nil {
		return err
	}
	if err := report(ctx, db, log, "updated%"); err != nil {
		return err
	}

	// Delete by primary key.
	if _, err := db.ExecContext(ctx, `DELETE FROM raw_data WHERE id = :id`, sql.Named("id", 2)); err != nil {
		return err
	}
	return report(ctx, db, log, "%")
}

func report(ctx context.Context, db *sql.DB, log *logger.Logger, pattern string) error {
	rows, err := db.QueryContext(ctx,
		`SELECT id, value FROM raw_data WHERE value LIKE :pattern ORDER BY id`,
		sql.Named("pattern", pattern))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			value string
		)
		if err := rows.Scan(&id, &value); err != nil {
			return err
		}
		log.Info("row", "id", id, "value", value, "pattern", pattern)
	}
	return rows.Err()
}
