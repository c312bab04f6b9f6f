// Package testutil provides shared test scaffolding: a singleton
// logger, an env-gated postgres handle, and throwaway sqlite databases
// under the test temp dir.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/gormstore"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// PostgresDB opens the client-server test database, skipping the test
// when TEST_POSTGRES_DSN is unset.
func PostgresDB(tb testing.TB) *sql.DB {
	tb.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("set TEST_POSTGRES_DSN to run postgres store tests")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		tb.Fatalf("open postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		tb.Fatalf("ping postgres: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

// SQLiteDB opens a fresh embedded database file for the test.
func SQLiteDB(tb testing.TB) *sql.DB {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

// GormSQLite opens a fresh embedded database through the ORM layer.
func GormSQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := gormstore.OpenSQLite(path)
	if err != nil {
		tb.Fatalf("open gorm sqlite: %v", err)
	}
	return db
}
