// Package config reads fixed, env-backed configuration. Entry points
// take no flags; a .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
)

// Load pulls a .env file into the environment if one exists. A missing
// file is not an error.
func Load(log *logger.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}
}

// Getenv returns the value of key, falling back to def when unset.
func Getenv(key, def string, log *logger.Logger) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	log.Debug("env var unset, using default", "key", key, "default", def)
	return def
}

// LogMode selects the logger encoder; defaults to development output.
func LogMode() string {
	if v := os.Getenv("LOG_MODE"); v != "" {
		return v
	}
	return "dev"
}

// PostgresDSN assembles the client-server connection string.
func PostgresDSN(log *logger.Logger) string {
	host := Getenv("POSTGRES_HOST", "localhost", log)
	port := Getenv("POSTGRES_PORT", "5432", log)
	user := Getenv("POSTGRES_USER", "postgres", log)
	password := Getenv("POSTGRES_PASSWORD", "", log)
	name := Getenv("POSTGRES_NAME", "transfers", log)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

// SQLitePath is the embedded database file, created on first use.
func SQLitePath(log *logger.Logger) string {
	return Getenv("SQLITE_PATH", "transfers.db", log)
}

// Engine selects which store a demo runs against: "sqlite" (default) or
// "postgres".
func Engine(log *logger.Logger) string {
	return strings.ToLower(Getenv("DB_ENGINE", "sqlite", log))
}

// KafkaBrokers is empty when event publishing is disabled.
func KafkaBrokers(log *logger.Logger) []string {
	raw := Getenv("KAFKA_BROKERS", "", log)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
