// Fund-transfer walkthrough against the raw-SQL stores. DB_ENGINE
// selects sqlite (default, embedded file) or postgres (client-server).
package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
	"github.com/sheikh-saqib/fund-transfer-system/internal/events/kafka"
	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/postgres"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/sqlite"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

func main() {
	log, err := logger.New(config.LogMode())
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error("core transfer demo failed", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	config.Load(log)
	ctx := context.Background()

	var (
		db    *sql.DB
		store interfaces.AccountStore
		err   error
	)
	switch engine := config.Engine(log); engine {
	case "postgres":
		db, err = sql.Open("postgres", config.PostgresDSN(log))
		if err != nil {
			return err
		}
		defer db.Close()
		if err := schema.ProvisionAccountsPostgres(ctx, db); err != nil {
			return err
		}
		store = postgres.NewStore(db)
		log.Info("using client-server engine")
	default:
		db, err = sqlite.Open(config.SQLitePath(log))
		if err != nil {
			return err
		}
		defer db.Close()
		if err := schema.ProvisionAccountsSQLite(ctx, db); err != nil {
			return err
		}
		store = sqlite.NewStore(db)
		log.Info("using embedded engine")
	}

	var publisher interfaces.EventPublisher
	if brokers := config.KafkaBrokers(log); len(brokers) > 0 {
		p := kafka.NewPublisher(brokers, kafka.TransferCompletedTopic)
		defer p.Close()
		publisher = p
	}

	c := transfer.NewCoordinator(store, publisher, log)
	reportBalances(ctx, c, log)

	// Successful transfer.
	runTransfer(ctx, c, log, models.NewTransfer("ACC001", "ACC002", 100))

	// Injected mid-transaction fault; the debit must not survive.
	faulty := models.NewTransfer("ACC001", "ACC003", 50)
	faulty.SimulateFault = true
	runTransfer(ctx, c, log, faulty)

	// Nonexistent source account.
	runTransfer(ctx, c, log, models.NewTransfer("NOPE", "ACC002", 100))

	return nil
}

func runTransfer(ctx context.Context, c *transfer.Coordinator, log *logger.Logger, t models.Transfer) {
	outcome := c.Transfer(ctx, t)
	log.Info("transfer finished",
		"from", t.FromAccount,
		"to", t.ToAccount,
		"amount", t.Amount,
		"outcome", outcome.State,
		"reason", outcome.Reason,
	)
	reportBalances(ctx, c, log)
}

func reportBalances(ctx context.Context, c *transfer.Coordinator, log *logger.Logger) {
	balances, err := c.ListBalances(ctx)
	if err != nil {
		log.Error("list balances failed", "error", err)
		return
	}
	for _, b := range balances {
		log.Info("balance", "account_number", b.AccountNumber, "balance", b.Balance)
	}
}
