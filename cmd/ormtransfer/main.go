// Fund-transfer walkthrough driven through the ORM layer. Same
// coordinator, same scenario as cmd/coretransfer; only the store
// implementation changes.
package main

import (
	"context"
	"os"

	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
	"github.com/sheikh-saqib/fund-transfer-system/internal/events/kafka"
	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/gormstore"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

func main() {
	log, err := logger.New(config.LogMode())
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error("orm transfer demo failed", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	config.Load(log)
	ctx := context.Background()

	var (
		db  *gorm.DB
		err error
	)
	switch engine := config.Engine(log); engine {
	case "postgres":
		db, err = gormstore.OpenPostgres(config.PostgresDSN(log))
		log.Info("using client-server engine via ORM")
	default:
		db, err = gormstore.OpenSQLite(config.SQLitePath(log))
		log.Info("using embedded engine via ORM")
	}
	if err != nil {
		return err
	}

	if err := schema.ProvisionAccountsGorm(ctx, db); err != nil {
		return err
	}

	var publisher interfaces.EventPublisher
	if brokers := config.KafkaBrokers(log); len(brokers) > 0 {
		p := kafka.NewPublisher(brokers, kafka.TransferCompletedTopic)
		defer p.Close()
		publisher = p
	}

	c := transfer.NewCoordinator(gormstore.NewStore(db), publisher, log)
	reportBalances(ctx, c, log)

	runTransfer(ctx, c, log, models.NewTransfer("ACC001", "ACC002", 200))

	faulty := models.NewTransfer("ACC001", "ACC003", 500)
	faulty.SimulateFault = true
	runTransfer(ctx, c, log, faulty)

	runTransfer(ctx, c, log, models.NewTransfer("NOPE", "ACC001", 100))

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
