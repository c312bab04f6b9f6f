// Package transfer implements the atomic fund-transfer workflow: both
// balance mutations of one transfer share a single store transaction, so
// a fault after the debit leaves the source account untouched.
//
// Transfers are sequential; nothing here retries or coordinates
// concurrent transfers on the same accounts. That is left to the
// engine's own row locking inside the transaction.
package transfer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models/events"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
)

// State tags the outcome of a transfer.
type State string

const (
	Committed  State = "committed"
	RolledBack State = "rolled_back"
)

// Outcome reports how a transfer ended. Reason is nil iff State is
// Committed; business failures are carried here as values, never raised
// past the coordinator.
type Outcome struct {
	State  State
	Reason error
}

// Committed reports whether the transfer was durably applied.
func (o Outcome) Committed() bool { return o.State == Committed }

// Coordinator wraps the mutating steps of a transfer in a
// begin/commit/rollback envelope against one account store.
type Coordinator struct {
	store     interfaces.AccountStore
	publisher interfaces.EventPublisher // optional
	log       *logger.Logger
}

func NewCoordinator(store interfaces.AccountStore, publisher interfaces.EventPublisher, baseLog *logger.Logger) *Coordinator {
	return &Coordinator{
		store:     store,
		publisher: publisher,
		log:       baseLog.With("component", "TransferCoordinator"),
	}
}

// Transfer moves t.Amount from the source to the destination account.
// Both accounts and the balance are validated before any mutation, so a
// simulated fault can only surface as a constraint violation, never mask
// a missing account. Transferring an account to itself is allowed; it is
// balance-neutral and exercises the same path twice.
//
// Every failure path issues an explicit rollback and is reported in the
// returned Outcome; no store error propagates past this method.
func (c *Coordinator) Transfer(ctx context.Context, t models.Transfer) Outcome {
	c.log.Info("transfer started",
		"transfer_id", t.ID,
		"from", t.FromAccount,
		"to", t.ToAccount,
		"amount", t.Amount,
		"simulate_fault", t.SimulateFault,
	)

	if t.Amount <= 0 {
		return c.fail(nil, t, ErrInvalidAmount)
	}

	tx, err := c.store.Begin(ctx)
	if err != nil {
		return c.fail(nil, t, err)
	}

	fromBalance, ok, err := tx.GetBalance(ctx, t.FromAccount)
	if err != nil {
		return c.fail(tx, t, err)
	}
	if !ok {
		return c.fail(tx, t, notFound(t.FromAccount))
	}
	if fromBalance < t.Amount {
		return c.fail(tx, t, insufficientFunds(t.FromAccount, fromBalance, t.Amount))
	}

	if _, ok, err := tx.GetBalance(ctx, t.ToAccount); err != nil {
		return c.fail(tx, t, err)
	} else if !ok {
		return c.fail(tx, t, notFound(t.ToAccount))
	}

	if ok, err := tx.AdjustBalance(ctx, t.FromAccount, -t.Amount); err != nil {
		return c.fail(tx, t, err)
	} else if !ok {
		return c.fail(tx, t, notFound(t.FromAccount))
	}

	if t.SimulateFault {
		// Inject a mid-transaction error by reusing an account number
		// that already exists. Engines with immediate constraint checks
		// fail here; deferred ones fail at Commit below.
		c.log.Warn("injecting duplicate-key fault", "transfer_id", t.ID)
		if err := tx.InsertAccount(ctx, models.Account{AccountNumber: t.FromAccount, Balance: 999}); err != nil {
			return c.fail(tx, t, err)
		}
	}

	if ok, err := tx.AdjustBalance(ctx, t.ToAccount, t.Amount); err != nil {
		return c.fail(tx, t, err)
	} else if !ok {
		return c.fail(tx, t, notFound(t.ToAccount))
	}

	if err := tx.Commit(); err != nil {
		return c.fail(tx, t, err)
	}

	c.log.Info("transfer committed", "transfer_id", t.ID)
	c.publishCompleted(ctx, t)
	return Outcome{State: Committed}
}

// ListBalances re-reads all account balances outside any transaction, so
// it observes only durably committed state.
func (c *Coordinator) ListBalances(ctx context.Context) ([]models.AccountBalance, error) {
	return c.store.ListBalances(ctx)
}

func (c *Coordinator) fail(tx interfaces.AccountTx, t models.Transfer, reason error) Outcome {
	if tx != nil {
		if err := tx.Rollback(); err != nil {
			c.log.Error("rollback failed", "transfer_id", t.ID, "error", err)
		}
	}
	c.log.Warn("transfer rolled back", "transfer_id", t.ID, "reason", reason)
	return Outcome{State: RolledBack, Reason: reason}
}

func (c *Coordinator) publishCompleted(ctx context.Context, t models.Transfer) {
	if c.publisher == nil {
		return
	}
	event := events.TransferCompleted{
		TransferID:  t.ID.String(),
		FromAccount: t.FromAccount,
		ToAccount:   t.ToAccount,
		Amount:      decimal.NewFromInt(t.Amount),
		OccurredAt:  time.Now(),
	}
	// Publishing is best effort; the transfer is already committed.
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.log.Error("publish transfer_completed failed", "transfer_id", t.ID, "error", err)
	}
}
