package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/memory"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

type capturingPublisher struct {
	events []any
}

func (p *capturingPublisher) Publish(ctx context.Context, event any) error {
	p.events = append(p.events, event)
	return nil
}

func newCoordinator(t *testing.T) (*transfer.Coordinator, *memory.Store, *capturingPublisher) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store := memory.NewStore()
	store.Seed(schema.SeedAccounts())
	pub := &capturingPublisher{}
	return transfer.NewCoordinator(store, pub, log), store, pub
}

func balancesByNumber(t *testing.T, c *transfer.Coordinator) map[string]int64 {
	t.Helper()
	balances, err := c.ListBalances(context.Background())
	if err != nil {
		t.Fatalf("ListBalances: %v", err)
	}
	out := make(map[string]int64, len(balances))
	for _, b := range balances {
		out[b.AccountNumber] = b.Balance
	}
	return out
}

func TestTransferScenario(t *testing.T) {
	c, _, pub := newCoordinator(t)
	ctx := context.Background()

	// Step 1: successful transfer of 100 from ACC001 to ACC002.
	outcome := c.Transfer(ctx, models.NewTransfer("ACC001", "ACC002", 100))
	if !outcome.Committed() {
		t.Fatalf("expected committed, got %s (%v)", outcome.State, outcome.Reason)
	}
	got := balancesByNumber(t, c)
	want := map[string]int64{"ACC001": 900, "ACC002": 2100, "ACC003": 3000}
	for number, balance := range want {
		if got[number] != balance {
			t.Fatalf("after success: %s = %d, want %d", number, got[number], balance)
		}
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}

	// Step 2: simulated fault must roll back completely.
	faulty := models.NewTransfer("ACC001", "ACC003", 50)
	faulty.SimulateFault = true
	outcome = c.Transfer(ctx, faulty)
	if outcome.Committed() {
		t.Fatalf("expected rollback on simulated fault")
	}
	if !errors.Is(outcome.Reason, transfer.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", outcome.Reason)
	}
	got = balancesByNumber(t, c)
	for number, balance := range want {
		if got[number] != balance {
			t.Fatalf("after fault: %s = %d, want %d", number, got[number], balance)
		}
	}
	if len(got) != 3 {
		t.Fatalf("fault injection leaked a new account: %v", got)
	}

	// Step 3: nonexistent source account.
	outcome = c.Transfer(ctx, models.NewTransfer("NOPE", "ACC002", 10))
	if outcome.Committed() {
		t.Fatalf("expected rollback for missing source")
	}
	if !errors.Is(outcome.Reason, transfer.ErrAccountNotFound) {
		t.Fatalf("expected not-found, got %v", outcome.Reason)
	}
	got = balancesByNumber(t, c)
	for number, balance := range want {
		if got[number] != balance {
			t.Fatalf("after not-found: %s = %d, want %d", number, got[number], balance)
		}
	}

	if len(pub.events) != 1 {
		t.Fatalf("rolled-back transfers must not publish, got %d events", len(pub.events))
	}
}

func TestTransferConservation(t *testing.T) {
	c, _, _ := newCoordinator(t)
	ctx := context.Background()

	before := balancesByNumber(t, c)
	total := before["ACC001"] + before["ACC002"]

	for _, amount := range []int64{1, 250, 749} {
		outcome := c.Transfer(ctx, models.NewTransfer("ACC001", "ACC002", amount))
		if !outcome.Committed() {
			t.Fatalf("transfer of %d: %v", amount, outcome.Reason)
		}
	}

	after := balancesByNumber(t, c)
	if after["ACC001"]+after["ACC002"] != total {
		t.Fatalf("money created or destroyed: before=%d after=%d", total, after["ACC001"]+after["ACC002"])
	}
}

func TestTransferDestinationMissing(t *testing.T) {
	c, _, _ := newCoordinator(t)

	outcome := c.Transfer(context.Background(), models.NewTransfer("ACC001", "NOPE", 10))
	if outcome.Committed() {
		t.Fatalf("expected rollback for missing destination")
	}
	if !errors.Is(outcome.Reason, transfer.ErrAccountNotFound) {
		t.Fatalf("expected not-found, got %v", outcome.Reason)
	}
	if got := balancesByNumber(t, c)["ACC001"]; got != 1000 {
		t.Fatalf("source balance changed on missing destination: %d", got)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	c, _, _ := newCoordinator(t)

	outcome := c.Transfer(context.Background(), models.NewTransfer("ACC001", "ACC002", 1001))
	if outcome.Committed() {
		t.Fatalf("expected rollback on insufficient funds")
	}
	if !errors.Is(outcome.Reason, transfer.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", outcome.Reason)
	}
	got := balancesByNumber(t, c)
	if got["ACC001"] != 1000 || got["ACC002"] != 2000 {
		t.Fatalf("balances changed: %v", got)
	}
}

func TestTransferInvalidAmount(t *testing.T) {
	c, _, _ := newCoordinator(t)

	for _, amount := range []int64{0, -5} {
		outcome := c.Transfer(context.Background(), models.NewTransfer("ACC001", "ACC002", amount))
		if outcome.Committed() {
			t.Fatalf("amount %d: expected rejection", amount)
		}
		if !errors.Is(outcome.Reason, transfer.ErrInvalidAmount) {
			t.Fatalf("amount %d: got %v", amount, outcome.Reason)
		}
	}
}

func TestTransferSameAccount(t *testing.T) {
	c, _, _ := newCoordinator(t)

	outcome := c.Transfer(context.Background(), models.NewTransfer("ACC002", "ACC002", 300))
	if !outcome.Committed() {
		t.Fatalf("same-account transfer should commit: %v", outcome.Reason)
	}
	if got := balancesByNumber(t, c)["ACC002"]; got != 2000 {
		t.Fatalf("same-account transfer must be balance-neutral, got %d", got)
	}
}

func TestListBalancesOrdered(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store := memory.NewStore()
	store.Seed([]models.Account{
		{AccountNumber: "ACC003", Balance: 3},
		{AccountNumber: "ACC001", Balance: 1},
		{AccountNumber: "ACC002", Balance: 2},
	})
	c := transfer.NewCoordinator(store, nil, log)

	balances, err := c.ListBalances(context.Background())
	if err != nil {
		t.Fatalf("ListBalances: %v", err)
	}
	wantOrder := []string{"ACC001", "ACC002", "ACC003"}
	if len(balances) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(balances))
	}
	for i, number := range wantOrder {
		if balances[i].AccountNumber != number {
			t.Fatalf("position %d: got %s, want %s", i, balances[i].AccountNumber, number)
		}
	}
}
