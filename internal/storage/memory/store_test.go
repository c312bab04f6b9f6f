package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

func seeded() *Store {
	s := NewStore()
	s.Seed([]models.Account{
		{AccountNumber: "ACC001", Balance: 100},
		{AccountNumber: "ACC002", Balance: 200},
	})
	return s
}

func TestStagedWritesInvisibleUntilCommit(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if ok, err := tx.AdjustBalance(ctx, "ACC001", -40); err != nil || !ok {
		t.Fatalf("AdjustBalance: ok=%v err=%v", ok, err)
	}

	balances, err := s.ListBalances(ctx)
	if err != nil {
		t.Fatalf("ListBalances: %v", err)
	}
	if balances[0].Balance != 100 {
		t.Fatalf("uncommitted write visible: %d", balances[0].Balance)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	balances, _ = s.ListBalances(ctx)
	if balances[0].Balance != 60 {
		t.Fatalf("committed write lost: %d", balances[0].Balance)
	}
}

func TestRollbackDiscardsStagedWrites(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	if _, err := tx.AdjustBalance(ctx, "ACC002", 999); err != nil {
		t.Fatalf("AdjustBalance: %v", err)
	}
	if err := tx.InsertAccount(ctx, models.Account{AccountNumber: "ACC003", Balance: 1}); err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	balances, _ := s.ListBalances(ctx)
	if len(balances) != 2 || balances[1].Balance != 200 {
		t.Fatalf("rollback leaked writes: %+v", balances)
	}
}

func TestInsertDuplicateAccountNumber(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	err := tx.InsertAccount(ctx, models.Account{AccountNumber: "ACC001", Balance: 999})
	if !errors.Is(err, transfer.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	_ = tx.Rollback()
}

func TestAdjustBalanceMissingAccount(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	ok, err := tx.AdjustBalance(ctx, "NOPE", 10)
	if err != nil {
		t.Fatalf("AdjustBalance: %v", err)
	}
	if ok {
		t.Fatalf("expected no row matched")
	}
	_ = tx.Rollback()
}
