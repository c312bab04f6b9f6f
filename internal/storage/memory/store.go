package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

// Store is an in-memory implementation of interfaces.AccountStore. It
// exists so the coordinator can be exercised without any database; a
// transaction stages changes on a snapshot and swaps it in on Commit.
type Store struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewStore() *Store {
	return &Store{balances: make(map[string]int64)}
}

// Seed resets the store to exactly the given accounts.
func (s *Store) Seed(accounts []models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = make(map[string]int64, len(accounts))
	for _, a := range accounts {
		s.balances[a.AccountNumber] = a.Balance
	}
}

func (s *Store) Begin(ctx context.Context) (interfaces.AccountTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]int64, len(s.balances))
	for number, balance := range s.balances {
		staged[number] = balance
	}
	return &memTx{store: s, staged: staged}, nil
}

func (s *Store) ListBalances(ctx context.Context) ([]models.AccountBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AccountBalance, 0, len(s.balances))
	for number, balance := range s.balances {
		out = append(out, models.AccountBalance{AccountNumber: number, Balance: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

// memTx stages mutations on a private copy of the balances map, so an
// abandoned or rolled-back transaction leaves the store untouched.
type memTx struct {
	store  *Store
	staged map[string]int64
	done   bool
}

func (t *memTx) GetBalance(ctx context.Context, accountNumber string) (int64, bool, error) {
	balance, ok := t.staged[accountNumber]
	return balance, ok, nil
}

func (t *memTx) AdjustBalance(ctx context.Context, accountNumber string, delta int64) (bool, error) {
	if _, ok := t.staged[accountNumber]; !ok {
		return false, nil
	}
	t.staged[accountNumber] += delta
	return true, nil
}

func (t *memTx) InsertAccount(ctx context.Context, account models.Account) error {
	if _, exists := t.staged[account.AccountNumber]; exists {
		return fmt.Errorf("duplicate account_number %s: %w", account.AccountNumber, transfer.ErrConstraintViolation)
	}
	t.staged[account.AccountNumber] = account.Balance
	return nil
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.balances = t.staged
	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}

// Compile-time check: Store implements AccountStore.
var _ interfaces.AccountStore = (*Store)(nil)
