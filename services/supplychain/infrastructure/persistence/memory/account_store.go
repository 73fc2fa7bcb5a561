package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
)

// AccountStore keeps one balance per identity in memory. Transfer is atomic
// under the store mutex, so no reader ever observes funds in flight.
type AccountStore struct {
	mu       sync.RWMutex
	balances map[uuid.UUID]uint64
}

// NewAccountStore returns an AccountStore with all balances at zero.
func NewAccountStore() *AccountStore {
	return &AccountStore{balances: make(map[uuid.UUID]uint64)}
}

// Balance returns id's current balance; unknown identities hold zero.
func (s *AccountStore) Balance(_ context.Context, id uuid.UUID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[id], nil
}

// Deposit credits amount to id.
func (s *AccountStore) Deposit(_ context.Context, id uuid.UUID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[id] += amount
	return nil
}

// Transfer moves amount from one identity to the other, or fails with
// ErrInsufficientFunds leaving both balances untouched.
func (s *AccountStore) Transfer(_ context.Context, from, to uuid.UUID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[from] < amount {
		return fmt.Errorf("%w: balance %d below %d", supplydomain.ErrInsufficientFunds, s.balances[from], amount)
	}
	s.balances[from] -= amount
	s.balances[to] += amount
	return nil
}
