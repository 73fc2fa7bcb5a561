package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
)

// AccountService exposes the funding operations around escrow: identities
// deposit before buying, and anyone may read a balance.
type AccountService struct {
	accounts repositories.AccountStore
}

// NewAccountService returns an AccountService over the given store.
func NewAccountService(accounts repositories.AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

// Deposit credits amount to id and returns the resulting balance.
func (s *AccountService) Deposit(ctx context.Context, id uuid.UUID, amount uint64) (uint64, error) {
	if err := s.accounts.Deposit(ctx, id, amount); err != nil {
		return 0, fmt.Errorf("deposit: %w", err)
	}
	balance, err := s.accounts.Balance(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// Balance returns id's current balance; unknown identities hold zero.
func (s *AccountService) Balance(ctx context.Context, id uuid.UUID) (uint64, error) {
	return s.accounts.Balance(ctx, id)
}
