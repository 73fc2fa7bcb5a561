// Package services contains stateless domain services for the supplychain
// bounded context. They operate purely on domain types and the domain-owned
// store interfaces.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
)

// Settle performs the escrowed payment for the buy transition: it validates the
// offer against price, moves exactly price from payer to payee, and returns the
// refund (amountSent − price), which is never withdrawn from the payer — so the
// payer's net balance change is exactly −price.
//
// Settle must run to completion before the Sold transition is committed; any
// failure here leaves both balances untouched.
func Settle(ctx context.Context, accounts repositories.AccountStore, payer, payee uuid.UUID, amountSent, price uint64) (uint64, error) {
	if amountSent < price {
		return 0, fmt.Errorf("%w: offered %d, price is %d", supplydomain.ErrInsufficientFunds, amountSent, price)
	}

	// The payer must be able to cover the full offer, not just the price —
	// an offer backed by funds the payer does not hold is rejected outright.
	balance, err := accounts.Balance(ctx, payer)
	if err != nil {
		return 0, fmt.Errorf("payer balance: %w", err)
	}
	if balance < amountSent {
		return 0, fmt.Errorf("%w: balance %d below offer %d", supplydomain.ErrInsufficientFunds, balance, amountSent)
	}

	if err := accounts.Transfer(ctx, payer, payee, price); err != nil {
		return 0, fmt.Errorf("transfer price: %w", err)
	}
	return amountSent - price, nil
}
