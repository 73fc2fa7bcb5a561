package repositories

import (
	"context"

	"github.com/google/uuid"
)

// AccountStore holds one balance per identity. Balances never go negative:
// Transfer fails with ErrInsufficientFunds rather than overdraw.
type AccountStore interface {
	// Balance returns the current balance for id. Unknown identities hold zero.
	Balance(ctx context.Context, id uuid.UUID) (uint64, error)

	// Deposit credits amount to id's balance.
	Deposit(ctx context.Context, id uuid.UUID, amount uint64) error

	// Transfer atomically debits from and credits to by amount. Returns
	// ErrInsufficientFunds when from's balance is below amount, with no
	// movement on either side.
	Transfer(ctx context.Context, from, to uuid.UUID, amount uint64) error
}
