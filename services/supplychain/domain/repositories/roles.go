package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// RoleRegistry maintains the four custody-chain membership sets and answers
// the guard predicate used by the transition service. Membership is additive
// only; no removal is modeled.
type RoleRegistry interface {
	// Add registers id under role. Idempotent — re-registration is not an error.
	Add(ctx context.Context, role models.Role, id uuid.UUID) error

	// Has reports whether id holds role. Pure query, no side effects.
	Has(ctx context.Context, role models.Role, id uuid.UUID) (bool, error)
}
