package repositories

import (
	"context"

	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// All mutation flows through the transition service — the repository exposes
// only whole-record writes, so transition guards cannot be bypassed.
type ItemRepository interface {
	// Create persists a new Item, assigns the next sequential SKU, and derives
	// ProductID. Returns the assigned SKU, or ErrDuplicateUPC if the UPC is taken.
	Create(ctx context.Context, item *models.Item) (uint64, error)

	// GetByUPC retrieves the Item keyed by upc. Returns ErrItemNotFound if absent.
	GetByUPC(ctx context.Context, upc uint64) (*models.Item, error)

	// Update replaces the stored record for item.UPC. Returns ErrItemNotFound
	// if no record exists.
	Update(ctx context.Context, item *models.Item) error
}
