// Package memory provides mutex-serialized in-memory implementations of the
// supplychain store interfaces. They are the authoritative backend for
// single-process runs and tests; the postgres package mirrors their semantics.
package memory

import (
	"context"
	"fmt"
	"sync"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// ItemStore keeps one Item per UPC and assigns SKUs sequentially from 1.
// Every read hands out a clone so callers cannot mutate ledger state in place.
type ItemStore struct {
	mu      sync.RWMutex
	items   map[uint64]*models.Item
	nextSKU uint64
}

// NewItemStore returns an empty in-memory item ledger.
func NewItemStore() *ItemStore {
	return &ItemStore{
		items:   make(map[uint64]*models.Item),
		nextSKU: 1,
	}
}

// Create persists item under its UPC, assigning the next SKU and deriving
// ProductID. Returns ErrDuplicateUPC if the UPC is already taken.
func (s *ItemStore) Create(_ context.Context, item *models.Item) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.UPC]; ok {
		return 0, fmt.Errorf("%w: %d", supplydomain.ErrDuplicateUPC, item.UPC)
	}

	stored := item.Clone()
	stored.SKU = s.nextSKU
	stored.ProductID = stored.SKU + stored.UPC
	s.nextSKU++
	s.items[stored.UPC] = stored

	item.SKU = stored.SKU
	item.ProductID = stored.ProductID
	return stored.SKU, nil
}

// GetByUPC returns a clone of the stored Item, or ErrItemNotFound.
func (s *ItemStore) GetByUPC(_ context.Context, upc uint64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[upc]
	if !ok {
		return nil, fmt.Errorf("%w: upc %d", supplydomain.ErrItemNotFound, upc)
	}
	return it.Clone(), nil
}

// Update replaces the record stored under item.UPC.
func (s *ItemStore) Update(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.UPC]; !ok {
		return fmt.Errorf("%w: upc %d", supplydomain.ErrItemNotFound, item.UPC)
	}
	s.items[item.UPC] = item.Clone()
	return nil
}
