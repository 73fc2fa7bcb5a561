package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/beantrail/pkg/cache"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
)

// ProvenanceView is the provenance half of the two-part read contract.
type ProvenanceView struct {
	SKU           uint64
	UPC           uint64
	OwnerID       uuid.UUID
	FarmerID      uuid.UUID
	FarmName      string
	FarmInfo      string
	FarmLatitude  string
	FarmLongitude string
}

// CommercialView is the commercial/logistics half of the two-part read
// contract. Unset identity fields read as uuid.Nil, never as an error.
type CommercialView struct {
	ProductID     uint64
	ProductNotes  string
	Price         uint64
	State         models.ItemState
	DistributorID uuid.UUID
	RetailerID    uuid.UUID
	ConsumerID    uuid.UUID
}

// FetchService serves the side-effect-free read operations. No role
// restriction applies to reads. Reads are served from Redis when available:
//  1. Check the cache first.
//  2. On miss (or cache error), query the ledger.
//  3. Asynchronously warm the cache with the ledger result.
type FetchService struct {
	items repositories.ItemRepository
	cache *pkgcache.ItemCache
}

// NewFetchService returns a FetchService wired with the given repository and cache.
func NewFetchService(items repositories.ItemRepository, itemCache *pkgcache.ItemCache) *FetchService {
	return &FetchService{items: items, cache: itemCache}
}

// Provenance returns the provenance view for upc.
func (s *FetchService) Provenance(ctx context.Context, upc uint64) (*ProvenanceView, error) {
	item, err := s.get(ctx, upc)
	if err != nil {
		return nil, err
	}
	return &ProvenanceView{
		SKU:           item.SKU,
		UPC:           item.UPC,
		OwnerID:       item.OwnerID,
		FarmerID:      item.FarmerID,
		FarmName:      item.FarmName,
		FarmInfo:      item.FarmInfo,
		FarmLatitude:  item.FarmLatitude,
		FarmLongitude: item.FarmLongitude,
	}, nil
}

// Commercial returns the commercial view for upc.
func (s *FetchService) Commercial(ctx context.Context, upc uint64) (*CommercialView, error) {
	item, err := s.get(ctx, upc)
	if err != nil {
		return nil, err
	}
	return &CommercialView{
		ProductID:     item.ProductID,
		ProductNotes:  item.ProductNotes,
		Price:         item.Price,
		State:         item.State,
		DistributorID: item.DistributorID,
		RetailerID:    item.RetailerID,
		ConsumerID:    item.ConsumerID,
	}, nil
}

func (s *FetchService) get(ctx context.Context, upc uint64) (*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, upc); err == nil {
			return cachedToItem(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache error — fall through to the ledger.
			_ = err
		}
	}

	item, err := s.items.GetByUPC(ctx, upc)
	if err != nil {
		return nil, fmt.Errorf("fetch item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), itemToCached(item))
		}()
	}
	return item, nil
}

func cachedToItem(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		SKU:           c.SKU,
		UPC:           c.UPC,
		ProductID:     c.ProductID,
		FarmerID:      c.FarmerID,
		FarmName:      c.FarmName,
		FarmInfo:      c.FarmInfo,
		FarmLatitude:  c.FarmLatitude,
		FarmLongitude: c.FarmLongitude,
		ProductNotes:  c.ProductNotes,
		OwnerID:       c.OwnerID,
		Price:         c.Price,
		State:         models.ItemState(c.State),
		DistributorID: c.DistributorID,
		RetailerID:    c.RetailerID,
		ConsumerID:    c.ConsumerID,
		CreatedAt:     c.CreatedAt,
	}
}

func itemToCached(it *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		SKU:           it.SKU,
		UPC:           it.UPC,
		ProductID:     it.ProductID,
		OwnerID:       it.OwnerID,
		FarmerID:      it.FarmerID,
		FarmName:      it.FarmName,
		FarmInfo:      it.FarmInfo,
		FarmLatitude:  it.FarmLatitude,
		FarmLongitude: it.FarmLongitude,
		ProductNotes:  it.ProductNotes,
		Price:         it.Price,
		State:         uint8(it.State),
		DistributorID: it.DistributorID,
		RetailerID:    it.RetailerID,
		ConsumerID:    it.ConsumerID,
		CreatedAt:     it.CreatedAt,
	}
}
