package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized read model stored in Redis, serving both
// fetch views (provenance and commercial) from the same entry. Identity
// fields use uuid.Nil as the unset sentinel, matching the read contract.
type CachedItem struct {
	SKU           uint64    `json:"sku"`
	UPC           uint64    `json:"upc"`
	ProductID     uint64    `json:"product_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	FarmerID      uuid.UUID `json:"farmer_id"`
	FarmName      string    `json:"farm_name"`
	FarmInfo      string    `json:"farm_info"`
	FarmLatitude  string    `json:"farm_latitude"`
	FarmLongitude string    `json:"farm_longitude"`
	ProductNotes  string    `json:"product_notes"`
	Price         uint64    `json:"price"`
	State         uint8     `json:"state"`
	DistributorID uuid.UUID `json:"distributor_id"`
	RetailerID    uuid.UUID `json:"retailer_id"`
	ConsumerID    uuid.UUID `json:"consumer_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ItemCache provides read/write operations for item cache entries.
// Key format: "item:{upc}". The cache is a read-model accelerator only;
// the ledger remains the source of truth and entries are dropped on every
// transition commit.
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by UPC.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, upc uint64) (*CachedItem, error) {
	raw, err := c.client.Client().Get(ctx, c.key(upc)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var item CachedItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &item, nil
}

// Set writes a cached item as JSON with a 24-hour TTL.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(item.UPC), raw, ItemCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Used to invalidate after a transition commits.
func (c *ItemCache) Delete(ctx context.Context, upc uint64) error {
	if err := c.client.Client().Del(ctx, c.key(upc)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{upc}"
func (c *ItemCache) key(upc uint64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, upc)
}
