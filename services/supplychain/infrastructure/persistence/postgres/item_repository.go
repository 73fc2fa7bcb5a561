// Package postgres implements the supplychain store interfaces against
// PostgreSQL. Semantics mirror the memory package; schema lives in
// migrations/supplychain.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/beantrail/pkg/database"
	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

const uniqueViolation = "23505"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// SKU assignment uses the table's sequence; product_id is a generated column.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given pool.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create persists a new Item. Returns ErrDuplicateUPC on unique violations.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (uint64, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO supplychain_items (
			upc, farmer_id, farm_name, farm_info, farm_latitude, farm_longitude,
			product_notes, owner_id, price, state, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING sku, product_id`,
		int64(item.UPC), item.FarmerID, item.FarmName, item.FarmInfo,
		item.FarmLatitude, item.FarmLongitude, item.ProductNotes,
		item.OwnerID, int64(item.Price), int16(item.State), item.CreatedAt,
	)

	var sku, productID int64
	if err := row.Scan(&sku, &productID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%w: %d", supplydomain.ErrDuplicateUPC, item.UPC)
		}
		return 0, fmt.Errorf("insert item: %w", err)
	}

	item.SKU = uint64(sku)
	item.ProductID = uint64(productID)
	return item.SKU, nil
}

// GetByUPC retrieves an Item by UPC. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetByUPC(ctx context.Context, upc uint64) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT sku, upc, product_id, farmer_id, farm_name, farm_info,
		       farm_latitude, farm_longitude, product_notes, owner_id, price,
		       state, distributor_id, retailer_id, consumer_id, created_at
		FROM supplychain_items
		WHERE upc = $1`,
		int64(upc),
	)
	return scanItem(row, upc)
}

// Update replaces the mutable fields of the record stored under item.UPC.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE supplychain_items
		SET owner_id = $2, price = $3, state = $4,
		    distributor_id = $5, retailer_id = $6, consumer_id = $7
		WHERE upc = $1`,
		int64(item.UPC), item.OwnerID, int64(item.Price), int16(item.State),
		nullUUID(item.DistributorID), nullUUID(item.RetailerID), nullUUID(item.ConsumerID),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: upc %d", supplydomain.ErrItemNotFound, item.UPC)
	}
	return nil
}

func scanItem(row *sql.Row, upc uint64) (*models.Item, error) {
	var (
		it                               models.Item
		sku, upcCol, productID, price    int64
		state                            int16
		distributor, retailer, consumer  sql.NullString
	)
	err := row.Scan(
		&sku, &upcCol, &productID, &it.FarmerID, &it.FarmName, &it.FarmInfo,
		&it.FarmLatitude, &it.FarmLongitude, &it.ProductNotes, &it.OwnerID,
		&price, &state, &distributor, &retailer, &consumer, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: upc %d", supplydomain.ErrItemNotFound, upc)
		}
		return nil, fmt.Errorf("query item: %w", err)
	}

	it.SKU = uint64(sku)
	it.UPC = uint64(upcCol)
	it.ProductID = uint64(productID)
	it.Price = uint64(price)
	it.State = models.ItemState(state)
	if it.DistributorID, err = parseNullUUID(distributor); err != nil {
		return nil, fmt.Errorf("parse distributor_id: %w", err)
	}
	if it.RetailerID, err = parseNullUUID(retailer); err != nil {
		return nil, fmt.Errorf("parse retailer_id: %w", err)
	}
	if it.ConsumerID, err = parseNullUUID(consumer); err != nil {
		return nil, fmt.Errorf("parse consumer_id: %w", err)
	}
	return &it, nil
}

// nullUUID maps the empty-identity sentinel to SQL NULL.
func nullUUID(id uuid.UUID) any {
	if id == models.EmptyIdentity {
		return nil
	}
	return id
}

func parseNullUUID(s sql.NullString) (uuid.UUID, error) {
	if !s.Valid {
		return models.EmptyIdentity, nil
	}
	return uuid.Parse(s.String)
}
