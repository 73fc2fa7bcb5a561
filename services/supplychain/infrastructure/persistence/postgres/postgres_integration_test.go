package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/beantrail/pkg/config"
	"github.com/ghuser/beantrail/pkg/database"
	"github.com/ghuser/beantrail/pkg/logger"
	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// Integration tests — skipped unless DATABASE_URL points at a migrated database
// (run migrations/supplychain first).
func testPool(t *testing.T) *database.Database {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	log := logger.New(&config.Config{LogLevel: "error"})
	pool, err := database.NewPool(context.Background(), url, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// freshUPC returns a UPC unlikely to collide across reruns on a shared database.
func freshUPC() uint64 {
	return uint64(time.Now().UnixNano())
}

func TestItemRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(testPool(t))

	upc := freshUPC()
	it, err := models.NewItem(models.HarvestParams{
		UPC:           upc,
		FarmerID:      uuid.New(),
		FarmName:      "Finca Integracion",
		FarmLatitude:  "4.60",
		FarmLongitude: "-74.08",
	})
	require.NoError(t, err)

	sku, err := repo.Create(ctx, it)
	require.NoError(t, err)
	require.NotZero(t, sku)
	require.Equal(t, sku+upc, it.ProductID)

	_, err = repo.Create(ctx, it)
	require.ErrorIs(t, err, supplydomain.ErrDuplicateUPC)

	got, err := repo.GetByUPC(ctx, upc)
	require.NoError(t, err)
	require.Equal(t, it.FarmerID, got.FarmerID)
	require.Equal(t, models.StateHarvested, got.State)
	require.Equal(t, models.EmptyIdentity, got.DistributorID)

	require.NoError(t, got.Process(got.FarmerID))
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByUPC(ctx, upc)
	require.NoError(t, err)
	require.Equal(t, models.StateProcessed, again.State)

	_, err = repo.GetByUPC(ctx, freshUPC())
	require.ErrorIs(t, err, supplydomain.ErrItemNotFound)
}

func TestAccountRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(testPool(t))

	a := uuid.New()
	b := uuid.New()

	bal, err := repo.Balance(ctx, a)
	require.NoError(t, err)
	require.Zero(t, bal)

	require.NoError(t, repo.Deposit(ctx, a, 100))
	require.NoError(t, repo.Transfer(ctx, a, b, 40))

	balA, err := repo.Balance(ctx, a)
	require.NoError(t, err)
	balB, err := repo.Balance(ctx, b)
	require.NoError(t, err)
	require.Equal(t, uint64(60), balA)
	require.Equal(t, uint64(40), balB)

	err = repo.Transfer(ctx, a, b, 61)
	require.ErrorIs(t, err, supplydomain.ErrInsufficientFunds)

	balA, _ = repo.Balance(ctx, a)
	require.Equal(t, uint64(60), balA, "failed transfer must not debit")
}

func TestRoleRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository(testPool(t))

	id := uuid.New()
	ok, err := repo.Has(ctx, models.RoleFarmer, id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Add(ctx, models.RoleFarmer, id))
	require.NoError(t, repo.Add(ctx, models.RoleFarmer, id), "re-registration is a no-op")

	ok, err = repo.Has(ctx, models.RoleFarmer, id)
	require.NoError(t, err)
	require.True(t, ok)
}
