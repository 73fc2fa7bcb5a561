package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
	"github.com/ghuser/beantrail/services/supplychain/infrastructure/persistence/memory"
)

func TestRegistryService(t *testing.T) {
	ctx := context.Background()
	svc := NewRegistryService(memory.NewRoleStore())
	id := uuid.New()

	ok, err := svc.HasMember(ctx, "retailer", id)
	require.NoError(t, err)
	require.False(t, ok)

	role, err := svc.AddMember(ctx, "retailer", id)
	require.NoError(t, err)
	require.Equal(t, models.RoleRetailer, role)

	ok, err = svc.HasMember(ctx, "retailer", id)
	require.NoError(t, err)
	require.True(t, ok)

	// Idempotent re-registration.
	_, err = svc.AddMember(ctx, "retailer", id)
	require.NoError(t, err)
}

func TestRegistryService_UnknownRole(t *testing.T) {
	ctx := context.Background()
	svc := NewRegistryService(memory.NewRoleStore())

	_, err := svc.AddMember(ctx, "broker", uuid.New())
	require.ErrorIs(t, err, supplydomain.ErrUnknownRole)

	_, err = svc.HasMember(ctx, "broker", uuid.New())
	require.ErrorIs(t, err, supplydomain.ErrUnknownRole)
}
