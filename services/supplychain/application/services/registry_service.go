package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
)

// RegistryService manages custody-chain role membership. Registration is
// idempotent and additive; there is no removal.
type RegistryService struct {
	roles repositories.RoleRegistry
}

// NewRegistryService returns a RegistryService over the given registry.
func NewRegistryService(roles repositories.RoleRegistry) *RegistryService {
	return &RegistryService{roles: roles}
}

// AddMember registers id under the named role. Re-registration succeeds silently.
func (s *RegistryService) AddMember(ctx context.Context, roleName string, id uuid.UUID) (models.Role, error) {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return "", fmt.Errorf("%w: %q", supplydomain.ErrUnknownRole, roleName)
	}
	if err := s.roles.Add(ctx, role, id); err != nil {
		return "", fmt.Errorf("add %s member: %w", role, err)
	}
	return role, nil
}

// HasMember reports whether id holds the named role.
func (s *RegistryService) HasMember(ctx context.Context, roleName string, id uuid.UUID) (bool, error) {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return false, fmt.Errorf("%w: %q", supplydomain.ErrUnknownRole, roleName)
	}
	return s.roles.Has(ctx, role, id)
}
