package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// RoleStore keeps the four membership sets in memory.
type RoleStore struct {
	mu      sync.RWMutex
	members map[models.Role]map[uuid.UUID]struct{}
}

// NewRoleStore returns a RoleStore with all four sets empty.
func NewRoleStore() *RoleStore {
	members := make(map[models.Role]map[uuid.UUID]struct{}, 4)
	for _, r := range models.Roles() {
		members[r] = make(map[uuid.UUID]struct{})
	}
	return &RoleStore{members: members}
}

// Add registers id under role. Re-registration is a no-op.
func (s *RoleStore) Add(_ context.Context, role models.Role, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.members[role]
	if !ok {
		return fmt.Errorf("%w: %q", supplydomain.ErrUnknownRole, role)
	}
	set[id] = struct{}{}
	return nil
}

// Has reports membership of id in role.
func (s *RoleStore) Has(_ context.Context, role models.Role, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.members[role]
	if !ok {
		return false, fmt.Errorf("%w: %q", supplydomain.ErrUnknownRole, role)
	}
	_, member := set[id]
	return member, nil
}
