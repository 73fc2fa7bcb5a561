package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/database"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// RoleRepository implements repositories.RoleRegistry against PostgreSQL.
type RoleRepository struct {
	db *database.Database
}

// NewRoleRepository returns a RoleRepository backed by the given pool.
func NewRoleRepository(db *database.Database) *RoleRepository {
	return &RoleRepository{db: db}
}

// Add registers id under role. ON CONFLICT DO NOTHING makes re-registration a no-op.
func (r *RoleRepository) Add(ctx context.Context, role models.Role, id uuid.UUID) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO supplychain_role_members (role, member_id)
		VALUES ($1, $2)
		ON CONFLICT (role, member_id) DO NOTHING`,
		role.String(), id,
	)
	if err != nil {
		return fmt.Errorf("add role member: %w", err)
	}
	return nil
}

// Has reports whether id holds role.
func (r *RoleRepository) Has(ctx context.Context, role models.Role, id uuid.UUID) (bool, error) {
	var member bool
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM supplychain_role_members
			WHERE role = $1 AND member_id = $2
		)`,
		role.String(), id,
	).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("check role member: %w", err)
	}
	return member, nil
}
