package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/database"
	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
)

// AccountRepository implements repositories.AccountStore against PostgreSQL.
// Transfers run in a single transaction; the balance CHECK constraint is the
// last line of defense against overdraw.
type AccountRepository struct {
	db *database.Database
}

// NewAccountRepository returns an AccountRepository backed by the given pool.
func NewAccountRepository(db *database.Database) *AccountRepository {
	return &AccountRepository{db: db}
}

// Balance returns id's current balance; unknown identities hold zero.
func (r *AccountRepository) Balance(ctx context.Context, id uuid.UUID) (uint64, error) {
	var balance int64
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT balance FROM supplychain_accounts WHERE id = $1`, id,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query balance: %w", err)
	}
	return uint64(balance), nil
}

// Deposit credits amount to id, creating the account row on first use.
func (r *AccountRepository) Deposit(ctx context.Context, id uuid.UUID, amount uint64) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO supplychain_accounts (id, balance)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET balance = supplychain_accounts.balance + EXCLUDED.balance`,
		id, int64(amount),
	)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

// Transfer atomically moves amount between the two accounts, failing with
// ErrInsufficientFunds and no movement when the source cannot cover it.
func (r *AccountRepository) Transfer(ctx context.Context, from, to uuid.UUID, amount uint64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE supplychain_accounts
			SET balance = balance - $2
			WHERE id = $1 AND balance >= $2`,
			from, int64(amount),
		)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("debit rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: cannot debit %d", supplydomain.ErrInsufficientFunds, amount)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO supplychain_accounts (id, balance)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE
			SET balance = supplychain_accounts.balance + EXCLUDED.balance`,
			to, int64(amount),
		); err != nil {
			return fmt.Errorf("credit: %w", err)
		}
		return nil
	})
}
