package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
)

const (
	getStaffKeyByHashSQL = `SELECT id, key_hash, name, active
		FROM staff_keys WHERE key_hash = $1 AND active = TRUE`

	upsertStaffKeySQL = `INSERT INTO staff_keys (id, key_hash, name, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET key_hash = EXCLUDED.key_hash, name = EXCLUDED.name, active = EXCLUDED.active`
)

var _ auth.Repository = (*StaffKeyRepository)(nil)

// StaffKeyRepository provides staff key lookups backed by PostgreSQL.
type StaffKeyRepository struct {
	pool *pgxpool.Pool
}

// NewStaffKeyRepository returns a StaffKeyRepository that uses the given pool.
func NewStaffKeyRepository(pool *pgxpool.Pool) *StaffKeyRepository {
	return &StaffKeyRepository{pool: pool}
}

// FindByHash looks up an active staff key by its HMAC-SHA256 hash.
func (r *StaffKeyRepository) FindByHash(ctx context.Context, hash string) (*auth.StaffKey, error) {
	var k auth.StaffKey
	err := r.pool.QueryRow(ctx, getStaffKeyByHashSQL, hash).Scan(&k.ID, &k.KeyHash, &k.Name, &k.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUnauthorized
		}
		return nil, fmt.Errorf("finding staff key by hash: %w", err)
	}
	return &k, nil
}

// Upsert creates the key or replaces the stored key with the same ID.
func (r *StaffKeyRepository) Upsert(ctx context.Context, k auth.StaffKey) error {
	if _, err := r.pool.Exec(ctx, upsertStaffKeySQL, k.ID, k.KeyHash, k.Name, k.Active); err != nil {
		return fmt.Errorf("upserting staff key %q: %w", k.ID, err)
	}
	return nil
}
