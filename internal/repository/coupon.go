package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop-backoffice/internal/domain/coupon"
)

const (
	insertCouponSQL = `INSERT INTO coupons (code, discount, valid_from, valid_to, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
		RETURNING id`

	getCouponByCodeSQL = `SELECT id, code, discount, valid_from, valid_to, active
		FROM coupons WHERE code = $1`

	listCouponsSQL = `SELECT id, code, discount, valid_from, valid_to, active
		FROM coupons ORDER BY id`
)

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// GetOrCreate inserts c unless a coupon with the same code exists, in which
// case the stored coupon is returned unchanged.
func (r *CouponRepository) GetOrCreate(ctx context.Context, c coupon.Coupon) (*coupon.Coupon, bool, error) {
	if err := c.Validate(); err != nil {
		return nil, false, fmt.Errorf("coupon %q: %w", c.Code, err)
	}

	err := r.pool.QueryRow(ctx, insertCouponSQL, c.Code, c.Discount, c.ValidFrom, c.ValidTo, c.Active).Scan(&c.ID)
	switch {
	case err == nil:
		return &c, true, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, false, fmt.Errorf("inserting coupon %q: %w", c.Code, err)
	}

	rows, err := r.pool.Query(ctx, getCouponByCodeSQL, c.Code)
	if err != nil {
		return nil, false, fmt.Errorf("getting coupon %q: %w", c.Code, err)
	}
	existing, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		return nil, false, fmt.Errorf("getting coupon %q: %w", c.Code, err)
	}
	return &existing, false, nil
}

// List returns every coupon ordered by ID.
func (r *CouponRepository) List(ctx context.Context) ([]coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, listCouponsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	return pgx.CollectRows(rows, scanCoupon)
}

func scanCoupon(row pgx.CollectableRow) (coupon.Coupon, error) {
	var (
		c        coupon.Coupon
		discount int32
	)
	err := row.Scan(&c.ID, &c.Code, &discount, &c.ValidFrom, &c.ValidTo, &c.Active)
	c.Discount = int(discount)
	return c, err
}
