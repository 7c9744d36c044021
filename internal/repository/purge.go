package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// purgeSQL lists the seeded tables children first. Staff keys are kept.
var purgeSQL = []string{
	`DELETE FROM order_items`,
	`DELETE FROM orders`,
	`DELETE FROM product_translations`,
	`DELETE FROM products`,
	`DELETE FROM category_translations`,
	`DELETE FROM categories`,
	`DELETE FROM coupons`,
}

// Purger deletes all catalog, coupon and order data.
type Purger struct {
	pool *pgxpool.Pool
}

// NewPurger returns a Purger that uses the given pool.
func NewPurger(pool *pgxpool.Pool) *Purger {
	return &Purger{pool: pool}
}

// Purge empties every seeded table in a single transaction.
func (p *Purger) Purge(ctx context.Context) error {
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return execAll(ctx, tx, purgeSQL)
	})
	if err != nil {
		return fmt.Errorf("purging: %w", err)
	}
	return nil
}

func execAll(ctx context.Context, q querier, statements []string) error {
	for _, sql := range statements {
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("%s: %w", sql, err)
		}
	}
	return nil
}
