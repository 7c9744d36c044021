package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop-backoffice/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (first_name, last_name, email, address, postal_code, city, paid, stripe_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	insertOrderItemSQL = `INSERT INTO order_items (order_id, product_id, price, quantity)
		VALUES ($1, $2, $3, $4) RETURNING id`

	selectOrderSQL = `SELECT id, first_name, last_name, email, address, postal_code, city,
		paid, stripe_id, created_at, updated_at FROM orders`

	getOrderByIDSQL = selectOrderSQL + ` WHERE id = $1`

	listOrdersSQL = selectOrderSQL + `
		WHERE ($1::boolean IS NULL OR paid = $1)
		AND ($2::timestamptz IS NULL OR created_at >= $2)
		AND ($3::timestamptz IS NULL OR updated_at >= $3)
		ORDER BY created_at DESC, id DESC`

	listOrdersByIDsSQL = selectOrderSQL + ` WHERE id = ANY($1) ORDER BY id`

	listOrderItemsSQL = `SELECT id, order_id, product_id, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`

	touchOrderSQL = `UPDATE orders SET updated_at = now() WHERE id = $1`

	updateOrderItemSQL = `UPDATE order_items SET price = $3, quantity = $4 WHERE id = $1 AND order_id = $2`

	deleteOrderItemSQL = `DELETE FROM order_items WHERE id = $1 AND order_id = $2`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order together with its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrderSQL,
			o.FirstName, o.LastName, o.Email, o.Address, o.PostalCode, o.City, o.Paid, o.StripeID,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}
		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID
			err := tx.QueryRow(ctx, insertOrderItemSQL, o.ID, item.ProductID, item.Price, item.Quantity).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("item for product %d: %w", item.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return nil
}

// GetByID returns an order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	rows, err = r.pool.Query(ctx, listOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting items of order %d: %w", id, err)
	}
	o.Items, err = pgx.CollectRows(rows, scanOrderItem)
	if err != nil {
		return nil, fmt.Errorf("getting items of order %d: %w", id, err)
	}
	return &o, nil
}

// List returns orders matching f, newest first.
func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL, f.Paid, since(f.CreatedSince), since(f.UpdatedSince))
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// ListByIDs returns the orders with the given IDs in ascending ID order.
// Unknown IDs are ignored.
func (r *OrderRepository) ListByIDs(ctx context.Context, ids []int64) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing orders by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// UpdateItems edits, adds and deletes items of order id in one transaction.
func (r *OrderRepository) UpdateItems(ctx context.Context, id int64, changes []order.ItemChange) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, touchOrderSQL, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return order.ErrNotFound
		}
		for _, c := range changes {
			switch {
			case c.ID == 0:
				_, err = tx.Exec(ctx, insertOrderItemSQL, id, c.ProductID, c.Price, c.Quantity)
			case c.Delete:
				tag, err = tx.Exec(ctx, deleteOrderItemSQL, c.ID, id)
			default:
				tag, err = tx.Exec(ctx, updateOrderItemSQL, c.ID, id, c.Price, c.Quantity)
			}
			if err != nil {
				return fmt.Errorf("item %d: %w", c.ID, err)
			}
			if c.ID != 0 && tag.RowsAffected() == 0 {
				return fmt.Errorf("item %d: %w", c.ID, order.ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating items of order %d: %w", id, err)
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Address, &o.PostalCode, &o.City,
		&o.Paid, &o.StripeID, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func scanOrderItem(row pgx.CollectableRow) (order.Item, error) {
	var (
		item     order.Item
		quantity int32
	)
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &quantity)
	item.Quantity = int(quantity)
	return item, err
}
