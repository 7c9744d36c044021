package gormdb

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/xenking/shop-backoffice/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository with gorm.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns an OrderRepository that uses db.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	m := fromOrder(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	o.ID = m.ID
	o.CreatedAt = m.CreatedAt
	o.UpdatedAt = m.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = m.Items[i].ID
		o.Items[i].OrderID = m.ID
	}
	return nil
}

// GetByID returns an order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	o := m.toDomain()
	return &o, nil
}

// List returns orders matching f, newest first.
func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if f.Paid != nil {
		q = q.Where("paid = ?", *f.Paid)
	}
	if !f.CreatedSince.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedSince)
	}
	if !f.UpdatedSince.IsZero() {
		q = q.Where("updated_at >= ?", f.UpdatedSince)
	}
	return r.find(q)
}

// ListByIDs returns the orders with the given IDs in ascending ID order.
func (r *OrderRepository) ListByIDs(ctx context.Context, ids []int64) ([]order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids).Order("id"))
}

// UpdateItems edits, adds and deletes items of order id in one transaction.
// Membership is checked against the stored item ids since MySQL reports
// only changed rows as affected.
func (r *OrderRepository) UpdateItems(ctx context.Context, id int64, changes []order.ItemChange) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m orderModel
		if err := tx.Select("id").First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrNotFound
			}
			return err
		}
		var itemIDs []int64
		if err := tx.Model(&orderItemModel{}).Where("order_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}

		for _, c := range changes {
			if c.ID != 0 && !slices.Contains(itemIDs, c.ID) {
				return fmt.Errorf("item %d: %w", c.ID, order.ErrNotFound)
			}
			var err error
			switch {
			case c.ID == 0:
				err = tx.Create(&orderItemModel{OrderID: id, ProductID: c.ProductID, Price: c.Price, Quantity: c.Quantity}).Error
			case c.Delete:
				err = tx.Delete(&orderItemModel{}, c.ID).Error
			default:
				err = tx.Model(&orderItemModel{ID: c.ID}).Updates(map[string]any{
					"price":    c.Price,
					"quantity": c.Quantity,
				}).Error
			}
			if err != nil {
				return fmt.Errorf("item %d: %w", c.ID, err)
			}
		}
		return tx.Model(&orderModel{ID: id}).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return fmt.Errorf("updating items of order %d: %w", id, err)
	}
	return nil
}

func (r *OrderRepository) find(q *gorm.DB) ([]order.Order, error) {
	var ms []orderModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	out := make([]order.Order, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}
