package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Purger deletes all catalog, coupon and order rows. Staff keys are kept.
type Purger struct {
	db *gorm.DB
}

// NewPurger returns a Purger that uses db.
func NewPurger(db *gorm.DB) *Purger {
	return &Purger{db: db}
}

// Purge empties the seeded tables children first in one transaction.
func (p *Purger) Purge(ctx context.Context) error {
	models := []any{
		&orderItemModel{},
		&orderModel{},
		&productTranslationModel{},
		&productModel{},
		&categoryTranslationModel{},
		&categoryModel{},
		&couponModel{},
	}
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("purging: %w", err)
	}
	return nil
}
