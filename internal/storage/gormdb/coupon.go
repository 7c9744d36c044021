package gormdb

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/coupon"
)

var (
	_ coupon.Repository = (*CouponRepository)(nil)
	_ auth.Repository   = (*StaffKeyRepository)(nil)
)

// CouponRepository implements coupon.Repository with gorm.
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository returns a CouponRepository that uses db.
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetOrCreate returns the coupon stored under c.Code, inserting c when
// there is none.
func (r *CouponRepository) GetOrCreate(ctx context.Context, c coupon.Coupon) (*coupon.Coupon, bool, error) {
	if err := c.Validate(); err != nil {
		return nil, false, fmt.Errorf("coupon %q: %w", c.Code, err)
	}

	m := fromCoupon(c)
	res := r.db.WithContext(ctx).
		Where(couponModel{Code: c.Code}).
		Attrs(m).
		FirstOrCreate(&m)
	if res.Error != nil {
		return nil, false, fmt.Errorf("get or create coupon %q: %w", c.Code, res.Error)
	}
	out := m.toDomain()
	return &out, res.RowsAffected == 1, nil
}

// List returns every coupon ordered by ID.
func (r *CouponRepository) List(ctx context.Context) ([]coupon.Coupon, error) {
	var ms []couponModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	out := make([]coupon.Coupon, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// StaffKeyRepository implements auth.Repository with gorm.
type StaffKeyRepository struct {
	db *gorm.DB
}

// NewStaffKeyRepository returns a StaffKeyRepository that uses db.
func NewStaffKeyRepository(db *gorm.DB) *StaffKeyRepository {
	return &StaffKeyRepository{db: db}
}

// FindByHash looks up an active staff key by its hash.
func (r *StaffKeyRepository) FindByHash(ctx context.Context, hash string) (*auth.StaffKey, error) {
	var m staffKeyModel
	err := r.db.WithContext(ctx).Where("key_hash = ? AND active = ?", hash, true).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUnauthorized
		}
		return nil, fmt.Errorf("finding staff key by hash: %w", err)
	}
	k := m.toDomain()
	return &k, nil
}

// Upsert creates the key or replaces the stored key with the same ID.
func (r *StaffKeyRepository) Upsert(ctx context.Context, k auth.StaffKey) error {
	m := staffKeyModel{ID: k.ID, KeyHash: k.KeyHash, Name: k.Name, Active: k.Active}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"key_hash", "name", "active"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("upserting staff key %q: %w", k.ID, err)
	}
	return nil
}
