package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

const (
	// MaxCodeLen is the maximum length of a coupon code.
	MaxCodeLen = 50

	// IssuedValidBefore and IssuedValidAfter bound the validity window of a
	// newly issued coupon around its issue time.
	IssuedValidBefore = 30 * 24 * time.Hour
	IssuedValidAfter  = 90 * 24 * time.Hour
)

var (
	// ErrInvalidCode is returned for empty or over-long coupon codes.
	ErrInvalidCode = errors.New("invalid coupon code")
	// ErrInvalidDiscount is returned when a discount is outside 0..100.
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

// Coupon is a percentage discount redeemable during its validity window.
type Coupon struct {
	ID        int64
	Code      string
	Discount  int
	ValidFrom time.Time
	ValidTo   time.Time
	Active    bool
}

// Issue returns an active coupon valid from IssuedValidBefore before now
// until IssuedValidAfter after now.
func Issue(code string, discount int, now time.Time) Coupon {
	return Coupon{
		Code:      code,
		Discount:  discount,
		ValidFrom: now.Add(-IssuedValidBefore),
		ValidTo:   now.Add(IssuedValidAfter),
		Active:    true,
	}
}

// Validate checks the coupon fields that the database also constrains.
func (c *Coupon) Validate() error {
	if c.Code == "" || len(c.Code) > MaxCodeLen {
		return ErrInvalidCode
	}
	if c.Discount < 0 || c.Discount > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// ValidAt reports whether the coupon is active and t lies inside
// [ValidFrom, ValidTo].
func (c *Coupon) ValidAt(t time.Time) bool {
	return c.Active && !t.Before(c.ValidFrom) && !t.After(c.ValidTo)
}

// Repository provides persistence of coupons.
type Repository interface {
	// GetOrCreate returns the coupon stored under c.Code. When none exists,
	// c is inserted as given. Existing coupons are never modified. The bool
	// reports whether a new row was created.
	GetOrCreate(ctx context.Context, c Coupon) (*Coupon, bool, error)
	List(ctx context.Context) ([]Coupon, error)
}
