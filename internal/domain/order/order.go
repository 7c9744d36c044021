package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order is a snapshot of a customer's contact and shipping details together
// with the purchased line items.
type Order struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Address    string
	PostalCode string
	City       string
	Paid       bool
	StripeID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []Item
}

// Item links an order to a product. Price is copied from the product when
// the item is created and does not follow later price changes.
type Item struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Price     decimal.Decimal
	Quantity  int
}

// ItemChange edits one line of an order. A zero ID adds a line; Delete
// removes an existing one.
type ItemChange struct {
	ID        int64
	ProductID int64
	Price     decimal.Decimal
	Quantity  int
	Delete    bool
}

// Cost returns price * quantity.
func (i Item) Cost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalCost returns the sum of all item costs.
func (o *Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Cost())
	}
	return total
}

// FullName joins first and last name.
func (o *Order) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Filter narrows order listings. Zero values disable a criterion.
type Filter struct {
	Paid         *bool
	CreatedSince time.Time
	UpdatedSince time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create inserts the order and its items, setting all IDs and timestamps.
	Create(ctx context.Context, o *Order) error
	// GetByID returns the order with its items.
	GetByID(ctx context.Context, id int64) (*Order, error)
	// List returns orders newest first, without items.
	List(ctx context.Context, f Filter) ([]Order, error)
	// ListByIDs returns the selected orders in ascending ID order, without items.
	ListByIDs(ctx context.Context, ids []int64) ([]Order, error)
	// UpdateItems applies the changes to the items of order id in one
	// transaction and bumps its updated_at. An unknown order, or an item
	// that does not belong to it, fails the batch with ErrNotFound.
	UpdateItems(ctx context.Context, id int64, changes []ItemChange) error
}
