package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
)

// ErrNotFound is returned when a requested category or product does not exist.
var ErrNotFound = errors.New("product not found")

// Category groups products. Its identity is independent of language; the
// name and slug are stored per language.
type Category struct {
	ID           int64
	Translations i18n.Translations[CategoryTranslation]
}

// CategoryTranslation holds the language dependent fields of a category.
type CategoryTranslation struct {
	Name string
	Slug string
}

// Product represents a catalog item available for purchase.
type Product struct {
	ID           int64
	CategoryID   int64
	Price        decimal.Decimal
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Translations i18n.Translations[Translation]
}

// Translation holds the language dependent fields of a product.
type Translation struct {
	Name        string
	Slug        string
	Description string
}

// Listing is the part of a product editable from the product list.
type Listing struct {
	ID        int64
	Price     decimal.Decimal
	Available bool
}

// Filter narrows product listings. Zero values disable a criterion.
type Filter struct {
	Available    *bool
	CategoryID   int64
	CreatedSince time.Time
	UpdatedSince time.Time
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	FindBySlug(ctx context.Context, lang i18n.Lang, slug string) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	// Create inserts the category with all its translations and sets c.ID.
	Create(ctx context.Context, c *Category) error
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	FindByName(ctx context.Context, lang i18n.Lang, name string) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
	// Create inserts the product with all its translations and sets p.ID
	// and the timestamps.
	Create(ctx context.Context, p *Product) error
	// UpdateListings applies every listing or none of them. A missing
	// product fails the batch with ErrNotFound.
	UpdateListings(ctx context.Context, listings []Listing) error
}
