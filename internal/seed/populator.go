// Package seed populates a shop database with demo data: localized
// categories and products, coupons, and a batch of synthetic orders.
//
// Reference data (categories, products, coupons) is created once and reused
// on later runs, keyed by a natural identifier. Orders are appended on every
// run.
package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

const (
	// OrdersPerRun is the number of orders appended by every run.
	OrdersPerRun = 10

	maxItemsPerOrder = 4
	maxQuantity      = 3
)

// Purger deletes every seeded entity type: order items, orders, products,
// categories and coupons, in that order.
type Purger interface {
	Purge(ctx context.Context) error
}

// Deps are the persistence collaborators of a Populator.
type Deps struct {
	Categories product.CategoryRepository
	Products   product.Repository
	Coupons    coupon.Repository
	Orders     order.Repository
	Purger     Purger
}

// Config holds non-dependency settings. Zero values select defaults: a
// no-op logger, a randomly seeded source, time.Now and io.Discard.
type Config struct {
	Logger *zap.Logger
	Rand   *rand.Rand
	Now    func() time.Time
	Out    io.Writer
}

// Options selects the behaviour of a single Run.
type Options struct {
	// Clear purges all existing data before populating.
	Clear bool
}

// Summary counts the records returned by each step of a Run.
type Summary struct {
	Categories int
	Products   int
	Coupons    int
	Orders     int
}

// Populator seeds the database.
type Populator struct {
	deps Deps
	lg   *zap.Logger
	rnd  *rand.Rand
	now  func() time.Time
	out  io.Writer
}

// New creates a Populator.
func New(deps Deps, cfg Config) *Populator {
	p := &Populator{
		deps: deps,
		lg:   cfg.Logger,
		rnd:  cfg.Rand,
		now:  cfg.Now,
		out:  cfg.Out,
	}
	if p.lg == nil {
		p.lg = zap.NewNop()
	}
	if p.rnd == nil {
		p.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.out == nil {
		p.out = io.Discard
	}
	return p
}

// Run executes categories, products, coupons and orders in that order,
// optionally purging first, and prints a summary.
func (p *Populator) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Clear {
		p.printf("Clearing existing data...\n")
		p.lg.Warn("Clearing existing data")
		if err := p.deps.Purger.Purge(ctx); err != nil {
			return nil, errors.Wrap(err, "clear")
		}
	}

	p.printf("Starting data population...\n")

	categories, err := p.PopulateCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "populate categories")
	}
	p.printf("✓ Created %d categories\n", len(categories))

	products, err := p.PopulateProducts(ctx, categories)
	if err != nil {
		return nil, errors.Wrap(err, "populate products")
	}
	p.printf("✓ Created %d products\n", len(products))

	coupons, err := p.PopulateCoupons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "populate coupons")
	}
	p.printf("✓ Created %d coupons\n", len(coupons))

	orders, err := p.PopulateOrders(ctx, products)
	if err != nil {
		return nil, errors.Wrap(err, "populate orders")
	}
	p.printf("✓ Created %d sample orders\n", len(orders))

	s := &Summary{
		Categories: len(categories),
		Products:   len(products),
		Coupons:    len(coupons),
		Orders:     len(orders),
	}
	p.printf("\nDatabase populated successfully!\n")
	p.printf("   - Categories: %d\n   - Products: %d\n   - Coupons: %d\n   - Orders: %d\n",
		s.Categories, s.Products, s.Coupons, s.Orders)

	return s, nil
}

// PopulateCategories returns one category per catalog entry, in catalog
// order. A category whose English slug already exists is reused.
func (p *Populator) PopulateCategories(ctx context.Context) ([]product.Category, error) {
	out := make([]product.Category, 0, len(catalogCategories))

	for _, entry := range catalogCategories {
		existing, err := p.deps.Categories.FindBySlug(ctx, i18n.English, entry.EN.Slug)
		switch {
		case err == nil:
			out = append(out, *existing)
			p.lg.Debug("Reusing category", zap.String("slug", entry.EN.Slug), zap.Int64("id", existing.ID))
			continue
		case !errors.Is(err, product.ErrNotFound):
			return nil, errors.Wrapf(err, "find category %s", entry.EN.Slug)
		}

		c := product.Category{}
		c.Translations.Set(i18n.English, entry.EN)
		c.Translations.Set(i18n.Spanish, entry.ES)

		if err := p.deps.Categories.Create(ctx, &c); err != nil {
			return nil, errors.Wrapf(err, "create category %s", entry.EN.Slug)
		}
		p.lg.Info("Created category", zap.String("slug", entry.EN.Slug), zap.Int64("id", c.ID))

		out = append(out, c)
	}

	return out, nil
}

// PopulateProducts returns the catalog products of the given categories.
// A product whose English name already exists is reused; otherwise it is
// created available, at the catalog price, with English and Spanish
// translations. Categories without catalog products are skipped.
func (p *Populator) PopulateProducts(ctx context.Context, categories []product.Category) ([]product.Product, error) {
	var out []product.Product

	for _, c := range categories {
		slug := c.Translations.In(i18n.English).Slug
		entries, ok := catalogProducts[slug]
		if !ok {
			p.lg.Warn("No catalog products for category", zap.String("slug", slug), zap.Int64("id", c.ID))
			continue
		}

		for _, entry := range entries {
			existing, err := p.deps.Products.FindByName(ctx, i18n.English, entry.Name)
			switch {
			case err == nil:
				out = append(out, *existing)
				continue
			case !errors.Is(err, product.ErrNotFound):
				return nil, errors.Wrapf(err, "find product %q", entry.Name)
			}

			prod := p.newProduct(c.ID, entry)
			if err := p.deps.Products.Create(ctx, &prod); err != nil {
				return nil, errors.Wrapf(err, "create product %q", entry.Name)
			}
			p.lg.Info("Created product",
				zap.Int64("id", prod.ID),
				zap.String("name", entry.Name),
				zap.String("category", slug),
			)

			out = append(out, prod)
		}
	}

	return out, nil
}

func (p *Populator) newProduct(categoryID int64, entry ProductEntry) product.Product {
	prod := product.Product{
		CategoryID: categoryID,
		Price:      entry.Price,
		Available:  true,
	}
	prod.Translations.Set(i18n.English, product.Translation{
		Name:        entry.Name,
		Slug:        product.Slugify(i18n.English, entry.Name),
		Description: p.describe(descriptionsEN, entry.Name),
	})
	prod.Translations.Set(i18n.Spanish, product.Translation{
		Name:        entry.NameES,
		Slug:        product.Slugify(i18n.Spanish, entry.NameES),
		Description: p.describe(descriptionsES, entry.NameES),
	})
	return prod
}

func (p *Populator) describe(templates []string, name string) string {
	return fmt.Sprintf(templates[p.rnd.IntN(len(templates))], name)
}

// PopulateCoupons gets or creates every catalog coupon. New coupons are
// active and valid from 30 days ago until 90 days from now; existing
// coupons are returned as stored.
func (p *Populator) PopulateCoupons(ctx context.Context) ([]coupon.Coupon, error) {
	now := p.now()
	out := make([]coupon.Coupon, 0, len(catalogCoupons))

	for _, entry := range catalogCoupons {
		c, created, err := p.deps.Coupons.GetOrCreate(ctx, coupon.Issue(entry.Code, entry.Discount, now))
		if err != nil {
			return nil, errors.Wrapf(err, "get or create coupon %s", entry.Code)
		}
		p.lg.Info("Upserted coupon", zap.String("code", c.Code), zap.Bool("created", created))

		out = append(out, *c)
	}

	return out, nil
}

// PopulateOrders creates OrdersPerRun orders with random customers. Each
// order receives between 1 and 4 distinct products (bounded by
// len(products)); every item copies the product's current price.
func (p *Populator) PopulateOrders(ctx context.Context, products []product.Product) ([]order.Order, error) {
	if len(products) == 0 {
		p.lg.Warn("No products available, orders will have no items")
	}

	out := make([]order.Order, 0, OrdersPerRun)
	for range OrdersPerRun {
		o := p.newOrder(products)
		if err := p.deps.Orders.Create(ctx, &o); err != nil {
			return nil, errors.Wrapf(err, "create order for %s", o.Email)
		}
		p.lg.Debug("Created order", zap.Int64("id", o.ID), zap.Int("items", len(o.Items)))

		out = append(out, o)
	}

	return out, nil
}

func (p *Populator) newOrder(products []product.Product) order.Order {
	first := pick(p.rnd, firstNames)
	last := pick(p.rnd, lastNames)

	o := order.Order{
		FirstName:  first,
		LastName:   last,
		Email:      fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
		Address:    fmt.Sprintf("%d Main Street", 100+p.rnd.IntN(9900)),
		PostalCode: fmt.Sprintf("%d", 10000+p.rnd.IntN(90000)),
		City:       pick(p.rnd, cities),
		// Two out of three orders are paid.
		Paid: p.rnd.IntN(3) < 2,
	}

	n := min(1+p.rnd.IntN(maxItemsPerOrder), len(products))
	for _, idx := range p.rnd.Perm(len(products))[:n] {
		prod := products[idx]
		o.Items = append(o.Items, order.Item{
			ProductID: prod.ID,
			Price:     prod.Price,
			Quantity:  1 + p.rnd.IntN(maxQuantity),
		})
	}
	return o
}

func (p *Populator) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func pick(r *rand.Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}
