package seed

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

// memStore is an in-memory stand-in for the database used by the
// populator tests.
type memStore struct {
	nextID     int64
	categories []product.Category
	products   []product.Product
	coupons    []coupon.Coupon
	orders     []order.Order
	purges     int

	categoryErr error
	orderErr    error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) deps() Deps {
	return Deps{
		Categories: memCategories{s},
		Products:   memProducts{s},
		Coupons:    memCoupons{s},
		Orders:     memOrders{s},
		Purger:     s,
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Purge(_ context.Context) error {
	s.purges++
	s.orders = nil
	s.products = nil
	s.categories = nil
	s.coupons = nil
	return nil
}

func (s *memStore) itemCount() int {
	n := 0
	for _, o := range s.orders {
		n += len(o.Items)
	}
	return n
}

type memCategories struct{ s *memStore }

func (m memCategories) FindBySlug(_ context.Context, lang i18n.Lang, slug string) (*product.Category, error) {
	if m.s.categoryErr != nil {
		return nil, m.s.categoryErr
	}
	for _, c := range m.s.categories {
		if tr, ok := c.Translations.Get(lang); ok && tr.Slug == slug {
			c.Translations = maps.Clone(c.Translations)
			return &c, nil
		}
	}
	return nil, product.ErrNotFound
}

func (m memCategories) GetByID(_ context.Context, id int64) (*product.Category, error) {
	for _, c := range m.s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, product.ErrNotFound
}

func (m memCategories) List(_ context.Context) ([]product.Category, error) {
	return slices.Clone(m.s.categories), nil
}

func (m memCategories) Create(_ context.Context, c *product.Category) error {
	if m.s.categoryErr != nil {
		return m.s.categoryErr
	}
	c.ID = m.s.id()
	stored := *c
	stored.Translations = maps.Clone(c.Translations)
	m.s.categories = append(m.s.categories, stored)
	return nil
}

type memProducts struct{ s *memStore }

func (m memProducts) FindByName(_ context.Context, lang i18n.Lang, name string) (*product.Product, error) {
	for _, p := range m.s.products {
		if tr, ok := p.Translations.Get(lang); ok && tr.Name == name {
			p.Translations = maps.Clone(p.Translations)
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (m memProducts) GetByID(_ context.Context, id int64) (*product.Product, error) {
	for _, p := range m.s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (m memProducts) List(_ context.Context, _ product.Filter) ([]product.Product, error) {
	return slices.Clone(m.s.products), nil
}

func (m memProducts) Create(_ context.Context, p *product.Product) error {
	p.ID = m.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	stored.Translations = maps.Clone(p.Translations)
	m.s.products = append(m.s.products, stored)
	return nil
}

func (m memProducts) UpdateListings(_ context.Context, listings []product.Listing) error {
	idx := make([]int, 0, len(listings))
	for _, l := range listings {
		i := slices.IndexFunc(m.s.products, func(p product.Product) bool { return p.ID == l.ID })
		if i < 0 {
			return product.ErrNotFound
		}
		idx = append(idx, i)
	}
	for n, i := range idx {
		m.s.products[i].Price = listings[n].Price
		m.s.products[i].Available = listings[n].Available
	}
	return nil
}

type memCoupons struct{ s *memStore }

func (m memCoupons) GetOrCreate(_ context.Context, c coupon.Coupon) (*coupon.Coupon, bool, error) {
	for _, existing := range m.s.coupons {
		if existing.Code == c.Code {
			return &existing, false, nil
		}
	}
	c.ID = m.s.id()
	m.s.coupons = append(m.s.coupons, c)
	return &c, true, nil
}

func (m memCoupons) List(_ context.Context) ([]coupon.Coupon, error) {
	return slices.Clone(m.s.coupons), nil
}

type memOrders struct{ s *memStore }

func (m memOrders) Create(_ context.Context, o *order.Order) error {
	if m.s.orderErr != nil {
		return m.s.orderErr
	}
	o.ID = m.s.id()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		o.Items[i].ID = m.s.id()
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = slices.Clone(o.Items)
	m.s.orders = append(m.s.orders, stored)
	return nil
}

func (m memOrders) GetByID(_ context.Context, id int64) (*order.Order, error) {
	for _, o := range m.s.orders {
		if o.ID == id {
			o.Items = slices.Clone(o.Items)
			return &o, nil
		}
	}
	return nil, order.ErrNotFound
}

func (m memOrders) List(_ context.Context, _ order.Filter) ([]order.Order, error) {
	return slices.Clone(m.s.orders), nil
}

func (m memOrders) ListByIDs(_ context.Context, ids []int64) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.s.orders {
		if slices.Contains(ids, o.ID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m memOrders) UpdateItems(_ context.Context, id int64, changes []order.ItemChange) error {
	i := slices.IndexFunc(m.s.orders, func(o order.Order) bool { return o.ID == id })
	if i < 0 {
		return order.ErrNotFound
	}
	items := slices.Clone(m.s.orders[i].Items)
	for _, c := range changes {
		if c.ID == 0 {
			items = append(items, order.Item{ID: m.s.id(), OrderID: id, ProductID: c.ProductID, Price: c.Price, Quantity: c.Quantity})
			continue
		}
		j := slices.IndexFunc(items, func(it order.Item) bool { return it.ID == c.ID })
		if j < 0 {
			return order.ErrNotFound
		}
		if c.Delete {
			items = slices.Delete(items, j, j+1)
			continue
		}
		items[j].Price, items[j].Quantity = c.Price, c.Quantity
	}
	m.s.orders[i].Items = items
	m.s.orders[i].UpdatedAt = time.Now()
	return nil
}
