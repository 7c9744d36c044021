package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

var (
	_ product.CategoryRepository = (*CategoryRepository)(nil)
	_ product.Repository         = (*ProductRepository)(nil)
)

// CategoryRepository implements product.CategoryRepository with gorm.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a CategoryRepository that uses db.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindBySlug returns the category whose translation in lang has the given slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, lang i18n.Lang, slug string) (*product.Category, error) {
	var tr categoryTranslationModel
	err := r.db.WithContext(ctx).
		Where("language_code = ? AND slug = ?", string(lang), slug).
		First(&tr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("finding category %q: %w", slug, err)
	}
	return r.GetByID(ctx, tr.CategoryID)
}

// GetByID returns a category with all of its translations.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*product.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).Preload("Translations").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	c := m.toDomain()
	return &c, nil
}

// List returns every category ordered by ID.
func (r *CategoryRepository) List(ctx context.Context) ([]product.Category, error) {
	var ms []categoryModel
	if err := r.db.WithContext(ctx).Preload("Translations").Order("id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	out := make([]product.Category, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// Create inserts the category and its translations.
func (r *CategoryRepository) Create(ctx context.Context, c *product.Category) error {
	m := fromCategory(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	c.ID = m.ID
	return nil
}

// ProductRepository implements product.Repository with gorm.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a ProductRepository that uses db.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByName returns the product whose translation in lang has exactly the
// given name.
func (r *ProductRepository) FindByName(ctx context.Context, lang i18n.Lang, name string) (*product.Product, error) {
	var tr productTranslationModel
	err := r.db.WithContext(ctx).
		Where("language_code = ? AND name = ?", string(lang), name).
		Order("product_id").
		First(&tr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("finding product %q: %w", name, err)
	}
	return r.GetByID(ctx, tr.ProductID)
}

// GetByID returns a product with all of its translations.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Preload("Translations").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	p := m.toDomain()
	return &p, nil
}

// List returns the products matching f ordered by ID.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	q := r.db.WithContext(ctx).Preload("Translations").Order("id")
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if !f.CreatedSince.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedSince)
	}
	if !f.UpdatedSince.IsZero() {
		q = q.Where("updated_at >= ?", f.UpdatedSince)
	}

	var ms []productModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	out := make([]product.Product, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// Create inserts the product and its translations.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	m := fromProduct(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateListings sets price and availability and bumps updated_at in one
// transaction.
func (r *ProductRepository) UpdateListings(ctx context.Context, listings []product.Listing) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range listings {
			res := tx.Model(&productModel{}).
				Where("id = ?", l.ID).
				Updates(map[string]any{
					"price":      l.Price,
					"available":  l.Available,
					"updated_at": now,
				})
			if res.Error != nil {
				return fmt.Errorf("product %d: %w", l.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", l.ID, product.ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating listings: %w", err)
	}
	return nil
}
