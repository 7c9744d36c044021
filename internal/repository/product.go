package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

const (
	selectProductSQL = `SELECT p.id, p.category_id, p.price, p.available, p.created_at, p.updated_at,
		t.language_code, t.name, t.slug, t.description
		FROM products p JOIN product_translations t ON t.product_id = p.id`

	listProductsSQL = selectProductSQL + `
		WHERE ($1::boolean IS NULL OR p.available = $1)
		AND ($2::bigint = 0 OR p.category_id = $2)
		AND ($3::timestamptz IS NULL OR p.created_at >= $3)
		AND ($4::timestamptz IS NULL OR p.updated_at >= $4)
		ORDER BY p.id, t.language_code`

	getProductByIDSQL = selectProductSQL + ` WHERE p.id = $1 ORDER BY t.language_code`

	findProductByNameSQL = selectProductSQL + ` WHERE p.id = (
		SELECT product_id FROM product_translations WHERE language_code = $1 AND name = $2
		ORDER BY product_id LIMIT 1
	) ORDER BY t.language_code`

	insertProductSQL = `INSERT INTO products (category_id, price, available)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	insertProductTranslationSQL = `INSERT INTO product_translations (product_id, language_code, name, slug, description)
		VALUES ($1, $2, $3, $4, $5)`

	updateProductListingSQL = `UPDATE products SET price = $2, available = $3, updated_at = now() WHERE id = $1`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// FindByName returns the product whose translation in lang has exactly the
// given name.
func (r *ProductRepository) FindByName(ctx context.Context, lang i18n.Lang, name string) (*product.Product, error) {
	return r.one(ctx, findProductByNameSQL, string(lang), name)
}

// GetByID returns a single product with all of its translations.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.one(ctx, getProductByIDSQL, id)
}

// List returns the products matching f ordered by ID.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL,
		f.Available, f.CategoryID, since(f.CreatedSince), since(f.UpdatedSince),
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return collectProducts(rows)
}

// Create inserts the product and its translations in one transaction.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertProductSQL, p.CategoryID, p.Price, p.Available).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}
		for _, lang := range p.Translations.Langs() {
			tr := p.Translations[lang]
			_, err := tx.Exec(ctx, insertProductTranslationSQL, p.ID, string(lang), tr.Name, tr.Slug, tr.Description)
			if err != nil {
				return fmt.Errorf("translation %s: %w", lang, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// UpdateListings sets price and availability and bumps updated_at in one
// transaction.
func (r *ProductRepository) UpdateListings(ctx context.Context, listings []product.Listing) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, l := range listings {
			tag, err := tx.Exec(ctx, updateProductListingSQL, l.ID, l.Price, l.Available)
			if err != nil {
				return fmt.Errorf("product %d: %w", l.ID, err)
			}
			if tag.RowsAffected() == 0 {
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

func (r *ProductRepository) one(ctx context.Context, sql string, args ...any) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	if len(products) == 0 {
		return nil, product.ErrNotFound
	}
	return &products[0], nil
}

type productRow struct {
	p    product.Product
	lang i18n.Lang
	tr   product.Translation
}

// collectProducts folds one row per translation into products. Rows must be
// ordered by product ID.
func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	flat, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (productRow, error) {
		var (
			r    productRow
			lang string
		)
		err := row.Scan(
			&r.p.ID, &r.p.CategoryID, &r.p.Price, &r.p.Available, &r.p.CreatedAt, &r.p.UpdatedAt,
			&lang, &r.tr.Name, &r.tr.Slug, &r.tr.Description,
		)
		r.lang = i18n.Lang(lang)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	var out []product.Product
	for _, r := range flat {
		if len(out) == 0 || out[len(out)-1].ID != r.p.ID {
			out = append(out, r.p)
		}
		out[len(out)-1].Translations.Set(r.lang, r.tr)
	}
	return out, nil
}
