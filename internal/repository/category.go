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
	selectCategorySQL = `SELECT c.id, t.language_code, t.name, t.slug
		FROM categories c JOIN category_translations t ON t.category_id = c.id`

	listCategoriesSQL = selectCategorySQL + ` ORDER BY c.id, t.language_code`

	getCategoryByIDSQL = selectCategorySQL + ` WHERE c.id = $1 ORDER BY t.language_code`

	findCategoryBySlugSQL = selectCategorySQL + ` WHERE c.id = (
		SELECT category_id FROM category_translations WHERE language_code = $1 AND slug = $2
	) ORDER BY t.language_code`

	insertCategorySQL = `INSERT INTO categories DEFAULT VALUES RETURNING id`

	insertCategoryTranslationSQL = `INSERT INTO category_translations (category_id, language_code, name, slug)
		VALUES ($1, $2, $3, $4)`
)

var _ product.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository implements product.CategoryRepository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// FindBySlug returns the category whose translation in lang has the given
// slug, loaded with all of its translations.
func (r *CategoryRepository) FindBySlug(ctx context.Context, lang i18n.Lang, slug string) (*product.Category, error) {
	return r.one(ctx, findCategoryBySlugSQL, string(lang), slug)
}

// GetByID returns a category with all of its translations.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*product.Category, error) {
	return r.one(ctx, getCategoryByIDSQL, id)
}

// List returns every category ordered by ID.
func (r *CategoryRepository) List(ctx context.Context) ([]product.Category, error) {
	rows, err := r.pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return collectCategories(rows)
}

// Create inserts the category and its translations in one transaction.
func (r *CategoryRepository) Create(ctx context.Context, c *product.Category) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertCategorySQL).Scan(&c.ID); err != nil {
			return err
		}
		for _, lang := range c.Translations.Langs() {
			tr := c.Translations[lang]
			if _, err := tx.Exec(ctx, insertCategoryTranslationSQL, c.ID, string(lang), tr.Name, tr.Slug); err != nil {
				return fmt.Errorf("translation %s: %w", lang, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) one(ctx context.Context, sql string, args ...any) (*product.Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	categories, err := collectCategories(rows)
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	if len(categories) == 0 {
		return nil, product.ErrNotFound
	}
	return &categories[0], nil
}

type categoryRow struct {
	id   int64
	lang i18n.Lang
	tr   product.CategoryTranslation
}

// collectCategories folds one row per translation into categories. Rows
// must be ordered by category ID.
func collectCategories(rows pgx.Rows) ([]product.Category, error) {
	flat, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (categoryRow, error) {
		var (
			r    categoryRow
			lang string
		)
		err := row.Scan(&r.id, &lang, &r.tr.Name, &r.tr.Slug)
		r.lang = i18n.Lang(lang)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	var out []product.Category
	for _, r := range flat {
		if len(out) == 0 || out[len(out)-1].ID != r.id {
			out = append(out, product.Category{ID: r.id})
		}
		out[len(out)-1].Translations.Set(r.lang, r.tr)
	}
	return out, nil
}
