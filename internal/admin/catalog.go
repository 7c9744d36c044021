package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

// maxPrice is the first value that no longer fits NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

type langOption struct {
	Code   i18n.Lang
	Active bool
}

type categoryRow struct {
	ID   int64
	Name string
	Slug string
}

type categoriesPage struct {
	Langs      []langOption
	Categories []categoryRow
}

func langOptions(lang i18n.Lang) []langOption {
	out := make([]langOption, 0, len(i18n.Supported))
	for _, l := range i18n.Supported {
		out = append(out, langOption{Code: l, Active: l == lang})
	}
	return out
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	lang := i18n.ParseLang(r.URL.Query().Get("lang"))

	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := categoriesPage{
		Langs:      langOptions(lang),
		Categories: make([]categoryRow, 0, len(categories)),
	}
	for _, c := range categories {
		t := c.Translations.In(lang)
		page.Categories = append(page.Categories, categoryRow{ID: c.ID, Name: t.Name, Slug: t.Slug})
	}
	h.render(w, r, "categories.html", page)
}

type productRow struct {
	ID        int64
	Name      string
	Slug      string
	Price     decimal.Decimal
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type productsPage struct {
	Filters  []filterGroup
	Products []productRow
	Saved    int
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	lang := i18n.ParseLang(query.Get("lang"))
	now := h.now()

	var (
		f   product.Filter
		err error
	)
	if f.Available, err = parseBool(query, "available"); err != nil {
		h.fail(w, r, err)
		return
	}
	if f.CreatedSince, err = parsePeriod(query, "created", now); err != nil {
		h.fail(w, r, err)
		return
	}
	if f.UpdatedSince, err = parsePeriod(query, "updated", now); err != nil {
		h.fail(w, r, err)
		return
	}
	if v := query.Get("category"); v != "" {
		if f.CategoryID, err = parseID(v); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categoryChoices := []choice{{Label: "All"}}
	for _, c := range categories {
		categoryChoices = append(categoryChoices, choice{
			Label: c.Translations.In(lang).Name,
			Value: strconv.FormatInt(c.ID, 10),
		})
	}

	products, err := h.products.List(ctx, f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	saved, _ := strconv.Atoi(query.Get("saved"))
	page := productsPage{
		Filters: []filterGroup{
			newFilterGroup("available", "available", query, yesNoChoices),
			newFilterGroup("created", "created", query, periodChoices),
			newFilterGroup("updated", "updated", query, periodChoices),
			newFilterGroup("category", "category", query, categoryChoices),
		},
		Products: make([]productRow, 0, len(products)),
		Saved:    saved,
	}
	for _, p := range products {
		t := p.Translations.In(lang)
		page.Products = append(page.Products, productRow{
			ID:        p.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			Price:     p.Price,
			Available: p.Available,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	h.render(w, r, "products.html", page)
}

// parsePrice accepts non-negative prices with at most two decimal places.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || !d.Equal(d.Truncate(2)) || d.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, errors.Wrapf(errBadRequest, "invalid price %q", s)
	}
	return d, nil
}

// updateProducts applies the editable price and availability columns of the
// submitted rows. Nothing is written unless every row is valid and names an
// existing product.
func (h *Handler) updateProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	ids := r.PostForm["ids"]
	listings := make([]product.Listing, 0, len(ids))
	for _, s := range ids {
		id, err := parseID(s)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		price, err := parsePrice(r.PostForm.Get(fmt.Sprintf("price_%d", id)))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		listings = append(listings, product.Listing{
			ID:        id,
			Price:     price,
			Available: r.PostForm.Get(fmt.Sprintf("available_%d", id)) != "",
		})
	}

	if err := h.products.UpdateListings(r.Context(), listings); err != nil {
		h.fail(w, r, errors.Wrap(err, "update products"))
		return
	}
	http.Redirect(w, r, "/admin/products?saved="+strconv.Itoa(len(listings)), http.StatusSeeOther)
}
