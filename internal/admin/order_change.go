package admin

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
	"github.com/xenking/shop-backoffice/internal/invoice"
)

type changePage struct {
	*invoice.Document
	Products []productRow
	Saved    bool
}

func (h *Handler) changeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	o, err := h.loadOrder(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	lang := i18n.ParseLang(r.URL.Query().Get("lang"))
	doc, err := invoice.NewDocument(ctx, h.products, o, lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	products, err := h.products.List(ctx, product.Filter{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := changePage{
		Document: doc,
		Products: make([]productRow, 0, len(products)),
		Saved:    r.URL.Query().Get("saved") != "",
	}
	for _, p := range products {
		page.Products = append(page.Products, productRow{
			ID:    p.ID,
			Name:  p.Translations.In(lang).Name,
			Price: p.Price,
		})
	}
	h.render(w, r, "order_change.html", page)
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > math.MaxInt32 {
		return 0, errors.Wrapf(errBadRequest, "invalid quantity %q", s)
	}
	return n, nil
}

// updateOrderItems applies the inline item rows of the change form. Every
// row is validated before the order is touched.
func (h *Handler) updateOrderItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(chi.URLParam(r, "orderID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	changes, err := parseItemChanges(r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if v := r.PostForm.Get("new_product"); v != "" {
		c, err := h.newItem(r, v)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		changes = append(changes, c)
	}

	if err := h.orders.UpdateItems(ctx, id, changes); err != nil {
		h.fail(w, r, errors.Wrapf(err, "update order %d", id))
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/order/%d/change/?saved=1", id), http.StatusSeeOther)
}

func parseItemChanges(form url.Values) ([]order.ItemChange, error) {
	changes := make([]order.ItemChange, 0, len(form["items"]))
	for _, s := range form["items"] {
		itemID, err := parseID(s)
		if err != nil {
			return nil, err
		}
		if form.Get(fmt.Sprintf("delete_%d", itemID)) != "" {
			changes = append(changes, order.ItemChange{ID: itemID, Delete: true})
			continue
		}
		price, err := parsePrice(form.Get(fmt.Sprintf("price_%d", itemID)))
		if err != nil {
			return nil, err
		}
		quantity, err := parseQuantity(form.Get(fmt.Sprintf("quantity_%d", itemID)))
		if err != nil {
			return nil, err
		}
		changes = append(changes, order.ItemChange{ID: itemID, Price: price, Quantity: quantity})
	}
	return changes, nil
}

// newItem builds the added row. An empty price takes the current product
// price.
func (h *Handler) newItem(r *http.Request, productID string) (order.ItemChange, error) {
	pid, err := parseID(productID)
	if err != nil {
		return order.ItemChange{}, err
	}
	p, err := h.products.GetByID(r.Context(), pid)
	if errors.Is(err, product.ErrNotFound) {
		return order.ItemChange{}, errors.Wrapf(errBadRequest, "unknown product %d", pid)
	}
	if err != nil {
		return order.ItemChange{}, err
	}

	c := order.ItemChange{ProductID: pid, Price: p.Price}
	if v := r.PostForm.Get("new_price"); v != "" {
		if c.Price, err = parsePrice(v); err != nil {
			return order.ItemChange{}, err
		}
	}
	if c.Quantity, err = parseQuantity(r.PostForm.Get("new_quantity")); err != nil {
		return order.ItemChange{}, err
	}
	return c, nil
}
