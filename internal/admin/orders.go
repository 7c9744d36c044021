package admin

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/invoice"
)

type orderRow struct {
	order.Order
	StripeURL string
}

type ordersPage struct {
	Filters []filterGroup
	Orders  []orderRow
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	now := h.now()

	var (
		f   order.Filter
		err error
	)
	if f.Paid, err = parseBool(query, "paid"); err != nil {
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

	orders, err := h.orders.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := ordersPage{
		Filters: []filterGroup{
			newFilterGroup("paid", "paid", query, yesNoChoices),
			newFilterGroup("created", "created", query, periodChoices),
			newFilterGroup("updated", "updated", query, periodChoices),
		},
		Orders: make([]orderRow, 0, len(orders)),
	}
	for _, o := range orders {
		page.Orders = append(page.Orders, orderRow{Order: o, StripeURL: h.stripeURL(o.StripeID)})
	}
	h.render(w, r, "orders.html", page)
}

var csvHeader = []string{
	"ID", "first name", "last name", "email", "address", "postal code",
	"city", "created", "updated", "paid", "stripe id",
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// exportOrders writes the orders selected in the list as CSV.
func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}
	raw := r.PostForm["ids"]
	if len(raw) == 0 {
		badRequest(w, "no orders selected")
		return
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := parseID(s)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ids = append(ids, id)
	}

	orders, err := h.orders.ListByIDs(r.Context(), ids)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=orders.csv")

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, o := range orders {
		_ = cw.Write([]string{
			strconv.FormatInt(o.ID, 10),
			o.FirstName,
			o.LastName,
			o.Email,
			o.Address,
			o.PostalCode,
			o.City,
			o.CreatedAt.Format("02/01/2006"),
			o.UpdatedAt.Format("02/01/2006"),
			yesNo(o.Paid),
			o.StripeID,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// The status line is already sent.
		zctx.From(r.Context()).Warn("Order export truncated",
			zap.Int("orders", len(orders)),
			zap.Error(err),
		)
	}
}

func (h *Handler) loadOrder(r *http.Request) (*order.Order, error) {
	id, err := parseID(chi.URLParam(r, "orderID"))
	if err != nil {
		return nil, err
	}
	return h.orders.GetByID(r.Context(), id)
}

type detailPage struct {
	*invoice.Document
	StripeURL string
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	o, err := h.loadOrder(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := invoice.NewDocument(r.Context(), h.products, o, i18n.ParseLang(r.URL.Query().Get("lang")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "order_detail.html", detailPage{Document: doc, StripeURL: h.stripeURL(o.StripeID)})
}

func (h *Handler) orderPDF(w http.ResponseWriter, r *http.Request) {
	o, err := h.loadOrder(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	pdf, err := h.invoices.Render(r.Context(), o)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "filename="+invoice.Filename(o.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
