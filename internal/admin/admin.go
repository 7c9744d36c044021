// Package admin serves the staff back-office: order, category and product
// lists, CSV export, order detail and change pages, and PDF invoices.
package admin

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
	"github.com/xenking/shop-backoffice/internal/invoice"
	"github.com/xenking/shop-backoffice/pkg/httpmiddleware"
	"github.com/xenking/shop-backoffice/web"
)

// Renderer produces the PDF invoice of an order.
type Renderer interface {
	Render(ctx context.Context, o *order.Order) ([]byte, error)
}

// Config holds the dependencies of Handler. PDFLimiter and Now are optional.
type Config struct {
	Categories product.CategoryRepository
	Products   product.Repository
	Orders     order.Repository
	StaffKeys  auth.Repository
	Invoices   Renderer

	// Pepper keys the HMAC of staff API keys.
	Pepper []byte
	// StripeSecretKey selects the test or live dashboard for payment links.
	StripeSecretKey string
	// PDFLimiter bounds invoice rendering per staff key.
	PDFLimiter *httpmiddleware.Limiter
	Now        func() time.Time
}

// Handler serves the /admin routes.
type Handler struct {
	categories product.CategoryRepository
	products   product.Repository
	orders     order.Repository
	staffKeys  auth.Repository
	invoices   Renderer

	pepper     []byte
	stripeTest bool
	pdfLimiter *httpmiddleware.Limiter
	now        func() time.Time

	pages *template.Template
}

// New parses the page templates and returns a Handler.
func New(cfg Config) (*Handler, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	pages, err := template.New("admin").Funcs(invoice.Funcs).ParseFS(web.FS,
		"templates/layout.html",
		"templates/orders.html",
		"templates/order_detail.html",
		"templates/order_change.html",
		"templates/categories.html",
		"templates/products.html",
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse admin templates")
	}
	return &Handler{
		categories: cfg.Categories,
		products:   cfg.Products,
		orders:     cfg.Orders,
		staffKeys:  cfg.StaffKeys,
		invoices:   cfg.Invoices,
		pepper:     cfg.Pepper,
		stripeTest: isStripeTestKey(cfg.StripeSecretKey),
		pdfLimiter: cfg.PDFLimiter,
		now:        cfg.Now,
		pages:      pages,
	}, nil
}

// Routes returns the router for every path under /admin.
func (h *Handler) Routes() http.Handler {
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Route("/admin", func(r chi.Router) {
		r.Handle("/static/*", http.StripPrefix("/admin/static/", http.FileServerFS(static)))

		r.Group(func(r chi.Router) {
			r.Use(h.StaffOnly)
			// Browsers resend Basic credentials on cross-site form posts.
			r.Use(http.NewCrossOriginProtection().Handler)

			r.Get("/orders", h.listOrders)
			r.Post("/orders/export", h.exportOrders)
			r.Get("/order/{orderID}/", h.orderDetail)
			r.Get("/order/{orderID}/change/", h.changeOrder)
			r.Post("/order/{orderID}/change/", h.updateOrderItems)
			r.With(h.limitPDF).Get("/order/{orderID}/pdf/", h.orderPDF)

			r.Get("/categories", h.listCategories)
			r.Get("/products", h.listProducts)
			r.Post("/products", h.updateProducts)
		})
	})
	return r
}

func (h *Handler) limitPDF(next http.Handler) http.Handler {
	if h.pdfLimiter == nil {
		return next
	}
	return httpmiddleware.RateLimit(h.pdfLimiter, func(r *http.Request) string {
		if k, ok := StaffKeyFromContext(r.Context()); ok {
			return k.ID
		}
		return httpmiddleware.RemoteIP(r)
	})(next)
}

// render executes a page into a buffer so template errors still produce a
// clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(w, r, errors.Wrapf(err, "render %s", name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// fail maps err to a status code, logging unexpected errors.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		badRequest(w, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, product.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	default:
		zctx.From(r.Context()).Error("Admin request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}
