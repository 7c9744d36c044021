package invoice

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

// Catalog resolves the products referenced by order items.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

// Line is one rendered order item.
type Line struct {
	ItemID    int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Cost      decimal.Decimal
}

// Document is the data behind both the order detail page and the invoice.
type Document struct {
	Order *order.Order
	Lines []Line
	Total decimal.Decimal
	CSS   template.CSS
}

// NewDocument resolves product names in lang for every item of o. Products
// deleted since the order was placed are shown by id.
func NewDocument(ctx context.Context, catalog Catalog, o *order.Order, lang i18n.Lang) (*Document, error) {
	doc := &Document{
		Order: o,
		Lines: make([]Line, 0, len(o.Items)),
		Total: o.TotalCost(),
	}
	names := make(map[int64]string, len(o.Items))
	for _, item := range o.Items {
		name, ok := names[item.ProductID]
		if !ok {
			p, err := catalog.GetByID(ctx, item.ProductID)
			switch {
			case errors.Is(err, product.ErrNotFound):
				name = fmt.Sprintf("Product %d", item.ProductID)
			case err != nil:
				return nil, errors.Wrapf(err, "get product %d", item.ProductID)
			default:
				name = p.Translations.In(lang).Name
			}
			names[item.ProductID] = name
		}
		doc.Lines = append(doc.Lines, Line{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Name:      name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Cost:      item.Cost(),
		})
	}
	return doc, nil
}

// Funcs are the template helpers shared by the invoice and the admin pages.
var Funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"datetime": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}
