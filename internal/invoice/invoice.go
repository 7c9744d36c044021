// Package invoice renders order invoices to PDF.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/web"
)

// Converter turns an HTML document into a PDF.
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Cache stores rendered PDFs. A miss is reported as ok=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, pdf []byte) error
}

// Archive keeps a durable copy of every rendered PDF.
type Archive interface {
	Put(ctx context.Context, key string, pdf []byte) error
}

// Config wires a Service. Cache, Archive and the telemetry providers are
// optional.
type Config struct {
	Catalog        Catalog
	Converter      Converter
	Cache          Cache
	Archive        Archive
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
	Lang           i18n.Lang
}

// Service renders invoices.
type Service struct {
	catalog   Catalog
	converter Converter
	cache     Cache
	archive   Archive
	lang      i18n.Lang

	tmpl     *template.Template
	css      template.CSS
	rendered metric.Int64Counter
	tracer   trace.Tracer
}

// NewService parses the embedded invoice template and stylesheet.
func NewService(cfg Config) (*Service, error) {
	if cfg.Catalog == nil || cfg.Converter == nil {
		return nil, errors.New("invoice: catalog and converter are required")
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = metricnoop.NewMeterProvider()
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = tracenoop.NewTracerProvider()
	}
	if cfg.Lang == "" {
		cfg.Lang = i18n.Fallback
	}

	tmpl, err := template.New("pdf.html").Funcs(Funcs).ParseFS(web.FS, "templates/pdf.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse invoice template")
	}
	css, err := fs.ReadFile(web.FS, "static/pdf.css")
	if err != nil {
		return nil, errors.Wrap(err, "read invoice stylesheet")
	}

	rendered, err := cfg.MeterProvider.Meter("shop.invoice").Int64Counter("invoices_rendered_total",
		metric.WithDescription("Invoices served, by source"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create counter")
	}

	return &Service{
		catalog:   cfg.Catalog,
		converter: cfg.Converter,
		cache:     cfg.Cache,
		archive:   cfg.Archive,
		lang:      cfg.Lang,
		tmpl:      tmpl,
		css:       template.CSS(css),
		rendered:  rendered,
		tracer:    cfg.TracerProvider.Tracer("shop.invoice"),
	}, nil
}

// Filename is the name under which the invoice of order id is served.
func Filename(id int64) string {
	return fmt.Sprintf("order_%d.pdf", id)
}

// ArchiveKey is the object key of the archived invoice of order id.
func ArchiveKey(id int64) string {
	return "invoices/" + Filename(id)
}

// cacheKey changes whenever the order is updated.
func cacheKey(o *order.Order) string {
	return fmt.Sprintf("invoice:%d:%d", o.ID, o.UpdatedAt.UnixNano())
}

// HTML renders the invoice page of o with the stylesheet inlined.
func (s *Service) HTML(ctx context.Context, o *order.Order) ([]byte, error) {
	doc, err := NewDocument(ctx, s.catalog, o, s.lang)
	if err != nil {
		return nil, err
	}
	doc.CSS = s.css

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, doc); err != nil {
		return nil, errors.Wrap(err, "execute invoice template")
	}
	return buf.Bytes(), nil
}

// Render returns the PDF invoice of o. Cache and archive failures are logged
// and do not fail the call.
func (s *Service) Render(ctx context.Context, o *order.Order) (_ []byte, rerr error) {
	ctx, span := s.tracer.Start(ctx, "invoice.Render",
		trace.WithAttributes(attribute.Int64("order.id", o.ID)),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	lg := zctx.From(ctx).With(zap.Int64("order_id", o.ID))
	key := cacheKey(o)

	if s.cache != nil {
		pdf, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			lg.Warn("Invoice cache read failed", zap.Error(err))
		case ok:
			s.rendered.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "cache")))
			return pdf, nil
		}
	}

	html, err := s.HTML(ctx, o)
	if err != nil {
		return nil, err
	}
	pdf, err := s.converter.Convert(ctx, html)
	if err != nil {
		return nil, errors.Wrap(err, "convert invoice")
	}
	s.rendered.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "render")))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, pdf); err != nil {
			lg.Warn("Invoice cache write failed", zap.Error(err))
		}
	}
	if s.archive != nil {
		if err := s.archive.Put(ctx, ArchiveKey(o.ID), pdf); err != nil {
			lg.Warn("Invoice archive failed", zap.Error(err))
		}
	}
	return pdf, nil
}
