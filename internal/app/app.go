package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/admin"
	"github.com/xenking/shop-backoffice/internal/invoice"
	"github.com/xenking/shop-backoffice/internal/store"
	"github.com/xenking/shop-backoffice/pkg/health"
	"github.com/xenking/shop-backoffice/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("driver", cfg.Database.Driver),
	)

	s, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer func() { _ = s.Close() }()

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("database", 5*time.Second, health.PingCheck("database", s.Pinger))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	// Invoice rendering with optional cache and archive.
	invoiceCfg := invoice.Config{
		Catalog:        s.Products,
		Converter:      invoice.Wkhtmltopdf{Path: cfg.Invoice.WkhtmltopdfPath},
		MeterProvider:  m.MeterProvider(),
		TracerProvider: m.TracerProvider(),
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		invoiceCfg.Cache = invoice.NewRedisCache(rdb, cfg.Invoice.CacheTTL)
		healthSvc.AddReadinessCheck("redis", 2*time.Second, health.PingCheck("redis",
			health.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		))
	}
	if cfg.S3.Bucket != "" {
		archive, err := invoice.NewS3Archive(ctx, invoice.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return errors.Wrap(err, "create invoice archive")
		}
		invoiceCfg.Archive = archive
	}
	invoices, err := invoice.NewService(invoiceCfg)
	if err != nil {
		return errors.Wrap(err, "create invoice service")
	}

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	pdfLimiter := httpmiddleware.NewLimiter(cfg.Invoice.RateLimit.Max, cfg.Invoice.RateLimit.Window)
	go pdfLimiter.RunEviction(ctx)

	adminHandler, err := admin.New(admin.Config{
		Categories:      s.Categories,
		Products:        s.Products,
		Orders:          s.Orders,
		StaffKeys:       s.StaffKeys,
		Invoices:        invoices,
		Pepper:          []byte(cfg.StaffKeyPepper),
		StripeSecretKey: cfg.Stripe.SecretKey,
		PDFLimiter:      pdfLimiter,
	})
	if err != nil {
		return errors.Wrap(err, "create admin handler")
	}

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(newMux(healthSvc, adminHandler),
			httpmiddleware.Recovery(),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("shop-admin", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// newMux serves the health endpoints and the admin routes on one server.
func newMux(healthSvc *health.Health, adminHandler *admin.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/admin/", adminHandler.Routes())
	return mux
}
