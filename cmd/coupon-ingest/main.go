// Command coupon-ingest imports coupon codes confirmed by several partner
// feeds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/couponfeed"
	"github.com/xenking/shop-backoffice/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dir         string
		driver      string
		databaseURL string
		cfg         couponfeed.Config
	)

	cmd := &cobra.Command{
		Use:          "coupon-ingest",
		Short:        "Import coupon codes that appear in several gzip feeds",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lg, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			if err := run(cmd.Context(), lg, dir, driver, databaseURL, cfg); err != nil {
				lg.Error("Coupon ingest failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dir, "dir", "data", "directory containing *.gz coupon feeds")
	f.StringVar(&driver, "driver", store.DriverPostgres, "database driver: postgres, sqlite or mysql")
	f.StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "database connection URL (default $DATABASE_URL)")
	f.IntVar(&cfg.MinSources, "min-sources", 2, "number of feeds a code must appear in")
	f.IntVar(&cfg.DefaultDiscount, "default-discount", couponfeed.StandardDiscount, "discount percentage for codes listed without one")
	f.UintVar(&cfg.Capacity, "bloom-capacity", 1_000_000, "expected codes per feed")
	return cmd
}

func run(ctx context.Context, lg *zap.Logger, dir, driver, databaseURL string, cfg couponfeed.Config) error {
	if cfg.DefaultDiscount < 0 || cfg.DefaultDiscount > 100 {
		return errors.Errorf("default discount %d is outside 0..100", cfg.DefaultDiscount)
	}

	s, err := store.Open(ctx, driver, databaseURL)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer func() { _ = s.Close() }()

	res, err := couponfeed.NewImporter(s.Coupons, lg, cfg).Import(ctx, dir)
	if err != nil {
		return errors.Wrap(err, "import")
	}

	lg.Info("Coupon ingest completed",
		zap.Int("feeds", res.Feeds),
		zap.Uint64("lines", res.Lines),
		zap.Uint64("skipped", res.Skipped),
		zap.Int("accepted", res.Accepted),
		zap.Int("created", res.Created),
	)
	fmt.Printf("Accepted %d codes from %d feeds, %d new coupons\n", res.Accepted, res.Feeds, res.Created)
	return nil
}
