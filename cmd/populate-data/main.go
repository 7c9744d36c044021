// Command populate-data seeds the shop database with multilingual
// categories, products, coupons and sample orders.
package main

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/seed"
	"github.com/xenking/shop-backoffice/internal/store"
)

type options struct {
	clear          bool
	seed           uint64
	driver         string
	databaseURL    string
	staffKey       string
	staffKeyName   string
	staffKeyPepper string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "populate-data",
		Short:        "Populate the database with sample data",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lg, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			if err := run(cmd.Context(), lg, opts, cmd.Flags().Changed("seed")); err != nil {
				lg.Error("Populate failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.clear, "clear", false, "Clear existing data before populating")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for the random generator (default: random)")
	f.StringVar(&opts.driver, "driver", store.DriverPostgres, "database driver: postgres, sqlite or mysql")
	f.StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "database connection URL (default $DATABASE_URL)")
	f.StringVar(&opts.staffKey, "staff-key", os.Getenv("SHOP_SEED_STAFF_KEY"), "staff API key to provision (default $SHOP_SEED_STAFF_KEY)")
	f.StringVar(&opts.staffKeyName, "staff-key-name", "Default staff key", "display name of the provisioned staff key")
	f.StringVar(&opts.staffKeyPepper, "staff-key-pepper", os.Getenv("SHOP_STAFF_KEY_PEPPER"), "HMAC pepper for staff key hashing (default $SHOP_STAFF_KEY_PEPPER)")
	return cmd
}

func run(ctx context.Context, lg *zap.Logger, opts options, seeded bool) error {
	s, err := store.Open(ctx, opts.driver, opts.databaseURL)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer func() { _ = s.Close() }()

	cfg := seed.Config{Logger: lg, Out: os.Stdout}
	if seeded {
		cfg.Rand = rand.New(rand.NewPCG(opts.seed, opts.seed))
	}
	if _, err := seed.New(s.SeedDeps(), cfg).Run(ctx, seed.Options{Clear: opts.clear}); err != nil {
		return err
	}

	if opts.staffKey != "" {
		if err := seedStaffKey(ctx, lg, s.StaffKeys, opts); err != nil {
			return errors.Wrap(err, "seed staff key")
		}
	}
	return nil
}

func seedStaffKey(ctx context.Context, lg *zap.Logger, keys auth.Repository, opts options) error {
	if opts.staffKeyPepper == "" {
		return errors.New("staff key pepper is required: set --staff-key-pepper or SHOP_STAFF_KEY_PEPPER")
	}
	k := auth.StaffKey{
		ID:      "default",
		KeyHash: auth.HashKey(opts.staffKey, []byte(opts.staffKeyPepper)),
		Name:    opts.staffKeyName,
		Active:  true,
	}
	if err := keys.Upsert(ctx, k); err != nil {
		return err
	}
	lg.Info("Upserted staff key", zap.String("id", k.ID), zap.String("name", k.Name))
	return nil
}
