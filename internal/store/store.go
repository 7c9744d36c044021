// Package store opens the persistence backend selected by driver name and
// exposes its repositories.
package store

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
	"github.com/xenking/shop-backoffice/internal/repository"
	"github.com/xenking/shop-backoffice/internal/seed"
	"github.com/xenking/shop-backoffice/internal/storage/gormdb"
	"github.com/xenking/shop-backoffice/pkg/health"
)

// DriverPostgres selects the pgx backend. gormdb.DriverSQLite and
// gormdb.DriverMySQL select gorm.
const DriverPostgres = "postgres"

// Store bundles the repositories of one backend.
type Store struct {
	Driver     string
	Categories product.CategoryRepository
	Products   product.Repository
	Coupons    coupon.Repository
	Orders     order.Repository
	StaffKeys  auth.Repository
	Purger     seed.Purger
	Pinger     health.Pinger

	close func() error
}

// Open connects to the database and applies the schema.
func Open(ctx context.Context, driver, url string) (*Store, error) {
	if url == "" {
		return nil, errors.New("database URL is required")
	}
	switch driver {
	case "", DriverPostgres:
		return openPostgres(ctx, url)
	case gormdb.DriverSQLite, gormdb.DriverMySQL:
		return openGorm(driver, url)
	default:
		return nil, errors.Errorf("unsupported driver %q", driver)
	}
}

func openPostgres(ctx context.Context, url string) (*Store, error) {
	pool, err := repository.NewPool(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}
	if err := repository.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return &Store{
		Driver:     DriverPostgres,
		Categories: repository.NewCategoryRepository(pool),
		Products:   repository.NewProductRepository(pool),
		Coupons:    repository.NewCouponRepository(pool),
		Orders:     repository.NewOrderRepository(pool),
		StaffKeys:  repository.NewStaffKeyRepository(pool),
		Purger:     repository.NewPurger(pool),
		Pinger:     pool,
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openGorm(driver, dsn string) (*Store, error) {
	db, err := gormdb.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if err := gormdb.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Store{
		Driver:     driver,
		Categories: gormdb.NewCategoryRepository(db),
		Products:   gormdb.NewProductRepository(db),
		Coupons:    gormdb.NewCouponRepository(db),
		Orders:     gormdb.NewOrderRepository(db),
		StaffKeys:  gormdb.NewStaffKeyRepository(db),
		Purger:     gormdb.NewPurger(db),
		Pinger:     health.PingerFunc(sqlDB.PingContext),
		close:      sqlDB.Close,
	}, nil
}

// SeedDeps returns the collaborators of a seed.Populator.
func (s *Store) SeedDeps() seed.Deps {
	return seed.Deps{
		Categories: s.Categories,
		Products:   s.Products,
		Coupons:    s.Coupons,
		Orders:     s.Orders,
		Purger:     s.Purger,
	}
}

// Close releases the connections.
func (s *Store) Close() error {
	return s.close()
}
