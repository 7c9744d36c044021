//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
	"github.com/xenking/shop-backoffice/internal/repository"
	"github.com/xenking/shop-backoffice/internal/seed"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "shop",
				"POSTGRES_DB":       "shop",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://shop:shop@%s:%s/shop?sslmode=disable", host, port.Port())
	pool, err := repository.NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, repository.RunMigrations(ctx, pool))
	// Migrations are idempotent.
	require.NoError(t, repository.RunMigrations(ctx, pool))
	return pool
}

func deps(pool *pgxpool.Pool) seed.Deps {
	return seed.Deps{
		Categories: repository.NewCategoryRepository(pool),
		Products:   repository.NewProductRepository(pool),
		Coupons:    repository.NewCouponRepository(pool),
		Orders:     repository.NewOrderRepository(pool),
		Purger:     repository.NewPurger(pool),
	}
}

func TestPopulate(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	d := deps(pool)
	p := seed.New(d, seed.Config{Rand: rand.New(rand.NewPCG(7, 7))})

	count := func(table string) int {
		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n))
		return n
	}

	_, err := p.Run(ctx, seed.Options{})
	require.NoError(t, err)
	_, err = p.Run(ctx, seed.Options{})
	require.NoError(t, err)

	assert.Equal(t, 8, count("categories"))
	assert.Equal(t, 16, count("category_translations"))
	assert.Equal(t, 48, count("products"))
	assert.Equal(t, 96, count("product_translations"))
	assert.Equal(t, 5, count("coupons"))
	assert.Equal(t, 20, count("orders"))

	headphones, err := d.Products.FindByName(ctx, i18n.English, "Wireless Bluetooth Headphones")
	require.NoError(t, err)
	assert.Equal(t, "79.99", headphones.Price.StringFixed(2))
	es, ok := headphones.Translations.Get(i18n.Spanish)
	require.True(t, ok)
	assert.Equal(t, "auriculares-bluetooth-inalambricos", es.Slug)

	_, err = p.Run(ctx, seed.Options{Clear: true})
	require.NoError(t, err)
	assert.Equal(t, 8, count("categories"))
	assert.Equal(t, 48, count("products"))
	assert.Equal(t, 5, count("coupons"))
	assert.Equal(t, 10, count("orders"))
}

func TestOrderRepository(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	d := deps(pool)

	cat := product.Category{}
	cat.Translations.Set(i18n.English, product.CategoryTranslation{Name: "Kitchen", Slug: "kitchen"})
	require.NoError(t, d.Categories.Create(ctx, &cat))

	prod := product.Product{CategoryID: cat.ID, Price: decimal.RequireFromString("45.99"), Available: true}
	prod.Translations.Set(i18n.English, product.Translation{Name: "Mug", Slug: "mug"})
	require.NoError(t, d.Products.Create(ctx, &prod))

	o := order.Order{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Address: "1 Main Street", PostalCode: "12345", City: "London", Paid: true,
		Items: []order.Item{{ProductID: prod.ID, Price: prod.Price, Quantity: 2}},
	}
	require.NoError(t, d.Orders.Create(ctx, &o))
	require.NotZero(t, o.ID)
	require.NotZero(t, o.Items[0].ID)

	require.NoError(t, d.Products.UpdateListings(ctx, []product.Listing{
		{ID: prod.ID, Price: decimal.RequireFromString("50.00"), Available: false},
	}))
	err := d.Products.UpdateListings(ctx, []product.Listing{
		{ID: prod.ID, Price: decimal.RequireFromString("1.00"), Available: true},
		{ID: prod.ID + 1000, Price: decimal.Zero, Available: true},
	})
	require.ErrorIs(t, err, product.ErrNotFound)

	stored, err := d.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "45.99", stored.Items[0].Price.StringFixed(2))
	assert.Equal(t, "91.98", stored.TotalCost().StringFixed(2))

	paid := true
	list, err := d.Orders.List(ctx, order.Filter{Paid: &paid, CreatedSince: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	unpaid := false
	list, err = d.Orders.List(ctx, order.Filter{Paid: &unpaid})
	require.NoError(t, err)
	assert.Empty(t, list)

	byIDs, err := d.Orders.ListByIDs(ctx, []int64{o.ID, 999999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	_, err = d.Orders.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, order.ErrNotFound)

	available := false
	products, err := d.Products.List(ctx, product.Filter{Available: &available})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "50.00", products[0].Price.StringFixed(2))

	err = d.Orders.UpdateItems(ctx, o.ID, []order.ItemChange{
		{ID: stored.Items[0].ID, Price: decimal.RequireFromString("40.00"), Quantity: 3},
		{ProductID: prod.ID, Price: prod.Price, Quantity: 1},
	})
	require.NoError(t, err)
	changed, err := d.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "165.99", changed.TotalCost().StringFixed(2))
	assert.True(t, changed.UpdatedAt.After(stored.UpdatedAt))

	err = d.Orders.UpdateItems(ctx, o.ID, []order.ItemChange{
		{ID: stored.Items[0].ID, Delete: true},
		{ID: stored.Items[0].ID + 1000, Price: decimal.Zero, Quantity: 1},
	})
	require.ErrorIs(t, err, order.ErrNotFound)
	changed, err = d.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, changed.Items, 2)
}

func TestCouponRepository_GetOrCreate(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repo := repository.NewCouponRepository(pool)
	now := time.Now().UTC().Truncate(time.Second)

	c, created, err := repo.GetOrCreate(ctx, coupon.Coupon{
		Code: "SAVE20", Discount: 20, ValidFrom: now, ValidTo: now.Add(time.Hour), Active: true,
	})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := repo.GetOrCreate(ctx, coupon.Coupon{
		Code: "SAVE20", Discount: 50, ValidFrom: now, ValidTo: now.Add(time.Hour), Active: true,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c.ID, again.ID)
	assert.Equal(t, 20, again.Discount)

	_, _, err = repo.GetOrCreate(ctx, coupon.Coupon{Code: "BAD", Discount: 150})
	assert.ErrorIs(t, err, coupon.ErrInvalidDiscount)
}

func TestStaffKeyRepository(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repo := repository.NewStaffKeyRepository(pool)
	pepper := []byte("pepper")

	require.NoError(t, repo.Upsert(ctx, auth.StaffKey{
		ID: "ops", KeyHash: auth.HashKey("secret", pepper), Name: "Ops", Active: true,
	}))

	k, err := repo.FindByHash(ctx, auth.HashKey("secret", pepper))
	require.NoError(t, err)
	assert.Equal(t, "ops", k.ID)

	require.NoError(t, repo.Upsert(ctx, auth.StaffKey{
		ID: "ops", KeyHash: auth.HashKey("secret", pepper), Name: "Ops", Active: false,
	}))
	_, err = repo.FindByHash(ctx, auth.HashKey("secret", pepper))
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
