package gormdb

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
	"github.com/xenking/shop-backoffice/internal/seed"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testDeps(db *gorm.DB) seed.Deps {
	return seed.Deps{
		Categories: NewCategoryRepository(db),
		Products:   NewProductRepository(db),
		Coupons:    NewCouponRepository(db),
		Orders:     NewOrderRepository(db),
		Purger:     NewPurger(db),
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestPopulate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := seed.New(testDeps(db), seed.Config{Rand: rand.New(rand.NewPCG(3, 4))})

	_, err := p.Run(ctx, seed.Options{})
	require.NoError(t, err)
	_, err = p.Run(ctx, seed.Options{})
	require.NoError(t, err)

	assert.EqualValues(t, 8, count(t, db, &categoryModel{}))
	assert.EqualValues(t, 16, count(t, db, &categoryTranslationModel{}))
	assert.EqualValues(t, 48, count(t, db, &productModel{}))
	assert.EqualValues(t, 96, count(t, db, &productTranslationModel{}))
	assert.EqualValues(t, 5, count(t, db, &couponModel{}))
	assert.EqualValues(t, 20, count(t, db, &orderModel{}))

	_, err = p.Run(ctx, seed.Options{Clear: true})
	require.NoError(t, err)

	assert.EqualValues(t, 8, count(t, db, &categoryModel{}))
	assert.EqualValues(t, 48, count(t, db, &productModel{}))
	assert.EqualValues(t, 5, count(t, db, &couponModel{}))
	assert.EqualValues(t, 10, count(t, db, &orderModel{}))
}

func TestProductRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)

	cat := product.Category{}
	cat.Translations.Set(i18n.English, product.CategoryTranslation{Name: "Home & Garden", Slug: "home-garden"})
	cat.Translations.Set(i18n.Spanish, product.CategoryTranslation{Name: "Hogar y Jardín", Slug: "hogar-jardin"})
	require.NoError(t, categories.Create(ctx, &cat))
	require.NotZero(t, cat.ID)

	found, err := categories.FindBySlug(ctx, i18n.Spanish, "hogar-jardin")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, found.ID)
	assert.Equal(t, "Home & Garden", found.Translations.In(i18n.English).Name)

	_, err = categories.FindBySlug(ctx, i18n.English, "missing")
	assert.ErrorIs(t, err, product.ErrNotFound)

	prod := product.Product{CategoryID: cat.ID, Price: decimal.RequireFromString("79.99"), Available: true}
	prod.Translations.Set(i18n.English, product.Translation{Name: "Garden Hose", Slug: "garden-hose"})
	require.NoError(t, products.Create(ctx, &prod))

	got, err := products.FindByName(ctx, i18n.English, "Garden Hose")
	require.NoError(t, err)
	assert.Equal(t, prod.ID, got.ID)
	assert.Equal(t, "79.99", got.Price.StringFixed(2))
	assert.True(t, got.Available)

	require.NoError(t, products.UpdateListings(ctx, []product.Listing{
		{ID: prod.ID, Price: decimal.RequireFromString("50.00"), Available: false},
	}))
	available := false
	list, err := products.List(ctx, product.Filter{Available: &available, CategoryID: cat.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "50.00", list[0].Price.StringFixed(2))

	err = products.UpdateListings(ctx, []product.Listing{
		{ID: prod.ID, Price: decimal.RequireFromString("9.99"), Available: true},
		{ID: 424242, Price: decimal.Zero, Available: true},
	})
	assert.ErrorIs(t, err, product.ErrNotFound)

	// The failed batch leaves the first row untouched.
	got, err = products.GetByID(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.Price.StringFixed(2))
	assert.False(t, got.Available)
}

func TestOrderRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	orders := NewOrderRepository(db)

	o := order.Order{
		FirstName: "John", LastName: "Smith", Email: "john.smith@example.com",
		Address: "123 Main Street", PostalCode: "12345", City: "Boston",
		Items: []order.Item{
			{ProductID: 1, Price: decimal.RequireFromString("45.99"), Quantity: 2},
			{ProductID: 2, Price: decimal.RequireFromString("19.99"), Quantity: 1},
		},
	}
	require.NoError(t, orders.Create(ctx, &o))
	require.NotZero(t, o.ID)
	for _, item := range o.Items {
		assert.NotZero(t, item.ID)
		assert.Equal(t, o.ID, item.OrderID)
	}

	stored, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.False(t, stored.Paid)
	assert.Equal(t, "111.97", stored.TotalCost().StringFixed(2))

	paid := true
	list, err := orders.List(ctx, order.Filter{Paid: &paid})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = orders.List(ctx, order.Filter{CreatedSince: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	byIDs, err := orders.ListByIDs(ctx, []int64{o.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	_, err = orders.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, order.ErrNotFound)

	first, second := stored.Items[0], stored.Items[1]
	require.NoError(t, orders.UpdateItems(ctx, o.ID, []order.ItemChange{
		{ID: first.ID, Price: decimal.RequireFromString("40.00"), Quantity: 3},
		{ID: second.ID, Delete: true},
		{ProductID: 3, Price: decimal.RequireFromString("5.00"), Quantity: 1},
	}))
	changed, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, changed.Items, 2)
	assert.Equal(t, "125.00", changed.TotalCost().StringFixed(2))
	assert.False(t, changed.UpdatedAt.Before(stored.UpdatedAt))

	// A foreign item id rolls back the earlier rows of the batch.
	err = orders.UpdateItems(ctx, o.ID, []order.ItemChange{
		{ID: first.ID, Price: decimal.RequireFromString("1.00"), Quantity: 1},
		{ID: 9999, Price: decimal.Zero, Quantity: 1},
	})
	require.ErrorIs(t, err, order.ErrNotFound)
	unchanged, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "125.00", unchanged.TotalCost().StringFixed(2))

	err = orders.UpdateItems(ctx, 9999, nil)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestCouponRepository_GetOrCreate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	coupons := NewCouponRepository(db)

	first, created, err := coupons.GetOrCreate(ctx, coupon.Coupon{Code: "VIP30", Discount: 30, Active: false})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.Active)

	again, created, err := coupons.GetOrCreate(ctx, coupon.Coupon{Code: "VIP30", Discount: 99, Active: true})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 30, again.Discount)
	assert.False(t, again.Active)

	_, _, err = coupons.GetOrCreate(ctx, coupon.Coupon{Code: "", Discount: 10})
	assert.ErrorIs(t, err, coupon.ErrInvalidCode)
}

func TestStaffKeyRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	keys := NewStaffKeyRepository(db)
	hash := auth.HashKey("secret", []byte("pepper"))

	_, err := keys.FindByHash(ctx, hash)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	require.NoError(t, keys.Upsert(ctx, auth.StaffKey{ID: "ops", KeyHash: hash, Name: "Ops", Active: true}))
	k, err := keys.FindByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, "Ops", k.Name)

	require.NoError(t, keys.Upsert(ctx, auth.StaffKey{ID: "ops", KeyHash: hash, Name: "Ops", Active: false}))
	_, err = keys.FindByHash(ctx, hash)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
