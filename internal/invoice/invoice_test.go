package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

type fakeCatalog map[int64]*product.Product

func (c fakeCatalog) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

type fakeConverter struct {
	calls int
	err   error
	html  []byte
}

func (c *fakeConverter) Convert(_ context.Context, html []byte) ([]byte, error) {
	c.calls++
	c.html = html
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeCache struct {
	data map[string][]byte
	err  error
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, pdf []byte) error {
	if c.err != nil {
		return c.err
	}
	if c.data == nil {
		c.data = make(map[string][]byte)
	}
	c.data[key] = pdf
	return nil
}

type fakeArchive struct {
	keys []string
	err  error
}

func (a *fakeArchive) Put(_ context.Context, key string, _ []byte) error {
	a.keys = append(a.keys, key)
	return a.err
}

func testCatalog() fakeCatalog {
	headphones := &product.Product{ID: 1, Price: decimal.RequireFromString("79.99")}
	headphones.Translations.Set(i18n.English, product.Translation{Name: "Wireless Bluetooth Headphones"})
	headphones.Translations.Set(i18n.Spanish, product.Translation{Name: "Auriculares Bluetooth Inalámbricos"})
	lamp := &product.Product{ID: 2, Price: decimal.RequireFromString("19.99")}
	lamp.Translations.Set(i18n.English, product.Translation{Name: "Desk Lamp"})
	return fakeCatalog{1: headphones, 2: lamp}
}

func testOrder() *order.Order {
	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return &order.Order{
		ID:         7,
		FirstName:  "Emma",
		LastName:   "Garcia",
		Email:      "emma.garcia@example.com",
		Address:    "123 Main Street",
		PostalCode: "28001",
		City:       "Madrid",
		Paid:       true,
		CreatedAt:  created,
		UpdatedAt:  created,
		Items: []order.Item{
			{ID: 1, ProductID: 1, Price: decimal.RequireFromString("45.99"), Quantity: 2},
			{ID: 2, ProductID: 2, Price: decimal.RequireFromString("19.99"), Quantity: 1},
			{ID: 3, ProductID: 99, Price: decimal.RequireFromString("5.00"), Quantity: 1},
		},
	}
}

func TestNewDocument(t *testing.T) {
	ctx := context.Background()

	doc, err := NewDocument(ctx, testCatalog(), testOrder(), i18n.Spanish)
	require.NoError(t, err)
	require.Len(t, doc.Lines, 3)

	assert.Equal(t, "Auriculares Bluetooth Inalámbricos", doc.Lines[0].Name)
	// Price comes from the item snapshot, not the current product price.
	assert.Equal(t, "45.99", doc.Lines[0].Price.StringFixed(2))
	assert.Equal(t, "91.98", doc.Lines[0].Cost.StringFixed(2))
	assert.Equal(t, "Desk Lamp", doc.Lines[1].Name, "missing translation falls back to English")
	assert.Equal(t, "Product 99", doc.Lines[2].Name)
	assert.Equal(t, "116.97", doc.Total.StringFixed(2))
}

type brokenCatalog struct{}

func (brokenCatalog) GetByID(context.Context, int64) (*product.Product, error) {
	return nil, errors.New("connection reset")
}

func TestNewDocument_CatalogError(t *testing.T) {
	_, err := NewDocument(context.Background(), brokenCatalog{}, testOrder(), i18n.English)
	require.ErrorContains(t, err, "connection reset")
}

func TestService_HTML(t *testing.T) {
	svc, err := NewService(Config{Catalog: testCatalog(), Converter: &fakeConverter{}})
	require.NoError(t, err)

	html, err := svc.HTML(context.Background(), testOrder())
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "Invoice no. 7")
	assert.Contains(t, page, "May 10, 2024")
	assert.Contains(t, page, "Emma Garcia")
	assert.Contains(t, page, "28001, Madrid")
	assert.Contains(t, page, "Wireless Bluetooth Headphones")
	assert.Contains(t, page, "$91.98")
	assert.Contains(t, page, "$116.97")
	assert.Contains(t, page, `class="paid"`)
	assert.Contains(t, page, ".pending", "stylesheet is inlined")

	o := testOrder()
	o.Paid = false
	html, err = svc.HTML(context.Background(), o)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Pending payment")
}

func TestService_Render(t *testing.T) {
	ctx := context.Background()
	conv := &fakeConverter{}
	cache := &fakeCache{}
	archive := &fakeArchive{}

	svc, err := NewService(Config{
		Catalog:   testCatalog(),
		Converter: conv,
		Cache:     cache,
		Archive:   archive,
	})
	require.NoError(t, err)

	o := testOrder()
	pdf, err := svc.Render(ctx, o)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, []string{"invoices/order_7.pdf"}, archive.keys)
	assert.Contains(t, string(conv.html), "Invoice no. 7")

	_, err = svc.Render(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, 1, conv.calls, "second render is served from cache")

	o.UpdatedAt = o.UpdatedAt.Add(time.Minute)
	_, err = svc.Render(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, 2, conv.calls, "an updated order is rendered again")
}

func TestService_Render_SideEffectFailures(t *testing.T) {
	conv := &fakeConverter{}
	svc, err := NewService(Config{
		Catalog:   testCatalog(),
		Converter: conv,
		Cache:     &fakeCache{err: errors.New("redis down")},
		Archive:   &fakeArchive{err: errors.New("access denied")},
	})
	require.NoError(t, err)

	pdf, err := svc.Render(context.Background(), testOrder())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, conv.calls)
}

func TestService_Render_ConvertError(t *testing.T) {
	svc, err := NewService(Config{
		Catalog:   testCatalog(),
		Converter: &fakeConverter{err: errors.New("exit status 1")},
	})
	require.NoError(t, err)

	_, err = svc.Render(context.Background(), testOrder())
	require.ErrorContains(t, err, "convert invoice")
}

func TestNewService_Required(t *testing.T) {
	_, err := NewService(Config{Catalog: testCatalog()})
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "order_42.pdf", Filename(42))
	assert.Equal(t, "invoices/order_42.pdf", ArchiveKey(42))
}

type fakeS3 struct {
	in *s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archive_Put(t *testing.T) {
	client := &fakeS3{}
	a := &S3Archive{client: client, bucket: "shop-invoices"}

	require.NoError(t, a.Put(context.Background(), "invoices/order_1.pdf", []byte("pdf")))
	assert.Equal(t, "shop-invoices", aws.ToString(client.in.Bucket))
	assert.Equal(t, "invoices/order_1.pdf", aws.ToString(client.in.Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.in.ContentType))
	assert.EqualValues(t, 3, aws.ToInt64(client.in.ContentLength))
}

func TestNewS3Archive_RequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), S3Config{Region: "us-east-1"})
	require.Error(t, err)
}
