package gormdb

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
	"github.com/xenking/shop-backoffice/internal/domain/coupon"
	"github.com/xenking/shop-backoffice/internal/domain/i18n"
	"github.com/xenking/shop-backoffice/internal/domain/order"
	"github.com/xenking/shop-backoffice/internal/domain/product"
)

// Boolean columns carry no gorm default: a default would replace an
// explicit false on insert.

type categoryModel struct {
	ID           int64 `gorm:"primaryKey"`
	CreatedAt    time.Time
	Translations []categoryTranslationModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (categoryModel) TableName() string { return "categories" }

type categoryTranslationModel struct {
	CategoryID   int64  `gorm:"primaryKey;autoIncrement:false"`
	LanguageCode string `gorm:"primaryKey;size:15;uniqueIndex:idx_category_translations_lang_slug,priority:1"`
	Name         string `gorm:"size:200;not null"`
	Slug         string `gorm:"size:200;not null;uniqueIndex:idx_category_translations_lang_slug,priority:2"`
}

func (categoryTranslationModel) TableName() string { return "category_translations" }

type productModel struct {
	ID           int64           `gorm:"primaryKey"`
	CategoryID   int64           `gorm:"not null;index"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Available    bool            `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Translations []productTranslationModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (productModel) TableName() string { return "products" }

type productTranslationModel struct {
	ProductID    int64  `gorm:"primaryKey;autoIncrement:false"`
	LanguageCode string `gorm:"primaryKey;size:15;uniqueIndex:idx_product_translations_lang_slug,priority:1;index:idx_product_translations_lang_name,priority:1"`
	Name         string `gorm:"size:200;not null;index:idx_product_translations_lang_name,priority:2"`
	Slug         string `gorm:"size:200;not null;uniqueIndex:idx_product_translations_lang_slug,priority:2"`
	Description  string `gorm:"type:text"`
}

func (productTranslationModel) TableName() string { return "product_translations" }

type couponModel struct {
	ID        int64  `gorm:"primaryKey"`
	Code      string `gorm:"size:50;not null;uniqueIndex"`
	Discount  int    `gorm:"not null"`
	ValidFrom time.Time
	ValidTo   time.Time
	Active    bool `gorm:"not null"`
}

func (couponModel) TableName() string { return "coupons" }

type orderModel struct {
	ID         int64     `gorm:"primaryKey"`
	FirstName  string    `gorm:"size:50;not null"`
	LastName   string    `gorm:"size:50;not null"`
	Email      string    `gorm:"size:254;not null"`
	Address    string    `gorm:"size:250;not null"`
	PostalCode string    `gorm:"size:20;not null"`
	City       string    `gorm:"size:100;not null"`
	Paid       bool      `gorm:"not null"`
	StripeID   string    `gorm:"size:250;not null"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
	Items      []orderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID        int64           `gorm:"primaryKey"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (orderItemModel) TableName() string { return "order_items" }

type staffKeyModel struct {
	ID      string `gorm:"primaryKey;size:64"`
	KeyHash string `gorm:"size:128;not null;uniqueIndex"`
	Name    string `gorm:"size:200;not null"`
	Active  bool   `gorm:"not null"`
}

func (staffKeyModel) TableName() string { return "staff_keys" }

func fromCategory(c *product.Category) categoryModel {
	m := categoryModel{ID: c.ID}
	for _, lang := range c.Translations.Langs() {
		tr := c.Translations[lang]
		m.Translations = append(m.Translations, categoryTranslationModel{
			LanguageCode: string(lang),
			Name:         tr.Name,
			Slug:         tr.Slug,
		})
	}
	return m
}

func (m categoryModel) toDomain() product.Category {
	c := product.Category{ID: m.ID}
	for _, tr := range m.Translations {
		c.Translations.Set(i18n.Lang(tr.LanguageCode), product.CategoryTranslation{Name: tr.Name, Slug: tr.Slug})
	}
	return c
}

func fromProduct(p *product.Product) productModel {
	m := productModel{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		Available:  p.Available,
	}
	for _, lang := range p.Translations.Langs() {
		tr := p.Translations[lang]
		m.Translations = append(m.Translations, productTranslationModel{
			LanguageCode: string(lang),
			Name:         tr.Name,
			Slug:         tr.Slug,
			Description:  tr.Description,
		})
	}
	return m
}

func (m productModel) toDomain() product.Product {
	p := product.Product{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Price:      m.Price,
		Available:  m.Available,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, tr := range m.Translations {
		p.Translations.Set(i18n.Lang(tr.LanguageCode), product.Translation{
			Name:        tr.Name,
			Slug:        tr.Slug,
			Description: tr.Description,
		})
	}
	return p
}

func fromCoupon(c coupon.Coupon) couponModel {
	return couponModel{
		ID:        c.ID,
		Code:      c.Code,
		Discount:  c.Discount,
		ValidFrom: c.ValidFrom,
		ValidTo:   c.ValidTo,
		Active:    c.Active,
	}
}

func (m couponModel) toDomain() coupon.Coupon {
	return coupon.Coupon{
		ID:        m.ID,
		Code:      m.Code,
		Discount:  m.Discount,
		ValidFrom: m.ValidFrom,
		ValidTo:   m.ValidTo,
		Active:    m.Active,
	}
}

func fromOrder(o *order.Order) orderModel {
	m := orderModel{
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Email:      o.Email,
		Address:    o.Address,
		PostalCode: o.PostalCode,
		City:       o.City,
		Paid:       o.Paid,
		StripeID:   o.StripeID,
	}
	for _, item := range o.Items {
		m.Items = append(m.Items, orderItemModel{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return m
}

func (m orderModel) toDomain() order.Order {
	o := order.Order{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Address:    m.Address,
		PostalCode: m.PostalCode,
		City:       m.City,
		Paid:       m.Paid,
		StripeID:   m.StripeID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, item := range m.Items {
		o.Items = append(o.Items, order.Item{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return o
}

func (m staffKeyModel) toDomain() auth.StaffKey {
	return auth.StaffKey{ID: m.ID, KeyHash: m.KeyHash, Name: m.Name, Active: m.Active}
}
