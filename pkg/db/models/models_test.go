package models_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/db/dbtest"
	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/pricing"
)

func createCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	c := models.NewCategory(name)
	require.NoError(t, conn.Create(c).Error)
	return c
}

func createProduct(t *testing.T, conn *gorm.DB, cat *models.Category, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{CategoryID: cat.ID, Name: name, NewPrice: decimal.RequireFromString(price), IsActive: true}
	require.NoError(t, conn.Create(p).Error)
	return p
}

func TestCategorySlugDerivedAndDeduplicated(t *testing.T) {
	conn := dbtest.Open(t)

	first := createCategory(t, conn, "Home & Kitchen")
	second := createCategory(t, conn, "Home Kitchen")
	third := createCategory(t, conn, "home / kitchen")

	assert.Equal(t, "home-kitchen", first.Slug)
	assert.Equal(t, "home-kitchen-2", second.Slug)
	assert.Equal(t, "home-kitchen-3", third.Slug)
}

func TestSlugNotRewrittenOnRename(t *testing.T) {
	conn := dbtest.Open(t)
	c := createCategory(t, conn, "Snacks")

	c.Name = "Savory Snacks"
	require.NoError(t, conn.Save(c).Error)

	var reloaded models.Category
	require.NoError(t, conn.First(&reloaded, "id = ?", c.ID).Error)
	assert.Equal(t, "snacks", reloaded.Slug)
	assert.Equal(t, "Savory Snacks", reloaded.Name)
}

func TestExplicitSlugIsKept(t *testing.T) {
	conn := dbtest.Open(t)
	c := &models.Category{Name: "Beverages", Slug: "drinks", IsActive: true}
	require.NoError(t, conn.Create(c).Error)
	assert.Equal(t, "drinks", c.Slug)
}

func TestInactiveCategoryPersistsFalse(t *testing.T) {
	conn := dbtest.Open(t)
	c := &models.Category{Name: "Hidden"}
	require.NoError(t, conn.Create(c).Error)

	var reloaded models.Category
	require.NoError(t, conn.First(&reloaded, "id = ?", c.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestProductRejectsNegativePrice(t *testing.T) {
	conn := dbtest.Open(t)
	cat := createCategory(t, conn, "Grocery")

	p := &models.Product{CategoryID: cat.ID, Name: "Rice", NewPrice: decimal.RequireFromString("-1.00")}
	err := conn.Create(p).Error
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNegativePriceRejectedBeforeRounding(t *testing.T) {
	conn := dbtest.Open(t)
	cat := createCategory(t, conn, "Grocery")

	p := &models.Product{CategoryID: cat.ID, Name: "Rice", NewPrice: decimal.RequireFromString("-0.004")}
	err := conn.Create(p).Error
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	ok := createProduct(t, conn, cat, "Beans", "0")
	v := &models.ProductVariant{ProductID: ok.ID, Name: "Small", ImageURL: "https://example.com/s.png", NewPrice: decimal.RequireFromString("-0.004")}
	err = conn.Create(v).Error
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestVariantRejectsNegativeStockAndMissingImage(t *testing.T) {
	conn := dbtest.Open(t)
	cat := createCategory(t, conn, "Grocery")
	p := createProduct(t, conn, cat, "Rice", "3.00")

	neg := &models.ProductVariant{ProductID: p.ID, Name: "Small", ImageURL: "https://example.com/a.png", NewPrice: decimal.RequireFromString("3.00"), Stock: -1}
	err := conn.Create(neg).Error
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	noImage := &models.ProductVariant{ProductID: p.ID, Name: "Small", NewPrice: decimal.RequireFromString("3.00")}
	err = conn.Create(noImage).Error
	require.Error(t, err)
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "image_url")
}

func TestDiscountPercentage(t *testing.T) {
	p := models.Product{OldPrice: pricing.Ptr(decimal.RequireFromString("10.00")), NewPrice: decimal.RequireFromString("7.50")}
	assert.Equal(t, 25, p.DiscountPercentage())

	p.OldPrice = nil
	assert.Equal(t, 0, p.DiscountPercentage())

	v := models.ProductVariant{OldPrice: pricing.Ptr(decimal.RequireFromString("9.00")), NewPrice: decimal.RequireFromString("8.00")}
	assert.Equal(t, 11, v.DiscountPercentage())
}

func TestPricesRoundTripWithTwoDecimals(t *testing.T) {
	conn := dbtest.Open(t)
	cat := createCategory(t, conn, "Beverages")
	p := createProduct(t, conn, cat, "Tea", "6.5")

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", p.ID).Error)
	assert.Equal(t, "6.50", reloaded.NewPrice.StringFixed(2))
	assert.Nil(t, reloaded.OldPrice)
}

func TestDeletingCategoryCascades(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := createCategory(t, conn, "Snacks")
	p := createProduct(t, conn, cat, "Chips", "2.00")
	require.NoError(t, conn.Create(&models.ProductVariant{
		ProductID: p.ID, Name: "Large", ImageURL: "https://example.com/chips.png",
		NewPrice: decimal.RequireFromString("3.00"), Stock: 5, IsActive: true,
	}).Error)

	require.NoError(t, conn.WithContext(ctx).Delete(&models.Category{}, "id = ?", cat.ID).Error)

	var products, variants int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, conn.Model(&models.ProductVariant{}).Count(&variants).Error)
	assert.Zero(t, products)
	assert.Zero(t, variants)
}
