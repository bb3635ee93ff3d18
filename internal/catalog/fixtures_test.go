package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/db/dbtest"
	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	"github.com/angelmondragon/catalog-backend/pkg/pricing"
)

type fixture struct {
	t    *testing.T
	conn *gorm.DB
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, conn: dbtest.Open(t), now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fixture) category(name string, active bool) *models.Category {
	f.t.Helper()
	c := &models.Category{Name: name, IsActive: active, Description: "about " + name}
	require.NoError(f.t, f.conn.Create(c).Error)
	return c
}

// product inserts a product whose created_at advances one minute per call so
// ordering is deterministic.
func (f *fixture) product(cat *models.Category, name string, active bool, variants ...string) *models.Product {
	f.t.Helper()
	f.now = f.now.Add(time.Minute)
	p := &models.Product{
		CategoryID: cat.ID,
		Name:       name,
		NewPrice:   decimal.RequireFromString("7.50"),
		OldPrice:   pricing.Ptr(decimal.RequireFromString("10.00")),
		ImageURL:   "https://example.com/" + strings.ReplaceAll(name, " ", "-") + ".png",
		IsActive:   active,
		CreatedAt:  f.now,
	}
	require.NoError(f.t, f.conn.Create(p).Error)
	for i, v := range variants {
		require.NoError(f.t, f.conn.Create(&models.ProductVariant{
			ProductID: p.ID,
			Name:      v,
			ImageURL:  "https://example.com/" + v + ".png",
			NewPrice:  decimal.NewFromInt(int64(8 + i)),
			Stock:     25 + 5*i,
			IsActive:  true,
			CreatedAt: f.now.Add(time.Duration(i) * time.Second),
		}).Error)
	}
	return p
}
