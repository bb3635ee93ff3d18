package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
)

func newTestService(t *testing.T, f *fixture) Service {
	t.Helper()
	svc, err := NewService(NewRepository(f.conn))
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestListProductsAllMeansNoFilter(t *testing.T) {
	f := newFixture(t)
	drinks := f.category("Beverages", true)
	snacks := f.category("Snacks", true)
	f.product(drinks, "Tea", true)
	f.product(snacks, "Chips", true)
	svc := newTestService(t, f)
	ctx := context.Background()

	for _, filter := range []string{"", "all", "ALL"} {
		res, err := svc.ListProducts(ctx, ListProductsInput{CategorySlug: filter})
		require.NoError(t, err)
		assert.Len(t, res.Products, 2, "filter %q", filter)
	}

	res, err := svc.ListProducts(ctx, ListProductsInput{CategorySlug: "snacks"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Chips", res.Products[0].Name)

	res, err = svc.ListProducts(ctx, ListProductsInput{CategorySlug: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, res.Products)
}

func TestListProductsRejectsBadCursor(t *testing.T) {
	f := newFixture(t)
	svc := newTestService(t, f)

	_, err := svc.ListProducts(context.Background(), ListProductsInput{Pagination: pagination.Params{Cursor: "not-a-cursor"}})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetCategoryAndProductNotFound(t *testing.T) {
	f := newFixture(t)
	f.category("Hidden", false)
	svc := newTestService(t, f)
	ctx := context.Background()

	_, err := svc.GetCategory(ctx, "hidden")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.GetProduct(ctx, "nope")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestProductPayloadShape(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Beverages", true)
	f.product(cat, "Tea", true, "Small")
	svc := newTestService(t, f)

	dto, err := svc.GetProduct(context.Background(), "tea")
	require.NoError(t, err)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "7.50", payload["new_price"])
	assert.Equal(t, "10.00", payload["old_price"])
	assert.NotContains(t, payload, "is_active")
	assert.NotContains(t, payload, "created_at")

	category := payload["category"].(map[string]any)
	assert.Equal(t, "beverages", category["slug"])
	assert.NotContains(t, category, "is_active")

	variants := payload["variants"].([]any)
	require.Len(t, variants, 1)
	variant := variants[0].(map[string]any)
	assert.Equal(t, "8.00", variant["new_price"])
	assert.EqualValues(t, 25, variant["stock"])
	assert.ElementsMatch(t, []string{"id", "name", "image_url", "new_price", "stock"}, keys(variant))
}

func TestProductWithoutVariantsHasEmptyArray(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Beverages", true)
	p := f.product(cat, "Water", true)
	p.OldPrice = nil
	require.NoError(t, f.conn.Save(p).Error)
	svc := newTestService(t, f)

	dto, err := svc.GetProduct(context.Background(), "water")
	require.NoError(t, err)
	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"variants":[]`)
	assert.Contains(t, string(raw), `"old_price":null`)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
