package seed

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalog-backend/pkg/placeholder"
)

// Dataset describes the demo catalog. Products at positions
// 1..VariantProducts get one variant per VariantNames entry, the rest none.
type Dataset struct {
	Categories      []string
	Products        []string
	VariantNames    []string
	VariantProducts int
}

// DefaultDataset is 5 categories x 10 products, the first 8 of each with
// Small/Medium/Large variants.
func DefaultDataset() Dataset {
	return Dataset{
		Categories: []string{
			"Beverages",
			"Snacks",
			"Grocery",
			"Personal Care",
			"Home & Kitchen",
		},
		Products: []string{
			"Premium Item A",
			"Premium Item B",
			"Premium Item C",
			"Premium Item D",
			"Premium Item E",
			"Premium Item F",
			"Premium Item G",
			"Premium Item H",
			"Standard Item I",
			"Standard Item J",
		},
		VariantNames:    []string{"Small", "Medium", "Large"},
		VariantProducts: 8,
	}
}

// Expected returns the row counts a reset run of d produces.
func (d Dataset) Expected() (categories, products, variants int) {
	withVariants := min(d.VariantProducts, len(d.Products))
	categories = len(d.Categories)
	products = categories * len(d.Products)
	variants = categories * withVariants * len(d.VariantNames)
	return categories, products, variants
}

var (
	basePrice       = decimal.RequireFromString("5.00")
	productMarkdown = decimal.RequireFromString("2.50")
	variantMarkdown = decimal.RequireFromString("1.00")
	two             = decimal.NewFromInt(2)
)

const (
	categoryImageW = 1200
	categoryImageH = 600
	itemImageSize  = 900
)

// Indexes below are 1-based.

func productName(template, category string, pIdx int) string {
	return fmt.Sprintf("%s (%s #%d)", template, category, pIdx)
}

// productPrices: new = 5.00 + cIdx + pIdx/2; old = new + 2.50 for even pIdx.
func productPrices(cIdx, pIdx int) (decimal.Decimal, *decimal.Decimal) {
	current := basePrice.Add(decimal.NewFromInt(int64(cIdx))).Add(decimal.NewFromInt(int64(pIdx)).Div(two))
	if pIdx%2 != 0 {
		return current, nil
	}
	old := current.Add(productMarkdown)
	return current, &old
}

// variantPrices: new = product new + vIdx; old = new + 1.00 for the second variant.
func variantPrices(productNew decimal.Decimal, vIdx int) (decimal.Decimal, *decimal.Decimal) {
	current := productNew.Add(decimal.NewFromInt(int64(vIdx)))
	if vIdx != 2 {
		return current, nil
	}
	old := current.Add(variantMarkdown)
	return current, &old
}

func variantStock(vIdx int) int {
	return 20 + 5*vIdx
}

func categoryDescription(name string) string {
	return "Auto-seeded category: " + name
}

func productDescription(category string) string {
	return fmt.Sprintf("Auto-seeded product in %s.", category)
}

func categoryImage(name string) string {
	return placeholder.URL("Category "+name, categoryImageW, categoryImageH)
}

func productImage(name string) string {
	return placeholder.URL(name, itemImageSize, itemImageSize)
}

func variantImage(product, variant string) string {
	return placeholder.URL(product+" "+variant, itemImageSize, itemImageSize)
}
