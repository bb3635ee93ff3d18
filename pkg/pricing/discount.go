package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountPercentage is floor(100 * (old - new) / old) when old is set and
// strictly greater than new, and 0 otherwise.
func DiscountPercentage(old *decimal.Decimal, current decimal.Decimal) int {
	if old == nil || !old.IsPositive() || !old.GreaterThan(current) {
		return 0
	}
	return int(old.Sub(current).Mul(hundred).Div(*old).Floor().IntPart())
}

// Round2 normalises a price to the two decimal places stored in the database.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Ptr is a convenience for optional prices.
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
