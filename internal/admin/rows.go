package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
	"github.com/angelmondragon/catalog-backend/pkg/pricing"
)

type productRecord struct {
	ID           uuid.UUID           `gorm:"column:id"`
	Name         string              `gorm:"column:name"`
	Slug         string              `gorm:"column:slug"`
	Description  string              `gorm:"column:description"`
	OldPrice     decimal.NullDecimal `gorm:"column:old_price"`
	NewPrice     decimal.Decimal     `gorm:"column:new_price"`
	IsActive     bool                `gorm:"column:is_active"`
	CreatedAt    time.Time           `gorm:"column:created_at"`
	CategoryID   uuid.UUID           `gorm:"column:category_id"`
	CategoryName string              `gorm:"column:category_name"`
	HasVariants  bool                `gorm:"column:has_variants"`
}

func (r productRecord) row() Row {
	var old *decimal.Decimal
	if r.OldPrice.Valid {
		old = &r.OldPrice.Decimal
	}
	return Row{
		"id":                  r.ID,
		"name":                r.Name,
		"slug":                r.Slug,
		"category":            r.CategoryName,
		"category_id":         r.CategoryID,
		"old_price":           optionalPrice(old),
		"new_price":           price(r.NewPrice),
		"discount_percentage": pricing.DiscountPercentage(old, r.NewPrice),
		"has_variants":        r.HasVariants,
		"is_active":           r.IsActive,
		"created_at":          r.CreatedAt,
	}
}

type variantRecord struct {
	ID          uuid.UUID           `gorm:"column:id"`
	Name        string              `gorm:"column:name"`
	OldPrice    decimal.NullDecimal `gorm:"column:old_price"`
	NewPrice    decimal.Decimal     `gorm:"column:new_price"`
	Stock       int                 `gorm:"column:stock"`
	IsActive    bool                `gorm:"column:is_active"`
	CreatedAt   time.Time           `gorm:"column:created_at"`
	ProductID   uuid.UUID           `gorm:"column:product_id"`
	ProductName string              `gorm:"column:product_name"`
}

func (r variantRecord) row() Row {
	return Row{
		"id":         r.ID,
		"product":    r.ProductName,
		"product_id": r.ProductID,
		"name":       r.Name,
		"new_price":  price(r.NewPrice),
		"stock":      r.Stock,
		"is_active":  r.IsActive,
	}
}

func categoryRow(c models.Category) Row {
	return Row{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"image_url":   c.ImageURL,
		"is_active":   c.IsActive,
		"created_at":  c.CreatedAt,
	}
}

func productRow(p *models.Product) Row {
	row := Row{
		"id":                  p.ID,
		"category":            p.CategoryID,
		"name":                p.Name,
		"slug":                p.Slug,
		"description":         p.Description,
		"image_url":           p.ImageURL,
		"old_price":           optionalPrice(p.OldPrice),
		"new_price":           price(p.NewPrice),
		"discount_percentage": p.DiscountPercentage(),
		"has_variants":        len(p.Variants) > 0,
		"is_active":           p.IsActive,
		"created_at":          p.CreatedAt,
	}
	if p.Category != nil {
		row["category_name"] = p.Category.Name
	}
	return row
}

func variantRow(v models.ProductVariant) Row {
	return Row{
		"id":                  v.ID,
		"product":             v.ProductID,
		"name":                v.Name,
		"image_url":           v.ImageURL,
		"old_price":           optionalPrice(v.OldPrice),
		"new_price":           price(v.NewPrice),
		"discount_percentage": v.DiscountPercentage(),
		"stock":               v.Stock,
		"is_active":           v.IsActive,
	}
}

// project keeps the id plus the listed columns.
func project(row Row, columns []string) Row {
	out := Row{"id": row["id"]}
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}

func price(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalPrice(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return price(*d)
}

func aliased(alias string) func(string) string {
	return func(field string) string { return alias + "." + field }
}

// variantColumn maps variant search fields; product__name follows the
// relation to the joined product.
func variantColumn(field string) string {
	if field == "product__name" {
		return "p.name"
	}
	return "v." + field
}

// applySearch matches term case-insensitively against any of fields.
func applySearch(qb *gorm.DB, term string, fields []string, column func(string) string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return qb
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column(f)))
		args = append(args, pattern)
	}
	return qb.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func applyCursor(qb *gorm.DB, alias string, cursor *pagination.Cursor) *gorm.DB {
	if cursor == nil {
		return qb
	}
	return qb.Where(
		fmt.Sprintf("((%[1]s.created_at < ?) OR (%[1]s.created_at = ? AND %[1]s.id < ?))", alias),
		cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
	)
}

func parseBoolFilter(raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, pkgerrors.Invalid("is_active filter must be true or false", map[string]string{"is_active": "is invalid"})
	}
	return v, nil
}

// createdSince resolves the date filter choices to their lower bound.
func createdSince(choice string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.TrimSpace(choice) {
	case "today":
		return today, nil
	case "past_7_days":
		return today.AddDate(0, 0, -7), nil
	case "this_month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case "this_year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown created_at filter "+choice).
		WithDetails(map[string]any{"created_at": []string{"today", "past_7_days", "this_month", "this_year"}})
}
