package admin

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Decoder fills dest from the request payload and validates it.
type Decoder func(dest any) error

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"omitempty,max=50"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=2048"`
	IsActive    *bool  `json:"is_active"`
}

type ProductInput struct {
	CategoryID  uuid.UUID        `json:"category" validate:"required"`
	Name        string           `json:"name" validate:"required,max=255"`
	Slug        string           `json:"slug" validate:"omitempty,max=50"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url" validate:"omitempty,url,max=2048"`
	OldPrice    *decimal.Decimal `json:"old_price" validate:"omitempty,gte=0"`
	NewPrice    *decimal.Decimal `json:"new_price" validate:"required,gte=0"`
	IsActive    *bool            `json:"is_active"`
	Variants    []InlineVariant  `json:"variants" validate:"-"`
}

// InlineVariant is one row of the variants inline on the product form. Rows
// carrying an ID update that variant (or remove it when Delete is set); rows
// without one are created. Untouched blank rows are ignored.
type InlineVariant struct {
	ID       *uuid.UUID       `json:"id"`
	Delete   bool             `json:"delete"`
	Name     string           `json:"name" validate:"required,max=100"`
	ImageURL string           `json:"image_url" validate:"required,url,max=2048"`
	OldPrice *decimal.Decimal `json:"old_price" validate:"omitempty,gte=0"`
	NewPrice *decimal.Decimal `json:"new_price" validate:"required,gte=0"`
	Stock    *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive *bool            `json:"is_active"`
}

func (v InlineVariant) blank() bool {
	return v.ID == nil && !v.Delete &&
		strings.TrimSpace(v.Name) == "" && strings.TrimSpace(v.ImageURL) == "" &&
		v.OldPrice == nil && v.NewPrice == nil && v.Stock == nil
}

type VariantInput struct {
	ProductID uuid.UUID        `json:"product" validate:"required"`
	Name      string           `json:"name" validate:"required,max=100"`
	ImageURL  string           `json:"image_url" validate:"required,url,max=2048"`
	OldPrice  *decimal.Decimal `json:"old_price" validate:"omitempty,gte=0"`
	NewPrice  *decimal.Decimal `json:"new_price" validate:"required,gte=0"`
	Stock     *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive  *bool            `json:"is_active"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func decimalOr(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
