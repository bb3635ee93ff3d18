package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalog-backend/pkg/db/models"
)

// Price renders a decimal as a JSON string with two places ("7.50").
type Price decimal.Decimal

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(p).StringFixed(2) + `"`), nil
}

// CategoryDTO is the public category payload.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
}

// VariantDTO is the public variant payload; price and stock are the variant's own.
type VariantDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	NewPrice Price     `json:"new_price"`
	Stock    int       `json:"stock"`
}

// ProductDTO is the public product payload. Variants is never null.
type ProductDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	OldPrice    *Price       `json:"old_price"`
	NewPrice    Price        `json:"new_price"`
	Category    CategoryDTO  `json:"category"`
	Variants    []VariantDTO `json:"variants"`
}

// ProductListResult is one page (or the whole set) of products.
type ProductListResult struct {
	Products   []ProductDTO
	NextCursor string
}

func NewCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func NewProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		NewPrice:    Price(p.NewPrice),
		Variants:    make([]VariantDTO, 0, len(p.Variants)),
	}
	if p.OldPrice != nil {
		old := Price(*p.OldPrice)
		dto.OldPrice = &old
	}
	if p.Category != nil {
		dto.Category = NewCategoryDTO(p.Category)
	}
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:       v.ID,
			Name:     v.Name,
			ImageURL: v.ImageURL,
			NewPrice: Price(v.NewPrice),
			Stock:    v.Stock,
		})
	}
	return dto
}
