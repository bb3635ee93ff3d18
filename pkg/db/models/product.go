package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/pricing"
	"github.com/angelmondragon/catalog-backend/pkg/validate"
)

// Product is a sellable item. Its own price and image only matter while it
// has no variants.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID  uuid.UUID        `gorm:"column:category_id;type:uuid;not null;index" json:"category_id" validate:"required"`
	Category    *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	Name        string           `gorm:"column:name;size:255;not null" json:"name" validate:"required,max=255"`
	Slug        string           `gorm:"column:slug;size:50;not null;uniqueIndex" json:"slug" validate:"required,max=50"`
	Description string           `gorm:"column:description;not null" json:"description"`
	ImageURL    string           `gorm:"column:image_url;not null" json:"image_url" validate:"omitempty,url,max=2048"`
	OldPrice    *decimal.Decimal `gorm:"column:old_price;type:numeric(10,2)" json:"old_price" validate:"omitempty,gte=0"`
	NewPrice    decimal.Decimal  `gorm:"column:new_price;type:numeric(10,2);not null" json:"new_price" validate:"gte=0"`
	IsActive    bool             `gorm:"column:is_active;not null" json:"is_active"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty" validate:"-"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime;<-:create" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// DiscountPercentage is the whole-percent markdown from OldPrice to NewPrice.
func (p Product) DiscountPercentage() int {
	return pricing.DiscountPercentage(p.OldPrice, p.NewPrice)
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		s, err := uniqueSlug(tx, p.TableName(), p.Name, p.ID)
		if err != nil {
			return err
		}
		p.Slug = s
	}
	if err := validate.Struct(p); err != nil {
		return err
	}
	p.NewPrice = pricing.Round2(p.NewPrice)
	if p.OldPrice != nil {
		p.OldPrice = pricing.Ptr(pricing.Round2(*p.OldPrice))
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
