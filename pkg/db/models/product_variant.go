package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/pricing"
	"github.com/angelmondragon/catalog-backend/pkg/validate"
)

// ProductVariant is a purchasable option of a product (size, color, ...)
// carrying its own price, stock and image.
type ProductVariant struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index" json:"product_id" validate:"required"`
	Name      string           `gorm:"column:name;size:100;not null" json:"name" validate:"required,max=100"`
	ImageURL  string           `gorm:"column:image_url;not null" json:"image_url" validate:"required,url,max=2048"`
	OldPrice  *decimal.Decimal `gorm:"column:old_price;type:numeric(10,2)" json:"old_price" validate:"omitempty,gte=0"`
	NewPrice  decimal.Decimal  `gorm:"column:new_price;type:numeric(10,2);not null" json:"new_price" validate:"gte=0"`
	Stock     int              `gorm:"column:stock;not null" json:"stock" validate:"gte=0"`
	IsActive  bool             `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime;<-:create" json:"-"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// DiscountPercentage uses the same rule as Product.
func (v ProductVariant) DiscountPercentage() int {
	return pricing.DiscountPercentage(v.OldPrice, v.NewPrice)
}

func (v *ProductVariant) BeforeSave(tx *gorm.DB) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	v.NewPrice = pricing.Round2(v.NewPrice)
	if v.OldPrice != nil {
		v.OldPrice = pricing.Ptr(pricing.Round2(*v.OldPrice))
	}
	return nil
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
