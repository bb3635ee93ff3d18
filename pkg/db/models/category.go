package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/validate"
)

// Category groups products for browsing.
type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:200;not null" json:"name" validate:"required,max=200"`
	Slug        string    `gorm:"column:slug;size:50;not null;uniqueIndex" json:"slug" validate:"required,max=50"`
	Description string    `gorm:"column:description;not null" json:"description"`
	ImageURL    string    `gorm:"column:image_url;not null" json:"image_url" validate:"omitempty,url,max=2048"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	Products    []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// NewCategory returns an active category; the slug is derived on save.
func NewCategory(name string) *Category {
	return &Category{Name: name, IsActive: true}
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		s, err := uniqueSlug(tx, c.TableName(), c.Name, c.ID)
		if err != nil {
			return err
		}
		c.Slug = s
	}
	return validate.Struct(c)
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
