package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/internal/repo"
	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
)

// Repository reads the catalog tables. Every public query is restricted to
// active rows whose category is active.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

func (r *Repository) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) FindActiveCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&category).
		Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) FindActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.activeProducts(ctx).
		Where("products.slug = ?", slug).
		Take(&product).
		Error; err != nil {
		return nil, err
	}
	return &product, nil
}

type productListQuery struct {
	CategorySlug string
	Pagination   pagination.Params
}

// ListActiveProducts returns products newest first. Without pagination params
// the whole filtered set is returned and the cursor is empty.
func (r *Repository) ListActiveProducts(ctx context.Context, query productListQuery) ([]models.Product, string, error) {
	qb := r.activeProducts(ctx)
	if query.CategorySlug != "" {
		qb = qb.Where("categories.slug = ?", query.CategorySlug)
	}

	paged := query.Pagination.Requested()
	if paged {
		cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
		if err != nil {
			return nil, "", err
		}
		if cursor != nil {
			qb = qb.Where("((products.created_at < ?) OR (products.created_at = ? AND products.id < ?))",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}
		qb = qb.Limit(pagination.LimitWithBuffer(query.Pagination.Limit))
	}

	var rows []models.Product
	if err := qb.
		Order("products.created_at DESC").
		Order("products.id DESC").
		Find(&rows).
		Error; err != nil {
		return nil, "", err
	}
	if !paged {
		return rows, "", nil
	}

	page, next := pagination.Trim(rows, query.Pagination.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})
	return page, next, nil
}

func (r *Repository) activeProducts(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ? AND categories.is_active = ?", true, true).
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		})
}
