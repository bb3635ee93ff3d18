package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	"github.com/angelmondragon/catalog-backend/pkg/logger"
	"github.com/angelmondragon/catalog-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Options controls a seed run.
type Options struct {
	// Reset deletes every variant, product and category before seeding.
	Reset bool
}

// Result counts the rows a run inserted.
type Result struct {
	Reset             bool
	CategoriesCreated int
	ProductsCreated   int
	VariantsCreated   int
}

// Service populates the catalog with the demo dataset.
type Service struct {
	db      txRunner
	logg    *logger.Logger
	metrics *metrics.SeedMetrics
	dataset Dataset
}

// Option customises a Service.
type Option func(*Service)

// WithDataset replaces the default dataset.
func WithDataset(d Dataset) Option {
	return func(s *Service) { s.dataset = d }
}

// WithMetrics records run outcomes on m.
func WithMetrics(m *metrics.SeedMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(db txRunner, logg *logger.Logger, opts ...Option) (*Service, error) {
	if db == nil {
		return nil, errors.New("db client is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	s := &Service{db: db, logg: logg, dataset: DefaultDataset()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run seeds the dataset in a single transaction. Existing rows found by
// natural key are reused and never overwritten, apart from the product image
// policy; any error rolls the whole run back.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	started := time.Now()
	ctx = s.logg.WithFields(ctx, map[string]any{"job": "seed", "reset": opts.Reset})

	var res Result
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		res = Result{Reset: opts.Reset}
		if opts.Reset {
			if err := reset(tx); err != nil {
				return err
			}
			s.logg.Warn(ctx, "reset done: deleted categories, products and variants")
		}
		return s.populate(tx, &res)
	})
	s.metrics.ObserveRun(time.Since(started), err)
	if err != nil {
		s.logg.Error(ctx, "seed failed, transaction rolled back", err)
		return Result{}, err
	}

	s.metrics.AddCreated("categories", res.CategoriesCreated)
	s.metrics.AddCreated("products", res.ProductsCreated)
	s.metrics.AddCreated("variants", res.VariantsCreated)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"categories_created": res.CategoriesCreated,
		"products_created":   res.ProductsCreated,
		"variants_created":   res.VariantsCreated,
		"duration_ms":        time.Since(started).Milliseconds(),
	}), "seed completed")
	return res, nil
}

// reset deletes children before parents so it does not depend on cascades.
func reset(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.ProductVariant{}, &models.Product{}, &models.Category{}} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("reset %T: %w", model, err)
		}
	}
	return nil
}

func (s *Service) populate(tx *gorm.DB, res *Result) error {
	d := s.dataset
	for cIdx, categoryName := range d.Categories {
		cIdx++
		category, created, err := categoryFor(tx, categoryName)
		if err != nil {
			return err
		}
		if created {
			res.CategoriesCreated++
		}

		for pIdx, template := range d.Products {
			pIdx++
			name := productName(template, categoryName, pIdx)
			newPrice, oldPrice := productPrices(cIdx, pIdx)

			product, created, err := productFor(tx, category, name, newPrice, oldPrice)
			if err != nil {
				return err
			}
			if created {
				res.ProductsCreated++
			}

			if pIdx > d.VariantProducts {
				if product.ImageURL == "" {
					if err := setProductImage(tx, product, productImage(name)); err != nil {
						return err
					}
				}
				continue
			}

			if product.ImageURL != "" {
				if err := setProductImage(tx, product, ""); err != nil {
					return err
				}
			}
			for vIdx, variantName := range d.VariantNames {
				vIdx++
				vNew, vOld := variantPrices(newPrice, vIdx)
				created, err := variantFor(tx, product, variantName, vNew, vOld, vIdx)
				if err != nil {
					return err
				}
				if created {
					res.VariantsCreated++
				}
			}
		}
	}
	return nil
}

func categoryFor(tx *gorm.DB, name string) (*models.Category, bool, error) {
	var category models.Category
	err := tx.Where("name = ?", name).Order("created_at ASC").First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup category %q: %w", name, err)
	}

	category = models.Category{
		Name:        name,
		Description: categoryDescription(name),
		ImageURL:    categoryImage(name),
		IsActive:    true,
	}
	if err := tx.Create(&category).Error; err != nil {
		return nil, false, fmt.Errorf("create category %q: %w", name, err)
	}
	return &category, true, nil
}

func productFor(tx *gorm.DB, category *models.Category, name string, newPrice decimal.Decimal, oldPrice *decimal.Decimal) (*models.Product, bool, error) {
	var product models.Product
	err := tx.Where("category_id = ? AND name = ?", category.ID, name).Order("created_at ASC").First(&product).Error
	if err == nil {
		return &product, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup product %q: %w", name, err)
	}

	product = models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: productDescription(category.Name),
		OldPrice:    oldPrice,
		NewPrice:    newPrice,
		IsActive:    true,
	}
	if err := tx.Omit("Category", "Variants").Create(&product).Error; err != nil {
		return nil, false, fmt.Errorf("create product %q: %w", name, err)
	}
	return &product, true, nil
}

func variantFor(tx *gorm.DB, product *models.Product, name string, newPrice decimal.Decimal, oldPrice *decimal.Decimal, vIdx int) (bool, error) {
	var existing int64
	if err := tx.Model(&models.ProductVariant{}).
		Where("product_id = ? AND name = ?", product.ID, name).
		Count(&existing).Error; err != nil {
		return false, fmt.Errorf("lookup variant %q of %q: %w", name, product.Name, err)
	}
	if existing > 0 {
		return false, nil
	}

	variant := models.ProductVariant{
		ProductID: product.ID,
		Name:      name,
		ImageURL:  variantImage(product.Name, name),
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Stock:     variantStock(vIdx),
		IsActive:  true,
	}
	if err := tx.Create(&variant).Error; err != nil {
		return false, fmt.Errorf("create variant %q of %q: %w", name, product.Name, err)
	}
	return true, nil
}

// setProductImage writes only image_url, leaving updated_at and hooks alone.
func setProductImage(tx *gorm.DB, product *models.Product, url string) error {
	if err := tx.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("image_url", url).Error; err != nil {
		return fmt.Errorf("update image of %q: %w", product.Name, err)
	}
	product.ImageURL = url
	return nil
}
