package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/internal/repo"
	"github.com/angelmondragon/catalog-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/logger"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
	"github.com/angelmondragon/catalog-backend/pkg/slug"
	"github.com/angelmondragon/catalog-backend/pkg/validate"
)

type database interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Row is one record as the console renders it, keyed by field name.
type Row map[string]any

type ListParams struct {
	Search     string
	Filters    map[string]string
	Pagination pagination.Params
}

type ListResult struct {
	Rows       []Row  `json:"rows"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Service performs the console's create, read, update and delete operations
// for every registered entity.
type Service struct {
	db       database
	registry *Registry
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(db database, registry *Registry, logg *logger.Logger) (*Service, error) {
	if db == nil {
		return nil, errors.New("admin service requires a database")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logg == nil {
		return nil, errors.New("admin service requires a logger")
	}
	return &Service{
		db:       db,
		registry: registry,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// List returns one page of rows for entity, newest first.
func (s *Service) List(ctx context.Context, entity string, params ListParams) (*ListResult, error) {
	cfg, err := s.registry.Get(entity)
	if err != nil {
		return nil, err
	}
	for field := range params.Filters {
		if !cfg.AllowsFilter(field) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot filter %s by %s", entity, field)).
				WithDetails(map[string]any{"filter": field, "allowed": cfg.ListFilters})
		}
	}
	cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	switch entity {
	case EntityCategories:
		return s.listCategories(ctx, cfg, params, cursor)
	case EntityProducts:
		return s.listProducts(ctx, cfg, params, cursor)
	default:
		return s.listVariants(ctx, cfg, params, cursor)
	}
}

func (s *Service) listCategories(ctx context.Context, cfg EntityConfig, params ListParams, cursor *pagination.Cursor) (*ListResult, error) {
	qb := s.db.DB().WithContext(ctx).Table("categories c")
	qb = applySearch(qb, params.Search, cfg.SearchFields, aliased("c"))
	qb = applyCursor(qb, "c", cursor).Limit(pagination.LimitWithBuffer(params.Pagination.Limit))

	var rows []models.Category
	if err := qb.Select("c.*").Order("c.created_at DESC").Order("c.id DESC").Find(&rows).Error; err != nil {
		return nil, repo.MapError(err, "categories")
	}
	page, next := pagination.Trim(rows, params.Pagination.Limit, func(c models.Category) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	})
	out := make([]Row, 0, len(page))
	for _, c := range page {
		out = append(out, project(categoryRow(c), cfg.ListDisplay))
	}
	return &ListResult{Rows: out, NextCursor: next}, nil
}

func (s *Service) listProducts(ctx context.Context, cfg EntityConfig, params ListParams, cursor *pagination.Cursor) (*ListResult, error) {
	qb := s.db.DB().WithContext(ctx).
		Table("products p").
		Select(`p.id, p.name, p.slug, p.description, p.old_price, p.new_price, p.is_active, p.created_at,
			c.id AS category_id, c.name AS category_name,
			EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = p.id) AS has_variants`).
		Joins("JOIN categories c ON c.id = p.category_id")

	var err error
	if qb, err = s.applyProductFilters(qb, params.Filters); err != nil {
		return nil, err
	}
	qb = applySearch(qb, params.Search, cfg.SearchFields, aliased("p"))
	qb = applyCursor(qb, "p", cursor).Limit(pagination.LimitWithBuffer(params.Pagination.Limit))

	var records []productRecord
	if err := qb.Order("p.created_at DESC").Order("p.id DESC").Scan(&records).Error; err != nil {
		return nil, repo.MapError(err, "products")
	}
	page, next := pagination.Trim(records, params.Pagination.Limit, func(r productRecord) pagination.Cursor {
		return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	})
	out := make([]Row, 0, len(page))
	for _, r := range page {
		out = append(out, project(r.row(), cfg.ListDisplay))
	}
	return &ListResult{Rows: out, NextCursor: next}, nil
}

func (s *Service) listVariants(ctx context.Context, cfg EntityConfig, params ListParams, cursor *pagination.Cursor) (*ListResult, error) {
	qb := s.db.DB().WithContext(ctx).
		Table("product_variants v").
		Select(`v.id, v.name, v.old_price, v.new_price, v.stock, v.is_active, v.created_at,
			p.id AS product_id, p.name AS product_name`).
		Joins("JOIN products p ON p.id = v.product_id")

	if raw, ok := params.Filters["is_active"]; ok {
		active, err := parseBoolFilter(raw)
		if err != nil {
			return nil, err
		}
		qb = qb.Where("v.is_active = ?", active)
	}
	qb = applySearch(qb, params.Search, cfg.SearchFields, variantColumn)
	qb = applyCursor(qb, "v", cursor).Limit(pagination.LimitWithBuffer(params.Pagination.Limit))

	var records []variantRecord
	if err := qb.Order("v.created_at DESC").Order("v.id DESC").Scan(&records).Error; err != nil {
		return nil, repo.MapError(err, "variants")
	}
	page, next := pagination.Trim(records, params.Pagination.Limit, func(r variantRecord) pagination.Cursor {
		return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	})
	out := make([]Row, 0, len(page))
	for _, r := range page {
		out = append(out, project(r.row(), cfg.ListDisplay))
	}
	return &ListResult{Rows: out, NextCursor: next}, nil
}

func (s *Service) applyProductFilters(qb *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	if raw, ok := filters["category"]; ok {
		raw = strings.TrimSpace(raw)
		if id, err := uuid.Parse(raw); err == nil {
			qb = qb.Where("p.category_id = ?", id)
		} else {
			qb = qb.Where("c.slug = ?", raw)
		}
	}
	if raw, ok := filters["is_active"]; ok {
		active, err := parseBoolFilter(raw)
		if err != nil {
			return nil, err
		}
		qb = qb.Where("p.is_active = ?", active)
	}
	if raw, ok := filters["created_at"]; ok {
		since, err := createdSince(raw, s.now())
		if err != nil {
			return nil, err
		}
		qb = qb.Where("p.created_at >= ?", since)
	}
	return qb, nil
}

// Get returns every form field of one record. Products also carry their
// inline variants.
func (s *Service) Get(ctx context.Context, entity string, id uuid.UUID) (Row, error) {
	if _, err := s.registry.Get(entity); err != nil {
		return nil, err
	}
	conn := s.db.DB().WithContext(ctx)
	switch entity {
	case EntityCategories:
		var c models.Category
		if err := conn.Take(&c, "id = ?", id).Error; err != nil {
			return nil, repo.MapError(err, "category")
		}
		return categoryRow(c), nil
	case EntityProducts:
		p, err := loadProduct(conn, id)
		if err != nil {
			return nil, err
		}
		return s.productDetail(p), nil
	default:
		var v models.ProductVariant
		if err := conn.Take(&v, "id = ?", id).Error; err != nil {
			return nil, repo.MapError(err, "variant")
		}
		return variantRow(v), nil
	}
}

// Create decodes the entity's input with decode and inserts the record.
func (s *Service) Create(ctx context.Context, entity string, decode Decoder) (Row, error) {
	return s.save(ctx, entity, uuid.Nil, decode)
}

// Update replaces the editable fields of an existing record.
func (s *Service) Update(ctx context.Context, entity string, id uuid.UUID, decode Decoder) (Row, error) {
	return s.save(ctx, entity, id, decode)
}

func (s *Service) save(ctx context.Context, entity string, id uuid.UUID, decode Decoder) (Row, error) {
	if _, err := s.registry.Get(entity); err != nil {
		return nil, err
	}
	switch entity {
	case EntityCategories:
		var in CategoryInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		return s.saveCategory(ctx, id, in)
	case EntityProducts:
		var in ProductInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		return s.saveProduct(ctx, id, in)
	default:
		var in VariantInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		return s.saveVariant(ctx, id, in)
	}
}

func (s *Service) saveCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (Row, error) {
	if err := checkSlug(in.Slug); err != nil {
		return nil, err
	}
	manual := strings.TrimSpace(in.Slug)
	var out models.Category
	err := retryDerivedSlug(id == uuid.Nil && manual == "", func() error {
		return s.db.WithTx(ctx, func(tx *gorm.DB) error {
			out = models.Category{IsActive: true}
			if id != uuid.Nil {
				if err := tx.Take(&out, "id = ?", id).Error; err != nil {
					return repo.MapError(err, "category")
				}
			}
			out.Name = in.Name
			if manual != "" {
				out.Slug = manual
			}
			out.Description = in.Description
			out.ImageURL = in.ImageURL
			out.IsActive = boolOr(in.IsActive, out.IsActive)
			return repo.MapError(tx.Save(&out).Error, "category")
		})
	})
	if err != nil {
		return nil, err
	}
	s.logSaved(ctx, EntityCategories, id, out.ID)
	return categoryRow(out), nil
}

func (s *Service) saveProduct(ctx context.Context, id uuid.UUID, in ProductInput) (Row, error) {
	if err := checkSlug(in.Slug); err != nil {
		return nil, err
	}
	if err := validateInlines(in.Variants); err != nil {
		return nil, err
	}

	manual := strings.TrimSpace(in.Slug)
	var saved *models.Product
	err := retryDerivedSlug(id == uuid.Nil && manual == "", func() error {
		return s.db.WithTx(ctx, func(tx *gorm.DB) error {
			if err := requireRow(tx, &models.Category{}, in.CategoryID, "category"); err != nil {
				return err
			}
			product := &models.Product{IsActive: true}
			if id != uuid.Nil {
				if err := tx.Take(product, "id = ?", id).Error; err != nil {
					return repo.MapError(err, "product")
				}
			}
			product.CategoryID = in.CategoryID
			product.Name = in.Name
			if manual != "" {
				product.Slug = manual
			}
			product.Description = in.Description
			product.ImageURL = in.ImageURL
			product.OldPrice = in.OldPrice
			product.NewPrice = decimalOr(in.NewPrice)
			product.IsActive = boolOr(in.IsActive, product.IsActive)
			if err := tx.Omit("Category", "Variants").Save(product).Error; err != nil {
				return repo.MapError(err, "product")
			}
			if err := saveInlines(tx, product.ID, in.Variants); err != nil {
				return err
			}

			var err error
			saved, err = loadProduct(tx, product.ID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	s.logSaved(ctx, EntityProducts, id, saved.ID)
	return s.productDetail(saved), nil
}

func (s *Service) saveVariant(ctx context.Context, id uuid.UUID, in VariantInput) (Row, error) {
	var out models.ProductVariant
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Product{}, in.ProductID, "product"); err != nil {
			return err
		}
		if id != uuid.Nil {
			if err := tx.Take(&out, "id = ?", id).Error; err != nil {
				return repo.MapError(err, "variant")
			}
		} else {
			out.IsActive = true
		}
		out.ProductID = in.ProductID
		out.Name = in.Name
		out.ImageURL = in.ImageURL
		out.OldPrice = in.OldPrice
		out.NewPrice = decimalOr(in.NewPrice)
		out.Stock = intOr(in.Stock, out.Stock)
		out.IsActive = boolOr(in.IsActive, out.IsActive)
		return repo.MapError(tx.Save(&out).Error, "variant")
	})
	if err != nil {
		return nil, err
	}
	s.logSaved(ctx, EntityVariants, id, out.ID)
	return variantRow(out), nil
}

// Delete removes a record. Deleting a category or product removes its
// dependents through the foreign keys.
func (s *Service) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	if _, err := s.registry.Get(entity); err != nil {
		return err
	}
	var model any
	switch entity {
	case EntityCategories:
		model = &models.Category{}
	case EntityProducts:
		model = &models.Product{}
	default:
		model = &models.ProductVariant{}
	}
	res := s.db.DB().WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return repo.MapError(res.Error, entity)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.NotFound(strings.TrimSuffix(entity, "s"))
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"entity": entity, "id": id.String()})
	s.logg.Info(ctx, "admin record deleted")
	return nil
}

// SuggestSlug returns the slug the console prefills for name: the derived
// slug, suffixed when it is already taken.
func (s *Service) SuggestSlug(ctx context.Context, entity, name string) (string, error) {
	cfg, err := s.registry.Get(entity)
	if err != nil {
		return "", err
	}
	if _, ok := cfg.Prepopulated["slug"]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, entity+" has no slug field")
	}
	base := repo.NewBase(s.db.DB())
	return slug.Unique(slug.MakeOrFallback(name), func(candidate string) (bool, error) {
		return base.Exists(ctx, tableModel(entity), "slug = ?", candidate)
	})
}

func (s *Service) logSaved(ctx context.Context, entity string, requested, id uuid.UUID) {
	action := "admin record updated"
	if requested == uuid.Nil {
		action = "admin record created"
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"entity": entity, "id": id.String()})
	s.logg.Info(ctx, action)
}

func (s *Service) productDetail(p *models.Product) Row {
	row := productRow(p)
	inline := s.registry.entities[EntityProducts].Inlines
	variants := make([]Row, 0, len(p.Variants))
	for _, v := range p.Variants {
		r := variantRow(v)
		if len(inline) > 0 && inline[0].ShowChangeLink {
			r["change_link"] = "/admin/api/" + EntityVariants + "/" + v.ID.String()
		}
		variants = append(variants, r)
	}
	row["variants"] = variants
	return row
}

func loadProduct(conn *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := conn.
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Take(&p, "id = ?", id).
		Error
	if err != nil {
		return nil, repo.MapError(err, "product")
	}
	return &p, nil
}

// validateInlines checks every inline row and reports all failures at once,
// keyed by row position.
func validateInlines(rows []InlineVariant) error {
	var errs error
	details := map[string]any{}
	for i, row := range rows {
		if row.Delete || row.blank() {
			continue
		}
		if err := validate.Struct(&row); err != nil {
			key := fmt.Sprintf("variants[%d]", i)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			if typed := pkgerrors.As(err); typed != nil {
				details[key] = typed.Details()
			}
		}
	}
	if errs == nil {
		return nil
	}
	n := len(multierr.Errors(errs))
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, fmt.Sprintf("%d invalid variant row(s)", n)).WithDetails(details)
}

func saveInlines(tx *gorm.DB, productID uuid.UUID, rows []InlineVariant) error {
	for _, row := range rows {
		if row.blank() {
			continue
		}
		var v models.ProductVariant
		if row.ID != nil {
			if err := tx.Take(&v, "id = ? AND product_id = ?", *row.ID, productID).Error; err != nil {
				return repo.MapError(err, "variant")
			}
			if row.Delete {
				if err := tx.Delete(&v).Error; err != nil {
					return repo.MapError(err, "variant")
				}
				continue
			}
		} else if row.Delete {
			continue
		} else {
			v.IsActive = true
		}
		v.ProductID = productID
		v.Name = row.Name
		v.ImageURL = row.ImageURL
		v.OldPrice = row.OldPrice
		v.NewPrice = decimalOr(row.NewPrice)
		v.Stock = intOr(row.Stock, v.Stock)
		v.IsActive = boolOr(row.IsActive, v.IsActive)
		if err := tx.Save(&v).Error; err != nil {
			return repo.MapError(err, "variant")
		}
	}
	return nil
}

func requireRow(tx *gorm.DB, model any, id uuid.UUID, what string) error {
	ok, err := repo.NewBase(tx).Exists(tx.Statement.Context, model, "id = ?", id)
	if err != nil {
		return repo.MapError(err, what)
	}
	if !ok {
		return pkgerrors.Invalid(what+" does not exist", map[string]string{what: "does not exist"})
	}
	return nil
}

// retryDerivedSlug runs fn a second time when a derived slug lost a race
// with a concurrent insert. The retry sees the committed row and picks the
// next suffix. Manual slugs are never retried.
func retryDerivedSlug(derived bool, fn func() error) error {
	err := fn()
	if derived && pkgerrors.Is(err, pkgerrors.CodeConflict) {
		err = fn()
	}
	return err
}

// checkSlug rejects manual slugs that differ from their own derived form.
func checkSlug(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || slug.Make(s) == s {
		return nil
	}
	return pkgerrors.Invalid("slug may only contain lowercase letters, digits and hyphens", map[string]string{"slug": "is invalid"})
}

func tableModel(entity string) any {
	if entity == EntityCategories {
		return &models.Category{}
	}
	return &models.Product{}
}
