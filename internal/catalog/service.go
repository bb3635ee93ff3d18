package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/catalog-backend/internal/repo"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "all"

// Service exposes the read-only catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategory(ctx context.Context, slug string) (*CategoryDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, slug string) (*ProductDTO, error)
}

// ListProductsInput carries the optional category filter and page request.
type ListProductsInput struct {
	CategorySlug string
	Pagination   pagination.Params
}

type service struct {
	repo *Repository
}

// NewService builds the catalog read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, repo.MapError(err, "categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewCategoryDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) GetCategory(ctx context.Context, slug string) (*CategoryDTO, error) {
	category, err := s.repo.FindActiveCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, repo.MapError(err, "category")
	}
	dto := NewCategoryDTO(category)
	return &dto, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	filter := strings.TrimSpace(input.CategorySlug)
	if strings.EqualFold(filter, AllCategories) {
		filter = ""
	}

	if _, err := pagination.ParseCursor(input.Pagination.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.ListActiveProducts(ctx, productListQuery{
		CategorySlug: filter,
		Pagination:   input.Pagination,
	})
	if err != nil {
		return nil, repo.MapError(err, "products")
	}

	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewProductDTO(&rows[i]))
	}
	return &ProductListResult{Products: out, NextCursor: next}, nil
}

func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindActiveProductBySlug(ctx, slug)
	if err != nil {
		return nil, repo.MapError(err, "product")
	}
	dto := NewProductDTO(product)
	return &dto, nil
}
