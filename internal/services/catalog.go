package services

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

type CatalogService struct {
	catalog store.CatalogRepository
}

func NewCatalogService(catalog store.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Variants(ctx context.Context, skip, limit int) ([]models.VariantView, error) {
	if skip < 0 || limit < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "skip and limit must not be negative")
	}

	if limit == 0 {
		limit = DefaultPageLimit
	}

	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return s.catalog.ListVariants(ctx, skip, limit)
}

// ProductsByCategory may legitimately be empty.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.CategoryProductView, error) {
	return s.catalog.ListProductsByCategory(ctx, categoryID)
}

func (s *CatalogService) Product(ctx context.Context, productID uint) ([]models.ProductDetailView, error) {
	return nonEmpty(s.catalog.ProductDetail(ctx, productID))
}

func (s *CatalogService) ProductImages(ctx context.Context, productID uint, colorCode string) ([]models.ProductImageView, error) {
	return nonEmpty(s.catalog.ProductImages(ctx, productID, colorCode))
}

func (s *CatalogService) ProductColors(ctx context.Context, productID uint) ([]models.ProductColorView, error) {
	return nonEmpty(s.catalog.ProductColors(ctx, productID))
}

func (s *CatalogService) ProductSizes(ctx context.Context, productID uint, colorCode string) ([]models.ProductSizeView, error) {
	return nonEmpty(s.catalog.ProductSizes(ctx, productID, colorCode))
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.catalog.ListRootCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.catalog.FindRootCategory(ctx, id)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return category, nil
}

func (s *CatalogService) Subcategories(ctx context.Context) ([]models.Category, error) {
	return s.catalog.ListSubcategories(ctx)
}

// SubcategoriesOf rejects parent 0, which would select the root level.
func (s *CatalogService) SubcategoriesOf(ctx context.Context, parentID uint) ([]models.Category, error) {
	if parentID == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "subcategory not found")
	}

	return nonEmpty(s.catalog.ListSubcategoriesOf(ctx, parentID))
}

func nonEmpty[T any](rows []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	return rows, nil
}
