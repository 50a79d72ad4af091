package store

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"gorm.io/gorm"
)

type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) ListVariants(ctx context.Context, offset, limit int) ([]models.VariantView, error) {
	variants := []models.VariantView{}

	err := s.db.WithContext(ctx).
		Table("product_variants").
		Select(`product_variants.id, product_variants.product_id, product_variants.stock, product_variants.price,
			product_variants.reference2, product_variants.color_products_id, product_variants.created_at, product_variants.updated_at,
			sizes.name AS size_name, products.name AS product_name, colors.name AS color`).
		Joins("JOIN sizes ON sizes.id = product_variants.size_id").
		Joins("JOIN color_products ON color_products.id = product_variants.color_products_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN colors ON colors.id = color_products.color_id").
		Order("product_variants.id").
		Offset(offset).
		Limit(limit).
		Scan(&variants).Error

	if err != nil {
		return nil, translate(err, "list variants")
	}

	return variants, nil
}

// ListProductsByCategory returns one card per (product, color) using the
// primary image of that color.
func (s *CatalogStore) ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.CategoryProductView, error) {
	products := []models.CategoryProductView{}

	err := s.db.WithContext(ctx).
		Table("product_images").
		Select(`DISTINCT ON (color_products.product_id, categories.id, colors.code)
			product_images.position, product_images.image_url, color_products.product_id,
			colors.code AS color_code, colors.image_url AS color_image_url, products.name AS product_name,
			product_variants.price, categories.id AS category_id, categories.name AS category_name`).
		Joins("JOIN color_products ON color_products.id = product_images.color_products_id").
		Joins("JOIN colors ON colors.id = color_products.color_id").
		Joins("JOIN products ON products.id = color_products.product_id").
		Joins("JOIN product_variants ON product_variants.color_products_id = color_products.id").
		Joins("JOIN category_products ON category_products.product_id = color_products.product_id").
		Joins("JOIN categories ON categories.id = category_products.category_id").
		Where("product_images.position = ? AND categories.id = ?", primaryImagePosition, categoryID).
		Order("color_products.product_id, categories.id, colors.code, product_variants.price").
		Scan(&products).Error

	if err != nil {
		return nil, translate(err, "list products by category")
	}

	return products, nil
}

func (s *CatalogStore) ProductDetail(ctx context.Context, productID uint) ([]models.ProductDetailView, error) {
	rows := []models.ProductDetailView{}

	err := s.db.WithContext(ctx).
		Table("products").
		Select(`products.id, products.name, products.description_details, products.description_composition,
			products.description_care, products.description_delivery,
			product_variants.id AS product_variant_id, product_variants.price`).
		Joins("JOIN product_variants ON product_variants.product_id = products.id").
		Where("products.id = ?", productID).
		Order("product_variants.id").
		Scan(&rows).Error

	if err != nil {
		return nil, translate(err, "product detail")
	}

	return rows, nil
}

func (s *CatalogStore) ProductImages(ctx context.Context, productID uint, colorCode string) ([]models.ProductImageView, error) {
	images := []models.ProductImageView{}

	err := s.db.WithContext(ctx).
		Table("product_images").
		Select("product_images.id, product_images.image_url, product_images.position, colors.code").
		Joins("JOIN color_products ON color_products.id = product_images.color_products_id").
		Joins("JOIN colors ON colors.id = color_products.color_id").
		Where("colors.code = ? AND color_products.product_id = ?", colorCode, productID).
		Order("product_images.position ASC").
		Scan(&images).Error

	if err != nil {
		return nil, translate(err, "product images")
	}

	return images, nil
}

func (s *CatalogStore) ProductColors(ctx context.Context, productID uint) ([]models.ProductColorView, error) {
	colors := []models.ProductColorView{}

	err := s.db.WithContext(ctx).
		Table("colors").
		Select("colors.name, colors.code, colors.image_url, color_products.color_id").
		Joins("JOIN color_products ON color_products.color_id = colors.id").
		Where("color_products.product_id = ?", productID).
		Order("colors.name").
		Scan(&colors).Error

	if err != nil {
		return nil, translate(err, "product colors")
	}

	return colors, nil
}

func (s *CatalogStore) ProductSizes(ctx context.Context, productID uint, colorCode string) ([]models.ProductSizeView, error) {
	sizes := []models.ProductSizeView{}

	err := s.db.WithContext(ctx).
		Table("product_variants").
		Select("product_variants.size_id, sizes.name, product_variants.stock").
		Joins("JOIN sizes ON sizes.id = product_variants.size_id").
		Joins("JOIN color_products ON color_products.id = product_variants.color_products_id").
		Joins("JOIN colors ON colors.id = color_products.color_id").
		Where("colors.code = ? AND color_products.product_id = ?", colorCode, productID).
		Order("product_variants.size_id ASC").
		Scan(&sizes).Error

	if err != nil {
		return nil, translate(err, "product sizes")
	}

	return sizes, nil
}

func (s *CatalogStore) ListRootCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	if err := s.db.WithContext(ctx).Where("parent_id = 0").Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err, "list categories")
	}

	return categories, nil
}

func (s *CatalogStore) FindRootCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category

	if err := s.db.WithContext(ctx).Where("parent_id = 0 AND id = ?", id).First(&category).Error; err != nil {
		return nil, translate(err, "find category")
	}

	return &category, nil
}

func (s *CatalogStore) ListSubcategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	if err := s.db.WithContext(ctx).Where("parent_id <> 0").Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err, "list subcategories")
	}

	return categories, nil
}

func (s *CatalogStore) ListSubcategoriesOf(ctx context.Context, parentID uint) ([]models.Category, error) {
	categories := []models.Category{}

	if err := s.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err, "list subcategories by parent")
	}

	return categories, nil
}
