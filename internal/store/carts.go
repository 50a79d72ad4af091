package store

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// primaryImagePosition is the display slot used for cart thumbnails.
const primaryImagePosition = 1

type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

func (s *CartStore) Transaction(ctx context.Context, fn func(tx CartRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CartStore{db: tx})
	})
}

func (s *CartStore) FindActive(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND cart_status = ?", userID, models.CartStatusActive).
		First(&cart).Error

	if err != nil {
		return nil, translate(err, "find active cart")
	}

	return &cart, nil
}

func (s *CartStore) FindOwned(ctx context.Context, cartID, userID uint) (*models.Cart, error) {
	var cart models.Cart

	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", cartID, userID).First(&cart).Error; err != nil {
		return nil, translate(err, "find cart")
	}

	return &cart, nil
}

func (s *CartStore) CreateCart(ctx context.Context, cart *models.Cart) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(cart).Error
	return translate(err, "create cart")
}

func (s *CartStore) UpdateStatus(ctx context.Context, cart *models.Cart, status string) error {
	if err := s.db.WithContext(ctx).Model(cart).Update("cart_status", status).Error; err != nil {
		return translate(err, "update cart status")
	}

	cart.CartStatus = status

	return nil
}

func (s *CartStore) DeleteCart(ctx context.Context, cartID uint) error {
	db := s.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return translate(err, "delete cart items")
	}

	result := db.Delete(&models.Cart{}, cartID)

	if result.Error != nil {
		return translate(result.Error, "delete cart")
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *CartStore) FindItem(ctx context.Context, cartID, variantID uint) (*models.CartItem, error) {
	var item models.CartItem

	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
		First(&item).Error

	if err != nil {
		return nil, translate(err, "find cart item")
	}

	return &item, nil
}

func (s *CartStore) FindItemByID(ctx context.Context, itemID uint) (*models.CartItem, error) {
	var item models.CartItem

	if err := s.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, translate(err, "reload cart item")
	}

	return &item, nil
}

func (s *CartStore) CreateItem(ctx context.Context, item *models.CartItem) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	return translate(err, "create cart item")
}

func (s *CartStore) IncrementItem(ctx context.Context, itemID uint, quantity int) error {
	result := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))

	if result.Error != nil {
		return translate(result.Error, "increment cart item")
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListItemViews joins each line with its catalog data. Lines whose color has
// no primary image drop out of the result.
func (s *CartStore) ListItemViews(ctx context.Context, cartID uint) ([]models.CartItemView, error) {
	views := []models.CartItemView{}

	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id, cart_items.cart_id, cart_items.product_variant_id, cart_items.quantity, cart_items.price,
			products.name AS product_name, product_images.image_url, colors.name AS color, sizes.name AS size`).
		Joins("JOIN product_variants ON product_variants.id = cart_items.product_variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN sizes ON sizes.id = product_variants.size_id").
		Joins("JOIN color_products ON color_products.id = product_variants.color_products_id").
		Joins("JOIN colors ON colors.id = color_products.color_id").
		Joins("JOIN product_images ON product_images.color_products_id = color_products.id AND product_images.position = ?", primaryImagePosition).
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&views).Error

	if err != nil {
		return nil, translate(err, "list cart items")
	}

	return views, nil
}

func (s *CartStore) SumQuantity(ctx context.Context, cartID uint) (int64, error) {
	var total int64

	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("cart_id = ?", cartID).
		Scan(&total).Error

	if err != nil {
		return 0, translate(err, "count cart items")
	}

	return total, nil
}
