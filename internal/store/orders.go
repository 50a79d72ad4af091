package store

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"gorm.io/gorm"
)

type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) ListByUser(ctx context.Context, userID uint) ([]models.OrderSummary, error) {
	orders := []models.OrderSummary{}

	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("id, order_status, order_date, total_amount").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Scan(&orders).Error

	if err != nil {
		return nil, translate(err, "list orders")
	}

	return orders, nil
}

func (s *OrderStore) FindOwned(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, translate(err, "find order")
	}

	return &order, nil
}
