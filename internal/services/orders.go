package services

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
)

type OrderService struct {
	orders store.OrderRepository
}

func NewOrderService(orders store.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) History(ctx context.Context, user *models.User) ([]models.OrderSummary, error) {
	return s.orders.ListByUser(ctx, user.ID)
}

func (s *OrderService) Order(ctx context.Context, orderID uint, user *models.User) (*models.Order, error) {
	order, err := s.orders.FindOwned(ctx, orderID, user.ID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return order, nil
}
