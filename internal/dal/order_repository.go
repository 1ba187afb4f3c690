package dal

import (
	"context"
	"fmt"

	"papapizza/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (int, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, int, error)
	GetOrderByIndex(ctx context.Context, index int) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]*models.Order, error)
	DeleteOrder(ctx context.Context, index int) (*models.Order, error)
}

// orderRepository keeps orders in creation order. Indexes are 1-based, the
// way they are shown to the operator, and shift down when an order is
// deleted.
type orderRepository struct {
	orders []*models.Order
}

func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (int, error) {
	if order == nil {
		return 0, fmt.Errorf("failed to create order: nil order")
	}
	if _, _, err := r.GetOrderByID(ctx, order.ID); err == nil {
		return 0, fmt.Errorf("failed to create order: duplicate id %s", order.ID)
	}
	r.orders = append(r.orders, order)
	return len(r.orders), nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, int, error) {
	for i, order := range r.orders {
		if order.ID == id {
			return order, i + 1, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
}

func (r *orderRepository) GetOrderByIndex(ctx context.Context, index int) (*models.Order, error) {
	if index < 1 || index > len(r.orders) {
		return nil, fmt.Errorf("%w: %d (1-%d)", models.ErrIndexOutOfRange, index, len(r.orders))
	}
	return r.orders[index-1], nil
}

func (r *orderRepository) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	orders := make([]*models.Order, len(r.orders))
	copy(orders, r.orders)
	return orders, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, index int) (*models.Order, error) {
	order, err := r.GetOrderByIndex(ctx, index)
	if err != nil {
		return nil, err
	}
	r.orders = append(r.orders[:index-1], r.orders[index:]...)
	return order, nil
}
