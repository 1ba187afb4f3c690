package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"papapizza/internal/dal"
	"papapizza/internal/logger"
	"papapizza/internal/models"

	"github.com/google/uuid"
)

// ConfirmFunc is asked whether to take payment for the priced receipt.
type ConfirmFunc func(receipt models.Receipt) (bool, error)

type OrderService interface {
	CreateOrder(ctx context.Context, serviceType models.ServiceType, loyalty bool) (*models.Order, bool, error)
	RemoveOrder(ctx context.Context, index int) (*models.Order, error)
	SwitchOrder(ctx context.Context, index int) (*models.Order, error)
	CurrentOrder(ctx context.Context) (*models.Order, error)
	UsableCurrentOrder(ctx context.Context) (*models.Order, error)
	AddItem(ctx context.Context, name string, quantity int) (models.ItemChange, error)
	RemoveItem(ctx context.Context, name string, quantity int) (models.ItemChange, error)
	ProcessOrder(ctx context.Context, confirm ConfirmFunc) (models.Receipt, bool, error)
	ListOrders(ctx context.Context) ([]models.OrderView, error)
	Pricing() models.Pricing
}

// orderService is the order manager: it owns every order, the current-order
// pointer and the daily sales ledger.
type orderService struct {
	orderRepo  dal.OrderRepository
	menuRepo   dal.MenuRepository
	reportRepo dal.ReportRepository
	pricing    models.Pricing
	log        *logger.Logger

	current uuid.NullUUID
}

func NewOrderService(
	orderRepo dal.OrderRepository,
	menuRepo dal.MenuRepository,
	reportRepo dal.ReportRepository,
	pricing models.Pricing,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		menuRepo:   menuRepo,
		reportRepo: reportRepo,
		pricing:    pricing,
		log:        log,
	}
}

func (s *orderService) Pricing() models.Pricing {
	return s.pricing
}

// CreateOrder appends a new empty order. It becomes current only when it is
// the only order; the bool result reports whether that happened.
func (s *orderService) CreateOrder(ctx context.Context, serviceType models.ServiceType, loyalty bool) (*models.Order, bool, error) {
	order, err := models.NewOrder(serviceType, loyalty, s.pricing)
	if err != nil {
		return nil, false, err
	}

	index, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		return nil, false, err
	}

	s.log.Info("order_created", "order created",
		slog.String("order_id", order.ID.String()),
		slog.String("service_type", serviceType.String()),
		slog.Bool("loyalty", loyalty),
		slog.Int("index", index),
	)

	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(orders) == 1 {
		s.setCurrent(order)
		return order, true, nil
	}
	return order, false, nil
}

// RemoveOrder deletes the order at the 1-based index. Paid orders may be
// removed; their sale stays in the ledger.
func (s *orderService) RemoveOrder(ctx context.Context, index int) (*models.Order, error) {
	order, err := s.orderRepo.DeleteOrder(ctx, index)
	if err != nil {
		return nil, err
	}

	if s.current.Valid && s.current.UUID == order.ID {
		s.current = uuid.NullUUID{}
	}

	s.log.Info("order_removed", "order removed",
		slog.String("order_id", order.ID.String()),
		slog.Int("index", index),
		slog.Bool("paid", order.Paid),
	)
	return order, nil
}

// SwitchOrder makes the order at index current. It returns the order with
// ErrAlreadyCurrent when nothing changes.
func (s *orderService) SwitchOrder(ctx context.Context, index int) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByIndex(ctx, index)
	if err != nil {
		return nil, err
	}
	if s.current.Valid && s.current.UUID == order.ID {
		return order, models.ErrAlreadyCurrent
	}

	s.setCurrent(order)
	return order, nil
}

func (s *orderService) CurrentOrder(ctx context.Context) (*models.Order, error) {
	if !s.current.Valid {
		return nil, models.ErrNoCurrentOrder
	}

	order, _, err := s.orderRepo.GetOrderByID(ctx, s.current.UUID)
	if errors.Is(err, models.ErrOrderNotFound) {
		s.current = uuid.NullUUID{}
		return nil, models.ErrNoCurrentOrder
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UsableCurrentOrder is the guard in front of item changes and payment. A
// paid current order is returned together with ErrOrderLocked.
func (s *orderService) UsableCurrentOrder(ctx context.Context) (*models.Order, error) {
	order, err := s.CurrentOrder(ctx)
	if err != nil {
		return nil, err
	}
	if order.Paid {
		return order, models.ErrOrderLocked
	}
	return order, nil
}

func (s *orderService) AddItem(ctx context.Context, name string, quantity int) (models.ItemChange, error) {
	item, err := s.menuRepo.GetMenuItemByName(ctx, name)
	if err != nil {
		return models.ItemChange{}, err
	}
	if quantity < 1 || quantity > s.pricing.MaxQuantity {
		return models.ItemChange{}, fmt.Errorf("%w: %d (1-%d)", models.ErrInvalidQuantity, quantity, s.pricing.MaxQuantity)
	}

	order, err := s.UsableCurrentOrder(ctx)
	if err != nil {
		return models.ItemChange{Order: order, Item: item}, err
	}
	if err := order.AddItem(item, quantity); err != nil {
		return models.ItemChange{Order: order, Item: item}, err
	}

	s.log.Info("item_added", "item added to order",
		slog.String("order_id", order.ID.String()),
		slog.String("item", item.Name),
		slog.Int("quantity", quantity),
	)
	return models.ItemChange{Order: order, Item: item, Count: quantity}, nil
}

// RemoveItem removes up to quantity occurrences one at a time. When fewer
// were present the change is kept and ErrItemNotInOrder reports the rest.
func (s *orderService) RemoveItem(ctx context.Context, name string, quantity int) (models.ItemChange, error) {
	item, err := s.menuRepo.GetMenuItemByName(ctx, name)
	if err != nil {
		return models.ItemChange{}, err
	}
	if quantity < 1 {
		return models.ItemChange{}, fmt.Errorf("%w: %d", models.ErrInvalidQuantity, quantity)
	}

	order, err := s.UsableCurrentOrder(ctx)
	if err != nil {
		return models.ItemChange{Order: order, Item: item}, err
	}

	change := models.ItemChange{Order: order, Item: item}
	for change.Count < quantity {
		removed, err := order.RemoveItem(item)
		if err != nil {
			return change, err
		}
		if !removed {
			break
		}
		change.Count++
	}
	change.Missing = quantity - change.Count

	if change.Count > 0 {
		s.log.Info("item_removed", "item removed from order",
			slog.String("order_id", order.ID.String()),
			slog.String("item", item.Name),
			slog.Int("quantity", change.Count),
		)
	}
	if change.Missing > 0 {
		return change, fmt.Errorf("%w: %d x %s", models.ErrItemNotInOrder, change.Missing, item.Name)
	}
	return change, nil
}

// ProcessOrder prices the current order and, if confirm agrees, marks it
// paid and records the sale. Declining changes nothing.
func (s *orderService) ProcessOrder(ctx context.Context, confirm ConfirmFunc) (models.Receipt, bool, error) {
	order, err := s.CurrentOrder(ctx)
	if err != nil {
		return models.Receipt{}, false, err
	}
	if order.Paid {
		return models.Receipt{}, false, models.ErrAlreadyPaid
	}

	receipt := order.Receipt()
	ok, err := confirm(receipt)
	if err != nil {
		return receipt, false, err
	}
	if !ok {
		s.log.Info("payment_declined", "payment cancelled by operator",
			slog.String("order_id", order.ID.String()),
		)
		return receipt, false, nil
	}

	now := time.Now()
	amount := receipt.Total.Round(2)
	if err := s.reportRepo.RecordSale(ctx, models.SaleEntry{
		OrderID:    order.ID,
		Amount:     amount,
		RecordedAt: now,
	}); err != nil {
		s.log.Error("order_paid", "failed to record sale", err,
			slog.String("order_id", order.ID.String()),
		)
		return receipt, false, err
	}
	if err := order.MarkPaid(now); err != nil {
		return receipt, false, err
	}
	receipt.Paid = true

	s.log.Info("order_paid", "order paid",
		slog.String("order_id", order.ID.String()),
		slog.String("total", amount.StringFixed(2)),
		slog.Bool("discounted", receipt.Discounted),
	)
	return receipt, true, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, models.ErrNoOrders
	}

	views := make([]models.OrderView, 0, len(orders))
	for i, order := range orders {
		views = append(views, models.OrderView{
			Index:   i + 1,
			Order:   order,
			Current: s.current.Valid && s.current.UUID == order.ID,
		})
	}
	return views, nil
}

func (s *orderService) setCurrent(order *models.Order) {
	s.current = uuid.NullUUID{UUID: order.ID, Valid: true}
	s.log.Info("order_switched", "current order changed",
		slog.String("order_id", order.ID.String()),
	)
}
