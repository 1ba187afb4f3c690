package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"papapizza/internal/console"
	"papapizza/internal/models"
	"papapizza/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
	menu         *MenuHandler
	console      *console.Console
}

func NewOrderHandler(orderService service.OrderService, menu *MenuHandler, c *console.Console) *OrderHandler {
	return &OrderHandler{orderService: orderService, menu: menu, console: c}
}

// CreateOrder handles `order create [pickup|delivery]`.
func (h *OrderHandler) CreateOrder(ctx context.Context, args []string) error {
	var kind string
	if len(args) > 0 {
		kind = args[0]
	} else {
		answer, err := h.console.Prompt(ctx, "what type of order would you like to create? (pickup/delivery): ")
		if err != nil {
			return err
		}
		kind = answer
	}

	serviceType, err := models.ParseServiceType(kind)
	if err != nil {
		return respondWithError(h.console, err)
	}

	loyalty := false
	if h.orderService.Pricing().UsesLoyalty() {
		loyalty, err = h.console.Confirm(ctx, "does the customer have a loyalty card? (y/N): ", false)
		if err != nil {
			return err
		}
	}

	order, selected, err := h.orderService.CreateOrder(ctx, serviceType, loyalty)
	if err != nil {
		return respondWithError(h.console, err)
	}
	h.console.Success("order %s created successfully!", order.ID)

	if selected {
		h.console.Success("switched to order %s", order.ID)
		return nil
	}

	ok, err := h.console.Confirm(ctx, "do you want to switch to this order? (y/N): ", false)
	if err != nil || !ok {
		return err
	}
	index, err := h.indexOf(ctx, order)
	if err != nil {
		return respondWithError(h.console, err)
	}
	return h.switchTo(ctx, index)
}

// RemoveOrder handles `order remove [index]`.
func (h *OrderHandler) RemoveOrder(ctx context.Context, args []string) error {
	index, err := h.chooseOrder(ctx, args, "which order would you like to remove?")
	if err != nil {
		return respondWithError(h.console, err)
	}

	if _, err := h.orderService.RemoveOrder(ctx, index); err != nil {
		return respondWithError(h.console, err)
	}
	h.console.Success("order %d removed successfully!", index)
	return nil
}

// ListOrders handles `order list`.
func (h *OrderHandler) ListOrders(ctx context.Context, args []string) error {
	views, err := h.orderService.ListOrders(ctx)
	if err != nil {
		return respondWithError(h.console, err)
	}
	for _, view := range views {
		h.printOrder(view)
	}
	return nil
}

// SwitchOrder handles `order switch [index]`.
func (h *OrderHandler) SwitchOrder(ctx context.Context, args []string) error {
	index, err := h.chooseOrder(ctx, args, "which order would you like to switch to?")
	if err != nil {
		return respondWithError(h.console, err)
	}
	return h.switchTo(ctx, index)
}

// ProcessOrder handles `order process`.
func (h *OrderHandler) ProcessOrder(ctx context.Context, args []string) error {
	var (
		receipt   models.Receipt
		paid      bool
		processed bool
	)
	confirm := func(r models.Receipt) (bool, error) {
		h.console.Plain("the total for order %s is $%s, including %s.",
			r.OrderID, r.Total.StringFixed(2), strings.Join(r.Extras, " and "))
		return h.console.Confirm(ctx, "would you like to pay now? (y/N): ", true)
	}

	err := h.withCurrentOrder(ctx, func() error {
		var err error
		receipt, paid, err = h.orderService.ProcessOrder(ctx, confirm)
		processed = err == nil
		return err
	})
	if err != nil {
		return respondWithError(h.console, err)
	}
	if !processed {
		return nil
	}

	if !paid {
		h.console.Notice("payment cancelled")
		return nil
	}
	h.console.Success("order %s paid successfully!", receipt.OrderID)
	h.console.Success("order %s has been added to the daily sales summary.", receipt.OrderID)
	return nil
}

// AddItem handles `order item add [itemName] [quantity]`.
func (h *OrderHandler) AddItem(ctx context.Context, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	for name == "" || strings.EqualFold(name, "menu") {
		if name != "" {
			if err := h.menu.ShowMenu(ctx, nil); err != nil {
				return err
			}
		}
		answer, err := h.console.Prompt(ctx, "enter the name of the menu item you'd like to add (or type 'menu' to review the options): ")
		if err != nil {
			return err
		}
		if answer == "" {
			return respondWithError(h.console, models.ErrUnknownMenuItem)
		}
		name = answer
	}

	raw := "1"
	if len(args) > 1 {
		raw = args[1]
	}
	quantity, err := parseQuantity(raw)
	if err != nil {
		answer, err := h.console.Prompt(ctx, "enter a valid quantity (1 or more): ")
		if err != nil {
			return err
		}
		if quantity, err = parseQuantity(answer); err != nil {
			return respondWithError(h.console, err)
		}
	}

	var change models.ItemChange
	err = h.withCurrentOrder(ctx, func() error {
		var err error
		change, err = h.orderService.AddItem(ctx, name, quantity)
		return err
	})
	if errors.Is(err, models.ErrInvalidQuantity) {
		h.console.Failure("maximum quantity is %d at a time. try adding items again to add more.",
			h.orderService.Pricing().MaxQuantity)
		return nil
	}
	if err != nil {
		return respondWithError(h.console, err)
	}

	for i := 0; i < change.Count; i++ {
		h.console.Success("added %s to order %s", change.Item.Name, change.Order.ID)
	}
	return nil
}

// RemoveItem handles `order item remove [itemName] [quantity]`.
func (h *OrderHandler) RemoveItem(ctx context.Context, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		answer, err := h.console.Prompt(ctx, "which menu item would you like to remove?: ")
		if err != nil {
			return err
		}
		name = answer
	}
	if _, err := h.menu.menuService.GetMenuItemByName(ctx, name); err != nil {
		return respondWithError(h.console, err)
	}

	raw := ""
	if len(args) > 1 {
		raw = args[1]
	} else {
		answer, err := h.console.Prompt(ctx, "how many of this item would you like to remove? ")
		if err != nil {
			return err
		}
		raw = answer
	}
	quantity, err := parseQuantity(raw)
	if err != nil {
		return respondWithError(h.console, err)
	}

	var change models.ItemChange
	err = h.withCurrentOrder(ctx, func() error {
		var err error
		change, err = h.orderService.RemoveItem(ctx, name, quantity)
		return err
	})
	if err != nil && !errors.Is(err, models.ErrItemNotInOrder) {
		return respondWithError(h.console, err)
	}

	for i := 0; i < change.Count; i++ {
		h.console.Success("removed %s from order %s", change.Item.Name, change.Order.ID)
	}
	for i := 0; i < change.Missing; i++ {
		h.console.Failure("%s not in current order.", change.Item.Name)
	}
	return nil
}

// withCurrentOrder runs op and, if it failed for want of a usable current
// order, offers the operator a way to get one and runs op again.
func (h *OrderHandler) withCurrentOrder(ctx context.Context, op func() error) error {
	err := op()
	if !needsUsableOrder(err) {
		return err
	}

	resolved, ferr := h.ensureUsableCurrentOrder(ctx, err)
	if ferr != nil {
		return ferr
	}
	if !resolved {
		return nil
	}
	return op()
}

func needsUsableOrder(err error) bool {
	return errors.Is(err, models.ErrNoCurrentOrder) ||
		errors.Is(err, models.ErrOrderLocked) ||
		errors.Is(err, models.ErrAlreadyPaid)
}

// ensureUsableCurrentOrder explains why there is no usable current order
// and offers to select, create or switch. It reports whether a usable order
// is current afterwards.
func (h *OrderHandler) ensureUsableCurrentOrder(ctx context.Context, cause error) (bool, error) {
	var question string
	var next func(ctx context.Context, args []string) error

	if errors.Is(cause, models.ErrNoCurrentOrder) {
		h.console.Failure("no current order selected.")
		if _, err := h.orderService.ListOrders(ctx); err == nil {
			question, next = "would you like to select an order? (y/N): ", h.SwitchOrder
		} else {
			question, next = "would you like to create an order? (y/N): ", h.CreateOrder
		}
	} else {
		h.console.Failure("this order has already been paid for.")
		question, next = "would you like to switch to a different order? (y/N): ", h.SwitchOrder
	}

	ok, err := h.console.Confirm(ctx, question, true)
	if err != nil || !ok {
		return false, err
	}
	if err := next(ctx, nil); err != nil {
		return false, err
	}

	_, err = h.orderService.UsableCurrentOrder(ctx)
	return err == nil, nil
}

// chooseOrder takes the index from args, or lists the orders and asks.
func (h *OrderHandler) chooseOrder(ctx context.Context, args []string, question string) (int, error) {
	if len(args) > 0 {
		return parseIndex(args[0])
	}

	views, err := h.orderService.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	for _, view := range views {
		h.printOrder(view)
	}

	answer, err := h.console.Prompt(ctx, fmt.Sprintf("%s (1-%d): ", question, len(views)))
	if err != nil {
		return 0, err
	}
	return parseIndex(answer)
}

func (h *OrderHandler) switchTo(ctx context.Context, index int) error {
	order, err := h.orderService.SwitchOrder(ctx, index)
	if err != nil {
		return respondWithError(h.console, err)
	}
	h.console.Success("switched to order %s", order.ID)
	return nil
}

func (h *OrderHandler) indexOf(ctx context.Context, order *models.Order) (int, error) {
	views, err := h.orderService.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	for _, view := range views {
		if view.Order.ID == order.ID {
			return view.Index, nil
		}
	}
	return 0, models.ErrOrderNotFound
}

func (h *OrderHandler) printOrder(view models.OrderView) {
	order := view.Order
	marker := ""
	if view.Current {
		marker = " (current)"
	}

	items := strings.Join(order.ItemNames(), ", ")
	if items == "" {
		items = "none"
	}

	h.console.Success("%d. %s order %s:%s", view.Index, order.ServiceType, order.ID, marker)
	h.console.Plain("\titems: %s", items)
	h.console.Plain("\tservice type: %s", strings.ToUpper(order.ServiceType.String()))
	h.console.Plain("\ttotal cost: $%s", order.TotalCost().StringFixed(2))
	h.console.Plain("\tpaid: %s", yesNo(order.Paid))
}
