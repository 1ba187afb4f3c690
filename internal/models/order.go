package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceType is how the customer receives the order. The zero value is not
// a valid service type.
type ServiceType uint8

const (
	Pickup ServiceType = iota + 1
	Delivery
)

func ParseServiceType(s string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceType, s)
	}
}

func (s ServiceType) Valid() bool {
	return s == Pickup || s == Delivery
}

func (s ServiceType) String() string {
	switch s {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return fmt.Sprintf("ServiceType(%d)", uint8(s))
	}
}

type Order struct {
	ID           uuid.UUID   `json:"id"`
	Items        []MenuItem  `json:"items"`
	ServiceType  ServiceType `json:"service_type"`
	Loyalty      bool        `json:"loyalty,omitempty"`
	IsDiscounted bool        `json:"is_discounted"`
	Paid         bool        `json:"paid"`
	CreatedAt    time.Time   `json:"created_at"`
	PaidAt       *time.Time  `json:"paid_at,omitempty"`

	pricing Pricing
}

func NewOrder(serviceType ServiceType, loyalty bool, pricing Pricing) (*Order, error) {
	if !serviceType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidServiceType, serviceType)
	}
	return &Order{
		ID:          uuid.New(),
		ServiceType: serviceType,
		Loyalty:     loyalty,
		CreatedAt:   time.Now(),
		pricing:     pricing,
	}, nil
}

func (o *Order) Pricing() Pricing {
	return o.pricing
}

// RawCost is the undiscounted sum of item prices.
func (o *Order) RawCost() decimal.Decimal {
	cost := decimal.Zero
	for _, item := range o.Items {
		cost = cost.Add(item.Price)
	}
	return cost
}

// TotalCost applies discount, delivery fee and tax, in that order, and
// refreshes IsDiscounted. The result is not rounded.
func (o *Order) TotalCost() decimal.Decimal {
	cost := o.RawCost()

	if o.pricing.qualifies(cost, o.Loyalty) {
		cost = cost.Mul(decimal.NewFromInt(1).Sub(o.pricing.Rate()))
		o.IsDiscounted = true
	} else {
		o.IsDiscounted = false
	}

	switch o.ServiceType {
	case Pickup:
	case Delivery:
		cost = cost.Add(o.pricing.DeliveryFee)
	default:
		panic(fmt.Sprintf("order %s has invalid service type %s", o.ID, o.ServiceType))
	}

	return cost.Mul(decimal.NewFromInt(1).Add(o.pricing.TaxRate))
}

func (o *Order) AddItem(item MenuItem, quantity int) error {
	if o.Paid {
		return ErrOrderLocked
	}
	for i := 0; i < quantity; i++ {
		o.Items = append(o.Items, item)
	}
	return nil
}

// RemoveItem deletes the first occurrence of item and reports whether one
// was present.
func (o *Order) RemoveItem(item MenuItem) (bool, error) {
	if o.Paid {
		return false, ErrOrderLocked
	}
	for i, it := range o.Items {
		if it.Matches(item.Name) {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (o *Order) MarkPaid(at time.Time) error {
	if o.Paid {
		return ErrAlreadyPaid
	}
	o.Paid = true
	o.PaidAt = &at
	return nil
}

// Receipt prices the order and lists the extras that went into the total.
func (o *Order) Receipt() Receipt {
	total := o.TotalCost()

	var extras []string
	if o.IsDiscounted {
		extras = append(extras, "a "+percent(o.pricing.Rate())+" discount")
	}
	if o.ServiceType == Delivery {
		extras = append(extras, "$"+o.pricing.DeliveryFee.StringFixed(2)+" delivery")
	}
	extras = append(extras, percent(o.pricing.TaxRate)+" "+o.pricing.TaxName)

	return Receipt{
		OrderID:     o.ID,
		ServiceType: o.ServiceType,
		ItemCount:   len(o.Items),
		RawCost:     o.RawCost(),
		Total:       total,
		Discounted:  o.IsDiscounted,
		Extras:      extras,
		Paid:        o.Paid,
	}
}

func (o *Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.Name)
	}
	return names
}

// OrderView is an order as seen from the order list.
type OrderView struct {
	Index   int
	Order   *Order
	Current bool
}

// ItemChange reports the outcome of adding or removing items on an order.
// Missing counts requested removals that found no matching item.
type ItemChange struct {
	Order   *Order
	Item    MenuItem
	Count   int
	Missing int
}
