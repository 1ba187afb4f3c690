package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountPolicy selects how an order qualifies for a discount. Exactly one
// policy is active at a time; they never stack.
type DiscountPolicy string

const (
	// ThresholdDiscount discounts orders whose raw cost exceeds the threshold.
	ThresholdDiscount DiscountPolicy = "threshold"
	// LoyaltyDiscount discounts orders over the threshold or flagged as
	// loyalty-card orders, at the loyalty rate.
	LoyaltyDiscount DiscountPolicy = "loyalty"
)

func ParseDiscountPolicy(s string) (DiscountPolicy, error) {
	switch DiscountPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case ThresholdDiscount, "":
		return ThresholdDiscount, nil
	case LoyaltyDiscount:
		return LoyaltyDiscount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDiscountPolicy, s)
	}
}

// Pricing holds every constant that goes into an order total.
type Pricing struct {
	Policy            DiscountPolicy
	DiscountThreshold decimal.Decimal
	DiscountRate      decimal.Decimal
	LoyaltyRate       decimal.Decimal
	DeliveryFee       decimal.Decimal
	TaxRate           decimal.Decimal
	TaxName           string
	MaxQuantity       int
}

func DefaultPricing() Pricing {
	return Pricing{
		Policy:            ThresholdDiscount,
		DiscountThreshold: decimal.NewFromInt(100),
		DiscountRate:      decimal.RequireFromString("0.10"),
		LoyaltyRate:       decimal.RequireFromString("0.05"),
		DeliveryFee:       decimal.RequireFromString("8.00"),
		TaxRate:           decimal.RequireFromString("0.10"),
		TaxName:           "GST",
		MaxQuantity:       10,
	}
}

// Rate returns the discount rate of the active policy.
func (p Pricing) Rate() decimal.Decimal {
	if p.Policy == LoyaltyDiscount {
		return p.LoyaltyRate
	}
	return p.DiscountRate
}

func (p Pricing) qualifies(raw decimal.Decimal, loyalty bool) bool {
	over := raw.GreaterThan(p.DiscountThreshold)
	if p.Policy == LoyaltyDiscount {
		return over || loyalty
	}
	return over
}

// UsesLoyalty reports whether orders need a loyalty flag under this policy.
func (p Pricing) UsesLoyalty() bool {
	return p.Policy == LoyaltyDiscount
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
