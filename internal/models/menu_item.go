package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCategory = "Pizza"

// MenuItem is an immutable catalog entry. Orders hold copies, never pointers.
type MenuItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

func NewMenuItem(name string, price decimal.Decimal, category string) (MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MenuItem{}, ErrInvalidMenuItemName
	}
	if price.IsNegative() {
		return MenuItem{}, ErrInvalidMenuItemPrice
	}
	if category == "" {
		category = DefaultCategory
	}
	return MenuItem{Name: name, Price: price, Category: category}, nil
}

// Matches reports whether name refers to this item, ignoring case and
// surrounding whitespace.
func (m MenuItem) Matches(name string) bool {
	return strings.EqualFold(m.Name, strings.TrimSpace(name))
}
