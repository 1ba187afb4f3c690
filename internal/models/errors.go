package models

import "errors"

var (
	ErrInvalidServiceType    = errors.New("invalid service type")
	ErrIndexOutOfRange       = errors.New("invalid order index")
	ErrUnknownMenuItem       = errors.New("invalid menu item")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrOrderLocked           = errors.New("this order has already been paid for")
	ErrAlreadyPaid           = errors.New("order already paid")
	ErrItemNotInOrder        = errors.New("item not in current order")
	ErrNoCurrentOrder        = errors.New("no current order selected")
	ErrAlreadyCurrent        = errors.New("this is already your current order")
	ErrNoOrders              = errors.New("no orders found")
	ErrNoSales               = errors.New("no sales to summarise")
	ErrDuplicateMenuItem     = errors.New("duplicate menu item")
	ErrInvalidMenuItemName   = errors.New("invalid menu item name")
	ErrInvalidMenuItemPrice  = errors.New("invalid menu item price")
	ErrInvalidDiscountPolicy = errors.New("invalid discount policy")
	ErrOrderNotFound         = errors.New("order not found")
	ErrSaleAlreadyRecorded   = errors.New("sale already recorded for order")
)
