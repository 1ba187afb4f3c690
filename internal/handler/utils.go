package handler

import (
	"errors"
	"strconv"
	"strings"

	"papapizza/internal/console"
	"papapizza/internal/models"
)

// respondWithError shows a domain error to the operator and returns nil.
// Anything it does not recognise is returned for the session to deal with.
func respondWithError(c *console.Console, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrAlreadyCurrent):
		c.Notice("this is already your current order!")
	case errors.Is(err, models.ErrInvalidServiceType):
		c.Failure("invalid service type!")
	case errors.Is(err, models.ErrIndexOutOfRange):
		c.Failure("invalid order index")
	case errors.Is(err, models.ErrUnknownMenuItem):
		c.Failure("invalid menu item")
	case errors.Is(err, models.ErrInvalidQuantity):
		c.Failure("invalid quantity")
	case errors.Is(err, models.ErrOrderLocked):
		c.Failure("this order has already been paid for.")
	case errors.Is(err, models.ErrAlreadyPaid):
		c.Failure("order already paid.")
	case errors.Is(err, models.ErrNoCurrentOrder):
		c.Failure("no current order selected.")
	case errors.Is(err, models.ErrNoOrders):
		c.Failure("no orders found :(")
	case errors.Is(err, models.ErrNoSales):
		c.Failure("no sales to summarise :(")
	case errors.Is(err, models.ErrItemNotInOrder):
		c.Failure("%s", err.Error())
	default:
		return err
	}
	return nil
}

// parseIndex reads a 1-based order index typed by the operator.
func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, models.ErrIndexOutOfRange
	}
	return index, nil
}

// parseQuantity accepts whole numbers of at least one. The upper bound is
// the order service's to enforce.
func parseQuantity(s string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || quantity < 1 {
		return 0, models.ErrInvalidQuantity
	}
	return quantity, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
