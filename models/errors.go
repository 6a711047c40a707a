package models

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned by checkout when the user's cart has no items.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports malformed or out-of-range input. The message is
// user-visible.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// InsufficientStockError reports a quantity that exceeds a product's current
// stock, either when mutating the cart or when stock changed between
// add-to-cart and checkout.
type InsufficientStockError struct {
	ProductTitle string
	Requested    int
	Available    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductTitle, e.Requested, e.Available)
}
