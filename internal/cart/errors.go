package cart

import "errors"

var (
	// ErrNotFound means the product is not in the cart.
	ErrNotFound = errors.New("product not found in cart")

	// ErrOutOfStock means the requested amount is not positive or exceeds the available stock.
	ErrOutOfStock = errors.New("requested amount is out of stock")
)
