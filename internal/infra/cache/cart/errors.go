package cart

import "errors"

var (
	ErrReadCart  = errors.New("cart.store: failed to read cart")
	ErrWriteCart = errors.New("cart.store: failed to write cart")
)
