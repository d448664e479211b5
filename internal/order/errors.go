package order

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidOrderType  = errors.New("invalid order type")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
)
