package cart

import "errors"

var (
	ErrItemNotInCart  = errors.New("product not in cart")
	ErrAmountFloor    = errors.New("amount cannot go below 1")
	ErrPersist        = errors.New("failed to persist cart")
	ErrInvalidPayload = errors.New("invalid cart payload")
)
