package cart

import (
	"errors"

	domcart "example.com/shoecart/internal/domain/cart"
	domproduct "example.com/shoecart/internal/domain/product"
)

type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
	OpUpdate Operation = "update_amount"
)

const (
	MsgProductNotFound = "The product you are trying to add does not exist"
	MsgOutOfStock      = "Requested quantity is out of stock"
	MsgStockNotFound   = "Stock information for this product is unavailable"
	MsgItemNotInCart   = "This product is not in your cart"
	MsgAddFailed       = "Could not add the product"
	MsgRemoveFailed    = "Could not remove the product"
	MsgUpdateFailed    = "Could not change the product amount"
)

// Message turns an engine failure into the text shown to the shopper.
func Message(op Operation, err error) string {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound):
		return MsgProductNotFound
	case errors.Is(err, domproduct.ErrOutOfStock):
		return MsgOutOfStock
	case errors.Is(err, domproduct.ErrStockNotFound):
		return MsgStockNotFound
	case errors.Is(err, domcart.ErrItemNotInCart):
		return MsgItemNotInCart
	}

	switch op {
	case OpAdd:
		return MsgAddFailed
	case OpRemove:
		return MsgRemoveFailed
	default:
		return MsgUpdateFailed
	}
}
