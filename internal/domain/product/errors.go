package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrStockNotFound   = errors.New("stock not found")
	ErrOutOfStock      = errors.New("product out of stock")
)
