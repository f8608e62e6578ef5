package product

import "github.com/shopspring/decimal"

type Product struct {
	ID    int64
	Title string
	Price decimal.Decimal
	Image string
}

// Stock is the maximum amount of a product currently available to sell.
type Stock struct {
	ProductID int64
	Amount    int64
}
