package product

import "context"

// Repository is the read-only catalog the cart validates against.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListStock(ctx context.Context) ([]Stock, error)
}
