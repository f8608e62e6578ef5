package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domcart "example.com/shoecart/internal/domain/cart"
	domproduct "example.com/shoecart/internal/domain/product"
)

// Catalog is the read-only lookup the engine validates against.
type Catalog interface {
	Product(id int64) (domproduct.Product, bool)
	Stock(id int64) (domproduct.Stock, bool)
}

// Engine owns the session cart. Every operation builds a new cart value from
// the current one and only adopts it after the store accepted it, so a
// rejected or failed operation leaves the cart untouched.
//
// Engine is not safe for concurrent use; Service serializes access to it.
type Engine struct {
	catalog Catalog
	store   domcart.Store
	log     *slog.Logger
	cart    domcart.Cart
}

// NewEngine hydrates the cart from store. A store that cannot be read yields
// an empty cart.
func NewEngine(ctx context.Context, catalog Catalog, store domcart.Store, log *slog.Logger) *Engine {
	e := &Engine{
		catalog: catalog,
		store:   store,
		log:     log,
	}

	c, err := store.Load(ctx)
	if err != nil {
		log.WarnContext(ctx, "cart: load persisted cart failed, starting empty", slog.Any("err", err))
		c = domcart.Cart{}
	}
	e.cart = c.Clone()
	log.InfoContext(ctx, "cart hydrated", slog.Int("items", e.cart.Len()))
	return e
}

func (e *Engine) Cart() domcart.Cart {
	return e.cart.Clone()
}

// Add puts one more unit of the product in the cart. The first unit of a
// product is always admitted; further units are checked against stock.
func (e *Engine) Add(ctx context.Context, productID int64) (domcart.Cart, error) {
	p, ok := e.catalog.Product(productID)
	if !ok {
		return e.Cart(), domproduct.ErrProductNotFound
	}

	item, ok := e.cart.Find(productID)
	if !ok {
		return e.commit(ctx, e.cart.With(domcart.Item{Product: p, Amount: 1}))
	}

	if err := e.checkStock(item); err != nil {
		return e.Cart(), err
	}
	item.Amount++
	return e.commit(ctx, e.cart.With(item))
}

func (e *Engine) Remove(ctx context.Context, productID int64) (domcart.Cart, error) {
	if !e.cart.Contains(productID) {
		return e.Cart(), domcart.ErrItemNotInCart
	}
	return e.commit(ctx, e.cart.Without(productID))
}

// UpdateAmount steps the amount of a cart item by one. A direction of 1 or
// more increments (stock checked), anything lower decrements. Decrementing
// an item at amount 1 is refused with ErrAmountFloor; removal is Remove's job.
func (e *Engine) UpdateAmount(ctx context.Context, productID, direction int64) (domcart.Cart, error) {
	item, ok := e.cart.Find(productID)
	if !ok {
		return e.Cart(), domcart.ErrItemNotInCart
	}

	if direction >= 1 {
		if err := e.checkStock(item); err != nil {
			return e.Cart(), err
		}
		item.Amount++
	} else {
		if item.Amount <= 1 {
			return e.Cart(), domcart.ErrAmountFloor
		}
		item.Amount--
	}
	return e.commit(ctx, e.cart.With(item))
}

func (e *Engine) checkStock(item domcart.Item) error {
	st, ok := e.catalog.Stock(item.ID)
	if !ok {
		return domproduct.ErrStockNotFound
	}
	if item.Amount >= st.Amount {
		return domproduct.ErrOutOfStock
	}
	return nil
}

// commit ignores cancellation of ctx: once an operation was accepted its
// write runs to completion, so the store never diverges from the cart.
func (e *Engine) commit(ctx context.Context, next domcart.Cart) (domcart.Cart, error) {
	if err := e.store.Save(context.WithoutCancel(ctx), next); err != nil {
		return e.Cart(), fmt.Errorf("%w: %w", domcart.ErrPersist, err)
	}
	e.cart = next
	return e.Cart(), nil
}

// IsRejection reports whether err is one of the expected business outcomes
// rather than an infrastructure fault.
func IsRejection(err error) bool {
	return errors.Is(err, domproduct.ErrProductNotFound) ||
		errors.Is(err, domproduct.ErrStockNotFound) ||
		errors.Is(err, domproduct.ErrOutOfStock) ||
		errors.Is(err, domcart.ErrItemNotInCart) ||
		errors.Is(err, domcart.ErrAmountFloor)
}
