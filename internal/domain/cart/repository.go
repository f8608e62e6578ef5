package cart

import "context"

// Store keeps a single snapshot of the session cart.
//
// Load returns an empty cart when nothing was saved yet or when the saved
// payload cannot be decoded. Save replaces the whole snapshot and must not
// return before the write is durable.
type Store interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
}
