package cart

import (
	"github.com/shopspring/decimal"

	domproduct "example.com/shoecart/internal/domain/product"
)

type Item struct {
	domproduct.Product
	Amount int64
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Amount))
}

// Cart is an ordered list of items, at most one per product id.
// Methods never modify the receiver's backing array; mutators return a new Cart.
type Cart struct {
	Items []Item
}

func (c Cart) Len() int {
	return len(c.Items)
}

func (c Cart) Find(productID int64) (Item, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Items[i], true
	}
	return Item{}, false
}

func (c Cart) Contains(productID int64) bool {
	return c.index(productID) >= 0
}

// With returns a cart where item replaces the entry with the same product id,
// or is appended when there is none.
func (c Cart) With(item Item) Cart {
	next := c.Clone()
	if i := next.index(item.ID); i >= 0 {
		next.Items[i] = item
		return next
	}
	next.Items = append(next.Items, item)
	return next
}

func (c Cart) Without(productID int64) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != productID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

func (c Cart) Clone() Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) index(productID int64) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
