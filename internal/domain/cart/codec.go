package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	domproduct "example.com/shoecart/internal/domain/product"
)

type wireItem struct {
	ID     int64       `json:"id"`
	Title  string      `json:"title"`
	Price  json.Number `json:"price"`
	Image  string      `json:"image"`
	Amount int64       `json:"amount"`
}

// Encode serializes the cart as a JSON array of items, each carrying the
// product fields plus its amount.
func Encode(c Cart) ([]byte, error) {
	items := make([]wireItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, wireItem{
			ID:     item.ID,
			Title:  item.Title,
			Price:  json.Number(item.Price.String()),
			Image:  item.Image,
			Amount: item.Amount,
		})
	}
	return json.Marshal(items)
}

// Decode parses a payload produced by Encode. Payloads that would break the
// cart invariants are rejected with ErrInvalidPayload.
func Decode(data []byte) (Cart, error) {
	var items []wireItem
	if err := json.Unmarshal(data, &items); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	c := Cart{Items: make([]Item, 0, len(items))}
	seen := make(map[int64]bool, len(items))
	for _, w := range items {
		if seen[w.ID] {
			return Cart{}, fmt.Errorf("%w: duplicate product %d", ErrInvalidPayload, w.ID)
		}
		if w.Amount < 1 {
			return Cart{}, fmt.Errorf("%w: product %d has amount %d", ErrInvalidPayload, w.ID, w.Amount)
		}
		price, err := decimal.NewFromString(w.Price.String())
		if err != nil {
			return Cart{}, fmt.Errorf("%w: product %d price: %v", ErrInvalidPayload, w.ID, err)
		}
		if price.Sign() <= 0 {
			return Cart{}, fmt.Errorf("%w: product %d has price %s", ErrInvalidPayload, w.ID, price)
		}
		seen[w.ID] = true
		c.Items = append(c.Items, Item{
			Product: domproduct.Product{
				ID:    w.ID,
				Title: w.Title,
				Price: price,
				Image: w.Image,
			},
			Amount: w.Amount,
		})
	}
	return c, nil
}
