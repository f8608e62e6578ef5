package http

import (
	"net/http"
)

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	c := a.cartSvc.Cart(r.Context())
	inCart := make(map[int64]int64, c.Len())
	for _, item := range c.Items {
		inCart[item.ID] = item.Amount
	}

	products := a.catalog.Products()
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p, inCart[p.ID]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  resp,
		"ready": a.catalog.IsReady(),
	})
}
