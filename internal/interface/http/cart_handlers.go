package http

import (
	"net/http"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// Direction >= 1 increments, anything lower decrements.
type updateCartItemRequest struct {
	Direction *int64 `json:"direction" validate:"required"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c := a.cartSvc.Cart(r.Context())
	writeJSON(w, http.StatusOK, mapCart(c, requestMessages(r)))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c := a.cartSvc.AddProduct(r.Context(), req.ProductID)
	writeJSON(w, http.StatusOK, mapCart(c, requestMessages(r)))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c := a.cartSvc.RemoveProduct(r.Context(), id)
	writeJSON(w, http.StatusOK, mapCart(c, requestMessages(r)))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c := a.cartSvc.UpdateProductAmount(r.Context(), id, *req.Direction)
	writeJSON(w, http.StatusOK, mapCart(c, requestMessages(r)))
}
