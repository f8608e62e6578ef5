package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/shoecart/internal/domain/cart"
	domproduct "example.com/shoecart/internal/domain/product"
	cartuc "example.com/shoecart/internal/usecase/cart"
)

type CatalogReader interface {
	Products() []domproduct.Product
	IsReady() bool
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	cartSvc   *cartuc.Service
	catalog   CatalogReader
	store     Pinger
	log       *slog.Logger
	validator *validator.Validate
}

type Dependencies struct {
	CartService *cartuc.Service
	Catalog     CatalogReader
	// Store is pinged by /health when set.
	Store  Pinger
	Logger *slog.Logger
}

func NewAPI(deps Dependencies) *API {
	return &API{
		cartSvc:   deps.CartService,
		catalog:   deps.Catalog,
		store:     deps.Store,
		log:       deps.Logger,
		validator: validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", a.handleListProducts)

		r.Group(func(cr chi.Router) {
			cr.Use(notificationBuffer)
			cr.Get("/cart", a.handleGetCart)
			cr.Post("/cart/items", a.handleAddCartItem)
			cr.Patch("/cart/items/{id}", a.handleUpdateCartItem)
			cr.Delete("/cart/items/{id}", a.handleRemoveCartItem)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := map[string]any{
		"status":        "ok",
		"catalog_ready": a.catalog.IsReady(),
		"store":         "ok",
	}
	if a.store != nil {
		if err := a.store.Ping(r.Context()); err != nil {
			a.log.WarnContext(r.Context(), "store ping failed", slog.Any("err", err))
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
			resp["store"] = err.Error()
		}
	}
	writeJSON(w, status, resp)
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapProduct(p domproduct.Product, inCart int64) map[string]any {
	return map[string]any{
		"id":      p.ID,
		"title":   p.Title,
		"price":   p.Price.StringFixed(2),
		"image":   p.Image,
		"in_cart": inCart,
	}
}

func mapCart(c domcart.Cart, messages []string) map[string]any {
	items := make([]map[string]any, 0, c.Len())
	for _, item := range c.Items {
		items = append(items, map[string]any{
			"id":            item.ID,
			"title":         item.Title,
			"price":         item.Price.StringFixed(2),
			"image":         item.Image,
			"amount":        item.Amount,
			"subtotal":      item.Subtotal().StringFixed(2),
			"can_decrement": item.Amount > 1,
		})
	}
	if messages == nil {
		messages = []string{}
	}
	return map[string]any{
		"items":    items,
		"total":    c.Total().StringFixed(2),
		"messages": messages,
	}
}
