package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/shoecart/internal/domain/product"
	"example.com/shoecart/internal/infra/persistence/file"
	"example.com/shoecart/internal/logger"
	"example.com/shoecart/internal/notify"
	cartuc "example.com/shoecart/internal/usecase/cart"
)

type fakeCatalog struct {
	products []domproduct.Product
	stock    map[int64]int64
	ready    bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []domproduct.Product{
			{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "https://cdn.example.com/1.jpg"},
			{ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.RequireFromString("139.9"), Image: "https://cdn.example.com/2.jpg"},
			{ID: 3, Title: "Tênis Adidas Duramo Lite 2.0", Price: decimal.RequireFromString("219.9"), Image: "https://cdn.example.com/3.jpg"},
		},
		stock: map[int64]int64{1: 3, 2: 5, 3: 1},
		ready: true,
	}
}

func (f *fakeCatalog) Product(id int64) (domproduct.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return domproduct.Product{}, false
}

func (f *fakeCatalog) Stock(id int64) (domproduct.Stock, bool) {
	amount, ok := f.stock[id]
	return domproduct.Stock{ProductID: id, Amount: amount}, ok
}

func (f *fakeCatalog) Products() []domproduct.Product {
	return f.products
}

func (f *fakeCatalog) IsReady() bool {
	return f.ready
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

type testEnv struct {
	router   http.Handler
	catalog  *fakeCatalog
	cartPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Discard()
	catalog := newFakeCatalog()
	cartPath := filepath.Join(t.TempDir(), "cart.json")
	store := file.NewCartStore(cartPath, log)

	engine := cartuc.NewEngine(context.Background(), catalog, store, log)
	svc := cartuc.NewService(engine, notify.NewRequestSink(notify.NewLogSink(log)), log)
	api := NewAPI(Dependencies{
		CartService: svc,
		Catalog:     catalog,
		Store:       store,
		Logger:      log,
	})
	return &testEnv{router: api.Router(), catalog: catalog, cartPath: cartPath}
}

type cartBody struct {
	Items []struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		Price        string `json:"price"`
		Amount       int64  `json:"amount"`
		Subtotal     string `json:"subtotal"`
		CanDecrement bool   `json:"can_decrement"`
	} `json:"items"`
	Total    string   `json:"total"`
	Messages []string `json:"messages"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) cartCall(t *testing.T, method, path string, body any) cartBody {
	t.Helper()
	rec := e.do(t, method, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out cartBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
