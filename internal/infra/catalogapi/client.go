// Package catalogapi reads the product catalog and stock levels from the
// storefront's REST API.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domproduct "example.com/shoecart/internal/domain/product"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type productResponse struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type stockResponse struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

func (c *Client) List(ctx context.Context) ([]domproduct.Product, error) {
	var body []productResponse
	if err := c.get(ctx, "/products", &body); err != nil {
		return nil, err
	}

	products := make([]domproduct.Product, 0, len(body))
	for _, p := range body {
		products = append(products, domproduct.Product{
			ID:    p.ID,
			Title: p.Title,
			Price: p.Price,
			Image: p.Image,
		})
	}
	return products, nil
}

func (c *Client) ListStock(ctx context.Context) ([]domproduct.Stock, error) {
	var body []stockResponse
	if err := c.get(ctx, "/stock", &body); err != nil {
		return nil, err
	}

	stock := make([]domproduct.Stock, 0, len(body))
	for _, s := range body {
		stock = append(stock, domproduct.Stock{ProductID: s.ID, Amount: s.Amount})
	}
	return stock, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog api: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog api: GET %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog api: decode %s: %w", path, err)
	}
	return nil
}
