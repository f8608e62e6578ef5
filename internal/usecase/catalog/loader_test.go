package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/shoecart/internal/domain/product"
	"example.com/shoecart/internal/logger"
)

type mockProductRepository struct {
	products []domproduct.Product
	stock    []domproduct.Stock
	listErr  error
	stockErr error
	release  chan struct{}
}

func (m *mockProductRepository) List(ctx context.Context) ([]domproduct.Product, error) {
	if m.release != nil {
		<-m.release
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockProductRepository) ListStock(ctx context.Context) ([]domproduct.Stock, error) {
	if m.stockErr != nil {
		return nil, m.stockErr
	}
	return m.stock, nil
}

func sneakers() []domproduct.Product {
	return []domproduct.Product{
		{ID: 2, Title: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.9"), Image: "https://cdn.example.com/2.jpg"},
		{ID: 1, Title: "Tênis de Caminhada Leve", Price: decimal.RequireFromString("179.9"), Image: "https://cdn.example.com/1.jpg"},
	}
}

func TestLoad_PopulatesBothTables(t *testing.T) {
	repo := &mockProductRepository{
		products: sneakers(),
		stock:    []domproduct.Stock{{ProductID: 1, Amount: 3}, {ProductID: 2, Amount: 5}},
	}
	l := NewLoader(repo, logger.Discard())

	l.Load(context.Background())

	require.True(t, l.IsReady())
	p, ok := l.Product(1)
	require.True(t, ok)
	require.Equal(t, "Tênis de Caminhada Leve", p.Title)
	st, ok := l.Stock(2)
	require.True(t, ok)
	require.Equal(t, int64(5), st.Amount)

	ids := []int64{}
	for _, p := range l.Products() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []int64{2, 1}, ids, "catalog order is preserved")
}

func TestLoad_ProductFailureLeavesProductsEmpty(t *testing.T) {
	repo := &mockProductRepository{
		listErr: errors.New("connection refused"),
		stock:   []domproduct.Stock{{ProductID: 1, Amount: 3}},
	}
	l := NewLoader(repo, logger.Discard())

	l.Load(context.Background())

	require.True(t, l.IsReady())
	_, ok := l.Product(1)
	require.False(t, ok)
	_, ok = l.Stock(1)
	require.True(t, ok)
}

func TestLoad_StockFailureLeavesStockEmpty(t *testing.T) {
	repo := &mockProductRepository{
		products: sneakers(),
		stockErr: errors.New("timeout"),
	}
	l := NewLoader(repo, logger.Discard())

	l.Load(context.Background())

	_, ok := l.Product(1)
	require.True(t, ok)
	_, ok = l.Stock(1)
	require.False(t, ok)
}

func TestStart_LookupsAreEmptyUntilLoaded(t *testing.T) {
	repo := &mockProductRepository{
		products: sneakers(),
		release:  make(chan struct{}),
	}
	l := NewLoader(repo, logger.Discard())

	l.Start(context.Background())

	require.False(t, l.IsReady())
	_, ok := l.Product(1)
	require.False(t, ok)
	require.Empty(t, l.Products())

	close(repo.release)
	select {
	case <-l.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("catalog never became ready")
	}

	_, ok = l.Product(1)
	require.True(t, ok)
}

func TestNewSnapshot_DuplicateProductKeepsFirstPosition(t *testing.T) {
	s := NewSnapshot([]domproduct.Product{
		{ID: 1, Title: "old"},
		{ID: 2, Title: "other"},
		{ID: 1, Title: "new"},
	}, nil)

	products := s.Products()
	require.Len(t, products, 2)
	require.Equal(t, "new", products[0].Title)
}
