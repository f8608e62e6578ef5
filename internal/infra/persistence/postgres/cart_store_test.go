package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcart "example.com/shoecart/internal/domain/cart"
	domproduct "example.com/shoecart/internal/domain/product"
	"example.com/shoecart/internal/logger"
)

func TestOpen_InvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://%zz")
	require.Error(t, err)
}

// Runs against a real server when PG_TEST_DSN is set.
func TestCartStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	s := NewCartStore(pool, "test:"+t.Name(), logger.Discard())
	require.NoError(t, s.EnsureSchema(ctx))
	defer pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE storage_key = $1`, s.key)

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())

	want := domcart.Cart{Items: []domcart.Item{{
		Product: domproduct.Product{ID: 6, Title: "Tênis Infantil", Price: decimal.RequireFromString("79.9"), Image: "6.jpg"},
		Amount:  4,
	}}}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	require.Equal(t, int64(4), got.Items[0].Amount)
	require.True(t, want.Items[0].Price.Equal(got.Items[0].Price))
}
