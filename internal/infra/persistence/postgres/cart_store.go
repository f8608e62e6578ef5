package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domcart "example.com/shoecart/internal/domain/cart"
)

// CartStore keeps the cart snapshot as one row of cart_snapshots.
type CartStore struct {
	pool *pgxpool.Pool
	key  string
	log  *slog.Logger
}

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

func NewCartStore(pool *pgxpool.Pool, key string, log *slog.Logger) *CartStore {
	return &CartStore{pool: pool, key: key, log: log}
}

func (s *CartStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS cart_snapshots (
            storage_key TEXT PRIMARY KEY,
            payload     JSONB NOT NULL,
            updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	return err
}

func (s *CartStore) Load(ctx context.Context) (domcart.Cart, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
        SELECT payload::text FROM cart_snapshots WHERE storage_key = $1
    `, s.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domcart.Cart{}, nil
	}
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("load cart snapshot: %w", err)
	}

	c, err := domcart.Decode(payload)
	if err != nil {
		s.log.WarnContext(ctx, "cart snapshot unreadable, treating as empty",
			slog.String("key", s.key),
			slog.Any("err", err),
		)
		return domcart.Cart{}, nil
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, c domcart.Cart) error {
	payload, err := domcart.Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO cart_snapshots (storage_key, payload, updated_at)
        VALUES ($1, $2::jsonb, now())
        ON CONFLICT (storage_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
    `, s.key, string(payload))
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (s *CartStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
