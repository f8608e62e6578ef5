package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	domcart "example.com/shoecart/internal/domain/cart"
)

// CartStore keeps the cart snapshot as one row of cart_snapshots.
type CartStore struct {
	db  *sql.DB
	key string
	log *slog.Logger
}

func NewCartStore(db *sql.DB, key string, log *slog.Logger) *CartStore {
	return &CartStore{db: db, key: key, log: log}
}

func (s *CartStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS cart_snapshots (
            storage_key VARCHAR(191) NOT NULL PRIMARY KEY,
            payload     JSON NOT NULL,
            updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
        )
    `)
	return err
}

func (s *CartStore) Load(ctx context.Context) (domcart.Cart, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT payload FROM cart_snapshots WHERE storage_key = ?
    `, s.key)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcart.Cart{}, nil
		}
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
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO cart_snapshots (storage_key, payload)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE payload = VALUES(payload)
    `, s.key, payload)
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (s *CartStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
