package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	domcart "example.com/shoecart/internal/domain/cart"
)

// CartStore keeps the cart snapshot under a single Redis key.
type CartStore struct {
	client *redis.Client
	key    string
	log    *slog.Logger
}

// NewCartStore accepts either a redis:// URL or a plain host:port address.
func NewCartStore(addr, key string, log *slog.Logger) *CartStore {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     4,
		}
	}
	return NewCartStoreWithClient(redis.NewClient(opts), key, log)
}

func NewCartStoreWithClient(client *redis.Client, key string, log *slog.Logger) *CartStore {
	return &CartStore{client: client, key: key, log: log}
}

func (s *CartStore) Load(ctx context.Context) (domcart.Cart, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domcart.Cart{}, nil
	}
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	c, err := domcart.Decode(val)
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
	data, err := domcart.Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *CartStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

func (s *CartStore) Close() error {
	return s.client.Close()
}
