package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	domcart "example.com/shoecart/internal/domain/cart"
)

// CartStore keeps the cart snapshot in a single JSON file.
type CartStore struct {
	path string
	log  *slog.Logger
}

func NewCartStore(path string, log *slog.Logger) *CartStore {
	return &CartStore{path: path, log: log}
}

func (s *CartStore) Load(ctx context.Context) (domcart.Cart, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domcart.Cart{}, nil
		}
		return domcart.Cart{}, fmt.Errorf("read cart file: %w", err)
	}

	c, err := domcart.Decode(data)
	if err != nil {
		s.log.WarnContext(ctx, "cart file unreadable, treating as empty",
			slog.String("path", s.path),
			slog.Any("err", err),
		)
		return domcart.Cart{}, nil
	}
	return c, nil
}

// Save writes to a temporary file next to the target and renames it over
// the previous snapshot, so readers never see a partial write.
func (s *CartStore) Save(ctx context.Context, c domcart.Cart) error {
	data, err := domcart.Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return fmt.Errorf("create temp cart file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync cart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

func (s *CartStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
