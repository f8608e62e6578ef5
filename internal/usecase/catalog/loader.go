// Package catalog loads the product and stock tables once per session and
// serves them as read-only lookups.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	domproduct "example.com/shoecart/internal/domain/product"
)

// Snapshot is an immutable view of the catalog. Lookups on a zero Snapshot
// find nothing.
type Snapshot struct {
	products map[int64]domproduct.Product
	stock    map[int64]domproduct.Stock
	order    []int64
}

func NewSnapshot(products []domproduct.Product, stock []domproduct.Stock) *Snapshot {
	s := &Snapshot{
		products: make(map[int64]domproduct.Product, len(products)),
		stock:    make(map[int64]domproduct.Stock, len(stock)),
		order:    make([]int64, 0, len(products)),
	}
	for _, p := range products {
		if _, dup := s.products[p.ID]; !dup {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}
	for _, st := range stock {
		s.stock[st.ProductID] = st
	}
	return s
}

func (s *Snapshot) Product(id int64) (domproduct.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

func (s *Snapshot) Stock(id int64) (domproduct.Stock, bool) {
	st, ok := s.stock[id]
	return st, ok
}

func (s *Snapshot) Products() []domproduct.Product {
	out := make([]domproduct.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

type Loader struct {
	repo     domproduct.Repository
	log      *slog.Logger
	current  atomic.Pointer[Snapshot]
	ready    chan struct{}
	readyOne sync.Once
}

func NewLoader(repo domproduct.Repository, log *slog.Logger) *Loader {
	l := &Loader{
		repo:  repo,
		log:   log,
		ready: make(chan struct{}),
	}
	l.current.Store(NewSnapshot(nil, nil))
	return l
}

// Start loads the catalog in the background. Until it finishes every lookup
// behaves as if the catalog were empty.
func (l *Loader) Start(ctx context.Context) {
	go l.Load(ctx)
}

// Load fetches products and stock concurrently. A failed fetch is logged and
// leaves its table empty; it is not retried.
func (l *Loader) Load(ctx context.Context) {
	var (
		products []domproduct.Product
		stock    []domproduct.Stock
	)

	var g errgroup.Group
	g.Go(func() error {
		list, err := l.repo.List(ctx)
		if err != nil {
			l.log.ErrorContext(ctx, "catalog: load products failed", slog.Any("err", err))
			return nil
		}
		products = list
		return nil
	})
	g.Go(func() error {
		list, err := l.repo.ListStock(ctx)
		if err != nil {
			l.log.ErrorContext(ctx, "catalog: load stock failed", slog.Any("err", err))
			return nil
		}
		stock = list
		return nil
	})
	_ = g.Wait()

	l.current.Store(NewSnapshot(products, stock))
	l.readyOne.Do(func() { close(l.ready) })
	l.log.InfoContext(ctx, "catalog loaded",
		slog.Int("products", len(products)),
		slog.Int("stock_entries", len(stock)),
	)
}

// Ready is closed once the first load attempt has finished, whether or not
// it succeeded.
func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

func (l *Loader) IsReady() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}

func (l *Loader) Snapshot() *Snapshot {
	return l.current.Load()
}

func (l *Loader) Product(id int64) (domproduct.Product, bool) {
	return l.Snapshot().Product(id)
}

func (l *Loader) Stock(id int64) (domproduct.Stock, bool) {
	return l.Snapshot().Stock(id)
}

func (l *Loader) Products() []domproduct.Product {
	return l.Snapshot().Products()
}
