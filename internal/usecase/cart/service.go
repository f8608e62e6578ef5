package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domcart "example.com/shoecart/internal/domain/cart"
	"example.com/shoecart/internal/notify"
)

// Service is the single entry point to the session cart. All consumers
// share one Service, and therefore one cart. Operations run one at a time in
// arrival order and never fail: failures go to the sink and the caller gets
// the current cart back.
type Service struct {
	mu     sync.Mutex
	engine *Engine
	sink   notify.Sink
	log    *slog.Logger
}

func NewService(engine *Engine, sink notify.Sink, log *slog.Logger) *Service {
	return &Service{
		engine: engine,
		sink:   sink,
		log:    log,
	}
}

func (s *Service) Cart(ctx context.Context) domcart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Cart()
}

func (s *Service) AddProduct(ctx context.Context, productID int64) domcart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.engine.Add(ctx, productID)
	s.report(ctx, OpAdd, productID, err)
	return c
}

func (s *Service) RemoveProduct(ctx context.Context, productID int64) domcart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.engine.Remove(ctx, productID)
	s.report(ctx, OpRemove, productID, err)
	return c
}

func (s *Service) UpdateProductAmount(ctx context.Context, productID, direction int64) domcart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.engine.UpdateAmount(ctx, productID, direction)
	s.report(ctx, OpUpdate, productID, err)
	return c
}

// report sends exactly one message per failed operation. A refused
// decrement at amount 1 is not reported.
func (s *Service) report(ctx context.Context, op Operation, productID int64, err error) {
	if err == nil || errors.Is(err, domcart.ErrAmountFloor) {
		return
	}

	attrs := []any{
		slog.String("op", string(op)),
		slog.Int64("product_id", productID),
		slog.Any("err", err),
	}
	if IsRejection(err) {
		s.log.InfoContext(ctx, "cart operation rejected", attrs...)
	} else {
		s.log.ErrorContext(ctx, "cart operation failed", attrs...)
	}

	s.sink.Error(ctx, Message(op, err))
}
