// Package notify carries user-facing failure messages out of the cart
// engine. Delivery is fire-and-forget: sinks never report back.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Sink interface {
	Error(ctx context.Context, message string)
}

type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Error(ctx context.Context, message string) {
	s.log.WarnContext(ctx, "cart notification", slog.String("message", message))
}

// Buffer collects the messages raised while serving a single request.
type Buffer struct {
	mu       sync.Mutex
	messages []string
}

func (b *Buffer) Add(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
}

func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	copy(out, b.messages)
	return out
}

type bufferKey struct{}

func WithBuffer(ctx context.Context) (context.Context, *Buffer) {
	buf := &Buffer{}
	return context.WithValue(ctx, bufferKey{}, buf), buf
}

func BufferFrom(ctx context.Context) *Buffer {
	buf, _ := ctx.Value(bufferKey{}).(*Buffer)
	return buf
}

// RequestSink hands each message to the Buffer attached to ctx, if any,
// and always forwards it to next.
type RequestSink struct {
	next Sink
}

func NewRequestSink(next Sink) *RequestSink {
	return &RequestSink{next: next}
}

func (s *RequestSink) Error(ctx context.Context, message string) {
	if buf := BufferFrom(ctx); buf != nil {
		buf.Add(message)
	}
	if s.next != nil {
		s.next.Error(ctx, message)
	}
}
