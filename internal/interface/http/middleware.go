package http

import (
	"net/http"

	"example.com/shoecart/internal/notify"
)

// notificationBuffer attaches a notify.Buffer to the request so messages
// raised by the cart service can be returned in the response.
func notificationBuffer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := notify.WithBuffer(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestMessages(r *http.Request) []string {
	if buf := notify.BufferFrom(r.Context()); buf != nil {
		return buf.Messages()
	}
	return nil
}
