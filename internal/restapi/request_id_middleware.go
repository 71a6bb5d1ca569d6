package restapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey carries the request id through the handler chain so log
// lines from one request can be correlated.
const RequestIDKey contextKey = "request_id"

// RequestIDMiddleware tags every request with an id. A caller-supplied
// X-Request-ID header is echoed back unchanged; otherwise a fresh uuid is
// generated. The id rides on the request context for the logging
// middleware.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
