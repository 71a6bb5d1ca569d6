package restapi

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestLoggingMiddleware logs one line per request with the request id
// assigned by RequestIDMiddleware.
func (api *RestAPI) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		requestID, _ := r.Context().Value(RequestIDKey).(string)
		api.Logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)))
	})
}
