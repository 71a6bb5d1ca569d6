package restapi

import (
	"fmt"
	"net/http"
)

// CacheControlMiddleware sets the response caching policy. Station food
// pages change only when a refresh or reconciliation pass runs, so they are
// served with a short public TTL; a non-positive TTL marks the response as
// uncacheable.
func CacheControlMiddleware(ttlSeconds int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := "no-cache, no-store, must-revalidate"
		if ttlSeconds > 0 {
			header = fmt.Sprintf("public, max-age=%d", ttlSeconds)
		}
		w.Header().Set("Cache-Control", header)
		next.ServeHTTP(w, r)
	})
}
