package restapi

import (
	"net/http"

	"makanmap.sg/internal/metrics"
)

// rateLimitAndValidateAPIKey combines API key validation, rate limiting,
// compression, and per-route metrics.
func rateLimitAndValidateAPIKey(api *RestAPI, route string, finalHandler http.HandlerFunc) http.Handler {
	// Apply compression first (innermost).
	compressedHandler := CompressionMiddleware(finalHandler)

	// Then rate limiting - use the shared rate limiter instance.
	var rateLimitedHandler http.Handler
	if api.rateLimiter != nil {
		rateLimitedHandler = api.rateLimiter.Handler()(compressedHandler)
	} else {
		// Fallback for tests that don't use the NewRestAPI constructor.
		rateLimitedHandler = compressedHandler
	}

	guarded := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		rateLimitedHandler.ServeHTTP(w, r)
	})

	return MetricsMiddleware(route, guarded)
}

// SetRoutes registers all API endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Operational endpoints - no authentication required.
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("GET /api/where/food-for-station/{id}",
		CacheControlMiddleware(60, rateLimitAndValidateAPIKey(api, "food-for-station", api.foodForStationHandler)))
	mux.Handle("GET /api/where/search/food.json",
		rateLimitAndValidateAPIKey(api, "search-food", api.searchFoodHandler))
	mux.Handle("GET /api/where/reconcile-actions/{id}",
		rateLimitAndValidateAPIKey(api, "reconcile-actions", api.reconcileActionsHandler))
	mux.Handle("POST /api/where/reconcile/{id}",
		rateLimitAndValidateAPIKey(api, "reconcile-station", api.reconcileStationHandler))
	mux.Handle("POST /api/where/reconcile",
		rateLimitAndValidateAPIKey(api, "reconcile-all", api.reconcileAllHandler))
}

// SetupAPIRoutes creates and configures the API router with the global
// middleware chain applied.
func (api *RestAPI) SetupAPIRoutes() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	// Global chain: security headers -> request id -> request log -> routes.
	return api.WithSecurityHeaders(RequestIDMiddleware(api.RequestLoggingMiddleware(mux)))
}
