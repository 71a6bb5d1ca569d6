// Package metrics exposes the prometheus instruments for the HTTP surface
// and the background engines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts API requests by route and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "makanmap_http_requests_total",
		Help: "API requests served, by route and status code.",
	}, []string{"route", "status"})

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "makanmap_http_request_duration_seconds",
		Help:    "API request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// RoutingFallbacksTotal counts walking-distance refreshes that fell back
	// to the straight-line estimate because the routing provider failed.
	RoutingFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "makanmap_routing_fallbacks_total",
		Help: "Distance refreshes that used the haversine estimate fallback.",
	})

	// ReconcileRetirementsTotal counts outlets auto-retired by
	// reconciliation passes.
	ReconcileRetirementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "makanmap_reconcile_retirements_total",
		Help: "Directory outlets retired as duplicates of curated listings.",
	})

	// ReconcilePassDuration observes full reconciliation pass latency.
	ReconcilePassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "makanmap_reconcile_pass_duration_seconds",
		Help:    "Wall time of a station reconciliation pass.",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
