package restapi

import (
	"net/http"
	"time"

	"makanmap.sg/internal/aggregate"
	"makanmap.sg/internal/app"
	"makanmap.sg/internal/reconcile"
	"makanmap.sg/internal/search"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	aggregator  *aggregate.Aggregator
	searcher    *search.Searcher
	reconciler  *reconcile.Service
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
// and the venue services wired to the shared database client.
func NewRestAPI(app *app.Application) *RestAPI {
	queries := app.VenueDB.Queries
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		aggregator:  aggregate.NewAggregator(queries, app.Config.Sources, app.Config.Engine, app.Logger),
		searcher:    search.NewSearcher(queries, app.Config.Engine, app.Logger),
		reconciler:  reconcile.NewService(queries, app.Config.Engine, app.Clock, app.Logger),
	}
}

// Shutdown releases background resources. Safe to call more than once.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.VenueDB.DB.PingContext(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
