// Package app holds the application container shared by the HTTP layer and
// the batch tools.
package app

import (
	"log/slog"
	"net/http"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/clock"
	"makanmap.sg/venuedb"
)

// Application bundles the configuration and shared dependencies.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	VenueDB *venuedb.Client
	Clock   clock.Clock
}

// IsInvalidAPIKey reports whether the given key is not in the configured
// key set. Blank keys are always invalid.
func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}
	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}
	return true
}

// RequestHasInvalidAPIKey checks the "key" query parameter of a request.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}
