package restapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"makanmap.sg/internal/app"
	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/clock"
	"makanmap.sg/internal/logging"
	"makanmap.sg/internal/models"
	"makanmap.sg/venuedb"
)

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	client, err := venuedb.NewClient(venuedb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 1000,
			Engine:    appconf.DefaultEngine(),
			Sources:   appconf.DefaultSourcePolicy(),
		},
		Logger:  logging.NewStructuredLogger(io.Discard, slog.LevelError),
		VenueDB: client,
		Clock:   &clock.FakeClock{FixedTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// seedVenueData loads a small fixture: two stations, sources, curated
// listings and a mall with one chain outlet.
func seedVenueData(t *testing.T, api *RestAPI) {
	t.Helper()
	ctx := t.Context()
	q := api.VenueDB.Queries

	stations := []venuedb.UpsertStationParams{
		{ID: "NS22", Name: "Orchard", Lat: sql.NullFloat64{Float64: 1.3040, Valid: true}, Lng: sql.NullFloat64{Float64: 103.8318, Valid: true}},
		{ID: "EW14", Name: "Raffles Place", Lat: sql.NullFloat64{Float64: 1.2838, Valid: true}, Lng: sql.NullFloat64{Float64: 103.8514, Valid: true}},
	}
	for _, s := range stations {
		require.NoError(t, q.UpsertStation(ctx, s))
	}

	sources := []venuedb.UpsertSourceParams{
		{ID: "michelin-star", Name: "Michelin Star", Weight: 10, Category: "guide"},
		{ID: "burpple", Name: "Burpple", Weight: 3, Category: "crowd"},
	}
	for _, s := range sources {
		require.NoError(t, q.UpsertSource(ctx, s))
	}

	require.NoError(t, q.CreateListing(ctx, venuedb.CreateListingParams{
		ID:        "l1",
		Name:      "Ichiran Ramen",
		StationID: sql.NullString{String: "NS22", Valid: true},
		DistanceM: sql.NullFloat64{Float64: 220, Valid: true},
		Tags:      "japanese,noodles",
	}))
	require.NoError(t, q.AttachListingSource(ctx, venuedb.AttachListingSourceParams{ListingID: "l1", SourceID: "michelin-star"}))

	require.NoError(t, q.CreateListing(ctx, venuedb.CreateListingParams{
		ID:        "l2",
		Name:      "Tim Ho Wan",
		StationID: sql.NullString{String: "NS22", Valid: true},
		DistanceM: sql.NullFloat64{Float64: 180, Valid: true},
		Tags:      "dimsum",
	}))
	require.NoError(t, q.AttachListingSource(ctx, venuedb.AttachListingSourceParams{ListingID: "l2", SourceID: "burpple"}))

	require.NoError(t, q.UpsertMall(ctx, venuedb.UpsertMallParams{
		ID:        "ion",
		Name:      "ION Orchard",
		StationID: sql.NullString{String: "NS22", Valid: true},
		DistanceM: sql.NullFloat64{Float64: 150, Valid: true},
	}))
	require.NoError(t, q.UpsertBrand(ctx, venuedb.UpsertBrandParams{ID: "timhowan", Name: "Tim Ho Wan", Tags: "dimsum"}))
	require.NoError(t, q.CreateOutlet(ctx, venuedb.CreateOutletParams{
		ID: "o1", BrandID: "timhowan", MallID: "ion", Name: "Tim Ho Wan (ION Orchard)",
	}))
}

// serveAndRetrieveEndpoint runs one request through the full router and
// decodes the response envelope.
func serveAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, target string) (*http.Response, models.ResponseModel) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	api.SetupAPIRoutes().ServeHTTP(rec, req)

	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	var model models.ResponseModel
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	}
	return resp, model
}

func entryData(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	return entry
}
