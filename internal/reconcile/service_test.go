package reconcile

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makanmap.sg/internal/aggregate"
	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/clock"
	"makanmap.sg/internal/logging"
	"makanmap.sg/venuedb"
)

func newTestService(t *testing.T) (*Service, *venuedb.Client) {
	t.Helper()
	client, err := venuedb.NewClient(venuedb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	fixed := &clock.FakeClock{FixedTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(client.Queries, appconf.DefaultEngine(), fixed,
		logging.NewStructuredLogger(io.Discard, slog.LevelError))
	return svc, client
}

func seedStationPair(t *testing.T, client *venuedb.Client, stationID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, client.Queries.UpsertStation(ctx, venuedb.UpsertStationParams{ID: stationID, Name: stationID}))
	require.NoError(t, client.Queries.UpsertMall(ctx, venuedb.UpsertMallParams{
		ID:        stationID + "-mall",
		Name:      "Mall " + stationID,
		StationID: sql.NullString{String: stationID, Valid: true},
	}))
}

func addListing(t *testing.T, client *venuedb.Client, stationID, id, name string) {
	t.Helper()
	require.NoError(t, client.Queries.CreateListing(context.Background(), venuedb.CreateListingParams{
		ID:        id,
		Name:      name,
		StationID: sql.NullString{String: stationID, Valid: true},
	}))
}

func addOutlet(t *testing.T, client *venuedb.Client, stationID, id, name string) {
	t.Helper()
	ctx := context.Background()
	brandID := id + "-brand"
	require.NoError(t, client.Queries.UpsertBrand(ctx, venuedb.UpsertBrandParams{ID: brandID, Name: name}))
	require.NoError(t, client.Queries.CreateOutlet(ctx, venuedb.CreateOutletParams{
		ID:      id,
		BrandID: brandID,
		MallID:  stationID + "-mall",
		Name:    name,
	}))
}

func TestReconcileStation_RetiresExactDuplicates(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	addListing(t, client, "NS22", "l1", "Tim Ho Wan")
	addOutlet(t, client, "NS22", "o1", "Tim Ho Wan (ION Orchard)")
	addOutlet(t, client, "NS22", "o2", "Unrelated Sushi Bar")

	report, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Retired)
	assert.Equal(t, 0, report.Flagged)

	retired, err := client.Queries.GetOutlet(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), retired.Active)

	kept, err := client.Queries.GetOutlet(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), kept.Active)

	// The curated listing is untouched.
	listing, err := client.Queries.GetListing(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), listing.Active)
}

func TestReconcileStation_WritesAuditRecords(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	addListing(t, client, "NS22", "l1", "Tim Ho Wan")
	addOutlet(t, client, "NS22", "o1", "Tim Ho Wan (ION Orchard)")

	_, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)

	actions, err := svc.ActionsForStation(ctx, "NS22")
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.NotEmpty(t, action.ID)
	assert.Equal(t, "l1", action.ListingID)
	assert.Equal(t, "o1", action.OutletID)
	assert.Equal(t, "Tim Ho Wan", action.ListingName)
	assert.Equal(t, "Tim Ho Wan (ION Orchard)", action.OutletName)
	assert.Equal(t, "exact", action.Tier)
	assert.True(t, action.AutoRetired)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli(), action.CreatedAt)
}

func TestReconcileStation_ContainmentFlagsWithoutRetiring(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	// Cores "tai wah pork noodle" and "tai wah pork noodles" differ, and one
	// contains the other: review-only.
	addListing(t, client, "NS22", "l1", "Tai Wah Pork Noodle")
	addOutlet(t, client, "NS22", "o1", "Tai Wah Pork Noodles")

	report, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Retired)
	assert.Equal(t, 1, report.Flagged)

	outlet, err := client.Queries.GetOutlet(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), outlet.Active)

	actions, err := svc.ActionsForStation(ctx, "NS22")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "contains", actions[0].Tier)
	assert.False(t, actions[0].AutoRetired)
}

func TestReconcileStation_Idempotent(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	addListing(t, client, "NS22", "l1", "Tim Ho Wan")
	addOutlet(t, client, "NS22", "o1", "Tim Ho Wan (ION Orchard)")

	first, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Retired)

	// The retired outlet is inactive and no longer considered.
	second, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Retired)
	assert.Equal(t, 0, second.Matches)

	actions, err := svc.ActionsForStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Len(t, actions, 1)
}

func TestReconcileStation_OutletRetiredAtMostOnce(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	// Two listings both matching the same outlet: one retirement, one action.
	addListing(t, client, "NS22", "l1", "Tim Ho Wan")
	addListing(t, client, "NS22", "l2", "Tim Ho Wan Express")
	addOutlet(t, client, "NS22", "o1", "Tim Ho Wan")

	report, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Retired)

	actions, err := svc.ActionsForStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Len(t, actions, 1)
}

func TestReconcileStation_PassInFlight(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")

	require.True(t, svc.acquire("NS22"))
	defer svc.release("NS22")

	_, err := svc.ReconcileStation(context.Background(), "NS22")
	assert.ErrorIs(t, err, ErrPassInFlight)

	// A different station is unaffected.
	seedStationPair(t, client, "EW14")
	_, err = svc.ReconcileStation(context.Background(), "EW14")
	assert.NoError(t, err)
}

// One curated venue and one directory outlet describing the same shop: the
// outlet is retired and the station page holds exactly one venue afterwards.
func TestReconcileThenAggregate(t *testing.T) {
	svc, client := newTestService(t)
	seedStationPair(t, client, "NS22")
	ctx := context.Background()

	require.NoError(t, client.Queries.UpsertSource(ctx, venuedb.UpsertSourceParams{
		ID: "eatbook", Name: "Eatbook", Weight: 20, Category: "guide",
	}))
	require.NoError(t, client.Queries.CreateListing(ctx, venuedb.CreateListingParams{
		ID:        "l1",
		Name:      "Kopi House",
		StationID: sql.NullString{String: "NS22", Valid: true},
		DistanceM: sql.NullFloat64{Float64: 50, Valid: true},
	}))
	require.NoError(t, client.Queries.AttachListingSource(ctx, venuedb.AttachListingSourceParams{
		ListingID: "l1", SourceID: "eatbook",
	}))
	addOutlet(t, client, "NS22", "o1", "Kopi House (S Mall)")

	report, err := svc.ReconcileStation(ctx, "NS22")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Retired)

	agg := aggregate.NewAggregator(client.Queries, appconf.DefaultSourcePolicy(), appconf.DefaultEngine(),
		logging.NewStructuredLogger(io.Discard, slog.LevelError))
	page, err := agg.ForStation(ctx, "NS22")
	require.NoError(t, err)

	total := len(page.Recommended) + len(page.Popular) + len(page.ExclusiveLowTrust) + len(page.Other)
	require.Equal(t, 1, total)
	require.Len(t, page.Recommended, 1)
	assert.Equal(t, "l1", page.Recommended[0].ID)
	assert.Equal(t, int64(20), page.Recommended[0].TrustScore)
}

func TestReconcileAll(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	seedStationPair(t, client, "EW14")
	seedStationPair(t, client, "NS22")

	addListing(t, client, "NS22", "l1", "Tim Ho Wan")
	addOutlet(t, client, "NS22", "o1", "Tim Ho Wan (ION Orchard)")
	addListing(t, client, "EW14", "l2", "Ya Kun Kaya Toast")
	addOutlet(t, client, "EW14", "o2", "Ya Kun Kaya Toast")

	batch, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Retired)
	assert.Equal(t, 0, batch.Flagged)
	require.Len(t, batch.Stations, 2)
	assert.Equal(t, "EW14", batch.Stations[0].StationID)
	assert.Equal(t, "NS22", batch.Stations[1].StationID)
}
