package assign

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/geo"
	"makanmap.sg/internal/metrics"
	"makanmap.sg/internal/routing"
	"makanmap.sg/venuedb"
)

// RefreshStats summarizes a refresh run.
type RefreshStats struct {
	Examined   int
	Updated    int
	Reassigned int
	Fallbacks  int
}

// Refresher recomputes station links, walking distances, and walking times
// for every venue with coordinates. Routed distances are preferred; the
// straight-line estimate with the detour factor is the fallback.
type Refresher struct {
	queries   *venuedb.Queries
	router    *routing.Client
	estimator geo.Estimator
	engine    appconf.Engine
	logger    *slog.Logger
}

func NewRefresher(queries *venuedb.Queries, router *routing.Client, engine appconf.Engine, logger *slog.Logger) *Refresher {
	return &Refresher{
		queries:   queries,
		router:    router,
		estimator: geo.NewEstimator(engine),
		engine:    engine,
		logger:    logger,
	}
}

// measurement is a resolved walking distance to a station.
type measurement struct {
	distanceM float64
	walkMin   int64
	routed    bool
}

// measure resolves the walking distance between a venue and a station,
// falling back to the detour-factor estimate when routing is unavailable.
func (rf *Refresher) measure(ctx context.Context, lat, lng, stationLat, stationLng float64) measurement {
	if rf.router != nil && rf.router.Enabled() {
		route, err := rf.router.WalkingRoute(ctx, lat, lng, stationLat, stationLng)
		if err == nil {
			rf.logger.Debug("routed walking distance",
				slog.Float64("distance_m", route.DistanceMeters),
				slog.Int("minutes", route.Minutes),
				slog.Int("geometry_points", len(route.Geometry)))
			return measurement{distanceM: route.DistanceMeters, walkMin: int64(route.Minutes), routed: true}
		}
		if !errors.Is(err, routing.ErrUnavailable) {
			rf.logger.Warn("routing failed", slog.String("error", err.Error()))
		}
		metrics.RoutingFallbacksTotal.Inc()
	}
	walking := rf.estimator.WalkingDistance(geo.DistanceMeters(lat, lng, stationLat, stationLng))
	return measurement{
		distanceM: walking,
		walkMin:   int64(rf.estimator.WalkingMinutes(walking)),
	}
}

// target decides which station a venue should link to, applying the
// reassignment hysteresis against its current link.
func (rf *Refresher) target(resolver *Resolver, currentStation sql.NullString, currentDistance sql.NullFloat64, lat, lng float64) (stationID string, reassigned bool, err error) {
	nearestID, nearestDist, err := resolver.Nearest(lat, lng)
	if err != nil {
		return "", false, err
	}

	if !currentStation.Valid {
		return nearestID, true, nil
	}
	if nearestID == currentStation.String {
		return nearestID, false, nil
	}

	currentDist := currentDistance.Float64
	if !currentDistance.Valid {
		// No stored distance to defend the current link; recompute it if the
		// current station still has coordinates, otherwise move.
		sLat, sLng, ok := resolver.Coordinates(currentStation.String)
		if !ok {
			return nearestID, true, nil
		}
		currentDist = rf.estimator.WalkingDistance(geo.DistanceMeters(lat, lng, sLat, sLng))
	}

	if resolver.ShouldReassign(currentDist, nearestDist) {
		return nearestID, true, nil
	}
	return currentStation.String, false, nil
}

// RefreshListings recomputes the station link and distances of every active
// listing with coordinates. A failure on one listing is logged and skipped;
// the pass only aborts when no station has coordinates at all.
func (rf *Refresher) RefreshListings(ctx context.Context) (RefreshStats, error) {
	var stats RefreshStats

	stations, err := rf.queries.ListStationsWithCoordinates(ctx)
	if err != nil {
		return stats, err
	}
	resolver := NewResolver(stations, rf.engine)

	listings, err := rf.queries.ListActiveListingsWithCoordinates(ctx)
	if err != nil {
		return stats, err
	}

	for _, listing := range listings {
		stats.Examined++

		stationID, reassigned, err := rf.target(resolver, listing.StationID, listing.DistanceM, listing.Lat.Float64, listing.Lng.Float64)
		if err != nil {
			rf.logger.Warn("skipping listing refresh", slog.String("listing_id", listing.ID), slog.String("error", err.Error()))
			return stats, err
		}

		sLat, sLng, ok := resolver.Coordinates(stationID)
		if !ok {
			continue
		}
		m := rf.measure(ctx, listing.Lat.Float64, listing.Lng.Float64, sLat, sLng)
		if !m.routed {
			stats.Fallbacks++
		}

		err = rf.queries.UpdateListingStationLink(ctx, venuedb.UpdateListingStationLinkParams{
			StationID:   sql.NullString{String: stationID, Valid: true},
			DistanceM:   sql.NullFloat64{Float64: m.distanceM, Valid: true},
			WalkTimeMin: sql.NullInt64{Int64: m.walkMin, Valid: true},
			ID:          listing.ID,
		})
		if err != nil {
			rf.logger.Warn("listing refresh failed", slog.String("listing_id", listing.ID), slog.String("error", err.Error()))
			continue
		}

		stats.Updated++
		if reassigned {
			stats.Reassigned++
			rf.logger.Info("listing reassigned",
				slog.String("listing_id", listing.ID),
				slog.String("station_id", stationID))
		}
	}

	return stats, nil
}

// RefreshMalls does the same for malls, whose station links and distances
// stand in for their directory outlets.
func (rf *Refresher) RefreshMalls(ctx context.Context) (RefreshStats, error) {
	var stats RefreshStats

	stations, err := rf.queries.ListStationsWithCoordinates(ctx)
	if err != nil {
		return stats, err
	}
	resolver := NewResolver(stations, rf.engine)

	malls, err := rf.queries.ListMallsWithCoordinates(ctx)
	if err != nil {
		return stats, err
	}

	for _, mall := range malls {
		stats.Examined++

		stationID, reassigned, err := rf.target(resolver, mall.StationID, mall.DistanceM, mall.Lat.Float64, mall.Lng.Float64)
		if err != nil {
			rf.logger.Warn("skipping mall refresh", slog.String("mall_id", mall.ID), slog.String("error", err.Error()))
			return stats, err
		}

		sLat, sLng, ok := resolver.Coordinates(stationID)
		if !ok {
			continue
		}
		m := rf.measure(ctx, mall.Lat.Float64, mall.Lng.Float64, sLat, sLng)
		if !m.routed {
			stats.Fallbacks++
		}

		err = rf.queries.UpdateMallStationLink(ctx, venuedb.UpdateMallStationLinkParams{
			StationID:   sql.NullString{String: stationID, Valid: true},
			DistanceM:   sql.NullFloat64{Float64: m.distanceM, Valid: true},
			WalkTimeMin: sql.NullInt64{Int64: m.walkMin, Valid: true},
			ID:          mall.ID,
		})
		if err != nil {
			rf.logger.Warn("mall refresh failed", slog.String("mall_id", mall.ID), slog.String("error", err.Error()))
			continue
		}

		stats.Updated++
		if reassigned {
			stats.Reassigned++
			rf.logger.Info("mall reassigned",
				slog.String("mall_id", mall.ID),
				slog.String("station_id", stationID))
		}
	}

	return stats, nil
}
