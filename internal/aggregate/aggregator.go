// Package aggregate assembles the station food page: every active venue
// linked to a station, bucketed by source trust and ordered by walking
// proximity.
package aggregate

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"sort"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/models"
	"makanmap.sg/internal/trust"
	"makanmap.sg/internal/utils"
	"makanmap.sg/venuedb"
)

// ErrStationNotFound is returned when the station id is unknown.
var ErrStationNotFound = errors.New("station not found")

// Aggregator builds station food pages.
type Aggregator struct {
	queries    *venuedb.Queries
	classifier *trust.Classifier
	engine     appconf.Engine
	logger     *slog.Logger
}

func NewAggregator(queries *venuedb.Queries, policy appconf.SourcePolicy, engine appconf.Engine, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		queries:    queries,
		classifier: trust.NewClassifier(policy),
		engine:     engine,
		logger:     logger,
	}
}

// rankedVenue pairs a bucketed summary with its ordering key.
type rankedVenue struct {
	summary models.VenueSummary
	bucket  trust.Bucket
	rank    float64
}

// effectiveDistance is the proximity ordering key: the stored walking
// distance when present, otherwise walking minutes converted back to meters,
// otherwise unknown (sorted last).
func (a *Aggregator) effectiveDistance(v models.Venue) float64 {
	if d, ok := v.DistanceMeters(); ok {
		return d
	}
	if m, ok := v.WalkMinutes(); ok {
		return float64(m) * a.engine.WalkingSpeedMetersPerMinute
	}
	return math.Inf(1)
}

// ForStation returns the four-bucket food page for one station. Venues with
// unknown distance are kept and sorted to the end of their bucket, never
// dropped.
func (a *Aggregator) ForStation(ctx context.Context, stationID string) (models.StationFood, error) {
	station, err := a.queries.GetStation(ctx, stationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StationFood{}, ErrStationNotFound
		}
		return models.StationFood{}, err
	}

	listings, err := a.queries.ListActiveListingsForStation(ctx, stationID)
	if err != nil {
		return models.StationFood{}, err
	}
	outlets, err := a.queries.ListActiveOutletsForStation(ctx, stationID)
	if err != nil {
		return models.StationFood{}, err
	}

	ranked := make([]rankedVenue, 0, len(listings)+len(outlets))

	for _, row := range listings {
		venue := models.ListingVenue{Row: row}
		sources, err := a.queries.GetSourcesForListing(ctx, row.ID)
		if err != nil {
			return models.StationFood{}, err
		}
		sourceIDs := make([]string, 0, len(sources))
		for _, s := range sources {
			sourceIDs = append(sourceIDs, s.ID)
		}

		ranked = append(ranked, rankedVenue{
			summary: models.VenueSummary{
				ID:             venue.VenueID(),
				Name:           venue.VenueName(),
				Kind:           venue.Kind(),
				DistanceMeters: utils.NullFloatPtr(row.DistanceM),
				WalkMinutes:    utils.NullIntPtr(row.WalkTimeMin),
				Tags:           venue.Tags(),
				TrustScore:     trust.Score(sources),
			},
			bucket: a.classifier.Classify(sourceIDs, false),
			rank:   a.effectiveDistance(venue),
		})
	}

	for _, row := range outlets {
		venue := models.OutletVenue{Row: row, StationID: stationID}

		ranked = append(ranked, rankedVenue{
			summary: models.VenueSummary{
				ID:             venue.VenueID(),
				Name:           venue.VenueName(),
				Kind:           venue.Kind(),
				DistanceMeters: utils.NullFloatPtr(row.DistanceM),
				WalkMinutes:    utils.NullIntPtr(row.WalkTimeMin),
				Tags:           venue.Tags(),
				Mall:           row.MallName,
				Brand:          row.BrandName,
			},
			bucket: a.classifier.Classify(nil, true),
			rank:   a.effectiveDistance(venue),
		})
	}

	// Stable: equal distances keep query order, which is deterministic by id.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank < ranked[j].rank
	})

	page := models.StationFood{
		StationID:         station.ID,
		StationName:       station.Name,
		Recommended:       []models.VenueSummary{},
		Popular:           []models.VenueSummary{},
		ExclusiveLowTrust: []models.VenueSummary{},
		Other:             []models.VenueSummary{},
	}

	for _, rv := range ranked {
		switch rv.bucket {
		case trust.BucketRecommended:
			page.Recommended = append(page.Recommended, rv.summary)
		case trust.BucketPopular:
			page.Popular = append(page.Popular, rv.summary)
		case trust.BucketExclusiveLowTrust:
			page.ExclusiveLowTrust = append(page.ExclusiveLowTrust, rv.summary)
		default:
			page.Other = append(page.Other, rv.summary)
		}
	}

	return page, nil
}
