// Package reconcile compares the curated listings and the directory outlets
// at a station, retires directory duplicates, and writes an audit record for
// every verdict. Curated listings are authoritative and are never retired.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/clock"
	"makanmap.sg/internal/dedupe"
	"makanmap.sg/internal/metrics"
	"makanmap.sg/internal/models"
	"makanmap.sg/venuedb"
)

// ErrPassInFlight is returned when a reconciliation pass for the same
// station is already running.
var ErrPassInFlight = errors.New("reconciliation already in flight for station")

// StationReport summarizes one station's pass.
type StationReport struct {
	StationID string `json:"stationId"`
	Compared  int    `json:"compared"`
	Matches   int    `json:"matches"`
	Retired   int    `json:"retired"`
	Flagged   int    `json:"flagged"`
}

// BatchReport summarizes a full pass over every station.
type BatchReport struct {
	Stations []StationReport `json:"stations"`
	Retired  int             `json:"retired"`
	Flagged  int             `json:"flagged"`
}

// Service runs reconciliation passes. At most one pass per station runs at a
// time; concurrent requests for the same station fail fast instead of
// queuing.
type Service struct {
	queries *venuedb.Queries
	matcher *dedupe.Matcher
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(queries *venuedb.Queries, engine appconf.Engine, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		queries:  queries,
		matcher:  dedupe.NewMatcher(engine),
		clock:    clk,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

func (s *Service) acquire(stationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[stationID] {
		return false
	}
	s.inFlight[stationID] = true
	return true
}

func (s *Service) release(stationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, stationID)
}

// ReconcileStation compares every active listing against every active outlet
// at one station. Outlets matching a listing at high confidence are retired;
// containment matches are recorded for manual review. Already-retired
// outlets are not revisited, so the pass is idempotent.
func (s *Service) ReconcileStation(ctx context.Context, stationID string) (StationReport, error) {
	if !s.acquire(stationID) {
		return StationReport{}, ErrPassInFlight
	}
	defer s.release(stationID)

	timer := metrics.ReconcilePassDuration
	start := s.clock.Now()
	defer func() { timer.Observe(s.clock.Now().Sub(start).Seconds()) }()

	report := StationReport{StationID: stationID}

	listings, err := s.queries.ListActiveListingsForStation(ctx, stationID)
	if err != nil {
		return report, err
	}
	outlets, err := s.queries.ListActiveOutletsForStation(ctx, stationID)
	if err != nil {
		return report, err
	}

	retired := make(map[string]bool, len(outlets))

	for _, outlet := range outlets {
		for _, listing := range listings {
			if retired[outlet.ID] {
				break
			}
			report.Compared++

			tier := s.matcher.Match(listing.Name, outlet.Name)
			if tier == dedupe.TierNone {
				continue
			}
			report.Matches++

			action := venuedb.InsertReconcileActionParams{
				ID:          uuid.NewString(),
				StationID:   stationID,
				ListingID:   listing.ID,
				OutletID:    outlet.ID,
				ListingName: listing.Name,
				OutletName:  outlet.Name,
				Tier:        tier.String(),
				CreatedAt:   s.clock.NowUnixMilli(),
			}

			if tier.AutoRetire() {
				if err := s.queries.DeactivateOutlet(ctx, outlet.ID); err != nil {
					return report, err
				}
				retired[outlet.ID] = true
				action.AutoRetired = 1
				report.Retired++
				metrics.ReconcileRetirementsTotal.Inc()
				s.logger.Info("outlet retired as duplicate",
					slog.String("station_id", stationID),
					slog.String("outlet_id", outlet.ID),
					slog.String("listing_id", listing.ID),
					slog.String("tier", tier.String()))
			} else {
				report.Flagged++
			}

			if err := s.queries.InsertReconcileAction(ctx, action); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// ReconcileAll runs a pass over every station, in station-id order. A
// station whose pass is already in flight is skipped, not failed.
func (s *Service) ReconcileAll(ctx context.Context) (BatchReport, error) {
	var batch BatchReport

	stations, err := s.queries.ListStations(ctx)
	if err != nil {
		return batch, err
	}

	for _, station := range stations {
		report, err := s.ReconcileStation(ctx, station.ID)
		if errors.Is(err, ErrPassInFlight) {
			s.logger.Warn("skipping station with pass in flight", slog.String("station_id", station.ID))
			continue
		}
		if err != nil {
			return batch, err
		}
		batch.Stations = append(batch.Stations, report)
		batch.Retired += report.Retired
		batch.Flagged += report.Flagged
	}

	return batch, nil
}

// ActionsForStation returns the audit trail for one station, newest first.
func (s *Service) ActionsForStation(ctx context.Context, stationID string) ([]models.ReconcileActionModel, error) {
	rows, err := s.queries.ListReconcileActionsForStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	actions := make([]models.ReconcileActionModel, 0, len(rows))
	for _, row := range rows {
		actions = append(actions, models.NewReconcileActionModel(row))
	}
	return actions, nil
}
