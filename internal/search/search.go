// Package search ranks stations by how many of their food venues match a
// query. The result is a station-level ranking: pagination applies to
// stations, and each page of stations can be drilled into for the matching
// venues themselves.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/models"
	"makanmap.sg/internal/utils"
	"makanmap.sg/venuedb"
)

// ErrQueryTooShort is returned for queries below the minimum length that are
// not on the short-query allow list.
var ErrQueryTooShort = errors.New("query too short")

// Searcher runs cross-station food searches.
type Searcher struct {
	queries   *venuedb.Queries
	engine    appconf.Engine
	allowList map[string]bool
	logger    *slog.Logger
}

func NewSearcher(queries *venuedb.Queries, engine appconf.Engine, logger *slog.Logger) *Searcher {
	allowList := make(map[string]bool, len(engine.ShortQueryAllowList))
	for _, q := range engine.ShortQueryAllowList {
		allowList[strings.ToLower(q)] = true
	}
	return &Searcher{
		queries:   queries,
		engine:    engine,
		allowList: allowList,
		logger:    logger,
	}
}

// ValidateQuery normalizes a raw query and applies the length rule. An empty
// query is valid and yields an empty result; a short non-allow-listed query
// is an input error.
func (s *Searcher) ValidateQuery(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", nil
	}
	if len([]rune(query)) < s.engine.MinQueryLen && !s.allowList[strings.ToLower(query)] {
		return "", fmt.Errorf("%w: minimum length is %d", ErrQueryTooShort, s.engine.MinQueryLen)
	}
	return query, nil
}

// Search returns the stations matching a query, ordered by match count
// descending, paginated at the station level. Page numbering starts at 1;
// out-of-range values are clamped.
func (s *Searcher) Search(ctx context.Context, rawQuery string, page, pageSize int) (models.SearchResults, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = models.DefaultSearchPageSize
	}
	if pageSize > models.MaxSearchPageSize {
		pageSize = models.MaxSearchPageSize
	}

	results := models.SearchResults{
		ResultsByStation: []models.StationSearchResult{},
		Page:             page,
		PageSize:         pageSize,
	}

	query, err := s.ValidateQuery(rawQuery)
	if err != nil {
		return models.SearchResults{}, err
	}
	if query == "" {
		return results, nil
	}

	counts, err := s.queries.CountFoodMatchesByStation(ctx, query)
	if err != nil {
		return models.SearchResults{}, err
	}

	results.TotalStations = int64(len(counts))
	for _, row := range counts {
		results.TotalMatches += row.MatchCount
	}

	start := (page - 1) * pageSize
	if start >= len(counts) {
		return results, nil
	}
	end := start + pageSize
	if end > len(counts) {
		end = len(counts)
	}

	for _, row := range counts[start:end] {
		results.ResultsByStation = append(results.ResultsByStation, models.StationSearchResult{
			StationID:   row.StationID,
			StationName: row.StationName,
			MatchCount:  row.MatchCount,
		})
	}

	return results, nil
}

// DrillIn returns up to limit matching venues at one station, for expanding
// a row of the ranked results. Listings come first, in id order, and consume
// the limit before outlets.
func (s *Searcher) DrillIn(ctx context.Context, stationID, rawQuery string, limit int64) ([]models.VenueSummary, error) {
	query, err := s.ValidateQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return []models.VenueSummary{}, nil
	}
	if limit < 1 {
		limit = models.DefaultDrillInLimit
	}

	listings, err := s.queries.ListMatchingListingsForStation(ctx, stationID, query, limit)
	if err != nil {
		return nil, err
	}

	var outlets []venuedb.StationOutletRow
	if remaining := limit - int64(len(listings)); remaining > 0 {
		outlets, err = s.queries.ListMatchingOutletsForStation(ctx, stationID, query, remaining)
		if err != nil {
			return nil, err
		}
	}

	venues := make([]models.VenueSummary, 0, len(listings)+len(outlets))
	for _, row := range listings {
		venues = append(venues, models.VenueSummary{
			ID:             row.ID,
			Name:           row.Name,
			Kind:           models.VenueKindListing,
			DistanceMeters: utils.NullFloatPtr(row.DistanceM),
			WalkMinutes:    utils.NullIntPtr(row.WalkTimeMin),
			Tags:           models.SplitTags(row.Tags),
		})
	}
	for _, row := range outlets {
		venues = append(venues, models.VenueSummary{
			ID:             row.ID,
			Name:           row.Name,
			Kind:           models.VenueKindOutlet,
			DistanceMeters: utils.NullFloatPtr(row.DistanceM),
			WalkMinutes:    utils.NullIntPtr(row.WalkTimeMin),
			Tags:           models.SplitTags(row.BrandTags),
			Mall:           row.MallName,
			Brand:          row.BrandName,
		})
	}

	return venues, nil
}
