package venuedb

// Hand-written search query implementations.
// The matching rule is case-insensitive substring containment over venue
// names and tags (outlets inherit their brand's name and tags), which maps
// to instr() rather than anything sqlc can express cleanly.

import (
	"context"
)

const countFoodMatchesByStation = `
WITH matches AS (
    SELECT l.station_id AS station_id
    FROM listings l
    WHERE l.active = 1
      AND l.station_id IS NOT NULL
      AND (instr(lower(l.name), lower(?1)) > 0 OR instr(lower(l.tags), lower(?1)) > 0)
    UNION ALL
    SELECT m.station_id AS station_id
    FROM outlets o
    JOIN brands b ON b.id = o.brand_id
    JOIN malls m  ON m.id = o.mall_id
    WHERE o.active = 1
      AND m.station_id IS NOT NULL
      AND (
           instr(lower(o.name), lower(?1)) > 0
        OR instr(lower(b.name), lower(?1)) > 0
        OR instr(lower(b.tags), lower(?1)) > 0
      )
)
SELECT
    s.id,
    s.name,
    COUNT(*) AS match_count
FROM matches
JOIN stations s ON s.id = matches.station_id
GROUP BY s.id, s.name
ORDER BY match_count DESC, s.id
`

type StationMatchCountRow struct {
	StationID   string
	StationName string
	MatchCount  int64
}

// CountFoodMatchesByStation returns, for every station with at least one
// matching venue, the number of matches. Ordered by match count descending
// with station id as the deterministic tie-break.
func (q *Queries) CountFoodMatchesByStation(ctx context.Context, query string) ([]StationMatchCountRow, error) {
	rows, err := q.db.QueryContext(ctx, countFoodMatchesByStation, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []StationMatchCountRow
	for rows.Next() {
		var i StationMatchCountRow
		if err := rows.Scan(&i.StationID, &i.StationName, &i.MatchCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMatchingListingsForStation = `
SELECT id, name, address, lat, lng, station_id, distance_m, walk_time_min, tags, active
FROM listings l
WHERE l.active = 1
  AND l.station_id = ?1
  AND (instr(lower(l.name), lower(?2)) > 0 OR instr(lower(l.tags), lower(?2)) > 0)
ORDER BY l.id
LIMIT ?3
`

// ListMatchingListingsForStation returns up to limit matching curated
// listings at one station, for drill-in after the counts view.
func (q *Queries) ListMatchingListingsForStation(ctx context.Context, stationID, query string, limit int64) ([]Listing, error) {
	rows, err := q.db.QueryContext(ctx, listMatchingListingsForStation, stationID, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []Listing
	for rows.Next() {
		var i Listing
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Address, &i.Lat, &i.Lng,
			&i.StationID, &i.DistanceM, &i.WalkTimeMin, &i.Tags, &i.Active,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMatchingOutletsForStation = `
SELECT
    o.id,
    o.name,
    o.brand_id,
    b.name  AS brand_name,
    b.tags  AS brand_tags,
    o.mall_id,
    m.name  AS mall_name,
    m.distance_m,
    m.walk_time_min
FROM outlets o
JOIN brands b ON b.id = o.brand_id
JOIN malls m  ON m.id = o.mall_id
WHERE o.active = 1
  AND m.station_id = ?1
  AND (
       instr(lower(o.name), lower(?2)) > 0
    OR instr(lower(b.name), lower(?2)) > 0
    OR instr(lower(b.tags), lower(?2)) > 0
  )
ORDER BY o.id
LIMIT ?3
`

// ListMatchingOutletsForStation returns up to limit matching directory
// outlets at one station.
func (q *Queries) ListMatchingOutletsForStation(ctx context.Context, stationID, query string, limit int64) ([]StationOutletRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchingOutletsForStation, stationID, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []StationOutletRow
	for rows.Next() {
		var i StationOutletRow
		if err := rows.Scan(
			&i.ID, &i.Name, &i.BrandID, &i.BrandName, &i.BrandTags,
			&i.MallID, &i.MallName, &i.DistanceM, &i.WalkTimeMin,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
