package venuedb

import (
	"context"
	"database/sql"
)

const upsertStation = `
INSERT INTO stations (id, name, lat, lng)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, lat = excluded.lat, lng = excluded.lng
`

type UpsertStationParams struct {
	ID   string
	Name string
	Lat  sql.NullFloat64
	Lng  sql.NullFloat64
}

func (q *Queries) UpsertStation(ctx context.Context, arg UpsertStationParams) error {
	_, err := q.db.ExecContext(ctx, upsertStation, arg.ID, arg.Name, arg.Lat, arg.Lng)
	return err
}

const getStation = `
SELECT id, name, lat, lng FROM stations WHERE id = ?
`

func (q *Queries) GetStation(ctx context.Context, id string) (Station, error) {
	row := q.db.QueryRowContext(ctx, getStation, id)
	var i Station
	err := row.Scan(&i.ID, &i.Name, &i.Lat, &i.Lng)
	return i, err
}

const listStations = `
SELECT id, name, lat, lng FROM stations ORDER BY id
`

func (q *Queries) ListStations(ctx context.Context) ([]Station, error) {
	rows, err := q.db.QueryContext(ctx, listStations)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []Station
	for rows.Next() {
		var i Station
		if err := rows.Scan(&i.ID, &i.Name, &i.Lat, &i.Lng); err != nil {
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

const listStationsWithCoordinates = `
SELECT id, name, lat, lng FROM stations WHERE lat IS NOT NULL AND lng IS NOT NULL ORDER BY id
`

func (q *Queries) ListStationsWithCoordinates(ctx context.Context) ([]Station, error) {
	rows, err := q.db.QueryContext(ctx, listStationsWithCoordinates)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []Station
	for rows.Next() {
		var i Station
		if err := rows.Scan(&i.ID, &i.Name, &i.Lat, &i.Lng); err != nil {
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

const upsertSource = `
INSERT INTO sources (id, name, weight, category)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, weight = excluded.weight, category = excluded.category
`

type UpsertSourceParams struct {
	ID       string
	Name     string
	Weight   int64
	Category string
}

func (q *Queries) UpsertSource(ctx context.Context, arg UpsertSourceParams) error {
	_, err := q.db.ExecContext(ctx, upsertSource, arg.ID, arg.Name, arg.Weight, arg.Category)
	return err
}

const getSourcesForListing = `
SELECT DISTINCT s.id, s.name, s.weight, s.category
FROM listing_sources ls
JOIN sources s ON s.id = ls.source_id
WHERE ls.listing_id = ?
ORDER BY s.id
`

func (q *Queries) GetSourcesForListing(ctx context.Context, listingID string) ([]Source, error) {
	rows, err := q.db.QueryContext(ctx, getSourcesForListing, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []Source
	for rows.Next() {
		var i Source
		if err := rows.Scan(&i.ID, &i.Name, &i.Weight, &i.Category); err != nil {
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

const upsertMall = `
INSERT INTO malls (id, name, station_id, lat, lng, distance_m, walk_time_min)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    station_id = excluded.station_id,
    lat = excluded.lat,
    lng = excluded.lng,
    distance_m = excluded.distance_m,
    walk_time_min = excluded.walk_time_min
`

type UpsertMallParams struct {
	ID          string
	Name        string
	StationID   sql.NullString
	Lat         sql.NullFloat64
	Lng         sql.NullFloat64
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
}

func (q *Queries) UpsertMall(ctx context.Context, arg UpsertMallParams) error {
	_, err := q.db.ExecContext(ctx, upsertMall,
		arg.ID, arg.Name, arg.StationID, arg.Lat, arg.Lng, arg.DistanceM, arg.WalkTimeMin)
	return err
}

const getMall = `
SELECT id, name, station_id, lat, lng, distance_m, walk_time_min FROM malls WHERE id = ?
`

func (q *Queries) GetMall(ctx context.Context, id string) (Mall, error) {
	row := q.db.QueryRowContext(ctx, getMall, id)
	var i Mall
	err := row.Scan(&i.ID, &i.Name, &i.StationID, &i.Lat, &i.Lng, &i.DistanceM, &i.WalkTimeMin)
	return i, err
}

const updateMallStationLink = `
UPDATE malls SET station_id = ?, distance_m = ?, walk_time_min = ? WHERE id = ?
`

type UpdateMallStationLinkParams struct {
	StationID   sql.NullString
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
	ID          string
}

func (q *Queries) UpdateMallStationLink(ctx context.Context, arg UpdateMallStationLinkParams) error {
	_, err := q.db.ExecContext(ctx, updateMallStationLink, arg.StationID, arg.DistanceM, arg.WalkTimeMin, arg.ID)
	return err
}

const listMallsWithCoordinates = `
SELECT id, name, station_id, lat, lng, distance_m, walk_time_min
FROM malls
WHERE lat IS NOT NULL AND lng IS NOT NULL
ORDER BY id
`

func (q *Queries) ListMallsWithCoordinates(ctx context.Context) ([]Mall, error) {
	rows, err := q.db.QueryContext(ctx, listMallsWithCoordinates)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []Mall
	for rows.Next() {
		var i Mall
		if err := rows.Scan(&i.ID, &i.Name, &i.StationID, &i.Lat, &i.Lng, &i.DistanceM, &i.WalkTimeMin); err != nil {
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

const createListing = `
INSERT INTO listings (id, name, address, lat, lng, station_id, distance_m, walk_time_min, tags, active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
`

type CreateListingParams struct {
	ID          string
	Name        string
	Address     sql.NullString
	Lat         sql.NullFloat64
	Lng         sql.NullFloat64
	StationID   sql.NullString
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
	Tags        string
}

func (q *Queries) CreateListing(ctx context.Context, arg CreateListingParams) error {
	_, err := q.db.ExecContext(ctx, createListing,
		arg.ID, arg.Name, arg.Address, arg.Lat, arg.Lng,
		arg.StationID, arg.DistanceM, arg.WalkTimeMin, arg.Tags)
	return err
}

const getListing = `
SELECT id, name, address, lat, lng, station_id, distance_m, walk_time_min, tags, active
FROM listings WHERE id = ?
`

func (q *Queries) GetListing(ctx context.Context, id string) (Listing, error) {
	row := q.db.QueryRowContext(ctx, getListing, id)
	var i Listing
	err := row.Scan(
		&i.ID, &i.Name, &i.Address, &i.Lat, &i.Lng,
		&i.StationID, &i.DistanceM, &i.WalkTimeMin, &i.Tags, &i.Active,
	)
	return i, err
}

const listActiveListingsForStation = `
SELECT id, name, address, lat, lng, station_id, distance_m, walk_time_min, tags, active
FROM listings
WHERE station_id = ? AND active = 1
ORDER BY id
`

func (q *Queries) ListActiveListingsForStation(ctx context.Context, stationID string) ([]Listing, error) {
	rows, err := q.db.QueryContext(ctx, listActiveListingsForStation, stationID)
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

const listActiveListingsWithCoordinates = `
SELECT id, name, address, lat, lng, station_id, distance_m, walk_time_min, tags, active
FROM listings
WHERE active = 1 AND lat IS NOT NULL AND lng IS NOT NULL
ORDER BY id
`

func (q *Queries) ListActiveListingsWithCoordinates(ctx context.Context) ([]Listing, error) {
	rows, err := q.db.QueryContext(ctx, listActiveListingsWithCoordinates)
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

const updateListingStationLink = `
UPDATE listings SET station_id = ?, distance_m = ?, walk_time_min = ? WHERE id = ?
`

type UpdateListingStationLinkParams struct {
	StationID   sql.NullString
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
	ID          string
}

func (q *Queries) UpdateListingStationLink(ctx context.Context, arg UpdateListingStationLinkParams) error {
	_, err := q.db.ExecContext(ctx, updateListingStationLink,
		arg.StationID, arg.DistanceM, arg.WalkTimeMin, arg.ID)
	return err
}

const attachListingSource = `
INSERT INTO listing_sources (listing_id, source_id, url, is_primary)
VALUES (?, ?, ?, ?)
ON CONFLICT(listing_id, source_id) DO UPDATE SET url = excluded.url, is_primary = excluded.is_primary
`

type AttachListingSourceParams struct {
	ListingID string
	SourceID  string
	Url       sql.NullString
	IsPrimary int64
}

func (q *Queries) AttachListingSource(ctx context.Context, arg AttachListingSourceParams) error {
	_, err := q.db.ExecContext(ctx, attachListingSource,
		arg.ListingID, arg.SourceID, arg.Url, arg.IsPrimary)
	return err
}

const upsertBrand = `
INSERT INTO brands (id, name, tags)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, tags = excluded.tags
`

type UpsertBrandParams struct {
	ID   string
	Name string
	Tags string
}

func (q *Queries) UpsertBrand(ctx context.Context, arg UpsertBrandParams) error {
	_, err := q.db.ExecContext(ctx, upsertBrand, arg.ID, arg.Name, arg.Tags)
	return err
}

const createOutlet = `
INSERT INTO outlets (id, brand_id, mall_id, name, active)
VALUES (?, ?, ?, ?, 1)
`

type CreateOutletParams struct {
	ID      string
	BrandID string
	MallID  string
	Name    string
}

func (q *Queries) CreateOutlet(ctx context.Context, arg CreateOutletParams) error {
	_, err := q.db.ExecContext(ctx, createOutlet, arg.ID, arg.BrandID, arg.MallID, arg.Name)
	return err
}

const getOutlet = `
SELECT id, brand_id, mall_id, name, active FROM outlets WHERE id = ?
`

func (q *Queries) GetOutlet(ctx context.Context, id string) (Outlet, error) {
	row := q.db.QueryRowContext(ctx, getOutlet, id)
	var i Outlet
	err := row.Scan(&i.ID, &i.BrandID, &i.MallID, &i.Name, &i.Active)
	return i, err
}

const listActiveOutletsForStation = `
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
WHERE m.station_id = ? AND o.active = 1
ORDER BY o.id
`

type StationOutletRow struct {
	ID          string
	Name        string
	BrandID     string
	BrandName   string
	BrandTags   string
	MallID      string
	MallName    string
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
}

// ListActiveOutletsForStation returns active directory outlets mapped to the
// station through their mall, with brand tags and the mall's distance.
func (q *Queries) ListActiveOutletsForStation(ctx context.Context, stationID string) ([]StationOutletRow, error) {
	rows, err := q.db.QueryContext(ctx, listActiveOutletsForStation, stationID)
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

const deactivateOutlet = `
UPDATE outlets SET active = 0 WHERE id = ?
`

// DeactivateOutlet soft-retires a directory outlet. Deactivating an already
// inactive outlet is a no-op.
func (q *Queries) DeactivateOutlet(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deactivateOutlet, id)
	return err
}
