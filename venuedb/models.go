package venuedb

import "database/sql"

// Station is a transit stop used as the geographic anchor for venues.
// Coordinates are nullable: some stations are imported before their
// coordinates are back-filled.
type Station struct {
	ID   string
	Name string
	Lat  sql.NullFloat64
	Lng  sql.NullFloat64
}

// Source is an origin catalog contributing venues or attribution.
type Source struct {
	ID       string
	Name     string
	Weight   int64
	Category string
}

// Mall is a physical building grouping directory outlets; its station link
// and distance stand in for those of its outlets.
type Mall struct {
	ID          string
	Name        string
	StationID   sql.NullString
	Lat         sql.NullFloat64
	Lng         sql.NullFloat64
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
}

// Listing is the curated venue shape. Tags are stored comma-joined.
// walk_time_min is always minutes.
type Listing struct {
	ID          string
	Name        string
	Address     sql.NullString
	Lat         sql.NullFloat64
	Lng         sql.NullFloat64
	StationID   sql.NullString
	DistanceM   sql.NullFloat64
	WalkTimeMin sql.NullInt64
	Tags        string
	Active      int64
}

// Brand is a chain brand; its tags are inherited by every outlet for search.
type Brand struct {
	ID   string
	Name string
	Tags string
}

// Outlet is the directory venue shape, mapped to a station through its mall.
type Outlet struct {
	ID      string
	BrandID string
	MallID  string
	Name    string
	Active  int64
}

// ListingSource is the venue-to-source attribution join row.
type ListingSource struct {
	ListingID string
	SourceID  string
	Url       sql.NullString
	IsPrimary int64
}

// ReconcileAction is the audit record written for every duplicate verdict
// produced by a reconciliation pass.
type ReconcileAction struct {
	ID          string
	StationID   string
	ListingID   string
	OutletID    string
	ListingName string
	OutletName  string
	Tier        string
	AutoRetired int64
	CreatedAt   int64
}
