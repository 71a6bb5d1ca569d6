package models

import (
	"strings"

	"makanmap.sg/venuedb"
)

// Venue is the common capability set shared by the two storage shapes
// (curated listing, directory outlet). The aggregation, search and matching
// logic operates only on this interface, never on storage-specific fields.
type Venue interface {
	VenueID() string
	VenueName() string
	Kind() string
	Coordinates() (lat, lng float64, ok bool)
	Station() (stationID string, ok bool)
	DistanceMeters() (float64, bool)
	WalkMinutes() (int64, bool)
	Tags() []string
	IsChainOutlet() bool
}

// SplitTags parses a comma-joined tag column into a clean tag slice.
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ListingVenue adapts a curated listing row to the Venue interface.
type ListingVenue struct {
	Row venuedb.Listing
}

func (v ListingVenue) VenueID() string   { return v.Row.ID }
func (v ListingVenue) VenueName() string { return v.Row.Name }
func (v ListingVenue) Kind() string      { return VenueKindListing }

func (v ListingVenue) Coordinates() (float64, float64, bool) {
	if !v.Row.Lat.Valid || !v.Row.Lng.Valid {
		return 0, 0, false
	}
	return v.Row.Lat.Float64, v.Row.Lng.Float64, true
}

func (v ListingVenue) Station() (string, bool) {
	return v.Row.StationID.String, v.Row.StationID.Valid
}

func (v ListingVenue) DistanceMeters() (float64, bool) {
	return v.Row.DistanceM.Float64, v.Row.DistanceM.Valid
}

func (v ListingVenue) WalkMinutes() (int64, bool) {
	return v.Row.WalkTimeMin.Int64, v.Row.WalkTimeMin.Valid
}

func (v ListingVenue) Tags() []string      { return SplitTags(v.Row.Tags) }
func (v ListingVenue) IsChainOutlet() bool { return false }

// OutletVenue adapts a directory outlet row to the Venue interface. Station
// link and distance come from the outlet's mall; tags are inherited from
// the brand.
type OutletVenue struct {
	Row venuedb.StationOutletRow
	// StationID is the station the row was fetched for; the row itself
	// carries only the mall.
	StationID string
}

func (v OutletVenue) VenueID() string   { return v.Row.ID }
func (v OutletVenue) VenueName() string { return v.Row.Name }
func (v OutletVenue) Kind() string      { return VenueKindOutlet }

func (v OutletVenue) Coordinates() (float64, float64, bool) {
	// Outlet coordinates are those of the mall and are not carried on the
	// station view; distance is precomputed on the mall instead.
	return 0, 0, false
}

func (v OutletVenue) Station() (string, bool) {
	return v.StationID, v.StationID != ""
}

func (v OutletVenue) DistanceMeters() (float64, bool) {
	return v.Row.DistanceM.Float64, v.Row.DistanceM.Valid
}

func (v OutletVenue) WalkMinutes() (int64, bool) {
	return v.Row.WalkTimeMin.Int64, v.Row.WalkTimeMin.Valid
}

func (v OutletVenue) Tags() []string      { return SplitTags(v.Row.BrandTags) }
func (v OutletVenue) IsChainOutlet() bool { return true }

// VenueSummary is the API representation of a venue on a station page.
type VenueSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
	WalkMinutes    *int64   `json:"walkMinutes,omitempty"`
	Tags           []string `json:"tags"`
	TrustScore     int64    `json:"trustScore"`
	Mall           string   `json:"mall,omitempty"`
	Brand          string   `json:"brand,omitempty"`
}

// StationFood is the four-bucket aggregation for one station page.
type StationFood struct {
	StationID         string         `json:"stationId"`
	StationName       string         `json:"stationName"`
	Recommended       []VenueSummary `json:"recommended"`
	Popular           []VenueSummary `json:"popular"`
	ExclusiveLowTrust []VenueSummary `json:"exclusiveLowTrust"`
	Other             []VenueSummary `json:"other"`
}

// StationSearchResult is one station's entry in a cross-station search.
type StationSearchResult struct {
	StationID   string         `json:"stationId"`
	StationName string         `json:"stationName"`
	MatchCount  int64          `json:"matchCount"`
	Venues      []VenueSummary `json:"venues,omitempty"`
}

// SearchResults is the paginated cross-station search response. Pagination
// applies to stations with at least one match, not to individual venues.
type SearchResults struct {
	ResultsByStation []StationSearchResult `json:"resultsByStation"`
	TotalStations    int64                 `json:"totalStations"`
	TotalMatches     int64                 `json:"totalMatches"`
	Page             int                   `json:"page"`
	PageSize         int                   `json:"pageSize"`
}

// ReconcileActionModel is the API representation of an audit record.
type ReconcileActionModel struct {
	ID          string `json:"id"`
	StationID   string `json:"stationId"`
	ListingID   string `json:"listingId"`
	OutletID    string `json:"outletId"`
	ListingName string `json:"listingName"`
	OutletName  string `json:"outletName"`
	Tier        string `json:"tier"`
	AutoRetired bool   `json:"autoRetired"`
	CreatedAt   int64  `json:"createdAt"`
}

// NewReconcileActionModel converts an audit row to its API shape.
func NewReconcileActionModel(row venuedb.ReconcileAction) ReconcileActionModel {
	return ReconcileActionModel{
		ID:          row.ID,
		StationID:   row.StationID,
		ListingID:   row.ListingID,
		OutletID:    row.OutletID,
		ListingName: row.ListingName,
		OutletName:  row.OutletName,
		Tier:        row.Tier,
		AutoRetired: row.AutoRetired == 1,
		CreatedAt:   row.CreatedAt,
	}
}
