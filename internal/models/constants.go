package models

// Common constants used across the application
const (
	// UnknownValue is the fallback value when data is unavailable or calculation fails
	UnknownValue = "UNKNOWN"

	// VenueKindListing marks curated editorial listings
	VenueKindListing = "listing"
	// VenueKindOutlet marks chain-directory outlets mapped through a mall
	VenueKindOutlet = "outlet"
)

const (
	DefaultSearchPageSize = 20
	MaxSearchPageSize     = 100

	// DefaultDrillInLimit caps how many venues are materialized per station
	// when a search asks for venue detail.
	DefaultDrillInLimit = 10
)
