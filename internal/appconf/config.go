// Package appconf holds application configuration shared by the API server
// and the batch tools. All engine tunables live here so that no threshold is
// hard-coded at a call site.
package appconf

import "time"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment converts an environment flag value to an Environment.
// Unrecognized values default to Development.
func EnvFlagToEnvironment(envFlag string) Environment {
	switch envFlag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// Engine collects the tunables of the aggregation engine: walking
// estimation, station reassignment hysteresis, duplicate matching cutoffs,
// search limits and bulk pacing.
type Engine struct {
	// WalkingDetourFactor inflates straight-line distance to approximate
	// path indirection when no routed distance is available.
	WalkingDetourFactor float64

	// WalkingSpeedMetersPerMinute converts walking distance into minutes.
	WalkingSpeedMetersPerMinute float64

	// ReassignThresholdMeters is the hysteresis applied before moving a
	// venue to a closer station.
	ReassignThresholdMeters float64

	// MaxEditDistance is the inclusive Levenshtein cutoff for the
	// high-confidence edit-distance check.
	MaxEditDistance int

	// EditDistanceMinLen is the minimum length of the longer normalized
	// name before the edit-distance check applies.
	EditDistanceMinLen int

	// MinCoreNameLen is the minimum usable core-name length. It also serves
	// as the substring-match length floor.
	MinCoreNameLen int

	// MinQueryLen is the minimum search query length.
	MinQueryLen int

	// ShortQueryAllowList lists known-valid queries below MinQueryLen.
	ShortQueryAllowList []string

	// BulkPacingDelay is the delay between routing-service calls during
	// batch refreshes.
	BulkPacingDelay time.Duration

	// RoutingTimeout bounds a single routing-service call.
	RoutingTimeout time.Duration

	// RoutingBaseURL is the walking-route provider endpoint. Empty disables
	// routed distances and the engine falls back to estimates.
	RoutingBaseURL string
}

// DefaultEngine returns the production defaults.
func DefaultEngine() Engine {
	return Engine{
		WalkingDetourFactor:         1.3,
		WalkingSpeedMetersPerMinute: 80,
		ReassignThresholdMeters:     150,
		MaxEditDistance:             2,
		EditDistanceMinLen:          7,
		MinCoreNameLen:              4,
		MinQueryLen:                 3,
		ShortQueryAllowList:         []string{"bbq", "pho", "kfc"},
		BulkPacingDelay:             200 * time.Millisecond,
		RoutingTimeout:              5 * time.Second,
	}
}

// SourcePolicy names the source IDs that drive display-bucket
// classification. Classification derives from which sources are present on
// a venue, not from its trust score.
type SourcePolicy struct {
	// EditorialAllowList are the guide sources whose presence places a venue
	// in the recommended bucket. Includes both tiers of the prestige-award
	// source.
	EditorialAllowList []string

	// PopularSourceID marks crowd-validated venues as popular.
	PopularSourceID string

	// LowTrustSourceID is the aggregator whose exclusive presence places a
	// venue in the low-trust bucket.
	LowTrustSourceID string
}

// DefaultSourcePolicy returns the production source sets.
func DefaultSourcePolicy() SourcePolicy {
	return SourcePolicy{
		EditorialAllowList: []string{
			"michelin-star",
			"michelin-bib",
			"eatbook",
			"sethlui",
			"timeout",
		},
		PopularSourceID:  "burpple",
		LowTrustSourceID: "foodadvisor",
	}
}

// Config holds the application-level configuration.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	DataPath  string
	Verbose   bool
	Engine    Engine
	Sources   SourcePolicy
}
