// Package assign resolves the nearest station for a venue and keeps station
// links and distances current.
package assign

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/geo"
	"makanmap.sg/venuedb"
)

// ErrNoStationCoordinates is returned when no candidate station has
// coordinates. Callers must leave existing station links untouched and log
// the condition rather than fail.
var ErrNoStationCoordinates = errors.New("no candidate station has coordinates")

// candidate is a station usable for nearest-station resolution.
type candidate struct {
	id  string
	lat float64
	lng float64
}

// prefilterDegrees is the half-width of the initial bounding box used to
// narrow candidates before the exact scan. Roughly 5km at the equator.
const prefilterDegrees = 0.05

// Resolver finds the nearest station with coordinates. The spatial index
// narrows candidates; the exact great-circle scan picks the winner.
type Resolver struct {
	tree       *rtree.RTree
	candidates []candidate
	threshold  float64
}

// NewResolver builds a resolver over the given stations; stations without
// coordinates are ignored.
func NewResolver(stations []venuedb.Station, engine appconf.Engine) *Resolver {
	r := &Resolver{
		tree:      &rtree.RTree{},
		threshold: engine.ReassignThresholdMeters,
	}
	for _, s := range stations {
		if !s.Lat.Valid || !s.Lng.Valid {
			continue
		}
		c := candidate{id: s.ID, lat: s.Lat.Float64, lng: s.Lng.Float64}
		r.candidates = append(r.candidates, c)
		r.tree.Insert(
			[2]float64{c.lat, c.lng}, // min
			[2]float64{c.lat, c.lng}, // max
			c,
		)
	}
	return r
}

// Nearest returns the closest station with coordinates and the great-circle
// distance to it in meters.
func (r *Resolver) Nearest(lat, lng float64) (string, float64, error) {
	if len(r.candidates) == 0 {
		return "", 0, ErrNoStationCoordinates
	}

	var nearby []candidate
	r.tree.Search(
		[2]float64{lat - prefilterDegrees, lng - prefilterDegrees},
		[2]float64{lat + prefilterDegrees, lng + prefilterDegrees},
		func(min, max [2]float64, data interface{}) bool {
			if c, ok := data.(candidate); ok {
				nearby = append(nearby, c)
			}
			return true
		},
	)

	// Nothing inside the box: scan everything.
	if len(nearby) == 0 {
		nearby = r.candidates
	}

	best, bestDist := nearestOf(lat, lng, nearby)

	// The box is a pure optimization and must never change the answer. When
	// the closest in-box station is farther than the box is guaranteed to
	// cover, a closer station can sit just outside the box edge, so the
	// exact scan widens to every candidate.
	if len(nearby) < len(r.candidates) && bestDist > coveredRadius(lat, lng) {
		best, bestDist = nearestOf(lat, lng, r.candidates)
	}

	return best.id, bestDist, nil
}

// nearestOf scans candidates for the minimum great-circle distance.
// Candidates must be non-empty.
func nearestOf(lat, lng float64, candidates []candidate) (candidate, float64) {
	best := candidates[0]
	bestDist := geo.DistanceMeters(lat, lng, best.lat, best.lng)
	for _, c := range candidates[1:] {
		if d := geo.DistanceMeters(lat, lng, c.lat, c.lng); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// coveredRadius is the distance the prefilter box is guaranteed to cover in
// every direction from the query point. Longitudinal degrees shrink with
// latitude, so the shorter box edge bounds the radius.
func coveredRadius(lat, lng float64) float64 {
	return math.Min(
		geo.DistanceMeters(lat, lng, lat+prefilterDegrees, lng),
		geo.DistanceMeters(lat, lng, lat, lng+prefilterDegrees),
	)
}

// ShouldReassign applies the reassignment hysteresis: an existing station
// link is only overwritten when the new station is more than the threshold
// closer, preventing oscillation between roughly equidistant stations.
func (r *Resolver) ShouldReassign(currentDistance, nearestDistance float64) bool {
	return currentDistance-nearestDistance > r.threshold
}

// Coordinates returns a candidate station's coordinates by id.
func (r *Resolver) Coordinates(stationID string) (lat, lng float64, ok bool) {
	for _, c := range r.candidates {
		if c.id == stationID {
			return c.lat, c.lng, true
		}
	}
	return 0, 0, false
}
