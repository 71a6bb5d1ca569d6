// Package trust scores venues from their contributing sources and assigns
// the display bucket used on a station page.
package trust

import (
	"makanmap.sg/internal/appconf"
	"makanmap.sg/venuedb"
)

// Bucket is one of the four mutually exclusive display categories.
type Bucket int

const (
	BucketRecommended Bucket = iota
	BucketPopular
	BucketExclusiveLowTrust
	BucketOther
)

func (b Bucket) String() string {
	switch b {
	case BucketRecommended:
		return "recommended"
	case BucketPopular:
		return "popular"
	case BucketExclusiveLowTrust:
		return "exclusiveLowTrust"
	default:
		return "other"
	}
}

// Score returns the sum of the weights of the distinct sources attributed
// to a venue. A venue with no sources scores 0; that is a legitimate state,
// not an error.
func Score(sources []venuedb.Source) int64 {
	seen := make(map[string]bool, len(sources))
	var total int64
	for _, s := range sources {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		total += s.Weight
	}
	return total
}

// Classifier assigns display buckets from source presence.
type Classifier struct {
	editorial map[string]bool
	popular   string
	lowTrust  string
}

func NewClassifier(policy appconf.SourcePolicy) *Classifier {
	editorial := make(map[string]bool, len(policy.EditorialAllowList))
	for _, id := range policy.EditorialAllowList {
		editorial[id] = true
	}
	return &Classifier{
		editorial: editorial,
		popular:   policy.PopularSourceID,
		lowTrust:  policy.LowTrustSourceID,
	}
}

// Classify returns exactly one bucket for a venue. Checks run in order:
// editorial allow-list, popular (the designated source, or any chain
// outlet), exclusive low-trust, then other. Chain outlets are implicitly
// popular by brand recognition, independent of editorial sourcing.
func (c *Classifier) Classify(sourceIDs []string, isChainOutlet bool) Bucket {
	hasPopular := false
	hasLowTrust := false
	for _, id := range sourceIDs {
		if c.editorial[id] {
			return BucketRecommended
		}
		if id == c.popular {
			hasPopular = true
		}
		if id == c.lowTrust {
			hasLowTrust = true
		}
	}

	if hasPopular || isChainOutlet {
		return BucketPopular
	}
	if hasLowTrust {
		return BucketExclusiveLowTrust
	}
	return BucketOther
}
