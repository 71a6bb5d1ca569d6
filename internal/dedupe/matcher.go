// Package dedupe decides whether two venue records from different sources
// describe the same physical venue. Verdicts are tiered so that the
// reconciliation policy can stay a pure function of the tier.
package dedupe

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"makanmap.sg/internal/appconf"
	"makanmap.sg/internal/namenorm"
)

// Tier is a duplicate-match verdict, ordered by confidence.
type Tier int

const (
	TierNone Tier = iota
	// TierContains: one core name is a substring of the other. Eligible for
	// manual review only; short common substrings produce false positives.
	TierContains
	// TierCoreExact: core names equal after suffix-vocabulary stripping.
	TierCoreExact
	// TierExact: normalized names equal, or within the edit-distance cutoff
	// on sufficiently long names.
	TierExact
)

func (t Tier) String() string {
	switch t {
	case TierContains:
		return "contains"
	case TierCoreExact:
		return "core-exact"
	case TierExact:
		return "exact"
	default:
		return "none"
	}
}

// AutoRetire reports whether the tier is confident enough for automatic
// retirement of the directory-side record.
func (t Tier) AutoRetire() bool {
	return t >= TierCoreExact
}

// Matcher holds the tunable cutoffs. Match is pure and safe for concurrent
// use.
type Matcher struct {
	minCoreLen         int
	maxEditDistance    int
	editDistanceMinLen int
}

func NewMatcher(engine appconf.Engine) *Matcher {
	return &Matcher{
		minCoreLen:         engine.MinCoreNameLen,
		maxEditDistance:    engine.MaxEditDistance,
		editDistanceMinLen: engine.EditDistanceMinLen,
	}
}

// Match compares two raw venue names and returns the strongest verdict.
// Decision order: exact normalized match, core-name match, core substring
// containment, then the edit-distance check on the normalized names.
func (m *Matcher) Match(nameA, nameB string) Tier {
	normA := namenorm.Normalize(nameA)
	normB := namenorm.Normalize(nameB)
	if normA == "" || normB == "" {
		return TierNone
	}

	if normA == normB {
		return TierExact
	}

	coreA := namenorm.ExtractCoreName(normA, m.minCoreLen)
	coreB := namenorm.ExtractCoreName(normB, m.minCoreLen)

	if coreA != "" && coreB != "" {
		if coreA == coreB {
			return TierCoreExact
		}
		if strings.Contains(coreA, coreB) || strings.Contains(coreB, coreA) {
			return TierContains
		}
	}

	longer := utf8.RuneCountInString(normA)
	if l := utf8.RuneCountInString(normB); l > longer {
		longer = l
	}
	if longer >= m.editDistanceMinLen &&
		levenshtein.ComputeDistance(normA, normB) <= m.maxEditDistance {
		return TierExact
	}

	return TierNone
}
