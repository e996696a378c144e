package draft

import (
	"strings"

	"github.com/google/uuid"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Fuzzy-match thresholds. Token-sort-ratio similarity, 0-100.
// The same-year check is tighter than the historical-reuse check: a typo of
// an already-drafted name must be rejected, while reusing a Person row from
// a prior season tolerates slightly less variance before matching.
const (
	SameYearDupThreshold = 82
	PersonReuseThreshold = 85
)

// NamedID pairs an entity id with the display name it is matched under.
type NamedID struct {
	ID   uuid.UUID
	Name string
}

// FindFuzzyMatch compares candidate against every entry using a
// case-insensitive token-sort similarity ratio and returns the id of the
// first entry at or above threshold. An empty candidate or empty set never
// matches.
func FindFuzzyMatch(candidate string, existing []NamedID, threshold int) (uuid.UUID, bool) {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return uuid.Nil, false
	}

	for _, e := range existing {
		if fuzzy.TokenSortRatio(candidate, strings.ToLower(e.Name)) >= threshold {
			return e.ID, true
		}
	}
	return uuid.Nil, false
}
