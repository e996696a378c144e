package draft

import (
	"testing"

	"github.com/google/uuid"
)

func TestFindFuzzyMatch(t *testing.T) {
	carter := NamedID{ID: uuid.New(), Name: "Jimmy Carter"}
	keith := NamedID{ID: uuid.New(), Name: "Keith Richards"}
	existing := []NamedID{carter, keith}

	cases := []struct {
		name      string
		candidate string
		threshold int
		wantID    uuid.UUID
		wantMatch bool
	}{
		{
			name:      "exact match",
			candidate: "Jimmy Carter",
			threshold: SameYearDupThreshold,
			wantID:    carter.ID,
			wantMatch: true,
		},
		{
			name:      "case insensitive",
			candidate: "jimmy carter",
			threshold: SameYearDupThreshold,
			wantID:    carter.ID,
			wantMatch: true,
		},
		{
			name:      "token order ignored",
			candidate: "Carter Jimmy",
			threshold: SameYearDupThreshold,
			wantID:    carter.ID,
			wantMatch: true,
		},
		{
			name:      "minor typo still matches",
			candidate: "Jimy Carter",
			threshold: SameYearDupThreshold,
			wantID:    carter.ID,
			wantMatch: true,
		},
		{
			name:      "different person does not match",
			candidate: "Willie Nelson",
			threshold: SameYearDupThreshold,
			wantMatch: false,
		},
		{
			name:      "empty candidate never matches",
			candidate: "   ",
			threshold: SameYearDupThreshold,
			wantMatch: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, matched := FindFuzzyMatch(tc.candidate, existing, tc.threshold)
			if matched != tc.wantMatch {
				t.Fatalf("matched = %v, want %v", matched, tc.wantMatch)
			}
			if matched && id != tc.wantID {
				t.Errorf("matched wrong entry")
			}
		})
	}
}

func TestFindFuzzyMatchEmptySet(t *testing.T) {
	if _, matched := FindFuzzyMatch("Jimmy Carter", nil, SameYearDupThreshold); matched {
		t.Error("expected no match against an empty set")
	}
}

func TestReuseThresholdTighterThanDupThreshold(t *testing.T) {
	// The historical-reuse pass must never be looser than the same-year
	// duplicate pass, or a name rejected as a duplicate could still create
	// a second person row.
	if PersonReuseThreshold < SameYearDupThreshold {
		t.Fatalf("reuse threshold %d below duplicate threshold %d",
			PersonReuseThreshold, SameYearDupThreshold)
	}
}
