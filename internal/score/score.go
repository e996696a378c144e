package score

import (
	"math/rand"
	"sort"
)

// Points awarded by the rules: a death scores its base plus any blood
// bonuses; a person already dead when picked scores nothing.
const (
	BasePoints       = 50
	FirstBloodBonus  = 25
	LastBloodBonus   = 25
	MaxCountedAge    = 100
)

// basePoints is 50 + (100 - age), floored at the base so extreme ages
// never go negative.
func basePoints(age int) int {
	if age >= MaxCountedAge {
		return BasePoints
	}
	return BasePoints + (MaxCountedAge - age)
}

// counts reports whether an entry scores at all: the person died, the death
// falls in the pick's year, and the pick predates the death. Picking an
// already-dead person loses the pick (0 points).
func counts(e Entry) bool {
	if e.DeathDate == nil || e.DeathAge == nil {
		return false
	}
	if e.DeathDate.Year() != e.Year {
		return false
	}
	return !e.DeathDate.Before(e.PickedAt)
}

// ComputeStandings scores a year's entries and returns the leaderboard in
// descending total order. First and Last Blood go to the picks holding the
// earliest and latest scoring deaths; on a shared date every holder gets
// the bonus and the Arbiter settles it offline.
func ComputeStandings(entries []Entry) []PlayerScore {
	var first, last *Entry
	for i := range entries {
		e := &entries[i]
		if !counts(*e) {
			continue
		}
		if first == nil || e.DeathDate.Before(*first.DeathDate) {
			first = e
		}
		if last == nil || e.DeathDate.After(*last.DeathDate) {
			last = e
		}
	}

	byPlayer := make(map[string]*PlayerScore)
	var order []string
	for i := range entries {
		e := entries[i]
		key := e.PlayerID.String()
		ps, ok := byPlayer[key]
		if !ok {
			ps = &PlayerScore{PlayerID: e.PlayerID, PlayerName: e.PlayerName}
			byPlayer[key] = ps
			order = append(order, key)
		}

		pick := PickScore{PersonID: e.PersonID, PersonName: e.PersonName}
		if counts(e) {
			pick.Points = basePoints(*e.DeathAge)
			if first != nil && sameDeath(e, *first) {
				pick.FirstBlood = true
				pick.Points += FirstBloodBonus
			}
			if last != nil && sameDeath(e, *last) {
				pick.LastBlood = true
				pick.Points += LastBloodBonus
			}
		}
		ps.Picks = append(ps.Picks, pick)
		ps.Total += pick.Points
	}

	standings := make([]PlayerScore, 0, len(order))
	for _, key := range order {
		standings = append(standings, *byPlayer[key])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total > standings[j].Total
	})
	return standings
}

func sameDeath(a, b Entry) bool {
	return counts(a) && a.DeathDate.Equal(*b.DeathDate)
}

// ComputeDraftOrder derives next season's seeds: prior seed and prior score
// are normalized to 0-1 and combined as seed - score, so a late prior slot
// pushes a player later while a high score pulls them earlier. Players with
// no prior season are shuffled in by a random weight alone. Lowest weight
// drafts first.
func ComputeDraftOrder(inputs []SeedInput, rng *rand.Rand) []SeedResult {
	if len(inputs) == 0 {
		return nil
	}

	maxSeed, maxScore := 0, 0
	for _, in := range inputs {
		if in.PrevSeed > maxSeed {
			maxSeed = in.PrevSeed
		}
		if in.Score > maxScore {
			maxScore = in.Score
		}
	}

	results := make([]SeedResult, 0, len(inputs))
	for _, in := range inputs {
		var w float64
		if in.PrevSeed == 0 {
			w = rng.Float64()
		} else {
			w = norm(in.PrevSeed, maxSeed) - norm(in.Score, maxScore)
		}
		results = append(results, SeedResult{PlayerID: in.PlayerID, Weight: w})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Weight < results[j].Weight
	})
	for i := range results {
		results[i].Seed = i + 1
	}
	return results
}

func norm(v, max int) float64 {
	if max == 0 {
		return 0
	}
	return float64(v) / float64(max)
}
