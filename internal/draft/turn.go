package draft

import (
	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
)

// DefaultPickQuota is the number of alive picks every player holds at any
// given time. When a pick dies the player drafts a replacement, so the
// ledger for a year can exceed quota only through those re-ups.
const DefaultPickQuota = 20

// NextDrafter computes which player is entitled to draft next: among
// players with fewer than quota alive picks this year, the one with the
// fewest, ties broken by ascending draft seed. Deceased picks are spent
// and never count, so a death drops the player back under quota and the
// resolver hands them the replacement pick. The second return is false
// when every player holds a full quota of alive picks.
//
// The computation is pure and is re-run from the ledger on every call;
// turn state is never stored.
func NextDrafter(players []models.Player, picks []models.Pick, quota int) (models.Player, bool) {
	counts := make(map[uuid.UUID]int, len(players))
	for _, p := range picks {
		if p.PersonDeceased {
			continue
		}
		counts[p.PlayerID]++
	}

	var next models.Player
	found := false
	for _, pl := range players {
		n := counts[pl.ID]
		if n >= quota {
			continue
		}
		if !found || less(pl, n, next, counts[next.ID]) {
			next = pl
			found = true
		}
	}
	return next, found
}

// less orders candidates by pick count, then seed, then id for a stable
// answer when seeds collide.
func less(a models.Player, aCount int, b models.Player, bCount int) bool {
	if aCount != bCount {
		return aCount < bCount
	}
	if a.DraftSeed != b.DraftSeed {
		return a.DraftSeed < b.DraftSeed
	}
	return a.ID.String() < b.ID.String()
}
