package score

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one pick joined with its person's death data, the unit the
// scoring rules operate on.
type Entry struct {
	PlayerID   uuid.UUID
	PlayerName string
	PersonID   uuid.UUID
	PersonName string
	Year       int
	PickedAt   time.Time
	DeathDate  *time.Time
	DeathAge   *int
}

// PickScore is the scored view of a single pick.
type PickScore struct {
	PersonID   uuid.UUID `json:"person_id"`
	PersonName string    `json:"person_name"`
	Points     int       `json:"points"`
	FirstBlood bool      `json:"first_blood"`
	LastBlood  bool      `json:"last_blood"`
}

// PlayerScore is one leaderboard row.
type PlayerScore struct {
	PlayerID   uuid.UUID   `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Total      int         `json:"total"`
	Picks      []PickScore `json:"picks"`
}

// SeedInput feeds next-season draft order computation: where the player
// drafted last year and what they scored. Players without a prior season
// have PrevSeed == 0.
type SeedInput struct {
	PlayerID uuid.UUID
	PrevSeed int
	Score    int
}

// SeedResult is a player's computed position for the new season.
type SeedResult struct {
	PlayerID uuid.UUID `json:"player_id"`
	Seed     int       `json:"seed"`
	Weight   float64   `json:"weight"`
}
