package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick is one ledger entry: a player drafting a person for a given year.
// Picks are immutable once created; corrections happen on the Person row.
// PersonDeceased is projected from the person registry on read, never
// stored with the pick. A deceased pick stops counting against the
// player's alive-pick quota, which is what grants the replacement pick.
type Pick struct {
	ID             uuid.UUID `json:"id"`
	PlayerID       uuid.UUID `json:"player_id"`
	PersonID       uuid.UUID `json:"person_id"`
	Year           int       `json:"year"`
	PickedAt       time.Time `json:"picked_at"`
	PersonDeceased bool      `json:"person_deceased"`
}
