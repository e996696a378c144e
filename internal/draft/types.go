package draft

import (
	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
)

// NextDrafterInfo identifies the single player entitled to draft next.
// PickCount is the player's alive picks this year, the number measured
// against the quota.
type NextDrafterInfo struct {
	PlayerID  uuid.UUID `json:"player_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	PickCount int       `json:"pick_count"`
}

// RecordPickRequest represents one draft submission.
type RecordPickRequest struct {
	PersonName string `json:"person_name"`
	Year       int    `json:"year"`
}

// RecordPickResult reports the committed pick and whether the person was
// reused from the historical registry.
type RecordPickResult struct {
	Pick         models.Pick `json:"pick"`
	PersonName   string      `json:"person_name"`
	PersonReused bool        `json:"person_reused"`
}
