package events

import (
	"time"

	"github.com/google/uuid"
)

// Outbox event types emitted by the pick recorder.
const (
	TypePickAnnounced    = "PickAnnounced"
	TypeNextDrafterAlert = "NextDrafterAlert"
)

// PickAnnouncedPayload is broadcast to every opted-in player after a pick
// commits.
type PickAnnouncedPayload struct {
	PickID     uuid.UUID `json:"pick_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	PersonName string    `json:"person_name"`
	Year       int       `json:"year"`
	PickedAt   time.Time `json:"picked_at"`
	Recipients []string  `json:"recipients"`
}

// NextDrafterAlertPayload tells the newly-current drafter it is their turn.
type NextDrafterAlertPayload struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Recipient  string    `json:"recipient"`
}
