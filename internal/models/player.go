package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a registered pool participant
type Player struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	OptIn     bool      `json:"opt_in"`
	DraftSeed int       `json:"draft_seed"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Name returns the player's display name.
func (p Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
