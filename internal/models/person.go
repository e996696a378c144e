package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a celebrity in the all-time registry. A Person row is
// created the first time a never-before-seen name is drafted and is reused
// across draft years after that.
type Person struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	WikiPage  string     `json:"wiki_page"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DeathDate *time.Time `json:"death_date,omitempty"`
	// Age at death, recorded when the death is logged. Used for scoring.
	DeathAge *int `json:"death_age,omitempty"`
}

// Deceased reports whether a death has been recorded for the person.
func (p Person) Deceased() bool {
	return p.DeathDate != nil
}
