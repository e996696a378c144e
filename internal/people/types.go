package people

import "time"

// UpdatePersonRequest is an admin correction to a person row. Picks are
// immutable, so spelling fixes land here instead. Nil fields are unchanged.
type UpdatePersonRequest struct {
	Name     *string `json:"name"`
	WikiPage *string `json:"wiki_page"`
}

// RecordDeathRequest logs a death for scoring.
type RecordDeathRequest struct {
	DeathDate time.Time `json:"death_date"`
	Age       int       `json:"age"`
}
