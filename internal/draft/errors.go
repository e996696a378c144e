package draft

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotYourTurn = errors.New("not your turn to draft")
var ErrDraftComplete = errors.New("draft is complete")

// ValidationError reports a malformed pick name. Nothing is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid pick: " + e.Reason
}

// DuplicatePickError reports a fuzzy match against a name already drafted
// this year. The conflicting name is surfaced to the submitting player.
type DuplicatePickError struct {
	MatchedName string
	PersonID    uuid.UUID
}

func (e *DuplicatePickError) Error() string {
	return fmt.Sprintf("pick already taken: matches %q", e.MatchedName)
}
