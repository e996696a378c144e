package models

import "github.com/google/uuid"

// Identity is the already-authenticated caller, extracted from the session
// token at the request boundary and threaded through by parameter. It is
// never stored in process-wide state.
type Identity struct {
	PlayerID uuid.UUID
	Email    string
	Roles    []string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	for _, r := range i.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}
