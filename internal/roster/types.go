package roster

// RegisterPlayerRequest represents the data needed to register a new player.
type RegisterPlayerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	OptIn     bool   `json:"opt_in"`
	DraftSeed int    `json:"draft_seed"`
}

// UpdatePlayerRequest represents the self-service or admin profile fields.
// Nil fields are left unchanged.
type UpdatePlayerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	OptIn     *bool   `json:"opt_in"`
	DraftSeed *int    `json:"draft_seed"`
}
