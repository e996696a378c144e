package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/draft"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDraftError maps domain errors from the pick path onto HTTP statuses.
func respondDraftError(w http.ResponseWriter, err error) {
	var validationErr *draft.ValidationError
	var dupErr *draft.DuplicatePickError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &dupErr):
		respondJSON(w, http.StatusConflict, map[string]string{
			"error":        dupErr.Error(),
			"matched_name": dupErr.MatchedName,
			"person_id":    dupErr.PersonID.String(),
		})
	case errors.Is(err, draft.ErrNotYourTurn):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, draft.ErrDraftComplete):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("internal error on draft path")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
