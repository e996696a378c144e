package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/draft"
	"github.com/deadpool-app/deadpool/internal/gateway"
	"github.com/deadpool-app/deadpool/internal/people"
	"github.com/deadpool-app/deadpool/internal/roster"
	"github.com/deadpool-app/deadpool/internal/score"
)

// Arbiter answers free-form pool questions. Failures degrade to a canned
// response, so the signature carries no error.
type Arbiter interface {
	Ask(ctx context.Context, prompt string) string
}

// Server wires the app layers into HTTP handlers.
type Server struct {
	draft   *draft.App
	roster  *roster.App
	people  *people.App
	score   *score.App
	arbiter Arbiter
	hub     *gateway.Hub
}

// NewServer creates the handler set.
func NewServer(draftApp *draft.App, rosterApp *roster.App, peopleApp *people.App,
	scoreApp *score.App, arbiter Arbiter, hub *gateway.Hub) *Server {
	return &Server{
		draft:   draftApp,
		roster:  rosterApp,
		people:  peopleApp,
		score:   scoreApp,
		arbiter: arbiter,
		hub:     hub,
	}
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NextDrafter reports who is up. 204 means the draft is over.
func (s *Server) NextDrafter(w http.ResponseWriter, r *http.Request) {
	info, err := s.draft.ResolveNextDrafter(r.Context(), s.yearParam(r))
	if err != nil {
		respondDraftError(w, err)
		return
	}
	if info == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// SubmitPick records a pick for the authenticated caller.
func (s *Server) SubmitPick(w http.ResponseWriter, r *http.Request) {
	who, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req draft.RecordPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Year == 0 {
		req.Year = s.draft.CurrentYear()
	}

	result, err := s.draft.RecordPick(r.Context(), who, req)
	if err != nil {
		respondDraftError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// ListPicks returns the pick ledger for a year.
func (s *Server) ListPicks(w http.ResponseWriter, r *http.Request) {
	picks, err := s.draft.ListPicks(r.Context(), s.yearParam(r))
	if err != nil {
		respondDraftError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, picks)
}

// Leaderboard returns the scored standings for a year.
func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := s.score.Leaderboard(r.Context(), s.yearParam(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to compute leaderboard")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

// DraftOrder returns next-season seeds computed from this year's results.
func (s *Server) DraftOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.score.NextSeasonOrder(r.Context(), s.yearParam(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to compute draft order")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GetPlayer returns one player's profile. Players may read their own;
// reading anyone else requires the admin role.
func (s *Server) GetPlayer(w http.ResponseWriter, r *http.Request) {
	who, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	if !who.IsAdmin() && who.PlayerID != id {
		respondError(w, http.StatusForbidden, "players may only view their own profile")
		return
	}

	player, err := s.roster.GetPlayer(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		log.Error().Err(err).Str("player_id", id.String()).Msg("failed to get player")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, player)
}

func (s *Server) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.roster.ListPlayers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list players")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, players)
}

func (s *Server) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req roster.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	player, err := s.roster.RegisterPlayer(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

// UpdatePlayer handles profile maintenance. Players may edit themselves;
// seed changes and editing others require the admin role.
func (s *Server) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	who, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req roster.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if !who.IsAdmin() {
		if who.PlayerID != id {
			respondError(w, http.StatusForbidden, "players may only edit their own profile")
			return
		}
		if req.DraftSeed != nil {
			respondError(w, http.StatusForbidden, "draft seed changes require the admin role")
			return
		}
	}

	player, err := s.roster.UpdatePlayer(r.Context(), id, req)
	if err != nil {
		log.Error().Err(err).Str("player_id", id.String()).Msg("failed to update player")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, player)
}

func (s *Server) ListPeople(w http.ResponseWriter, r *http.Request) {
	list, err := s.people.ListPeople(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list people")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid person id")
		return
	}

	var req people.UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	person, err := s.people.UpdatePerson(r.Context(), id, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// RecordDeath logs a death for scoring.
func (s *Server) RecordDeath(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid person id")
		return
	}

	var req people.RecordDeathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	person, err := s.people.RecordDeath(r.Context(), id, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// AskArbiter proxies a question to the pool chatbot.
func (s *Server) AskArbiter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"answer": s.arbiter.Ask(r.Context(), req.Prompt)})
}

// GatewayStats reports live feed connection counts.
func (s *Server) GatewayStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.hub.Stats())
}

// LiveFeed upgrades the request into a WebSocket on the pick feed.
func (s *Server) LiveFeed(w http.ResponseWriter, r *http.Request) {
	who, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	if err := s.hub.Upgrade(w, r, who.PlayerID); err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
	}
}

// yearParam reads ?year=YYYY, defaulting to the current draft year.
func (s *Server) yearParam(r *http.Request) int {
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			return year
		}
	}
	return s.draft.CurrentYear()
}
