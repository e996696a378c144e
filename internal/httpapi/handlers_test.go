package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadpool-app/deadpool/internal/draft"
	"github.com/deadpool-app/deadpool/internal/gateway"
	"github.com/deadpool-app/deadpool/internal/models"
	"github.com/deadpool-app/deadpool/internal/people"
	"github.com/deadpool-app/deadpool/internal/roster"
	"github.com/deadpool-app/deadpool/internal/score"
)

const testSecret = "test-secret"

// memStore implements every repository interface the apps consume, entirely
// in memory.
type memStore struct {
	players []models.Player
	picks   []models.Pick
	people  []models.Person
	entries []score.Entry
}

func (m *memStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return m.players, nil
}

func (m *memStore) ListPicksForYear(ctx context.Context, year int) ([]models.Pick, error) {
	var out []models.Pick
	for _, p := range m.picks {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ListDraftedNamesForYear(ctx context.Context, year int) ([]draft.NamedID, error) {
	var out []draft.NamedID
	for _, pk := range m.picks {
		if pk.Year != year {
			continue
		}
		for _, person := range m.people {
			if person.ID == pk.PersonID {
				out = append(out, draft.NamedID{ID: person.ID, Name: person.Name})
			}
		}
	}
	return out, nil
}

func (m *memStore) ListPeopleNames(ctx context.Context) ([]draft.NamedID, error) {
	var out []draft.NamedID
	for _, p := range m.people {
		out = append(out, draft.NamedID{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (m *memStore) InsertPerson(ctx context.Context, id uuid.UUID, name, wikiPage string) error {
	m.people = append(m.people, models.Person{ID: id, Name: name, WikiPage: wikiPage})
	return nil
}

func (m *memStore) InsertPick(ctx context.Context, pick models.Pick) error {
	m.picks = append(m.picks, pick)
	return nil
}

func (m *memStore) InsertOutboxEvent(ctx context.Context, eventType string, payload []byte) error {
	return nil
}

func (m *memStore) InTransaction(ctx context.Context, fn func(q draft.PickQueries) error) error {
	return fn(m)
}

func (m *memStore) CreatePlayer(ctx context.Context, id uuid.UUID, req roster.RegisterPlayerRequest) (*models.Player, error) {
	p := models.Player{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		OptIn:     req.OptIn,
		DraftSeed: req.DraftSeed,
		CreatedAt: time.Now().UTC(),
	}
	m.players = append(m.players, p)
	return &p, nil
}

func (m *memStore) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	for _, p := range m.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("failed to get player: %w", sql.ErrNoRows)
}

func (m *memStore) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	for _, p := range m.players {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdatePlayer(ctx context.Context, id uuid.UUID, req roster.UpdatePlayerRequest) (*models.Player, error) {
	for i := range m.players {
		if m.players[i].ID != id {
			continue
		}
		if req.Phone != nil {
			m.players[i].Phone = *req.Phone
		}
		if req.OptIn != nil {
			m.players[i].OptIn = *req.OptIn
		}
		if req.DraftSeed != nil {
			m.players[i].DraftSeed = *req.DraftSeed
		}
		return &m.players[i], nil
	}
	return nil, nil
}

func (m *memStore) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	for _, p := range m.people {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListPeople(ctx context.Context) ([]models.Person, error) {
	return m.people, nil
}

func (m *memStore) UpdatePerson(ctx context.Context, id uuid.UUID, req people.UpdatePersonRequest) (*models.Person, error) {
	for i := range m.people {
		if m.people[i].ID != id {
			continue
		}
		if req.Name != nil {
			m.people[i].Name = *req.Name
		}
		if req.WikiPage != nil {
			m.people[i].WikiPage = *req.WikiPage
		}
		return &m.people[i], nil
	}
	return nil, nil
}

func (m *memStore) RecordDeath(ctx context.Context, id uuid.UUID, deathDate time.Time, age int) (*models.Person, error) {
	for i := range m.people {
		if m.people[i].ID != id {
			continue
		}
		m.people[i].DeathDate = &deathDate
		m.people[i].DeathAge = &age
		return &m.people[i], nil
	}
	return nil, nil
}

func (m *memStore) ListEntriesForYear(ctx context.Context, year int) ([]score.Entry, error) {
	return m.entries, nil
}

func (m *memStore) ListSeedInputs(ctx context.Context) ([]score.SeedInput, error) {
	var out []score.SeedInput
	for _, p := range m.players {
		out = append(out, score.SeedInput{PlayerID: p.ID, PrevSeed: p.DraftSeed})
	}
	return out, nil
}

type fakeArbiter struct{}

func (fakeArbiter) Ask(ctx context.Context, prompt string) string { return "The Arbiter has spoken." }

func newTestHandler(t *testing.T, store *memStore) http.Handler {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	server := NewServer(
		draft.NewApp(store, clock),
		roster.NewApp(store),
		people.NewApp(store),
		score.NewApp(store, rand.New(rand.NewSource(1))),
		fakeArbiter{},
		gateway.NewHub(gateway.DefaultConnectionConfig()),
	)
	return SetupRoutes(server, testSecret)
}

func signToken(t *testing.T, playerID uuid.UUID, roles ...string) string {
	t.Helper()

	claims := Claims{
		Email: "player@example.com",
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func seededStore() *memStore {
	return &memStore{
		players: []models.Player{
			{ID: uuid.New(), FirstName: "Alice", Email: "alice@example.com", DraftSeed: 1, OptIn: true, Phone: "+15550000001"},
			{ID: uuid.New(), FirstName: "Bob", Email: "bob@example.com", DraftSeed: 2},
		},
	}
}

func TestHealthz(t *testing.T) {
	rec := doRequest(newTestHandler(t, seededStore()), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	handler := newTestHandler(t, seededStore())

	rec := doRequest(handler, http.MethodGet, "/api/draft/next", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/draft/next", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNextDrafterEndpoint(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	token := signToken(t, store.players[1].ID)

	rec := doRequest(handler, http.MethodGet, "/api/draft/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info draft.NextDrafterInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, store.players[0].ID, info.PlayerID)
	assert.Equal(t, "Alice", info.Name)
}

func TestSubmitPickEndpoint(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	token := signToken(t, store.players[0].ID)

	rec := doRequest(handler, http.MethodPost, "/api/draft/picks", token,
		draft.RecordPickRequest{PersonName: "Keith Richards", Year: 2026})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result draft.RecordPickResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Keith Richards", result.PersonName)
	assert.False(t, result.PersonReused)
	assert.Len(t, store.picks, 1)
}

func TestSubmitPickOutOfTurnReturns403(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	token := signToken(t, store.players[1].ID)

	rec := doRequest(handler, http.MethodPost, "/api/draft/picks", token,
		draft.RecordPickRequest{PersonName: "Keith Richards", Year: 2026})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitPickDuplicateReturns409(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodPost, "/api/draft/picks",
		signToken(t, store.players[0].ID),
		draft.RecordPickRequest{PersonName: "Jimmy Carter", Year: 2026})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(handler, http.MethodPost, "/api/draft/picks",
		signToken(t, store.players[1].ID),
		draft.RecordPickRequest{PersonName: "Jimy Carter", Year: 2026})
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Jimmy Carter", body["matched_name"])
}

func TestSubmitPickInvalidNameReturns400(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodPost, "/api/draft/picks",
		signToken(t, store.players[0].ID),
		draft.RecordPickRequest{PersonName: "@@@", Year: 2026})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterPlayerIsPublic(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodPost, "/api/players", "",
		roster.RegisterPlayerRequest{FirstName: "Carol", Email: "carol@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var player models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, "carol@example.com", player.Email)
}

func TestListPlayersRequiresAdmin(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodGet, "/api/players",
		signToken(t, store.players[0].ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/players",
		signToken(t, store.players[0].ID, "admin"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPlayerEndpoint(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	me := store.players[0]
	other := store.players[1]

	rec := doRequest(handler, http.MethodGet, "/api/players/"+me.ID.String(),
		signToken(t, me.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var player models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, me.ID, player.ID)

	// Reading someone else needs the admin role.
	rec = doRequest(handler, http.MethodGet, "/api/players/"+other.ID.String(),
		signToken(t, me.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/players/"+other.ID.String(),
		signToken(t, me.ID, "admin"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/players/"+uuid.NewString(),
		signToken(t, me.ID, "admin"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGatewayStatsRequiresAdmin(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodGet, "/api/gateway/stats",
		signToken(t, store.players[0].ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/gateway/stats",
		signToken(t, store.players[0].ID, "admin"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats["total_connections"])
}

func TestUpdatePlayerSelfService(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	me := store.players[0]
	other := store.players[1]

	phone := "+15550009999"
	rec := doRequest(handler, http.MethodPut, "/api/players/"+me.ID.String(),
		signToken(t, me.ID), roster.UpdatePlayerRequest{Phone: &phone})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, phone, store.players[0].Phone)

	// Editing someone else without the admin role is rejected.
	rec = doRequest(handler, http.MethodPut, "/api/players/"+other.ID.String(),
		signToken(t, me.ID), roster.UpdatePlayerRequest{Phone: &phone})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Seed changes are reserved for admins.
	seed := 5
	rec = doRequest(handler, http.MethodPut, "/api/players/"+me.ID.String(),
		signToken(t, me.ID), roster.UpdatePlayerRequest{DraftSeed: &seed})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(handler, http.MethodPut, "/api/players/"+me.ID.String(),
		signToken(t, me.ID, "admin"), roster.UpdatePlayerRequest{DraftSeed: &seed})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordDeathRequiresAdmin(t *testing.T) {
	personID := uuid.New()
	store := seededStore()
	store.people = []models.Person{{ID: personID, Name: "Jimmy Carter"}}
	handler := newTestHandler(t, store)
	path := "/api/people/" + personID.String() + "/death"

	body := people.RecordDeathRequest{
		DeathDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Age:       100,
	}

	rec := doRequest(handler, http.MethodPost, path, signToken(t, store.players[0].ID), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(handler, http.MethodPost, path, signToken(t, store.players[0].ID, "admin"), body)
	require.Equal(t, http.StatusOK, rec.Code)

	var person models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.True(t, person.Deceased())
}

func TestLeaderboardEndpoint(t *testing.T) {
	store := seededStore()
	deathDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	age := 80
	store.entries = []score.Entry{{
		PlayerID:   store.players[0].ID,
		PlayerName: "Alice",
		PersonID:   uuid.New(),
		PersonName: "Jimmy Carter",
		Year:       2026,
		PickedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DeathDate:  &deathDate,
		DeathAge:   &age,
	}}
	handler := newTestHandler(t, store)

	rec := doRequest(handler, http.MethodGet, "/api/leaderboard?year=2026",
		signToken(t, store.players[0].ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var standings []score.PlayerScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 1)
	// 50 + (100-80) + first and last blood.
	assert.Equal(t, 120, standings[0].Total)
}

func TestArbiterEndpoint(t *testing.T) {
	store := seededStore()
	handler := newTestHandler(t, store)
	token := signToken(t, store.players[0].ID)

	rec := doRequest(handler, http.MethodPost, "/api/arbiter", token,
		map[string]string{"prompt": "who dies next?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The Arbiter has spoken.", body["answer"])

	rec = doRequest(handler, http.MethodPost, "/api/arbiter", token,
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
