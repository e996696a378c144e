package roster

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
)

type fakeRosterRepo struct {
	players []models.Player
}

func (r *fakeRosterRepo) CreatePlayer(ctx context.Context, id uuid.UUID, req RegisterPlayerRequest) (*models.Player, error) {
	p := models.Player{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		OptIn:     req.OptIn,
		DraftSeed: req.DraftSeed,
	}
	r.players = append(r.players, p)
	return &p, nil
}

func (r *fakeRosterRepo) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRosterRepo) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	for _, p := range r.players {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRosterRepo) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return r.players, nil
}

func (r *fakeRosterRepo) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			if req.OptIn != nil {
				r.players[i].OptIn = *req.OptIn
			}
			return &r.players[i], nil
		}
	}
	return nil, nil
}

func TestRegisterPlayerNormalizesEmail(t *testing.T) {
	app := NewApp(&fakeRosterRepo{})

	player, err := app.RegisterPlayer(context.Background(), RegisterPlayerRequest{
		FirstName: "Alice",
		Email:     "  Alice@Example.COM ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.Email != "alice@example.com" {
		t.Errorf("email = %q", player.Email)
	}
}

func TestRegisterPlayerRejectsDuplicateEmail(t *testing.T) {
	repo := &fakeRosterRepo{}
	app := NewApp(repo)
	ctx := context.Background()

	if _, err := app.RegisterPlayer(ctx, RegisterPlayerRequest{
		FirstName: "Alice", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	if _, err := app.RegisterPlayer(ctx, RegisterPlayerRequest{
		FirstName: "Another Alice", Email: "ALICE@example.com",
	}); err == nil {
		t.Fatal("expected a duplicate email to be rejected")
	}
	if len(repo.players) != 1 {
		t.Errorf("roster has %d players", len(repo.players))
	}
}

func TestRegisterPlayerValidation(t *testing.T) {
	app := NewApp(&fakeRosterRepo{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterPlayerRequest
	}{
		{name: "missing first name", req: RegisterPlayerRequest{Email: "a@b.com"}},
		{name: "missing email", req: RegisterPlayerRequest{FirstName: "Alice"}},
		{name: "bad email", req: RegisterPlayerRequest{FirstName: "Alice", Email: "nope"}},
		{name: "opt-in without phone", req: RegisterPlayerRequest{FirstName: "Alice", Email: "a@b.com", OptIn: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := app.RegisterPlayer(ctx, tc.req); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestGetPlayer(t *testing.T) {
	alice := models.Player{ID: uuid.New(), FirstName: "Alice", Email: "alice@example.com"}
	app := NewApp(&fakeRosterRepo{players: []models.Player{alice}})

	got, err := app.GetPlayer(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != alice.ID {
		t.Errorf("got = %+v", got)
	}
}
