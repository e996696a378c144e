package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/models"
)

// RosterRepository defines what the app layer needs from the repository.
type RosterRepository interface {
	CreatePlayer(ctx context.Context, id uuid.UUID, req RegisterPlayerRequest) (*models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
}

// App handles roster business logic. Players are never deleted; past picks
// reference them forever.
type App struct {
	repo RosterRepository
}

// NewApp creates a new roster App.
func NewApp(repo RosterRepository) *App {
	return &App{repo: repo}
}

// RegisterPlayer creates a new player. Emails are lowercased before storage
// because they double as the login identity.
func (a *App) RegisterPlayer(ctx context.Context, req RegisterPlayerRequest) (*models.Player, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := a.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	if existing, err := a.repo.GetPlayerByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("player with email %s already registered", req.Email)
	}

	player, err := a.repo.CreatePlayer(ctx, uuid.New(), req)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	log.Info().
		Str("player_id", player.ID.String()).
		Str("email", player.Email).
		Msg("player registered")

	return player, nil
}

// GetPlayer retrieves a player by ID.
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// ListPlayers returns the full roster in seed order.
func (a *App) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := a.repo.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpdatePlayer applies profile maintenance. Seed changes are admin-only;
// the handler enforces that before calling here.
func (a *App) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	player, err := a.repo.UpdatePlayer(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info().Str("player_id", id.String()).Msg("player profile updated")
	return player, nil
}

func (a *App) validateRegisterRequest(req RegisterPlayerRequest) error {
	if req.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if req.OptIn && req.Phone == "" {
		return fmt.Errorf("phone is required when opting in to SMS alerts")
	}
	return nil
}
