package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
)

// Repository implements player data access operations.
type Repository struct {
	sqlDB *sql.DB
}

// NewRepository creates a new roster repository.
func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{sqlDB: sqlDB}
}

const playerColumns = `id, first_name, last_name, email, phone, opt_in, draft_seed, admin, created_at`

const createPlayerSQL = `
INSERT INTO players (id, first_name, last_name, email, phone, opt_in, draft_seed)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + playerColumns

// CreatePlayer creates a new player.
func (r *Repository) CreatePlayer(ctx context.Context, id uuid.UUID, req RegisterPlayerRequest) (*models.Player, error) {
	row := r.sqlDB.QueryRowContext(ctx, createPlayerSQL,
		id, req.FirstName, req.LastName, req.Email, req.Phone, req.OptIn, req.DraftSeed)
	player, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

const getPlayerSQL = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

// GetPlayer retrieves a player by ID.
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := scanPlayer(r.sqlDB.QueryRowContext(ctx, getPlayerSQL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

const getPlayerByEmailSQL = `
SELECT ` + playerColumns + `
FROM players
WHERE email = $1`

// GetPlayerByEmail retrieves a player by login email.
func (r *Repository) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	player, err := scanPlayer(r.sqlDB.QueryRowContext(ctx, getPlayerByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get player by email: %w", err)
	}
	return player, nil
}

const listPlayersSQL = `
SELECT ` + playerColumns + `
FROM players
ORDER BY draft_seed, id`

// ListPlayers returns the full roster in seed order.
func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.sqlDB.QueryContext(ctx, listPlayersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
			&p.OptIn, &p.DraftSeed, &p.Admin, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const updatePlayerSQL = `
UPDATE players
SET first_name = COALESCE($2, first_name),
    last_name  = COALESCE($3, last_name),
    phone      = COALESCE($4, phone),
    opt_in     = COALESCE($5, opt_in),
    draft_seed = COALESCE($6, draft_seed)
WHERE id = $1
RETURNING ` + playerColumns

// UpdatePlayer updates the provided profile fields, leaving nil ones alone.
func (r *Repository) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	row := r.sqlDB.QueryRowContext(ctx, updatePlayerSQL,
		id, req.FirstName, req.LastName, req.Phone, req.OptIn, req.DraftSeed)
	player, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

func scanPlayer(row *sql.Row) (*models.Player, error) {
	var p models.Player
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.OptIn, &p.DraftSeed, &p.Admin, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
