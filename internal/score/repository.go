package score

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deadpool-app/deadpool/internal/models"
	"github.com/deadpool-app/deadpool/internal/sqlutil"
)

// Repository loads the joined pick/person/death rows scoring works from.
type Repository struct {
	sqlDB *sql.DB
}

// NewRepository creates a new score repository.
func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{sqlDB: sqlDB}
}

const listEntriesSQL = `
SELECT pk.player_id,
       pl.first_name,
       pl.last_name,
       pe.id,
       pe.name,
       pk.year,
       pk.picked_at,
       pe.death_date,
       pe.death_age
FROM picks pk
JOIN players pl ON pl.id = pk.player_id
JOIN people pe ON pe.id = pk.person_id
WHERE pk.year = $1
ORDER BY pk.picked_at`

// ListEntriesForYear loads a year's picks with death data attached.
func (r *Repository) ListEntriesForYear(ctx context.Context, year int) ([]Entry, error) {
	rows, err := r.sqlDB.QueryContext(ctx, listEntriesSQL, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list score entries for %d: %w", year, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var pl models.Player
		var death sql.NullTime
		var age sql.NullInt32
		if err := rows.Scan(&e.PlayerID, &pl.FirstName, &pl.LastName, &e.PersonID, &e.PersonName,
			&e.Year, &e.PickedAt, &death, &age); err != nil {
			return nil, fmt.Errorf("failed to scan score entry: %w", err)
		}
		// Same display rule as everywhere else a player is named.
		e.PlayerName = pl.Name()
		e.DeathDate = sqlutil.FromSqlTime(death)
		e.DeathAge = sqlutil.FromSqlInt32(age)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const listSeedInputsSQL = `
SELECT pl.id, pl.draft_seed
FROM players pl
ORDER BY pl.draft_seed, pl.id`

// ListSeedInputs loads each player's current seed; the app attaches scores.
func (r *Repository) ListSeedInputs(ctx context.Context) ([]SeedInput, error) {
	rows, err := r.sqlDB.QueryContext(ctx, listSeedInputsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list seed inputs: %w", err)
	}
	defer rows.Close()

	var inputs []SeedInput
	for rows.Next() {
		var in SeedInput
		if err := rows.Scan(&in.PlayerID, &in.PrevSeed); err != nil {
			return nil, fmt.Errorf("failed to scan seed input: %w", err)
		}
		inputs = append(inputs, in)
	}
	return inputs, rows.Err()
}
