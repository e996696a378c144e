package draft

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
	"github.com/deadpool-app/deadpool/internal/sqlutil"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries bundles the draft SQL against a DB or a bound transaction.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listPlayersSQL = `
SELECT id, first_name, last_name, email, phone, opt_in, draft_seed, admin, created_at
FROM players
ORDER BY draft_seed, id`

func (q *Queries) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersSQL)
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

const listPicksForYearSQL = `
SELECT pk.id, pk.player_id, pk.person_id, pk.year, pk.picked_at,
       pe.death_date IS NOT NULL AS person_deceased
FROM picks pk
JOIN people pe ON pe.id = pk.person_id
WHERE pk.year = $1
ORDER BY pk.picked_at`

// ListPicksForYear returns the ledger with each pick's deceased flag
// projected from the person registry, so the turn resolver can tell
// alive picks from spent ones.
func (q *Queries) ListPicksForYear(ctx context.Context, year int) ([]models.Pick, error) {
	rows, err := q.db.QueryContext(ctx, listPicksForYearSQL, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks for year %d: %w", year, err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.PersonID, &p.Year, &p.PickedAt,
			&p.PersonDeceased); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

const listDraftedNamesSQL = `
SELECT pe.id, pe.name
FROM picks pk
JOIN people pe ON pe.id = pk.person_id
WHERE pk.year = $1
ORDER BY pk.picked_at`

// ListDraftedNamesForYear returns the person names already drafted in a
// year, for the same-year duplicate guard.
func (q *Queries) ListDraftedNamesForYear(ctx context.Context, year int) ([]NamedID, error) {
	return q.scanNamedIDs(ctx, listDraftedNamesSQL, year)
}

const listPeopleNamesSQL = `
SELECT id, name
FROM people
ORDER BY name`

// ListPeopleNames returns the all-time person registry, for the
// historical-reuse guard.
func (q *Queries) ListPeopleNames(ctx context.Context) ([]NamedID, error) {
	return q.scanNamedIDs(ctx, listPeopleNamesSQL)
}

func (q *Queries) scanNamedIDs(ctx context.Context, query string, args ...any) ([]NamedID, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var out []NamedID
	for rows.Next() {
		var n NamedID
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

const insertPersonSQL = `
INSERT INTO people (id, name, wiki_page)
VALUES ($1, $2, $3)`

func (q *Queries) InsertPerson(ctx context.Context, id uuid.UUID, name, wikiPage string) error {
	if _, err := q.db.ExecContext(ctx, insertPersonSQL, id, name, wikiPage); err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

const insertPickSQL = `
INSERT INTO picks (id, player_id, person_id, year, picked_at)
VALUES ($1, $2, $3, $4, $5)`

func (q *Queries) InsertPick(ctx context.Context, pick models.Pick) error {
	if _, err := q.db.ExecContext(ctx, insertPickSQL,
		pick.ID, pick.PlayerID, pick.PersonID, pick.Year, pick.PickedAt); err != nil {
		return fmt.Errorf("failed to insert pick: %w", err)
	}
	return nil
}

const insertOutboxEventSQL = `
INSERT INTO draft_outbox (id, event_type, payload)
VALUES ($1, $2, $3)`

func (q *Queries) InsertOutboxEvent(ctx context.Context, eventType string, payload []byte) error {
	if _, err := q.db.ExecContext(ctx, insertOutboxEventSQL, uuid.New(), eventType, payload); err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// Repository implements draft data access over Postgres.
type Repository struct {
	queries *Queries
	sqlDB   *sql.DB
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: New(sqlDB),
		sqlDB:   sqlDB,
	}
}

func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return r.queries.ListPlayers(ctx)
}

func (r *Repository) ListPicksForYear(ctx context.Context, year int) ([]models.Pick, error) {
	return r.queries.ListPicksForYear(ctx, year)
}

// InTransaction runs fn against queries bound to a single transaction.
// Any error from fn rolls everything back.
func (r *Repository) InTransaction(ctx context.Context, fn func(q PickQueries) error) error {
	return sqlutil.Run(ctx, r.sqlDB,
		func(tx *sql.Tx) *Queries { return New(tx) },
		func(q *Queries) error { return fn(q) },
	)
}
