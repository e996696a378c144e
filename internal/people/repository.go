package people

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deadpool-app/deadpool/internal/models"
	"github.com/deadpool-app/deadpool/internal/sqlutil"
)

// Repository implements person registry data access.
type Repository struct {
	sqlDB *sql.DB
}

// NewRepository creates a new people repository.
func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{sqlDB: sqlDB}
}

const personColumns = `id, name, wiki_page, birth_date, death_date, death_age`

const getPersonSQL = `
SELECT ` + personColumns + `
FROM people
WHERE id = $1`

// GetPerson retrieves a person by ID.
func (r *Repository) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	person, err := scanPerson(r.sqlDB.QueryRowContext(ctx, getPersonSQL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

const listPeopleSQL = `
SELECT ` + personColumns + `
FROM people
ORDER BY name`

// ListPeople returns the all-time registry.
func (r *Repository) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := r.sqlDB.QueryContext(ctx, listPeopleSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		var birth, death sql.NullTime
		var age sql.NullInt32
		if err := rows.Scan(&p.ID, &p.Name, &p.WikiPage, &birth, &death, &age); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.BirthDate = sqlutil.FromSqlTime(birth)
		p.DeathDate = sqlutil.FromSqlTime(death)
		p.DeathAge = sqlutil.FromSqlInt32(age)
		people = append(people, p)
	}
	return people, rows.Err()
}

const updatePersonSQL = `
UPDATE people
SET name      = COALESCE($2, name),
    wiki_page = COALESCE($3, wiki_page)
WHERE id = $1
RETURNING ` + personColumns

// UpdatePerson applies an admin correction.
func (r *Repository) UpdatePerson(ctx context.Context, id uuid.UUID, req UpdatePersonRequest) (*models.Person, error) {
	row := r.sqlDB.QueryRowContext(ctx, updatePersonSQL, id, req.Name, req.WikiPage)
	person, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}
	return person, nil
}

const recordDeathSQL = `
UPDATE people
SET death_date = $2, death_age = $3
WHERE id = $1
RETURNING ` + personColumns

// RecordDeath sets the death date and age at death.
func (r *Repository) RecordDeath(ctx context.Context, id uuid.UUID, deathDate time.Time, age int) (*models.Person, error) {
	row := r.sqlDB.QueryRowContext(ctx, recordDeathSQL, id, deathDate, age)
	person, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("failed to record death: %w", err)
	}
	return person, nil
}

func scanPerson(row *sql.Row) (*models.Person, error) {
	var p models.Person
	var birth, death sql.NullTime
	var age sql.NullInt32
	if err := row.Scan(&p.ID, &p.Name, &p.WikiPage, &birth, &death, &age); err != nil {
		return nil, err
	}
	p.BirthDate = sqlutil.FromSqlTime(birth)
	p.DeathDate = sqlutil.FromSqlTime(death)
	p.DeathAge = sqlutil.FromSqlInt32(age)
	return &p, nil
}
