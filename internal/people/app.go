package people

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/models"
)

// PeopleRepository defines what the app layer needs from the repository.
type PeopleRepository interface {
	GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error)
	ListPeople(ctx context.Context) ([]models.Person, error)
	UpdatePerson(ctx context.Context, id uuid.UUID, req UpdatePersonRequest) (*models.Person, error)
	RecordDeath(ctx context.Context, id uuid.UUID, deathDate time.Time, age int) (*models.Person, error)
}

// App handles person registry business logic.
type App struct {
	repo PeopleRepository
}

// NewApp creates a new people App.
func NewApp(repo PeopleRepository) *App {
	return &App{repo: repo}
}

// GetPerson retrieves a person by ID.
func (a *App) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	person, err := a.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPeople returns the all-time registry.
func (a *App) ListPeople(ctx context.Context) ([]models.Person, error) {
	people, err := a.repo.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// UpdatePerson applies an admin correction to name or wiki page.
func (a *App) UpdatePerson(ctx context.Context, id uuid.UUID, req UpdatePersonRequest) (*models.Person, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	person, err := a.repo.UpdatePerson(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	log.Info().Str("person_id", id.String()).Msg("person corrected")
	return person, nil
}

// RecordDeath logs a death. Already-deceased people are rejected so a
// second report cannot move the scoring date.
func (a *App) RecordDeath(ctx context.Context, id uuid.UUID, req RecordDeathRequest) (*models.Person, error) {
	if req.Age < 0 || req.Age > 130 {
		return nil, fmt.Errorf("implausible age at death: %d", req.Age)
	}

	existing, err := a.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("person %s not found", id)
	}
	if existing.Deceased() {
		return nil, fmt.Errorf("death already recorded for %s", existing.Name)
	}

	person, err := a.repo.RecordDeath(ctx, id, req.DeathDate.UTC(), req.Age)
	if err != nil {
		return nil, fmt.Errorf("failed to record death: %w", err)
	}

	log.Info().
		Str("person_id", id.String()).
		Str("name", person.Name).
		Time("death_date", req.DeathDate).
		Msg("death recorded")

	return person, nil
}
