package score

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ScoreRepository defines what the app layer needs from the repository.
type ScoreRepository interface {
	ListEntriesForYear(ctx context.Context, year int) ([]Entry, error)
	ListSeedInputs(ctx context.Context) ([]SeedInput, error)
}

// App handles leaderboard and draft-order computation. Standings are
// recomputed from the ledger on every call; at tens of players and
// hundreds of picks a year there is nothing worth caching.
type App struct {
	repo ScoreRepository
	rng  *rand.Rand
}

// NewApp creates a new score App. rng drives the new-player shuffle in
// draft-order computation; tests pass a seeded source.
func NewApp(repo ScoreRepository, rng *rand.Rand) *App {
	return &App{repo: repo, rng: rng}
}

// Leaderboard returns the scored standings for a year.
func (a *App) Leaderboard(ctx context.Context, year int) ([]PlayerScore, error) {
	entries, err := a.repo.ListEntriesForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return ComputeStandings(entries), nil
}

// NextSeasonOrder computes the seeds for the season after year, weighing
// prior seed against prior score.
func (a *App) NextSeasonOrder(ctx context.Context, year int) ([]SeedResult, error) {
	inputs, err := a.repo.ListSeedInputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed inputs: %w", err)
	}

	standings, err := a.Leaderboard(ctx, year)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]int, len(standings))
	for _, s := range standings {
		totals[s.PlayerID] = s.Total
	}
	for i := range inputs {
		inputs[i].Score = totals[inputs[i].PlayerID]
	}

	return ComputeDraftOrder(inputs, a.rng), nil
}
