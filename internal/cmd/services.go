package main

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/deadpool-app/deadpool/clients/arbiter_client"
	"github.com/deadpool-app/deadpool/internal/draft"
	"github.com/deadpool-app/deadpool/internal/gateway"
	"github.com/deadpool-app/deadpool/internal/httpapi"
	"github.com/deadpool-app/deadpool/internal/people"
	"github.com/deadpool-app/deadpool/internal/roster"
	"github.com/deadpool-app/deadpool/internal/score"
)

// Services holds the fully wired handler surface and the hub it broadcasts on.
type Services struct {
	Server *httpapi.Server
	Hub    *gateway.Hub
}

func setupServices(database *sql.DB) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → HTTP layer

	draftRepo := draft.NewRepository(database)
	draftApp := draft.NewApp(draftRepo, clockwork.NewRealClock())

	rosterRepo := roster.NewRepository(database)
	rosterApp := roster.NewApp(rosterRepo)

	peopleRepo := people.NewRepository(database)
	peopleApp := people.NewApp(peopleRepo)

	scoreRepo := score.NewRepository(database)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	scoreApp := score.NewApp(scoreRepo, rng)

	arbiter := arbiter_client.NewArbiterClient(
		getEnv("ARBITER_URL", "http://localhost:8501"),
		getEnv("ARBITER_TOKEN", ""),
	)

	hub := gateway.NewHub(gateway.DefaultConnectionConfig())

	return &Services{
		Server: httpapi.NewServer(draftApp, rosterApp, peopleApp, scoreApp, arbiter, hub),
		Hub:    hub,
	}
}
