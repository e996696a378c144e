package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes builds the full route tree. Everything under /api requires a
// bearer token except registration; admin routes additionally check the
// admin role.
func SetupRoutes(s *Server, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.Healthz)

	r.Route("/api", func(r chi.Router) {
		// Registration is open so new players can join before they can log in.
		r.Post("/players", s.RegisterPlayer)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(jwtSecret))

			r.Get("/draft/next", s.NextDrafter)
			r.Post("/draft/picks", s.SubmitPick)
			r.Get("/picks", s.ListPicks)
			r.Get("/leaderboard", s.Leaderboard)
			r.Get("/people", s.ListPeople)
			r.Get("/players/{id}", s.GetPlayer)
			r.Put("/players/{id}", s.UpdatePlayer)
			r.Post("/arbiter", s.AskArbiter)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Get("/players", s.ListPlayers)
				r.Get("/draft/order", s.DraftOrder)
				r.Get("/gateway/stats", s.GatewayStats)
				r.Put("/people/{id}", s.UpdatePerson)
				r.Post("/people/{id}/death", s.RecordDeath)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(jwtSecret))
		r.Get("/ws", s.LiveFeed)
	})

	return r
}
