package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/sports-portal/docs"
	"github.com/Dosada05/sports-portal/handlers"
	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/services"
)

type Handlers struct {
	Match     *handlers.MatchHandler
	Standings *handlers.StandingsHandler
	Team      *handlers.TeamHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, auth *middleware.Authenticator, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket без авторизации: зрители только читают
	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Get("/standings/{competition}", h.Standings.GetStandings)

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Get("/managed", h.Match.ListManagedMatches)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.Authorize(services.RoleAdmin))
				r.Post("/", h.Match.CreateMatch)
				r.Post("/fixtures", h.Match.CreateLeagueFixtures)
			})

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", h.Match.GetMatch)

				r.Group(func(r chi.Router) {
					r.Use(auth.Authenticate)
					r.Patch("/", h.Match.UpdateMatchDetails)
					r.Post("/score", h.Match.ApplyScoreAction)
					r.Post("/commentary", h.Match.AddCommentary)
					r.Delete("/commentary/{commentaryID}", h.Match.DeleteCommentary)
					r.Patch("/status", h.Match.UpdateStatus)
				})

				r.Group(func(r chi.Router) {
					r.Use(auth.Authenticate)
					r.Use(middleware.Authorize(services.RoleAdmin))
					r.Delete("/", h.Match.DeleteMatch)
				})
			})
		})

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/", h.Team.GetTeam)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.Authorize(services.RoleAdmin))
				r.Put("/members", h.Team.UpdateMembers)
				r.Put("/logo", h.Team.UploadLogo)
			})
		})
	})
}
