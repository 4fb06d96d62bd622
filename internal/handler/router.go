package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"hackadmin/internal/container"
	"hackadmin/internal/middleware"
)

// NewRouter configures the console API
func NewRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()
	s := c.Services

	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins), log))
	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := NewHealthHandler(c)
	authHandler := NewAuthHandler(s.Auth, log)
	rosterHandler := NewRosterHandler(s.Teams, s.Users, log)
	assignmentHandler := NewAssignmentHandler(s.Assignments, s.Judges, s.Unassigned, log)
	evaluationHandler := NewEvaluationHandler(s.Evaluations, log)
	panelHandler := NewPanelHandler(s.Panels, log)
	adminHandler := NewAdminHandler(s.Dashboard, s.Settings, s.Audit, log)
	pageHandler := NewPageHandler(s.Pages, log)

	r.Get("/health", healthHandler.Check)

	r.Route("/api/console", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.Auth, log))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Route("/teams/{segment}", func(r chi.Router) {
				r.Get("/", rosterHandler.ListTeams)
				r.Get("/export.csv", rosterHandler.ExportTeams)
			})
			r.Get("/team/{id}", rosterHandler.GetTeam)
			r.Post("/team/{id}/qualify", evaluationHandler.MarkQualified)

			r.Get("/users", rosterHandler.ListUsers)
			r.Get("/users/export.csv", rosterHandler.ExportUsers)

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/teams", assignmentHandler.Teams)
				r.Post("/", assignmentHandler.Assign)
				r.Get("/export.csv", assignmentHandler.Export)
			})
			r.Get("/unassigned", assignmentHandler.Unassigned)

			r.Get("/judges", assignmentHandler.ListJudges)
			r.Post("/judges", assignmentHandler.CreateJudge)

			r.Get("/results", evaluationHandler.Results)
			r.Delete("/evaluations/{id}", evaluationHandler.DeleteEvaluation)

			r.Route("/panels", func(r chi.Router) {
				r.Get("/", panelHandler.List)
				r.Get("/{id}", panelHandler.Details)
				r.Get("/{id}/export.csv", panelHandler.Export)
			})

			r.Get("/dashboard", adminHandler.Dashboard)
			r.Get("/settings", adminHandler.Settings)
			r.Put("/settings", adminHandler.UpdateSettings)
			r.Put("/registration", adminHandler.SetRegistration)
			r.Get("/audit", adminHandler.Audit)

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", pageHandler.List)
				r.Get("/{page}", pageHandler.Snapshot)
				r.Put("/{page}/filters", pageHandler.SetFilters)
				r.Post("/{page}/refresh", pageHandler.Refresh)
				r.Delete("/{page}", pageHandler.Close)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
