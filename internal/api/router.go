package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dcastano/jobtrackr-be/internal/api/handlers"
	"github.com/dcastano/jobtrackr-be/internal/auth"
	"github.com/dcastano/jobtrackr-be/internal/services"
	"github.com/dcastano/jobtrackr-be/internal/websocket"
)

// Deps bundles everything the router needs.
type Deps struct {
	Hub        *websocket.Hub
	Users      services.UserServiceProvider
	Metrics    services.MetricServiceProvider
	Jobs       services.JobServiceProvider
	Challenges services.ChallengeServiceProvider
	Prep       services.PrepServiceProvider
	Dashboard  services.DashboardServiceProvider
	Events     services.EventServiceProvider
	JWTSecret  []byte
	ClientURL  string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWTSecret)
	metricHandler := handlers.NewMetricHandler(deps.Metrics)
	jobHandler := handlers.NewJobHandler(deps.Jobs, deps.Dashboard)
	challengeHandler := handlers.NewChallengeHandler(deps.Challenges)
	prepHandler := handlers.NewPrepHandler(deps.Prep, deps.Dashboard)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)
	eventHandler := handlers.NewEventHandler(deps.Events)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.ClientURL)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok","message":"Server is running"}`))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a verified token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.JWTSecret))

			r.Get("/ws", wsHandler.Serve)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/metrics", func(r chi.Router) {
				r.Get("/", metricHandler.GetAll)
				r.Post("/", metricHandler.Create)
				r.Get("/dashboard/summary", dashboardHandler.Summary)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", metricHandler.Get)
					r.Put("/", metricHandler.Update)
					r.Delete("/", metricHandler.Delete)
					r.Post("/logs", metricHandler.AddLog)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobHandler.GetAll)
				r.Post("/", jobHandler.Create)
				r.Get("/stats/summary", jobHandler.Stats)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", jobHandler.Get)
					r.Put("/", jobHandler.Update)
					r.Delete("/", jobHandler.Delete)
				})
			})

			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", challengeHandler.GetAll)
				r.Post("/", challengeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", challengeHandler.Get)
					r.Put("/", challengeHandler.Update)
					r.Delete("/", challengeHandler.Delete)
					r.Put("/progress", challengeHandler.AddProgress)
				})
			})

			r.Route("/prep", func(r chi.Router) {
				r.Get("/", prepHandler.GetAll)
				r.Post("/", prepHandler.Create)
				r.Get("/stats/summary", prepHandler.Stats)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", prepHandler.Get)
					r.Put("/", prepHandler.Update)
					r.Delete("/", prepHandler.Delete)
				})
			})
		})
	})

	return r
}
