// Package router wires every HTTP route to its handler and middleware.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/aviationlaunchpad/launchpad/internal/handler"
	mw "github.com/aviationlaunchpad/launchpad/internal/middleware"
	"github.com/aviationlaunchpad/launchpad/internal/middleware/metrics"
	"github.com/aviationlaunchpad/launchpad/internal/setup"
)

// New builds the chi router with all routes and middleware attached.
func New(deps *setup.Dependencies) chi.Router {
	cfg := deps.Config
	h := deps.Handler

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(cfg.Public.SecureCookies))

	origins := cfg.Public.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handler.Health)
	r.Get("/readyz", handler.Ready(deps.StorePinger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Credential endpoints get their own per-IP buckets so brute force on
	// one of them never starves the others.
	registerLimiter := mw.NewRateLimiter(rate.Every(time.Second), 3, time.Hour)
	loginLimiter := mw.NewRateLimiter(rate.Every(time.Second), 5, time.Hour)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(registerLimiter.ByIP()).Post("/register", h.Register)
			r.With(loginLimiter.ByIP()).Post("/login", h.Login)
			r.With(loginLimiter.ByIP()).Post("/login/password", h.LoginPassword)
			r.Post("/logout", h.Logout)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.NeedAuth())
				r.Get("/me", h.Me)
			})
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/training", h.TrainingIndex)
			r.Get("/training/{module}", h.TrainingModule)
			r.Get("/events", h.Events)
			r.Get("/partners", h.Partners)
			r.Get("/careers", h.Careers)
		})

		r.Route("/forum", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.NeedAuth())

			r.Get("/events", h.ForumEvents)

			r.Route("/threads", func(r chi.Router) {
				r.Get("/", h.ListThreads)
				r.Post("/", h.CreateThread)

				r.Route("/{thread}", func(r chi.Router) {
					r.Get("/", h.GetThread)
					r.Put("/", h.UpdateThread)
					r.Delete("/", h.DeleteThread)
					r.Post("/like", h.LikeThread)
					r.Post("/replies", h.CreateReply)
				})
			})
		})
	})

	return r
}
