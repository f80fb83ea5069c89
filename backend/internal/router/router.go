package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/msgboard/backend/internal/setup"
	mw "github.com/itchan-dev/msgboard/shared/middleware"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
	rl "github.com/itchan-dev/msgboard/shared/middleware/ratelimiter"
)

// burst of posts one client may send before the per second rate applies
const createBurst = 5

// New builds the http routes. Creating threads and replies is rate limited per
// client ip when create_rate_per_second is set.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(cfg.HTTPS, mw.ApiCSP))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	limitCreate := func(next http.HandlerFunc) http.Handler { return next }
	if cfg.CreateRatePerSecond > 0 {
		limiter := rl.New(cfg.CreateRatePerSecond, createBurst, time.Hour)
		limitCreate = func(next http.HandlerFunc) http.Handler {
			return mw.RateLimit(limiter, mw.GetIP)(next)
		}
	}

	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Method(http.MethodPost, "/", limitCreate(h.CreateThread))
		r.Get("/", h.GetThreads)
		r.Put("/", h.ReportThread)
		r.Delete("/", h.DeleteThread)
	})
	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Method(http.MethodPost, "/", limitCreate(h.CreateReply))
		r.Get("/", h.GetReplies)
		r.Put("/", h.ReportReply)
		r.Delete("/", h.DeleteReply)
	})

	return r
}
