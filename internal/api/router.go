package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"grantvet/internal/api/handlers"
	apimiddleware "grantvet/internal/api/middleware"
	"grantvet/internal/config"
	"grantvet/internal/infrastructure/cache"
	"grantvet/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   *config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg *config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.APIKeyAuth(r.config.Auth.APIKey))

		api.Route("/applicants", func(applicants chi.Router) {
			applicants.Post("/", r.handlers.Applicants.Create)
			applicants.Get("/", r.handlers.Applicants.List)
			applicants.Get("/{id}", r.handlers.Applicants.Get)
			applicants.Put("/{id}", r.handlers.Applicants.Update)
			applicants.Patch("/{id}/status", r.handlers.Applicants.UpdateStatus)
			applicants.Delete("/{id}", r.handlers.Applicants.Delete)

			applicants.Post("/{id}/content", r.handlers.Applicants.AddContent)
			applicants.Post("/{id}/profiles", r.handlers.Applicants.AddProfile)
			applicants.Get("/{id}/flags", r.handlers.Applicants.Flags)

			applicants.Post("/{id}/analyze", r.handlers.Analysis.Analyze)
			applicants.Get("/{id}/report", r.handlers.Analysis.Report)
			applicants.Post("/{id}/sanctions", r.handlers.Sanctions.CheckApplicant)
		})

		api.Post("/analyze/text", r.handlers.Analysis.AnalyzeText)
		api.Post("/sanctions/check", r.handlers.Sanctions.CheckName)
		api.Patch("/flags/{id}", r.handlers.Analysis.ReviewFlag)
		api.Get("/guidelines", r.handlers.Analysis.Guidelines)
		api.Get("/stats", r.handlers.Stats.Get)
	})

	return router
}
