package handlers

import (
	"encoding/json"
	"net/http"

	"grantvet/internal/config"
	"grantvet/internal/domain/services/sanctions"
	"grantvet/internal/domain/services/vetting"
	"grantvet/internal/infrastructure/cache"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health     *HealthHandler
	Applicants *ApplicantsHandler
	Analysis   *AnalysisHandler
	Sanctions  *SanctionsHandler
	Stats      *StatsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Config  *config.Config
	Vetting *vetting.Service
	Checker *sanctions.Checker
	Cache   *cache.RedisCache
	Repos   *repository.Repositories
	Logger  *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(deps.Cache, deps.Repos, deps.Config.App.Version, deps.Logger),
		Applicants: NewApplicantsHandler(deps.Repos, deps.Logger),
		Analysis:   NewAnalysisHandler(deps.Vetting, deps.Repos, deps.Logger),
		Sanctions:  NewSanctionsHandler(deps.Vetting, deps.Checker, deps.Logger),
		Stats:      NewStatsHandler(deps.Repos, deps.Cache, deps.Logger),
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
