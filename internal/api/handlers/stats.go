package handlers

import (
	"net/http"
	"time"

	"grantvet/internal/domain/models"
	"grantvet/internal/infrastructure/cache"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

const statsCacheKey = "stats"
const statsCacheTTL = time.Minute

// StatsHandler serves aggregate statistics over applicants and flags
type StatsHandler struct {
	repos  *repository.Repositories
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(repos *repository.Repositories, c *cache.RedisCache, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		repos:  repos,
		cache:  c,
		logger: log.WithComponent("stats-handler"),
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		var cached models.Stats
		if found, err := h.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil && found {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	byStatus, err := h.repos.Applicants.CountByStatus(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	bySeverity, err := h.repos.Flags.CountBySeverity(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	byCategory, err := h.repos.Flags.CountByCategory(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	totalFlags := 0
	for _, n := range bySeverity {
		totalFlags += n
	}

	byRecommendation, err := h.repos.Analyses.CountLatestByRecommendation(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	avgScore, err := h.repos.Analyses.AverageLatestRiskScore(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	stats := models.Stats{
		TotalApplicants:  total,
		ByStatus:         byStatus,
		ByRecommendation: byRecommendation,
		TotalFlags:       totalFlags,
		FlagsBySeverity:  bySeverity,
		FlagsByCategory:  byCategory,
		AverageRiskScore: avgScore,
		GeneratedAt:      time.Now().UTC(),
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("failed to cache stats")
		}
	}

	writeJSON(w, http.StatusOK, stats)
}
