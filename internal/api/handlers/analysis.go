package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/services/vetting"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

// AnalysisHandler handles analysis and flag review endpoints
type AnalysisHandler struct {
	vetting *vetting.Service
	repos   *repository.Repositories
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(svc *vetting.Service, repos *repository.Repositories, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		vetting: svc,
		repos:   repos,
		logger:  log.WithComponent("analysis-handler"),
	}
}

// Analyze handles POST /api/v1/applicants/{id}/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid applicant id")
		return
	}

	result, err := h.vetting.RunAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		h.logger.Error().Err(err).Str("applicant_id", id.String()).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Report handles GET /api/v1/applicants/{id}/report
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid applicant id")
		return
	}

	report, err := h.vetting.BuildReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		h.logger.Error().Err(err).Str("applicant_id", id.String()).Msg("report generation failed")
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// AnalyzeText handles POST /api/v1/analyze/text - ad-hoc scanning of a
// single piece of text without a stored applicant
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req models.TextAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	detector := h.vetting.Analyzer().Detector()

	matches := detector.AnalyzeText(req.Text)

	strict := h.vetting.Analyzer().StrictMode()
	if req.Strict != nil {
		strict = *req.Strict
	}
	if strict {
		matches = append(matches, detector.AuthoritarianMentions(req.Text)...)
	}

	resp := models.TextAnalysisResponse{
		Matches:       make([]models.TextMatch, len(matches)),
		SeverityScore: vetting.SeverityScore(matches),
	}
	for i, m := range matches {
		resp.Matches[i] = models.TextMatch{
			Keyword:  m.Keyword,
			Category: m.Category,
			Severity: m.Severity,
			Context:  m.Context,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Guidelines handles GET /api/v1/guidelines
func (h *AnalysisHandler) Guidelines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, vetting.Guidelines)
}

// ReviewFlag handles PATCH /api/v1/flags/{id}
func (h *AnalysisHandler) ReviewFlag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid flag id")
		return
	}

	var req models.ReviewFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case models.FlagStatusOpen, models.FlagStatusConfirmed, models.FlagStatusDismissed:
	default:
		writeError(w, http.StatusBadRequest, "status must be open, confirmed, or dismissed")
		return
	}

	if err := h.repos.Flags.UpdateReview(r.Context(), id, req.Status, req.Note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "flag not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to update flag")
		writeError(w, http.StatusInternalServerError, "failed to update flag")
		return
	}

	flag, err := h.repos.Flags.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to reload flag")
		writeError(w, http.StatusInternalServerError, "failed to update flag")
		return
	}

	writeJSON(w, http.StatusOK, flag)
}
