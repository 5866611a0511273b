package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/services/sanctions"
	"grantvet/internal/domain/services/vetting"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

// SanctionsHandler handles sanctions screening endpoints
type SanctionsHandler struct {
	vetting *vetting.Service
	checker *sanctions.Checker
	logger  *logger.Logger
}

// NewSanctionsHandler creates a new sanctions handler
func NewSanctionsHandler(svc *vetting.Service, checker *sanctions.Checker, log *logger.Logger) *SanctionsHandler {
	return &SanctionsHandler{
		vetting: svc,
		checker: checker,
		logger:  log.WithComponent("sanctions-handler"),
	}
}

// CheckApplicant handles POST /api/v1/applicants/{id}/sanctions
func (h *SanctionsHandler) CheckApplicant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid applicant id")
		return
	}

	result, err := h.vetting.RunSanctionsCheck(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		h.logger.Error().Err(err).Str("applicant_id", id.String()).Msg("sanctions check failed")
		writeError(w, http.StatusInternalServerError, "sanctions check failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CheckName handles POST /api/v1/sanctions/check - ad-hoc screening of
// a name without a stored applicant
func (h *SanctionsHandler) CheckName(w http.ResponseWriter, r *http.Request) {
	var req models.SanctionsCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	result := h.checker.CheckName(r.Context(), req.Name, "")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":           result,
		"verification_url": h.checker.VerificationURL(req.Name),
	})
}
