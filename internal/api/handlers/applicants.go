package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

// ApplicantsHandler handles applicant CRUD endpoints
type ApplicantsHandler struct {
	repos  *repository.Repositories
	logger *logger.Logger
}

// NewApplicantsHandler creates a new applicants handler
func NewApplicantsHandler(repos *repository.Repositories, log *logger.Logger) *ApplicantsHandler {
	return &ApplicantsHandler{
		repos:  repos,
		logger: log.WithComponent("applicants-handler"),
	}
}

// Create handles POST /api/v1/applicants
func (h *ApplicantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.FullName) == "" {
		writeError(w, http.StatusBadRequest, "full_name is required")
		return
	}

	applicant := &models.Applicant{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.TrimSpace(req.Email),
		Country:     strings.TrimSpace(req.Country),
		Institution: strings.TrimSpace(req.Institution),
		Bio:         req.Bio,
	}

	created, err := h.repos.Applicants.Create(r.Context(), applicant)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create applicant")
		writeError(w, http.StatusInternalServerError, "failed to create applicant")
		return
	}

	h.logger.Info().Str("applicant_id", created.ID.String()).Msg("applicant created")
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/v1/applicants
func (h *ApplicantsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	applicants, err := h.repos.Applicants.List(r.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list applicants")
		writeError(w, http.StatusInternalServerError, "failed to list applicants")
		return
	}

	if applicants == nil {
		applicants = []*models.Applicant{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applicants": applicants,
		"count":      len(applicants),
	})
}

// Get handles GET /api/v1/applicants/{id}
func (h *ApplicantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	applicant, err := h.repos.Applicants.GetByID(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err, "failed to get applicant")
		return
	}

	applicant.Profiles, err = h.repos.Profiles.ListByApplicant(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load profiles")
		writeError(w, http.StatusInternalServerError, "failed to get applicant")
		return
	}
	applicant.Content, err = h.repos.Content.ListByApplicant(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load content")
		writeError(w, http.StatusInternalServerError, "failed to get applicant")
		return
	}

	writeJSON(w, http.StatusOK, applicant)
}

// Update handles PUT /api/v1/applicants/{id}
func (h *ApplicantsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	var req models.CreateApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		writeError(w, http.StatusBadRequest, "full_name is required")
		return
	}

	applicant, err := h.repos.Applicants.GetByID(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err, "failed to update applicant")
		return
	}

	applicant.FullName = strings.TrimSpace(req.FullName)
	applicant.Email = strings.TrimSpace(req.Email)
	applicant.Country = strings.TrimSpace(req.Country)
	applicant.Institution = strings.TrimSpace(req.Institution)
	applicant.Bio = req.Bio

	updated, err := h.repos.Applicants.Update(r.Context(), applicant)
	if err != nil {
		h.notFoundOrError(w, err, "failed to update applicant")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateStatus handles PATCH /api/v1/applicants/{id}/status - the
// reviewer's final decision on an applicant
func (h *ApplicantsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case models.ApplicantStatusPending, models.ApplicantStatusAnalyzed,
		models.ApplicantStatusApproved, models.ApplicantStatusRejected:
	default:
		writeError(w, http.StatusBadRequest, "status must be pending, analyzed, approved, or rejected")
		return
	}

	if err := h.repos.Applicants.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.notFoundOrError(w, err, "failed to update status")
		return
	}

	applicant, err := h.repos.Applicants.GetByID(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err, "failed to update status")
		return
	}

	h.logger.Info().
		Str("applicant_id", id.String()).
		Str("status", req.Status).
		Msg("applicant status updated")
	writeJSON(w, http.StatusOK, applicant)
}

// Delete handles DELETE /api/v1/applicants/{id}
func (h *ApplicantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	if err := h.repos.Applicants.Delete(r.Context(), id); err != nil {
		h.notFoundOrError(w, err, "failed to delete applicant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddContent handles POST /api/v1/applicants/{id}/content
func (h *ApplicantsHandler) AddContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	var req models.AddContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if _, err := h.repos.Applicants.GetByID(r.Context(), id); err != nil {
		h.notFoundOrError(w, err, "failed to add content")
		return
	}

	item := &models.ContentItem{
		ApplicantID: id,
		Source:      req.Source,
		URL:         req.URL,
		Text:        req.Text,
		PublishedAt: req.PublishedAt,
	}

	created, err := h.repos.Content.Create(r.Context(), item)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to add content")
		writeError(w, http.StatusInternalServerError, "failed to add content")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// AddProfile handles POST /api/v1/applicants/{id}/profiles
func (h *ApplicantsHandler) AddProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	var req models.AddProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Platform == "" {
		writeError(w, http.StatusBadRequest, "platform is required")
		return
	}

	if _, err := h.repos.Applicants.GetByID(r.Context(), id); err != nil {
		h.notFoundOrError(w, err, "failed to add profile")
		return
	}

	profile := &models.SocialProfile{
		ApplicantID: id,
		Platform:    req.Platform,
		Username:    req.Username,
		URL:         req.URL,
		Bio:         req.Bio,
	}

	created, err := h.repos.Profiles.Create(r.Context(), profile)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to add profile")
		writeError(w, http.StatusInternalServerError, "failed to add profile")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Flags handles GET /api/v1/applicants/{id}/flags
func (h *ApplicantsHandler) Flags(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicantID(w, r)
	if !ok {
		return
	}

	flags, err := h.repos.Flags.ListByApplicant(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list flags")
		writeError(w, http.StatusInternalServerError, "failed to list flags")
		return
	}

	if flags == nil {
		flags = []models.Flag{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flags": flags,
		"count": len(flags),
	})
}

func (h *ApplicantsHandler) applicantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid applicant id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ApplicantsHandler) notFoundOrError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}
	h.logger.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
