package vetting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/services/sanctions"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

// Service orchestrates applicant vetting: it loads the applicant's
// data, runs the guidelines analysis and the sanctions screen, and
// persists the outcome.
type Service struct {
	repos    *repository.Repositories
	analyzer *Analyzer
	checker  *sanctions.Checker
	logger   *logger.Logger
}

// NewService creates a vetting service
func NewService(repos *repository.Repositories, analyzer *Analyzer, checker *sanctions.Checker, log *logger.Logger) *Service {
	return &Service{
		repos:    repos,
		analyzer: analyzer,
		checker:  checker,
		logger:   log.WithComponent("vetting-service"),
	}
}

// Analyzer returns the underlying guidelines analyzer
func (s *Service) Analyzer() *Analyzer {
	return s.analyzer
}

// LoadApplicant fetches an applicant with profiles and content attached
func (s *Service) LoadApplicant(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	applicant, err := s.repos.Applicants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if applicant.Profiles, err = s.repos.Profiles.ListByApplicant(ctx, id); err != nil {
		return nil, err
	}
	if applicant.Content, err = s.repos.Content.ListByApplicant(ctx, id); err != nil {
		return nil, err
	}

	return applicant, nil
}

// RunAnalysis vets an applicant and persists the result. Previous open
// flags are replaced; reviewed flags are preserved.
func (s *Service) RunAnalysis(ctx context.Context, applicantID uuid.UUID) (*models.AnalysisResult, error) {
	applicant, err := s.LoadApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	result := s.analyzer.AnalyzeApplicant(applicant)

	if _, err := s.repos.Analyses.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	if err := s.repos.Flags.ReplaceForAnalysis(ctx, result.ID, applicantID, result.Flags); err != nil {
		return nil, fmt.Errorf("failed to store flags: %w", err)
	}
	if err := s.repos.Applicants.UpdateStatus(ctx, applicantID, models.ApplicantStatusAnalyzed); err != nil {
		return nil, fmt.Errorf("failed to update applicant status: %w", err)
	}

	return result, nil
}

// RunSanctionsCheck screens an applicant's name against the sanctions
// lists and persists the result
func (s *Service) RunSanctionsCheck(ctx context.Context, applicantID uuid.UUID) (*models.SanctionsCheckResult, error) {
	applicant, err := s.repos.Applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	result := s.checker.CheckName(ctx, applicant.FullName, applicant.Country)
	result.ApplicantID = &applicant.ID

	if _, err := s.repos.Sanctions.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store sanctions check: %w", err)
	}

	return result, nil
}

// BuildReport assembles the full vetting report for an applicant from
// the most recent analysis and sanctions check
func (s *Service) BuildReport(ctx context.Context, applicantID uuid.UUID) (*models.VettingReport, error) {
	applicant, err := s.LoadApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	report := &models.VettingReport{
		Applicant:   applicant,
		GeneratedAt: time.Now().UTC(),
	}

	analysis, err := s.repos.Analyses.GetLatestByApplicant(ctx, applicantID)
	switch err {
	case nil:
		analysis.Flags, err = s.repos.Flags.ListByApplicant(ctx, applicantID)
		if err != nil {
			return nil, err
		}
		report.Analysis = analysis
	case repository.ErrNotFound:
		// No analysis yet; the report still carries applicant data
	default:
		return nil, err
	}

	check, err := s.repos.Sanctions.GetLatestByApplicant(ctx, applicantID)
	switch err {
	case nil:
		report.SanctionsCheck = check
	case repository.ErrNotFound:
	default:
		return nil, err
	}

	return report, nil
}
