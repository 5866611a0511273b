package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantvet/internal/domain/models"
)

// AnalysisRepository handles analysis result persistence
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// Create stores an analysis result (flags are stored separately)
func (r *AnalysisRepository) Create(ctx context.Context, a *models.AnalysisResult) (*models.AnalysisResult, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query := `
		INSERT INTO analyses (
			id, applicant_id, total_content_items, flags_count,
			risk_score, risk_level, recommendation, summary, analyzed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.ApplicantID, a.TotalContentItems, a.FlagsCount,
		a.RiskScore, a.RiskLevel, a.Recommendation, a.Summary, a.AnalyzedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	return a, nil
}

// GetLatestByApplicant retrieves the most recent analysis for an applicant
func (r *AnalysisRepository) GetLatestByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.AnalysisResult, error) {
	query := `
		SELECT id, applicant_id, total_content_items, flags_count,
			   risk_score, risk_level, recommendation, summary, analyzed_at
		FROM analyses
		WHERE applicant_id = $1
		ORDER BY analyzed_at DESC
		LIMIT 1`

	var a models.AnalysisResult
	err := r.pool.QueryRow(ctx, query, applicantID).Scan(
		&a.ID, &a.ApplicantID, &a.TotalContentItems, &a.FlagsCount,
		&a.RiskScore, &a.RiskLevel, &a.Recommendation, &a.Summary, &a.AnalyzedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return &a, nil
}

// CountLatestByRecommendation returns, per recommendation, how many
// applicants' most recent analysis produced it
func (r *AnalysisRepository) CountLatestByRecommendation(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT recommendation, COUNT(*)
		FROM (
			SELECT DISTINCT ON (applicant_id) recommendation
			FROM analyses
			ORDER BY applicant_id, analyzed_at DESC
		) latest
		GROUP BY recommendation`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count recommendations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rec string
		var n int
		if err := rows.Scan(&rec, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[rec] = n
	}

	return counts, rows.Err()
}

// AverageLatestRiskScore returns the mean risk score over each
// applicant's most recent analysis
func (r *AnalysisRepository) AverageLatestRiskScore(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(AVG(risk_score), 0)
		FROM (
			SELECT DISTINCT ON (applicant_id) risk_score
			FROM analyses
			ORDER BY applicant_id, analyzed_at DESC
		) latest`

	var avg float64
	if err := r.pool.QueryRow(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average risk scores: %w", err)
	}
	return avg, nil
}
