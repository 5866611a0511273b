package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantvet/internal/domain/models"
)

// SanctionsRepository handles sanctions check persistence
type SanctionsRepository struct {
	pool *pgxpool.Pool
}

// NewSanctionsRepository creates a new sanctions repository
func NewSanctionsRepository(pool *pgxpool.Pool) *SanctionsRepository {
	return &SanctionsRepository{pool: pool}
}

// Create stores a sanctions check result
func (r *SanctionsRepository) Create(ctx context.Context, c *models.SanctionsCheckResult) (*models.SanctionsCheckResult, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	matches, err := json.Marshal(c.Matches)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matches: %w", err)
	}
	if c.Matches == nil {
		matches = []byte("[]")
	}

	query := `
		INSERT INTO sanctions_checks (
			id, applicant_id, query, is_match, matches, source, error, checked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		c.ID, c.ApplicantID, c.Query, c.IsMatch, matches, c.Source, c.Error, c.CheckedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sanctions check: %w", err)
	}

	return c, nil
}

// GetLatestByApplicant retrieves the most recent check for an applicant
func (r *SanctionsRepository) GetLatestByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.SanctionsCheckResult, error) {
	query := `
		SELECT id, applicant_id, query, is_match, matches, source, error, checked_at
		FROM sanctions_checks
		WHERE applicant_id = $1
		ORDER BY checked_at DESC
		LIMIT 1`

	var c models.SanctionsCheckResult
	var matches []byte
	err := r.pool.QueryRow(ctx, query, applicantID).Scan(
		&c.ID, &c.ApplicantID, &c.Query, &c.IsMatch, &matches,
		&c.Source, &c.Error, &c.CheckedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sanctions check: %w", err)
	}

	if err := json.Unmarshal(matches, &c.Matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	return &c, nil
}
