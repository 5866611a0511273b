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

// FlagRepository handles flag persistence
type FlagRepository struct {
	pool *pgxpool.Pool
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(pool *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{pool: pool}
}

// ReplaceForAnalysis stores the flags of a fresh analysis, replacing
// any open flags from previous runs for the same applicant. Reviewed
// flags are kept.
func (r *FlagRepository) ReplaceForAnalysis(ctx context.Context, analysisID uuid.UUID, applicantID uuid.UUID, flags []models.Flag) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM flags WHERE applicant_id = $1 AND status = $2`,
			applicantID, models.FlagStatusOpen,
		)
		if err != nil {
			return fmt.Errorf("failed to clear open flags: %w", err)
		}

		for i := range flags {
			f := &flags[i]
			if f.ID == uuid.Nil {
				f.ID = uuid.New()
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO flags (
					id, applicant_id, analysis_id, category, severity, title,
					description, evidence_snippet, matched_keywords,
					guideline_reference, content_source, content_url,
					published_at, status, review_note, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
				f.ID, f.ApplicantID, analysisID, f.Category, f.Severity, f.Title,
				f.Description, f.EvidenceSnippet, f.MatchedKeywords,
				f.GuidelineReference, f.ContentSource, f.ContentURL,
				f.PublishedAt, f.Status, f.ReviewNote, f.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert flag: %w", err)
			}
		}
		return nil
	})
}

// ListByApplicant retrieves flags for an applicant, most severe first
func (r *FlagRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Flag, error) {
	query := `
		SELECT id, applicant_id, category, severity, title, description,
			   evidence_snippet, matched_keywords, guideline_reference,
			   content_source, content_url, published_at, status,
			   review_note, created_at
		FROM flags
		WHERE applicant_id = $1
		ORDER BY array_position(ARRAY['critical','high','medium','low'], severity), created_at`

	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	defer rows.Close()

	return scanFlags(rows)
}

// GetByID retrieves a single flag
func (r *FlagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	query := `
		SELECT id, applicant_id, category, severity, title, description,
			   evidence_snippet, matched_keywords, guideline_reference,
			   content_source, content_url, published_at, status,
			   review_note, created_at
		FROM flags
		WHERE id = $1`

	var f models.Flag
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.ApplicantID, &f.Category, &f.Severity, &f.Title,
		&f.Description, &f.EvidenceSnippet, &f.MatchedKeywords,
		&f.GuidelineReference, &f.ContentSource, &f.ContentURL,
		&f.PublishedAt, &f.Status, &f.ReviewNote, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}

	return &f, nil
}

// UpdateReview sets the review status and note of a flag
func (r *FlagRepository) UpdateReview(ctx context.Context, id uuid.UUID, status, note string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE flags SET status = $2, review_note = $3 WHERE id = $1`,
		id, status, note,
	)
	if err != nil {
		return fmt.Errorf("failed to update flag review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBySeverity returns flag counts grouped by severity
func (r *FlagRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, `SELECT severity, COUNT(*) FROM flags GROUP BY severity`)
}

// CountByCategory returns flag counts grouped by category
func (r *FlagRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, `SELECT category, COUNT(*) FROM flags GROUP BY category`)
}

func (r *FlagRepository) countGrouped(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count flags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[key] = n
	}

	return counts, rows.Err()
}

func scanFlags(rows pgx.Rows) ([]models.Flag, error) {
	var flags []models.Flag
	for rows.Next() {
		var f models.Flag
		if err := rows.Scan(
			&f.ID, &f.ApplicantID, &f.Category, &f.Severity, &f.Title,
			&f.Description, &f.EvidenceSnippet, &f.MatchedKeywords,
			&f.GuidelineReference, &f.ContentSource, &f.ContentURL,
			&f.PublishedAt, &f.Status, &f.ReviewNote, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flag: %w", err)
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}
