package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantvet/internal/domain/models"
)

// ContentRepository handles content item persistence
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new content repository
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// Create inserts a content item
func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) (*models.ContentItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Source == "" {
		item.Source = "unknown"
	}
	item.CollectedAt = time.Now().UTC()

	query := `
		INSERT INTO content_items (
			id, applicant_id, source, url, text_content, published_at, collected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.ApplicantID, item.Source, item.URL, item.Text,
		item.PublishedAt, item.CollectedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}

	return item, nil
}

// ListByApplicant retrieves all content for an applicant
func (r *ContentRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.ContentItem, error) {
	query := `
		SELECT id, applicant_id, source, url, text_content, published_at, collected_at
		FROM content_items
		WHERE applicant_id = $1
		ORDER BY collected_at`

	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := rows.Scan(
			&item.ID, &item.ApplicantID, &item.Source, &item.URL, &item.Text,
			&item.PublishedAt, &item.CollectedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ProfileRepository handles social profile persistence
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts a social profile
func (r *ProfileRepository) Create(ctx context.Context, p *models.SocialProfile) (*models.SocialProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO social_profiles (
			id, applicant_id, platform, username, url, bio, verified, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ApplicantID, p.Platform, p.Username, p.URL, p.Bio,
		p.Verified, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// ListByApplicant retrieves all profiles for an applicant
func (r *ProfileRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.SocialProfile, error) {
	query := `
		SELECT id, applicant_id, platform, username, url, bio, verified, created_at
		FROM social_profiles
		WHERE applicant_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.SocialProfile
	for rows.Next() {
		var p models.SocialProfile
		if err := rows.Scan(
			&p.ID, &p.ApplicantID, &p.Platform, &p.Username, &p.URL, &p.Bio,
			&p.Verified, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}
