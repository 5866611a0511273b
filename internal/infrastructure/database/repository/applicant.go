package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantvet/internal/domain/models"
)

// ApplicantRepository handles applicant persistence
type ApplicantRepository struct {
	pool *pgxpool.Pool
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(pool *pgxpool.Pool) *ApplicantRepository {
	return &ApplicantRepository{pool: pool}
}

// Create inserts a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.ApplicantStatusPending
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO applicants (
			id, full_name, email, country, institution, bio, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.FullName, a.Email, a.Country, a.Institution, a.Bio, a.Status,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create applicant: %w", err)
	}

	return a, nil
}

// GetByID retrieves an applicant by ID
func (r *ApplicantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	query := `
		SELECT id, full_name, email, country, institution, bio, status,
			   created_at, updated_at
		FROM applicants
		WHERE id = $1`

	var a models.Applicant
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.FullName, &a.Email, &a.Country, &a.Institution, &a.Bio,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	return &a, nil
}

// List retrieves applicants, optionally filtered by status
func (r *ApplicantRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.Applicant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, full_name, email, country, institution, bio, status,
			   created_at, updated_at
		FROM applicants
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(
			&a.ID, &a.FullName, &a.Email, &a.Country, &a.Institution, &a.Bio,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, &a)
	}

	return applicants, rows.Err()
}

// Update rewrites an applicant's profile fields
func (r *ApplicantRepository) Update(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE applicants
		SET full_name = $2, email = $3, country = $4, institution = $5,
			bio = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.FullName, a.Email, a.Country, a.Institution, a.Bio, a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return a, nil
}

// UpdateStatus sets the vetting status of an applicant
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applicants SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update applicant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an applicant and, via cascade, all attached rows
func (r *ApplicantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns applicant counts grouped by status
func (r *ApplicantRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM applicants GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}
