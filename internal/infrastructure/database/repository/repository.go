// Package repository implements PostgreSQL persistence for applicants,
// their content, analysis results, flags, and sanctions checks.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Repositories bundles all repositories sharing one pool
type Repositories struct {
	Applicants *ApplicantRepository
	Profiles   *ProfileRepository
	Content    *ContentRepository
	Flags      *FlagRepository
	Analyses   *AnalysisRepository
	Sanctions  *SanctionsRepository
}

// New creates all repositories backed by the given pool
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Applicants: NewApplicantRepository(pool),
		Profiles:   NewProfileRepository(pool),
		Content:    NewContentRepository(pool),
		Flags:      NewFlagRepository(pool),
		Analyses:   NewAnalysisRepository(pool),
		Sanctions:  NewSanctionsRepository(pool),
	}
}

// Migrate creates the schema if it does not exist
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS applicants (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			institution TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS social_profiles (
			id UUID PRIMARY KEY,
			applicant_id UUID NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			platform TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			verified BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS content_items (
			id UUID PRIMARY KEY,
			applicant_id UUID NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			source TEXT NOT NULL DEFAULT 'unknown',
			url TEXT NOT NULL DEFAULT '',
			text_content TEXT NOT NULL,
			published_at TIMESTAMPTZ,
			collected_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS flags (
			id UUID PRIMARY KEY,
			applicant_id UUID NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			analysis_id UUID,
			category TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			evidence_snippet TEXT NOT NULL DEFAULT '',
			matched_keywords TEXT[] NOT NULL DEFAULT '{}',
			guideline_reference TEXT NOT NULL DEFAULT '',
			content_source TEXT NOT NULL DEFAULT '',
			content_url TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'open',
			review_note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			applicant_id UUID NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			total_content_items INT NOT NULL DEFAULT 0,
			flags_count INT NOT NULL DEFAULT 0,
			risk_score INT NOT NULL DEFAULT 0,
			risk_level TEXT NOT NULL DEFAULT 'low',
			recommendation TEXT NOT NULL DEFAULT 'pending_review',
			summary TEXT NOT NULL DEFAULT '',
			analyzed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sanctions_checks (
			id UUID PRIMARY KEY,
			applicant_id UUID REFERENCES applicants(id) ON DELETE CASCADE,
			query TEXT NOT NULL,
			is_match BOOLEAN NOT NULL DEFAULT false,
			matches JSONB NOT NULL DEFAULT '[]',
			source TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			checked_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_items_applicant ON content_items(applicant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_flags_applicant ON flags(applicant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_flags_severity ON flags(severity)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_applicant ON analyses(applicant_id, analyzed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sanctions_checks_applicant ON sanctions_checks(applicant_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
