package models

import (
	"time"

	"github.com/google/uuid"
)

// SanctionsMatch is one candidate hit against a sanctions list
type SanctionsMatch struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	Program  string  `json:"program,omitempty"`
	Score    float64 `json:"score"`
	ListName string  `json:"list_name,omitempty"`
	Remarks  string  `json:"remarks,omitempty"`
}

// SanctionsCheckResult is the outcome of screening one name
type SanctionsCheckResult struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	ApplicantID *uuid.UUID       `json:"applicant_id,omitempty" db:"applicant_id"`
	Query       string           `json:"query" db:"query"`
	IsMatch     bool             `json:"is_match" db:"is_match"`
	Matches     []SanctionsMatch `json:"matches" db:"-"`
	Source      string           `json:"source" db:"source"`
	CheckedAt   time.Time        `json:"checked_at" db:"checked_at"`
	Error       string           `json:"error,omitempty" db:"error"`
}

// SanctionsCheckRequest is the payload for an ad-hoc sanctions screen
type SanctionsCheckRequest struct {
	Name string `json:"name"`
}

// VettingReport bundles the analysis and sanctions screen for an applicant
type VettingReport struct {
	Applicant      *Applicant            `json:"applicant"`
	Analysis       *AnalysisResult       `json:"analysis,omitempty"`
	SanctionsCheck *SanctionsCheckResult `json:"sanctions_check,omitempty"`
	GeneratedAt    time.Time             `json:"generated_at"`
}
