package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity grades for keyword matches and flags
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Risk levels for an overall analysis
const (
	RiskLevelCritical = "critical"
	RiskLevelHigh     = "high"
	RiskLevelMedium   = "medium"
	RiskLevelLow      = "low"
)

// Recommendations produced by an analysis
const (
	RecommendationApprove       = "approve"
	RecommendationReject        = "reject"
	RecommendationPendingReview = "pending_review"
)

// Flag review statuses
const (
	FlagStatusOpen      = "open"
	FlagStatusConfirmed = "confirmed"
	FlagStatusDismissed = "dismissed"
)

// Flag is a guideline violation raised against an applicant
type Flag struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	ApplicantID        uuid.UUID  `json:"applicant_id" db:"applicant_id"`
	Category           string     `json:"category" db:"category"`
	Severity           string     `json:"severity" db:"severity"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	EvidenceSnippet    string     `json:"evidence_snippet,omitempty" db:"evidence_snippet"`
	MatchedKeywords    []string   `json:"matched_keywords,omitempty" db:"matched_keywords"`
	GuidelineReference string     `json:"guideline_reference,omitempty" db:"guideline_reference"`
	ContentSource      string     `json:"content_source,omitempty" db:"content_source"`
	ContentURL         string     `json:"content_url,omitempty" db:"content_url"`
	PublishedAt        *time.Time `json:"published_at,omitempty" db:"published_at"`
	Status             string     `json:"status" db:"status"`
	ReviewNote         string     `json:"review_note,omitempty" db:"review_note"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// AnalysisResult is the full outcome of vetting one applicant
type AnalysisResult struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ApplicantID       uuid.UUID `json:"applicant_id" db:"applicant_id"`
	TotalContentItems int       `json:"total_content_items" db:"total_content_items"`
	FlagsCount        int       `json:"flags_count" db:"flags_count"`
	Flags             []Flag    `json:"flags" db:"-"`
	RiskScore         int       `json:"risk_score" db:"risk_score"`
	RiskLevel         string    `json:"risk_level" db:"risk_level"`
	Recommendation    string    `json:"recommendation" db:"recommendation"`
	Summary           string    `json:"summary" db:"summary"`
	AnalyzedAt        time.Time `json:"analyzed_at" db:"analyzed_at"`
}

// TextAnalysisRequest is the payload for ad-hoc text scanning
type TextAnalysisRequest struct {
	Text   string `json:"text"`
	Strict *bool  `json:"strict,omitempty"`
}

// TextAnalysisResponse reports matches found in a single piece of text
type TextAnalysisResponse struct {
	Matches       []TextMatch `json:"matches"`
	SeverityScore int         `json:"severity_score"`
}

// TextMatch is one keyword hit within analysed text
type TextMatch struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Context  string `json:"context"`
}

// ReviewFlagRequest updates the review status of a flag
type ReviewFlagRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Stats is an aggregate view over stored applicants and flags
type Stats struct {
	TotalApplicants  int            `json:"total_applicants"`
	ByStatus         map[string]int `json:"by_status"`
	ByRecommendation map[string]int `json:"by_recommendation"`
	TotalFlags       int            `json:"total_flags"`
	FlagsBySeverity  map[string]int `json:"flags_by_severity"`
	FlagsByCategory  map[string]int `json:"flags_by_category"`
	AverageRiskScore float64        `json:"average_risk_score"`
	GeneratedAt      time.Time      `json:"generated_at"`
}
