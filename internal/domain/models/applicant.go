package models

import (
	"time"

	"github.com/google/uuid"
)

// Applicant vetting statuses
const (
	ApplicantStatusPending  = "pending"
	ApplicantStatusAnalyzed = "analyzed"
	ApplicantStatusApproved = "approved"
	ApplicantStatusRejected = "rejected"
)

// Applicant is a grant applicant under review
type Applicant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	Email       string    `json:"email,omitempty" db:"email"`
	Country     string    `json:"country,omitempty" db:"country"`
	Institution string    `json:"institution,omitempty" db:"institution"`
	Bio         string    `json:"bio,omitempty" db:"bio"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Profiles []SocialProfile `json:"profiles,omitempty" db:"-"`
	Content  []ContentItem   `json:"content,omitempty" db:"-"`
}

// SocialProfile is a social media or web presence linked to an applicant
type SocialProfile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ApplicantID uuid.UUID `json:"applicant_id" db:"applicant_id"`
	Platform    string    `json:"platform" db:"platform"`
	Username    string    `json:"username" db:"username"`
	URL         string    `json:"url,omitempty" db:"url"`
	Bio         string    `json:"bio,omitempty" db:"bio"`
	Verified    bool      `json:"verified" db:"verified"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ContentItem is a single piece of collected content attributed to an applicant
type ContentItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ApplicantID uuid.UUID  `json:"applicant_id" db:"applicant_id"`
	Source      string     `json:"source" db:"source"`
	URL         string     `json:"url,omitempty" db:"url"`
	Text        string     `json:"text" db:"text_content"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CollectedAt time.Time  `json:"collected_at" db:"collected_at"`
}

// CreateApplicantRequest is the payload for registering an applicant
type CreateApplicantRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Institution string `json:"institution"`
	Bio         string `json:"bio"`
}

// UpdateStatusRequest sets the vetting status of an applicant
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AddContentRequest is the payload for attaching content to an applicant
type AddContentRequest struct {
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	Text        string     `json:"text"`
	PublishedAt *time.Time `json:"published_at"`
}

// AddProfileRequest is the payload for attaching a social profile
type AddProfileRequest struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Bio      string `json:"bio"`
}
