package vetting

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantvet/internal/domain/models"
	"grantvet/pkg/logger"
)

func newTestAnalyzer(t *testing.T, strict bool) *Analyzer {
	t.Helper()
	log := logger.NewDefault()
	return NewAnalyzer(log, NewDetector(log, nil), strict)
}

func TestCheckCountry(t *testing.T) {
	a := newTestAnalyzer(t, false)

	t.Run("fully authoritarian", func(t *testing.T) {
		flags := a.CheckCountry("Cuba")
		require.Len(t, flags, 1)
		assert.Equal(t, GuidelineAuthoritarianConnection, flags[0].Category)
		assert.Equal(t, models.SeverityHigh, flags[0].Severity)
		assert.Equal(t, "From Fully Authoritarian Regime: Cuba", flags[0].Title)
		assert.Equal(t, "Guideline 1", flags[0].GuidelineReference)
		assert.Equal(t, models.FlagStatusOpen, flags[0].Status)
	})

	t.Run("hybrid authoritarian", func(t *testing.T) {
		flags := a.CheckCountry("India")
		require.Len(t, flags, 1)
		assert.Equal(t, models.SeverityMedium, flags[0].Severity)
		assert.Equal(t, "From Hybrid Authoritarian Regime: India", flags[0].Title)
	})

	t.Run("democratic", func(t *testing.T) {
		assert.Empty(t, a.CheckCountry("France"))
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Empty(t, a.CheckCountry("Atlantis"))
	})
}

func TestAnalyzeContent(t *testing.T) {
	a := newTestAnalyzer(t, false)

	flags := a.AnalyzeContent("We must take up arms against them", "twitter", "https://example.com/post/1", nil)
	require.Len(t, flags, 1)

	flag := flags[0]
	assert.Equal(t, GuidelineViolenceAdvocacy, flag.Category)
	assert.Equal(t, models.SeverityHigh, flag.Severity)
	assert.Equal(t, "Violence Advocacy", flag.Title)
	assert.True(t, strings.HasPrefix(flag.Description, "Content may violate:"))
	assert.Equal(t, "Guideline 4", flag.GuidelineReference)
	assert.Equal(t, []string{"take up arms"}, flag.MatchedKeywords)
	assert.Equal(t, "twitter", flag.ContentSource)
	assert.Equal(t, "https://example.com/post/1", flag.ContentURL)
	assert.NotEqual(t, uuid.Nil, flag.ID)
	assert.Equal(t, models.FlagStatusOpen, flag.Status)
}

func TestAnalyzeContentCategoryMapping(t *testing.T) {
	a := newTestAnalyzer(t, false)

	flags := a.AnalyzeContent("He was arrested for trespassing in 2020", "news", "", nil)
	require.Len(t, flags, 1)
	assert.Equal(t, GuidelineCriminalRecord, flags[0].Category)
	assert.Equal(t, "Criminal Record", flags[0].Title)
	assert.Equal(t, "Guideline 10", flags[0].GuidelineReference)
}

func TestAnalyzeContentGroupsByCategory(t *testing.T) {
	a := newTestAnalyzer(t, false)

	// One flag per category, in pattern database order
	flags := a.AnalyzeContent("ethnic cleansing apologia and calls to take up arms", "blog", "", nil)
	require.Len(t, flags, 2)
	assert.Equal(t, GuidelineViolenceAdvocacy, flags[0].Category)
	assert.Equal(t, GuidelineHateSpeech, flags[1].Category)
}

func TestAnalyzeContentEvidenceAndSeverity(t *testing.T) {
	a := newTestAnalyzer(t, false)

	// Separate the two matches so their context windows don't overlap
	text := strings.Repeat("z", 120) + " violent revolution " + strings.Repeat("z", 120) + " time for action"
	flags := a.AnalyzeContent(text, "blog", "", nil)
	require.Len(t, flags, 1)

	flag := flags[0]
	assert.Equal(t, models.SeverityHigh, flag.Severity)
	assert.Equal(t, []string{"violent revolution", "time for action"}, flag.MatchedKeywords)
	assert.Contains(t, flag.EvidenceSnippet, "time for action")
	assert.NotContains(t, flag.EvidenceSnippet, "violent revolution")
}

func TestAnalyzeContentStrictMode(t *testing.T) {
	text := "I interviewed Putin while reporting from Russia"

	t.Run("disabled", func(t *testing.T) {
		a := newTestAnalyzer(t, false)
		assert.Empty(t, a.AnalyzeContent(text, "twitter", "", nil))
	})

	t.Run("enabled", func(t *testing.T) {
		a := newTestAnalyzer(t, true)
		flags := a.AnalyzeContent(text, "twitter", "", nil)
		require.Len(t, flags, 2)

		for _, f := range flags {
			assert.Equal(t, GuidelineRegimePraise, f.Category)
			assert.Equal(t, models.SeverityLow, f.Severity)
			assert.Empty(t, f.GuidelineReference)
		}
		assert.Equal(t, "Mentions Putin", flags[0].Title)
		assert.Equal(t, "Content mentions authoritarian mention: Putin", flags[0].Description)
		assert.Equal(t, "Mentions Russia", flags[1].Title)
		assert.Equal(t, "Content mentions authoritarian country mention: Russia", flags[1].Description)
	})

	t.Run("mention flags are capped", func(t *testing.T) {
		a := newTestAnalyzer(t, true)
		flags := a.AnalyzeContent("Putin, Lukashenko, Maduro, Assad, Ortega and Khamenei met today", "news", "", nil)
		assert.Len(t, flags, maxMentionFlags)
	})
}

func TestAnalyzeApplicant(t *testing.T) {
	a := newTestAnalyzer(t, false)

	applicant := &models.Applicant{
		ID:       uuid.New(),
		FullName: "Test Person",
		Country:  "Cuba",
		Content: []models.ContentItem{
			{Source: "twitter", Text: "Honestly I admire Stalin and his methods"},
			{Source: "blog", Text: "I enjoy gardening and long walks"},
		},
		Profiles: []models.SocialProfile{
			{Platform: "linkedin", Bio: "Researcher and writer"},
		},
	}

	result := a.AnalyzeApplicant(applicant)

	assert.Equal(t, applicant.ID, result.ApplicantID)
	assert.Equal(t, 2, result.TotalContentItems)
	require.Equal(t, 2, result.FlagsCount)

	// Country flag first, then content flags
	assert.Equal(t, GuidelineAuthoritarianConnection, result.Flags[0].Category)
	assert.Equal(t, GuidelineDespotAdmiration, result.Flags[1].Category)
	assert.Equal(t, models.SeverityCritical, result.Flags[1].Severity)
	assert.Equal(t, "twitter", result.Flags[1].ContentSource)

	for _, f := range result.Flags {
		assert.Equal(t, applicant.ID, f.ApplicantID)
	}

	// high country flag (20) + critical content flag (30)
	assert.Equal(t, 50, result.RiskScore)
	assert.Equal(t, models.RiskLevelHigh, result.RiskLevel)
	assert.Equal(t, models.RecommendationReject, result.Recommendation)
	assert.Contains(t, result.Summary, "CRITICAL: 1 critical issue(s) found.")
}

func TestAnalyzeApplicantClean(t *testing.T) {
	a := newTestAnalyzer(t, false)

	applicant := &models.Applicant{
		ID:      uuid.New(),
		Country: "Norway",
		Content: []models.ContentItem{
			{Source: "blog", Text: "I enjoy hiking and photography"},
		},
	}

	result := a.AnalyzeApplicant(applicant)

	assert.Zero(t, result.FlagsCount)
	assert.Zero(t, result.RiskScore)
	assert.Equal(t, models.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, models.RecommendationApprove, result.Recommendation)
	assert.Equal(t, "No concerning content found. Applicant appears to meet vetting guidelines.", result.Summary)
}

func TestAnalyzeApplicantProfileBios(t *testing.T) {
	a := newTestAnalyzer(t, false)

	applicant := &models.Applicant{
		ID: uuid.New(),
		Profiles: []models.SocialProfile{
			{Platform: "twitter", URL: "https://twitter.com/x", Bio: "time for action against the system"},
		},
	}

	result := a.AnalyzeApplicant(applicant)

	require.Equal(t, 1, result.FlagsCount)
	assert.Equal(t, "twitter_bio", result.Flags[0].ContentSource)
	assert.Equal(t, "https://twitter.com/x", result.Flags[0].ContentURL)
}
