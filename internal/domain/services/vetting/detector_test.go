package vetting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantvet/internal/domain/models"
	"grantvet/pkg/logger"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	return NewDetector(logger.NewDefault(), nil)
}

func TestAnalyzeText(t *testing.T) {
	d := newTestDetector(t)

	tests := []struct {
		name     string
		text     string
		keyword  string
		category string
		severity string
	}{
		{
			name:     "violence advocacy",
			text:     "We must take up arms against the regime",
			keyword:  "take up arms",
			category: CategoryViolenceAdvocacy,
			severity: models.SeverityHigh,
		},
		{
			name:     "case insensitive",
			text:     "TAKE UP ARMS now",
			keyword:  "take up arms",
			category: CategoryViolenceAdvocacy,
			severity: models.SeverityHigh,
		},
		{
			name:     "hate speech",
			text:     "They openly call for ethnic cleansing in the region",
			keyword:  "ethnic cleansing",
			category: CategoryHateSpeech,
			severity: models.SeverityCritical,
		},
		{
			name:     "democracy criticism",
			text:     "Everyone knows democracy is a sham these days",
			keyword:  "democracy is a sham",
			category: CategoryDemocracyCritique,
			severity: models.SeverityMedium,
		},
		{
			name:     "criminal activity",
			text:     "He was arrested for tax evasion last year",
			keyword:  "arrested for",
			category: CategoryCriminalActivity,
			severity: models.SeverityMedium,
		},
		{
			name:     "financial dealings",
			text:     "Our firm signed an investment in Russia in 2019",
			keyword:  "investment in russia",
			category: CategoryFinancialDealings,
			severity: models.SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := d.AnalyzeText(tt.text)
			require.Len(t, matches, 1)
			assert.Equal(t, tt.keyword, matches[0].Keyword)
			assert.Equal(t, tt.category, matches[0].Category)
			assert.Equal(t, tt.severity, matches[0].Severity)
			assert.Equal(t, strings.Index(strings.ToLower(tt.text), tt.keyword), matches[0].Position)
		})
	}
}

func TestAnalyzeTextEmpty(t *testing.T) {
	d := newTestDetector(t)
	assert.Nil(t, d.AnalyzeText(""))
}

func TestAnalyzeTextCategoryFilter(t *testing.T) {
	d := newTestDetector(t)
	text := "take up arms and ethnic cleansing"

	all := d.AnalyzeText(text)
	require.Len(t, all, 2)

	hateOnly := d.AnalyzeText(text, CategoryHateSpeech)
	require.Len(t, hateOnly, 1)
	assert.Equal(t, CategoryHateSpeech, hateOnly[0].Category)
}

func TestAnalyzeTextContext(t *testing.T) {
	d := newTestDetector(t)

	t.Run("short text has no ellipsis", func(t *testing.T) {
		matches := d.AnalyzeText("time for action")
		require.Len(t, matches, 1)
		assert.Equal(t, "time for action", matches[0].Context)
	})

	t.Run("clipped window gets ellipsis on both ends", func(t *testing.T) {
		text := strings.Repeat("x", 80) + " time for action " + strings.Repeat("y", 80)
		matches := d.AnalyzeText(text)
		require.Len(t, matches, 1)
		assert.True(t, strings.HasPrefix(matches[0].Context, "..."))
		assert.True(t, strings.HasSuffix(matches[0].Context, "..."))
		assert.Contains(t, matches[0].Context, "time for action")
	})

	t.Run("context preserves original casing", func(t *testing.T) {
		matches := d.AnalyzeText("He said Time For Action today")
		require.Len(t, matches, 1)
		assert.Equal(t, "He said Time For Action today", matches[0].Context)
		assert.Equal(t, "time for action", matches[0].Keyword)
	})
}

func TestAuthoritarianMentions(t *testing.T) {
	d := newTestDetector(t)

	text := "I met Putin in Moscow, then visited Russia and toured a Wagner Group facility."
	matches := d.AuthoritarianMentions(text)

	var categories []string
	var keywords []string
	for _, m := range matches {
		categories = append(categories, m.Category)
		keywords = append(keywords, m.Keyword)
	}

	assert.Contains(t, categories, CategoryLeaderMention)
	assert.Contains(t, categories, CategoryEntityMention)
	assert.Contains(t, categories, CategoryCountryMention)
	assert.Contains(t, keywords, "Putin")
	assert.Contains(t, keywords, "Wagner Group")
	assert.Contains(t, keywords, "Russia")
}

func TestAuthoritarianMentionsWordBoundary(t *testing.T) {
	d := newTestDetector(t)

	// Country names only match whole words
	assert.Empty(t, d.AuthoritarianMentions("We had dinner in Chinatown yesterday"))

	matches := d.AuthoritarianMentions("She grew up in China")
	require.Len(t, matches, 1)
	assert.Equal(t, CategoryCountryMention, matches[0].Category)
	assert.Equal(t, "China", matches[0].Keyword)
	assert.Equal(t, models.SeverityLow, matches[0].Severity)
}

func TestAuthoritarianMentionsEmpty(t *testing.T) {
	d := newTestDetector(t)
	assert.Nil(t, d.AuthoritarianMentions(""))
}

func TestExtend(t *testing.T) {
	d := newTestDetector(t)
	before := len(d.Categories())

	d.Extend("grant_fraud", []PatternEntry{
		{Pattern: `\bfake\s+invoices?\b`, Severity: models.SeverityHigh},
		{Pattern: `(unclosed`, Severity: models.SeverityHigh}, // malformed, skipped
	})

	categories := d.Categories()
	assert.Len(t, categories, before+1)
	assert.Equal(t, "grant_fraud", categories[len(categories)-1])

	matches := d.AnalyzeText("They submitted fake invoices to the auditor")
	require.Len(t, matches, 1)
	assert.Equal(t, "grant_fraud", matches[0].Category)
	assert.Equal(t, "fake invoices", matches[0].Keyword)
}

func TestExtendExistingCategoryIsAdditive(t *testing.T) {
	d := newTestDetector(t)
	before := len(d.Categories())

	d.Extend(CategoryViolenceAdvocacy, []PatternEntry{
		{Pattern: `\bburn\s+it\s+all\s+down\b`, Severity: models.SeverityHigh},
	})

	assert.Len(t, d.Categories(), before)

	matches := d.AnalyzeText("take up arms and burn it all down")
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, CategoryViolenceAdvocacy, m.Category)
	}
}

func TestSeverityScore(t *testing.T) {
	tests := []struct {
		name       string
		severities []string
		want       int
	}{
		{"empty", nil, 0},
		{"single critical", []string{models.SeverityCritical}, 25},
		{"mixed", []string{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow}, 51},
		{"capped at 100", []string{models.SeverityCritical, models.SeverityCritical, models.SeverityCritical, models.SeverityCritical, models.SeverityCritical}, 100},
		{"unknown severity ignored", []string{"bogus"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matches []KeywordMatch
			for _, s := range tt.severities {
				matches = append(matches, KeywordMatch{Severity: s})
			}
			assert.Equal(t, tt.want, SeverityScore(matches))
		})
	}
}
