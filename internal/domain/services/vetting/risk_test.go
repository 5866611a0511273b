package vetting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grantvet/internal/domain/models"
)

func flagsWithSeverities(category string, severities ...string) []models.Flag {
	flags := make([]models.Flag, len(severities))
	for i, s := range severities {
		flags[i] = models.Flag{Category: category, Severity: s}
	}
	return flags
}

func TestScoreFlags(t *testing.T) {
	tests := []struct {
		name       string
		severities []string
		want       int
	}{
		{"no flags", nil, 0},
		{"single low", []string{models.SeverityLow}, 3},
		{"single medium", []string{models.SeverityMedium}, 10},
		{"single high", []string{models.SeverityHigh}, 20},
		{"single critical", []string{models.SeverityCritical}, 30},
		{"mixed", []string{models.SeverityCritical, models.SeverityHigh, models.SeverityLow}, 53},
		{"capped at 100", []string{models.SeverityCritical, models.SeverityCritical, models.SeverityCritical, models.SeverityCritical}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := flagsWithSeverities(GuidelineRegimePraise, tt.severities...)
			assert.Equal(t, tt.want, ScoreFlags(flags))
		})
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, models.RiskLevelLow},
		{19, models.RiskLevelLow},
		{20, models.RiskLevelMedium},
		{39, models.RiskLevelMedium},
		{40, models.RiskLevelHigh},
		{69, models.RiskLevelHigh},
		{70, models.RiskLevelCritical},
		{100, models.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %d", tt.score)
	}
}

func resultFor(flags []models.Flag) *models.AnalysisResult {
	score := ScoreFlags(flags)
	return &models.AnalysisResult{
		Flags:     flags,
		RiskScore: score,
		RiskLevel: LevelForScore(score),
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name  string
		flags []models.Flag
		want  string
	}{
		{
			name:  "no flags approves",
			flags: nil,
			want:  models.RecommendationApprove,
		},
		{
			name:  "single low flag approves",
			flags: flagsWithSeverities(GuidelineUnprofessional, models.SeverityLow),
			want:  models.RecommendationApprove,
		},
		{
			name:  "three low flags approve",
			flags: flagsWithSeverities(GuidelineUnprofessional, models.SeverityLow, models.SeverityLow, models.SeverityLow),
			want:  models.RecommendationApprove,
		},
		{
			name:  "four low flags pend on score",
			flags: flagsWithSeverities(GuidelineUnprofessional, models.SeverityLow, models.SeverityLow, models.SeverityLow, models.SeverityLow),
			want:  models.RecommendationPendingReview,
		},
		{
			name:  "medium flag pends",
			flags: flagsWithSeverities(GuidelineFinancialDealings, models.SeverityMedium),
			want:  models.RecommendationPendingReview,
		},
		{
			name:  "any critical flag rejects",
			flags: flagsWithSeverities(GuidelineCriminalRecord, models.SeverityCritical),
			want:  models.RecommendationReject,
		},
		{
			name:  "high violence advocacy rejects",
			flags: flagsWithSeverities(GuidelineViolenceAdvocacy, models.SeverityHigh),
			want:  models.RecommendationReject,
		},
		{
			name:  "high hate speech rejects",
			flags: flagsWithSeverities(GuidelineHateSpeech, models.SeverityHigh),
			want:  models.RecommendationReject,
		},
		{
			name:  "high despot admiration rejects",
			flags: flagsWithSeverities(GuidelineDespotAdmiration, models.SeverityHigh),
			want:  models.RecommendationReject,
		},
		{
			name:  "high financial dealings pends",
			flags: flagsWithSeverities(GuidelineFinancialDealings, models.SeverityHigh),
			want:  models.RecommendationPendingReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(resultFor(tt.flags)))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("no flags", func(t *testing.T) {
		result := resultFor(nil)
		result.Recommendation = Recommend(result)
		assert.Equal(t, "No concerning content found. Applicant appears to meet vetting guidelines.", Summarize(result))
	})

	t.Run("critical flag", func(t *testing.T) {
		result := resultFor(flagsWithSeverities(GuidelineDespotAdmiration, models.SeverityCritical))
		result.Recommendation = Recommend(result)

		want := "Analysis found 1 potential issue(s). " +
			"CRITICAL: 1 critical issue(s) found. " +
			"Categories: Despot/Dictator Admiration " +
			"Risk Level: MEDIUM " +
			"Recommendation: REJECT"
		assert.Equal(t, want, Summarize(result))
	})

	t.Run("pending review underscores replaced", func(t *testing.T) {
		result := resultFor(flagsWithSeverities(GuidelineFinancialDealings, models.SeverityHigh, models.SeverityMedium))
		result.Recommendation = Recommend(result)

		summary := Summarize(result)
		assert.Contains(t, summary, "Analysis found 2 potential issue(s).")
		assert.Contains(t, summary, "HIGH: 1 high-severity issue(s) found.")
		assert.Contains(t, summary, "Categories: Financial Dealings with Dictatorships")
		assert.Contains(t, summary, "Recommendation: PENDING REVIEW")
	})

	t.Run("unknown category falls back to raw name", func(t *testing.T) {
		result := resultFor(flagsWithSeverities("custom_category", models.SeverityLow))
		result.Recommendation = Recommend(result)
		assert.Contains(t, Summarize(result), "Categories: custom_category")
	})
}
