package vetting

import (
	"fmt"
	"strings"

	"grantvet/internal/domain/models"
)

// flagWeights scores guideline flags; heavier than raw keyword match
// weights because each flag already aggregates a category
var flagWeights = map[string]int{
	models.SeverityCritical: 30,
	models.SeverityHigh:     20,
	models.SeverityMedium:   10,
	models.SeverityLow:      3,
}

// autoRejectCategories trigger rejection on a high-severity flag
var autoRejectCategories = map[string]bool{
	GuidelineViolenceAdvocacy: true,
	GuidelineHateSpeech:       true,
	GuidelineDespotAdmiration: true,
}

// ScoreFlags aggregates flag severities into a 0-100 risk score
func ScoreFlags(flags []models.Flag) int {
	total := 0
	for _, f := range flags {
		total += flagWeights[f.Severity]
	}
	if total > 100 {
		total = 100
	}
	return total
}

// LevelForScore maps a risk score to a risk level
func LevelForScore(score int) string {
	switch {
	case score >= 70:
		return models.RiskLevelCritical
	case score >= 40:
		return models.RiskLevelHigh
	case score >= 20:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// Recommend derives a recommendation from an analysis result. Any
// critical flag, or a high flag in an auto-reject category, rejects
// outright. Approval requires a score under 10 with nothing high or
// critical; everything else lands in pending review.
func Recommend(result *models.AnalysisResult) string {
	for _, f := range result.Flags {
		if f.Severity == models.SeverityCritical {
			return models.RecommendationReject
		}
		if f.Severity == models.SeverityHigh && autoRejectCategories[f.Category] {
			return models.RecommendationReject
		}
	}

	switch result.RiskLevel {
	case models.RiskLevelHigh, models.RiskLevelCritical, models.RiskLevelMedium:
		return models.RecommendationPendingReview
	}

	if result.RiskScore < 10 && !hasSevereFlag(result.Flags) {
		return models.RecommendationApprove
	}

	return models.RecommendationPendingReview
}

func hasSevereFlag(flags []models.Flag) bool {
	for _, f := range flags {
		if f.Severity == models.SeverityHigh || f.Severity == models.SeverityCritical {
			return true
		}
	}
	return false
}

// Summarize renders a human-readable summary of an analysis result
func Summarize(result *models.AnalysisResult) string {
	if len(result.Flags) == 0 {
		return "No concerning content found. Applicant appears to meet vetting guidelines."
	}

	severityCounts := map[string]int{}
	var categories []string
	seen := map[string]bool{}
	for _, f := range result.Flags {
		severityCounts[f.Severity]++
		if !seen[f.Category] {
			seen[f.Category] = true
			categories = append(categories, f.Category)
		}
	}

	parts := []string{
		fmt.Sprintf("Analysis found %d potential issue(s).", len(result.Flags)),
	}

	if n := severityCounts[models.SeverityCritical]; n > 0 {
		parts = append(parts, fmt.Sprintf("CRITICAL: %d critical issue(s) found.", n))
	}
	if n := severityCounts[models.SeverityHigh]; n > 0 {
		parts = append(parts, fmt.Sprintf("HIGH: %d high-severity issue(s) found.", n))
	}

	titles := make([]string, len(categories))
	for i, cat := range categories {
		if g, ok := Guidelines[cat]; ok {
			titles[i] = g.Title
		} else {
			titles[i] = cat
		}
	}
	parts = append(parts, fmt.Sprintf("Categories: %s", strings.Join(titles, ", ")))

	parts = append(parts, fmt.Sprintf("Risk Level: %s", strings.ToUpper(result.RiskLevel)))
	parts = append(parts, fmt.Sprintf("Recommendation: %s", strings.ToUpper(strings.ReplaceAll(result.Recommendation, "_", " "))))

	return strings.Join(parts, " ")
}
