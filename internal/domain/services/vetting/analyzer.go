package vetting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/regimes"
	"grantvet/pkg/logger"
)

// maximum informational mention flags raised per content item in strict mode
const maxMentionFlags = 5

// Analyzer screens applicants and their content against the vetting
// guidelines and produces flags with an overall risk assessment
type Analyzer struct {
	logger     *logger.Logger
	detector   *Detector
	strictMode bool
}

// NewAnalyzer creates a guidelines analyzer. In strict mode, bare
// mentions of authoritarian figures raise low-severity flags.
func NewAnalyzer(log *logger.Logger, detector *Detector, strictMode bool) *Analyzer {
	return &Analyzer{
		logger:     log.WithComponent("guidelines-analyzer"),
		detector:   detector,
		strictMode: strictMode,
	}
}

// StrictMode reports whether informational mention flags are enabled
func (a *Analyzer) StrictMode() bool {
	return a.strictMode
}

// Detector returns the underlying keyword detector
func (a *Analyzer) Detector() *Detector {
	return a.detector
}

// AnalyzeApplicant screens an applicant: country classification, every
// content item, and every profile bio. The returned result carries all
// flags plus the aggregated score, level, recommendation, and summary.
func (a *Analyzer) AnalyzeApplicant(applicant *models.Applicant) *models.AnalysisResult {
	start := time.Now()

	result := &models.AnalysisResult{
		ID:                uuid.New(),
		ApplicantID:       applicant.ID,
		TotalContentItems: len(applicant.Content),
		AnalyzedAt:        time.Now().UTC(),
	}

	if applicant.Country != "" {
		result.Flags = append(result.Flags, a.CheckCountry(applicant.Country)...)
	}

	for _, item := range applicant.Content {
		if item.Text == "" {
			continue
		}
		source := item.Source
		if source == "" {
			source = "unknown"
		}
		result.Flags = append(result.Flags, a.AnalyzeContent(item.Text, source, item.URL, item.PublishedAt)...)
	}

	for _, profile := range applicant.Profiles {
		if profile.Bio == "" {
			continue
		}
		platform := profile.Platform
		if platform == "" {
			platform = "unknown"
		}
		result.Flags = append(result.Flags, a.AnalyzeContent(profile.Bio, platform+"_bio", profile.URL, nil)...)
	}

	for i := range result.Flags {
		result.Flags[i].ApplicantID = applicant.ID
	}

	result.FlagsCount = len(result.Flags)
	result.RiskScore = ScoreFlags(result.Flags)
	result.RiskLevel = LevelForScore(result.RiskScore)
	result.Recommendation = Recommend(result)
	result.Summary = Summarize(result)

	a.logger.Info().
		Str("applicant_id", applicant.ID.String()).
		Int("content_items", result.TotalContentItems).
		Int("flags", result.FlagsCount).
		Int("risk_score", result.RiskScore).
		Str("risk_level", result.RiskLevel).
		Str("recommendation", result.Recommendation).
		Dur("duration", time.Since(start)).
		Msg("Applicant analysis complete")

	return result
}

// CheckCountry raises a flag when the applicant's country is
// classified as an authoritarian regime
func (a *Analyzer) CheckCountry(country string) []models.Flag {
	info := regimes.Classify(country)

	switch info.Classification {
	case regimes.FullyAuthoritarian:
		return []models.Flag{newFlag(models.Flag{
			Category:           GuidelineAuthoritarianConnection,
			Severity:           models.SeverityHigh,
			Title:              fmt.Sprintf("From Fully Authoritarian Regime: %s", country),
			Description:        fmt.Sprintf("The applicant is from %s, which is classified as a fully authoritarian regime.", country),
			GuidelineReference: Guidelines[GuidelineAuthoritarianConnection].Reference,
		})}
	case regimes.HybridAuthoritarian:
		return []models.Flag{newFlag(models.Flag{
			Category:           GuidelineAuthoritarianConnection,
			Severity:           models.SeverityMedium,
			Title:              fmt.Sprintf("From Hybrid Authoritarian Regime: %s", country),
			Description:        fmt.Sprintf("The applicant is from %s, which is classified as a hybrid authoritarian regime.", country),
			GuidelineReference: Guidelines[GuidelineAuthoritarianConnection].Reference,
		})}
	}

	return nil
}

// AnalyzeContent screens a single piece of content and returns one
// flag per matched category, plus informational mention flags in
// strict mode.
func (a *Analyzer) AnalyzeContent(text, source, url string, publishedAt *time.Time) []models.Flag {
	var flags []models.Flag

	matches := a.detector.AnalyzeText(text)

	byCategory := map[string][]KeywordMatch{}
	var order []string
	for _, m := range matches {
		if _, seen := byCategory[m.Category]; !seen {
			order = append(order, m.Category)
		}
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}

	for _, category := range order {
		categoryMatches := byCategory[category]

		severity := highestSeverity(categoryMatches)
		evidence := evidenceMatch(categoryMatches)

		keywords := make([]string, len(categoryMatches))
		for i, m := range categoryMatches {
			keywords[i] = m.Keyword
		}

		guidelineCategory := GuidelineFor(category)
		guideline, known := Guidelines[guidelineCategory]

		title := guideline.Title
		description := guideline.Description
		if !known {
			title = fmt.Sprintf("Potential Issue: %s", category)
			description = category
		}

		flags = append(flags, newFlag(models.Flag{
			Category:           guidelineCategory,
			Severity:           severity,
			Title:              title,
			Description:        fmt.Sprintf("Content may violate: %s", description),
			EvidenceSnippet:    evidence.Context,
			MatchedKeywords:    keywords,
			GuidelineReference: guideline.Reference,
			ContentSource:      source,
			ContentURL:         url,
			PublishedAt:        publishedAt,
		}))
	}

	// Mentions alone aren't violations, so they only surface in strict mode
	if a.strictMode {
		mentions := a.detector.AuthoritarianMentions(text)
		if len(mentions) > maxMentionFlags {
			mentions = mentions[:maxMentionFlags]
		}
		for _, mention := range mentions {
			flags = append(flags, newFlag(models.Flag{
				Category:        GuidelineRegimePraise,
				Severity:        models.SeverityLow,
				Title:           fmt.Sprintf("Mentions %s", mention.Keyword),
				Description:     fmt.Sprintf("Content mentions %s: %s", strings.ReplaceAll(mention.Category, "_", " "), mention.Keyword),
				EvidenceSnippet: mention.Context,
				MatchedKeywords: []string{mention.Keyword},
				ContentSource:   source,
				ContentURL:      url,
				PublishedAt:     publishedAt,
			}))
		}
	}

	return flags
}

func newFlag(f models.Flag) models.Flag {
	f.ID = uuid.New()
	f.Status = models.FlagStatusOpen
	f.CreatedAt = time.Now().UTC()
	return f
}

// severityRank orders severities from most to least severe
var severityRank = map[string]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
	models.SeverityLow:      3,
}

// highestSeverity returns the most severe grade present in matches
func highestSeverity(matches []KeywordMatch) string {
	for _, sev := range []string{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
		for _, m := range matches {
			if m.Severity == sev {
				return sev
			}
		}
	}
	return models.SeverityLow
}

// evidenceMatch picks the match whose severity ranks numerically
// highest, keeping the first occurrence on ties
func evidenceMatch(matches []KeywordMatch) KeywordMatch {
	best := matches[0]
	bestRank := rankOf(best.Severity)
	for _, m := range matches[1:] {
		if r := rankOf(m.Severity); r > bestRank {
			best = m
			bestRank = r
		}
	}
	return best
}

func rankOf(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return 99
}
