package vetting

import (
	"regexp"
	"strings"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/regimes"
	"grantvet/pkg/logger"
)

const contextRadius = 50

// KeywordMatch is one detection hit within a piece of text
type KeywordMatch struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Context  string `json:"context"`
	Position int    `json:"position"`
}

type compiledRule struct {
	re       *regexp.Regexp
	severity string
}

type compiledGroup struct {
	category string
	rules    []compiledRule
}

type countryRule struct {
	name     string
	re       *regexp.Regexp
	severity string
}

// Detector scans text against the pattern database and the
// authoritarian leader, entity, and country reference lists
type Detector struct {
	logger *logger.Logger
	groups []compiledGroup

	leaderNames  []string
	entityNames  []string
	countryRules []countryRule
}

// NewDetector builds a detector from the built-in pattern database,
// extended with any custom entries (category -> extra rules). Custom
// categories that don't exist yet are appended after the built-ins.
func NewDetector(log *logger.Logger, custom map[string][]PatternEntry) *Detector {
	d := &Detector{
		logger:      log.WithComponent("keyword-detector"),
		leaderNames: regimes.KnownLeaders(),
		entityNames: regimes.KnownEntities(),
	}

	for _, g := range defaultPatterns() {
		d.Extend(g.category, g.entries)
	}
	for category, entries := range custom {
		d.Extend(category, entries)
	}

	countries := append(regimes.FullyAuthoritarianCountries(), regimes.HybridAuthoritarianCountries()...)
	for _, country := range countries {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(country)) + `\b`)
		if err != nil {
			continue
		}
		d.countryRules = append(d.countryRules, countryRule{
			name:     country,
			re:       re,
			severity: models.SeverityLow,
		})
	}

	return d
}

// Extend adds rules to a category. Additions are additive: built-in
// rules for the category stay in place. Malformed patterns are skipped.
func (d *Detector) Extend(category string, entries []PatternEntry) {
	var rules []compiledRule
	for _, e := range entries {
		re, err := regexp.Compile(`(?i)` + e.Pattern)
		if err != nil {
			d.logger.Warn().
				Str("category", category).
				Str("pattern", e.Pattern).
				Err(err).
				Msg("Skipping malformed pattern")
			continue
		}
		rules = append(rules, compiledRule{re: re, severity: e.Severity})
	}

	for i := range d.groups {
		if d.groups[i].category == category {
			d.groups[i].rules = append(d.groups[i].rules, rules...)
			return
		}
	}
	d.groups = append(d.groups, compiledGroup{category: category, rules: rules})
}

// Categories returns the pattern categories in registration order
func (d *Detector) Categories() []string {
	out := make([]string, len(d.groups))
	for i, g := range d.groups {
		out[i] = g.category
	}
	return out
}

// AnalyzeText scans text for pattern matches. When categories is
// non-empty only those categories are checked. Empty text yields nil.
func (d *Detector) AnalyzeText(text string, categories ...string) []KeywordMatch {
	if text == "" {
		return nil
	}

	wanted := map[string]bool{}
	for _, c := range categories {
		wanted[c] = true
	}

	lower := strings.ToLower(text)
	var matches []KeywordMatch

	for _, g := range d.groups {
		if len(wanted) > 0 && !wanted[g.category] {
			continue
		}
		for _, rule := range g.rules {
			for _, loc := range rule.re.FindAllStringIndex(lower, -1) {
				matches = append(matches, KeywordMatch{
					Keyword:  lower[loc[0]:loc[1]],
					Category: g.category,
					Severity: rule.severity,
					Context:  snippet(text, loc[0], loc[1]),
					Position: loc[0],
				})
			}
		}
	}

	return matches
}

// AuthoritarianMentions reports every mention of a known authoritarian
// leader, entity, or country in the text. Leader and entity names match
// as substrings; country names only on word boundaries.
func (d *Detector) AuthoritarianMentions(text string) []KeywordMatch {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var matches []KeywordMatch

	for _, leader := range d.leaderNames {
		for _, pos := range substringPositions(lower, strings.ToLower(leader)) {
			matches = append(matches, KeywordMatch{
				Keyword:  leader,
				Category: CategoryLeaderMention,
				Severity: models.SeverityMedium,
				Context:  snippet(text, pos, pos+len(leader)),
				Position: pos,
			})
		}
	}

	for _, entity := range d.entityNames {
		for _, pos := range substringPositions(lower, strings.ToLower(entity)) {
			matches = append(matches, KeywordMatch{
				Keyword:  entity,
				Category: CategoryEntityMention,
				Severity: models.SeverityMedium,
				Context:  snippet(text, pos, pos+len(entity)),
				Position: pos,
			})
		}
	}

	for _, cr := range d.countryRules {
		for _, loc := range cr.re.FindAllStringIndex(lower, -1) {
			matches = append(matches, KeywordMatch{
				Keyword:  cr.name,
				Category: CategoryCountryMention,
				Severity: cr.severity,
				Context:  snippet(text, loc[0], loc[1]),
				Position: loc[0],
			})
		}
	}

	return matches
}

var severityWeights = map[string]int{
	models.SeverityCritical: 25,
	models.SeverityHigh:     15,
	models.SeverityMedium:   8,
	models.SeverityLow:      3,
}

// SeverityScore aggregates match severities into a 0-100 score
func SeverityScore(matches []KeywordMatch) int {
	total := 0
	for _, m := range matches {
		total += severityWeights[m.Severity]
	}
	if total > 100 {
		total = 100
	}
	return total
}

// snippet extracts surrounding context from the original text, with
// ellipsis markers when the window is clipped
func snippet(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	if from > len(text) {
		from = len(text)
	}

	out := text[from:to]
	if from > 0 {
		out = "..." + out
	}
	if to < len(text) {
		out = out + "..."
	}
	return out
}

// substringPositions returns the start offsets of every
// non-overlapping occurrence of needle in haystack
func substringPositions(haystack, needle string) []int {
	if needle == "" {
		return nil
	}
	var out []int
	offset := 0
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return out
		}
		out = append(out, offset+i)
		offset += i + len(needle)
	}
}
