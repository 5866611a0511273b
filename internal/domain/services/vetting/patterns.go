package vetting

import (
	"regexp"
	"strings"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/regimes"
)

// Pattern categories produced by the detector
const (
	CategoryViolenceAdvocacy  = "violence_advocacy"
	CategoryHateSpeech        = "hate_speech"
	CategoryRegimePraise      = "regime_praise"
	CategoryDemocracyCritique = "democracy_criticism"
	CategoryDespotAdmiration  = "despot_admiration"
	CategoryFinancialDealings = "financial_dealings"
	CategoryUnprofessional    = "unprofessional"
	CategoryCriminalActivity  = "criminal_activity"

	CategoryLeaderMention  = "authoritarian_mention"
	CategoryEntityMention  = "authoritarian_entity_mention"
	CategoryCountryMention = "authoritarian_country_mention"
)

// PatternEntry is one detection rule: a regex and the severity its
// matches carry
type PatternEntry struct {
	Pattern  string `json:"pattern"`
	Severity string `json:"severity"`
}

// patternGroup keeps entries grouped under their category while
// preserving category ordering, which flag generation depends on
type patternGroup struct {
	category string
	entries  []PatternEntry
}

func escapeAlternation(names []string) string {
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(escaped, "|")
}

// defaultPatterns builds the built-in pattern database. Categories map
// to the funding organization's vetting guidelines.
func defaultPatterns() []patternGroup {
	leaders := regimes.KnownLeaders()
	top20 := escapeAlternation(leaders[:20])

	despotAdmiration := []PatternEntry{
		{`\b(hitler|stalin|mao|pol\s+pot)\s+(was\s+)?(right|correct|misunderstood)\b`, models.SeverityCritical},
		{`\b(admire|respect|support)\s+(hitler|stalin|mao|pol\s+pot|mussolini|franco)\b`, models.SeverityCritical},
		{`\b(hitler|stalin|mao)\s+did\s+(some\s+)?(good|nothing\s+wrong)\b`, models.SeverityCritical},
	}
	for _, leader := range leaders[:30] {
		despotAdmiration = append(despotAdmiration, PatternEntry{
			Pattern:  `\b(admire|respect|support)\s+` + regexp.QuoteMeta(leader) + `\b`,
			Severity: models.SeverityHigh,
		})
	}

	return []patternGroup{
		{
			category: CategoryViolenceAdvocacy,
			entries: []PatternEntry{
				{`\b(kill|murder|assassinate|execute)\s+(the\s+)?(government|president|leader|politician)`, models.SeverityCritical},
				{`\bviolent\s+(revolution|uprising|overthrow)\b`, models.SeverityHigh},
				{`\b(armed|violent)\s+resistance\b`, models.SeverityHigh},
				{`\btake\s+up\s+arms\b`, models.SeverityHigh},
				{`\bblood\s+(must|will|shall)\s+(flow|be\s+spilled)\b`, models.SeverityHigh},
				{`\bonly\s+(violence|war)\s+(can|will)\s+solve\b`, models.SeverityHigh},
				{`\bpeaceful\s+protest\s+(is\s+)?useless\b`, models.SeverityMedium},
				{`\b(support|celebrate)\s+(terrorism|terrorist)\b`, models.SeverityCritical},
				{`\bby\s+any\s+means\s+necessary\b`, models.SeverityMedium},
				{`\btime\s+for\s+action\b`, models.SeverityLow},
			},
		},
		{
			category: CategoryHateSpeech,
			entries: []PatternEntry{
				{`\b(subhuman|untermensch)\b`, models.SeverityCritical},
				{`\bethnic\s+cleansing\b`, models.SeverityCritical},
				{`\b(racial|white|black|jewish|muslim)\s+supremacy\b`, models.SeverityCritical},
				{`\b(homosexuality|being\s+gay)\s+(is\s+)?(a\s+)?(sin|disease|mental\s+illness|abomination)\b`, models.SeverityHigh},
				{`\b(gay|lgbt)\s+agenda\b`, models.SeverityMedium},
				{`\banti-(gay|lgbt|homosexual)\b`, models.SeverityMedium},
				{`\b(immigrants?|refugees?|migrants?)\s+(are\s+)?(all\s+)?(criminals?|terrorists?|invaders?)\b`, models.SeverityHigh},
				{`\bclose\s+the\s+borders?\b`, models.SeverityLow},
				{`\b(invasion|great\s+replacement)\b`, models.SeverityMedium},
				{`\b(ban|outlaw)\s+(islam|muslims?|christianity|christians?|judaism|jews?)\b`, models.SeverityHigh},
				{`\b(all\s+)?(muslims?|jews?|christians?)\s+(are\s+)?(terrorists?|evil)\b`, models.SeverityCritical},
				{`\b(death\s+to|kill\s+all)\s+\w+\b`, models.SeverityCritical},
			},
		},
		{
			category: CategoryRegimePraise,
			entries: []PatternEntry{
				{`\b(great|strong|effective|successful)\s+(leader|leadership)\b.*(` + top20 + `)`, models.SeverityHigh},
				{`\b(` + top20 + `)\s+(is|was)\s+(right|correct|great|visionary)\b`, models.SeverityHigh},
				{`\b(china|russia|iran|cuba|venezuela|north\s+korea)\s+(is\s+)?(actually|not\s+that)\s+(democratic|free|good)\b`, models.SeverityHigh},
				{`\bwestern\s+(propaganda|lies)\s+about\s+(china|russia|iran)\b`, models.SeverityMedium},
				{`\b(ccp|chinese\s+communist\s+party)\s+(is\s+)?(effective|good|successful)\b`, models.SeverityHigh},
			},
		},
		{
			category: CategoryDemocracyCritique,
			entries: []PatternEntry{
				{`\b(us|usa|america|west|europe)\s+(is\s+)?(just\s+as\s+bad|no\s+better|worse\s+than)\s+(china|russia|iran)\b`, models.SeverityHigh},
				{`\bdemocracy\s+(is\s+)?(a\s+)?(lie|illusion|facade|sham)\b`, models.SeverityMedium},
				{`\b(western|american)\s+(democracy|freedom)\s+(is\s+)?(fake|false|hypocrisy)\b`, models.SeverityMedium},
				{`\bso-called\s+(free|democratic)\s+(world|countries)\b`, models.SeverityMedium},
				{`\bdemocracy\s+(doesn't|does\s+not)\s+work\b`, models.SeverityMedium},
				{`\bauthoritarian\s+(systems?|regimes?)\s+(are\s+)?(more\s+)?(efficient|effective)\b`, models.SeverityHigh},
			},
		},
		{
			category: CategoryDespotAdmiration,
			entries:  despotAdmiration,
		},
		{
			category: CategoryFinancialDealings,
			entries: []PatternEntry{
				{`\b(business|deal|contract|investment)\s+(with|in)\s+(russia|china|iran|north\s+korea|venezuela|cuba|syria)\b`, models.SeverityMedium},
				{`\b(partnership|collaboration)\s+(with|for)\s+(` + escapeAlternation(regimes.KnownEntities()) + `)`, models.SeverityHigh},
				{`\b(funded|financed|sponsored)\s+by\s+(russia|china|iran|qatar|saudi)\b`, models.SeverityHigh},
			},
		},
		{
			category: CategoryUnprofessional,
			entries: []PatternEntry{
				{`\b(fuck|shit|damn)\s+(you|this|that|everyone)\b`, models.SeverityLow},
				{`\b(idiot|moron|stupid|dumb)\b`, models.SeverityLow},
				{`\b(harass|stalk|threaten)\b`, models.SeverityMedium},
				{`\b(dox|doxx|doxxing)\b`, models.SeverityMedium},
				{`\b(flat\s+earth|moon\s+landing\s+(was\s+)?fake|chemtrails)\b`, models.SeverityLow},
				{`\b(illuminati|deep\s+state|new\s+world\s+order)\s+(controls?|runs?)\b`, models.SeverityLow},
			},
		},
		{
			category: CategoryCriminalActivity,
			entries: []PatternEntry{
				{`\b(arrested|charged|convicted|indicted)\s+(for|of|with)\b`, models.SeverityMedium},
				{`\b(fraud|embezzlement|corruption|bribery)\s+(charges?|conviction|scandal)\b`, models.SeverityHigh},
				{`\b(assault|battery)\s+(charges?|conviction)\b`, models.SeverityHigh},
				{`\b(sexual\s+)?(harassment|misconduct)\s+(allegations?|charges?|lawsuit)\b`, models.SeverityHigh},
			},
		},
	}
}
