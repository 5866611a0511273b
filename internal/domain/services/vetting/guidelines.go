package vetting

// Guideline categories flags are filed under
const (
	GuidelineAuthoritarianConnection = "authoritarian_connection"
	GuidelineDemocracyCriticism      = "democracy_criticism"
	GuidelinePoliticalPartisanship   = "political_partisanship"
	GuidelineViolenceAdvocacy        = "violence_advocacy"
	GuidelineHateSpeech              = "hate_speech"
	GuidelineRegimePraise            = "regime_praise"
	GuidelineDespotAdmiration        = "despot_admiration"
	GuidelineFinancialDealings       = "financial_dealings"
	GuidelineUnprofessional          = "unprofessional"
	GuidelineCriminalRecord          = "criminal_record"
	GuidelineSanctions               = "sanctions"
	GuidelineBusinessConcerns        = "business_concerns"
)

// Guideline is one vetting guideline an applicant is screened against
type Guideline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
}

// Guidelines defines the funding organization's vetting guidelines,
// keyed by category
var Guidelines = map[string]Guideline{
	GuidelineAuthoritarianConnection: {
		Title:       "Authoritarian Regime Connection",
		Description: "Individual is from and/or doing work relevant to a country with an authoritarian regime.",
		Reference:   "Guideline 1",
	},
	GuidelineDemocracyCriticism: {
		Title:       "Unqualified Democracy Criticism",
		Description: "Engaged in unqualified criticism of democracies, making blunt equivalences between democracies and non-democracies.",
		Reference:   "Guideline 2",
	},
	GuidelinePoliticalPartisanship: {
		Title:       "Excessive Political Partisanship",
		Description: "Displayed excessive political partisanship when dealing with democratic governments on social media.",
		Reference:   "Guideline 3",
	},
	GuidelineViolenceAdvocacy: {
		Title:       "Violence Advocacy",
		Description: "Has used or advocated for the use of violence as a valid method to fight government oppression.",
		Reference:   "Guideline 4",
	},
	GuidelineHateSpeech: {
		Title:       "Hate Speech / Intolerance",
		Description: "Expressed xenophobic, homophobic, or other intolerant views or opinions, or displayed clear instances of hate speech.",
		Reference:   "Guideline 5",
	},
	GuidelineRegimePraise: {
		Title:       "Authoritarian Regime Relationship/Praise",
		Description: "Has a relationship with, or expressed praise for, hybrid authoritarian or fully authoritarian regimes.",
		Reference:   "Guideline 6",
	},
	GuidelineDespotAdmiration: {
		Title:       "Despot/Dictator Admiration",
		Description: "Expressed admiration for despots, dictators, or tyrants.",
		Reference:   "Guideline 7",
	},
	GuidelineFinancialDealings: {
		Title:       "Financial Dealings with Dictatorships",
		Description: "Engaged in significant financial or commercial dealings with dictatorships or their instrumentalities.",
		Reference:   "Guideline 8",
	},
	GuidelineUnprofessional: {
		Title:       "Lack of Professionalism",
		Description: "Displays a lack of professionalism.",
		Reference:   "Guideline 9",
	},
	GuidelineCriminalRecord: {
		Title:       "Criminal Record",
		Description: "Has been investigated for, charged with, or convicted of any type of crime.",
		Reference:   "Guideline 10",
	},
	GuidelineSanctions: {
		Title:       "International Sanctions",
		Description: "Subject to international sanctions.",
		Reference:   "Guideline 11",
	},
	GuidelineBusinessConcerns: {
		Title:       "Business Ownership Concerns",
		Description: "Owner or operator of private companies the funding organization should be aware of.",
		Reference:   "Guideline 12",
	},
}

// categoryToGuideline maps detector categories to guideline categories
var categoryToGuideline = map[string]string{
	CategoryViolenceAdvocacy:  GuidelineViolenceAdvocacy,
	CategoryHateSpeech:        GuidelineHateSpeech,
	CategoryRegimePraise:      GuidelineRegimePraise,
	CategoryDemocracyCritique: GuidelineDemocracyCriticism,
	CategoryDespotAdmiration:  GuidelineDespotAdmiration,
	CategoryFinancialDealings: GuidelineFinancialDealings,
	CategoryUnprofessional:    GuidelineUnprofessional,
	CategoryCriminalActivity:  GuidelineCriminalRecord,
	CategoryLeaderMention:     GuidelineRegimePraise,
	CategoryEntityMention:     GuidelineRegimePraise,
	CategoryCountryMention:    GuidelineAuthoritarianConnection,
}

// GuidelineFor maps a detector category to its guideline category.
// Unmapped categories pass through unchanged.
func GuidelineFor(category string) string {
	if g, ok := categoryToGuideline[category]; ok {
		return g
	}
	return category
}
