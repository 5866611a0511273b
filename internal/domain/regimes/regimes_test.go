package regimes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		country         string
		classification  string
		region          string
		isAuthoritarian bool
	}{
		{"democratic americas", "United States", Democratic, RegionAmericas, false},
		{"democratic alias", "USA", Democratic, RegionAmericas, false},
		{"democratic europe", "Germany", Democratic, RegionEurope, false},
		{"fully authoritarian europe", "Russia", FullyAuthoritarian, RegionEurope, true},
		{"fully authoritarian alias", "DPRK", FullyAuthoritarian, RegionAsiaPacific, true},
		{"fully authoritarian americas", "Cuba", FullyAuthoritarian, RegionAmericas, true},
		{"hybrid asia pacific", "India", HybridAuthoritarian, RegionAsiaPacific, true},
		{"hybrid africa", "Kenya", HybridAuthoritarian, RegionAfrica, true},
		{"unclassified", "Haiti", Unclassified, RegionAmericas, false},
		{"unknown", "Atlantis", Unknown, RegionUnknown, false},
		{"whitespace trimmed", "  Venezuela  ", FullyAuthoritarian, RegionAmericas, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Classify(tt.country)
			assert.Equal(t, tt.classification, info.Classification)
			assert.Equal(t, tt.region, info.Region)
			assert.Equal(t, tt.isAuthoritarian, info.IsAuthoritarian)
		})
	}
}

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsFullyAuthoritarian("China"))
	assert.False(t, IsFullyAuthoritarian("India"))
	assert.True(t, IsHybridAuthoritarian("Hungary"))
	assert.False(t, IsHybridAuthoritarian("Belarus"))
	assert.True(t, IsAuthoritarian("Singapore"))
	assert.False(t, IsAuthoritarian("Norway"))
	assert.False(t, IsAuthoritarian("Haiti"))
}

func TestKnownLeadersOrder(t *testing.T) {
	leaders := KnownLeaders()

	// Current heads of state lead the list; the detector slices the
	// head for its dynamic patterns
	assert.Equal(t, "Xi Jinping", leaders[0])
	assert.GreaterOrEqual(t, len(leaders), 70)

	// Returned slice is a copy
	leaders[0] = "changed"
	assert.Equal(t, "Xi Jinping", KnownLeaders()[0])
}

func TestKnownEntities(t *testing.T) {
	entities := KnownEntities()
	assert.Contains(t, entities, "Wagner Group")
	assert.Contains(t, entities, "CCP")
	assert.Len(t, entities, 15)
}

func TestAuthoritarianCountryLists(t *testing.T) {
	fully := FullyAuthoritarianCountries()
	hybrid := HybridAuthoritarianCountries()

	assert.Contains(t, fully, "North Korea")
	assert.Contains(t, hybrid, "El Salvador")
	assert.NotContains(t, fully, "France")

	all := AuthoritarianCountries()
	assert.Len(t, all, len(fully)+len(hybrid))
}
