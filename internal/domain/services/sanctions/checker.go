// Package sanctions screens applicant names against the U.S. Treasury
// OFAC sanctions lists.
package sanctions

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"grantvet/internal/domain/models"
	"grantvet/pkg/logger"
)

// Cache stores serialized check results keyed by query
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Config holds settings for the sanctions checker
type Config struct {
	SearchURL  string
	SDNListURL string
	MinScore   float64
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// Checker screens names against OFAC lists. It tries the web search
// API first and falls back to a term match over the published SDN
// plain-text list when the API is unavailable.
type Checker struct {
	config     Config
	httpClient *http.Client
	cache      Cache
	logger     *logger.Logger
}

// NewChecker creates a sanctions checker. The cache is optional.
func NewChecker(config Config, cache Cache, log *logger.Logger) *Checker {
	if config.SearchURL == "" {
		config.SearchURL = "https://sanctionssearch.ofac.treas.gov/api/search"
	}
	if config.SDNListURL == "" {
		config.SDNListURL = "https://www.treasury.gov/ofac/downloads/sdnlist.txt"
	}
	if config.MinScore == 0 {
		config.MinScore = 80
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}

	return &Checker{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache:  cache,
		logger: log.WithComponent("sanctions-checker"),
	}
}

// CheckName screens a name against the sanctions lists. Lookup errors
// are recorded on the result rather than returned, so a failed screen
// never blocks the rest of an analysis.
func (c *Checker) CheckName(ctx context.Context, name, country string) *models.SanctionsCheckResult {
	result := &models.SanctionsCheckResult{
		ID:        uuid.New(),
		Query:     name,
		CheckedAt: time.Now().UTC(),
	}

	cacheKey := c.cacheKey(name, country)
	if c.cache != nil {
		var cached models.SanctionsCheckResult
		if found, err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			c.logger.Debug().Str("name", name).Msg("Sanctions result served from cache")
			return &cached
		}
	}

	c.logger.Info().Str("name", name).Msg("Checking OFAC sanctions")

	matches, err := c.searchWeb(ctx, name, country)
	if err != nil {
		c.logger.Warn().Err(err).Msg("OFAC web search failed, falling back to SDN list")
		matches, err = c.searchSDNList(ctx, name, country)
		if err != nil {
			c.logger.Error().Err(err).Str("name", name).Msg("Sanctions check failed")
			result.Error = err.Error()
			return result
		}
		result.Source = "sdn_list"
	} else {
		result.Source = "ofac_api"
	}

	for _, m := range matches {
		if m.Score >= c.config.MinScore {
			result.Matches = append(result.Matches, m)
		}
	}
	result.IsMatch = len(result.Matches) > 0

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, result, c.config.CacheTTL); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache sanctions result")
		}
	}

	return result
}

// VerificationURL returns a link to the official search page so a
// reviewer can verify a result manually
func (c *Checker) VerificationURL(name string) string {
	return "https://sanctionssearch.ofac.treas.gov/?name=" + url.QueryEscape(name)
}

func (c *Checker) cacheKey(name, country string) string {
	key := strings.Join(normalizeName(name), "-")
	if country != "" {
		key += ":" + strings.ToLower(strings.TrimSpace(country))
	}
	return "sanctions:" + key
}

type ofacResult struct {
	Name              string   `json:"name"`
	FullName          string   `json:"fullName"`
	Score             *float64 `json:"score"`
	MatchScore        *float64 `json:"matchScore"`
	SDNType           string   `json:"sdnType"`
	Type              string   `json:"type"`
	Programs          []string `json:"programs"`
	SanctionsPrograms []string `json:"sanctionsPrograms"`
	Remarks           string   `json:"remarks"`
	Source            string   `json:"source"`
}

type ofacResponse struct {
	Results []ofacResult `json:"results"`
	Matches []ofacResult `json:"matches"`
}

func (c *Checker) searchWeb(ctx context.Context, name, country string) ([]models.SanctionsMatch, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("type", "individual")
	q.Set("minScore", fmt.Sprintf("%.0f", c.config.MinScore))
	if country != "" {
		q.Set("country", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.SearchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ofac search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ofac search returned status %d", resp.StatusCode)
	}

	var payload ofacResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ofac response: %w", err)
	}

	results := payload.Results
	if len(results) == 0 {
		results = payload.Matches
	}

	matches := make([]models.SanctionsMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, parseOFACResult(r))
	}
	return matches, nil
}

func parseOFACResult(r ofacResult) models.SanctionsMatch {
	name := r.Name
	if name == "" {
		name = r.FullName
	}

	score := 100.0
	if r.Score != nil {
		score = *r.Score
	} else if r.MatchScore != nil {
		score = *r.MatchScore
	}

	sdnType := r.SDNType
	if sdnType == "" {
		sdnType = r.Type
	}
	if sdnType == "" {
		sdnType = "Individual"
	}

	programs := r.Programs
	if len(programs) == 0 {
		programs = r.SanctionsPrograms
	}

	listName := r.Source
	if listName == "" {
		listName = "SDN"
	}

	return models.SanctionsMatch{
		Name:     name,
		Type:     sdnType,
		Program:  strings.Join(programs, ", "),
		Score:    score,
		ListName: listName,
		Remarks:  r.Remarks,
	}
}

const maxSDNMatches = 10

// searchSDNList scans the published plain-text SDN list for lines
// containing at least half of the normalized name terms
func (c *Checker) searchSDNList(ctx context.Context, name, country string) ([]models.SanctionsMatch, error) {
	terms := normalizeName(name)
	if len(terms) == 0 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.SDNListURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sdn list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sdn list returned status %d", resp.StatusCode)
	}

	countryLower := strings.ToLower(country)
	var matches []models.SanctionsMatch

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		lineLower := strings.ToLower(line)
		termMatches := 0
		for _, term := range terms {
			if strings.Contains(lineLower, term) {
				termMatches++
			}
		}
		if float64(termMatches) < float64(len(terms))*0.5 {
			continue
		}
		if country != "" && !strings.Contains(lineLower, countryLower) {
			continue
		}

		entryName := line
		if i := strings.Index(line, "|"); i >= 0 {
			entryName = line[:i]
		}
		entryName = strings.TrimSpace(entryName)
		if len(entryName) > 100 {
			entryName = entryName[:100]
		}

		matches = append(matches, models.SanctionsMatch{
			Name:     entryName,
			Type:     "Individual",
			Program:  "SDN",
			Score:    float64(termMatches) / float64(len(terms)) * 100,
			ListName: "SDN-Local",
		})

		if len(matches) >= maxSDNMatches {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sdn list: %w", err)
	}

	return matches, nil
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// name prefixes and suffixes that carry no matching signal
var nameStopwords = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true,
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
}

// normalizeName splits a name into lowercase search terms, dropping
// titles, suffixes, and single characters
func normalizeName(name string) []string {
	cleaned := nonWordRe.ReplaceAllString(name, " ")
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(cleaned)) {
		if len(t) > 1 && !nameStopwords[t] {
			terms = append(terms, t)
		}
	}
	return terms
}
