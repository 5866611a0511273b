package sanctions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantvet/pkg/logger"
)

func newTestChecker(t *testing.T, cfg Config, cache Cache) *Checker {
	t.Helper()
	return NewChecker(cfg, cache, logger.NewDefault())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "John Smith", []string{"john", "smith"}},
		{"punctuation stripped", "O'Brien, James", []string{"brien", "james"}},
		{"title dropped", "Dr. John Smith Jr.", []string{"john", "smith"}},
		{"single characters dropped", "J Smith", []string{"smith"}},
		{"empty", "", nil},
		{"only stopwords", "Mr. Sr.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeName(tt.in))
		})
	}
}

func TestCheckNameWebAPI(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"name":     q.Get("name"),
			"type":     q.Get("type"),
			"minScore": q.Get("minScore"),
			"country":  q.Get("country"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"name":"SMITH, John","score":95,"sdnType":"Individual","programs":["UKRAINE-EO13662"],"remarks":"test entry"},
			{"name":"SMITHE, Jon","score":62,"sdnType":"Individual","programs":["SDGT"]}
		]}`))
	}))
	defer server.Close()

	c := newTestChecker(t, Config{SearchURL: server.URL, MinScore: 80}, nil)
	result := c.CheckName(context.Background(), "John Smith", "Russia")

	assert.Equal(t, "John Smith", result.Query)
	assert.Equal(t, "ofac_api", result.Source)
	assert.Empty(t, result.Error)
	assert.True(t, result.IsMatch)

	// results under the minimum score are filtered out
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "SMITH, John", result.Matches[0].Name)
	assert.Equal(t, float64(95), result.Matches[0].Score)
	assert.Equal(t, "UKRAINE-EO13662", result.Matches[0].Program)
	assert.Equal(t, "test entry", result.Matches[0].Remarks)

	assert.Equal(t, "John Smith", gotQuery["name"])
	assert.Equal(t, "individual", gotQuery["type"])
	assert.Equal(t, "80", gotQuery["minScore"])
	assert.Equal(t, "Russia", gotQuery["country"])
}

func TestCheckNameWebAPIAlternateShape(t *testing.T) {
	// Some responses use matches/matchScore/type instead
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[{"fullName":"DOE, Jane","matchScore":88,"type":"Entity","sanctionsPrograms":["IRAN","SYRIA"]}]}`))
	}))
	defer server.Close()

	c := newTestChecker(t, Config{SearchURL: server.URL}, nil)
	result := c.CheckName(context.Background(), "Jane Doe", "")

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "DOE, Jane", result.Matches[0].Name)
	assert.Equal(t, float64(88), result.Matches[0].Score)
	assert.Equal(t, "Entity", result.Matches[0].Type)
	assert.Equal(t, "IRAN, SYRIA", result.Matches[0].Program)
	assert.Equal(t, "SDN", result.Matches[0].ListName)
}

func TestCheckNameNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	c := newTestChecker(t, Config{SearchURL: server.URL}, nil)
	result := c.CheckName(context.Background(), "John Smith", "")

	assert.False(t, result.IsMatch)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Error)
}

func TestCheckNameSDNFallback(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()

	sdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(
			"ABDUL, Rahman Hamid|individual|IRAQ|some remarks\n" +
				"\n" +
				"PETROV, Ivan|individual|RUSSIA|other remarks\n" +
				"UNRELATED LINE WITHOUT THE TERMS\n"))
	}))
	defer sdn.Close()

	c := newTestChecker(t, Config{SearchURL: api.URL, SDNListURL: sdn.URL, MinScore: 80}, nil)
	result := c.CheckName(context.Background(), "Rahman Abdul", "")

	assert.Equal(t, "sdn_list", result.Source)
	assert.Empty(t, result.Error)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "ABDUL, Rahman Hamid", result.Matches[0].Name)
	assert.Equal(t, float64(100), result.Matches[0].Score)
	assert.Equal(t, "SDN-Local", result.Matches[0].ListName)
	assert.True(t, result.IsMatch)
}

func TestCheckNameSDNFallbackCountryFilter(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer api.Close()

	sdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(
			"PETROV, Ivan|individual|RUSSIA\n" +
				"PETROV, Ivan|individual|BELARUS\n"))
	}))
	defer sdn.Close()

	c := newTestChecker(t, Config{SearchURL: api.URL, SDNListURL: sdn.URL}, nil)
	result := c.CheckName(context.Background(), "Ivan Petrov", "Belarus")

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "PETROV, Ivan", result.Matches[0].Name)
}

func TestCheckNameBothSourcesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close() // connection refused for both endpoints

	c := newTestChecker(t, Config{SearchURL: server.URL, SDNListURL: server.URL, Timeout: 2 * time.Second}, nil)
	result := c.CheckName(context.Background(), "John Smith", "")

	assert.False(t, result.IsMatch)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Source)
}

type fakeCache struct {
	store map[string][]byte
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	f.sets++
	return nil
}

func TestCheckNameCaching(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"results":[{"name":"SMITH, John","score":95}]}`))
	}))
	defer server.Close()

	cache := newFakeCache()
	c := newTestChecker(t, Config{SearchURL: server.URL}, cache)

	first := c.CheckName(context.Background(), "John Smith", "Russia")
	second := c.CheckName(context.Background(), "John Smith", "Russia")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first.IsMatch, second.IsMatch)
	assert.Contains(t, cache.store, "sanctions:john-smith:russia")
}

func TestVerificationURL(t *testing.T) {
	c := newTestChecker(t, Config{}, nil)
	assert.Equal(t,
		"https://sanctionssearch.ofac.treas.gov/?name=John+Smith",
		c.VerificationURL("John Smith"))
}

func TestCheckerDefaults(t *testing.T) {
	c := newTestChecker(t, Config{}, nil)
	assert.Equal(t, "https://sanctionssearch.ofac.treas.gov/api/search", c.config.SearchURL)
	assert.Equal(t, "https://www.treasury.gov/ofac/downloads/sdnlist.txt", c.config.SDNListURL)
	assert.Equal(t, float64(80), c.config.MinScore)
	assert.Equal(t, 30*time.Second, c.config.Timeout)
	assert.Equal(t, time.Hour, c.config.CacheTTL)
}
