package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantvet/internal/domain/models"
	"grantvet/internal/domain/services/vetting"
	"grantvet/pkg/logger"
)

func newAnalysisHandler(t *testing.T, strict bool) *AnalysisHandler {
	t.Helper()
	log := logger.NewDefault()
	analyzer := vetting.NewAnalyzer(log, vetting.NewDetector(log, nil), strict)
	svc := vetting.NewService(nil, analyzer, nil, log)
	return NewAnalysisHandler(svc, nil, log)
}

func TestAnalyzeText(t *testing.T) {
	h := newAnalysisHandler(t, false)

	body := `{"text":"We must take up arms against them"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.AnalyzeText(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TextAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "take up arms", resp.Matches[0].Keyword)
	assert.Equal(t, "violence_advocacy", resp.Matches[0].Category)
	assert.Equal(t, models.SeverityHigh, resp.Matches[0].Severity)
	assert.Equal(t, 15, resp.SeverityScore)
}

func TestAnalyzeTextStrictOverride(t *testing.T) {
	h := newAnalysisHandler(t, false)

	body := `{"text":"I once met Putin","strict":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.AnalyzeText(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TextAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Putin", resp.Matches[0].Keyword)
	assert.Equal(t, "authoritarian_mention", resp.Matches[0].Category)
}

func TestAnalyzeTextValidation(t *testing.T) {
	h := newAnalysisHandler(t, false)

	tests := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":""}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.AnalyzeText(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGuidelines(t *testing.T) {
	h := newAnalysisHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guidelines", nil)
	rec := httptest.NewRecorder()
	h.Guidelines(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var guidelines map[string]vetting.Guideline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guidelines))
	assert.Len(t, guidelines, 12)
	assert.Equal(t, "Violence Advocacy", guidelines["violence_advocacy"].Title)
	assert.Equal(t, "Guideline 11", guidelines["sanctions"].Reference)
}
