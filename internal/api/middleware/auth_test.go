package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	var gotKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = GetAPIKey(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		method     string
		header     string
		wantStatus int
		wantKey    string
	}{
		{"valid key", "secret", http.MethodGet, "Bearer secret", http.StatusOK, "secret"},
		{"case insensitive scheme", "secret", http.MethodGet, "bearer secret", http.StatusOK, "secret"},
		{"wrong key", "secret", http.MethodGet, "Bearer wrong", http.StatusUnauthorized, ""},
		{"missing header", "secret", http.MethodGet, "", http.StatusUnauthorized, ""},
		{"malformed header", "secret", http.MethodGet, "secret", http.StatusUnauthorized, ""},
		{"auth disabled when unconfigured", "", http.MethodGet, "", http.StatusOK, ""},
		{"preflight skips auth", "secret", http.MethodOptions, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey = ""
			handler := APIKeyAuth(tt.configured)(next)

			req := httptest.NewRequest(tt.method, "/api/v1/applicants", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantKey, gotKey)
			}
		})
	}
}
