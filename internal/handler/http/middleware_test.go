package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
		wantCalled  bool
	}{
		{"post json", http.MethodPost, "application/json", http.StatusOK, true},
		{"post json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK, true},
		{"post without content type", http.MethodPost, "", http.StatusUnsupportedMediaType, false},
		{"post form", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, false},
		{"get without content type", http.MethodGet, "", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/properties", strings.NewReader(`{"key":"value"}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantStatus == http.StatusUnsupportedMediaType {
				assert.Contains(t, rr.Body.String(), "UNSUPPORTED_MEDIA_TYPE")
			}
		})
	}
}
