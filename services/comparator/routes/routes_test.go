// Tests for route registration.

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubComparison struct{}

func (stubComparison) Compare(context.Context, *datatypes.CompareRequest) (*datatypes.CompareResponse, error) {
	return &datatypes.CompareResponse{Status: datatypes.DiffPass}, nil
}

func (stubComparison) AnalyzeContent(context.Context, *datatypes.CQIRequest) *datatypes.CQIResponse {
	return &datatypes.CQIResponse{}
}

func (stubComparison) DriftProviders() []string { return []string{"lexical"} }
func (stubComparison) Dictionaries() []string   { return []string{"en"} }

func request(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

const validCompareBody = `{"url": "https://example.com", "locator": "body", "type": "css", "pastedContent": "x"}`

func TestRoutesRegistered(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, stubComparison{}, "")

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/providers", "", http.StatusOK},
		{http.MethodPost, "/compare", validCompareBody, http.StatusOK},
		{http.MethodPost, "/cqi", `{"pastedContent": "x"}`, http.StatusOK},
		{http.MethodGet, "/v1/providers", "", http.StatusOK},
		{http.MethodPost, "/v1/compare", validCompareBody, http.StatusOK},
		{http.MethodPost, "/v1/cqi", `{"pastedContent": "x"}`, http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := request(router, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoutesAuthProtection(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, stubComparison{}, "s3cret")

	// Probes and scrapers stay open.
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/metrics", "", "").Code)

	// API requires the token.
	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodPost, "/compare", validCompareBody, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/providers", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, "/compare", validCompareBody, "s3cret").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/v1/providers", "", "s3cret").Code)
}
