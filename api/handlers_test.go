package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gcbaptista/styleguide-search/config"
	"github.com/gcbaptista/styleguide-search/internal/engine"
	"github.com/gcbaptista/styleguide-search/internal/metrics"
	"github.com/gcbaptista/styleguide-search/model"
	"github.com/gcbaptista/styleguide-search/store"
)

func setupTestEngine() *engine.Engine {
	provider := store.MemoryProvider{
		"styles.csv": {
			{"Style Category": "Glassmorphism", "Type": "Modern", "Keywords": "glass blur frosted"},
			{"Style Category": "Brutalism", "Type": "Bold", "Keywords": "raw harsh"},
			{"Style Category": "Minimalism", "Type": "Clean", "Keywords": "simple whitespace"},
		},
		"stacks/react.csv": {
			{"Category": "State", "Guideline": "Use useState for local state", "Description": "Keep state close", "Severity": "Medium"},
			{"Category": "Effects", "Guideline": "Clean up effects", "Description": "Return a cleanup from useEffect", "Severity": "High"},
		},
	}
	return engine.NewEngine(config.DefaultRegistry(), provider)
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(zap.NewNop()))
	SetupRoutes(router, eng, config.SearchConfig{})
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// bundleResponse mirrors services.ResultBundle for decoding
type bundleResponse struct {
	Domain  string               `json:"domain"`
	Stack   string               `json:"stack"`
	Query   string               `json:"query"`
	Results []model.OutputRecord `json:"results"`
	Count   int                  `json:"count"`
	Error   string               `json:"error"`
}

func decodeBundle(t *testing.T, rr *httptest.ResponseRecorder) bundleResponse {
	t.Helper()
	var resp bundleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", rr.Body.String(), err)
	}
	return resp
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	rr := doRequest(router, "GET", "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %s", resp["status"])
	}
}

func TestSearchHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedDomain string
		expectedStack  string
		expectedCount  int
		expectedError  string
	}{
		{
			name:           "explicit domain",
			requestBody:    map[string]interface{}{"query": "glassmorphism blur", "domain": "styles"},
			expectedStatus: http.StatusOK,
			expectedDomain: "styles",
			expectedCount:  1,
		},
		{
			name:           "auto-detected domain",
			requestBody:    map[string]interface{}{"query": "brutalism raw"},
			expectedStatus: http.StatusOK,
			expectedDomain: "styles",
			expectedCount:  1,
		},
		{
			name:           "stack takes priority",
			requestBody:    map[string]interface{}{"query": "state", "domain": "styles", "stack": "react"},
			expectedStatus: http.StatusOK,
			expectedStack:  "react",
			expectedCount:  1,
		},
		{
			name:           "empty collection",
			requestBody:    map[string]interface{}{"query": "blue", "domain": "colors"},
			expectedStatus: http.StatusOK,
			expectedDomain: "colors",
			expectedCount:  0,
		},
		{
			name:           "max results",
			requestBody:    map[string]interface{}{"query": "glass raw simple", "domain": "styles", "max_results": 2},
			expectedStatus: http.StatusOK,
			expectedDomain: "styles",
			expectedCount:  2,
		},
		{
			name:           "unknown domain",
			requestBody:    map[string]interface{}{"query": "glass", "domain": "fonts"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Unknown domain: fonts. Available: [styles, prompts, colors, charts, landing, products, ux, typography]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, "POST", "/search", tt.requestBody)
			if rr.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}

			resp := decodeBundle(t, rr)
			if resp.Error != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, resp.Error)
			}
			if resp.Domain != tt.expectedDomain {
				t.Errorf("Expected domain %q, got %q", tt.expectedDomain, resp.Domain)
			}
			if resp.Stack != tt.expectedStack {
				t.Errorf("Expected stack %q, got %q", tt.expectedStack, resp.Stack)
			}
			if resp.Count != tt.expectedCount || len(resp.Results) != tt.expectedCount {
				t.Errorf("Expected %d results, got count %d with %d results", tt.expectedCount, resp.Count, len(resp.Results))
			}
		})
	}
}

func TestSearchHandlerBundleShape(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	rr := doRequest(router, "POST", "/search", map[string]interface{}{"query": "zebra", "domain": "styles"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"results":[]`) {
		t.Errorf("Expected an empty results array, got %s", body)
	}
	if strings.Contains(body, `"error"`) || strings.Contains(body, `"stack"`) {
		t.Errorf("Expected only domain result fields, got %s", body)
	}

	rr = doRequest(router, "POST", "/search", map[string]interface{}{"query": "zebra", "domain": "fonts"})
	var raw map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("Expected only the error key, got %v", raw)
	}
}

func TestSearchHandlerResultFieldOrder(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	rr := doRequest(router, "POST", "/search", map[string]interface{}{"query": "glass", "domain": "styles"})
	body := rr.Body.String()

	category := strings.Index(body, `"Style Category"`)
	typ := strings.Index(body, `"Type"`)
	keywords := strings.Index(body, `"Keywords"`)
	if category < 0 || typ < 0 || keywords < 0 {
		t.Fatalf("Expected projected fields in %s", body)
	}
	if !(category < typ && typ < keywords) {
		t.Errorf("Expected output field order to follow the registry, got %s", body)
	}
}

func TestSearchHandlerValidation(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	tests := []struct {
		name         string
		requestBody  interface{}
		expectedCode ErrorCode
	}{
		{"invalid JSON", "invalid json", ErrorCodeInvalidJSON},
		{"empty query", map[string]interface{}{"query": "   "}, ErrorCodeValidationFailed},
		{"negative max results", map[string]interface{}{"query": "glass", "max_results": -1}, ErrorCodeValidationFailed},
		{"max results over limit", map[string]interface{}{"query": "glass", "max_results": 101}, ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, "POST", "/search", tt.requestBody)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rr.Code)
			}

			var apiErr APIError
			if err := json.Unmarshal(rr.Body.Bytes(), &apiErr); err != nil {
				t.Fatalf("Failed to unmarshal error: %v", err)
			}
			if apiErr.Code != tt.expectedCode {
				t.Errorf("Expected code %s, got %s", tt.expectedCode, apiErr.Code)
			}
			if apiErr.RequestID == "" {
				t.Error("Expected request ID in error response")
			}
		})
	}
}

func TestStackSearchHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	t.Run("known stack", func(t *testing.T) {
		rr := doRequest(router, "POST", "/stacks/react/_search", map[string]interface{}{"query": "useEffect cleanup"})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}

		resp := decodeBundle(t, rr)
		if resp.Stack != "react" || resp.Count != 1 {
			t.Fatalf("Expected 1 react result, got %+v", resp)
		}
		if severity, _ := resp.Results[0].Get("Severity"); severity != "High" {
			t.Errorf("Expected severity High, got %q", severity)
		}
	})

	t.Run("unknown stack", func(t *testing.T) {
		rr := doRequest(router, "POST", "/stacks/cobol/_search", map[string]interface{}{"query": "loops"})
		if rr.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rr.Code)
		}

		resp := decodeBundle(t, rr)
		expected := "Unknown stack: cobol. Available: [html-tailwind, react, nextjs, vue, svelte, swiftui, react-native, flutter]"
		if resp.Error != expected {
			t.Errorf("Expected error %q, got %q", expected, resp.Error)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		rr := doRequest(router, "POST", "/stacks/react/_search", map[string]interface{}{})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}

func TestListHandlers(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	rr := doRequest(router, "GET", "/domains", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var domains struct {
		Domains       []config.CollectionSettings `json:"domains"`
		DefaultDomain string                      `json:"default_domain"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &domains); err != nil {
		t.Fatalf("Failed to unmarshal domains: %v", err)
	}
	if len(domains.Domains) != 8 || domains.Domains[0].Name != "styles" {
		t.Errorf("Expected 8 domains starting with styles, got %+v", domains.Domains)
	}
	if domains.DefaultDomain != "styles" {
		t.Errorf("Expected default domain styles, got %s", domains.DefaultDomain)
	}

	rr = doRequest(router, "GET", "/stacks", nil)
	var stacks struct {
		Stacks []config.CollectionSettings `json:"stacks"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stacks); err != nil {
		t.Fatalf("Failed to unmarshal stacks: %v", err)
	}
	if len(stacks.Stacks) != 8 || stacks.Stacks[7].Name != "flutter" {
		t.Errorf("Expected 8 stacks ending with flutter, got %+v", stacks.Stacks)
	}
}

func TestDetectDomainHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	rr := doRequest(router, "GET", "/detect?q=blue+color+palette", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["domain"] != "colors" {
		t.Errorf("Expected colors, got %s", resp["domain"])
	}
	if resp["query"] != "blue color palette" {
		t.Errorf("Expected query echoed back, got %s", resp["query"])
	}

	rr = doRequest(router, "GET", "/detect", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without q, got %d", rr.Code)
	}
}

func TestGetAnalyticsHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine())

	doRequest(router, "POST", "/search", map[string]interface{}{"query": "glass", "domain": "styles"})
	doRequest(router, "POST", "/search", map[string]interface{}{"query": "glass"})
	doRequest(router, "POST", "/stacks/cobol/_search", map[string]interface{}{"query": "loops"})

	rr := doRequest(router, "GET", "/analytics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var summary model.AnalyticsSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal summary: %v", err)
	}
	if summary.TotalSearches != 3 {
		t.Errorf("Expected 3 searches, got %d", summary.TotalSearches)
	}
	if summary.FailedSearches != 1 {
		t.Errorf("Expected 1 failed search, got %d", summary.FailedSearches)
	}
	if summary.AutoDetected != 1 {
		t.Errorf("Expected 1 auto-detected search, got %d", summary.AutoDetected)
	}
	if len(summary.SelectorUsage) != 1 || summary.SelectorUsage[0].Selector != "styles" || summary.SelectorUsage[0].SearchCount != 2 {
		t.Errorf("Expected styles searched twice, got %+v", summary.SelectorUsage)
	}
	if len(summary.PopularSearches) == 0 || summary.PopularSearches[0].Query != "glass" {
		t.Errorf("Expected glass as the most popular search, got %+v", summary.PopularSearches)
	}
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Middleware())
	eng := engine.NewEngine(config.DefaultRegistry(), store.MemoryProvider{}, engine.WithMetrics(m))
	SetupRoutes(router, eng, config.SearchConfig{})
	SetupMetricsRoute(router, reg)

	doRequest(router, "POST", "/search", map[string]interface{}{"query": "glass", "domain": "styles"})

	rr := doRequest(router, "GET", "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"styleguide_searches_total", "styleguide_http_requests_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected %s in metrics output", name)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestSizeLimitMiddleware(16))
	router.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("preflight", func(t *testing.T) {
		rr := doRequest(router, "OPTIONS", "/echo", nil)
		if rr.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", rr.Code)
		}
		if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected CORS header")
		}
	})

	t.Run("request id is generated", func(t *testing.T) {
		rr := doRequest(router, "POST", "/echo", map[string]string{"a": "b"})
		if rr.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rr.Code)
		}
		if rr.Header().Get(requestIDHeader) == "" {
			t.Error("Expected a generated request ID")
		}
	})

	t.Run("request id is propagated", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{}`))
		req.Header.Set(requestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if got := rr.Header().Get(requestIDHeader); got != "abc-123" {
			t.Errorf("Expected request ID abc-123, got %q", got)
		}
	})

	t.Run("body size limit", func(t *testing.T) {
		rr := doRequest(router, "POST", "/echo", map[string]string{"key": strings.Repeat("x", 64)})
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected status 413, got %d", rr.Code)
		}
	})
}
