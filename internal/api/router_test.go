package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	r := setupRouterWithMock(&mockDashboard{comparison: sampleComparison()})

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /",
		"GET /swagger/*any",
		"GET /api/v1/presets",
		"GET /api/v1/compare",
		"GET /api/v1/yearly",
		"GET /api/v1/head-to-head",
		"GET /api/v1/charts/closing.png",
		"GET /api/v1/charts/normalized.png",
		"GET /api/v1/charts/head-to-head.png",
	} {
		if !routes[want] {
			t.Fatalf("route %q not registered", want)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/compare", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	r := NewRouter(NewHandler(&mockDashboard{comparison: sampleComparison()}, nil), RouterOptions{RequestTimeout: time.Second, RateLimit: 1})

	var codes []int
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes=%v", codes)
	}
}
