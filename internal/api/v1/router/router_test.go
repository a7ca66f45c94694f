package router

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seoinspector/internal/api/v1/handler"
	"seoinspector/internal/bridge"
	"seoinspector/internal/config"
	"seoinspector/internal/service"
)

func newTestRouter(cfg *config.Config) http.Handler {
	h := handler.New(service.NewInspector(
		bridge.NewHTTPBridge("test-agent", time.Second),
		service.NewProber("test-agent", time.Second),
		nil,
	))
	return New(h, cfg)
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(&config.Config{RateLimitRPS: 10, RateLimitBurst: 10})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, BasePath+"/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, h := range []string{"X-Request-ID", "X-Content-Type-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("%s not set", h)
		}
	}
}

func TestRouterUnknownPath(t *testing.T) {
	r := newTestRouter(&config.Config{RateLimitRPS: 10, RateLimitBurst: 10})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, BasePath+"/analyze", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouterBasicAuth(t *testing.T) {
	r := newTestRouter(&config.Config{
		RateLimitRPS:   10,
		RateLimitBurst: 10,
		BasicAuthUser:  "admin",
		BasicAuthPass:  "secret",
	})

	tests := []struct {
		name       string
		auth       string
		wantStatus int
	}{
		{"No credentials", "", http.StatusUnauthorized},
		{"Valid credentials", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret")), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, BasePath+"/health", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMetricsRouter(t *testing.T) {
	// One request through the API so the HTTP collectors have a sample.
	api := newTestRouter(&config.Config{RateLimitRPS: 10, RateLimitBurst: 10})
	api.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, BasePath+"/health", nil))

	rec := httptest.NewRecorder()
	NewMetricsRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Error("http_requests_total not exported")
	}
}
