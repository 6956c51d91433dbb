package app

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmkit/internal/config"
	"crmkit/internal/infrastructure"
	"crmkit/internal/llm"
	"crmkit/internal/services"
)

// newTestApplication wires an application without config.Load or global
// metric registration so tests stay isolated.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0},
		LLM: config.LLMConfig{
			Temperature: 0.3,
			MaxTokens:   2048,
		},
		Analysis: config.AnalysisConfig{
			MaxRows:        10000,
			MinColumns:     2,
			SampleSize:     100,
			MaxUploadBytes: 1 << 20,
		},
		Security: config.SecurityConfig{
			RateLimit: config.RateLimitConfig{Enabled: false},
		},
	}

	logger := slog.Default()
	narrator := llm.Disabled()
	metrics := infrastructure.NewMetrics(prometheus.NewRegistry())

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Quality: services.NewQualityService(cfg, narrator, metrics, logger),
		Assist:  services.NewAssistService(cfg, narrator, logger),
	}
	app.Router = app.setupRouter()
	return app
}

func TestRouter_Health(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_Metrics(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestRouter_AssistWithoutClient(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/api/assist/lead", nil)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	// nil body fails JSON decoding before the service runs
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
