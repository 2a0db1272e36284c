package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		expect zapcore.Level
	}{
		{"", zap.InfoLevel},
		{"INFO", zap.InfoLevel},
		{"DEBUG", zap.DebugLevel},
		{"WARN", zap.WarnLevel},
		{"ERROR", zap.ErrorLevel},
		{"debug", zap.DebugLevel},
		{"  warn  ", zap.WarnLevel},
		{"invalid", zap.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, parseLogLevel(tt.in).Level(), "parseLogLevel(%q)", tt.in)
	}
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "weatherpi.log")

	logger, err := NewLogger(path, "debug")
	require.NoError(t, err)
	logger.Debug("hello kiosk", zap.String("k", "v"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello kiosk")
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	logger, err := NewLogger("  ", "info")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestRouter_Healthz(t *testing.T) {
	last := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)
	healthy := true
	router := NewRouter(func() Health {
		return Health{State: "running", Healthy: healthy, LastUpdate: &last}
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "running", got.State)
	assert.True(t, got.Healthy)
	require.NotNil(t, got.LastUpdate)
	assert.True(t, got.LastUpdate.Equal(last))

	healthy = false
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	ClockTicksTotal.Inc()
	router := NewRouter(func() Health { return Health{Healthy: true} })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clockTicksTotal")
}

func TestRouter_RejectsOtherMethods(t *testing.T) {
	router := NewRouter(func() Health { return Health{Healthy: true} })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
