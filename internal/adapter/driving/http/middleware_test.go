package httphandler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuietPath(t *testing.T) {
	assert.True(t, quietPath("/static/style.css"))
	assert.True(t, quietPath("/api/v1/health"))
	assert.False(t, quietPath("/"))
	assert.False(t, quietPath("/api/v1/repos"))
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("hello")) })
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("GET /fail", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) })
	h := loggingMiddleware(logger, mux)

	for _, path := range []string{"/ok", "/api/v1/health", "/fail"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"http request\" method=GET path=/ok status=200 bytes=5")
	assert.NotContains(t, out, "path=/api/v1/health")
	assert.Contains(t, out, "level=WARN msg=\"http request\" method=GET path=/fail status=502")
}
