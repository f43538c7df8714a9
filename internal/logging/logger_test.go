package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriter_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, false)

	logger.Debug("hidden")
	logger.WithFields(map[string]any{"user_id": "u1"}).Info("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "u1", record["user_id"])
}

func TestNewLoggerWithWriter_Development(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter(&buf, true).Debug("visible")

	assert.Contains(t, buf.String(), "msg=visible")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter(&buf, false)

	var fromCtx *Logger
	handler := middleware.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotNil(t, fromCtx)
	assert.NotSame(t, base, fromCtx)

	out := buf.String()
	assert.Contains(t, out, `"msg":"request completed"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"path":"/health"`)
	assert.Contains(t, out, `"request_id"`)
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	assert.NotNil(t, GetLoggerFromContext(context.Background()))

	logger := Discard()
	assert.Same(t, logger, GetLoggerFromContext(WithLogger(context.Background(), logger)))
}
