package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLine redirects l into a buffer, emits one info record and decodes it.
func logLine(t *testing.T, l *Logger, msg string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Info().Msg(msg)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

func TestNewLogger(t *testing.T) {
	l := NewLogger("doc-vault-test")
	require.NotNil(t, l)

	entry := logLine(t, l, "hello")

	assert.Equal(t, "doc-vault-test", entry["role"])
	assert.Contains(t, entry, "time")

	// NewLogger configures zerolog globals as a side effect.
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	parent := NewLogger("vault-parent")
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)

	// Inherited fields survive the copy.
	entry := logLine(t, child, "child record")
	assert.Equal(t, "vault-parent", entry["role"])

	// Enriching the child leaves the parent untouched.
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})
	parentEntry := logLine(t, parent.GetChildLogger(), "parent record")
	assert.NotContains(t, parentEntry, "trace_id")
}

func TestFromContext(t *testing.T) {
	t.Run("bare context yields a usable logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("returns the attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		attached := zerolog.New(&buf).With().Str("request", "document.create").Logger()
		ctx := attached.WithContext(context.Background())

		FromContext(ctx).Info().Msg("dispatched")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "document.create", entry["request"])
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("bare request yields a usable logger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		require.NotNil(t, FromRequest(req))
	})

	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var buf bytes.Buffer
		attached := zerolog.New(&buf).With().Str("trace_id", "trace-42").Logger()

		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		req = req.WithContext(attached.WithContext(req.Context()))

		FromRequest(req).Info().Msg("handled")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "trace-42", entry["trace_id"])
	})
}
