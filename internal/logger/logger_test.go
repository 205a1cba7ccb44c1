package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ledger")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "ledger", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	l := NewClientLogger("client", path)
	l.Info().Str("address", "0xabc").Msg("registered")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entry := decodeEntry(t, data)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "0xabc", entry["address"])
}

func TestNewClientLogger_UnwritablePathFallsBack(t *testing.T) {
	l := NewClientLogger("client", filepath.Join(t.TempDir(), "missing", "dir", "client.log"))
	require.NotNil(t, l)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("client")
	parent.Logger = parent.Output(&buf)

	child := parent.Component("coordinator")
	assert.NotSame(t, parent, child)

	child.Info().Msg("tick")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "coordinator", entry["component"])
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	parent := NewLogger("parent")
	assert.NotSame(t, parent, parent.GetChildLogger())
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "t-2", decodeEntry(t, buf.Bytes())["trace_id"])
}
