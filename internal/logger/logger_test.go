package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_Fields verifies that every entry carries the role, a
// timestamp and the calling function.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test-role")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger_IsIndependent verifies that fields added to a child do
// not leak into the parent.
func TestGetChildLogger_IsIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "parent")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("child", "yes").Logger()

	parent.Info().Msg("from parent")

	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "child")
}

// TestWithHook_RunsHook verifies that the hook sees every event level.
func TestWithHook_RunsHook(t *testing.T) {
	var buf bytes.Buffer
	var levels []zerolog.Level
	l := newLogger(&buf, "hooks").WithHook(zerolog.HookFunc(func(_ *zerolog.Event, level zerolog.Level, _ string) {
		levels = append(levels, level)
	}))

	l.Info().Msg("one")
	l.Error().Msg("two")

	assert.Equal(t, []zerolog.Level{zerolog.InfoLevel, zerolog.ErrorLevel}, levels)
}

// TestFromContext_ReturnsAttachedLogger verifies that a logger stored with
// WithContext is returned by FromContext.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "ctx")
	ctx := l.With().Str("trace_id", "abc").Logger().WithContext(context.Background())

	FromContext(ctx).Info().Msg("in ctx")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "abc", entry["trace_id"])
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest reads the
// logger from the request context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "req")
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	FromRequest(req).Info().Msg("in request")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req", entry["role"])
}
