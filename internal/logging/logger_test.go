package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "json", &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "analyzed", slog.Int("rows", 4))
	log.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "analyzed", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 4, entry["rows"])
}

func TestNew_TextKeepsRequestIDAcrossWith(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "text", &buf).With(slog.String("component", "server"))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "chi-7")
	log.DebugContext(ctx, "request")

	out := buf.String()
	assert.Contains(t, out, "component=server")
	assert.Contains(t, out, "request_id=chi-7")
	assert.Contains(t, out, "level=DEBUG")
}

func TestRequestID_Empty(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
