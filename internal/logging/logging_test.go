package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestForComponentTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	l := ForComponent(New(Options{Level: slog.LevelDebug, Writer: &buf}), ComponentStore)

	l.Debug("loaded expenses", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, `msg="loaded expenses"`)
	assert.Contains(t, out, "count=3")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: slog.LevelError, Writer: &buf})

	l.Info("hidden")
	l.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
