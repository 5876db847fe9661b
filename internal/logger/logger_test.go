package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info("dropped")
	log.Warn("kept", "gates", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, 3.0, line["gates"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", "").Info("built walls", "radius", 12.5)

	assert.Contains(t, buf.String(), `msg="built walls" radius=12.5`)
}

func TestL_SetsUpOnce(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	defaultLogger = nil

	l := L()
	assert.Same(t, l, L())
	assert.False(t, l.Enabled(context.Background(), slog.LevelWarn))
}
