package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONWithLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "info", WithOutput(&buf), WithService("reservation"))
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("booking id=%d created", 42)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "booking id=42 created", entry["message"])
	assert.Equal(t, "reservation", entry["service"])
}

func TestLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "verbose", WithOutput(&buf))
	require.NoError(t, err)

	log.Debug("debug")
	log.Warn("warn")

	assert.NotContains(t, buf.String(), `"message":"debug"`)
	assert.Contains(t, buf.String(), `"message":"warn"`)
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Error("failed: %v", "boom")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed: boom")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "info", WithOutput(&buf))
	require.NoError(t, err)

	log.With("request_id", "abc").Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
