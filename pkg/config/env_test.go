package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// captureWarnings swaps the default logger for the duration of t.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STR", "")
	assert.Equal(t, "def", GetEnvString("TEST_STR", "def"))

	t.Setenv("TEST_STR", "  value ")
	assert.Equal(t, "value", GetEnvString("TEST_STR", "def"))
}

func TestGetEnvInt(t *testing.T) {
	logs := captureWarnings(t)

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))
	assert.Empty(t, logs.String())

	t.Setenv("TEST_INT", "42abc")
	assert.Equal(t, 7, GetEnvInt("TEST_INT", 7))
	assert.Contains(t, logs.String(), `"key":"TEST_INT"`)
}

func TestGetEnvFloat(t *testing.T) {
	captureWarnings(t)

	t.Setenv("TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, GetEnvFloat("TEST_FLOAT", 1))

	t.Setenv("TEST_FLOAT", "half")
	assert.Equal(t, 1.0, GetEnvFloat("TEST_FLOAT", 1))
}

func TestGetEnvBool(t *testing.T) {
	captureWarnings(t)

	for raw, want := range map[string]bool{"1": true, "true": true, "F": false, "false": false, "maybe": true} {
		t.Setenv("TEST_BOOL", raw)
		assert.Equal(t, want, GetEnvBool("TEST_BOOL", true), raw)
	}
}

func TestGetEnvDuration(t *testing.T) {
	captureWarnings(t)

	t.Setenv("TEST_DUR", "1h30m")
	assert.Equal(t, 90*time.Minute, GetEnvDuration("TEST_DUR", time.Second))

	t.Setenv("TEST_DUR", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DUR", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"default"}

	t.Setenv("TEST_LIST", "")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " , ,")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", "a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", def))
}
