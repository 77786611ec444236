package tools

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scour"
	"github.com/poiesic/scour/search"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, search.DefaultPassageSize, cfg.PassageSize)
	assert.Zero(t, cfg.Window)
	assert.Equal(t, scour.DefaultContextMaxResults, cfg.Context.MaxResults)
	assert.Equal(t, scour.DefaultPhraseContextChars, cfg.Phrase.ContextChars)
	assert.Equal(t, scour.DefaultBooleanMaxResults, cfg.Boolean.MaxResults)
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("reads values from file", func(t *testing.T) {
		path := writeConfig(t, `
passageSize: 800
window: 2000
context:
  maxResults: 5
  contextChars: 150
logging:
  level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 800, cfg.PassageSize)
		assert.Equal(t, 2000, cfg.Window)
		assert.Equal(t, 5, cfg.Context.MaxResults)
		assert.Equal(t, 150, cfg.Context.ContextChars)
		assert.Equal(t, "debug", cfg.Logging.Level)

		// Tools absent from the file keep their defaults.
		assert.Equal(t, scour.DefaultPhraseMaxResults, cfg.Phrase.MaxResults)
		assert.Equal(t, scour.DefaultPhraseContextChars, cfg.Phrase.ContextChars)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "passageSize: [oops")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		path := writeConfig(t, "context:\n  maxResults: -1\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidMaxResults)

		path = writeConfig(t, "passageSize: 0\n")
		_, err = Load(path)
		assert.ErrorIs(t, err, search.ErrInvalidPassageSize)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("SCOUR_PASSAGE_SIZE", "123")
		t.Setenv("SCOUR_LOG_LEVEL", "warn")

		path := writeConfig(t, "passageSize: 800\n")
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 123, cfg.PassageSize)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestToolConfig_Apply(t *testing.T) {
	tool := ToolConfig{MaxResults: 15, ContextChars: 300}

	maxResults, contextChars := tool.Apply(0, 0)
	assert.Equal(t, 15, maxResults)
	assert.Equal(t, 300, contextChars)

	maxResults, contextChars = tool.Apply(5, 0)
	assert.Equal(t, 5, maxResults)
	assert.Equal(t, 300, contextChars)

	maxResults, contextChars = tool.Apply(5, 100)
	assert.Equal(t, 5, maxResults)
	assert.Equal(t, 100, contextChars)
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoggingConfig{Level: tt.level}.SlogLevel(), "level %q", tt.level)
	}
}

func TestConfig_NewSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PassageSize = 100

	s, err := cfg.NewSession(strings.Repeat("word ", 50))
	require.NoError(t, err)
	assert.Equal(t, 3, s.PassageCount())

	cfg.PassageSize = -1
	_, err = cfg.NewSession("text")
	assert.ErrorIs(t, err, search.ErrInvalidPassageSize)
}
