// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tools

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/scour"
	"github.com/poiesic/scour/search"
)

// Config is the engine configuration loadable from YAML. Fields left out of
// the file keep the built-in defaults.
type Config struct {
	// PassageSize is the length in bytes of the passages the document is
	// segmented into for relevance scoring.
	PassageSize int `yaml:"passageSize"`

	// Window is the proximity window in bytes. 0 derives the window from
	// the requested context size per call.
	Window int `yaml:"window"`

	Context ToolConfig    `yaml:"context"`
	Phrase  ToolConfig    `yaml:"phrase"`
	Boolean ToolConfig    `yaml:"boolean"`
	Logging LoggingConfig `yaml:"logging"`
}

// ToolConfig overrides the default result cap and context size of one tool.
type ToolConfig struct {
	MaxResults   int `yaml:"maxResults"`
	ContextChars int `yaml:"contextChars"`
}

// Apply fills zero arguments with the tool's configured defaults.
func (t ToolConfig) Apply(maxResults, contextChars int) (int, int) {
	if maxResults <= 0 {
		maxResults = t.MaxResults
	}
	if contextChars <= 0 {
		contextChars = t.ContextChars
	}
	return maxResults, contextChars
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog level.
// Unknown names mean info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		PassageSize: search.DefaultPassageSize,
		Context: ToolConfig{
			MaxResults:   scour.DefaultContextMaxResults,
			ContextChars: scour.DefaultContextChars,
		},
		Phrase: ToolConfig{
			MaxResults:   scour.DefaultPhraseMaxResults,
			ContextChars: scour.DefaultPhraseContextChars,
		},
		Boolean: ToolConfig{
			MaxResults:   scour.DefaultBooleanMaxResults,
			ContextChars: scour.DefaultBooleanContextChars,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file (if path is non-empty) and applies
// environment variable overrides. The loaded configuration is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads SCOUR_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCOUR_PASSAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PassageSize = n
		}
	}
	if v := os.Getenv("SCOUR_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window = n
		}
	}
	if v := os.Getenv("SCOUR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.SearchConfig().Validate(); err != nil {
		return err
	}

	checks := []struct {
		name string
		tool ToolConfig
	}{
		{"context", c.Context},
		{"phrase", c.Phrase},
		{"boolean", c.Boolean},
	}
	for _, check := range checks {
		if check.tool.MaxResults <= 0 {
			return fmt.Errorf("%s tool: %w", check.name, ErrInvalidMaxResults)
		}
		if check.tool.ContextChars <= 0 {
			return fmt.Errorf("%s tool: %w", check.name, ErrInvalidContextChars)
		}
	}
	return nil
}

// SearchConfig returns the index and strategy tuning as a search.Config.
func (c *Config) SearchConfig() *search.Config {
	return search.NewConfig(
		search.WithPassageSize(c.PassageSize),
		search.WithWindow(c.Window),
	)
}

// NewSession builds a session for text with this configuration applied.
func (c *Config) NewSession(text string, opts ...scour.Option) (*scour.Session, error) {
	opts = append([]scour.Option{scour.WithConfig(c.SearchConfig())}, opts...)
	return scour.NewSession(text, opts...)
}
