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


package search

// DefaultPassageSize is the passage length used when none is configured.
const DefaultPassageSize = 400

// Config holds tuning parameters for the search index and strategies.
type Config struct {
	// PassageSize is the length in bytes of the fixed passages the document
	// is segmented into for relevance scoring.
	// Default: 400
	PassageSize int

	// Window is the proximity window W in bytes. Keywords of a boolean-AND
	// search must fall within W/2 of the anchor occurrence on either side.
	// 0 means the window is derived from the requested context size per call.
	Window int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithPassageSize sets the passage length in bytes.
func WithPassageSize(chars int) ConfigOption {
	return func(c *Config) {
		c.PassageSize = chars
	}
}

// WithWindow sets the proximity window in bytes.
func WithWindow(chars int) ConfigOption {
	return func(c *Config) {
		c.Window = chars
	}
}

// DefaultConfig returns a Config with the default tuning values.
func DefaultConfig() *Config {
	return &Config{
		PassageSize: DefaultPassageSize,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithPassageSize(800),
//	    WithWindow(2000),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.PassageSize <= 0 {
		return ErrInvalidPassageSize
	}
	if c.Window < 0 {
		return ErrInvalidWindow
	}
	return nil
}
