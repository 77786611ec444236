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


package scour

import (
	"iter"
	"log/slog"

	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/search"
)

// Default parameters of the session search surface. Zero and negative
// arguments fall back to these.
const (
	DefaultContextMaxResults  = 15
	DefaultContextChars       = 300
	DefaultPhraseMaxResults   = 10
	DefaultPhraseContextChars = 4000

	DefaultBooleanMaxResults   = 15
	DefaultBooleanContextChars = 3000

	DefaultContextBefore = 1000
	DefaultContextAfter  = 1000
)

// Session holds one document and the search strategies over it. Sessions are
// cheap to query and safe for concurrent use once constructed; the document
// is indexed exactly once, at construction.
type Session struct {
	index        *search.Index
	config       *search.Config
	contextChain *search.Fallback
	phraseChain  *search.Fallback
	boolean      search.Algorithm
	logger       *slog.Logger
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig sets the search configuration.
// Default is search.DefaultConfig().
func WithConfig(config *search.Config) Option {
	return func(s *Session) error {
		if config == nil {
			config = search.DefaultConfig()
		}
		s.config = config
		return nil
	}
}

// NewSession indexes text and prepares the three search surfaces over it.
// An empty document is valid; every search on it comes back empty.
func NewSession(text string, opts ...Option) (*Session, error) {
	s := &Session{
		config: search.DefaultConfig(),
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	s.index = search.NewIndex(text, s.config.PassageSize)

	relevance, err := search.NewRelevance(s.index)
	if err != nil {
		return nil, err
	}
	proximity, err := search.NewProximity(s.index, s.config.Window)
	if err != nil {
		return nil, err
	}
	approximate, err := search.NewApproximate(s.index)
	if err != nil {
		return nil, err
	}
	phrase, err := search.NewPhrase(s.index)
	if err != nil {
		return nil, err
	}

	if s.contextChain, err = search.NewFallback(relevance, proximity, approximate); err != nil {
		return nil, err
	}
	if s.phraseChain, err = search.NewFallback(phrase, proximity); err != nil {
		return nil, err
	}
	s.boolean = proximity

	return s, nil
}

// SearchContext looks for passages relevant to the keywords, falling back
// from frequency ranking to proximity windows to approximate containment
// until one strategy produces results.
func (s *Session) SearchContext(keywords []string, maxResults, contextChars int) []core.SearchResult {
	return s.SearchContextWithMonitor(keywords, maxResults, contextChars, nil)
}

// SearchContextWithMonitor is SearchContext with monitoring. The monitor
// receives callbacks at each stage of the search; nil logs progress at debug
// level instead.
func (s *Session) SearchContextWithMonitor(keywords []string, maxResults, contextChars int, monitor search.Monitor) []core.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultContextMaxResults
	}
	if contextChars <= 0 {
		contextChars = DefaultContextChars
	}
	return s.contextChain.Search(keywords, s.params(maxResults, contextChars, monitor))
}

// SearchExactPhrase looks for the keywords as one literal phrase, in order.
// When the phrase never occurs it degrades to the proximity strategy, so a
// misremembered phrase still lands near its parts.
func (s *Session) SearchExactPhrase(keywords []string, maxResults, contextChars int) []core.SearchResult {
	return s.SearchExactPhraseWithMonitor(keywords, maxResults, contextChars, nil)
}

// SearchExactPhraseWithMonitor is SearchExactPhrase with monitoring.
func (s *Session) SearchExactPhraseWithMonitor(keywords []string, maxResults, contextChars int, monitor search.Monitor) []core.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultPhraseMaxResults
	}
	if contextChars <= 0 {
		contextChars = DefaultPhraseContextChars
	}
	return s.phraseChain.Search(keywords, s.params(maxResults, contextChars, monitor))
}

// SearchBooleanAnd looks for windows where every keyword occurs near the
// others. The conjunction is strict: no window is reported unless all
// keywords are present.
func (s *Session) SearchBooleanAnd(keywords []string, maxResults, contextChars int) []core.SearchResult {
	return s.SearchBooleanAndWithMonitor(keywords, maxResults, contextChars, nil)
}

// SearchBooleanAndWithMonitor is SearchBooleanAnd with monitoring.
func (s *Session) SearchBooleanAndWithMonitor(keywords []string, maxResults, contextChars int, monitor search.Monitor) []core.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultBooleanMaxResults
	}
	if contextChars <= 0 {
		contextChars = DefaultBooleanContextChars
	}
	return s.boolean.Search(keywords, s.params(maxResults, contextChars, monitor))
}

// ContextAt returns the document text around cursor: up to before bytes in
// front of it and up to after bytes from it onward. Negative radii fall back
// to DefaultContextBefore and DefaultContextAfter; out-of-range cursors are
// clamped into the document.
func (s *Session) ContextAt(cursor, before, after int) string {
	if before < 0 {
		before = DefaultContextBefore
	}
	if after < 0 {
		after = DefaultContextAfter
	}
	return s.index.Expand(cursor, before, after)
}

// Text returns the full document.
func (s *Session) Text() string {
	return s.index.Text()
}

// Len returns the document length in bytes.
func (s *Session) Len() int {
	return s.index.Len()
}

// PassageCount returns the number of fixed-size passages the document was
// split into.
func (s *Session) PassageCount() int {
	return s.index.PassageCount()
}

// TokenCount returns the number of word tokens in the document.
func (s *Session) TokenCount() int {
	return s.index.TokenCount()
}

func (s *Session) params(maxResults, contextChars int, monitor search.Monitor) search.Params {
	if monitor == nil {
		monitor = &logMonitor{logger: s.logger}
	}
	return search.Params{
		MaxResults:   maxResults,
		ContextChars: contextChars,
		Monitor:      monitor,
	}
}

// logMonitor reports search progress through the session logger at debug
// level. It is the monitor used when a caller provides none.
type logMonitor struct {
	logger *slog.Logger
}

var _ search.Monitor = (*logMonitor)(nil)

func (m *logMonitor) Start(strategy string, keywords []string) {
	m.logger.Debug("search started", "strategy", strategy, "keywords", keywords)
}

func (m *logMonitor) AfterNormalization(keywords []string) {
	m.logger.Debug("keywords normalized", "keywords", keywords)
}

func (m *logMonitor) AfterPassageScoring(passageIds iter.Seq[int]) {
	count := 0
	for range passageIds {
		count++
	}
	m.logger.Debug("passages scored", "matched", count)
}

func (m *logMonitor) SampledOccurrences(keyword string, total, kept int) {
	m.logger.Debug("occurrences sampled", "keyword", keyword, "total", total, "kept", kept)
}

func (m *logMonitor) WindowHit(cursor int, score float64) {
	m.logger.Debug("window hit", "cursor", cursor, "score", score)
}

func (m *logMonitor) EarlyExit(candidates int) {
	m.logger.Debug("candidate scan stopped early", "candidates", candidates)
}

func (m *logMonitor) FallbackTriggered(from, to string) {
	m.logger.Debug("strategy produced nothing, falling back", "from", from, "to", to)
}

func (m *logMonitor) Finish(results []core.SearchResult) {
	m.logger.Debug("search finished", "results", len(results))
}
