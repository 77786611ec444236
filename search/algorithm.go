package search

import (
	"sort"
	"strings"

	"github.com/poiesic/scour/core"
)

// Params carries the per-call knobs shared by all strategies.
type Params struct {
	// MaxResults caps the number of results returned.
	// Values below 1 fall back to 15.
	MaxResults int

	// ContextChars is the total snippet length in bytes. Snippets are
	// centered on the result cursor and clamped at the document boundaries.
	// Values below 1 fall back to 300.
	ContextChars int

	// Monitor observes the search. nil means no monitoring.
	Monitor Monitor
}

func (p Params) normalized() Params {
	if p.MaxResults <= 0 {
		p.MaxResults = 15
	}
	if p.ContextChars <= 0 {
		p.ContextChars = 300
	}
	if p.Monitor == nil {
		p.Monitor = &noopMonitor{}
	}
	return p
}

// Algorithm is one search strategy over an Index.
// Implementations never fail: bad input degrades to an empty result list.
type Algorithm interface {
	// Name identifies the strategy in monitor callbacks and logs.
	Name() string

	// Search runs the strategy. The returned slice is freshly allocated,
	// ordered by descending score with ties broken by ascending cursor,
	// and never nil.
	Search(keywords []string, params Params) []core.SearchResult
}

// Fallback chains algorithms: each one runs only when every algorithm
// before it came back empty. The empty result of the last algorithm is the
// result of the chain.
type Fallback struct {
	chain []Algorithm
}

var _ Algorithm = (*Fallback)(nil)

// NewFallback builds a fallback chain in the given order.
func NewFallback(algorithms ...Algorithm) (*Fallback, error) {
	if len(algorithms) == 0 {
		return nil, ErrAlgorithmRequired
	}
	return &Fallback{chain: algorithms}, nil
}

// Name returns the chained strategy names joined with "+".
func (f *Fallback) Name() string {
	names := make([]string, len(f.chain))
	for i, alg := range f.chain {
		names[i] = alg.Name()
	}
	return strings.Join(names, "+")
}

// Search runs the chain.
func (f *Fallback) Search(keywords []string, params Params) []core.SearchResult {
	params = params.normalized()

	results := f.chain[0].Search(keywords, params)
	for i := 1; i < len(f.chain); i++ {
		if len(results) > 0 {
			break
		}
		params.Monitor.FallbackTriggered(f.chain[i-1].Name(), f.chain[i].Name())
		results = f.chain[i].Search(keywords, params)
	}
	return results
}

// sortResults orders results by descending score, breaking ties by ascending
// cursor, and truncates to maxResults.
func sortResults(results []core.SearchResult, maxResults int) []core.SearchResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Cursor < results[j].Cursor
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
