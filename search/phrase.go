package search

import (
	"strings"

	"github.com/poiesic/scour/core"
)

// phraseScore is the score of every exact phrase occurrence. Exact hits are
// not ranked against each other; earlier occurrences win ties.
const phraseScore = 100.0

// Phrase finds literal occurrences of the keywords joined into a single
// space-separated phrase, case-insensitively. It reports nothing when the
// phrase never occurs; compose it with Proximity through Fallback to get
// the documented degradation to conjunctive matching.
type Phrase struct {
	index *Index
}

var _ Algorithm = (*Phrase)(nil)

// NewPhrase creates the phrase strategy over index.
func NewPhrase(index *Index) (*Phrase, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	return &Phrase{index: index}, nil
}

// Name implements Algorithm.
func (p *Phrase) Name() string { return "phrase" }

// Search implements Algorithm. The cursor of each occurrence is its byte
// midpoint, and overlapping occurrences are all reported.
func (p *Phrase) Search(keywords []string, params Params) []core.SearchResult {
	params = params.normalized()
	monitor := params.Monitor
	monitor.Start(p.Name(), keywords)

	// The phrase keeps duplicate words and their order; the deduplicated
	// set is only used for reporting matched keywords.
	kws := normalizeKeywords(keywords)
	monitor.AfterNormalization(kws)
	phrase := joinPhrase(keywords)

	results := []core.SearchResult{}
	if phrase == "" || p.index.Len() == 0 {
		monitor.Finish(results)
		return results
	}

	folded := p.index.folded
	for from := 0; ; {
		i := strings.Index(folded[from:], phrase)
		if i < 0 {
			break
		}
		start := from + i
		cursor := start + len(phrase)/2
		monitor.WindowHit(cursor, phraseScore)
		results = append(results, core.SearchResult{
			Score:           phraseScore,
			Cursor:          cursor,
			MatchedKeywords: kws,
		})
		from = start + 1
	}

	results = sortResults(results, params.MaxResults)
	for i := range results {
		results[i].Snippet = p.index.snippet(results[i].Cursor, params.ContextChars)
	}

	monitor.Finish(results)
	return results
}

// joinPhrase joins the keywords with single spaces, keeping duplicates and
// order and dropping empties. Keywords are folded with lowerASCII, the same
// folding the scanned document gets, so the two sides always agree.
func joinPhrase(keywords []string) string {
	words := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		words = append(words, lowerASCII(kw))
	}
	return strings.Join(words, " ")
}
