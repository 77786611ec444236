package search

import (
	"maps"
	"math"

	"github.com/poiesic/scour/core"
)

// Relevance scores every passage of the document against the keywords.
// A keyword contributes its occurrence count in the passage, weighted by
// log(totalPassages / (1 + passagesContainingIt)), so keywords that appear
// everywhere count for little and rare ones dominate. Passages that score
// zero or below are dropped.
type Relevance struct {
	index *Index
}

var _ Algorithm = (*Relevance)(nil)

// NewRelevance creates the relevance strategy over index.
func NewRelevance(index *Index) (*Relevance, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	return &Relevance{index: index}, nil
}

// Name implements Algorithm.
func (r *Relevance) Name() string { return "relevance" }

// Search implements Algorithm. The cursor of each result is the keyword
// occurrence nearest the passage midpoint, so expanding context at the
// cursor lands on matched text rather than on a passage boundary.
func (r *Relevance) Search(keywords []string, params Params) []core.SearchResult {
	params = params.normalized()
	monitor := params.Monitor
	monitor.Start(r.Name(), keywords)

	kws := normalizeKeywords(keywords)
	monitor.AfterNormalization(kws)

	results := []core.SearchResult{}
	if len(kws) == 0 || r.index.Len() == 0 {
		monitor.Finish(results)
		return results
	}

	total := float64(len(r.index.passages))
	scores := make(map[int]float64)
	for pid := range r.index.passages {
		p := &r.index.passages[pid]
		var score float64
		for _, kw := range kws {
			count := p.TermCounts[kw]
			if count == 0 {
				continue
			}
			score += float64(count) * math.Log(total/float64(1+r.index.passFreq[kw]))
		}
		if score > 0 {
			scores[pid] = score
		}
	}
	monitor.AfterPassageScoring(maps.Keys(scores))

	kwSet := make(map[string]bool, len(kws))
	for _, kw := range kws {
		kwSet[kw] = true
	}

	for pid, score := range scores {
		p := &r.index.passages[pid]
		results = append(results, core.SearchResult{
			Score:           score,
			Cursor:          r.cursorFor(p, kwSet),
			MatchedKeywords: matchedInPassage(p, kws),
		})
	}

	results = sortResults(results, params.MaxResults)
	for i := range results {
		results[i].Snippet = r.index.snippet(results[i].Cursor, params.ContextChars)
	}

	monitor.Finish(results)
	return results
}

// cursorFor picks the cursor for a scored passage: the start of the keyword
// occurrence closest to the passage midpoint, or the midpoint itself when
// the passage holds no keyword token.
func (r *Relevance) cursorFor(p *Passage, kwSet map[string]bool) int {
	midpoint := (p.Start + p.End) / 2

	lo, hi := r.index.tokenRange(p.Start, p.End)
	best := -1
	bestDist := 0
	for i := lo; i < hi; i++ {
		tok := &r.index.tokens[i]
		if !kwSet[tok.Text] {
			continue
		}
		d := abs(tok.Start - midpoint)
		if best < 0 || d < bestDist {
			best = tok.Start
			bestDist = d
		}
	}

	if best >= 0 {
		return best
	}
	return midpoint
}

// matchedInPassage returns the keywords present in the passage, in request order.
func matchedInPassage(p *Passage, kws []string) []string {
	matched := make([]string, 0, len(kws))
	for _, kw := range kws {
		if p.TermCounts[kw] > 0 {
			matched = append(matched, kw)
		}
	}
	return matched
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
