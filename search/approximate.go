package search

import (
	"sort"
	"strings"

	"github.com/poiesic/scour/core"
)

const (
	// minApproxKeywordLen is the shortest keyword considered for containment
	// matching. Shorter keywords are substrings of too much of any document.
	minApproxKeywordLen = 3

	// maxWordsPerKeyword caps how many vocabulary words one keyword may
	// match. The vocabulary is scanned in sorted order, so the cap keeps
	// the same words between runs.
	maxWordsPerKeyword = 10

	// maxStartsPerWord caps how many occurrences of one matched word are
	// kept; longer lists are sampled evenly.
	maxStartsPerWord = 100

	// maxApproxCandidates caps the candidate centers considered per search.
	maxApproxCandidates = 1000

	// approxNeighborhood is the span in bytes around a candidate center
	// within which keyword occurrences count toward its score. It is fixed
	// and unrelated to the proximity window.
	approxNeighborhood = 200
)

// Approximate matches keywords against document words by substring
// containment in either direction: the word contains the keyword or the
// keyword contains the word, case-insensitively. Any single satisfied
// containment creates a candidate, so unlike Proximity this matcher uses
// OR semantics and degrades instead of failing.
type Approximate struct {
	index *Index
}

var _ Algorithm = (*Approximate)(nil)

// NewApproximate creates the approximate strategy over index.
func NewApproximate(index *Index) (*Approximate, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	return &Approximate{index: index}, nil
}

// Name implements Algorithm.
func (a *Approximate) Name() string { return "approximate" }

// candidate is a potential approximate hit centered on one word occurrence.
type candidate struct {
	center  int
	score   float64
	matched []string
}

// Search implements Algorithm. A candidate scores one point per distinct
// keyword that has a containment match within approxNeighborhood bytes of
// the candidate center, so centers surrounded by several keywords outrank
// isolated ones.
func (a *Approximate) Search(keywords []string, params Params) []core.SearchResult {
	params = params.normalized()
	monitor := params.Monitor
	monitor.Start(a.Name(), keywords)

	normalized := normalizeKeywords(keywords)
	monitor.AfterNormalization(normalized)

	kws := make([]string, 0, len(normalized))
	for _, kw := range normalized {
		if len(kw) >= minApproxKeywordLen {
			kws = append(kws, kw)
		}
	}

	results := []core.SearchResult{}
	if len(kws) == 0 || a.index.Len() == 0 {
		monitor.Finish(results)
		return results
	}

	// Occurrence starts per keyword, merged over every word it matched.
	kwStarts := make([][]int, len(kws))
	centers := make([]int, 0, maxApproxCandidates)
	capped := false

	for i, kw := range kws {
		words := a.matchingWords(kw)
		for _, word := range words {
			starts := a.index.starts(word)
			if len(starts) > maxStartsPerWord {
				sampled := sampleInts(starts, maxStartsPerWord)
				monitor.SampledOccurrences(word, len(starts), len(sampled))
				starts = sampled
			}
			kwStarts[i] = append(kwStarts[i], starts...)

			for _, s := range starts {
				if len(centers) >= maxApproxCandidates {
					capped = true
					break
				}
				centers = append(centers, s)
			}
		}
		sort.Ints(kwStarts[i])
	}
	if capped {
		monitor.EarlyExit(len(centers))
	}

	candidates := make([]candidate, 0, len(centers))
	for _, center := range centers {
		matched := make([]string, 0, len(kws))
		for i, kw := range kws {
			if hasWithin(kwStarts[i], center-approxNeighborhood, center+approxNeighborhood) {
				matched = append(matched, kw)
			}
		}
		score := float64(len(matched))
		monitor.WindowHit(center, score)
		candidates = append(candidates, candidate{center: center, score: score, matched: matched})
	}

	for _, c := range mergeCandidates(candidates) {
		results = append(results, core.SearchResult{
			Score:           c.score,
			Cursor:          c.center,
			MatchedKeywords: c.matched,
		})
	}

	results = sortResults(results, params.MaxResults)
	for i := range results {
		results[i].Snippet = a.index.snippet(results[i].Cursor, params.ContextChars)
	}

	monitor.Finish(results)
	return results
}

// matchingWords returns up to maxWordsPerKeyword vocabulary words related to
// kw by containment in either direction, in sorted vocabulary order.
func (a *Approximate) matchingWords(kw string) []string {
	words := make([]string, 0, maxWordsPerKeyword)
	for _, word := range a.index.vocab {
		if !strings.Contains(word, kw) && !strings.Contains(kw, word) {
			continue
		}
		words = append(words, word)
		if len(words) >= maxWordsPerKeyword {
			break
		}
	}
	return words
}

// mergeCandidates suppresses candidates that fall inside the neighborhood of
// a higher-scoring one, keeping the strongest candidate of each region.
// Ties go to the earlier center.
func mergeCandidates(candidates []candidate) []candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].center < candidates[j].center
	})

	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		suppressed := false
		for _, k := range kept {
			if abs(c.center-k.center) <= approxNeighborhood {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, c)
		}
	}

	return kept
}

// hasWithin reports whether sorted holds a value in [lo, hi].
func hasWithin(sorted []int, lo, hi int) bool {
	i := sort.SearchInts(sorted, lo)
	return i < len(sorted) && sorted[i] <= hi
}
