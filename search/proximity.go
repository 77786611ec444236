package search

import (
	"sort"

	"github.com/poiesic/scour/core"
)

const (
	// maxAnchorOccurrences caps how many occurrences of the anchor keyword
	// one search scans. Longer occurrence lists are sampled evenly.
	maxAnchorOccurrences = 2000

	// candidateFactor stops the anchor scan once the candidate count
	// reaches candidateFactor times the requested result count.
	candidateFactor = 2
)

// Proximity finds windows where every requested keyword occurs within W/2
// bytes of an occurrence of the first keyword, the anchor. The conjunction
// is strict: one missing keyword invalidates the window, and no partial
// matches are ever returned.
type Proximity struct {
	index  *Index
	window int
}

var _ Algorithm = (*Proximity)(nil)

// NewProximity creates the proximity strategy over index. window is the
// proximity window W in bytes; 0 derives W from the per-call context size.
func NewProximity(index *Index, window int) (*Proximity, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if window < 0 {
		return nil, ErrInvalidWindow
	}
	return &Proximity{index: index, window: window}, nil
}

// Name implements Algorithm.
func (p *Proximity) Name() string { return "proximity" }

// matchWindow is a candidate conjunction hit. lo and hi are the start bytes
// of the nearest and farthest matched occurrences.
type matchWindow struct {
	cursor int
	lo     int
	hi     int
	score  float64
}

// Search implements Algorithm. Scores fall in [50, 100]: a window whose
// occurrences all sit on the anchor scores 100, and the score decays with
// the widest pairwise distance among the matched occurrences.
func (p *Proximity) Search(keywords []string, params Params) []core.SearchResult {
	params = params.normalized()
	monitor := params.Monitor
	monitor.Start(p.Name(), keywords)

	kws := normalizeKeywords(keywords)
	monitor.AfterNormalization(kws)

	results := []core.SearchResult{}
	if len(kws) == 0 || p.index.Len() == 0 {
		monitor.Finish(results)
		return results
	}

	w := p.window
	if w <= 0 {
		w = params.ContextChars
	}
	half := w / 2

	anchor := kws[0]
	anchorStarts := p.index.starts(anchor)
	if len(anchorStarts) == 0 {
		monitor.Finish(results)
		return results
	}

	others := make([][]int, 0, len(kws)-1)
	for _, kw := range kws[1:] {
		starts := p.index.starts(kw)
		if len(starts) == 0 {
			// A keyword with no occurrences can never satisfy the conjunction.
			monitor.Finish(results)
			return results
		}
		others = append(others, starts)
	}

	if len(anchorStarts) > maxAnchorOccurrences {
		sampled := sampleInts(anchorStarts, maxAnchorOccurrences)
		monitor.SampledOccurrences(anchor, len(anchorStarts), len(sampled))
		anchorStarts = sampled
	}

	windows := make([]matchWindow, 0, min(len(anchorStarts), params.MaxResults*candidateFactor))
	for _, a := range anchorStarts {
		lo, hi := a, a
		valid := true
		for _, starts := range others {
			s, found := nearestWithin(starts, a, half)
			if !found {
				valid = false
				break
			}
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		if !valid {
			continue
		}

		span := hi - lo
		score := float64(w) / float64(w+span) * 100
		monitor.WindowHit(a, score)
		windows = append(windows, matchWindow{cursor: a, lo: lo, hi: hi, score: score})

		if len(windows) >= params.MaxResults*candidateFactor {
			monitor.EarlyExit(len(windows))
			break
		}
	}

	for _, win := range mergeWindows(windows) {
		results = append(results, core.SearchResult{
			Score:           win.score,
			Cursor:          win.cursor,
			MatchedKeywords: kws,
		})
	}

	results = sortResults(results, params.MaxResults)
	for i := range results {
		results[i].Snippet = p.index.snippet(results[i].Cursor, params.ContextChars)
	}

	monitor.Finish(results)
	return results
}

// nearestWithin returns the value in sorted closest to target, provided it
// lies within radius of it.
func nearestWithin(sorted []int, target, radius int) (int, bool) {
	i := sort.SearchInts(sorted, target)

	best := -1
	bestDist := 0
	if i < len(sorted) {
		best = sorted[i]
		bestDist = sorted[i] - target
	}
	if i > 0 {
		if d := target - sorted[i-1]; best < 0 || d < bestDist {
			best = sorted[i-1]
			bestDist = d
		}
	}

	if best < 0 || bestDist > radius {
		return 0, false
	}
	return best, true
}

// mergeWindows collapses overlapping windows, keeping the highest-scoring
// window of each connected cluster. Ties go to the earlier cursor.
func mergeWindows(windows []matchWindow) []matchWindow {
	if len(windows) <= 1 {
		return windows
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].lo < windows[j].lo })

	merged := make([]matchWindow, 0, len(windows))
	best := windows[0]
	clusterHi := windows[0].hi
	for _, win := range windows[1:] {
		if win.lo <= clusterHi {
			if win.hi > clusterHi {
				clusterHi = win.hi
			}
			if win.score > best.score || (win.score == best.score && win.cursor < best.cursor) {
				best = win
			}
			continue
		}
		merged = append(merged, best)
		best = win
		clusterHi = win.hi
	}
	merged = append(merged, best)

	return merged
}
