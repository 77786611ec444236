package search

import (
	"iter"

	"github.com/poiesic/scour/core"
)

// Monitor provides hooks to observe a search as it runs.
// Implement this interface to track intermediate steps and results.
type Monitor interface {
	Start(strategy string, keywords []string)
	AfterNormalization(keywords []string)
	AfterPassageScoring(passageIds iter.Seq[int])
	SampledOccurrences(keyword string, total, kept int)
	WindowHit(cursor int, score float64)
	EarlyExit(candidates int)
	FallbackTriggered(from, to string)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)            {}
func (n *noopMonitor) AfterNormalization(_ []string)         {}
func (n *noopMonitor) AfterPassageScoring(_ iter.Seq[int])   {}
func (n *noopMonitor) SampledOccurrences(_ string, _, _ int) {}
func (n *noopMonitor) WindowHit(_ int, _ float64)            {}
func (n *noopMonitor) EarlyExit(_ int)                       {}
func (n *noopMonitor) FallbackTriggered(_, _ string)         {}
func (n *noopMonitor) Finish(_ []core.SearchResult)          {}
