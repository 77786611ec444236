package tools

import (
	"fmt"
	"strings"

	"github.com/poiesic/scour/core"
)

// FormatResults renders results the way the search tools present them to the
// agent. An empty result list renders as a one-line notice that repeats the
// keywords the caller asked for.
func FormatResults(keywords []string, results []core.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No matches found for keywords: %v", keywords)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "===== Search Results for %v =====\n", keywords)
	fmt.Fprintf(&b, "Found %d results:\n", len(results))
	for i, result := range results {
		fmt.Fprintf(&b, "\n--- Result %d (Score: %.2f, Cursor: %d) ---\n", i+1, result.Score, result.Cursor)
		fmt.Fprintf(&b, "Matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
		fmt.Fprintf(&b, "Text: %s\n", result.Snippet)
	}
	return b.String()
}
