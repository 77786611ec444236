package tools

import "github.com/poiesic/scour"

// SearchParams are the arguments shared by the three search tools.
// Zero MaxResults and ContextChars mean the per-tool defaults.
type SearchParams struct {
	Keywords     []string `json:"keywords"`
	MaxResults   int      `json:"max_results,omitempty"`
	ContextChars int      `json:"context_chars,omitempty"`
}

// ContextParams are the arguments of the context expansion tool. The radii
// are optional; nil means the session defaults.
type ContextParams struct {
	Cursor int  `json:"cursor"`
	Before *int `json:"chars_before,omitempty"`
	After  *int `json:"chars_after,omitempty"`
}

// Radii resolves the byte radii around the cursor.
func (p ContextParams) Radii() (before, after int) {
	before, after = scour.DefaultContextBefore, scour.DefaultContextAfter
	if p.Before != nil {
		before = *p.Before
	}
	if p.After != nil {
		after = *p.After
	}
	return before, after
}
