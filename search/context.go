package search

// ClampCursor forces cursor into the valid range [0, Len).
// For an empty document the only valid cursor is 0.
func (ix *Index) ClampCursor(cursor int) int {
	if len(ix.text) == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= len(ix.text) {
		return len(ix.text) - 1
	}
	return cursor
}

// Expand returns the document text around cursor: up to before bytes in
// front of it and up to after bytes from it onward. The cursor is clamped
// into the document first and the slice bounds are clamped at the document
// edges, so out-of-range requests shrink instead of failing.
func (ix *Index) Expand(cursor, before, after int) string {
	if len(ix.text) == 0 {
		return ""
	}

	cursor = ix.ClampCursor(cursor)
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	start := max(0, cursor-before)
	end := min(len(ix.text), cursor+after)
	return ix.text[start:end]
}

// snippet returns a window of contextChars bytes centered on cursor.
// The window is clamped at the document edges, so snippets near a boundary
// come back shorter rather than shifted.
func (ix *Index) snippet(cursor, contextChars int) string {
	if len(ix.text) == 0 || contextChars <= 0 {
		return ""
	}

	cursor = ix.ClampCursor(cursor)
	half := contextChars / 2
	start := max(0, cursor-half)
	end := min(len(ix.text), cursor+(contextChars-half))
	return ix.text[start:end]
}
