package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhrase(t *testing.T) {
	_, err := NewPhrase(nil)
	assert.Equal(t, ErrIndexRequired, err)

	p, err := NewPhrase(NewIndex(wallDoc, 0))
	require.NoError(t, err)
	assert.Equal(t, "phrase", p.Name())
}

func TestPhrase_FindsLiteralPhrase(t *testing.T) {
	ix := NewIndex(wallDoc, 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	results := p.Search([]string{"Great", "Wall"}, Params{MaxResults: 10, ContextChars: 60})
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, strings.Index(wallDoc, "Great")+len("great wall")/2, r.Cursor)
	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, []string{"great", "wall"}, r.MatchedKeywords)
	assert.Contains(t, r.Snippet, "Great Wall of China")
}

func TestPhrase_CaseInsensitive(t *testing.T) {
	ix := NewIndex(wallDoc, 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	upper := p.Search([]string{"GREAT", "WALL"}, Params{MaxResults: 10, ContextChars: 60})
	lower := p.Search([]string{"great", "wall"}, Params{MaxResults: 10, ContextChars: 60})
	require.NotEmpty(t, upper)
	assert.Equal(t, lower, upper)
}

func TestPhrase_OverlappingOccurrences(t *testing.T) {
	ix := NewIndex("Ha ha ha ha", 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	// "ha ha" occurs at offsets 0, 3 and 6; the occurrences overlap and
	// every one of them is reported.
	results := p.Search([]string{"ha", "ha"}, Params{MaxResults: 10, ContextChars: 11})
	require.Len(t, results, 3)
	for i, cursor := range []int{2, 5, 8} {
		assert.Equal(t, cursor, results[i].Cursor)
		assert.Equal(t, 100.0, results[i].Score)
	}

	limited := p.Search([]string{"ha", "ha"}, Params{MaxResults: 2, ContextChars: 11})
	require.Len(t, limited, 2)
	assert.Equal(t, 2, limited[0].Cursor)
	assert.Equal(t, 5, limited[1].Cursor)
}

func TestPhrase_KeepsDuplicateKeywords(t *testing.T) {
	ix := NewIndex("new york new york city", 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	// The phrase is built from the keywords as given, duplicates included.
	// Matched keywords still report the deduplicated set.
	results := p.Search([]string{"new", "york", "new", "york"}, Params{MaxResults: 10, ContextChars: 22})
	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Cursor)
	assert.Equal(t, []string{"new", "york"}, results[0].MatchedKeywords)
}

func TestPhrase_SubstringSemantics(t *testing.T) {
	ix := NewIndex(wallDoc, 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	// The scan is a literal substring scan, so "wall" also hits "walls".
	results := p.Search([]string{"wall"}, Params{MaxResults: 10, ContextChars: 30})
	assert.Len(t, results, 5)
	assert.Equal(t, strings.Index(wallDoc, "Wall")+len("wall")/2, results[0].Cursor)
}

func TestPhrase_NoMatch(t *testing.T) {
	ix := NewIndex(foxDoc, 0)
	p, err := NewPhrase(ix)
	require.NoError(t, err)

	monitor := &testMonitor{}
	results := p.Search([]string{"quick", "fox"}, Params{MaxResults: 10, ContextChars: 60, Monitor: monitor})
	assert.Empty(t, results)
	assert.True(t, monitor.finishCalled)
	assert.Zero(t, monitor.windowHits)
}

func TestPhrase_EmptyInputs(t *testing.T) {
	p, err := NewPhrase(NewIndex(wallDoc, 0))
	require.NoError(t, err)
	assert.Empty(t, p.Search(nil, Params{}))
	assert.Empty(t, p.Search([]string{" ", "\t"}, Params{}))

	empty, err := NewPhrase(NewIndex("", 0))
	require.NoError(t, err)
	assert.Empty(t, empty.Search([]string{"wall"}, Params{}))
}
