package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex_Passages(t *testing.T) {
	t.Run("passages cover the document without gaps", func(t *testing.T) {
		text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
		ix := NewIndex(text, 16)

		require.NotEmpty(t, ix.passages)
		assert.Equal(t, 0, ix.passages[0].Start)
		assert.Equal(t, len(text), ix.passages[len(ix.passages)-1].End)
		for i := 1; i < len(ix.passages); i++ {
			assert.Equal(t, ix.passages[i-1].End, ix.passages[i].Start)
			assert.Equal(t, i, ix.passages[i].Id)
		}
	})

	t.Run("last passage may be shorter", func(t *testing.T) {
		ix := NewIndex("0123456789", 4)
		require.Len(t, ix.passages, 3)
		assert.Equal(t, 8, ix.passages[2].Start)
		assert.Equal(t, 10, ix.passages[2].End)
	})

	t.Run("empty document yields one empty passage", func(t *testing.T) {
		ix := NewIndex("", 100)
		require.Len(t, ix.passages, 1)
		assert.Equal(t, 0, ix.passages[0].Start)
		assert.Equal(t, 0, ix.passages[0].End)
		assert.Empty(t, ix.passages[0].TermCounts)
		assert.Equal(t, 0, ix.TokenCount())
		assert.Equal(t, 1, ix.PassageCount())
	})

	t.Run("non-positive passage size falls back to the default", func(t *testing.T) {
		ix := NewIndex("some text", 0)
		assert.Equal(t, DefaultPassageSize, ix.size)
	})
}

func TestNewIndex_TermCounts(t *testing.T) {
	t.Run("counts per passage", func(t *testing.T) {
		ix := NewIndex("aaa bbb aaa", 100)
		require.Len(t, ix.passages, 1)
		assert.Equal(t, 2, ix.passages[0].TermCounts["aaa"])
		assert.Equal(t, 1, ix.passages[0].TermCounts["bbb"])
	})

	t.Run("token belongs to the passage holding its first byte", func(t *testing.T) {
		// The single token starts in passage 0 even though it crosses into
		// passage 1.
		ix := NewIndex("abcdefgh", 5)
		require.Len(t, ix.passages, 2)
		assert.Equal(t, 1, ix.passages[0].TermCounts["abcdefgh"])
		assert.Empty(t, ix.passages[1].TermCounts)
	})

	t.Run("passage frequency never exceeds passage count", func(t *testing.T) {
		ix := NewIndex("one two one three one two", 8)
		for word, df := range ix.passFreq {
			assert.LessOrEqual(t, df, len(ix.passages), "word %q", word)
			assert.Positive(t, df, "word %q", word)
		}
	})
}

func TestIndex_Starts(t *testing.T) {
	ix := NewIndex("aaa bbb aaa", 100)

	assert.Equal(t, []int{0, 8}, ix.starts("aaa"))
	assert.Equal(t, []int{4}, ix.starts("bbb"))
	assert.Nil(t, ix.starts("missing"))
}

func TestIndex_Vocab(t *testing.T) {
	ix := NewIndex("delta alpha charlie bravo alpha", 100)
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, ix.vocab)
}

func TestSampleInts(t *testing.T) {
	t.Run("short input returned unchanged", func(t *testing.T) {
		xs := []int{1, 2, 3}
		assert.Equal(t, xs, sampleInts(xs, 5))
	})

	t.Run("even stride", func(t *testing.T) {
		xs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		assert.Equal(t, []int{0, 3, 6}, sampleInts(xs, 3))
	})

	t.Run("never exceeds the limit", func(t *testing.T) {
		xs := make([]int, 2501)
		for i := range xs {
			xs[i] = i
		}
		got := sampleInts(xs, 1000)
		assert.Len(t, got, 1000)
		assert.Equal(t, 0, got[0])
	})
}
