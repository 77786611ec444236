package search

import "sort"

// Passage is one fixed-size segment of the document. Passages cover the
// whole document in order, without gaps or overlap; the last one may be
// short. TermCounts holds the occurrence count of every word whose first
// byte falls inside the passage.
type Passage struct {
	Id         int
	Start      int
	End        int
	TermCounts map[string]int
}

// Index is an immutable view of a single document prepared for searching.
// Building it tokenizes the text, segments it into passages, and records
// where every word occurs. All search strategies share one Index, so every
// cursor they report means the same byte offset in the same text.
type Index struct {
	text     string
	folded   string // lowerASCII(text), same length as text
	tokens   []Token
	occ      map[string][]int // word -> ascending indices into tokens
	vocab    []string         // sorted words, for deterministic scans
	passages []Passage
	passFreq map[string]int // word -> number of passages containing it
	size     int
}

// NewIndex builds the index for a document. passageSize values below 1 fall
// back to DefaultPassageSize. An empty document yields a single empty passage
// and every search over it returns no results.
func NewIndex(text string, passageSize int) *Index {
	if passageSize <= 0 {
		passageSize = DefaultPassageSize
	}

	ix := &Index{
		text:   text,
		folded: lowerASCII(text),
		tokens: Tokenize(text),
		size:   passageSize,
	}

	ix.occ = make(map[string][]int)
	for i, tok := range ix.tokens {
		ix.occ[tok.Text] = append(ix.occ[tok.Text], i)
	}

	ix.vocab = make([]string, 0, len(ix.occ))
	for word := range ix.occ {
		ix.vocab = append(ix.vocab, word)
	}
	sort.Strings(ix.vocab)

	ix.buildPassages()

	return ix
}

func (ix *Index) buildPassages() {
	if len(ix.text) == 0 {
		ix.passages = []Passage{{Id: 0, Start: 0, End: 0, TermCounts: map[string]int{}}}
		ix.passFreq = map[string]int{}
		return
	}

	count := (len(ix.text) + ix.size - 1) / ix.size
	ix.passages = make([]Passage, count)
	for i := range ix.passages {
		start := i * ix.size
		end := start + ix.size
		if end > len(ix.text) {
			end = len(ix.text)
		}
		ix.passages[i] = Passage{Id: i, Start: start, End: end, TermCounts: map[string]int{}}
	}

	// A token belongs to the passage containing its first byte.
	for _, tok := range ix.tokens {
		pid := tok.Start / ix.size
		ix.passages[pid].TermCounts[tok.Text]++
	}

	ix.passFreq = make(map[string]int)
	for i := range ix.passages {
		for word := range ix.passages[i].TermCounts {
			ix.passFreq[word]++
		}
	}
}

// Text returns the original document text.
func (ix *Index) Text() string {
	return ix.text
}

// Len returns the document length in bytes.
func (ix *Index) Len() int {
	return len(ix.text)
}

// TokenCount returns the number of word tokens in the document.
func (ix *Index) TokenCount() int {
	return len(ix.tokens)
}

// PassageCount returns the number of passages the document was segmented into.
func (ix *Index) PassageCount() int {
	return len(ix.passages)
}

// starts returns the ascending byte offsets of every occurrence of word.
func (ix *Index) starts(word string) []int {
	indices := ix.occ[word]
	if len(indices) == 0 {
		return nil
	}
	out := make([]int, len(indices))
	for i, ti := range indices {
		out[i] = ix.tokens[ti].Start
	}
	return out
}

// tokenRange returns the half-open range of token indices whose start byte
// falls inside [start, end).
func (ix *Index) tokenRange(start, end int) (int, int) {
	lo := sort.Search(len(ix.tokens), func(i int) bool {
		return ix.tokens[i].Start >= start
	})
	hi := sort.Search(len(ix.tokens), func(i int) bool {
		return ix.tokens[i].Start >= end
	})
	return lo, hi
}

// sampleInts picks at most limit values from xs with an even stride, keeping
// document order.
func sampleInts(xs []int, limit int) []int {
	if len(xs) <= limit {
		return xs
	}
	stride := len(xs) / limit
	out := make([]int, 0, limit)
	for i := 0; i < len(xs) && len(out) < limit; i += stride {
		out = append(out, xs[i])
	}
	return out
}
