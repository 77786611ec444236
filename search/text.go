package search

import (
	"strings"
	"unicode"
)

// Token is a single word occurrence in a document.
// Text is lowercased; Start and End are byte offsets into the original text,
// so text[Start:End] is the occurrence as written.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text into lowercase word tokens with their byte offsets.
// A word is a maximal run of letters, digits, or underscores; everything
// between words is skipped but still counted in the offsets.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/6)

	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, Token{
				Text:  strings.ToLower(text[start:i]),
				Start: start,
				End:   i,
			})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{
			Text:  strings.ToLower(text[start:]),
			Start: start,
			End:   len(text),
		})
	}

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// normalizeKeywords lowercases and trims keywords, dropping empties and
// duplicates while preserving request order.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}

	return out
}

// lowerASCII folds ASCII upper case to lower case without touching other
// bytes. Byte offsets into the result are valid offsets into the input,
// which full Unicode case folding does not guarantee.
func lowerASCII(s string) string {
	fold := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			fold = true
			break
		}
	}
	if !fold {
		return s
	}

	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
