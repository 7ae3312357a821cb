package logic

import (
	"strings"
	"unicode/utf8"
)

// Span is a byte range of text that matched the filter term
type Span struct {
	Start, End int
}

// MatchSpans returns the non-overlapping case-insensitive occurrences of term in text.
// Spans index into text itself, so they can be used to style the original string.
func MatchSpans(text, term string) []Span {
	if term == "" || text == "" {
		return nil
	}

	lowerTerm := strings.ToLower(term)
	var spans []Span
	for i := 0; i < len(text); {
		if end, ok := prefixFold(text[i:], lowerTerm); ok {
			spans = append(spans, Span{Start: i, End: i + end})
			i += end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return spans
}

// prefixFold reports whether s starts with lowerTerm once lowered, and how many bytes of s matched
func prefixFold(s, lowerTerm string) (int, bool) {
	consumed := 0
	for lowerTerm != "" {
		if consumed >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[consumed:])
		lowered := strings.ToLower(string(r))
		if !strings.HasPrefix(lowerTerm, lowered) {
			return 0, false
		}
		lowerTerm = lowerTerm[len(lowered):]
		consumed += size
	}
	return consumed, true
}
