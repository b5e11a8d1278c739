package fuzzy

import (
	"strings"
	"unicode/utf8"

	sfuzzy "github.com/sahilm/fuzzy"
)

// Span is a half-open byte range of text.
type Span struct {
	Start int
	End   int
}

// Highlight returns the byte spans of text covered by the subsequence match of q.
// Adjacent matched runes are merged. Nil means q does not occur as a subsequence.
func Highlight(text, q string) []Span {
	q = strings.TrimSpace(q)
	if q == "" || text == "" {
		return nil
	}
	matches := sfuzzy.Find(q, []string{text})
	if len(matches) == 0 {
		return nil
	}
	var spans []Span
	for _, idx := range matches[0].MatchedIndexes {
		_, size := utf8.DecodeRuneInString(text[idx:])
		if n := len(spans); n > 0 && spans[n-1].End == idx {
			spans[n-1].End = idx + size
			continue
		}
		spans = append(spans, Span{Start: idx, End: idx + size})
	}
	return spans
}

// Mark wraps every span of text in before and after.
func Mark(text string, spans []Span, before, after string) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(before)
		b.WriteString(text[s.Start:s.End])
		b.WriteString(after)
		last = s.End
	}
	b.WriteString(text[last:])
	return b.String()
}
