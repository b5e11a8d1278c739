package dictionary

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Lemmatizer finds dictionary forms with the IPA morphological dictionary.
type Lemmatizer struct {
	t *tokenizer.Tokenizer
}

// NewLemmatizer loads the tokenizer. Loading the IPA dictionary takes a moment,
// so callers keep one instance around.
func NewLemmatizer() (*Lemmatizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	return &Lemmatizer{t: t}, nil
}

// Lemma returns the base form of the first token of text, or text itself when the tokenizer
// knows no base form (unknown words, symbols).
func (l *Lemmatizer) Lemma(text string) string {
	for _, token := range l.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		// IPA features: 6 is the base form
		if features := token.Features(); len(features) > 6 && features[6] != "*" {
			return features[6]
		}
		return token.Surface
	}
	return text
}

// Candidates collects dictionary words for the lemma of text and for text itself,
// lemma first, without repeating a headword.
func Candidates(d *JMdict, l *Lemmatizer, text string) []WordCandidate {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lookups := []string{text}
	if l != nil {
		if lemma := l.Lemma(text); lemma != text {
			lookups = []string{lemma, text}
		}
	}

	var out []WordCandidate
	seen := make(map[string]bool)
	for _, s := range lookups {
		for _, e := range d.Find(s) {
			c := e.Candidate()
			if seen[c.Word] {
				continue
			}
			seen[c.Word] = true
			out = append(out, c)
		}
	}
	return out
}
