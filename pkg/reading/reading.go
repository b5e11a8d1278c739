// Package reading pairs the kanji of a word with its stored reading fragments.
//
// Fragments are positional: the n-th fragment belongs to the n-th kanji occurrence of the word,
// left to right. Kana and other characters read as themselves. A word whose fragment count does
// not match its kanji count never fails; unpaired kanji read as their literal character.
package reading

import (
	"strings"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/script"
)

// Pair is one kanji occurrence of a word and the fragment assigned to it.
type Pair struct {
	Occurrence int    `json:"occurrence" msgpack:"occurrence"` // index among the word's kanji, from 0
	Position   int    `json:"position" msgpack:"position"`     // rune offset in the word
	Char       string `json:"char" msgpack:"char"`
	Reading    string `json:"reading" msgpack:"reading"` // "" when Missing
	Missing    bool   `json:"missing" msgpack:"missing"`
}

// Key identifies one kanji occurrence.
type Key struct {
	Char       string
	Occurrence int
}

// Pairs returns one Pair per kanji occurrence, in order.
func Pairs(w model.Word) []Pair {
	var pairs []Pair
	pos := 0
	for _, r := range w.Word {
		if script.IsKanji(r) {
			p := Pair{Occurrence: len(pairs), Position: pos, Char: string(r)}
			if p.Occurrence < len(w.KanjiReadings) {
				p.Reading = w.KanjiReadings[p.Occurrence].Reading
			} else {
				p.Missing = true
			}
			pairs = append(pairs, p)
		}
		pos++
	}
	return pairs
}

// Align returns the full phonetic reading of w.
func Align(w model.Word) string {
	var b strings.Builder
	k := 0
	for _, r := range w.Word {
		if !script.IsKanji(r) {
			b.WriteRune(r)
			continue
		}
		if k < len(w.KanjiReadings) {
			b.WriteString(w.KanjiReadings[k].Reading)
		} else {
			b.WriteRune(r)
		}
		k++
	}
	return b.String()
}

// Annotate returns the readings of the kanji of w that are not in known, keyed by character.
// When an unknown kanji occurs more than once, the last occurrence's reading wins.
// Use AnnotateOccurrences to keep every occurrence.
func Annotate(w model.Word, known KnownSet) map[string]string {
	out := make(map[string]string)
	for _, p := range Pairs(w) {
		if p.Missing || isKnown(known, p.Char) {
			continue
		}
		out[p.Char] = p.Reading
	}
	return out
}

// AnnotateOccurrences is Annotate keyed by occurrence, so repeated kanji keep their own readings.
func AnnotateOccurrences(w model.Word, known KnownSet) map[Key]string {
	out := make(map[Key]string)
	for _, p := range Pairs(w) {
		if p.Missing || isKnown(known, p.Char) {
			continue
		}
		out[Key{Char: p.Char, Occurrence: p.Occurrence}] = p.Reading
	}
	return out
}

func isKnown(known KnownSet, char string) bool {
	return known != nil && known.Has(char)
}
