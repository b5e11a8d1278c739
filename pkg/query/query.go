/*
Package query classifies free-text lookups typed by the user.

A lookup is one of three things:

	水            a single kanji character  -> Kanji
	みず / ミズ    kana only                 -> Reading
	water, river  comma separated keywords  -> Keywords

Anything else is invalid. Classify is pure and cheap, so it doubles as the synchronous
validator of the autocomplete controller through Validate.
*/
package query

import (
	"errors"
	"strings"

	"github.com/bastiangx/kotoba/pkg/script"
)

// Kind tags the variant held by a Query.
type Kind int

const (
	KindKanji Kind = iota + 1
	KindReading
	KindKeywords
)

func (k Kind) String() string {
	switch k {
	case KindKanji:
		return "kanji"
	case KindReading:
		return "reading"
	case KindKeywords:
		return "keywords"
	default:
		return "invalid"
	}
}

// InvalidMessage is shown to the user when a lookup cannot be classified.
const InvalidMessage = "Please enter a single kanji character, a reading, or comma-separated Heisig keywords."

// ErrInvalid is returned by Classify when no variant matches.
var ErrInvalid = errors.New("invalid query")

// Query is a classified lookup. Only the field matching Kind is set.
type Query struct {
	Kind     Kind     `msgpack:"kind" json:"kind"`
	Kanji    string   `msgpack:"kanji,omitempty" json:"kanji,omitempty"`
	Reading  string   `msgpack:"reading,omitempty" json:"reading,omitempty"`
	Keywords []string `msgpack:"keywords,omitempty" json:"keywords,omitempty"`
}

// Kanji returns a Kanji query.
func Kanji(char string) Query { return Query{Kind: KindKanji, Kanji: char} }

// Reading returns a Reading query.
func Reading(kana string) Query { return Query{Kind: KindReading, Reading: kana} }

// Keywords returns a Keywords query.
func Keywords(words ...string) Query { return Query{Kind: KindKeywords, Keywords: words} }

// String renders the query the way it would be typed back.
func (q Query) String() string {
	switch q.Kind {
	case KindKanji:
		return q.Kanji
	case KindReading:
		return q.Reading
	case KindKeywords:
		return strings.Join(q.Keywords, ", ")
	}
	return ""
}

// ValidationError carries the user-facing message for an invalid lookup.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Classify trims text and decides which lookup it is.
func Classify(text string) (Query, error) {
	trimmed := strings.TrimSpace(text)

	if script.IsKanjiString(trimmed) {
		return Kanji(trimmed), nil
	}
	// AllKana is false for "", so blank input and a lone Latin letter fall through.
	if script.AllKana(trimmed) {
		return Reading(trimmed), nil
	}

	var keywords []string
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" || script.ContainsJapanese(part) {
			continue
		}
		keywords = append(keywords, part)
	}
	if len(keywords) > 0 {
		return Keywords(keywords...), nil
	}
	return Query{}, &ValidationError{Input: text, Message: InvalidMessage}
}

// Validate returns a user-facing message when text is not a valid lookup, "" otherwise.
func Validate(text string) string {
	if _, err := Classify(text); err != nil {
		return InvalidMessage
	}
	return ""
}
