// Package model holds the study-list entities shared by the store, the search index and the
// reading engine.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/kotoba/pkg/script"
	"github.com/google/uuid"
)

// ErrInvalidPayload is wrapped by every payload validation failure.
var ErrInvalidPayload = errors.New("invalid payload")

// ReadingFragment is the reading of one kanji occurrence inside a word.
// Fragments are positional: the n-th fragment belongs to the n-th kanji of the word.
type ReadingFragment struct {
	Reading string `json:"reading" msgpack:"reading"`
}

// Word is a saved vocabulary entry.
type Word struct {
	ID            string            `json:"id" msgpack:"id"`
	Word          string            `json:"word" msgpack:"word"`
	Meaning       string            `json:"meaning" msgpack:"meaning"`
	KanjiReadings []ReadingFragment `json:"kanji_readings" msgpack:"kanji_readings"`
}

// Identifier is the uniqueness key of a word.
func (w Word) Identifier() string { return w.Word }

// Kanji is a saved kanji entry. The literal character is its identity.
type Kanji struct {
	ID              string   `json:"id" msgpack:"id"`
	Kanji           string   `json:"kanji" msgpack:"kanji"`
	Readings        []string `json:"readings" msgpack:"readings"`
	Tags            []string `json:"tags" msgpack:"tags"`
	WritingMnemonic *string  `json:"writing_mnemonic,omitempty" msgpack:"writing_mnemonic,omitempty"`
	ReadingMnemonic *string  `json:"reading_mnemonic,omitempty" msgpack:"reading_mnemonic,omitempty"`
}

// Identifier is the uniqueness key of a kanji.
func (k Kanji) Identifier() string { return k.Kanji }

// Readings builds fragments from plain reading strings.
func Readings(readings ...string) []ReadingFragment {
	out := make([]ReadingFragment, len(readings))
	for i, r := range readings {
		out[i] = ReadingFragment{Reading: r}
	}
	return out
}

// WordCreatePayload is what a caller submits to save a word.
type WordCreatePayload struct {
	Word          string            `json:"word" msgpack:"word"`
	Meaning       string            `json:"meaning" msgpack:"meaning"`
	KanjiReadings []ReadingFragment `json:"kanji_readings" msgpack:"kanji_readings"`
}

// Validate checks that every kanji of the word has a kana reading.
func (p WordCreatePayload) Validate() error {
	word := strings.TrimSpace(p.Word)
	if word == "" {
		return fmt.Errorf("%w: word must be non-empty", ErrInvalidPayload)
	}
	if n := script.CountKanji(word); n != len(p.KanjiReadings) {
		return fmt.Errorf("%w: %q has %d kanji but %d readings", ErrInvalidPayload, word, n, len(p.KanjiReadings))
	}
	for i, f := range p.KanjiReadings {
		reading := strings.TrimSpace(f.Reading)
		if reading == "" {
			return fmt.Errorf("%w: reading %d is empty", ErrInvalidPayload, i+1)
		}
		for _, r := range reading {
			if !script.IsKana(r) {
				return fmt.Errorf("%w: reading %d (%q) must be written in kana", ErrInvalidPayload, i+1, reading)
			}
		}
	}
	return nil
}

// ToWord returns the entity with a fresh id.
func (p WordCreatePayload) ToWord() Word {
	readings := make([]ReadingFragment, len(p.KanjiReadings))
	for i, f := range p.KanjiReadings {
		readings[i] = ReadingFragment{Reading: strings.TrimSpace(f.Reading)}
	}
	return Word{
		ID:            uuid.New().String(),
		Word:          strings.TrimSpace(p.Word),
		Meaning:       strings.TrimSpace(p.Meaning),
		KanjiReadings: readings,
	}
}

// KanjiCreatePayload is what a caller submits to save a kanji.
type KanjiCreatePayload struct {
	Kanji           string   `json:"kanji" msgpack:"kanji"`
	Readings        []string `json:"readings" msgpack:"readings"`
	Tags            []string `json:"tags" msgpack:"tags"`
	WritingMnemonic *string  `json:"writing_mnemonic,omitempty" msgpack:"writing_mnemonic,omitempty"`
	ReadingMnemonic *string  `json:"reading_mnemonic,omitempty" msgpack:"reading_mnemonic,omitempty"`
}

// Validate checks that the payload names exactly one kanji.
func (p KanjiCreatePayload) Validate() error {
	if !script.IsKanjiString(strings.TrimSpace(p.Kanji)) {
		return fmt.Errorf("%w: %q is not a single kanji", ErrInvalidPayload, p.Kanji)
	}
	return nil
}

// ToKanji returns the entity with a fresh id. Blank mnemonics are dropped.
func (p KanjiCreatePayload) ToKanji() Kanji {
	readings := make([]string, 0, len(p.Readings))
	for _, r := range p.Readings {
		if r = strings.TrimSpace(r); r != "" {
			readings = append(readings, r)
		}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Kanji{
		ID:              uuid.New().String(),
		Kanji:           strings.TrimSpace(p.Kanji),
		Readings:        readings,
		Tags:            tags,
		WritingMnemonic: nonBlank(p.WritingMnemonic),
		ReadingMnemonic: nonBlank(p.ReadingMnemonic),
	}
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
