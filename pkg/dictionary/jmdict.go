package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// JMdictEntry matches the structure of jmdict-simplified entries.
type JMdictEntry struct {
	ID    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
	Sense []JMdictSense   `json:"sense"`
}

type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

type JMdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Gloss        []JMdictGloss `json:"gloss"`
}

type JMdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Word is the headword: the first kanji writing, or the first kana writing for kana-only words.
func (e JMdictEntry) Word() string {
	if len(e.Kanji) > 0 {
		return e.Kanji[0].Text
	}
	if len(e.Kana) > 0 {
		return e.Kana[0].Text
	}
	return ""
}

// WordCandidate is a dictionary word offered when adding a word to the study list.
type WordCandidate struct {
	Word         string   `json:"word" msgpack:"word"`
	Reading      string   `json:"reading" msgpack:"reading"`
	Translations []string `json:"translations" msgpack:"translations"`
}

// Candidate flattens the entry.
func (e JMdictEntry) Candidate() WordCandidate {
	c := WordCandidate{Word: e.Word(), Translations: []string{}}
	if len(e.Kana) > 0 {
		c.Reading = e.Kana[0].Text
	}
	for _, s := range e.Sense {
		glosses := make([]string, 0, len(s.Gloss))
		for _, g := range s.Gloss {
			if g.Lang == "" || g.Lang == "eng" {
				glosses = append(glosses, g.Text)
			}
		}
		if len(glosses) > 0 {
			c.Translations = append(c.Translations, strings.Join(glosses, "; "))
		}
	}
	return c
}

// JMdict indexes entries by every kanji and kana writing.
type JMdict struct {
	entries []JMdictEntry
	byText  map[string][]int
}

// LoadJMdictSimplified reads a jmdict-simplified file, either the { "words": [...] } object
// or a bare array of entries.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapped struct {
		Words []JMdictEntry `json:"words"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapped); err == nil && len(wrapped.Words) > 0 {
		return wrapped.Words, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []JMdictEntry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or array: %w", err)
	}
	return entries, nil
}

// LoadJMdict loads and indexes a jmdict-simplified file.
func LoadJMdict(path string) (*JMdict, error) {
	entries, err := LoadJMdictSimplified(path)
	if err != nil {
		return nil, fmt.Errorf("load jmdict %s: %w", path, err)
	}
	log.Debugf("Loaded %d jmdict entries from %s", len(entries), path)
	return NewJMdict(entries), nil
}

// NewJMdict indexes entries.
func NewJMdict(entries []JMdictEntry) *JMdict {
	d := &JMdict{entries: entries, byText: make(map[string][]int)}
	for i, e := range entries {
		for _, k := range e.Kanji {
			d.add(k.Text, i)
		}
		for _, k := range e.Kana {
			d.add(k.Text, i)
		}
	}
	return d
}

func (d *JMdict) add(text string, i int) {
	idx := d.byText[text]
	if n := len(idx); n > 0 && idx[n-1] == i {
		return
	}
	d.byText[text] = append(idx, i)
}

// Len returns the number of entries.
func (d *JMdict) Len() int { return len(d.entries) }

// Find returns every entry written as text, in dictionary order.
func (d *JMdict) Find(text string) []JMdictEntry {
	idx := d.byText[text]
	out := make([]JMdictEntry, len(idx))
	for n, i := range idx {
		out[n] = d.entries[i]
	}
	return out
}
