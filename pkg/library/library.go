// Package library ties the study lists, the search indexes and the reference dictionaries
// together behind the operations the CLI and the IPC server expose.
package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/bastiangx/kotoba/pkg/fuzzy"
	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/bastiangx/kotoba/pkg/reading"
	"github.com/bastiangx/kotoba/pkg/store"
	"github.com/charmbracelet/log"
)

// Options tunes the search indexes.
type Options struct {
	Threshold     float64
	WordWeight    float64
	MeaningWeight float64
}

// DefaultOptions matches the default config.
func DefaultOptions() Options {
	return Options{Threshold: fuzzy.DefaultThreshold, WordWeight: 1, MeaningWeight: 1}
}

// Library is safe for concurrent use.
type Library struct {
	db         *store.SQLite
	words      *store.Collection[model.Word]
	kanji      *store.Collection[model.Kanji]
	wordIndex  indexCache[model.Word]
	kanjiIndex indexCache[model.Kanji]
	heisig     *dictionary.Heisig
	jmdict     *dictionary.JMdict
	lemmas     *dictionary.Lemmatizer
}

// New wraps an open database. Dictionaries are attached with WithHeisig and WithJMdict.
func New(db *store.SQLite, opts Options) (*Library, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", fuzzy.ErrThreshold, opts.Threshold)
	}
	l := &Library{
		db:    db,
		words: store.NewCollection(db.ListWords),
		kanji: store.NewCollection(db.ListKanji),
	}
	l.wordIndex = indexCache[model.Word]{threshold: opts.Threshold, fields: []fuzzy.Field[model.Word]{
		{Name: "word", Weight: opts.WordWeight, Values: func(w model.Word) []string { return []string{w.Word} }},
		{Name: "meaning", Weight: opts.MeaningWeight, Values: func(w model.Word) []string { return []string{w.Meaning} }},
	}}
	l.kanjiIndex = indexCache[model.Kanji]{threshold: opts.Threshold, fields: []fuzzy.Field[model.Kanji]{
		{Name: "kanji", Weight: 1, Values: func(k model.Kanji) []string { return []string{k.Kanji} }},
		{Name: "readings", Weight: 1, Values: func(k model.Kanji) []string { return k.Readings }},
	}}
	return l, nil
}

// WithHeisig attaches the kanji table used by Lookup.
func (l *Library) WithHeisig(h *dictionary.Heisig) *Library {
	l.heisig = h
	return l
}

// WithJMdict attaches the word dictionary used by Candidates. lemmas may be nil.
func (l *Library) WithJMdict(d *dictionary.JMdict, lemmas *dictionary.Lemmatizer) *Library {
	l.jmdict = d
	l.lemmas = lemmas
	return l
}

// Words is the saved words collection.
func (l *Library) Words() store.Snapshotter[model.Word] { return l.words }

// Kanji is the saved kanji collection.
func (l *Library) Kanji() store.Snapshotter[model.Kanji] { return l.kanji }

// Invalidate drops every cached snapshot, e.g. after another process wrote the database.
func (l *Library) Invalidate() {
	l.words.Invalidate()
	l.kanji.Invalidate()
}

// SearchWords searches the saved words. An empty query lists them all.
func (l *Library) SearchWords(ctx context.Context, q string) ([]fuzzy.Result[model.Word], error) {
	ix, err := l.wordIndex.get(ctx, l.words)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return ix.Search(q), nil
}

// SearchKanji searches the saved kanji. An empty query lists them all.
func (l *Library) SearchKanji(ctx context.Context, q string) ([]fuzzy.Result[model.Kanji], error) {
	ix, err := l.kanjiIndex.get(ctx, l.kanji)
	if err != nil {
		return nil, fmt.Errorf("search kanji: %w", err)
	}
	return ix.Search(q), nil
}

// Known returns the set of saved kanji.
func (l *Library) Known(ctx context.Context) (reading.Set, error) {
	kanji, err := l.kanji.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("known kanji: %w", err)
	}
	return reading.KnownKanji(kanji), nil
}

// Furigana is the reading view of a word: its full reading and the readings of the kanji
// not yet saved.
type Furigana struct {
	Word        model.Word        `json:"word" msgpack:"word"`
	Reading     string            `json:"reading" msgpack:"reading"`
	Annotations map[string]string `json:"annotations" msgpack:"annotations"`
	Segments    []reading.Segment `json:"segments" msgpack:"segments"`
}

// Furigana computes the reading view of w against the saved kanji.
func (l *Library) Furigana(ctx context.Context, w model.Word) (Furigana, error) {
	known, err := l.Known(ctx)
	if err != nil {
		return Furigana{}, err
	}
	return Furigana{
		Word:        w,
		Reading:     reading.Align(w),
		Annotations: reading.Annotate(w, known),
		Segments:    reading.Segments(w, reading.AnnotateOccurrences(w, known)),
	}, nil
}

// FindWord returns the saved word spelled exactly as word.
func (l *Library) FindWord(ctx context.Context, word string) (model.Word, bool, error) {
	words, err := l.words.Snapshot(ctx)
	if err != nil {
		return model.Word{}, false, err
	}
	for _, w := range words {
		if w.Word == word {
			return w, true, nil
		}
	}
	return model.Word{}, false, nil
}

// Lookup classifies text and searches the Heisig table with it.
func (l *Library) Lookup(text string) (dictionary.LookupResult, error) {
	if l.heisig == nil {
		return dictionary.LookupResult{}, ErrNoDictionary
	}
	q, err := query.Classify(text)
	if err != nil {
		return dictionary.LookupResult{}, err
	}
	return l.heisig.Lookup(q), nil
}

// Candidates lists dictionary words for text.
func (l *Library) Candidates(text string) ([]dictionary.WordCandidate, error) {
	if l.jmdict == nil {
		return nil, ErrNoDictionary
	}
	return dictionary.Candidates(l.jmdict, l.lemmas, text), nil
}

// AddWord validates and saves a word.
func (l *Library) AddWord(ctx context.Context, p model.WordCreatePayload) (model.Word, error) {
	if err := p.Validate(); err != nil {
		return model.Word{}, err
	}
	w := p.ToWord()
	if err := l.db.AddWord(ctx, w); err != nil {
		return model.Word{}, err
	}
	l.words.Invalidate()
	log.Debugf("Saved word %s", w.Word)
	return w, nil
}

// AddKanji validates and saves a kanji.
func (l *Library) AddKanji(ctx context.Context, p model.KanjiCreatePayload) (model.Kanji, error) {
	if err := p.Validate(); err != nil {
		return model.Kanji{}, err
	}
	k := p.ToKanji()
	if err := l.db.AddKanji(ctx, k); err != nil {
		return model.Kanji{}, err
	}
	l.kanji.Invalidate()
	log.Debugf("Saved kanji %s", k.Kanji)
	return k, nil
}

// indexCache keeps the fuzzy index of the last snapshot version it saw.
type indexCache[T any] struct {
	mu        sync.Mutex
	fields    []fuzzy.Field[T]
	threshold float64
	version   uint64
	index     *fuzzy.Index[T]
}

func (c *indexCache[T]) get(ctx context.Context, coll *store.Collection[T]) (*fuzzy.Index[T], error) {
	items, version, err := coll.Versioned(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil && c.version == version {
		return c.index, nil
	}
	ix, err := fuzzy.Build(items, c.fields, c.threshold)
	if err != nil {
		return nil, err
	}
	c.index, c.version = ix, version
	return ix, nil
}
