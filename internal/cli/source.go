package cli

import (
	"context"
	"strings"

	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/bastiangx/kotoba/pkg/fuzzy"
	"github.com/bastiangx/kotoba/pkg/library"
	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/reading"
	"github.com/charmbracelet/log"
)

// Match tells the renderer which column of a row the query matched.
type Match int

const (
	MatchNone Match = iota
	MatchTitle
	MatchDetail
)

// Row is one result line of the REPL.
type Row struct {
	Title   string
	Detail  string
	Match   Match
	Preview string // printed when the row is selected
}

// Source fetches rows for a settled query.
type Source func(ctx context.Context, q string) ([]Row, error)

// Library is the part of *library.Library the REPL searches.
type Library interface {
	SearchWords(ctx context.Context, q string) ([]fuzzy.Result[model.Word], error)
	SearchKanji(ctx context.Context, q string) ([]fuzzy.Result[model.Kanji], error)
	Furigana(ctx context.Context, w model.Word) (library.Furigana, error)
	Lookup(text string) (dictionary.LookupResult, error)
}

// WordSource searches saved words. Selecting a word previews its furigana.
func WordSource(lib Library) Source {
	return func(ctx context.Context, q string) ([]Row, error) {
		results, err := lib.SearchWords(ctx, q)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(results))
		for _, r := range results {
			w := r.Item
			row := Row{Title: w.Word, Detail: w.Meaning, Match: fieldMatch(r.Field, "word", "meaning")}
			if f, err := lib.Furigana(ctx, w); err == nil {
				row.Preview = reading.Bracketed(f.Segments) + "  " + f.Reading + "  " + w.Meaning
			} else {
				log.Warnf("Furigana for %s: %v", w.Word, err)
				row.Preview = w.Word + "  " + w.Meaning
			}
			rows = append(rows, row)
		}
		return rows, nil
	}
}

// KanjiSource searches saved kanji.
func KanjiSource(lib Library) Source {
	return func(ctx context.Context, q string) ([]Row, error) {
		results, err := lib.SearchKanji(ctx, q)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(results))
		for _, r := range results {
			k := r.Item
			readings := strings.Join(k.Readings, "、")
			rows = append(rows, Row{
				Title:   k.Kanji,
				Detail:  readings,
				Match:   fieldMatch(r.Field, "kanji", "readings"),
				Preview: k.Kanji + "  " + readings,
			})
		}
		return rows, nil
	}
}

// LookupSource searches the Heisig table. Queries must pass query.Validate first.
func LookupSource(lib Library) Source {
	return func(ctx context.Context, q string) ([]Row, error) {
		res, err := lib.Lookup(q)
		if err != nil {
			return nil, err
		}
		if res.WasCorrected && res.CorrectedQuery != nil {
			log.Infof("Showing results for %s", res.CorrectedQuery)
		}
		rows := make([]Row, 0, len(res.Entries))
		for _, e := range res.Entries {
			detail := e.Keyword
			if e.Pronunciation != "" {
				detail += "  " + e.Pronunciation
			}
			rows = append(rows, Row{Title: e.Kanji, Detail: detail, Preview: entryPreview(e)})
		}
		return rows, nil
	}
}

func entryPreview(e dictionary.Entry) string {
	var b strings.Builder
	b.WriteString(e.Kanji + "  " + e.Keyword)
	if len(e.Primitives) > 0 {
		b.WriteString("\n  primitives: " + strings.Join(e.Primitives, ", "))
	}
	for _, w := range e.Words {
		if sw, ok := dictionary.ParseSampleWord(w); ok {
			b.WriteString("\n  " + sw.Word + " (" + sw.Reading + ") " + sw.Meaning)
		}
	}
	return b.String()
}

func fieldMatch(field, title, detail string) Match {
	switch field {
	case title:
		return MatchTitle
	case detail:
		return MatchDetail
	default:
		return MatchNone
	}
}
