// Package fuzzy builds immutable, field-weighted approximate-match indexes over small in-memory
// collections.
//
// A query matches a field value when the value contains a substring within the allowed number
// of edits of the query. The allowed number of edits is the index threshold times the query
// length in runes, so a threshold of 0 accepts only exact (case-insensitive) substrings and a
// threshold of 1 accepts everything.
//
// An empty query is not a search: every item comes back unranked, in collection order.
package fuzzy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrThreshold is returned by Build for a threshold outside [0, 1].
var ErrThreshold = errors.New("fuzzy: threshold must be within [0, 1]")

// DefaultThreshold is the match tolerance used by the study lists.
const DefaultThreshold = 0.3

// Field names one searchable text of an item. Values may return several strings;
// the best matching one counts.
type Field[T any] struct {
	Name   string
	Weight float64
	Values func(T) []string
}

// Kind tells whether a result was ranked by a search or returned as-is.
type Kind int

const (
	// Raw results are the unfiltered collection for an empty query.
	Raw Kind = iota
	// Ranked results matched the query and carry a distance.
	Ranked
)

func (k Kind) String() string {
	if k == Ranked {
		return "ranked"
	}
	return "raw"
}

// Result wraps one item returned by Search.
type Result[T any] struct {
	Item     T
	Kind     Kind
	Distance float64 // 0 for exact substring hits, always 0 for Raw
	Field    string  // best matching field, "" for Raw
	Position int     // rune offset just past the best match in that field's value
}

type entry[T any] struct {
	item   T
	values [][]string // per field, lowercased
}

// Index is a snapshot of a collection prepared for searching. It is never mutated after Build
// and is safe for concurrent use.
type Index[T any] struct {
	entries   []entry[T]
	fields    []Field[T]
	threshold float64
}

// Build copies items and prepares every field value for matching.
func Build[T any](items []T, fields []Field[T], threshold float64) (*Index[T], error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}
	fs := make([]Field[T], len(fields))
	for i, f := range fields {
		if f.Weight <= 0 {
			f.Weight = 1
		}
		fs[i] = f
	}

	entries := make([]entry[T], len(items))
	for i, item := range items {
		values := make([][]string, len(fs))
		for j, f := range fs {
			if f.Values == nil {
				continue
			}
			raw := f.Values(item)
			lowered := make([]string, 0, len(raw))
			for _, v := range raw {
				lowered = append(lowered, strings.ToLower(v))
			}
			values[j] = lowered
		}
		entries[i] = entry[T]{item: item, values: values}
	}
	return &Index[T]{entries: entries, fields: fs, threshold: threshold}, nil
}

// Len returns the number of indexed items.
func (ix *Index[T]) Len() int { return len(ix.entries) }

// Threshold returns the tolerance the index was built with.
func (ix *Index[T]) Threshold() float64 { return ix.threshold }

// Search ranks items against q, best first. Ties keep collection order.
func (ix *Index[T]) Search(q string) []Result[T] {
	q = strings.TrimSpace(q)
	if q == "" {
		out := make([]Result[T], len(ix.entries))
		for i, e := range ix.entries {
			out[i] = Result[T]{Item: e.item, Kind: Raw}
		}
		return out
	}

	pattern := []rune(strings.ToLower(q))
	out := make([]Result[T], 0)
	for _, e := range ix.entries {
		best, matched := Result[T]{Item: e.item, Kind: Ranked, Distance: 1}, false
		for j, f := range ix.fields {
			for _, v := range e.values[j] {
				edits, end := substringDistance(pattern, []rune(v))
				norm := float64(edits) / float64(len(pattern))
				if norm > ix.threshold {
					continue
				}
				score := norm / f.Weight
				if score > 1 {
					score = 1
				}
				if !matched || score < best.Distance {
					best.Distance, best.Field, best.Position = score, f.Name, end
					matched = true
				}
			}
		}
		if matched {
			out = append(out, best)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })
	return out
}

// Items unwraps results into their items, keeping order.
func Items[T any](results []Result[T]) []T {
	items := make([]T, len(results))
	for i, r := range results {
		items[i] = r.Item
	}
	return items
}

// substringDistance returns the fewest edits turning pattern into some substring of text,
// and the rune offset where that substring ends. The start of the match is free.
func substringDistance(pattern, text []rune) (int, int) {
	m := len(pattern)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	best, end := prev[m], 0
	for j := 1; j <= len(text); j++ {
		cur[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			cur[i] = min(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
		}
		if cur[m] < best {
			best, end = cur[m], j
		}
		prev, cur = cur, prev
	}
	return best, end
}
