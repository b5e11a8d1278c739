// Package dictionary holds the read-only reference data: the Heisig kanji table used by the
// kanji lookup and the JMdict word list used for word candidates.
package dictionary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// keywordSimilarity is the Jaro-Winkler score a known keyword needs to replace a typed one.
const keywordSimilarity = 0.85

// HeisigKanji is one record of the Heisig kanji table, as published.
type HeisigKanji struct {
	ID              string `json:"id"`
	FrameNoV4       string `json:"frameNoV4"`
	FrameNoV6       string `json:"frameNoV6"`
	Keyword         string `json:"keyword"`
	Kanji           string `json:"kanji"`
	StrokeDiagram   string `json:"strokeDiagram"`
	Hint            string `json:"hint"`
	Constituent     string `json:"constituent"`
	StrokeCount     string `json:"strokeCount"`
	LessonNo        string `json:"lessonNo"`
	MyStory         string `json:"myStory"`
	HeisigStory     string `json:"heisigStory"`
	HeisigComment   string `json:"heisigComment"`
	KoohiiStory1    string `json:"koohiiStory1"`
	KoohiiStory2    string `json:"koohiiStory2"`
	JouYou          string `json:"jouYou"`
	JLPT            string `json:"jlpt"`
	OnYomi          string `json:"onYomi"`
	KunYomi         string `json:"kunYomi"`
	Words           string `json:"words"`
	ReadingExamples string `json:"readingExamples"`
}

// Entry is the lookup view of a Heisig record.
type Entry struct {
	ID              string   `json:"id" msgpack:"id"`
	Kanji           string   `json:"kanji" msgpack:"kanji"`
	Keyword         string   `json:"keyword" msgpack:"keyword"`
	Pronunciation   string   `json:"pronunciation" msgpack:"pronunciation"`
	Primitives      []string `json:"primitives" msgpack:"primitives"`
	Words           []string `json:"words" msgpack:"words"`
	JLPTLevel       *int     `json:"jlpt_level,omitempty" msgpack:"jlpt_level,omitempty"`
	HeisigMnemonic  *string  `json:"heisig_mnemonic,omitempty" msgpack:"heisig_mnemonic,omitempty"`
	KoohiiMnemonic1 *string  `json:"koohii_mnemonic_1,omitempty" msgpack:"koohii_mnemonic_1,omitempty"`
	KoohiiMnemonic2 *string  `json:"koohii_mnemonic_2,omitempty" msgpack:"koohii_mnemonic_2,omitempty"`
}

// Entry converts the record.
func (k HeisigKanji) Entry() Entry {
	e := Entry{
		ID:              k.ID,
		Kanji:           k.Kanji,
		Keyword:         k.Keyword,
		Pronunciation:   k.KunYomi + ", " + k.OnYomi,
		Primitives:      splitTrim(k.Constituent, ","),
		Words:           splitTrim(k.Words, "<br>"),
		HeisigMnemonic:  optional(k.HeisigStory),
		KoohiiMnemonic1: optional(k.KoohiiStory1),
		KoohiiMnemonic2: optional(k.KoohiiStory2),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(k.JLPT)); err == nil {
		e.JLPTLevel = &n
	}
	return e
}

// KanjiPayload prepares the entry for saving to the study list with the user's own
// writing mnemonic.
func (e Entry) KanjiPayload(mnemonic string) model.KanjiCreatePayload {
	p := model.KanjiCreatePayload{
		Kanji:    e.Kanji,
		Readings: pronunciationReadings(e.Pronunciation),
		Tags:     []string{},
	}
	if strings.TrimSpace(mnemonic) != "" {
		p.WritingMnemonic = &mnemonic
	}
	return p
}

// SampleWord is one parsed sample word of an entry.
type SampleWord struct {
	Word    string `json:"word" msgpack:"word"`
	Reading string `json:"reading" msgpack:"reading"`
	Meaning string `json:"meaning" msgpack:"meaning"`
}

var sampleWordPattern = regexp.MustCompile(`(.+)\((.+)\):(.+)$`)

// ParseSampleWord parses a "word(reading):meaning" sample.
func ParseSampleWord(s string) (SampleWord, bool) {
	m := sampleWordPattern.FindStringSubmatch(s)
	if m == nil {
		return SampleWord{}, false
	}
	return SampleWord{
		Word:    strings.TrimSpace(m[1]),
		Reading: strings.TrimSpace(m[2]),
		Meaning: strings.TrimSpace(m[3]),
	}, true
}

// LookupResult is what a Heisig lookup found. CorrectedQuery is set when the typed keywords
// matched nothing and close known keywords were searched instead.
type LookupResult struct {
	Entries        []Entry      `json:"entries" msgpack:"entries"`
	WasCorrected   bool         `json:"was_corrected" msgpack:"was_corrected"`
	CorrectedQuery *query.Query `json:"corrected_query,omitempty" msgpack:"corrected_query,omitempty"`
}

// Heisig is the in-memory kanji table.
type Heisig struct {
	records  []HeisigKanji
	byID     map[string]int
	byKanji  map[string]int
	readings *patricia.Trie // normalized reading -> []int record indexes
	keywords []string       // distinct lowercased keywords
}

// LoadHeisig reads the table from a JSON file.
func LoadHeisig(path string) (*Heisig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heisig table: %w", err)
	}
	defer f.Close()

	h, err := ParseHeisig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d heisig kanji from %s", h.Len(), path)
	return h, nil
}

// ParseHeisig decodes a JSON array of records.
func ParseHeisig(r io.Reader) (*Heisig, error) {
	var records []HeisigKanji
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse heisig table: %w", err)
	}
	return NewHeisig(records), nil
}

// NewHeisig indexes records.
func NewHeisig(records []HeisigKanji) *Heisig {
	h := &Heisig{
		records:  records,
		byID:     make(map[string]int, len(records)),
		byKanji:  make(map[string]int, len(records)),
		readings: patricia.NewTrie(),
	}
	seen := make(map[string]bool)
	for i, k := range records {
		h.byID[k.ID] = i
		h.byKanji[k.Kanji] = i
		for _, reading := range Readings(k) {
			key := patricia.Prefix(reading)
			if item := h.readings.Get(key); item != nil {
				h.readings.Set(key, append(item.([]int), i))
			} else {
				h.readings.Insert(key, []int{i})
			}
		}
		kw := strings.ToLower(strings.TrimSpace(k.Keyword))
		if kw != "" && !seen[kw] {
			seen[kw] = true
			h.keywords = append(h.keywords, kw)
		}
	}
	return h
}

// Len returns the number of records.
func (h *Heisig) Len() int { return len(h.records) }

// ByID returns the record with the given id.
func (h *Heisig) ByID(id string) (HeisigKanji, bool) {
	i, ok := h.byID[id]
	if !ok {
		return HeisigKanji{}, false
	}
	return h.records[i], true
}

// ByKanji returns the record for the character, if any.
func (h *Heisig) ByKanji(kanji string) []HeisigKanji {
	if i, ok := h.byKanji[kanji]; ok {
		return []HeisigKanji{h.records[i]}
	}
	return nil
}

// ByReading returns records with an on or kun reading starting with reading.
func (h *Heisig) ByReading(reading string) []HeisigKanji {
	reading = normalizeReading(reading)
	if reading == "" {
		return nil
	}
	hits := make(map[int]bool)
	err := h.readings.VisitSubtree(patricia.Prefix(reading), func(_ patricia.Prefix, item patricia.Item) error {
		for _, i := range item.([]int) {
			hits[i] = true
		}
		return nil
	})
	if err != nil {
		log.Errorf("Reading index walk failed for %q: %v", reading, err)
		return nil
	}
	idx := make([]int, 0, len(hits))
	for i := range hits {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]HeisigKanji, len(idx))
	for n, i := range idx {
		out[n] = h.records[i]
	}
	return out
}

// ByKeywords returns records whose keyword contains every given keyword, ignoring case.
func (h *Heisig) ByKeywords(keywords []string) []HeisigKanji {
	if len(keywords) == 0 {
		return nil
	}
	var out []HeisigKanji
	for _, k := range h.records {
		kw := strings.ToLower(k.Keyword)
		all := true
		for _, want := range keywords {
			if !strings.Contains(kw, strings.ToLower(want)) {
				all = false
				break
			}
		}
		if all {
			out = append(out, k)
		}
	}
	return out
}

// Lookup runs a classified query. Entries are ordered by JLPT level, highest first;
// entries without a level go last.
func (h *Heisig) Lookup(q query.Query) LookupResult {
	var records []HeisigKanji
	var res LookupResult
	switch q.Kind {
	case query.KindKanji:
		records = h.ByKanji(q.Kanji)
	case query.KindReading:
		records = h.ByReading(q.Reading)
	case query.KindKeywords:
		records = h.ByKeywords(q.Keywords)
		if len(records) == 0 {
			if corrected, ok := h.correctKeywords(q.Keywords); ok {
				records = h.ByKeywords(corrected)
				if len(records) > 0 {
					cq := query.Keywords(corrected...)
					res.WasCorrected = true
					res.CorrectedQuery = &cq
					log.Debugf("Corrected keywords %v to %v", q.Keywords, corrected)
				}
			}
		}
	}

	res.Entries = make([]Entry, len(records))
	for i, k := range records {
		res.Entries[i] = k.Entry()
	}
	sort.SliceStable(res.Entries, func(a, b int) bool {
		return level(res.Entries[a]) > level(res.Entries[b])
	})
	return res
}

// correctKeywords replaces each keyword with the most similar known keyword.
// It reports false when nothing changed.
func (h *Heisig) correctKeywords(keywords []string) ([]string, bool) {
	out := make([]string, len(keywords))
	changed := false
	for i, typed := range keywords {
		typed = strings.ToLower(strings.TrimSpace(typed))
		out[i] = typed
		best, bestScore := "", keywordSimilarity
		for _, known := range h.keywords {
			if score := matchr.JaroWinkler(typed, known, false); score >= bestScore {
				if score > bestScore || best == "" {
					best, bestScore = known, score
				}
			}
		}
		if best != "" && best != typed {
			out[i] = best
			changed = true
		}
	}
	return out, changed
}

// Readings lists the individual on and kun readings of a record, normalized for lookup.
func Readings(k HeisigKanji) []string {
	var out []string
	for _, field := range []string{k.OnYomi, k.KunYomi} {
		for _, r := range strings.FieldsFunc(field, isReadingSeparator) {
			if r = normalizeReading(r); r != "" {
				out = append(out, r)
			}
		}
	}
	return out
}

func isReadingSeparator(r rune) bool {
	return r == ',' || r == '、' || r == '，' || r == ';' || r == '/' || unicode.IsSpace(r)
}

// normalizeReading drops okurigana dots and affix dashes: "ひと.つ" -> "ひとつ".
func normalizeReading(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || r == '－' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func level(e Entry) int {
	if e.JLPTLevel == nil {
		return 0
	}
	return *e.JLPTLevel
}

// pronunciationReadings splits a display pronunciation into readings, keeping okurigana marks.
func pronunciationReadings(s string) []string {
	var out []string
	for _, r := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '、' }) {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
