package dictionary

import (
	"strings"
	"testing"

	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *Heisig {
	t.Helper()
	h, err := LoadHeisig("testdata/heisig_sample.json")
	require.NoError(t, err)
	require.Equal(t, 5, h.Len())
	return h
}

func kanjiOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Kanji
	}
	return out
}

func TestHeisigLookup(t *testing.T) {
	h := loadSample(t)

	testCases := []struct {
		query       query.Query
		expected    []string
		description string
	}{
		{query.Kanji("水"), []string{"水"}, "kanji"},
		{query.Kanji("火"), []string{}, "unknown kanji"},
		{query.Reading("みず"), []string{"水"}, "kun reading"},
		{query.Reading("ひと"), []string{"一"}, "okurigana dot stripped"},
		{query.Reading("ひとつ"), []string{"一"}, "full kun reading"},
		{query.Reading("イ"), []string{"一"}, "on reading prefix"},
		{query.Reading("ふ"), []string{"二"}, "duplicate readings of one kanji"},
		{query.Keywords("water"), []string{"湧", "水"}, "keyword contains, jlpt descending"},
		{query.Keywords("Spring", "water"), []string{"湧"}, "all keywords, case-insensitive"},
		{query.Keywords("one"), []string{"一"}, "single keyword"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			res := h.Lookup(tc.query)
			assert.Equal(t, tc.expected, kanjiOf(res.Entries))
			assert.False(t, res.WasCorrected)
			assert.Nil(t, res.CorrectedQuery)
		})
	}
}

func TestHeisigKeywordCorrection(t *testing.T) {
	h := loadSample(t)

	res := h.Lookup(query.Keywords("fountian"))
	assert.Equal(t, []string{"泉"}, kanjiOf(res.Entries))
	assert.True(t, res.WasCorrected)
	require.NotNil(t, res.CorrectedQuery)
	assert.Equal(t, []string{"fountain"}, res.CorrectedQuery.Keywords)

	res = h.Lookup(query.Keywords("zebra"))
	assert.Empty(t, res.Entries)
	assert.False(t, res.WasCorrected)
}

func TestHeisigEntry(t *testing.T) {
	h := loadSample(t)

	one, ok := h.ByID("1")
	require.True(t, ok)
	e := one.Entry()
	assert.Equal(t, "ひと-、ひと.つ, イチ、イツ", e.Pronunciation)
	assert.Empty(t, e.Primitives)
	assert.Equal(t, []string{"一(いち):one", "一つ(ひとつ):one thing"}, e.Words)
	require.NotNil(t, e.JLPTLevel)
	assert.Equal(t, 5, *e.JLPTLevel)
	require.NotNil(t, e.HeisigMnemonic)
	assert.Nil(t, e.KoohiiMnemonic1)

	two := h.ByKanji("二")[0].Entry()
	assert.Equal(t, []string{"one", "one"}, two.Primitives)
	require.NotNil(t, two.KoohiiMnemonic1)

	water := h.ByKanji("水")[0].Entry()
	assert.Nil(t, water.JLPTLevel)

	_, ok = h.ByID("missing")
	assert.False(t, ok)
}

func TestEntryKanjiPayload(t *testing.T) {
	e := Entry{Kanji: "二", Pronunciation: "ふた, ニ"}

	p := e.KanjiPayload("two strokes")
	require.NoError(t, p.Validate())
	assert.Equal(t, []string{"ふた", "ニ"}, p.Readings)
	require.NotNil(t, p.WritingMnemonic)
	assert.Equal(t, "two strokes", *p.WritingMnemonic)

	assert.Nil(t, e.KanjiPayload("  ").WritingMnemonic)

	water := Entry{Kanji: "水", Pronunciation: "みず、みず-, スイ"}
	assert.Equal(t, []string{"みず", "みず-", "スイ"}, water.KanjiPayload("").Readings)
}

func TestParseSampleWord(t *testing.T) {
	testCases := []struct {
		input       string
		expected    SampleWord
		ok          bool
		description string
	}{
		{"一つ(ひとつ):one thing", SampleWord{"一つ", "ひとつ", "one thing"}, true, "plain"},
		{" 水 ( みず ): water ", SampleWord{"水", "みず", "water"}, true, "padded"},
		{"水:water", SampleWord{}, false, "no reading"},
		{"", SampleWord{}, false, "empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, ok := ParseSampleWord(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseHeisigInvalid(t *testing.T) {
	_, err := ParseHeisig(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = LoadHeisig("testdata/missing.json")
	assert.Error(t, err)
}

func TestReadings(t *testing.T) {
	h := loadSample(t)
	one := h.ByKanji("一")[0]
	assert.Equal(t, []string{"イチ", "イツ", "ひと", "ひとつ"}, Readings(one))
}
