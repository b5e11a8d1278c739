package fuzzy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type word struct {
	Word    string
	Meaning string
}

var words = []word{
	{"時間", "time"},
	{"食べる", "to eat"},
	{"学校", "school"},
	{"時計", "clock, watch"},
}

func wordFields(meaningWeight float64) []Field[word] {
	return []Field[word]{
		{Name: "word", Weight: 1, Values: func(w word) []string { return []string{w.Word} }},
		{Name: "meaning", Weight: meaningWeight, Values: func(w word) []string { return []string{w.Meaning} }},
	}
}

func stringFields() []Field[string] {
	return []Field[string]{{Name: "text", Values: func(s string) []string { return []string{s} }}}
}

func TestBuildThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.5} {
		_, err := Build(words, wordFields(1), th)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrThreshold))
	}
	for _, th := range []float64{0, DefaultThreshold, 1} {
		ix, err := Build(words, wordFields(1), th)
		require.NoError(t, err)
		assert.Equal(t, len(words), ix.Len())
		assert.Equal(t, th, ix.Threshold())
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	ix, err := Build(words, wordFields(1), DefaultThreshold)
	require.NoError(t, err)

	for _, q := range []string{"", "   "} {
		results := ix.Search(q)
		require.Len(t, results, len(words))
		for _, r := range results {
			assert.Equal(t, Raw, r.Kind)
			assert.Zero(t, r.Distance)
		}
		assert.Equal(t, words, Items(results))
	}
}

func TestSearchEmptyCollection(t *testing.T) {
	ix, err := Build[word](nil, wordFields(1), DefaultThreshold)
	require.NoError(t, err)
	assert.Empty(t, ix.Search(""))
	assert.Empty(t, ix.Search("time"))
}

func TestSearch(t *testing.T) {
	ix, err := Build(words, wordFields(1), DefaultThreshold)
	require.NoError(t, err)

	testCases := []struct {
		query       string
		expected    []string
		description string
	}{
		{"time", []string{"時間"}, "exact meaning"},
		{"TIM", []string{"時間"}, "case-insensitive prefix"},
		{"時", []string{"時間", "時計"}, "kanji substring keeps collection order"},
		{"schol", []string{"学校"}, "one missing letter"},
		{"xylophone", nil, "no match"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var got []string
			for _, r := range ix.Search(tc.query) {
				assert.Equal(t, Ranked, r.Kind)
				got = append(got, r.Item.Word)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSearchRanking(t *testing.T) {
	ix, err := Build([]string{"abxd", "abcd", "abcd extra"}, stringFields(), DefaultThreshold)
	require.NoError(t, err)

	results := ix.Search("abcd")
	require.Len(t, results, 3)
	assert.Equal(t, []string{"abcd", "abcd extra", "abxd"}, Items(results))
	assert.Equal(t, 0.0, results[0].Distance)
	assert.Equal(t, 0.0, results[1].Distance)
	assert.InDelta(t, 0.25, results[2].Distance, 1e-9)
	assert.Equal(t, "text", results[0].Field)
}

func TestSearchThresholdBounds(t *testing.T) {
	items := []string{"abxd", "abcd", "abcd extra"}

	exact, err := Build(items, stringFields(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"abxd"}, Items(exact.Search("abxd")))

	loose, err := Build(items, stringFields(), 1)
	require.NoError(t, err)
	assert.Len(t, loose.Search("zzzz"), len(items))
}

func TestSearchFieldWeight(t *testing.T) {
	ix, err := Build(words, wordFields(2), DefaultThreshold)
	require.NoError(t, err)

	results := ix.Search("schol")
	require.Len(t, results, 1)
	assert.Equal(t, "meaning", results[0].Field)
	assert.InDelta(t, 0.1, results[0].Distance, 1e-9)
}

func TestSearchPosition(t *testing.T) {
	ix, err := Build([]string{"abcd extra"}, stringFields(), 0)
	require.NoError(t, err)

	assert.Equal(t, 3, ix.Search("bc")[0].Position)
	assert.Equal(t, 10, ix.Search("extra")[0].Position)
}

func TestSubstringDistance(t *testing.T) {
	testCases := []struct {
		pattern, text string
		expected      int
	}{
		{"abc", "xxabcxx", 0},
		{"abc", "xxabxxx", 1},
		{"abc", "", 3},
		{"kitten", "sitting", 2},
		{"時間", "時計", 1},
	}

	for _, tc := range testCases {
		got, _ := substringDistance([]rune(tc.pattern), []rune(tc.text))
		assert.Equal(t, tc.expected, got, "%s in %s", tc.pattern, tc.text)
	}
}
