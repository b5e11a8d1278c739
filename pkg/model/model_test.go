package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordPayloadValidate(t *testing.T) {
	testCases := []struct {
		payload     WordCreatePayload
		valid       bool
		description string
	}{
		{WordCreatePayload{Word: "時間", KanjiReadings: Readings("じ", "かん")}, true, "one reading per kanji"},
		{WordCreatePayload{Word: "食べる", KanjiReadings: Readings("た")}, true, "okurigana"},
		{WordCreatePayload{Word: "ひらがな"}, true, "no kanji no readings"},
		{WordCreatePayload{Word: "  "}, false, "blank word"},
		{WordCreatePayload{Word: "時間", KanjiReadings: Readings("じ")}, false, "missing reading"},
		{WordCreatePayload{Word: "時間", KanjiReadings: Readings("じ", "")}, false, "empty reading"},
		{WordCreatePayload{Word: "時間", KanjiReadings: Readings("ji", "kan")}, false, "latin reading"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPayload))
		})
	}
}

func TestToWord(t *testing.T) {
	w := WordCreatePayload{Word: " 時間 ", Meaning: " time ", KanjiReadings: Readings(" じ", "かん ")}.ToWord()

	_, err := uuid.Parse(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "時間", w.Word)
	assert.Equal(t, "time", w.Meaning)
	assert.Equal(t, Readings("じ", "かん"), w.KanjiReadings)
	assert.Equal(t, "時間", w.Identifier())
}

func TestKanjiPayload(t *testing.T) {
	assert.NoError(t, KanjiCreatePayload{Kanji: "水"}.Validate())
	assert.Error(t, KanjiCreatePayload{Kanji: "水火"}.Validate())
	assert.Error(t, KanjiCreatePayload{Kanji: "み"}.Validate())

	blank := "  "
	story := " water drops "
	k := KanjiCreatePayload{
		Kanji:           "水",
		Readings:        []string{"みず", " ", "スイ"},
		WritingMnemonic: &story,
		ReadingMnemonic: &blank,
	}.ToKanji()

	assert.NotEmpty(t, k.ID)
	assert.Equal(t, []string{"みず", "スイ"}, k.Readings)
	assert.Equal(t, []string{}, k.Tags)
	require.NotNil(t, k.WritingMnemonic)
	assert.Equal(t, "water drops", *k.WritingMnemonic)
	assert.Nil(t, k.ReadingMnemonic)
	assert.Equal(t, "水", k.Identifier())
}
