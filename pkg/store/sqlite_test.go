package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWords(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	words, err := s.ListWords(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)

	jikan := model.WordCreatePayload{Word: "時間", Meaning: "time", KanjiReadings: model.Readings("じ", "かん")}.ToWord()
	taberu := model.WordCreatePayload{Word: "食べる", Meaning: "to eat", KanjiReadings: model.Readings("た")}.ToWord()
	require.NoError(t, s.AddWord(ctx, jikan))
	require.NoError(t, s.AddWord(ctx, taberu))

	words, err = s.ListWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Word{jikan, taberu}, words)

	ok, err := s.HasWord(ctx, "時間")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.HasWord(ctx, "学校")
	require.NoError(t, err)
	assert.False(t, ok)

	dup := model.WordCreatePayload{Word: "時間", Meaning: "hour"}.ToWord()
	err = s.AddWord(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))
}

func TestKanji(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	story := "water drips down"
	mizu := model.KanjiCreatePayload{
		Kanji:           "水",
		Readings:        []string{"みず", "スイ"},
		Tags:            []string{"jlpt5"},
		WritingMnemonic: &story,
	}.ToKanji()
	hi := model.KanjiCreatePayload{Kanji: "火"}.ToKanji()
	require.NoError(t, s.AddKanji(ctx, mizu))
	require.NoError(t, s.AddKanji(ctx, hi))

	kanji, err := s.ListKanji(ctx)
	require.NoError(t, err)
	require.Len(t, kanji, 2)
	assert.Equal(t, mizu, kanji[0])
	assert.Equal(t, "火", kanji[1].Kanji)
	assert.Empty(t, kanji[1].Readings)
	assert.Nil(t, kanji[1].WritingMnemonic)
	assert.Nil(t, kanji[1].ReadingMnemonic)

	ok, err := s.HasKanji(ctx, "水")
	require.NoError(t, err)
	assert.True(t, ok)

	err = s.AddKanji(ctx, model.KanjiCreatePayload{Kanji: "水"}.ToKanji())
	assert.ErrorIs(t, err, ErrExists)
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kotoba.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.AddKanji(ctx, model.KanjiCreatePayload{Kanji: "木"}.ToKanji()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	kanji, err := s.ListKanji(ctx)
	require.NoError(t, err)
	require.Len(t, kanji, 1)
	assert.Equal(t, "木", kanji[0].Kanji)
}
