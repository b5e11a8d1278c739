package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKanji(t *testing.T) {
	testCases := []struct {
		r    rune
		want bool
	}{
		{'時', true},
		{'間', true},
		{'々', true},
		{'あ', false},
		{'カ', false},
		{'A', false},
		{'。', false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsKanji(tc.r), "rune %q", tc.r)
	}
}

func TestIsKana(t *testing.T) {
	for _, r := range []rune{'あ', 'ん', 'ア', 'ン', 'ー', 'ｶ', 'ゝ'} {
		assert.True(t, IsKana(r), "rune %q", r)
	}
	for _, r := range []rune{'時', 'a', '1', '、'} {
		assert.False(t, IsKana(r), "rune %q", r)
	}
}

func TestIsJapanese(t *testing.T) {
	assert.True(t, IsJapanese('人'))
	assert.True(t, IsJapanese('た'))
	assert.True(t, IsJapanese('、'))
	assert.False(t, IsJapanese('x'))
	assert.False(t, IsJapanese(','))
}

func TestStringHelpers(t *testing.T) {
	assert.True(t, IsKanjiString("水"))
	assert.False(t, IsKanjiString("水水"))
	assert.False(t, IsKanjiString(""))

	assert.True(t, AllKana("たべる"))
	assert.True(t, AllKana("カタカナ"))
	assert.False(t, AllKana(""))
	assert.False(t, AllKana("食べる"))

	assert.True(t, ContainsJapanese("water 水"))
	assert.False(t, ContainsJapanese("water"))

	assert.Equal(t, 2, CountKanji("時間です"))
	assert.Equal(t, 0, CountKanji("abc"))
}
