// Package script classifies runes into the Japanese writing systems used by lookups:
// kanji, kana, and the wider "Japanese" class that also covers CJK punctuation.
package script

import (
	"unicode"
	"unicode/utf8"
)

const (
	prolongedSoundMark = 'ー' // U+30FC, script Common
	katakanaMiddleDot  = '・' // U+30FB, script Common
)

// IsKanji reports whether r is a CJK ideograph, including the iteration mark 々.
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsKana reports whether r is hiragana or katakana (full or half width).
func IsKana(r rune) bool {
	if r == prolongedSoundMark || r == katakanaMiddleDot {
		return true
	}
	return unicode.In(r, unicode.Hiragana, unicode.Katakana)
}

// IsJapanese reports whether r is kanji, kana or CJK symbol/punctuation.
func IsJapanese(r rune) bool {
	if IsKanji(r) || IsKana(r) {
		return true
	}
	return r >= 0x3000 && r <= 0x303F
}

// IsKanjiString reports whether s is exactly one kanji character.
func IsKanjiString(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return IsKanji(r)
}

// AllKana reports whether s is non-empty and made only of kana.
func AllKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsKana(r) {
			return false
		}
	}
	return true
}

// ContainsJapanese reports whether any rune of s is Japanese script.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if IsJapanese(r) {
			return true
		}
	}
	return false
}

// CountKanji returns the number of kanji runes in s.
func CountKanji(s string) int {
	n := 0
	for _, r := range s {
		if IsKanji(r) {
			n++
		}
	}
	return n
}
