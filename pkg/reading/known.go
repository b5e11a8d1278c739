package reading

import "github.com/bastiangx/kotoba/pkg/model"

// KnownSet reports which kanji the user has already learned.
type KnownSet interface {
	Has(char string) bool
}

// Set is a KnownSet backed by a map.
type Set map[string]struct{}

// NewSet returns a set holding chars.
func NewSet(chars ...string) Set {
	s := make(Set, len(chars))
	for _, c := range chars {
		s[c] = struct{}{}
	}
	return s
}

func (s Set) Has(char string) bool {
	_, ok := s[char]
	return ok
}

// KnownKanji collects the characters of saved kanji entries.
func KnownKanji(kanji []model.Kanji) Set {
	s := make(Set, len(kanji))
	for _, k := range kanji {
		s[k.Kanji] = struct{}{}
	}
	return s
}
