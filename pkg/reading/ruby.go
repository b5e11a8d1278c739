package reading

import (
	"strings"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/script"
)

// Segment is a run of word text with an optional reading shown above it.
type Segment struct {
	Text string `json:"text" msgpack:"text"`
	Ruby string `json:"ruby,omitempty" msgpack:"ruby,omitempty"`
}

// Segments splits the word into ruby segments. Every annotated kanji becomes its own segment;
// the text between annotated kanji is merged.
func Segments(w model.Word, annotations map[Key]string) []Segment {
	var (
		segs []Segment
		run  strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			segs = append(segs, Segment{Text: run.String()})
			run.Reset()
		}
	}
	k := 0
	for _, r := range w.Word {
		if script.IsKanji(r) {
			key := Key{Char: string(r), Occurrence: k}
			k++
			if ruby, ok := annotations[key]; ok && ruby != "" {
				flush()
				segs = append(segs, Segment{Text: key.Char, Ruby: ruby})
				continue
			}
		}
		run.WriteRune(r)
	}
	flush()
	return segs
}

// Bracketed renders segments as plain text, readings in brackets: 時[じ]間.
func Bracketed(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
		if s.Ruby != "" {
			b.WriteByte('[')
			b.WriteString(s.Ruby)
			b.WriteByte(']')
		}
	}
	return b.String()
}
