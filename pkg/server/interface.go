/*
Package server implements msgpack IPC for the study tool.

Clients write msgpack-encoded requests to stdin and read one msgpack-encoded response per
request from stdout. Requests are handled in order. Logs go to stderr so stdout stays a clean
stream.

# IPC

Every request names an operation and carries an ID that is echoed back:

	{"id": "req_001", "op": "words", "q": "time", "l": 10}

Responses carry a status, the operation payload, and the handling time in microseconds:

	{"id": "req_001", "status": "ok", "words": [{"word": {...}, "d": 0, "f": "meaning"}], "n": 1, "t": 85}

Failures keep the ID and replace the payload with an error and a code:

	{"id": "req_002", "status": "error", "error": "query exceeds maximum length of 60 characters", "c": 400, "t": 3}

# Operations

	health      liveness check
	classify    q -> query: kind and payload of a lookup query
	words       q, l -> words: fuzzy search over saved words, empty q lists all
	kanji       q, l -> kanji: fuzzy search over saved kanji, empty q lists all
	lookup      q -> lookup: Heisig kanji for a kanji, reading or keywords query
	candidates  q -> candidates: dictionary words for a word or inflected form
	align       word -> reading, pairs: full reading of a word
	annotate    word -> annotations, segments: furigana for kanji not yet saved
	add_word    add_word -> saved_word: validate and save a word
	add_kanji   add_kanji -> saved_kanji: validate and save a kanji

Codes follow HTTP: 400 for invalid input, 409 for duplicates, 503 when a dictionary is not
loaded, 500 otherwise.
*/
package server

import (
	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/bastiangx/kotoba/pkg/reading"
)

// Operation names.
const (
	OpHealth     = "health"
	OpClassify   = "classify"
	OpWords      = "words"
	OpKanji      = "kanji"
	OpLookup     = "lookup"
	OpCandidates = "candidates"
	OpAlign      = "align"
	OpAnnotate   = "annotate"
	OpAddWord    = "add_word"
	OpAddKanji   = "add_kanji"
)

// Request is one client message.
type Request struct {
	ID       string                    `msgpack:"id"`
	Op       string                    `msgpack:"op"`
	Query    string                    `msgpack:"q,omitempty"`
	Limit    int                       `msgpack:"l,omitempty"`
	Word     *model.Word               `msgpack:"word,omitempty"`
	AddWord  *model.WordCreatePayload  `msgpack:"add_word,omitempty"`
	AddKanji *model.KanjiCreatePayload `msgpack:"add_kanji,omitempty"`
}

// WordHit is a ranked word. Raw listings have zero distance and no field.
type WordHit struct {
	Word     model.Word `msgpack:"word"`
	Distance float64    `msgpack:"d"`
	Field    string     `msgpack:"f,omitempty"`
}

// KanjiHit is a ranked kanji.
type KanjiHit struct {
	Kanji    model.Kanji `msgpack:"kanji"`
	Distance float64     `msgpack:"d"`
	Field    string      `msgpack:"f,omitempty"`
}

// Response is one server message. Only the fields of the requested operation are set.
type Response struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Error     string `msgpack:"error,omitempty"`
	Code      int    `msgpack:"c,omitempty"`
	TimeTaken int64  `msgpack:"t"`
	Count     int    `msgpack:"n,omitempty"`

	Query       *query.Query               `msgpack:"query,omitempty"`
	Words       []WordHit                  `msgpack:"words,omitempty"`
	Kanji       []KanjiHit                 `msgpack:"kanji,omitempty"`
	Lookup      *dictionary.LookupResult   `msgpack:"lookup,omitempty"`
	Candidates  []dictionary.WordCandidate `msgpack:"candidates,omitempty"`
	Reading     string                     `msgpack:"reading,omitempty"`
	Pairs       []reading.Pair             `msgpack:"pairs,omitempty"`
	Annotations map[string]string          `msgpack:"annotations,omitempty"`
	Segments    []reading.Segment          `msgpack:"segments,omitempty"`
	SavedWord   *model.Word                `msgpack:"saved_word,omitempty"`
	SavedKanji  *model.Kanji               `msgpack:"saved_kanji,omitempty"`
}

const (
	statusOK    = "ok"
	statusError = "error"
	statusReady = "ready"
)
