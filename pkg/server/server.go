package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/bastiangx/kotoba/pkg/fuzzy"
	"github.com/bastiangx/kotoba/pkg/library"
	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/bastiangx/kotoba/pkg/reading"
	"github.com/bastiangx/kotoba/pkg/store"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Backend is what the server exposes. *library.Library implements it.
type Backend interface {
	SearchWords(ctx context.Context, q string) ([]fuzzy.Result[model.Word], error)
	SearchKanji(ctx context.Context, q string) ([]fuzzy.Result[model.Kanji], error)
	Furigana(ctx context.Context, w model.Word) (library.Furigana, error)
	Lookup(text string) (dictionary.LookupResult, error)
	Candidates(text string) ([]dictionary.WordCandidate, error)
	AddWord(ctx context.Context, p model.WordCreatePayload) (model.Word, error)
	AddKanji(ctx context.Context, p model.KanjiCreatePayload) (model.Kanji, error)
}

// Options bounds what a single request may ask for.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	MaxQuery     int // in characters
}

// Server handles the IPC for the study tool.
type Server struct {
	backend Backend
	opts    Options
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	handled int
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(backend Backend, opts Options) *Server {
	return NewServerWithIO(backend, opts, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(backend Backend, opts Options, r io.Reader, w io.Writer) *Server {
	if opts.MaxLimit < 1 {
		opts.MaxLimit = 64
	}
	if opts.DefaultLimit < 1 || opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	if opts.MaxQuery < 1 {
		opts.MaxQuery = 60
	}
	enc := msgpack.NewEncoder(w)
	return &Server{
		backend: backend,
		opts:    opts,
		dec:     msgpack.NewDecoder(r),
		enc:     enc,
	}
}

// Start signals readiness and serves requests until the input ends or ctx is cancelled.
// A request that cannot be decoded ends the stream, since msgpack cannot resync.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.")
	if err := s.send(Response{Status: statusReady}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.handled)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.send(Response{Status: statusError, Error: "invalid msgpack request", Code: 400})
			return fmt.Errorf("decode request: %w", err)
		}
		if err := s.send(s.Handle(ctx, req)); err != nil {
			return err
		}
		s.handled++
	}
}

// Handle runs one request.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	resp, err := s.dispatch(ctx, req)
	resp.ID = req.ID
	if err != nil {
		resp = Response{ID: req.ID, Status: statusError, Error: err.Error(), Code: errorCode(err)}
		log.Debugf("Request %s (%s) failed: %v", req.ID, req.Op, err)
	} else {
		resp.Status = statusOK
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

// errBadRequest marks input errors found by the server itself.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, query.ErrInvalid), errors.Is(err, model.ErrInvalidPayload):
		return 400
	case errors.Is(err, store.ErrExists):
		return 409
	case errors.Is(err, library.ErrNoDictionary):
		return 503
	default:
		return 500
	}
}

func (s *Server) dispatch(ctx context.Context, req Request) (Response, error) {
	if n := utf8.RuneCountInString(req.Query); n > s.opts.MaxQuery {
		return Response{}, badRequest("query exceeds maximum length of %d characters", s.opts.MaxQuery)
	}

	switch req.Op {
	case OpHealth:
		return Response{}, nil

	case OpClassify:
		q, err := query.Classify(req.Query)
		if err != nil {
			return Response{}, err
		}
		return Response{Query: &q}, nil

	case OpWords:
		results, err := s.backend.SearchWords(ctx, req.Query)
		if err != nil {
			return Response{}, err
		}
		results = results[:min(len(results), s.limit(req.Limit))]
		hits := make([]WordHit, len(results))
		for i, r := range results {
			hits[i] = WordHit{Word: r.Item, Distance: r.Distance, Field: r.Field}
		}
		return Response{Words: hits, Count: len(hits)}, nil

	case OpKanji:
		results, err := s.backend.SearchKanji(ctx, req.Query)
		if err != nil {
			return Response{}, err
		}
		results = results[:min(len(results), s.limit(req.Limit))]
		hits := make([]KanjiHit, len(results))
		for i, r := range results {
			hits[i] = KanjiHit{Kanji: r.Item, Distance: r.Distance, Field: r.Field}
		}
		return Response{Kanji: hits, Count: len(hits)}, nil

	case OpLookup:
		res, err := s.backend.Lookup(req.Query)
		if err != nil {
			return Response{}, err
		}
		res.Entries = res.Entries[:min(len(res.Entries), s.limit(req.Limit))]
		return Response{Lookup: &res, Count: len(res.Entries)}, nil

	case OpCandidates:
		cands, err := s.backend.Candidates(req.Query)
		if err != nil {
			return Response{}, err
		}
		cands = cands[:min(len(cands), s.limit(req.Limit))]
		return Response{Candidates: cands, Count: len(cands)}, nil

	case OpAlign:
		if req.Word == nil {
			return Response{}, badRequest("missing 'word'")
		}
		return Response{Reading: reading.Align(*req.Word), Pairs: reading.Pairs(*req.Word)}, nil

	case OpAnnotate:
		if req.Word == nil {
			return Response{}, badRequest("missing 'word'")
		}
		f, err := s.backend.Furigana(ctx, *req.Word)
		if err != nil {
			return Response{}, err
		}
		return Response{Reading: f.Reading, Annotations: f.Annotations, Segments: f.Segments}, nil

	case OpAddWord:
		if req.AddWord == nil {
			return Response{}, badRequest("missing 'add_word'")
		}
		w, err := s.backend.AddWord(ctx, *req.AddWord)
		if err != nil {
			return Response{}, err
		}
		return Response{SavedWord: &w}, nil

	case OpAddKanji:
		if req.AddKanji == nil {
			return Response{}, badRequest("missing 'add_kanji'")
		}
		k, err := s.backend.AddKanji(ctx, *req.AddKanji)
		if err != nil {
			return Response{}, err
		}
		return Response{SavedKanji: &k}, nil

	default:
		return Response{}, badRequest("unknown op: %q", req.Op)
	}
}

// limit clamps a requested limit to the configured bounds.
func (s *Server) limit(requested int) int {
	if requested < 1 {
		return s.opts.DefaultLimit
	}
	return min(requested, s.opts.MaxLimit)
}

func (s *Server) send(resp Response) error {
	if err := s.enc.Encode(resp); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
