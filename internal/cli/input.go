// Package cli is an interactive REPL over an autocomplete session, for trying searches from
// a terminal. Each input line is typed into the search box one character at a time; lines
// starting with ':' are key presses.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/kotoba/pkg/autocomplete"
	"github.com/charmbracelet/log"
)

// Options configures an InputHandler. Source is required.
type Options struct {
	Mode     string // shown in the banner
	Source   Source
	Validate func(q string) string
	Rows     int // visible result rows
	Debounce time.Duration
	Plain    bool
	Logger   *log.Logger
}

// InputHandler feeds REPL lines into an autocomplete controller and renders its state.
type InputHandler struct {
	ctrl     *autocomplete.Controller[Row]
	out      io.Writer
	mu       sync.Mutex // guards out
	styles   styles
	mode     string
	settled  chan struct{}
	selected []Row
}

// NewInputHandler creates a handler writing to out.
func NewInputHandler(opts Options, out io.Writer) *InputHandler {
	if opts.Rows < 1 {
		opts.Rows = 10
	}
	h := &InputHandler{
		out:     out,
		styles:  newStyles(out, opts.Plain),
		mode:    opts.Mode,
		settled: make(chan struct{}, 1),
	}
	h.ctrl = autocomplete.New(autocomplete.Options[Row]{
		Fetch:    opts.Source,
		Validate: opts.Validate,
		Debounce: opts.Debounce,
		Logger:   opts.Logger,
		Viewport: autocomplete.Viewport{Height: opts.Rows, Rows: autocomplete.FixedRows(1)},
		OnSelect: h.onSelect,
		OnChange: func(s autocomplete.State[Row]) {
			if s.Loading {
				return
			}
			select {
			case h.settled <- struct{}{}:
			default:
			}
		},
	})
	return h
}

// Selected returns the rows chosen so far.
func (h *InputHandler) Selected() []Row {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Row(nil), h.selected...)
}

// Start runs the loop until in is exhausted, :quit is read or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context, in io.Reader) error {
	defer h.ctrl.Close()

	h.mu.Lock()
	h.styles.banner(h.out, h.mode)
	h.mu.Unlock()

	h.ctrl.Focus()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := h.handleInput(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (h *InputHandler) handleInput(ctx context.Context, line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, h.typeText(ctx, line)
	}

	var key autocomplete.Key
	switch line {
	case ":quit", ":q":
		return true, nil
	case ":clear":
		return false, h.typeText(ctx, "")
	case ":down":
		key = autocomplete.KeyArrowDown
	case ":up":
		key = autocomplete.KeyArrowUp
	case ":enter":
		key = autocomplete.KeyEnter
	case ":esc":
		key = autocomplete.KeyEscape
	default:
		log.Warnf("Unknown command: %s", line)
		return false, nil
	}

	if !h.ctrl.KeyDown(autocomplete.KeyEvent{Key: key}) {
		log.Debugf("Key %s ignored", key)
		return false, nil
	}
	h.render()
	return false, nil
}

// typeText replaces the input with text, one keystroke per character, and waits for the
// search to settle.
func (h *InputHandler) typeText(ctx context.Context, text string) error {
	start := time.Now()
	runes := []rune(text)
	if len(runes) == 0 {
		h.ctrl.Change("")
	}
	for i := range runes {
		h.ctrl.Change(string(runes[:i+1]))
	}

	for h.ctrl.State().Loading {
		select {
		case <-h.settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), text)
	h.render()
	return nil
}

func (h *InputHandler) render() {
	st := h.ctrl.State()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.styles.render(h.out, st)
}

func (h *InputHandler) onSelect(row Row) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selected = append(h.selected, row)
	preview := row.Preview
	if preview == "" {
		preview = row.Title
	}
	fmt.Fprintln(h.out, h.styles.header.Render("selected"), preview)
}
