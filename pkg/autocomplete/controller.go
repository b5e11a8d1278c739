// Package autocomplete implements a debounced incremental-search session that a caller binds to
// a text input and a rendered result list.
//
// Every query change bumps a generation counter. A fetch resolves into the session only if it
// was started for the current generation, so a slow response for an old query can never
// overwrite fresher results. Keystrokes inside the debounce window coalesce into a single fetch
// for the settled query.
//
// The controller never returns errors. Validation messages surface as State.Error and provider
// failures are logged and leave the results untouched.
package autocomplete

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDebounce is the input settle time before a fetch.
const DefaultDebounce = 300 * time.Millisecond

// Key names the keys the controller reacts to.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// KeyEvent is a key press on the input. Composing is set while an IME composition is active.
type KeyEvent struct {
	Key       Key
	Composing bool
}

// Options configures a Controller. Fetch is required.
type Options[T any] struct {
	Fetch    func(ctx context.Context, query string) ([]T, error)
	OnSelect func(item T)
	// Validate returns a user-facing message for a query that must not be fetched, or "".
	Validate func(query string) string
	// OnChange observes every state transition. It runs outside the controller lock.
	OnChange  func(State[T])
	Debounce  time.Duration
	Scheduler Scheduler
	Logger    *log.Logger
	Viewport  Viewport
}

// State is a snapshot of the session.
type State[T any] struct {
	Query       string
	Results     []T
	Highlighted int // -1 when nothing is highlighted
	Open        bool
	Loading     bool
	Error       string
	Generation  uint64
	Viewport    Viewport
}

// Empty reports the "no results" condition: a settled non-empty query with nothing to show.
func (s State[T]) Empty() bool {
	return !s.Loading && s.Error == "" && len(s.Results) == 0 && strings.TrimSpace(s.Query) != ""
}

// Controller drives one autocomplete session. It is safe for concurrent use.
type Controller[T any] struct {
	mu     sync.Mutex
	opts   Options[T]
	state  State[T]
	timer  Timer
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New returns a closed, empty session.
func New[T any](opts Options[T]) *Controller[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		opts:   opts,
		state:  State[T]{Highlighted: -1, Viewport: opts.Viewport},
		ctx:    ctx,
		cancel: cancel,
	}
}

// State returns a copy of the current session.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Focus opens the result list.
func (c *Controller[T]) Focus() {
	c.update(func() bool {
		if c.state.Open {
			return false
		}
		c.state.Open = true
		return true
	})
}

// Change handles the user editing the input.
func (c *Controller[T]) Change(query string) {
	c.update(func() bool {
		c.state.Open = true
		if query == c.state.Query {
			return true
		}
		c.run(query)
		return true
	})
}

// SetValue forces the input to value. A value different from the current query resets the
// session and runs the query pipeline for it.
func (c *Controller[T]) SetValue(value string) {
	c.update(func() bool {
		if value == c.state.Query {
			return false
		}
		c.state.Results = nil
		c.state.Highlighted = -1
		c.state.Error = ""
		c.run(value)
		return true
	})
}

// KeyDown handles a key press and reports whether the controller consumed it.
func (c *Controller[T]) KeyDown(ev KeyEvent) bool {
	var (
		handled  bool
		selected *T
	)
	c.update(func() bool {
		n := len(c.state.Results)
		if !c.state.Open || n == 0 || ev.Composing {
			return false
		}
		switch ev.Key {
		case KeyArrowDown:
			c.highlight((c.state.Highlighted + 1) % n)
		case KeyArrowUp:
			if c.state.Highlighted < 0 {
				c.highlight(n - 1)
			} else {
				c.highlight((c.state.Highlighted - 1 + n) % n)
			}
		case KeyEnter:
			if c.state.Highlighted >= 0 && c.state.Highlighted < n {
				item := c.state.Results[c.state.Highlighted]
				selected = &item
				c.state.Open = false
			}
		case KeyEscape:
			c.state.Open = false
		default:
			return false
		}
		handled = true
		return true
	})
	if selected != nil {
		c.selectItem(*selected)
	}
	return handled
}

// Activate selects result i, as a pointer click on its row would.
func (c *Controller[T]) Activate(i int) {
	var selected *T
	c.update(func() bool {
		if i < 0 || i >= len(c.state.Results) {
			return false
		}
		item := c.state.Results[i]
		selected = &item
		c.state.Open = false
		return true
	})
	if selected != nil {
		c.selectItem(*selected)
	}
}

// Close tears the session down. The pending debounce is stopped, in-flight fetches see their
// context cancelled and their results are discarded.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimer()
	c.cancel()
}

// run is the query pipeline. Callers hold the lock.
func (c *Controller[T]) run(query string) {
	c.state.Query = query
	c.state.Generation++

	if c.opts.Validate != nil {
		if msg := c.opts.Validate(query); msg != "" {
			c.state.Error = msg
			c.state.Results = nil
			c.state.Highlighted = -1
			c.state.Loading = false
			c.stopTimer()
			return
		}
	}
	c.state.Error = ""

	if strings.TrimSpace(query) == "" {
		c.state.Results = nil
		c.state.Highlighted = -1
		c.state.Loading = false
		c.stopTimer()
		return
	}

	c.state.Loading = true
	c.stopTimer()
	gen := c.state.Generation
	c.timer = c.opts.Scheduler.AfterFunc(c.opts.Debounce, func() { c.fire(gen, query) })
}

func (c *Controller[T]) fire(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.state.Generation {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	ctx := c.ctx
	c.mu.Unlock()

	c.opts.Logger.Debug("fetch", "query", query, "generation", gen)
	items, err := c.opts.Fetch(ctx, query)

	c.update(func() bool {
		if gen != c.state.Generation {
			c.opts.Logger.Debug("dropping stale results", "query", query, "generation", gen, "current", c.state.Generation)
			return false
		}
		c.state.Loading = false
		if err != nil {
			c.opts.Logger.Warn("fetch failed", "query", query, "err", err)
			return true
		}
		c.state.Results = items
		c.state.Highlighted = -1
		return true
	})
}

func (c *Controller[T]) highlight(i int) {
	c.state.Highlighted = i
	c.state.Viewport.Reveal(i)
}

func (c *Controller[T]) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T]) selectItem(item T) {
	if c.opts.OnSelect != nil {
		c.opts.OnSelect(item)
	}
}

// update applies fn under the lock and notifies OnChange if fn reports a transition.
// A closed controller ignores every update.
func (c *Controller[T]) update(fn func() bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	changed := fn()
	var s State[T]
	if changed {
		s = c.snapshot()
	}
	c.mu.Unlock()
	if changed && c.opts.OnChange != nil {
		c.opts.OnChange(s)
	}
}

func (c *Controller[T]) snapshot() State[T] {
	s := c.state
	if s.Results != nil {
		s.Results = append([]T(nil), s.Results...)
	}
	return s
}
