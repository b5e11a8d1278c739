package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/kotoba/pkg/autocomplete"
	"github.com/bastiangx/kotoba/pkg/fuzzy"
	"github.com/charmbracelet/lipgloss"
)

const (
	matchOpen  = "\033[38;5;75m"
	matchClose = "\033[0m"
)

// styles holds the REPL's lipgloss styles, bound to the output's renderer.
type styles struct {
	header    lipgloss.Style
	title     lipgloss.Style
	detail    lipgloss.Style
	cursor    lipgloss.Style
	status    lipgloss.Style
	err       lipgloss.Style
	markOpen  string
	markClose string
}

func newStyles(out io.Writer, plain bool) styles {
	r := lipgloss.NewRenderer(out)
	s := styles{
		header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		title:     r.NewStyle().Bold(true),
		detail:    r.NewStyle().Faint(true),
		cursor:    r.NewStyle().Foreground(lipgloss.Color("212")),
		status:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		err:       r.NewStyle().Foreground(lipgloss.Color("203")),
		markOpen:  matchOpen,
		markClose: matchClose,
	}
	if plain {
		s = styles{
			header:    r.NewStyle(),
			title:     r.NewStyle(),
			detail:    r.NewStyle(),
			cursor:    r.NewStyle(),
			status:    r.NewStyle(),
			err:       r.NewStyle(),
			markOpen:  "[",
			markClose: "]",
		}
	}
	return s
}

// render writes the visible part of the session.
func (s styles) render(w io.Writer, st autocomplete.State[Row]) {
	switch {
	case st.Error != "":
		fmt.Fprintln(w, s.err.Render(st.Error))
		return
	case st.Loading:
		fmt.Fprintln(w, s.status.Render("searching..."))
		return
	case !st.Open:
		return
	case st.Empty():
		fmt.Fprintln(w, s.status.Render("No results"))
		return
	case len(st.Results) == 0:
		return
	}

	vp := st.Viewport
	top, height := vp.Top, vp.Height
	if st.Highlighted < 0 || top >= len(st.Results) {
		top = 0
	}
	if height <= 0 {
		height = len(st.Results)
	}
	end := min(top+height, len(st.Results))

	for i := top; i < end; i++ {
		row := st.Results[i]
		cursor := "  "
		if i == st.Highlighted {
			cursor = s.cursor.Render("> ")
		}
		title, detail := row.Title, row.Detail
		switch row.Match {
		case MatchTitle:
			title = fuzzy.Mark(title, fuzzy.Highlight(title, st.Query), s.markOpen, s.markClose)
		case MatchDetail:
			detail = fuzzy.Mark(detail, fuzzy.Highlight(detail, st.Query), s.markOpen, s.markClose)
		}
		fmt.Fprintf(w, "%s%2d. %s  %s\n", cursor, i+1, s.title.Render(title), s.detail.Render(detail))
	}
	if end-top < len(st.Results) {
		fmt.Fprintln(w, s.status.Render(fmt.Sprintf("%d-%d of %d", top+1, end, len(st.Results))))
	}
}

func (s styles) banner(w io.Writer, mode string) {
	fmt.Fprintln(w, s.header.Render("kotoba "+mode))
	fmt.Fprintln(w, s.status.Render(strings.Join([]string{
		"type a query and press Enter",
		"keys: :down :up :enter :esc :clear :quit",
	}, "\n")))
}
