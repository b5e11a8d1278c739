package cmd

import (
	"fmt"
	"strings"

	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/spf13/cobra"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBlue  = "\033[38;5;75m"
	colorGray  = "\033[90m"
)

// formatRow renders one ranked search result:
//
//	 1. 時間  time   (0.00 meaning)
func formatRow(i int, title, detail string, distance float64, field string) string {
	row := fmt.Sprintf("%2d. %s%s%s  %s", i+1, colorBlue, title, colorReset, detail)
	if field != "" {
		row += fmt.Sprintf("  %s(%.2f %s)%s", colorGray, distance, field, colorReset)
	}
	return row
}

func formatEntry(i int, e dictionary.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%2d. %s%s%s  %s  %s", i+1, colorBlue, e.Kanji, colorReset, e.Keyword, e.Pronunciation))
	if e.JLPTLevel != nil {
		sb.WriteString(fmt.Sprintf("  %sJLPT %d%s", colorGray, *e.JLPTLevel, colorReset))
	}
	if len(e.Primitives) > 0 {
		sb.WriteString(fmt.Sprintf("\n      primitives: %s", strings.Join(e.Primitives, ", ")))
	}
	for _, w := range e.Words {
		if sw, ok := dictionary.ParseSampleWord(w); ok {
			sb.WriteString(fmt.Sprintf("\n      %s (%s) %s", sw.Word, sw.Reading, sw.Meaning))
		}
	}
	return sb.String()
}

func printCount(cmd *cobra.Command, n int) {
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results")
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s%d found%s\n", colorGray, n, colorReset)
}
