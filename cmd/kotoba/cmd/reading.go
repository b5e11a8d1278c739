package cmd

import (
	"fmt"

	"github.com/bastiangx/kotoba/pkg/reading"
	"github.com/spf13/cobra"
)

var readingCmd = &cobra.Command{
	Use:   "reading <word>",
	Short: "Show the reading of a saved word and furigana for kanji not yet saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(0)
		if err != nil {
			return err
		}
		defer a.Close()

		w, ok, err := a.lib.FindWord(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("word %q is not saved", args[0])
		}
		f, err := a.lib.Furigana(cmd.Context(), w)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  %s\n", reading.Bracketed(f.Segments), f.Reading, w.Meaning)
		for _, p := range reading.Pairs(w) {
			status := "saved"
			if _, ok := f.Annotations[p.Char]; ok {
				status = "new"
			}
			if p.Missing {
				status = "no reading"
			}
			fmt.Fprintf(out, "  %s  %s  %s%s%s\n", p.Char, p.Reading, colorGray, status, colorReset)
		}
		return nil
	},
}
