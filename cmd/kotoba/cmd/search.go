package cmd

import (
	"fmt"
	"strings"

	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/spf13/cobra"
)

var searchLimit int

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Show how a lookup query is read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := query.Classify(args[0])
		if err != nil {
			return fmt.Errorf("%s", query.InvalidMessage)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", q.Kind, q)
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words [query]",
	Short: "Search saved words, or list them all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(0)
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.lib.SearchWords(cmd.Context(), firstArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, r := range results[:min(len(results), a.limit(searchLimit))] {
			fmt.Fprintln(out, formatRow(i, r.Item.Word, r.Item.Meaning, r.Distance, r.Field))
		}
		printCount(cmd, len(results))
		return nil
	},
}

var kanjiCmd = &cobra.Command{
	Use:   "kanji [query]",
	Short: "Search saved kanji by character or reading",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(0)
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.lib.SearchKanji(cmd.Context(), firstArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, r := range results[:min(len(results), a.limit(searchLimit))] {
			fmt.Fprintln(out, formatRow(i, r.Item.Kanji, strings.Join(r.Item.Readings, "、"), r.Distance, r.Field))
		}
		printCount(cmd, len(results))
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <kanji|reading|keywords>",
	Short: "Look up kanji in the Heisig table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(needHeisig)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.lib.Lookup(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.WasCorrected && res.CorrectedQuery != nil {
			fmt.Fprintf(out, "showing results for %s\n", res.CorrectedQuery)
		}
		for i, e := range res.Entries[:min(len(res.Entries), a.limit(searchLimit))] {
			fmt.Fprintln(out, formatEntry(i, e))
		}
		printCount(cmd, len(res.Entries))
		return nil
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates <text>",
	Short: "Find dictionary words for a word or an inflected form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(needJMdict)
		if err != nil {
			return err
		}
		defer a.Close()

		cands, err := a.lib.Candidates(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, c := range cands[:min(len(cands), a.limit(searchLimit))] {
			fmt.Fprintf(out, "%2d. %s (%s)\n", i+1, c.Word, c.Reading)
			for _, t := range c.Translations {
				fmt.Fprintf(out, "      %s\n", t)
			}
		}
		printCount(cmd, len(cands))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{wordsCmd, kanjiCmd, lookupCmd, candidatesCmd} {
		c.Flags().IntVarP(&searchLimit, "limit", "l", 0, "maximum results to show (default from config)")
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
