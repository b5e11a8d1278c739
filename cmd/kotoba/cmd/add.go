package cmd

import (
	"fmt"
	"strings"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/spf13/cobra"
)

var (
	wordReadings    []string
	kanjiReadings   []string
	kanjiTags       []string
	writingMnemonic string
	readingMnemonic string
	fromHeisig      bool
)

var addWordCmd = &cobra.Command{
	Use:   "add-word <word> <meaning>",
	Short: "Save a word with one kana reading per kanji",
	Example: `  kotoba add-word 時間 time --readings じ,かん
  kotoba add-word 食べる "to eat" --readings た`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(0)
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := a.lib.AddWord(cmd.Context(), model.WordCreatePayload{
			Word:          args[0],
			Meaning:       args[1],
			KanjiReadings: model.Readings(wordReadings...),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", w.Word, w.ID)
		return nil
	},
}

var addKanjiCmd = &cobra.Command{
	Use:   "add-kanji <kanji>",
	Short: "Save a kanji, optionally filled in from the Heisig table",
	Example: `  kotoba add-kanji 時 --readings じ,とき --tags time
  kotoba add-kanji 水 --heisig --writing "a waterfall"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		need := dicts(0)
		if fromHeisig {
			need = needHeisig
		}
		a, err := openApp(need)
		if err != nil {
			return err
		}
		defer a.Close()

		p := model.KanjiCreatePayload{
			Kanji:    args[0],
			Readings: kanjiReadings,
			Tags:     kanjiTags,
		}
		if fromHeisig {
			res, err := a.lib.Lookup(args[0])
			if err != nil {
				return err
			}
			if len(res.Entries) == 0 {
				return fmt.Errorf("%s is not in the Heisig table", args[0])
			}
			p = res.Entries[0].KanjiPayload(writingMnemonic)
			if len(kanjiReadings) > 0 {
				p.Readings = kanjiReadings
			}
			p.Tags = append(p.Tags, kanjiTags...)
		} else if strings.TrimSpace(writingMnemonic) != "" {
			p.WritingMnemonic = &writingMnemonic
		}
		if strings.TrimSpace(readingMnemonic) != "" {
			p.ReadingMnemonic = &readingMnemonic
		}

		k, err := a.lib.AddKanji(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s [%s] (%s)\n", k.Kanji, strings.Join(k.Readings, "、"), k.ID)
		return nil
	},
}

func init() {
	addWordCmd.Flags().StringSliceVarP(&wordReadings, "readings", "r", nil, "kana reading of each kanji, in order")

	addKanjiCmd.Flags().StringSliceVarP(&kanjiReadings, "readings", "r", nil, "readings of the kanji")
	addKanjiCmd.Flags().StringSliceVarP(&kanjiTags, "tags", "t", nil, "tags")
	addKanjiCmd.Flags().StringVar(&writingMnemonic, "writing", "", "writing mnemonic")
	addKanjiCmd.Flags().StringVar(&readingMnemonic, "reading", "", "reading mnemonic")
	addKanjiCmd.Flags().BoolVar(&fromHeisig, "heisig", false, "fill readings from the Heisig table")
}
