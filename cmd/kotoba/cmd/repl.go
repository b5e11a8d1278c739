package cmd

import (
	"fmt"

	"github.com/bastiangx/kotoba/internal/cli"
	"github.com/bastiangx/kotoba/internal/logger"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/spf13/cobra"
)

var (
	replMode  string
	replRows  int
	replPlain bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Try the debounced search interactively",
	Long: `Each line is typed into the search box one character at a time. Lines starting with ':'
are keys: :down, :up, :enter, :esc, :clear and :quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		need := dicts(0)
		if replMode == "lookup" {
			need = needHeisig
		}
		a, err := openApp(need)
		if err != nil {
			return err
		}
		defer a.Close()

		opts := cli.Options{
			Mode:     replMode,
			Rows:     replRows,
			Debounce: a.cfg.Autocomplete.Debounce(),
			Plain:    replPlain,
			Logger:   logger.New("repl"),
		}
		switch replMode {
		case "words":
			opts.Source = cli.WordSource(a.lib)
		case "kanji":
			opts.Source = cli.KanjiSource(a.lib)
		case "lookup":
			opts.Source = cli.LookupSource(a.lib)
			opts.Validate = query.Validate
		default:
			return fmt.Errorf("unknown mode %q: use words, kanji or lookup", replMode)
		}

		return cli.NewInputHandler(opts, cmd.OutOrStdout()).Start(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	replCmd.Flags().StringVarP(&replMode, "mode", "m", "words", "what to search: words, kanji or lookup")
	replCmd.Flags().IntVar(&replRows, "rows", 10, "visible result rows")
	replCmd.Flags().BoolVar(&replPlain, "plain", false, "mark matches with brackets instead of color")
}
