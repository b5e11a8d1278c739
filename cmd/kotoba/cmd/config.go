package cmd

import (
	"fmt"

	"github.com/bastiangx/kotoba/pkg/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the config file in use, the database and the dictionary files.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(0)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "kotoba config")
		fmt.Fprintf(out, "  Config:     %s\n", config.GetActiveConfigPath(a.cfgPath))
		fmt.Fprintf(out, "  DB:         %s\n", a.db.Path())
		fmt.Fprintf(out, "  Heisig:     %s\n", a.resolver.ResolveDataFile(a.cfg.Dict.HeisigPath))
		fmt.Fprintf(out, "  JMdict:     %s\n", a.resolver.ResolveDataFile(a.cfg.Dict.JMdictPath))
		fmt.Fprintf(out, "  Threshold:  %.2f\n", a.cfg.Search.Threshold)
		fmt.Fprintf(out, "  Debounce:   %s\n", a.cfg.Autocomplete.Debounce())
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Rewrite the default config file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RebuildConfigFile(); err != nil {
			return err
		}
		path, _ := config.GetDefaultConfigPath()
		fmt.Fprintf(cmd.OutOrStdout(), "wrote defaults to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
