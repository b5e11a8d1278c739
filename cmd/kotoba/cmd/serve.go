package cmd

import (
	"os"

	"github.com/bastiangx/kotoba/internal/logger"
	"github.com/bastiangx/kotoba/pkg/server"
	"github.com/bastiangx/kotoba/pkg/store"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MessagePack IPC server on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(needHeisig | needJMdict)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Store.Watch && a.db.Path() != ":memory:" {
			w, err := store.Watch(a.db.Path(), a.lib.Invalidate)
			if err != nil {
				log.Warnf("Not watching %s for outside changes: %v", a.db.Path(), err)
			} else {
				defer w.Stop()
			}
		}

		showStartupInfo(a)
		srv := server.NewServer(a.lib, server.Options{
			DefaultLimit: a.cfg.Search.Limit,
			MaxLimit:     a.cfg.Server.MaxLimit,
			MaxQuery:     a.cfg.Server.MaxQuery,
		})
		return srv.Start(cmd.Context())
	},
}

// showStartupInfo logs basic info about the init process to stderr, whatever the log level.
func showStartupInfo(a *app) {
	info := logger.NewWithConfig("serve", log.InfoLevel, false, debugMode, log.TextFormatter)
	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	if a.cfgPath != "" {
		info.Infof("config: ( %s )", a.cfgPath)
	}
	info.Infof("db: ( %s )", a.db.Path())
	info.Info("status: ready")
}
