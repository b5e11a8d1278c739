package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/kotoba/internal/logger"
	"github.com/bastiangx/kotoba/internal/utils"
	"github.com/bastiangx/kotoba/pkg/config"
	"github.com/bastiangx/kotoba/pkg/dictionary"
	"github.com/bastiangx/kotoba/pkg/library"
	"github.com/bastiangx/kotoba/pkg/store"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0-beta"
	AppName = "kotoba"
	gh      = "https://github.com/bastiangx/kotoba"
)

var (
	configPath string
	dbPath     string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:           AppName,
	Short:         "Japanese vocabulary and kanji study list",
	Long:          "Save words and kanji, search them fuzzily, look up Heisig kanji and show furigana.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(debugMode)
	},
}

// Execute runs the root command. Errors are logged here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is [UserConfigDir]/kotoba/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file, overrides the [store] path")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "toggle debug logging")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(kanjiCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(candidatesCmd)
	rootCmd.AddCommand(readingCmd)
	rootCmd.AddCommand(addWordCmd)
	rootCmd.AddCommand(addKanjiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// dicts selects the reference dictionaries a command needs.
type dicts int

const (
	needHeisig dicts = 1 << iota
	needJMdict
)

// app is what a command works with once config and storage are set up.
type app struct {
	cfg      *config.Config
	cfgPath  string
	resolver *utils.PathResolver
	db       *store.SQLite
	lib      *library.Library
}

// openApp loads the config, opens the database and attaches the requested dictionaries.
// A missing dictionary file is logged; the operations needing it then fail on their own.
func openApp(need dicts) (*app, error) {
	cfg, cfgPath, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	path := cfg.Store.Path
	if dbPath != "" {
		path = dbPath
	}
	path = resolver.ResolveStatePath(path)
	log.Debugf("Using database at: %s", path)

	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	lib, err := library.New(db, library.Options{
		Threshold:     cfg.Search.Threshold,
		WordWeight:    cfg.Search.WordWeight,
		MeaningWeight: cfg.Search.MeaningWeight,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &app{cfg: cfg, cfgPath: cfgPath, resolver: resolver, db: db, lib: lib}
	if need&needHeisig != 0 {
		a.loadHeisig()
	}
	if need&needJMdict != 0 {
		a.loadJMdict()
	}
	return a, nil
}

func (a *app) loadHeisig() {
	path := a.resolver.ResolveDataFile(a.cfg.Dict.HeisigPath)
	h, err := dictionary.LoadHeisig(path)
	if err != nil {
		log.Warnf("Heisig table not loaded: %v", err)
		return
	}
	log.Debugf("Loaded %d Heisig kanji from %s", h.Len(), path)
	a.lib.WithHeisig(h)
}

func (a *app) loadJMdict() {
	path := a.resolver.ResolveDataFile(a.cfg.Dict.JMdictPath)
	d, err := dictionary.LoadJMdict(path)
	if err != nil {
		log.Warnf("JMdict not loaded: %v", err)
		return
	}
	lemmas, err := dictionary.NewLemmatizer()
	if err != nil {
		log.Warnf("Lemmatizer not available, matching exact forms only: %v", err)
	}
	log.Debugf("Loaded %d JMdict entries from %s", d.Len(), path)
	a.lib.WithJMdict(d, lemmas)
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		log.Warnf("Closing database: %v", err)
	}
}

// limit returns the --limit value, or the configured default when unset.
func (a *app) limit(n int) int {
	if n > 0 {
		return n
	}
	return a.cfg.Search.Limit
}
