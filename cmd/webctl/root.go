package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/config"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/store"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
)

// options are the persistent flags shared by every command
type options struct {
	backend  string
	path     string
	inMemory bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	cfg := config.LoadOrDefault()
	opts := &options{
		backend:  cfg.Store.Backend,
		path:     cfg.Store.Path,
		inMemory: cfg.Store.InMemory,
	}

	root := &cobra.Command{
		Use:           "webctl",
		Short:         "Maintain the simulated browser's content cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.backend, "backend", opts.backend, "cache store backend (badger or sqlite)")
	root.PersistentFlags().StringVar(&opts.path, "store", opts.path, "cache store path")
	root.PersistentFlags().BoolVar(&opts.inMemory, "memory", opts.inMemory, "use an in-memory store")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSeedCmd(cfg, opts),
		newInspectCmd(cfg, opts),
		newPurgeCmd(cfg, opts),
		newExportCmd(cfg, opts),
		newResolveCmd(cfg, opts),
		newSearchCmd(cfg, opts),
	)
	return root
}

// withApp opens the store, builds a browser over it and runs fn
func withApp(ctx context.Context, cfg *config.Config, opts *options, fn func(*browser.App) error) error {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := logging.FromConfig(level, true)
	defer func() { _ = logger.Sync() }()

	kv, err := store.Open(store.Config{
		Backend:  opts.backend,
		Path:     opts.path,
		InMemory: opts.inMemory,
		Logger:   logger.Named("store"),
	})
	if err != nil {
		return err
	}
	defer kv.Close()

	bcfg := browser.DefaultConfig()
	bcfg.SearchHost = cfg.Browser.SearchHost
	bcfg.ArchiveHost = cfg.Browser.ArchiveHost
	bcfg.Brand = cfg.Browser.Brand
	bcfg.PageSize = cfg.Browser.PageSize
	bcfg.DefaultArchiveDate = cfg.Browser.DefaultArchiveDate
	bcfg.CacheTTL = cfg.Cache.TTL
	bcfg.MinResults = cfg.Search.MinResults
	bcfg.MaxDistance = cfg.Search.MaxDistance
	synthetic, err := cfg.Browser.Synthetic()
	if err != nil {
		return err
	}
	bcfg.Synthetic = synthetic

	return fn(browser.NewApp(bcfg, browser.Deps{Store: kv, Logger: logger}))
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
