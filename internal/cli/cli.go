package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/config"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/store"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamescript",
		Short: "Extract RPG game data from script sources",
		Long: `Recovers characters, items, spells, monsters, maps, battles and NPCs from
loosely structured game scripts (minified JavaScript, Ruby or Lua data tables,
JSON dumps). Every entity type that cannot be found falls back to a built-in
default dataset, so the result is always complete.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("keywords", "", "YAML keyword table overlay (overrides KEYWORDS_FILE)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log strategy misses and discarded records")

	root.AddCommand(extractCmd())
	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(saveCmd())
	root.AddCommand(keywordsCmd())
	root.AddCommand(publishCmd())
	root.AddCommand(similarCmd())
	root.AddCommand(battlesWithCmd())
	root.AddCommand(npcsOnCmd())
	return root
}

// setup loads the configuration and applies the global flags to it.
func setup(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if kw, _ := cmd.Flags().GetString("keywords"); kw != "" {
		cfg.KeywordsFile = kw
	}
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg
}

// newStore builds an empty store with the configured keyword table.
func newStore(cfg *config.Config, workers int) (*store.Store, error) {
	table, err := classify.LoadTable(cfg.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("load keyword table: %w", err)
	}
	return store.New(store.WithTable(table), store.WithWorkers(workers)), nil
}

// loadStore extracts one script file.
func loadStore(cmd *cobra.Command, path string) (*config.Config, *store.Store, *store.Report, error) {
	cfg := setup(cmd)
	st, err := newStore(cfg, cfg.WorkerCount)
	if err != nil {
		return nil, nil, nil, err
	}
	rep, err := st.Load(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, st, rep, nil
}

func parseKind(s string) (model.EntityType, error) {
	kind, err := model.ParseKind(s)
	if err != nil {
		return "", fmt.Errorf("%w (want one of %v)", err, model.AllKinds)
	}
	return kind, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
