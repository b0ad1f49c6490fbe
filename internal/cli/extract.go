package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gamescript-extractor/internal/cache"
	"gamescript-extractor/internal/catalog"
	"gamescript-extractor/internal/config"
	"gamescript-extractor/internal/filewalker"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/store"
	"gamescript-extractor/internal/textutil"
	"gamescript-extractor/internal/worker"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file-or-directory>",
		Short: "Extract game data and print a per-type report",
		Long: `Runs the extraction pipeline on one script file and prints which strategy
matched for each entity type, how many records were found, discarded or
dropped as duplicates, and which types fell back to default data.

Given a directory, every supported script below it is extracted on the worker
pool and summarised per file. Identical files are only extracted once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useDB, _ := cmd.Flags().GetBool("cache-db")
			return runExtract(cmd, args[0], useDB)
		},
	}
	cmd.Flags().Bool("cache-db", false, "Reuse snapshots stored in the catalog database (DATABASE_URL)")
	return cmd
}

func runExtract(cmd *cobra.Command, target string, useDB bool) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if info.IsDir() {
		return runExtractDir(cmd, target, useDB)
	}

	_, st, rep, err := loadStore(cmd, target)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), rep, st)
	return nil
}

func printReport(w io.Writer, rep *store.Report, st *store.Store) {
	fmt.Fprintf(w, "source: %s\nhash:   %s\nbytes:  %d\n\n", rep.Source, rep.Hash, rep.Bytes)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tSTRATEGY\tCANDIDATES\tDISCARDED\tDUPLICATES\tCOUNT\tDEFAULT")
	for _, k := range rep.Kinds {
		strategy := k.Strategy
		if strategy == "" {
			strategy = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%t\n",
			k.Kind, strategy, k.Candidates, k.Discarded, k.Duplicates, k.Count, st.IsDefault(k.Kind))
	}
	tw.Flush()
}

type fileResult struct {
	snap   *model.Snapshot
	cached bool
}

func runExtractDir(cmd *cobra.Command, dir string, useDB bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := setup(cmd)

	entries, err := filewalker.NewWalker().Walk(dir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	var backend cache.Backend
	if useDB {
		cat, err := openCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		defer cat.Close()
		backend = cat
	}
	snapshots := cache.NewSnapshotCache(backend)

	// Files are extracted in parallel, so each store runs its kinds serially.
	pool := worker.New(cfg.WorkerCount, func(ctx context.Context, entry filewalker.FileEntry) (fileResult, error) {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			return fileResult{}, fmt.Errorf("%w: %w", store.ErrSourceUnreadable, err)
		}
		src := string(data)
		if snap, ok := snapshots.Get(ctx, src); ok {
			return fileResult{snap: snap, cached: true}, nil
		}
		st, err := newStore(cfg, 1)
		if err != nil {
			return fileResult{}, err
		}
		st.LoadAndExtract(src)
		snap := st.Snapshot()
		if err := snapshots.Set(ctx, src, snap); err != nil {
			log.Warn().Err(err).Str("file", entry.Path).Msg("Failed to cache snapshot")
		}
		return fileResult{snap: snap}, nil
	})

	log.Info().Int("files", len(entries)).Msg("Starting extraction")
	outcomes := pool.Run(ctx, entries)

	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCHARS\tITEMS\tSPELLS\tMONSTERS\tMAPS\tBATTLES\tNPCS\tDEFAULTED\tCACHED")
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			log.Error().Err(o.Err).Str("file", o.Input.Path).Msg("Extraction failed")
			continue
		}
		s := o.Value.snap
		var defaulted []string
		for _, k := range model.AllKinds {
			if s.Defaults[k] {
				defaulted = append(defaulted, string(k))
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%t\n",
			textutil.Truncate(o.Input.Path, 60),
			len(s.Characters), len(s.Items), len(s.Spells), len(s.Monsters),
			len(s.Maps), len(s.Battles), len(s.NPCs),
			orDash(strings.Join(defaulted, ",")), o.Value.cached)
	}
	tw.Flush()

	log.Info().
		Int("files", len(entries)).
		Int("failed", failed).
		Int("unique", snapshots.Len()).
		Msg("Extraction complete")
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := cat.EnsureSchema(ctx); err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}
