package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gamescript-extractor/internal/config"
	"gamescript-extractor/internal/graph"
	"gamescript-extractor/internal/textutil"
)

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "Publish extracted entities to the catalog database and the graph",
		Long: `Extracts one script and publishes the result:
  - PostgreSQL (DATABASE_URL): the snapshot as JSONB plus one row per entity
    with a pgvector stat profile, used by "similar".
  - Neo4j (NEO4J_URI): one node per entity, battles linked to their enemies,
    NPCs to their maps and characters to their equipment, used by
    "battles-with" and "npcs-on".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCatalog, _ := cmd.Flags().GetBool("no-catalog")
			noGraph, _ := cmd.Flags().GetBool("no-graph")
			return runPublish(cmd, args[0], !noCatalog, !noGraph)
		},
	}
	cmd.Flags().Bool("no-catalog", false, "Skip PostgreSQL")
	cmd.Flags().Bool("no-graph", false, "Skip Neo4j")
	return cmd
}

func runPublish(cmd *cobra.Command, path string, toCatalog, toGraph bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	if toCatalog {
		cat, err := openCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		defer cat.Close()
		n, err := cat.Publish(ctx, path, snap)
		if err != nil {
			return fmt.Errorf("publish to catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog: %d entities\n", n)
	}

	if toGraph {
		driver, err := openGraph(ctx, cfg)
		if err != nil {
			return err
		}
		defer driver.Close(ctx)
		builder := graph.NewGraphBuilder(driver)
		if err := builder.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure graph schema: %w", err)
		}
		nodes, rels, err := builder.Publish(ctx, snap)
		if err != nil {
			return fmt.Errorf("publish to graph: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "graph: %d nodes, %d relationships\n", nodes, rels)
	}

	log.Info().Str("path", path).Str("hash", snap.SourceHash).Msg("Publish complete")
	return nil
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <file> <kind> <name>",
		Short: "Find entities with the closest stat profile",
		Long:  `Queries the catalog for entities of the same kind and source whose stat profile vector is nearest to the named entity. The source must have been published first.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runSimilar(cmd, args[0], args[1], args[2], limit)
		},
	}
	cmd.Flags().Int("limit", 0, "Maximum results (default SIMILAR_LIMIT)")
	return cmd
}

func runSimilar(cmd *cobra.Command, path, kindArg, name string, limit int) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	ctx, cancel := setupContext()
	defer cancel()

	cfg, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.SimilarLimit
	}

	cat, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	matches, err := cat.Similar(ctx, st.Hash(), kind, name, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDISTANCE\tDATA")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", m.Name, m.Distance, textutil.Truncate(string(m.Payload), 80))
	}
	return tw.Flush()
}

func battlesWithCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "battles-with <file> <monster>",
		Short: "List the battles featuring a monster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphQuery(cmd, args[0], func(ctx context.Context, q *graph.GraphQuerier, source string) ([]string, error) {
				return q.BattlesWith(ctx, source, args[1])
			})
		},
	}
}

func npcsOnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "npcs-on <file> <map>",
		Short: "List the NPCs placed on a map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphQuery(cmd, args[0], func(ctx context.Context, q *graph.GraphQuerier, source string) ([]string, error) {
				return q.NPCsOn(ctx, source, args[1])
			})
		},
	}
}

func runGraphQuery(cmd *cobra.Command, path string, query func(context.Context, *graph.GraphQuerier, string) ([]string, error)) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	driver, err := openGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	names, err := query(ctx, graph.NewGraphQuerier(driver), st.Hash())
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}

func openGraph(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}
