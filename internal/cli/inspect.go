package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/export"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/store"
	"gamescript-extractor/internal/textutil"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file> <kind>",
		Short: "List the names of one entity type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], args[1])
		},
	}
}

func runList(cmd *cobra.Command, path, kindArg string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	_, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if st.IsDefault(kind) {
		fmt.Fprintf(w, "# %s: nothing extracted, default dataset\n", kind)
	}
	for i, e := range st.Entities(kind) {
		fmt.Fprintf(w, "%3d  %s\n", i, e.EntityName())
	}
	return nil
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file> <kind> <name>",
		Short: "Print one entity as JSON",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1], args[2])
		},
	}
}

func runShow(cmd *cobra.Command, path, kindArg, name string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	_, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	e, err := st.Lookup(kind, name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(e)
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export extracted entities as JSON, YAML or TSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			kinds, _ := cmd.Flags().GetStringSlice("kind")
			return runExport(cmd, args[0], format, output, kinds)
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Export format: json, yaml or tsv")
	cmd.Flags().StringP("output", "o", "", "Output path (default stdout)")
	cmd.Flags().StringSlice("kind", nil, "Entity kinds to include in TSV output (default all)")
	return cmd
}

func runExport(cmd *cobra.Command, path, formatArg, output string, kindArgs []string) error {
	format, err := export.ParseFormat(formatArg)
	if err != nil {
		return err
	}
	var kinds []model.EntityType
	for _, k := range kindArgs {
		kind, err := parseKind(k)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}
	_, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	if output == "" {
		return export.Write(cmd.OutOrStdout(), snap, format, kinds...)
	}
	return export.ToFile(output, snap, format, kinds...)
}

func saveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Apply edits and save with a backup",
		Long: `Loads a script, applies the requested edits and saves it. The previous file
is kept as <file><suffix>, the script text is written back unchanged and the
edited entities are written to <file>.entities.json.

Edits use kind:name, e.g. --remove monster:Goblin --rename item:Potion=Tonic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removes, _ := cmd.Flags().GetStringArray("remove")
			renames, _ := cmd.Flags().GetStringArray("rename")
			output, _ := cmd.Flags().GetString("output")
			return runSave(cmd, args[0], output, removes, renames)
		},
	}
	cmd.Flags().StringArray("remove", nil, "Remove an entity (kind:name), repeatable")
	cmd.Flags().StringArray("rename", nil, "Rename an entity (kind:old=new), repeatable")
	cmd.Flags().StringP("output", "o", "", "Save to this path instead of the loaded file")
	return cmd
}

func runSave(cmd *cobra.Command, path, output string, removes, renames []string) error {
	cfg, st, _, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	for _, r := range removes {
		kind, name, err := splitRef(r)
		if err != nil {
			return err
		}
		if err := st.Remove(kind, name); err != nil {
			return err
		}
	}
	for _, r := range renames {
		kind, ref, err := splitRef(r)
		if err != nil {
			return err
		}
		from, to, ok := strings.Cut(ref, "=")
		if !ok {
			return fmt.Errorf("rename %q: want kind:old=new", r)
		}
		if err := st.Rename(kind, from, to); err != nil {
			return err
		}
	}
	if !st.HasChanges() {
		log.Info().Msg("No edits requested, saving unchanged entities")
	}
	if err := st.Save(output, store.SaveOptions{BackupSuffix: cfg.BackupSuffix}); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// splitRef parses "kind:name".
func splitRef(ref string) (model.EntityType, string, error) {
	k, name, ok := strings.Cut(ref, ":")
	if !ok || name == "" {
		return "", "", fmt.Errorf("entity reference %q: want kind:name", textutil.Truncate(ref, 40))
	}
	kind, err := parseKind(k)
	if err != nil {
		return "", "", err
	}
	return kind, name, nil
}

func keywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Print the keyword tables as YAML",
		Long: `Prints the classification keyword tables in effect (built-in defaults with
any KEYWORDS_FILE or --keywords overlay applied). The output is a valid
overlay file and can be edited and passed back with --keywords.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup(cmd)
			table, err := classify.LoadTable(cfg.KeywordsFile)
			if err != nil {
				return err
			}
			data, err := table.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

