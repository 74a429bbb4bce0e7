package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/scanner"
)

var listCmd = &cobra.Command{
	Use:     "list [pattern]",
	Aliases: []string{"l"},
	Short:   "List content files matching a pattern",
	Long: `List the content files a query with the given pattern would see, in
discovery order, with the loader that handles each one. Files without a
loader are skipped by queries and shown as "-".

Examples:
  resume list                      # Every file under the content root
  resume list "**/*.md"            # Every markdown document
  resume list "experience/*" --in en  # Files of the English experience collection
  resume list -f json              # Output as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	listFlags  *StandardFlags
	listLocale string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")
	listCmd.Flags().StringVar(&listLocale, "in", "", "Scan the directory of this locale instead of the root")
}

// listEntry is one matched file.
type listEntry struct {
	Path   string `json:"path" yaml:"path"`
	Loader string `json:"loader" yaml:"loader"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	pattern := "**"
	if len(args) > 0 {
		pattern = args[0]
	}
	base := a.cfg.Content.Root
	if listLocale != "" {
		base = filepath.Join(base, listLocale)
	}

	paths, err := scanner.Collect(cmd.Context(), pattern, base)
	if err != nil {
		return err
	}

	entries := make([]listEntry, len(paths))
	for i, p := range paths {
		entries[i] = listEntry{Path: p, Loader: "-"}
		if _, ok := a.store.Loaders().Resolve(loader.Ext(p)); ok {
			entries[i].Loader = loader.Ext(p)
		}
	}

	return writeList(cmd.OutOrStdout(), listFlags.OutputFormat, entries)
}

func writeList(w io.Writer, format string, entries []listEntry) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(entries)
	case "table":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No files found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PATH\tLOADER")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Path, e.Loader)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
