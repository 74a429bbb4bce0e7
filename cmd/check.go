package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elmarvr/resume-v2/internal/config"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"c"},
	Short:   "Validate the content of every locale",
	Long: `Load the resume for each configured locale and report every problem:
unreadable files, front matter that does not match its schema, unknown
markdown components, missing documents and broken references between
files. Configuration warnings and theme classes that compile to no style
are printed too.

Examples:
  resume check                     # Check all locales
  resume check --locale en         # Check one locale`,
	RunE: runCheck,
}

var checkFlags *StandardFlags

func init() {
	rootCmd.AddCommand(checkCmd)

	checkFlags = AddStandardFlags(checkCmd, "locale")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if result := config.Validate(a.cfg); result.HasWarnings() {
		fmt.Fprint(out, result.String())
	}
	printUnsupported(cmd, a.kit)

	locales, err := checkFlags.SelectLocales(a.cfg.Content.Locales)
	if err != nil {
		return err
	}

	failed := 0
	for _, code := range locales {
		r, err := a.load(cmd.Context(), code)
		if err != nil {
			failed++
			title := fmt.Sprintf("✗ %s: %v", code, err)
			suggestions := rerrors.ContentSuggestions(err, &rerrors.SuggestionContext{
				ContentRoot: a.cfg.Content.Root,
				Locale:      code,
			})
			fmt.Fprintln(out, rerrors.FormatSuggestions(title, suggestions))
			continue
		}
		fmt.Fprintf(out, "✓ %s: %d experience, %d education, %d courses, %d skills\n",
			code, len(r.Experience), len(r.Education), len(r.Courses), len(r.Skills))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d locales failed", failed, len(locales))
	}
	return nil
}

// printUnsupported warns about component classes that have no effect.
func printUnsupported(cmd *cobra.Command, kit *ui.Kit) {
	unsupported := ui.Unsupported(kit)
	names := make([]string, 0, len(unsupported))
	for name := range unsupported {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s: unsupported classes %s\n", name, strings.Join(unsupported[name], " "))
	}
}
