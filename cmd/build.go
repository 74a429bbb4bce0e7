package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Render the resume to static HTML",
	Long: `Render the resume for every configured locale and write one HTML file per
locale to the output directory. The default locale is also written as
index.html. Files are replaced atomically, so a failed build never leaves a
half-written page behind.

Examples:
  resume build                     # Write dist/en.html, dist/nl.html, dist/index.html
  resume build -o public           # Write to another directory
  resume build --locale nl         # Only render the Dutch resume`,
	RunE: runBuild,
}

var (
	buildFlags  *StandardFlags
	buildOutput string
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildFlags = AddStandardFlags(buildCmd, "locale")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "dist", "Output directory")
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	locales, err := buildFlags.SelectLocales(a.cfg.Content.Locales)
	if err != nil {
		return err
	}

	written, err := a.build(cmd.Context(), locales, buildOutput)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}

// build renders each locale concurrently and writes the pages to dir. It
// returns the written paths, sorted.
func (a *app) build(ctx context.Context, locales []string, dir string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var (
		mu      sync.Mutex
		written []string
	)
	write := func(name string, page []byte) error {
		path := filepath.Join(dir, name)
		if err := atomic.WriteFile(path, bytes.NewReader(page)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		mu.Lock()
		written = append(written, path)
		mu.Unlock()
		return nil
	}

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, code := range locales {
		p.Go(func(ctx context.Context) error {
			page, err := a.render(ctx, code)
			if err != nil {
				return a.explain(code, err)
			}
			if err := write(code+".html", page); err != nil {
				return err
			}
			if code == a.cfg.Content.DefaultLocale {
				return write("index.html", page)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	return written, nil
}
