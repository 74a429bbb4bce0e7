package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/loader"
)

var previewCmd = &cobra.Command{
	Use:     "preview <file>",
	Aliases: []string{"p"},
	Short:   "Show a content file in the terminal",
	Long: `Show a content file the way the engine reads it. Markdown documents print
their front matter as YAML followed by the body rendered for the terminal;
data files print the decoded value as YAML. Paths are relative to the
content root.

Examples:
  resume preview en/intro.md              # Render a document
  resume preview libraries.json           # Show decoded data
  resume preview en/intro.md --style notty # Plain output for pipes`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

var (
	previewStyle string
	previewWidth int
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewStyle, "style", "auto", "Glamour style (auto, dark, light, notty or a style file)")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Word wrap width (0 for the default)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	name := filepath.ToSlash(args[0])
	f := loader.File{Name: name, Path: filepath.Join(a.cfg.Content.Root, args[0])}
	return a.preview(cmd, f)
}

func (a *app) preview(cmd *cobra.Command, f loader.File) error {
	out := cmd.OutOrStdout()

	if f.Ext() != "md" {
		load, ok := a.store.Loaders().Resolve(f.Ext())
		if !ok {
			return fmt.Errorf("no loader for %q files", f.Ext())
		}
		value, err := load(cmd.Context(), f)
		if err != nil {
			return rerrors.InFile(f.Name, err)
		}
		return writeYAML(out, value)
	}

	src, err := f.Read()
	if err != nil {
		return err
	}
	meta, body, err := loader.SplitFrontMatter(src)
	if err != nil {
		return rerrors.InFile(f.Name, err)
	}

	if len(meta) > 0 {
		fmt.Fprintln(out, "---")
		if err := writeYAML(out, meta); err != nil {
			return err
		}
		fmt.Fprintln(out, "---")
	}

	style := previewStyle
	if style == "auto" {
		if file, ok := out.(*os.File); !ok || !isTerminal(file) {
			style = "notty"
		}
	}
	rendered, err := renderTerminal(string(body), style, previewWidth)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// renderTerminal renders markdown for the terminal with glamour.
func renderTerminal(markdown, style string, width int) (string, error) {
	var options []glamour.TermRendererOption
	if style != "" && style != "auto" {
		options = append(options, glamour.WithStylePath(style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	return renderer.Render(markdown)
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
