package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the resume with live reload",
	Long: `Serve the resume over HTTP. GET / picks the locale from the browser's
Accept-Language header (or ?lang=), GET /<locale> forces one.

With development.hot_reload enabled the content directory is watched and open
pages reload when a file changes.

Examples:
  resume serve                     # Serve on localhost:3000
  resume serve -p 8080             # Serve on another port
  resume serve --no-reload         # Serve without watching content`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	AddStandardFlags(serveCmd, "server")
	serveCmd.Flags().Bool("no-reload", false, "Disable live reload")

	BindViper(serveCmd, map[string]string{
		"port": "server.port",
		"host": "server.host",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	if noReload, _ := cmd.Flags().GetBool("no-reload"); noReload {
		a.cfg.Development.HotReload = false
	}

	srv, err := server.New(a.cfg, a.client, a.layout, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving resume at http://%s\n", a.cfg.Server.Addr())

	if err := srv.Start(ctx); err != nil {
		suggestions := rerrors.ServerStartError(err, a.cfg.Server.Port, &rerrors.SuggestionContext{
			ContentRoot: a.cfg.Content.Root,
		})
		if len(suggestions) > 0 {
			return rerrors.NewEnhancedError(
				fmt.Sprintf("Failed to start server on port %d", a.cfg.Server.Port),
				err,
				suggestions,
			)
		}
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
