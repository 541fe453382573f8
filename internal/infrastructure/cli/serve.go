package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/deskcommander/internal/app"
	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/infrastructure/web"
)

func newServeCommand(opts Options) *cobra.Command {
	var (
		port      int
		addr      string
		dryRun    bool
		safeMode  bool
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(app.Options{
				Verbose:  opts.Verbose,
				DryRun:   dryRun,
				SafeMode: safeMode,
			})
			if err != nil {
				return err
			}

			printBanner(cmd.Context(), container, dryRun, safeMode)

			listen := fmt.Sprintf("%s:%d", addr, port)
			url := fmt.Sprintf("http://%s", listen)
			fmt.Printf("Launching at %s\n", url)

			if !noBrowser {
				if err := web.OpenBrowser(url); err != nil {
					container.Logger.Warn("could not open browser", map[string]interface{}{"error": err.Error()})
				}
			}

			server := web.NewServer(container.CommandService, container.ConfigLoader, container.Logger)
			return server.Serve(listen)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", domain.DefaultPort, "Port to run the server on")
	cmd.Flags().StringVar(&addr, "addr", domain.DefaultBindAddr, "Address to bind the server to")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Enable dry-run mode (commands are not executed)")
	cmd.Flags().BoolVar(&safeMode, "safe-mode", false, "Enable safe mode (only read-only commands allowed)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically")

	return cmd
}

func printBanner(ctx context.Context, container *app.Container, dryRun, safeMode bool) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}
	fmt.Println("Desktop Commander")
	fmt.Printf("Working Directory: %s\n", wd)

	status, cfg, err := container.CommandService.Status(ctx)
	if err == nil {
		fmt.Printf("Ollama Model: %s\n", cfg.OllamaModel)
		fmt.Println(status.Message)
	}

	if dryRun {
		fmt.Println("DRY RUN MODE ENABLED - Commands will NOT be executed")
	}
	if safeMode {
		fmt.Println("SAFE MODE ENABLED - Only read-only commands allowed")
	}
}
