package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/deskcommander/internal/app"
)

func newDoctorCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			cfg, err := container.ConfigLoader.Load(ctx)
			if err != nil {
				return err
			}

			fmt.Println("Desktop Commander environment check")
			fmt.Println()

			if _, err := os.Stat(container.ConfigLoader.Path()); err == nil {
				printCheck(true, fmt.Sprintf("config file: %s", container.ConfigLoader.Path()))
			} else {
				printCheck(false, fmt.Sprintf("config file missing, using defaults (%s)", container.ConfigLoader.Path()))
			}

			status := container.ModelClient.Check(ctx, cfg)
			printCheck(status.Reachable, status.Message)
			if status.Reachable && !status.ModelFound {
				fmt.Printf("    hint: install it with `ollama pull %s`\n", cfg.OllamaModel)
			}
			if !status.Reachable {
				fmt.Println("    hint: start the server with `ollama serve`")
			}

			if shell := os.Getenv("SHELL"); shell != "" {
				printCheck(true, fmt.Sprintf("shell: %s", shell))
			} else {
				printCheck(true, "shell: /bin/sh (SHELL unset)")
			}

			if container.HistoryStore != nil {
				printCheck(true, fmt.Sprintf("history database: %s", container.HistoryStore.Path()))
			} else {
				printCheck(false, "history database unavailable, persistence disabled")
			}

			return nil
		},
	}
}

func printCheck(ok bool, message string) {
	mark := colorize("[ok]", colorGreen)
	if !ok {
		mark = colorize("[!!]", colorYellow)
	}
	fmt.Printf("%s %s\n", mark, message)
}
