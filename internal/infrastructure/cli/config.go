package cli

import (
	"fmt"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/doeshing/deskcommander/internal/infrastructure/config"
)

func newConfigCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the persisted configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewFileLoader("")
			cfg, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("config file:     %s\n", loader.Path())
			fmt.Printf("ollama_url:      %s\n", cfg.OllamaURL)
			fmt.Printf("ollama_model:    %s\n", cfg.OllamaModel)
			fmt.Printf("command_timeout: %d\n", cfg.TimeoutSeconds)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set ollama_url, ollama_model, or command_timeout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewFileLoader("")
			cfg, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			before := cfg
			switch args[0] {
			case "ollama_url":
				cfg.OllamaURL = args[1]
			case "ollama_model":
				cfg.OllamaModel = args[1]
			case "command_timeout":
				seconds, err := strconv.Atoi(args[1])
				if err != nil || seconds <= 0 {
					return fmt.Errorf("command_timeout must be a positive integer, got %q", args[1])
				}
				cfg.TimeoutSeconds = seconds
			default:
				return fmt.Errorf("unknown key %q (expected ollama_url, ollama_model, or command_timeout)", args[0])
			}
			if err := loader.Save(cfg); err != nil {
				return err
			}
			if diff := cmp.Diff(before, cfg); diff != "" {
				fmt.Printf("Configuration updated (-old +new):\n%s", diff)
			} else {
				fmt.Println("Configuration unchanged.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to environment defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewFileLoader("")
			cfg, err := loader.Reset()
			if err != nil {
				return err
			}
			fmt.Printf("Configuration reset: model=%s timeout=%ds\n", cfg.OllamaModel, cfg.TimeoutSeconds)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Copy the current config file to a timestamped backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewFileLoader("")
			backup, err := loader.Backup()
			if err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", backup)
			return nil
		},
	})

	return cmd
}
