// Package cli wires the cobra command tree for the launcher.
package cli

import (
	"github.com/spf13/cobra"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The bare root runs `serve`.
func NewRootCmd(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "deskcommander",
		Short: "Desktop Commander - AI-powered command line interface",
		Long: "Desktop Commander serves a local web UI that turns natural language\n" +
			"into shell commands via Ollama, screens them against a safety filter,\n" +
			"and optionally executes them on the host shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := newServeCommand(opts)
	root.RunE = serveCmd.RunE
	root.Flags().AddFlagSet(serveCmd.Flags())

	root.AddCommand(serveCmd)
	root.AddCommand(newDoctorCommand(opts))
	root.AddCommand(newHistoryCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	return root
}
