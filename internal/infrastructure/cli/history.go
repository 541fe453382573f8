package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/deskcommander/internal/app"
	"github.com/doeshing/deskcommander/internal/domain"
)

func newHistoryCommand(opts Options) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			if container.HistoryStore == nil {
				return errors.New("history database unavailable")
			}
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			for _, rec := range records {
				status := colorize(string(rec.Status), statusColor(string(rec.Status)))
				fmt.Printf("%s  %s  %s\n", humanize.Time(rec.Timestamp), status, rec.Command)
				if rec.Prompt != "" {
					fmt.Printf("    prompt: %s\n", rec.Prompt)
				}
				if rec.Executed {
					fmt.Printf("    exit %d in %dms\n", rec.ExitCode, rec.DurationMS)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Maximum records to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by prompt or command substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all persisted history",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			if container.HistoryStore == nil {
				return errors.New("history database unavailable")
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Export history as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			if container.HistoryStore == nil {
				return errors.New("history database unavailable")
			}
			if err := container.HistoryStore.ExportJSON(args[0]); err != nil {
				return err
			}
			fmt.Printf("History exported to %s\n", args[0])
			return nil
		},
	})

	return cmd
}
