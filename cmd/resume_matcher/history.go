package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List résumés the service has already scored",
	Long:  "Fetch the service's stored uploads, newest first, and chart the match scores recorded for each.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runHistory(cmd.Context(), cmd.OutOrStdout(), cfg, historyLast, jsonOutput)
	},
}

var historyLast int

func init() {
	historyCmd.Flags().IntVar(&historyLast, "last", 10, "Show only the N most recent uploads (0 shows all)")
	historyCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored history as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(ctx context.Context, out io.Writer, cfg config.Config, last int, asJSON bool) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	history, err := c.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch résumé history: %w", err)
	}

	if asJSON {
		if last > 0 && len(history) > last {
			history = history[:last]
		}
		return writeJSON(out, history)
	}

	observability.NewPrinter(out, flow.KindMulti, cfg.Verbose).PrintHistory(history, last)
	return nil
}
