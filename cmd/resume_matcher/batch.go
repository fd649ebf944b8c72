package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/view"
)

var batchCmd = &cobra.Command{
	Use:   "batch <resume>...",
	Short: "Score several résumés against the same company/role pairs",
	Long: `Upload each résumé as its own request against one list of company/role
pairs. Uploads run concurrently up to --limit; one failed file does not stop
the others. Results are printed in the order the files were given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatchCmd,
}

func init() {
	addPairsFlags(batchCmd)
	addOutputFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, fmt.Sprintf("Maximum concurrent uploads (default %d)", config.DefaultBatchLimit))

	rootCmd.AddCommand(batchCmd)
}

// batchEntry is the --json form of one batch result.
type batchEntry struct {
	Path      string               `json:"path"`
	RequestID string               `json:"request_id,omitempty"`
	Response  *types.MatchResponse `json:"response,omitempty"`
	Error     string               `json:"error,omitempty"`
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runBatch(ctx, cmd.OutOrStdout(), cfg, args, jsonOutput)
}

func runBatch(ctx context.Context, out io.Writer, cfg config.Config, paths []string, asJSON bool) error {
	p, err := newPipeline(cfg, flow.KindMulti)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out, flow.KindMulti, cfg.Verbose)
	if !asJSON {
		p.OnProgress = printer.PrintProgress
	}

	pairs, err := cfg.PairsText()
	if err != nil {
		return err
	}
	// The example list stands in only when no pairs source was given at all
	if !cfg.HasPairs() {
		pairs = view.DefaultPairsText
	}

	results, err := p.RunBatch(ctx, paths, pairs, cfg.BatchLimit)
	if err != nil {
		return err
	}

	failed := 0
	entries := make([]batchEntry, 0, len(results))
	for _, result := range results {
		entry := batchEntry{Path: result.Path}
		if result.Err != nil {
			failed++
			entry.Error = result.Err.Error()
		} else {
			entry.RequestID = result.Outcome.RequestID.String()
			entry.Response = result.Outcome.Response
		}
		entries = append(entries, entry)

		if asJSON {
			continue
		}
		if result.Err != nil {
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s\n", result.Path)
		printer.PrintChart(result.Outcome.Projection.ChartPoints)
	}

	if asJSON {
		if err := writeJSON(out, entries); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(results))
	}
	return nil
}
