package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <resume>",
	Short: "Report what the service would see in a résumé file",
	Long: `Inspect a résumé locally: media type, size, hash and, for PDFs, the page
count and amount of extractable text. Image-only PDFs have no text and are
rejected by the service.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.OutOrStdout(), args[0], jsonOutput)
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(out io.Writer, path string, asJSON bool) error {
	file, err := ingestion.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load résumé: %w", err)
	}

	report := ingestion.Inspect(file)
	if asJSON {
		return writeJSON(out, report)
	}

	observability.NewPrinter(out, flow.KindMulti, false).PrintInspection(report)
	return nil
}
