package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/view"
)

// errSubmissionFailed is returned after the user has already been alerted.
var errSubmissionFailed = errors.New("submission failed")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a résumé against several company/role pairs",
	Long: `Upload a PDF or text résumé with a list of company/role pairs and show one
match score and job description per pair, plus a chart of all scores.

Pairs are a JSON array such as:
  [{"company": "Amazon", "role": "Software Engineer"}]
When no pairs are given the example list is used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUploadCmd(cmd, flow.KindMulti)
	},
}

var matchOneCmd = &cobra.Command{
	Use:   "match-one",
	Short: "Score a résumé against the service's single default role",
	Long:  "Upload a PDF, Word or text résumé and show its match score, job description and extracted text.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUploadCmd(cmd, flow.KindSingle)
	},
}

var resumeFile string

func init() {
	matchCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to the résumé (.pdf or .txt)")
	addPairsFlags(matchCmd)
	addOutputFlags(matchCmd)

	matchOneCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to the résumé (.pdf, .doc, .docx or .txt)")
	addOutputFlags(matchOneCmd)

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(matchOneCmd)
}

func runUploadCmd(cmd *cobra.Command, kind flow.Kind) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runUpload(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, kind, resumeFile, jsonOutput)
}

// runUpload drives one form submission through the view controller: select
// the file, fill in the pairs, submit and wait for the result.
func runUpload(ctx context.Context, out, errOut io.Writer, cfg config.Config, kind flow.Kind, path string, asJSON bool) error {
	p, err := newPipeline(cfg, kind)
	if err != nil {
		return err
	}

	// --json keeps stdout machine-readable
	var renderer view.Renderer
	if !asJSON {
		printer := observability.NewPrinter(out, kind, cfg.Verbose)
		p.OnProgress = printer.PrintProgress
		renderer = printer
	}
	notifier := view.NotifierFunc(func(message string) {
		_, _ = fmt.Fprintf(errOut, "⚠ %s\n", message)
	})

	pairs, err := cfg.PairsText()
	if err != nil {
		return err
	}
	// The example list stands in only when no pairs source was given at all
	if !cfg.HasPairs() {
		pairs = view.DefaultPairsText
	}

	ctrl := view.NewController(p, notifier, renderer, pairs)

	// An empty path is left unselected so the controller reports it.
	if path != "" {
		file, err := ingestion.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load résumé: %w", err)
		}
		ctrl.SelectFile(file)
	}

	ctrl.Submit(ctx)
	ctrl.Wait()

	st := ctrl.State()
	if st.Phase == view.PhaseFailed {
		return errSubmissionFailed
	}
	if asJSON {
		return writeJSON(out, jsonResult(st))
	}
	return nil
}

// jsonResult picks what --json prints for a settled state.
func jsonResult(st view.State) any {
	if st.AppError != "" {
		return types.SingleMatchResponse{Error: st.AppError}
	}
	return st.Response
}

func writeJSON(out io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintf(out, "%s\n", jsonBytes)
	return nil
}
