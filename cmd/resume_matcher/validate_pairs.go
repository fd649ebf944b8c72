package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/validation"
)

var validatePairsCmd = &cobra.Command{
	Use:   "validate-pairs",
	Short: "Check a company/role pairs list without uploading anything",
	Long:  "Validate a JSON array of {company, role} objects from --pairs, --pairs-file or standard input, and print the field value that would be sent.",
	RunE:  runValidatePairsCmd,
}

func init() {
	addPairsFlags(validatePairsCmd)

	rootCmd.AddCommand(validatePairsCmd)
}

func runValidatePairsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	text, err := cfg.PairsText()
	if err != nil {
		return err
	}
	if !cfg.HasPairs() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read pairs from stdin: %w", err)
		}
		text = string(data)
	}

	return runValidatePairs(cmd.OutOrStdout(), text)
}

func runValidatePairs(out io.Writer, text string) error {
	pairs, err := validation.Validate(text)
	if err != nil {
		return fmt.Errorf("%s (%w)", validation.InvalidPairsMessage, err)
	}

	encoded, err := request.MarshalPairs(pairs)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Valid: %d company/role pairs\n", len(pairs))
	for i, pair := range pairs {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, pair.Label())
	}
	_, _ = fmt.Fprintf(out, "%s=%s\n", request.PairsField, encoded)
	return nil
}
