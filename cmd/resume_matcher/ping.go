package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the scoring service is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runPing(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(ctx context.Context, out io.Writer, cfg config.Config) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	message, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("service at %s is not reachable: %w", c.BaseURL(), err)
	}

	_, _ = fmt.Fprintf(out, "✓ %s: %s\n", c.BaseURL(), message)
	return nil
}
