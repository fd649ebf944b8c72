// Package main provides the resume_matcher CLI, a client for the résumé
// scoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Score a résumé against company/role pairs",
	Long: `resume_matcher uploads a résumé to the scoring service and shows how well it
matches each requested company and role.

Configuration can be loaded from a JSON file using --config. Environment
variables override the file and command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
