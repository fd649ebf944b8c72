package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/client"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/projection"
)

// Service flags shared by every command
var (
	configPath string
	baseURL    string
	timeout    string
	verbose    bool
)

// Input flags; each command binds the ones it uses
var (
	pairsText    string
	pairsFile    string
	strictScores bool
	batchLimit   int
	jsonOutput   bool
)

func init() {
	// Config file flag (processed first)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Scoring service URL (defaults to "+config.EnvBaseURL+" or "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Request timeout such as 90s (defaults to "+config.EnvTimeout+"; no timeout when unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func addPairsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&pairsText, "pairs", "p", "", "JSON array of {\"company\", \"role\"} objects")
	cmd.Flags().StringVar(&pairsFile, "pairs-file", "", "Path to a JSON file of company/role pairs (mutually exclusive with --pairs)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw service response as JSON")
	cmd.Flags().BoolVar(&strictScores, "strict-scores", false, "Fail on unparseable match scores instead of charting them as 0")
}

// loadSettings resolves the configuration for cmd: config file, then
// environment, then explicitly set flags, then built-in defaults.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Loaded config from: %s\n", configPath)
		}
	}

	// Step 2: Environment
	env := config.FromEnv()
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}

	// Step 3: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("pairs") {
		cfg.Pairs = pairsText
		cfg.PairsFile = ""
		cfg.PairsGiven = true
	}
	if flags.Changed("pairs-file") {
		cfg.PairsFile = pairsFile
		if !flags.Changed("pairs") {
			cfg.Pairs = ""
		}
		cfg.PairsGiven = true
	}
	if flags.Changed("strict-scores") {
		cfg.StrictScores = strictScores
	}
	if flags.Changed("limit") {
		cfg.BatchLimit = batchLimit
	}

	// Step 4: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newClient(cfg config.Config) (*client.Client, error) {
	d, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.BaseURL, &client.Options{
		Timeout:   d,
		UserAgent: cfg.UserAgent,
		Headers:   cfg.Headers,
	})
}

func newPipeline(cfg config.Config, kind flow.Kind) (*pipeline.Pipeline, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	f, err := flow.ByKind(kind)
	if err != nil {
		return nil, err
	}
	return pipeline.New(f, c, projection.Options{
		StrictScores: cfg.StrictScores,
		ExcerptLimit: cfg.ExcerptLimit,
	}), nil
}
