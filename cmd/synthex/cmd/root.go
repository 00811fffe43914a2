// Package cmd implements the synthex command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tanaos/synthex-go"
	"github.com/tanaos/synthex-go/internal/config"
)

type rootOptions struct {
	cfgFile string
	apiKey  string
	baseURL string
	verbose bool

	newLogger func() (*zap.Logger, error)
	logger    *zap.Logger
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root, opts := newRootCmd()
	defer opts.syncLogger()
	return root.ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func developmentLogger() (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{newLogger: developmentLogger}

	root := &cobra.Command{
		Use:   "synthex",
		Short: "synthex is a command line tool for the Synthex synthetic data API",
		Long: `synthex is the command-line interface for the Synthex synthetic data API.

Common workflows:

  Check connectivity:
    synthex ping

  Generate a dataset from a job file:
    synthex jobs generate job.yaml --output ./data/

  List your jobs:
    synthex jobs list --limit 20

Configuration:
  Credentials come from flags, environment variables or a config file:
    SYNTHEX_API_KEY      API key (required)
    SYNTHEX_BASE_URL     API endpoint (default: ` + synthex.DefaultBaseURL + `)
    SYNTHEX_AUTH_SCHEME  bearer or api-key`,
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			opts.syncLogger()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, json, toml or .env)")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "API key (overrides SYNTHEX_API_KEY)")
	root.PersistentFlags().StringVar(&opts.baseURL, "url", "", "API base URL (overrides SYNTHEX_BASE_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newPingCmd(opts),
		newJobsCmd(opts),
		newMeCmd(opts),
		newCreditsCmd(opts),
		newVersionCmd(),
	)
	return root, opts
}

// client builds an API client from config, env and flags, in rising priority.
func (o *rootOptions) client() (*synthex.Client, error) {
	overrides := map[string]any{}
	if o.apiKey != "" {
		overrides["api_key"] = o.apiKey
	}
	if o.baseURL != "" {
		overrides["base_url"] = o.baseURL
	}
	cfg, err := config.Load(o.cfgFile, overrides)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if o.verbose {
		if logger, err = o.newLogger(); err != nil {
			return nil, err
		}
		o.logger = logger
	}
	return cfg.NewClient(synthex.WithLogger(logger))
}

// syncLogger flushes the verbose logger, if one was built.
func (o *rootOptions) syncLogger() {
	if o.logger != nil {
		// stderr may not support fsync.
		_ = o.logger.Sync()
	}
}
