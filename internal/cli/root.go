// Package cli contains the hackernews commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"HackerNews/internal/config"
	"HackerNews/internal/logging"
)

type rootOptions struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hackernews",
		Short: "Top Hacker News stories ranked by score, with title sentiment",
		Long: `hackernews fetches the current top stories, scores the sentiment of every
title and keeps a score-sorted, title-deduplicated list of them.

Example usage:
  hackernews refresh              # Fetch once and print the table
  hackernews refresh --watch      # Print stories as they arrive
  hackernews serve                # HTTP API with periodic refresh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HACKERNEWS_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newRefreshCommand(opts), newServeCommand(opts))
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}

	o.cfg = cfg
	o.logger = logging.NewTo(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	o.logger.Debug("configuration loaded",
		"source", cfg.Source.Kind,
		"sentiment", cfg.Sentiment.Provider,
		"story_count", cfg.Refresh.StoryCount,
	)
	return nil
}
