package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"HackerNews/internal/app"
	"HackerNews/internal/output"
)

func newRefreshCommand(root *rootOptions) *cobra.Command {
	var (
		watch     bool
		count     int
		source    string
		colorMode string
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the top stories once",
		Long: `Fetch the top stories once and print them ranked by score.

Interrupting the command stops the refresh and prints what was collected so far.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("count") {
				cfg.Refresh.StoryCount = count
			}
			if source != "" {
				cfg.Source.Kind = source
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			mode, err := output.ParseColorMode(colorMode)
			if err != nil {
				return err
			}
			printer := output.NewPrinter(cmd.OutOrStdout(), output.ResolveColors(mode))

			application, err := app.New(cfg, root.logger)
			if err != nil {
				return fmt.Errorf("build application: %w", err)
			}
			defer application.Close()

			if watch {
				unsubscribe := application.Feed().Subscribe(printer.Event)
				defer unsubscribe()
			}

			report, err := application.RunOnce(cmd.Context())
			if !watch {
				printer.Stories(application.Feed().Snapshot())
			}
			if err != nil {
				return err
			}
			printer.Report(report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print stories as they are inserted")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of stories to fetch (overrides refresh.storyCount)")
	cmd.Flags().StringVar(&source, "source", "", "story source: api, web or rss (overrides source.kind)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
	return cmd
}
