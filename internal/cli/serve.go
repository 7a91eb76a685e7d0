package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"HackerNews/internal/app"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live feed over HTTP and refresh it periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			application, err := app.New(cfg, root.logger)
			if err != nil {
				return fmt.Errorf("build application: %w", err)
			}
			defer application.Close()

			return application.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
