package cli

import (
	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/server"
)

// serveCommand creates the 'serve' command: the layout HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Serve the layout API over HTTP against the configured storage backend.

The editor saves and loads through this service when its config points at it;
other OrderTable components read layouts from the same endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if listen == "" {
				listen = c.config.Listen
			}

			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			c.Logger.Info("starting layout service",
				"listen", listen,
				"backend", c.config.Storage.Backend,
			)
			return server.New(listen, store, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}
