package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve line-spec resolution over HTTP",
		Long: `Serve the line-spec resolver as a JSON API.

Endpoints:
  GET  /healthz
  GET  /v1/tables/{family}
  POST /v1/linespec   {"curves":3,"family":"wxt","styles":[{"curve":3,"marker":"*"}]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Listening on %s", addr)
			return server.New(c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}
