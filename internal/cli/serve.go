package cli

import (
	"github.com/spf13/cobra"

	"github.com/critpathlabs/critpath/internal/server"
)

// newServeCmd creates the serve command exposing the analysis engine over
// HTTP. Each request is an independent invocation with its own graph and
// weights; the server holds no cross-request state.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the critical-path analysis over HTTP",
		Long: `Serve the critical-path analysis over HTTP.

POST /api/analyze accepts a JSON document with tasks and edges and returns
the critical edges, per-task schedule, and total duration. Append
?image=svg to receive the rendered diagram instead of JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			runner, err := newRunner(cfg, cfg.NoCache, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, logger)
			logger.Info("listening", "addr", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
