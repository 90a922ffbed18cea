package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON API for campaigns",
		Long: `Serve the campaign list, campaign snapshots with eligibility and donation
history over HTTP for a browser front end.

Endpoints:
  GET /healthz
  GET /api/v1/campaigns?filter=all|my|active&caller=0x..&owner=0x..
  GET /api/v1/campaigns/count
  GET /api/v1/campaigns/{address or id}?caller=0x..
  GET /api/v1/campaigns/{address or id}/history?limit=20&offset=0

The API never signs transactions.`,
		Example: `  crowdfund serve --addr :8080 --allowed-origins http://localhost:5173`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"long-running": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.APIServer.ListenAndServe(ctx)
		},
	}

	// Bound to serve.addr and serve.allowed_origins
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origins (default *)")

	return cmd
}
