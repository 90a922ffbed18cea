package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the network connection and the factory deployment",
		Long: `Connect to the configured network, verify its chain ID and check that
the campaign factory is deployed at factory_address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			health, err := app.CheckNetwork.Run(cmd.Context())
			if err != nil {
				return err
			}

			if ok, err := writeStructured(cmd, app, health); ok || err != nil {
				return err
			}
			return render.NewNetworkRenderer(cmd.OutOrStdout()).Render(health)
		},
	}
}
