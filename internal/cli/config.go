package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration resolved from flags, CROWDFUND_* environment
variables, .env files and crowdfund.toml. Secrets are never printed.

Available subcommands:
  config           Show current config
  config networks  List networks declared in crowdfund.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result := app.ShowConfig.Run()
			if ok, err := writeStructured(cmd, app, result); ok || err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
		},
	}

	cmd.AddCommand(NewConfigNetworksCmd())

	return cmd
}

// NewConfigNetworksCmd creates the config networks subcommand
func NewConfigNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "networks",
		Aliases: []string{"ls"},
		Short:   "List networks declared in crowdfund.toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := writeStructured(cmd, app, result); ok || err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderNetworks(result)
		},
	}
}
