package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		filter string
		owner  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List campaigns from the factory registry",
		Long: `List all campaigns registered with the campaign factory.

Filters:
  all     every campaign (default)
  my      campaigns owned by the connected wallet
  active  campaigns that have not ended yet`,
		Example: `  # List all campaigns
  crowdfund list

  # List your campaigns
  crowdfund list --filter my

  # List campaigns of one owner as JSON
  crowdfund list --owner 0x1234... -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			campaignFilter, err := domain.ParseCampaignFilter(filter)
			if err != nil {
				return err
			}
			params := usecase.ListCampaignsParams{Filter: campaignFilter}
			if owner != "" {
				addr, err := domain.ParseAddress("owner", owner)
				if err != nil {
					return err
				}
				params.Owner = &addr
			}

			result := app.ListCampaigns.Run(cmd.Context(), params)

			if ok, err := writeStructured(cmd, app, result); ok || err != nil {
				if err != nil {
					return err
				}
				return result.Err
			}

			renderer := render.NewCampaignsRenderer(cmd.OutOrStdout(), useColor(cmd))
			if err := renderer.Render(result); err != nil {
				return err
			}
			return resultError(result.Err)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter campaigns (all, my, active)")
	cmd.Flags().StringVar(&owner, "owner", "", "Only campaigns owned by this address")

	return cmd
}
