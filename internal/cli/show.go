package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/app"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var viewAs string

	cmd := &cobra.Command{
		Use:   "show [campaign]",
		Short: "Show a campaign and the actions available to you",
		Long: `Show detailed information about a campaign: goal, amount raised,
progress, deadline, your donation, recent donations and which action
(donate, withdraw or refund) you can take.

The campaign is given as a contract address or a registry id. Without an
argument an interactive picker is shown.

Reads are made on behalf of the connected wallet. Use --as to view the
campaign as another address without a wallet.`,
		Example: `  crowdfund show 0
  crowdfund show 0x1234567890abcdef...
  crowdfund show 3 --as 0xabcd...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			address, err := app.ResolveCampaign.Run(cmd.Context(), argOrEmpty(args))
			if err != nil {
				return err
			}

			params := usecase.LoadCampaignParams{Address: address}
			if viewAs != "" {
				addr, err := domain.ParseAddress("as", viewAs)
				if err != nil {
					return err
				}
				params.ViewAs = &addr
			}

			snapshot, err := app.LoadCampaign.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			if !snapshot.Ready {
				return domain.ErrNotConnected
			}

			return renderCampaign(cmd, app, snapshot)
		},
	}

	cmd.Flags().StringVar(&viewAs, "as", "", "View the campaign as this address")

	return cmd
}

// renderCampaign prints a snapshot with the caller's eligibility
func renderCampaign(cmd *cobra.Command, a *app.App, snapshot *domain.CampaignSnapshot) error {
	view := render.NewCampaignView(snapshot, a.Session.Eligibility(snapshot))

	if ok, err := writeStructured(cmd, a, view); ok || err != nil {
		if err != nil {
			return err
		}
		return snapshot.Err
	}

	renderer := render.NewCampaignRenderer(cmd.OutOrStdout(), useColor(cmd), currency(a))
	if err := renderer.Render(view); err != nil {
		return err
	}
	if !snapshot.HasData() {
		return resultError(snapshot.Err)
	}
	return nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
