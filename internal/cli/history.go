package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var limit, offset uint32

	cmd := &cobra.Command{
		Use:   "history [campaign]",
		Short: "Page through a campaign's donation history",
		Long: `List donations to a campaign, newest first.

Use --limit and --offset to page through long histories.`,
		Example: `  crowdfund history 0
  crowdfund history 0 --limit 50 --offset 50`,
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

			result := app.DonationHistory.Run(cmd.Context(), usecase.DonationHistoryParams{
				Address: address,
				Limit:   limit,
				Offset:  offset,
			})

			if ok, err := writeStructured(cmd, app, result); ok || err != nil {
				if err != nil {
					return err
				}
				return result.Err
			}

			renderer := render.NewHistoryRenderer(cmd.OutOrStdout(), currency(app))
			if err := renderer.Render(result); err != nil {
				return err
			}
			return resultError(result.Err)
		},
	}

	cmd.Flags().Uint32Var(&limit, "limit", 0, "Number of donations per page (defaults to history_limit)")
	cmd.Flags().Uint32Var(&offset, "offset", 0, "Number of newest donations to skip")

	return cmd
}
