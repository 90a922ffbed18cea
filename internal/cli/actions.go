package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/app"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// NewDonateCmd creates the donate command
func NewDonateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "donate <campaign> <amount>",
		Short: "Donate to an active campaign",
		Long: `Donate to a campaign that has not ended. The amount is given in
whole tokens, e.g. 2.5, and converted to the token's smallest unit.`,
		Example: `  crowdfund donate 0 25
  crowdfund donate 0x1234... 0.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[:1], usecase.ActionRequest{
				Action: domain.ActionDonate,
				Amount: args[1],
			})
		},
	}
}

// NewWithdrawCmd creates the withdraw command
func NewWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [campaign]",
		Short: "Withdraw the funds of a successful campaign you own",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args, usecase.ActionRequest{Action: domain.ActionWithdraw})
		},
	}
}

// NewRefundCmd creates the refund command
func NewRefundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refund [campaign]",
		Short: "Claim a refund from a campaign that missed its goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args, usecase.ActionRequest{Action: domain.ActionRefund})
		},
	}
}

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	var (
		title       string
		description string
		goal        string
		deadline    string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new campaign",
		Long: fmt.Sprintf(`Create a new campaign owned by the connected wallet.

Missing fields are prompted for unless --non-interactive is set.

Categories: %s`, strings.Join(lo.Map(domain.Categories(), func(c domain.Category, _ int) string {
			return fmt.Sprintf("%s (%s)", c, c.Label())
		}), ", ")),
		Example: `  crowdfund create --title "Community Garden" --description "Raised beds" \
    --goal 500 --deadline 30d --category community`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if !app.Config.NonInteractive {
				if err := promptCreateFields(&title, &description, &goal, &deadline, &category); err != nil {
					return err
				}
			}

			deadlineTime, err := parseDeadline(deadline, time.Now())
			if err != nil {
				return err
			}

			return submit(cmd, app, usecase.ActionRequest{
				Action: domain.ActionCreate,
				Create: domain.CreateCampaignInput{
					Title:       title,
					Description: description,
					Category:    category,
					Goal:        goal,
					Deadline:    deadlineTime,
				},
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", fmt.Sprintf("Campaign title (max %d characters)", domain.MaxTitleLength))
	cmd.Flags().StringVar(&description, "description", "", fmt.Sprintf("Campaign description (max %d characters)", domain.MaxDescriptionLength))
	cmd.Flags().StringVar(&goal, "goal", "", "Funding goal in tokens")
	cmd.Flags().StringVar(&deadline, "deadline", "", "End of the campaign (30d, 36h, 2026-12-31 or RFC3339)")
	cmd.Flags().StringVar(&category, "category", "", "Category code")

	return cmd
}

// runAction resolves the campaign argument and submits the action
func runAction(cmd *cobra.Command, args []string, req usecase.ActionRequest) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	req.Campaign, err = app.ResolveCampaign.Run(cmd.Context(), argOrEmpty(args))
	if err != nil {
		return err
	}
	return submit(cmd, app, req)
}

func submit(cmd *cobra.Command, a *app.App, req usecase.ActionRequest) error {
	result, err := a.SubmitAction.Run(cmd.Context(), req)
	if err != nil {
		// The wallet changed mid-flight; the result belongs to another identity
		if errors.Is(err, domain.ErrStaleIdentity) {
			return fmt.Errorf("wallet changed while the %s was in flight, result discarded", req.Action)
		}
		return err
	}

	if ok, err := writeStructured(cmd, a, result); ok || err != nil {
		if err != nil {
			return err
		}
		return result.Err
	}

	renderer := render.NewSubmissionRenderer(cmd.OutOrStdout(), useColor(cmd), currency(a))
	if err := renderer.Render(result); err != nil {
		return err
	}
	return resultError(result.Err)
}

// promptCreateFields asks for every empty campaign field
func promptCreateFields(title, description, goal, deadline, category *string) error {
	text := []struct {
		label string
		value *string
	}{
		{"Title", title},
		{"Description", description},
		{"Goal (tokens)", goal},
		{"Deadline (e.g. 30d, 2026-12-31)", deadline},
	}
	for _, field := range text {
		if *field.value != "" {
			continue
		}
		prompt := promptui.Prompt{Label: field.label}
		v, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		*field.value = v
	}

	if *category == "" {
		categories := domain.Categories()
		sel := promptui.Select{
			Label: "Category",
			Items: lo.Map(categories, func(c domain.Category, _ int) string { return c.Label() }),
			Size:  len(categories),
		}
		idx, _, err := sel.Run()
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		*category = string(categories[idx])
	}
	return nil
}
