package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/app"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crowdfund",
		Short: "Command line client for on-chain crowdfunding campaigns",
		Long: `crowdfund browses, creates and funds crowdfunding campaigns deployed
through a campaign factory contract.

Campaigns are read from the configured network. Donating, withdrawing,
refunding and creating campaigns require a wallet ([wallet] in crowdfund.toml
or CROWDFUND_WALLET_* variables).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Set up viper with every flag of the invoked command bound
			v := config.SetupViper(config.FindProjectRoot(), cmd.Flags())

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Connect the configured wallet; read commands work without one
			if appInstance.Config.Wallet.Type != "" {
				if _, err := appInstance.Session.Connect(cmd.Context()); err != nil {
					appInstance.Log.Warn("wallet not connected", "error", err)
				}
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured. watch and serve run until interrupted.
			if appInstance.Config.Timeout > 0 && cmd.Annotations["long-running"] != "true" {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil {
				a.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from crowdfund.toml [networks]")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint, overrides the network's rpc_url")
	rootCmd.PersistentFlags().String("factory-address", "", "Campaign factory address, overrides the network's factory_address")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table, json, yaml)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Campaign Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "actions",
		Title: "Transaction Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Campaign commands
	for _, cmd := range []*cobra.Command{NewListCmd(), NewShowCmd(), NewHistoryCmd(), NewWatchCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Transaction commands
	for _, cmd := range []*cobra.Command{NewCreateCmd(), NewDonateCmd(), NewWithdrawCmd(), NewRefundCmd()} {
		cmd.GroupID = "actions"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{NewStatusCmd(), NewServeCmd(), NewConfigCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// useColor reports whether output to the command's stdout should be colored
func useColor(cmd *cobra.Command) bool {
	if color.NoColor {
		return false
	}
	f, ok := cmd.OutOrStdout().(interface{ Fd() uintptr })
	return ok && isatty.IsTerminal(f.Fd())
}

// currency returns the configured display currency
func currency(a *app.App) domain.Currency {
	return domain.NewCurrency(a.Config.CurrencySymbol, a.Config.UnitsPerToken)
}

// writeStructured writes v when --output is json or yaml
func writeStructured(cmd *cobra.Command, a *app.App, v any) (bool, error) {
	return render.WriteStructured(cmd.OutOrStdout(), a.Config.Output, v)
}

// resultError turns a typed outcome into the command's exit status. The
// message itself has already been rendered.
func resultError(err error) error {
	if err == nil {
		return nil
	}
	return errAlreadyReported{err}
}

// errAlreadyReported marks errors whose message was already printed
type errAlreadyReported struct{ error }

func (e errAlreadyReported) Unwrap() error { return e.error }

// IsReported reports whether err was already printed by the command
func IsReported(err error) bool {
	var reported errAlreadyReported
	return errors.As(err, &reported)
}
