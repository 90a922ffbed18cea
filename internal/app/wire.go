//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters"
	"github.com/trebuchet-org/crowdfund-cli/internal/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/logging"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.NewNetworkCatalog,
		wire.Bind(new(usecase.NetworkCatalog), new(*config.NetworkCatalog)),
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Shared state
		usecase.NewInFlight,
		usecase.NewSession,

		// Use cases
		usecase.NewListCampaigns,
		usecase.NewLoadCampaign,
		usecase.NewResolveCampaign,
		usecase.NewSubmitAction,
		usecase.NewDonationHistory,
		usecase.NewCheckNetwork,
		usecase.NewShowConfig,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
