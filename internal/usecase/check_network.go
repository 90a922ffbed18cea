package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// CheckNetwork verifies that the configured endpoint answers on the expected
// chain and that the registry is deployed
type CheckNetwork struct {
	config    *config.RuntimeConfig
	checker   NetworkChecker
	contracts ContractClientFactory
	log       *slog.Logger
}

// NewCheckNetwork creates a new CheckNetwork use case
func NewCheckNetwork(cfg *config.RuntimeConfig, checker NetworkChecker, contracts ContractClientFactory, log *slog.Logger) *CheckNetwork {
	return &CheckNetwork{config: cfg, checker: checker, contracts: contracts, log: log}
}

// Run performs the check. The campaign count is filled in when the
// registry answers.
func (uc *CheckNetwork) Run(ctx context.Context) (*domain.NetworkHealth, error) {
	health, err := uc.checker.CheckFactory(ctx, uc.config.FactoryAddress)
	if err != nil {
		return nil, err
	}
	if !health.FactoryExists {
		return health, nil
	}

	count, err := uc.contracts.Factory(common.Address{}).GetCampaignCount().Simulate(ctx)
	if err != nil {
		uc.log.Warn("registry did not answer get_campaign_count", "factory", uc.config.FactoryAddress.Hex(), "error", err)
		health.Reason = domain.UserMessage(err)
		return health, nil
	}
	health.Campaigns = &count
	return health, nil
}
