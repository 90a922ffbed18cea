package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// ResolveCampaign turns a user reference into a campaign address. A
// reference is a hex address, a registry id, or empty for an interactive pick.
type ResolveCampaign struct {
	config    *config.RuntimeConfig
	contracts ContractClientFactory
	session   *Session
	selector  CampaignSelector
}

// NewResolveCampaign creates a new ResolveCampaign use case
func NewResolveCampaign(cfg *config.RuntimeConfig, contracts ContractClientFactory, session *Session, selector CampaignSelector) *ResolveCampaign {
	return &ResolveCampaign{
		config:    cfg,
		contracts: contracts,
		session:   session,
		selector:  selector,
	}
}

// Run resolves the reference
func (uc *ResolveCampaign) Run(ctx context.Context, ref string) (common.Address, error) {
	ref = strings.TrimSpace(ref)
	caller := uc.session.Identity().Address

	if ref == "" {
		return uc.pick(ctx, caller)
	}

	if strings.HasPrefix(ref, "0x") || strings.HasPrefix(ref, "0X") {
		return domain.ParseAddress("campaign", ref)
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(ref, "#"), 10, 64)
	if err != nil {
		return common.Address{}, &domain.ValidationError{
			Field:   "campaign",
			Message: fmt.Sprintf("invalid campaign reference %q: expected an address or a numeric id", ref),
		}
	}

	addr, err := uc.contracts.Factory(caller).GetCampaign(id).Simulate(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to resolve campaign #%d: %w", id, err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("campaign #%d: %w", id, domain.ErrNotFound)
	}
	return addr, nil
}

func (uc *ResolveCampaign) pick(ctx context.Context, caller common.Address) (common.Address, error) {
	if uc.config.NonInteractive || uc.selector == nil {
		return common.Address{}, &domain.ValidationError{
			Field:   "campaign",
			Message: "a campaign address or id is required in non-interactive mode",
		}
	}

	campaigns, err := uc.contracts.Factory(caller).GetAllCampaigns().Simulate(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to load campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return common.Address{}, fmt.Errorf("no campaigns: %w", domain.ErrNotFound)
	}

	selected, err := uc.selector.SelectCampaign(ctx, campaigns, "Select campaign")
	if err != nil {
		return common.Address{}, err
	}
	return selected.Address, nil
}
