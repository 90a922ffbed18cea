package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxEndedReads bounds the concurrent is_ended reads of the active filter
const maxEndedReads = 8

// ListCampaignsParams contains parameters for listing campaigns
type ListCampaignsParams struct {
	Filter domain.CampaignFilter
	// Owner restricts the list to one owner via get_campaigns_by_owner
	Owner *common.Address
}

// CampaignListResult contains the result of listing campaigns. A failed
// registry read yields an empty list with Err set.
type CampaignListResult struct {
	Campaigns []domain.CampaignInfo `json:"campaigns" yaml:"campaigns"`
	Filter    domain.CampaignFilter `json:"filter" yaml:"filter"`
	Caller    common.Address        `json:"caller" yaml:"caller"`
	Err       error                 `json:"-" yaml:"-"`
}

// ListCampaigns is the use case for listing campaigns from the registry
type ListCampaigns struct {
	contracts ContractClientFactory
	session   *Session
	sink      ProgressSink
	log       *slog.Logger
}

// NewListCampaigns creates a new ListCampaigns use case
func NewListCampaigns(contracts ContractClientFactory, session *Session, sink ProgressSink, log *slog.Logger) *ListCampaigns {
	return &ListCampaigns{
		contracts: contracts,
		session:   session,
		sink:      sink,
		log:       log,
	}
}

// Run executes the list campaigns use case
func (uc *ListCampaigns) Run(ctx context.Context, params ListCampaignsParams) *CampaignListResult {
	caller := uc.session.Identity()
	result := &CampaignListResult{
		Campaigns: []domain.CampaignInfo{},
		Filter:    params.Filter,
		Caller:    caller.Address,
	}
	if result.Filter == "" {
		result.Filter = domain.FilterAll
	}

	if result.Filter == domain.FilterMine && !caller.IsConnected() {
		result.Err = domain.ErrNotConnected
		return result
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading campaigns from registry",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})

	factory := uc.contracts.Factory(caller.Address)

	all, err := factory.GetAllCampaigns().Simulate(ctx)
	if err != nil {
		uc.log.Warn("failed to load campaigns", "error", err)
		result.Err = err
		return result
	}

	campaigns := all
	if params.Owner != nil {
		ids, err := factory.GetCampaignsByOwner(*params.Owner).Simulate(ctx)
		if err != nil {
			uc.log.Warn("failed to load campaigns by owner", "owner", params.Owner.Hex(), "error", err)
			result.Err = err
			return result
		}
		campaigns = domain.WithIDs(campaigns, ids)
	}

	switch result.Filter {
	case domain.FilterMine:
		campaigns = domain.OwnedBy(campaigns, caller.Address)
	case domain.FilterActive:
		campaigns = domain.NotEnded(campaigns, uc.endedCampaigns(ctx, campaigns, caller.Address))
	}

	if campaigns != nil {
		result.Campaigns = campaigns
	}
	return result
}

// Count returns the number of campaigns in the registry
func (uc *ListCampaigns) Count(ctx context.Context) (uint64, error) {
	return uc.contracts.Factory(uc.session.Identity().Address).GetCampaignCount().Simulate(ctx)
}

// endedCampaigns reads is_ended for every campaign. Campaigns whose read
// fails are left out of the map and therefore kept by the filter.
func (uc *ListCampaigns) endedCampaigns(ctx context.Context, campaigns []domain.CampaignInfo, caller common.Address) map[common.Address]bool {
	var mu sync.Mutex
	ended := make(map[common.Address]bool, len(campaigns))

	var g errgroup.Group
	g.SetLimit(maxEndedReads)
	for _, c := range campaigns {
		g.Go(func() error {
			isEnded, err := uc.contracts.Campaign(c.Address, caller).IsEnded().Simulate(ctx)
			if err != nil {
				uc.log.Warn("failed to read campaign status", "campaign", c.Address.Hex(), "error", err)
				return nil
			}
			mu.Lock()
			ended[c.Address] = isEnded
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return ended
}
