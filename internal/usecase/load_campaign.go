package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

const opLoadCampaign = "load_campaign"

// LoadCampaignParams contains parameters for loading a campaign snapshot
type LoadCampaignParams struct {
	Address common.Address
	// Previous is the snapshot currently displayed. Its data is kept, flagged
	// stale, when the refresh fails.
	Previous *domain.CampaignSnapshot
	// ViewAs reads the campaign on behalf of an address other than the
	// connected wallet. Used by the read-only HTTP API; such reads are not
	// tracked in flight.
	ViewAs *common.Address
}

// LoadCampaign assembles a campaign snapshot from concurrent contract reads
type LoadCampaign struct {
	config    *config.RuntimeConfig
	contracts ContractClientFactory
	session   *Session
	inflight  *InFlight
	log       *slog.Logger
	now       Clock
}

// NewLoadCampaign creates a new LoadCampaign use case
func NewLoadCampaign(
	cfg *config.RuntimeConfig,
	contracts ContractClientFactory,
	session *Session,
	inflight *InFlight,
	log *slog.Logger,
) *LoadCampaign {
	return &LoadCampaign{
		config:    cfg,
		contracts: contracts,
		session:   session,
		inflight:  inflight,
		log:       log,
		now:       time.Now,
	}
}

// Run fetches a fresh snapshot. Fetch failures are reported on the snapshot,
// never as a returned error; the only returned error is domain.ErrStaleIdentity
// when the result was superseded and must be discarded.
func (uc *LoadCampaign) Run(ctx context.Context, params LoadCampaignParams) (*domain.CampaignSnapshot, error) {
	caller := uc.session.Identity()
	if params.ViewAs != nil {
		caller = domain.WalletIdentity{Address: *params.ViewAs, Connected: true}
	}

	if params.Address == (common.Address{}) || !caller.IsConnected() {
		return &domain.CampaignSnapshot{Address: params.Address, Caller: caller}, nil
	}

	// Reads on behalf of another address are independent requests and are
	// neither superseded nor tied to the wallet identity
	if params.ViewAs != nil {
		snapshot, err := uc.fetch(ctx, params.Address, caller)
		if err != nil {
			uc.log.Warn("failed to load campaign", "campaign", params.Address.Hex(), "caller", caller.Address.Hex(), "error", err)
			return failedSnapshot(params, caller, err, uc.now()), nil
		}
		return snapshot, nil
	}

	op := uc.inflight.Supersede(ctx, OperationKey{
		Operation: opLoadCampaign,
		Campaign:  params.Address,
		Wallet:    caller.Address,
	})

	snapshot, err := uc.fetch(op.Context(), params.Address, caller)
	if err = op.Finish(err); errors.Is(err, domain.ErrStaleIdentity) {
		return nil, err
	}
	if err != nil {
		uc.log.Warn("failed to load campaign", "campaign", params.Address.Hex(), "caller", caller.Address.Hex(), "error", err)
		return failedSnapshot(params, caller, err, uc.now()), nil
	}
	return snapshot, nil
}

func (uc *LoadCampaign) fetch(ctx context.Context, address common.Address, caller domain.WalletIdentity) (*domain.CampaignSnapshot, error) {
	limit := uc.config.HistoryLimit
	if limit == 0 {
		limit = domain.DefaultHistoryLimit
	}

	campaign := uc.contracts.Campaign(address, caller.Address)

	var (
		metadata    *domain.CampaignMetadata
		totalRaised *big.Int
		isEnded     bool
		goalReached bool
		progress    *big.Int
		history     []domain.DonationRecord
		donation    *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metadata, err = campaign.GetMetadata().Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalRaised, err = campaign.GetTotalRaised().Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		isEnded, err = campaign.IsEnded().Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		goalReached, err = campaign.IsGoalReached().Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		progress, err = campaign.GetProgressPercentage().Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		history, err = campaign.GetDonationHistory(limit, 0).Simulate(gctx)
		return err
	})
	g.Go(func() (err error) {
		donation, err = campaign.GetDonation(caller.Address).Simulate(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if metadata == nil {
		return nil, &domain.ResultDecodeError{Op: "get_metadata", Err: errors.New("empty metadata")}
	}
	if totalRaised == nil {
		totalRaised = new(big.Int)
	}
	if donation == nil {
		donation = new(big.Int)
	}
	if history == nil {
		history = []domain.DonationRecord{}
	}

	// The contract's percentage is authoritative; it is only computed locally
	// when the read returned nothing
	computed := domain.ProgressPercentage(totalRaised, metadata.Goal)
	if progress == nil {
		progress = computed
	} else if progress.Cmp(computed) != 0 {
		uc.log.Debug("contract progress differs from computed value",
			"campaign", address.Hex(),
			"contract", progress.String(),
			"computed", computed.String(),
		)
	}

	return &domain.CampaignSnapshot{
		Address:  address,
		Caller:   caller,
		Metadata: metadata,
		State: domain.CampaignState{
			TotalRaised:        totalRaised,
			IsEnded:            isEnded,
			IsGoalReached:      goalReached,
			ProgressPercentage: progress,
			DonationHistory:    history,
			CallerDonation:     donation,
		},
		IsOwner:   metadata.Owner == caller.Address,
		Ready:     true,
		FetchedAt: uc.now(),
	}, nil
}

// failedSnapshot keeps the previously displayed data for the same campaign
// and caller, flagged stale. A failed first load carries no data.
func failedSnapshot(params LoadCampaignParams, caller domain.WalletIdentity, err error, now time.Time) *domain.CampaignSnapshot {
	prev := params.Previous
	if prev.HasData() && prev.Address == params.Address && prev.Caller.Address == caller.Address {
		s := *prev
		s.Stale = true
		s.Loading = false
		s.Err = err
		return &s
	}
	return &domain.CampaignSnapshot{
		Address:   params.Address,
		Caller:    caller,
		Ready:     true,
		Err:       err,
		FetchedAt: now,
	}
}
