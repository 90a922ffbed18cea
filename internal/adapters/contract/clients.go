package contract

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/bindings"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// ClientFactory builds contract clients from an address and an ABI
// descriptor. It implements usecase.ContractClientFactory for the Factory
// and Campaign roles.
type ClientFactory struct {
	backend  Backend
	factory  common.Address
	campaign abi.ABI
	registry abi.ABI
	opts     Options
	log      *slog.Logger
}

// NewClientFactory creates a ClientFactory for the configured registry
func NewClientFactory(backend Backend, cfg *config.RuntimeConfig, log *slog.Logger) *ClientFactory {
	return &ClientFactory{
		backend:  backend,
		factory:  cfg.FactoryAddress,
		campaign: bindings.CampaignABI(),
		registry: bindings.FactoryABI(),
		opts: Options{
			ConfirmTimeout: cfg.ConfirmTimeout,
			PollInterval:   cfg.ConfirmPollInterval,
		},
		log: log,
	}
}

// Client returns an untyped invoker for any contract
func (f *ClientFactory) Client(address common.Address, descriptor abi.ABI, caller common.Address) *Invoker {
	return NewInvoker(f.backend, address, descriptor, caller, f.opts, f.log)
}

// Campaign returns a typed client for a Campaign contract
func (f *ClientFactory) Campaign(address, caller common.Address) usecase.CampaignContract {
	return &CampaignClient{invoker: f.Client(address, f.campaign, caller)}
}

// Factory returns a typed client for the registry
func (f *ClientFactory) Factory(caller common.Address) usecase.FactoryContract {
	return &FactoryClient{invoker: f.Client(f.factory, f.registry, caller)}
}

// Call is a typed pending call. It decodes the raw outputs with convert.
type Call[T any] struct {
	call    *PendingCall
	convert func([]any) (T, error)
}

func newCall[T any](call *PendingCall, convert func([]any) (T, error)) *Call[T] {
	return &Call[T]{call: call, convert: convert}
}

// Simulate runs the call read-only and returns the typed result
func (c *Call[T]) Simulate(ctx context.Context) (T, error) {
	var zero T
	values, err := c.call.Simulate(ctx)
	if err != nil {
		return zero, err
	}
	v, err := c.convert(values)
	if err != nil {
		return zero, &domain.ResultDecodeError{Op: c.call.Name(), Err: err}
	}
	return v, nil
}

// SignAndSend submits the call. The receipt's Result holds the typed result.
func (c *Call[T]) SignAndSend(ctx context.Context, signer domain.Signer) (*domain.TxReceipt, error) {
	receipt, err := c.call.SignAndSend(ctx, signer)
	if err != nil {
		return receipt, err
	}
	values, _ := receipt.Result.([]any)
	v, err := c.convert(values)
	if err != nil {
		receipt.Result = nil
		return receipt, &domain.ResultDecodeError{Op: c.call.Name(), TxHash: receipt.Hash, Err: err}
	}
	receipt.Result = v
	return receipt, nil
}

// single converts the first output to T
func single[T any](values []any) (v T, err error) {
	if len(values) == 0 {
		return v, fmt.Errorf("abi: attempting to unmarshal an empty string while arguments are expected")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("abi: cannot convert %T: %v", values[0], r)
		}
	}()
	return *abi.ConvertType(values[0], new(T)).(*T), nil
}

func none(values []any) (struct{}, error) {
	return struct{}{}, nil
}

// CampaignClient is the typed client of a Campaign contract
type CampaignClient struct {
	invoker *Invoker
}

func (c *CampaignClient) GetMetadata() usecase.PendingCall[*domain.CampaignMetadata] {
	return newCall(c.invoker.Call(bindings.CampaignGetMetadata), func(values []any) (*domain.CampaignMetadata, error) {
		t, err := single[bindings.CampaignMetadataTuple](values)
		if err != nil {
			return nil, err
		}
		return &domain.CampaignMetadata{
			Title:       t.Title,
			Description: t.Description,
			Category:    domain.Category(t.Category),
			Owner:       t.Owner,
			Goal:        t.Goal,
			Deadline:    t.Deadline,
			CreatedAt:   t.CreatedAt,
		}, nil
	})
}

func (c *CampaignClient) GetTotalRaised() usecase.PendingCall[*big.Int] {
	return newCall(c.invoker.Call(bindings.CampaignGetTotalRaised), single[*big.Int])
}

func (c *CampaignClient) GetDonation(donor common.Address) usecase.PendingCall[*big.Int] {
	return newCall(c.invoker.Call(bindings.CampaignGetDonation, donor), single[*big.Int])
}

func (c *CampaignClient) GetDonationHistory(limit, offset uint32) usecase.PendingCall[[]domain.DonationRecord] {
	return newCall(c.invoker.Call(bindings.CampaignGetDonationHistory, limit, offset), func(values []any) ([]domain.DonationRecord, error) {
		records, err := single[[]bindings.DonationRecordTuple](values)
		if err != nil {
			return nil, err
		}
		return lo.Map(records, func(r bindings.DonationRecordTuple, _ int) domain.DonationRecord {
			return domain.DonationRecord{Donor: r.Donor, Amount: r.Amount, Timestamp: r.Timestamp}
		}), nil
	})
}

func (c *CampaignClient) IsEnded() usecase.PendingCall[bool] {
	return newCall(c.invoker.Call(bindings.CampaignIsEnded), single[bool])
}

func (c *CampaignClient) IsGoalReached() usecase.PendingCall[bool] {
	return newCall(c.invoker.Call(bindings.CampaignIsGoalReached), single[bool])
}

func (c *CampaignClient) GetProgressPercentage() usecase.PendingCall[*big.Int] {
	return newCall(c.invoker.Call(bindings.CampaignGetProgressPercentage), single[*big.Int])
}

func (c *CampaignClient) Donate(donor common.Address, amount *big.Int) usecase.PendingCall[struct{}] {
	return newCall(c.invoker.Call(bindings.CampaignDonate, donor, amount), none)
}

func (c *CampaignClient) Withdraw(owner common.Address) usecase.PendingCall[*big.Int] {
	return newCall(c.invoker.Call(bindings.CampaignWithdraw, owner), single[*big.Int])
}

func (c *CampaignClient) Refund(donor common.Address) usecase.PendingCall[*big.Int] {
	return newCall(c.invoker.Call(bindings.CampaignRefund, donor), single[*big.Int])
}

// FactoryClient is the typed client of the campaign registry
type FactoryClient struct {
	invoker *Invoker
}

func (f *FactoryClient) CreateCampaign(args domain.CreateCampaignArgs) usecase.PendingCall[uint64] {
	call := f.invoker.Call(bindings.FactoryCreateCampaign,
		args.Owner,
		args.Title,
		args.Description,
		args.Goal,
		args.Deadline,
		string(args.Category),
		args.CurrencyToken,
		[32]byte(args.CampaignCodeHash),
	)
	return newCall(call, single[uint64])
}

func (f *FactoryClient) GetCampaign(id uint64) usecase.PendingCall[common.Address] {
	return newCall(f.invoker.Call(bindings.FactoryGetCampaign, id), single[common.Address])
}

func (f *FactoryClient) GetAllCampaigns() usecase.PendingCall[[]domain.CampaignInfo] {
	return newCall(f.invoker.Call(bindings.FactoryGetAllCampaigns), func(values []any) ([]domain.CampaignInfo, error) {
		infos, err := single[[]bindings.CampaignInfoTuple](values)
		if err != nil {
			return nil, err
		}
		return lo.Map(infos, func(i bindings.CampaignInfoTuple, _ int) domain.CampaignInfo {
			return domain.CampaignInfo{
				ID:        i.Id,
				Address:   i.Address,
				Title:     i.Title,
				Category:  domain.Category(i.Category),
				Owner:     i.Owner,
				CreatedAt: i.CreatedAt,
			}
		}), nil
	})
}

func (f *FactoryClient) GetCampaignsByOwner(owner common.Address) usecase.PendingCall[[]uint64] {
	return newCall(f.invoker.Call(bindings.FactoryGetCampaignsByOwner, owner), single[[]uint64])
}

func (f *FactoryClient) GetCampaignCount() usecase.PendingCall[uint64] {
	return newCall(f.invoker.Call(bindings.FactoryGetCampaignCount), single[uint64])
}
