package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// Wallet is the externally owned signing capability. The core never
// inspects key material.
type Wallet interface {
	Identity() domain.WalletIdentity
	Connect(ctx context.Context) (domain.WalletIdentity, error)
	Disconnect()
	SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error)
}

// PendingCall is a prepared contract call. Simulate evaluates it read-only;
// SignAndSend signs, submits and waits for confirmation.
type PendingCall[T any] interface {
	Simulate(ctx context.Context) (T, error)
	SignAndSend(ctx context.Context, signer domain.Signer) (*domain.TxReceipt, error)
}

// CampaignContract is a typed client for one Campaign contract instance
type CampaignContract interface {
	GetMetadata() PendingCall[*domain.CampaignMetadata]
	GetTotalRaised() PendingCall[*big.Int]
	GetDonation(donor common.Address) PendingCall[*big.Int]
	GetDonationHistory(limit, offset uint32) PendingCall[[]domain.DonationRecord]
	IsEnded() PendingCall[bool]
	IsGoalReached() PendingCall[bool]
	GetProgressPercentage() PendingCall[*big.Int]
	Donate(donor common.Address, amount *big.Int) PendingCall[struct{}]
	Withdraw(owner common.Address) PendingCall[*big.Int]
	Refund(donor common.Address) PendingCall[*big.Int]
}

// FactoryContract is a typed client for the campaign registry
type FactoryContract interface {
	CreateCampaign(args domain.CreateCampaignArgs) PendingCall[uint64]
	GetCampaign(id uint64) PendingCall[common.Address]
	GetAllCampaigns() PendingCall[[]domain.CampaignInfo]
	GetCampaignsByOwner(owner common.Address) PendingCall[[]uint64]
	GetCampaignCount() PendingCall[uint64]
}

// ContractClientFactory builds typed contract clients. Calls are simulated
// from the given caller address.
type ContractClientFactory interface {
	Campaign(address, caller common.Address) CampaignContract
	Factory(caller common.Address) FactoryContract
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// CampaignSelector handles interactive selection of campaigns
type CampaignSelector interface {
	SelectCampaign(ctx context.Context, campaigns []domain.CampaignInfo, prompt string) (*domain.CampaignInfo, error)
}

// Clock returns the current time
type Clock func() time.Time

// NetworkChecker verifies the endpoint and the registry deployment
type NetworkChecker interface {
	CheckFactory(ctx context.Context, factory common.Address) (*domain.NetworkHealth, error)
}

// NetworkCatalog lists the networks declared in the project file
type NetworkCatalog interface {
	Networks(ctx context.Context) ([]NetworkStatus, error)
}
