package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

var (
	ownerAddr    = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	donorAddr    = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	campaignAddr = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	txHash       = common.HexToHash("0xfeed")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCall is a PendingCall returning canned values
type fakeCall[T any] struct {
	value   T
	err     error
	receipt *domain.TxReceipt
	sendErr error

	// broadcastErr fails the call after signing, before the node accepts it
	broadcastErr error

	// hook runs before the call returns; a non-nil error replaces the result
	hook func(ctx context.Context) error
}

func (f *fakeCall[T]) Simulate(ctx context.Context) (T, error) {
	if f.hook != nil {
		if err := f.hook(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
	return f.value, f.err
}

func (f *fakeCall[T]) SignAndSend(ctx context.Context, signer domain.Signer) (*domain.TxReceipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := signer(ctx, types.NewTx(&types.LegacyTx{Nonce: 1})); err != nil {
		return nil, err
	}
	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	domain.NotifySent(ctx, txHash)
	if f.hook != nil {
		if err := f.hook(ctx); err != nil {
			return nil, err
		}
	}
	return f.receipt, f.sendErr
}

// fakeCampaign is an in-memory Campaign contract
type fakeCampaign struct {
	mu sync.Mutex

	metadata  *domain.CampaignMetadata
	raised    *big.Int
	ended     bool
	reached   bool
	progress  *big.Int
	history   []domain.DonationRecord
	donations map[common.Address]*big.Int
	readErr   error
	endedErr  error

	metadataHook func(ctx context.Context) error

	write      fakeCall[struct{}]
	writeValue *big.Int

	donated  *big.Int
	withdraw int
	refund   int
}

func newFakeCampaign(owner common.Address, goal, raised int64) *fakeCampaign {
	return &fakeCampaign{
		metadata: &domain.CampaignMetadata{
			Title:    "Community garden",
			Category: domain.CategoryCommunity,
			Owner:    owner,
			Goal:     big.NewInt(goal),
			Deadline: 1_900_000_000,
		},
		raised:    big.NewInt(raised),
		progress:  domain.ProgressPercentage(big.NewInt(raised), big.NewInt(goal)),
		donations: map[common.Address]*big.Int{},
		write:     fakeCall[struct{}]{receipt: &domain.TxReceipt{Hash: txHash, Status: 1}},
	}
}

func (c *fakeCampaign) GetMetadata() usecase.PendingCall[*domain.CampaignMetadata] {
	return &fakeCall[*domain.CampaignMetadata]{value: c.metadata, err: c.readErr, hook: c.metadataHook}
}

func (c *fakeCampaign) GetTotalRaised() usecase.PendingCall[*big.Int] {
	return &fakeCall[*big.Int]{value: c.raised, err: c.readErr}
}

func (c *fakeCampaign) GetDonation(donor common.Address) usecase.PendingCall[*big.Int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &fakeCall[*big.Int]{value: c.donations[donor], err: c.readErr}
}

func (c *fakeCampaign) GetDonationHistory(limit, offset uint32) usecase.PendingCall[[]domain.DonationRecord] {
	return &fakeCall[[]domain.DonationRecord]{value: c.history, err: c.readErr}
}

func (c *fakeCampaign) IsEnded() usecase.PendingCall[bool] {
	err := c.readErr
	if c.endedErr != nil {
		err = c.endedErr
	}
	return &fakeCall[bool]{value: c.ended, err: err}
}

func (c *fakeCampaign) IsGoalReached() usecase.PendingCall[bool] {
	return &fakeCall[bool]{value: c.reached, err: c.readErr}
}

func (c *fakeCampaign) GetProgressPercentage() usecase.PendingCall[*big.Int] {
	return &fakeCall[*big.Int]{value: c.progress, err: c.readErr}
}

func (c *fakeCampaign) Donate(donor common.Address, amount *big.Int) usecase.PendingCall[struct{}] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.donated = amount
	call := c.write
	return &call
}

func (c *fakeCampaign) Withdraw(owner common.Address) usecase.PendingCall[*big.Int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.withdraw++
	return &fakeCall[*big.Int]{value: c.writeValue, err: c.write.err, receipt: c.write.receipt, sendErr: c.write.sendErr, broadcastErr: c.write.broadcastErr, hook: c.write.hook}
}

func (c *fakeCampaign) Refund(donor common.Address) usecase.PendingCall[*big.Int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refund++
	return &fakeCall[*big.Int]{value: c.writeValue, err: c.write.err, receipt: c.write.receipt, sendErr: c.write.sendErr, broadcastErr: c.write.broadcastErr, hook: c.write.hook}
}

// fakeFactory is an in-memory registry
type fakeFactory struct {
	mu        sync.Mutex
	campaigns []domain.CampaignInfo
	byOwner   map[common.Address][]uint64
	listErr   error
	created   *domain.CreateCampaignArgs
	createID  uint64
	createErr error
}

func (f *fakeFactory) CreateCampaign(args domain.CreateCampaignArgs) usecase.PendingCall[uint64] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = &args
	return &fakeCall[uint64]{
		value:   f.createID,
		receipt: &domain.TxReceipt{Hash: txHash, Status: 1, Result: f.createID},
		sendErr: f.createErr,
	}
}

func (f *fakeFactory) GetCampaign(id uint64) usecase.PendingCall[common.Address] {
	for _, c := range f.campaigns {
		if c.ID == id {
			return &fakeCall[common.Address]{value: c.Address}
		}
	}
	return &fakeCall[common.Address]{}
}

func (f *fakeFactory) GetAllCampaigns() usecase.PendingCall[[]domain.CampaignInfo] {
	return &fakeCall[[]domain.CampaignInfo]{value: f.campaigns, err: f.listErr}
}

func (f *fakeFactory) GetCampaignsByOwner(owner common.Address) usecase.PendingCall[[]uint64] {
	return &fakeCall[[]uint64]{value: f.byOwner[owner], err: f.listErr}
}

func (f *fakeFactory) GetCampaignCount() usecase.PendingCall[uint64] {
	return &fakeCall[uint64]{value: uint64(len(f.campaigns)), err: f.listErr}
}

// fakeContracts routes client requests to the in-memory contracts
type fakeContracts struct {
	campaigns map[common.Address]*fakeCampaign
	factory   *fakeFactory
}

func newFakeContracts() *fakeContracts {
	return &fakeContracts{
		campaigns: map[common.Address]*fakeCampaign{},
		factory:   &fakeFactory{byOwner: map[common.Address][]uint64{}},
	}
}

func (f *fakeContracts) Campaign(address, caller common.Address) usecase.CampaignContract {
	if c, ok := f.campaigns[address]; ok {
		return c
	}
	return &fakeCampaign{readErr: &domain.ContractRejection{Op: "get_metadata", Reason: "no contract"}}
}

func (f *fakeContracts) Factory(caller common.Address) usecase.FactoryContract {
	return f.factory
}

// MockWallet is a mock implementation of Wallet with a switchable identity
type MockWallet struct {
	mock.Mock
	mu       sync.Mutex
	identity domain.WalletIdentity
}

func newMockWallet(addr common.Address) *MockWallet {
	w := &MockWallet{}
	if addr != (common.Address{}) {
		w.identity = domain.WalletIdentity{Address: addr, Connected: true}
	}
	return w
}

func (m *MockWallet) Identity() domain.WalletIdentity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *MockWallet) set(id domain.WalletIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = id
}

func (m *MockWallet) Connect(ctx context.Context) (domain.WalletIdentity, error) {
	args := m.Called(ctx)
	id := args.Get(0).(domain.WalletIdentity)
	if args.Error(1) == nil {
		m.set(id)
	}
	return id, args.Error(1)
}

func (m *MockWallet) Disconnect() {
	m.Called()
	m.set(domain.Disconnected)
}

func (m *MockWallet) SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Stage)
	}
	return out
}
