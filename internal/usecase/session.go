package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

type withdrawalKey struct {
	campaign common.Address
	wallet   common.Address
}

// Session is the client-side context of one process: the observed wallet
// identity and the transient hasWithdrawn flags. Nothing here is persisted
// and none of it is treated as contract state.
type Session struct {
	mu        sync.Mutex
	wallet    Wallet
	identity  domain.WalletIdentity
	withdrawn map[withdrawalKey]struct{}
	inflight  *InFlight
	log       *slog.Logger
}

// NewSession creates a session around the given wallet
func NewSession(wallet Wallet, inflight *InFlight, log *slog.Logger) *Session {
	return &Session{
		wallet:    wallet,
		identity:  wallet.Identity(),
		withdrawn: make(map[withdrawalKey]struct{}),
		inflight:  inflight,
		log:       log,
	}
}

// Identity returns the current wallet identity. If it changed since it was
// last observed, all work keyed to the previous identity is cancelled.
func (s *Session) Identity() domain.WalletIdentity {
	return s.observe(s.wallet.Identity())
}

// Connect connects the wallet and returns the new identity
func (s *Session) Connect(ctx context.Context) (domain.WalletIdentity, error) {
	id, err := s.wallet.Connect(ctx)
	if err != nil {
		return s.Identity(), fmt.Errorf("failed to connect wallet: %w", err)
	}
	return s.observe(id), nil
}

// Disconnect disconnects the wallet
func (s *Session) Disconnect() {
	s.wallet.Disconnect()
	s.observe(domain.Disconnected)
}

// Signer returns the wallet's signing capability
func (s *Session) Signer() domain.Signer {
	return func(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
		return s.wallet.SignTransaction(ctx, tx)
	}
}

// HasWithdrawn reports whether a withdrawal was submitted for the campaign
// by the wallet during this session
func (s *Session) HasWithdrawn(campaign, wallet common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.withdrawn[withdrawalKey{campaign, wallet}]
	return ok
}

// MarkWithdrawn records a submitted withdrawal for the rest of the session
func (s *Session) MarkWithdrawn(campaign, wallet common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withdrawn[withdrawalKey{campaign, wallet}] = struct{}{}
}

func (s *Session) observe(id domain.WalletIdentity) domain.WalletIdentity {
	s.mu.Lock()
	prev := s.identity
	s.identity = id
	s.mu.Unlock()

	if prev.Address != id.Address || prev.Connected != id.Connected {
		s.log.Debug("wallet identity changed", "from", prev.Address.Hex(), "to", id.Address.Hex())
		s.inflight.CancelWallet(prev.Address)
	}
	return id
}

// Eligibility evaluates the actions available to the snapshot's caller,
// including the session's withdrawal flags
func (s *Session) Eligibility(snapshot *domain.CampaignSnapshot) domain.Eligibility {
	if snapshot == nil {
		return domain.Eligibility{Phase: domain.PhaseUnknown}
	}
	return domain.Evaluate(snapshot, snapshot.Caller, s.HasWithdrawn(snapshot.Address, snapshot.Caller.Address))
}
