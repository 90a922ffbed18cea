package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// SubmissionState is a state of the action submission flow
type SubmissionState string

const (
	StateIdle              SubmissionState = "idle"
	StateValidating        SubmissionState = "validating"
	StateBuilding          SubmissionState = "building"
	StateAwaitingSignature SubmissionState = "awaiting_signature"
	StateSubmitted         SubmissionState = "submitted"
	StateSettling          SubmissionState = "settling"
	StateFailed            SubmissionState = "failed"
)

var stateMessages = map[SubmissionState]string{
	StateValidating:        "Validating input",
	StateBuilding:          "Preparing transaction",
	StateAwaitingSignature: "Waiting for wallet signature",
	StateSubmitted:         "Transaction submitted, waiting for confirmation",
	StateSettling:          "Refreshing campaign",
}

// ActionRequest describes one user-triggered state change
type ActionRequest struct {
	Action   domain.Action
	Campaign common.Address
	// Amount is the human-readable donation amount
	Amount string
	// Create is the campaign form, used by domain.ActionCreate
	Create domain.CreateCampaignInput
}

// SubmissionResult is the typed outcome of one submission
type SubmissionResult struct {
	Action      domain.Action            `json:"action" yaml:"action"`
	Campaign    common.Address           `json:"campaign" yaml:"campaign"`
	Transitions []SubmissionState        `json:"transitions" yaml:"transitions"`
	Receipt     *domain.TxReceipt        `json:"receipt,omitempty" yaml:"receipt,omitempty"`
	CampaignID  *uint64                  `json:"campaignId,omitempty" yaml:"campaignId,omitempty"`
	Benign      bool                     `json:"benignDecodeError,omitempty" yaml:"benignDecodeError,omitempty"`
	Snapshot    *domain.CampaignSnapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Err         error                    `json:"-" yaml:"-"`
	Message     string                   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Succeeded reports whether the action reached Settling
func (r *SubmissionResult) Succeeded() bool {
	return r.Err == nil
}

// Final returns the last state before returning to Idle
func (r *SubmissionResult) Final() SubmissionState {
	for i := len(r.Transitions) - 1; i >= 0; i-- {
		if r.Transitions[i] != StateIdle {
			return r.Transitions[i]
		}
	}
	return StateIdle
}

// SubmitAction runs the submission state machine for donate, withdraw,
// refund and create-campaign
type SubmitAction struct {
	config    *config.RuntimeConfig
	contracts ContractClientFactory
	session   *Session
	inflight  *InFlight
	loader    *LoadCampaign
	sink      ProgressSink
	log       *slog.Logger
	now       Clock
}

// NewSubmitAction creates a new SubmitAction use case
func NewSubmitAction(
	cfg *config.RuntimeConfig,
	contracts ContractClientFactory,
	session *Session,
	inflight *InFlight,
	loader *LoadCampaign,
	sink ProgressSink,
	log *slog.Logger,
) *SubmitAction {
	return &SubmitAction{
		config:    cfg,
		contracts: contracts,
		session:   session,
		inflight:  inflight,
		loader:    loader,
		sink:      sink,
		log:       log,
		now:       time.Now,
	}
}

// submission carries the per-run state of the flow
type submission struct {
	uc     *SubmitAction
	ctx    context.Context
	result *SubmissionResult
}

func (s *submission) enter(state SubmissionState) {
	s.result.Transitions = append(s.result.Transitions, state)
	s.uc.log.Debug("submission state", "action", s.result.Action, "campaign", s.result.Campaign.Hex(), "state", state)
	if state == StateIdle {
		return
	}
	s.uc.sink.OnProgress(s.ctx, ProgressEvent{
		Stage:   string(state),
		Message: stateMessages[state],
		Spinner: state == StateAwaitingSignature || state == StateSubmitted || state == StateSettling,
	})
}

func (s *submission) fail(err error) *SubmissionResult {
	s.result.Err = err
	s.result.Message = domain.UserMessage(err)
	s.enter(StateFailed)
	s.enter(StateIdle)
	s.uc.sink.Error(s.result.Message)
	return s.result
}

// Run executes the submission. Every failure is reported on the result;
// the only returned error is domain.ErrStaleIdentity when the wallet
// identity changed while the action was in flight.
func (uc *SubmitAction) Run(ctx context.Context, req ActionRequest) (*SubmissionResult, error) {
	s := &submission{
		uc:  uc,
		ctx: ctx,
		result: &SubmissionResult{
			Action:   req.Action,
			Campaign: req.Campaign,
		},
	}

	s.enter(StateValidating)

	caller := uc.session.Identity()
	if !caller.IsConnected() {
		return s.fail(domain.ErrNotConnected), nil
	}

	build, err := uc.validate(req, caller)
	if err != nil {
		return s.fail(err), nil
	}

	if err := uc.checkEligible(ctx, s, req); err != nil {
		if errors.Is(err, domain.ErrStaleIdentity) {
			return nil, err
		}
		return s.fail(err), nil
	}

	op, err := uc.inflight.Acquire(ctx, OperationKey{
		Operation: string(req.Action),
		Campaign:  req.Campaign,
		Wallet:    caller.Address,
	})
	if err != nil {
		return s.fail(err), nil
	}
	s.ctx = op.Context()

	s.enter(StateBuilding)
	call := build()

	s.enter(StateAwaitingSignature)
	signer := uc.session.Signer()
	sendCtx := domain.WithSentHook(s.ctx, func(common.Hash) {
		s.enter(StateSubmitted)
	})
	receipt, err := call.SignAndSend(sendCtx, func(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
		signed, err := signer(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSignatureRejected, err)
		}
		return signed, nil
	})
	if err != nil && domain.IsBenignDecodeError(err, uc.config.BenignDecodeSignatures) {
		var decodeErr *domain.ResultDecodeError
		errors.As(err, &decodeErr)
		uc.log.Info("treating result decode error as success", "action", req.Action, "tx", decodeErr.TxHash.Hex(), "error", err)
		if receipt == nil {
			receipt = &domain.TxReceipt{Hash: decodeErr.TxHash, Status: types.ReceiptStatusSuccessful}
		}
		s.result.Benign = true
		err = nil
	}
	if err != nil {
		if stale := op.Finish(err); errors.Is(stale, domain.ErrStaleIdentity) {
			return nil, stale
		}
		return s.fail(err), nil
	}
	s.result.Receipt = receipt

	s.enter(StateSettling)
	uc.settle(s, req, caller, receipt)

	if err := op.Finish(nil); err != nil {
		return nil, err
	}

	s.enter(StateIdle)
	s.result.Message = successMessage(req.Action)
	uc.sink.Info(s.result.Message)
	return s.result, nil
}

// validate checks the request and returns a builder for its pending call
func (uc *SubmitAction) validate(req ActionRequest, caller domain.WalletIdentity) (func() PendingCall[any], error) {
	currency := domain.NewCurrency(uc.config.CurrencySymbol, uc.config.UnitsPerToken)
	limits := domain.Limits{MinGoal: uc.config.MinGoal, MinDonation: uc.config.MinDonation}

	requireCampaign := func() error {
		if req.Campaign == (common.Address{}) {
			return &domain.ValidationError{Field: "campaign", Message: "campaign address is required"}
		}
		return nil
	}

	switch req.Action {
	case domain.ActionDonate:
		if err := requireCampaign(); err != nil {
			return nil, err
		}
		amount, err := domain.ValidateDonation(domain.DonationInput{Amount: req.Amount}, limits, currency)
		if err != nil {
			return nil, err
		}
		return func() PendingCall[any] {
			return erase(uc.contracts.Campaign(req.Campaign, caller.Address).Donate(caller.Address, amount))
		}, nil

	case domain.ActionWithdraw:
		if err := requireCampaign(); err != nil {
			return nil, err
		}
		return func() PendingCall[any] {
			return erase(uc.contracts.Campaign(req.Campaign, caller.Address).Withdraw(caller.Address))
		}, nil

	case domain.ActionRefund:
		if err := requireCampaign(); err != nil {
			return nil, err
		}
		return func() PendingCall[any] {
			return erase(uc.contracts.Campaign(req.Campaign, caller.Address).Refund(caller.Address))
		}, nil

	case domain.ActionCreate:
		args, err := domain.ValidateCreateCampaign(req.Create, uc.now(), limits, currency)
		if err != nil {
			return nil, err
		}
		args.Owner = caller.Address
		args.CurrencyToken = uc.config.CurrencyToken
		args.CampaignCodeHash = uc.config.CampaignCodeHash
		return func() PendingCall[any] {
			return erase(uc.contracts.Factory(caller.Address).CreateCampaign(*args))
		}, nil
	}

	return nil, &domain.ValidationError{Field: "action", Message: fmt.Sprintf("unsupported action %q", req.Action)}
}

// checkEligible refreshes the campaign and refuses an action the caller
// cannot take on it, including a withdrawal already submitted this session
func (uc *SubmitAction) checkEligible(ctx context.Context, s *submission, req ActionRequest) error {
	if req.Action == domain.ActionCreate || uc.loader == nil {
		return nil
	}

	snapshot, err := uc.loader.Run(ctx, LoadCampaignParams{Address: req.Campaign})
	if err != nil {
		return err
	}
	if snapshot.Err != nil {
		return snapshot.Err
	}
	if !snapshot.HasData() {
		return fmt.Errorf("campaign %s: %w", req.Campaign.Hex(), domain.ErrNotFound)
	}

	eligibility := uc.session.Eligibility(snapshot)
	if eligibility.Allows(req.Action) {
		return nil
	}
	s.result.Snapshot = snapshot
	uc.log.Debug("action refused", "action", req.Action, "campaign", req.Campaign.Hex(), "phase", eligibility.Phase, "notice", eligibility.Notice)

	message := fmt.Sprintf("%s is not available for this campaign", req.Action)
	if eligibility.Notice != domain.NoticeNone {
		message = fmt.Sprintf("%s (%s)", message, eligibility.Notice)
	}
	return &domain.ValidationError{Field: "action", Message: message}
}

// settle records session effects, waits the settle delay and refetches
// the campaign. Refetch failures are reported on the snapshot only.
func (uc *SubmitAction) settle(s *submission, req ActionRequest, caller domain.WalletIdentity, receipt *domain.TxReceipt) {
	campaign := req.Campaign

	switch req.Action {
	case domain.ActionWithdraw:
		uc.session.MarkWithdrawn(campaign, caller.Address)
	case domain.ActionCreate:
		if id, ok := receipt.Result.(uint64); ok {
			s.result.CampaignID = &id
			addr, err := uc.contracts.Factory(caller.Address).GetCampaign(id).Simulate(s.ctx)
			if err != nil {
				uc.log.Warn("failed to resolve created campaign", "id", id, "error", err)
			} else {
				campaign = addr
				s.result.Campaign = addr
			}
		}
	}

	if uc.config.SettleDelay > 0 {
		timer := time.NewTimer(uc.config.SettleDelay)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	if campaign == (common.Address{}) || uc.loader == nil {
		return
	}
	snapshot, err := uc.loader.Run(s.ctx, LoadCampaignParams{Address: campaign})
	if err != nil {
		return
	}
	s.result.Snapshot = snapshot
}

func successMessage(action domain.Action) string {
	switch action {
	case domain.ActionDonate:
		return "Donation successful"
	case domain.ActionWithdraw:
		return "Funds withdrawn"
	case domain.ActionRefund:
		return "Refund claimed"
	case domain.ActionCreate:
		return "Campaign created"
	}
	return "Done"
}

// anyCall adapts a typed pending call to PendingCall[any]
type anyCall[T any] struct {
	PendingCall[T]
}

func (c anyCall[T]) Simulate(ctx context.Context) (any, error) {
	return c.PendingCall.Simulate(ctx)
}

func erase[T any](call PendingCall[T]) PendingCall[any] {
	return anyCall[T]{call}
}
