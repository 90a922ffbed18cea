package domain

// Action is a user action that changes campaign state
type Action string

const (
	ActionNone     Action = "none"
	ActionDonate   Action = "donate"
	ActionWithdraw Action = "withdraw"
	ActionRefund   Action = "refund"
	ActionCreate   Action = "create"
)

// Phase is the lifecycle phase of a campaign as seen from its snapshot
type Phase string

const (
	PhaseUnknown   Phase = "unknown"
	PhaseActive    Phase = "active"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Notice is an informational state shown when no action applies
type Notice string

const (
	NoticeNone              Notice = ""
	NoticeWithdrawn         Notice = "withdrawal completed"
	NoticeFailedNoDonation  Notice = "campaign failed, you did not donate"
	NoticeFailedOwner       Notice = "campaign failed, donors can claim refunds"
	NoticeSucceededNotOwner Notice = "campaign reached its goal"
)

// Eligibility is the set of actions currently valid for a caller
type Eligibility struct {
	CanDonate   bool   `json:"canDonate" yaml:"canDonate"`
	CanWithdraw bool   `json:"canWithdraw" yaml:"canWithdraw"`
	CanRefund   bool   `json:"canRefund" yaml:"canRefund"`
	Phase       Phase  `json:"phase" yaml:"phase"`
	Notice      Notice `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Action returns the single available action, or ActionNone
func (e Eligibility) Action() Action {
	switch {
	case e.CanDonate:
		return ActionDonate
	case e.CanWithdraw:
		return ActionWithdraw
	case e.CanRefund:
		return ActionRefund
	}
	return ActionNone
}

// Allows reports whether the given action is currently valid
func (e Eligibility) Allows(action Action) bool {
	switch action {
	case ActionDonate:
		return e.CanDonate
	case ActionWithdraw:
		return e.CanWithdraw
	case ActionRefund:
		return e.CanRefund
	}
	return false
}

// Evaluate derives which actions the caller may take on the campaign.
//
// canDonate and canWithdraw are split by ownership, canWithdraw and canRefund
// by goal attainment, so at most one of the three is ever true. hasWithdrawn
// is session-local and only hides the withdraw action; it is never treated
// as contract state.
func Evaluate(snapshot *CampaignSnapshot, caller WalletIdentity, hasWithdrawn bool) Eligibility {
	if !snapshot.HasData() {
		return Eligibility{Phase: PhaseUnknown}
	}

	state := snapshot.State
	isOwner := caller.IsConnected() && snapshot.Metadata.Owner == caller.Address
	donated := state.CallerDonation != nil && state.CallerDonation.Sign() > 0

	e := Eligibility{
		CanDonate:   !isOwner && !state.IsEnded,
		CanWithdraw: isOwner && state.IsEnded && state.IsGoalReached && !hasWithdrawn,
		CanRefund:   !isOwner && state.IsEnded && !state.IsGoalReached && donated,
		Phase:       phaseOf(state),
	}

	switch {
	case isOwner && hasWithdrawn:
		e.Notice = NoticeWithdrawn
	case e.Phase == PhaseFailed && isOwner:
		e.Notice = NoticeFailedOwner
	case e.Phase == PhaseFailed && !donated:
		e.Notice = NoticeFailedNoDonation
	case e.Phase == PhaseSucceeded && !isOwner:
		e.Notice = NoticeSucceededNotOwner
	}

	return e
}

func phaseOf(state CampaignState) Phase {
	switch {
	case !state.IsEnded:
		return PhaseActive
	case state.IsGoalReached:
		return PhaseSucceeded
	default:
		return PhaseFailed
	}
}
