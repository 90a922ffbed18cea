package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// OperationKey identifies an asynchronous read or write by what it does,
// which campaign it targets and which wallet identity issued it.
type OperationKey struct {
	Operation string
	Campaign  common.Address
	Wallet    common.Address
}

// Operation is one tracked unit of in-flight work
type Operation struct {
	ID  uuid.UUID
	Key OperationKey

	ctx     context.Context
	cancel  context.CancelCauseFunc
	tracker *InFlight
}

// Context returns the context the operation's remote calls must be bound to
func (o *Operation) Context() context.Context {
	return o.ctx
}

// Finish releases the operation. If it was superseded or its wallet
// identity changed while it ran, the result is stale and Finish returns
// domain.ErrStaleIdentity instead of err.
func (o *Operation) Finish(err error) error {
	o.tracker.release(o)
	stale := errors.Is(context.Cause(o.ctx), domain.ErrStaleIdentity)
	o.cancel(nil)
	if stale {
		o.tracker.log.Debug("discarding stale result",
			"operation", o.Key.Operation,
			"campaign", o.Key.Campaign.Hex(),
			"id", o.ID.String(),
		)
		return domain.ErrStaleIdentity
	}
	return err
}

// InFlight tracks in-flight operations and cancels superseded ones
type InFlight struct {
	mu  sync.Mutex
	ops map[OperationKey]*Operation
	log *slog.Logger
}

// NewInFlight creates an empty tracker
func NewInFlight(log *slog.Logger) *InFlight {
	return &InFlight{
		ops: make(map[OperationKey]*Operation),
		log: log,
	}
}

// Supersede starts a read. Any earlier operation with the same key is
// cancelled; its result will be reported as stale.
func (t *InFlight) Supersede(ctx context.Context, key OperationKey) *Operation {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.ops[key]; ok {
		prev.cancel(domain.ErrStaleIdentity)
	}
	op := t.newOperation(ctx, key)
	t.ops[key] = op
	return op
}

// Acquire starts a write. It fails with domain.ErrActionInFlight while
// another operation with the same key is still running.
func (t *InFlight) Acquire(ctx context.Context, key OperationKey) (*Operation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.ops[key]; ok {
		return nil, domain.ErrActionInFlight
	}
	op := t.newOperation(ctx, key)
	t.ops[key] = op
	return op, nil
}

// CancelWallet cancels every operation issued under the given wallet
// identity and returns how many were cancelled.
func (t *InFlight) CancelWallet(wallet common.Address) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for key, op := range t.ops {
		if key.Wallet != wallet {
			continue
		}
		op.cancel(domain.ErrStaleIdentity)
		delete(t.ops, key)
		n++
	}
	if n > 0 {
		t.log.Debug("cancelled in-flight operations", "wallet", wallet.Hex(), "count", n)
	}
	return n
}

// Len returns the number of operations currently in flight
func (t *InFlight) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops)
}

func (t *InFlight) newOperation(ctx context.Context, key OperationKey) *Operation {
	opCtx, cancel := context.WithCancelCause(ctx)
	return &Operation{
		ID:      uuid.New(),
		Key:     key,
		ctx:     opCtx,
		cancel:  cancel,
		tracker: t,
	}
}

func (t *InFlight) release(op *Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A superseding operation may already own the key
	if cur, ok := t.ops[op.Key]; ok && cur.ID == op.ID {
		delete(t.ops, op.Key)
	}
}
