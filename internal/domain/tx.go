package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer signs a prepared transaction. It is the only point where a
// submission may block on user interaction.
type Signer func(ctx context.Context, tx *types.Transaction) (*types.Transaction, error)

// TxReceipt is the confirmed outcome of a signed and submitted call
type TxReceipt struct {
	Hash        common.Hash `json:"hash" yaml:"hash"`
	BlockNumber uint64      `json:"blockNumber" yaml:"blockNumber"`
	GasUsed     uint64      `json:"gasUsed" yaml:"gasUsed"`
	Status      uint64      `json:"status" yaml:"status"`
	// Result is the decoded return value, nil when it could not be decoded
	Result any `json:"result,omitempty" yaml:"result,omitempty"`
}

type sentHookKey struct{}

// WithSentHook returns a context that reports each broadcast transaction
// to fn. The hook runs after the node accepted the transaction and before
// confirmation is awaited.
func WithSentHook(ctx context.Context, fn func(hash common.Hash)) context.Context {
	return context.WithValue(ctx, sentHookKey{}, fn)
}

// NotifySent calls the hook registered with WithSentHook, if any
func NotifySent(ctx context.Context, hash common.Hash) {
	if fn, ok := ctx.Value(sentHookKey{}).(func(common.Hash)); ok && fn != nil {
		fn(hash)
	}
}
