package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// Backend is the subset of the JSON-RPC client used to invoke contracts.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Options control transaction confirmation
type Options struct {
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Invoker prepares calls against one contract instance described by an
// ABI descriptor
type Invoker struct {
	backend    Backend
	address    common.Address
	descriptor abi.ABI
	caller     common.Address
	opts       Options
	log        *slog.Logger
}

// NewInvoker creates an invoker for the contract at address. Calls are
// simulated and signed as caller.
func NewInvoker(backend Backend, address common.Address, descriptor abi.ABI, caller common.Address, opts Options, log *slog.Logger) *Invoker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &Invoker{
		backend:    backend,
		address:    address,
		descriptor: descriptor,
		caller:     caller,
		opts:       opts,
		log:        log,
	}
}

// Address returns the contract address
func (i *Invoker) Address() common.Address {
	return i.address
}

// Call packs the named operation with its arguments. Packing errors are
// reported by Simulate and SignAndSend.
func (i *Invoker) Call(name string, args ...any) *PendingCall {
	call := &PendingCall{invoker: i, name: name}

	method, ok := i.descriptor.Methods[name]
	if !ok {
		call.err = &domain.ValidationError{Field: "operation", Message: fmt.Sprintf("unknown contract operation %q", name)}
		return call
	}
	call.method = method

	data, err := i.descriptor.Pack(name, args...)
	if err != nil {
		call.err = &domain.ValidationError{Field: name, Message: fmt.Sprintf("invalid arguments for %s: %v", name, err)}
		return call
	}
	call.data = data
	return call
}

// PendingCall is a packed, not yet executed contract call
type PendingCall struct {
	invoker *Invoker
	name    string
	method  abi.Method
	data    []byte
	err     error
}

// Name returns the operation name
func (c *PendingCall) Name() string {
	return c.name
}

func (c *PendingCall) msg() ethereum.CallMsg {
	to := c.invoker.address
	return ethereum.CallMsg{From: c.invoker.caller, To: &to, Data: c.data}
}

// Simulate evaluates the call against the latest state without signing and
// returns the decoded outputs
func (c *PendingCall) Simulate(ctx context.Context) ([]any, error) {
	if c.err != nil {
		return nil, c.err
	}

	out, err := c.invoker.backend.CallContract(ctx, c.msg(), nil)
	if err != nil {
		return nil, classify(c.name, err)
	}

	values, err := c.method.Outputs.Unpack(out)
	if err != nil {
		return nil, &domain.ResultDecodeError{Op: c.name, Err: err}
	}
	return values, nil
}

// SignAndSend simulates the call, builds a transaction, has it signed,
// broadcasts it and waits for the receipt. The receipt's Result holds the
// decoded outputs of the pre-flight simulation.
func (c *PendingCall) SignAndSend(ctx context.Context, signer domain.Signer) (*domain.TxReceipt, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.invoker.caller == (common.Address{}) {
		return nil, domain.ErrNotConnected
	}

	backend := c.invoker.backend
	msg := c.msg()

	// Pre-flight surfaces contract rejections before the user is asked to sign
	ret, err := backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, classify(c.name, err)
	}

	nonce, err := backend.PendingNonceAt(ctx, c.invoker.caller)
	if err != nil {
		return nil, &domain.TransportError{Op: c.name, Err: fmt.Errorf("failed to get nonce: %w", err)}
	}
	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &domain.TransportError{Op: c.name, Err: fmt.Errorf("failed to get gas price: %w", err)}
	}
	gas, err := backend.EstimateGas(ctx, msg)
	if err != nil {
		return nil, classify(c.name, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       msg.To,
		Value:    new(big.Int),
		Data:     c.data,
	})

	signed, err := signer(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, classify(c.name, err)
	}
	c.invoker.log.Debug("transaction sent", "operation", c.name, "tx", signed.Hash().Hex(), "contract", c.invoker.address.Hex())
	domain.NotifySent(ctx, signed.Hash())

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}

	result := &domain.TxReceipt{
		Hash:    receipt.TxHash,
		GasUsed: receipt.GasUsed,
		Status:  receipt.Status,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return result, &domain.ContractRejection{Op: c.name, Reason: "transaction reverted", TxHash: receipt.TxHash}
	}

	values, err := c.method.Outputs.Unpack(ret)
	if err != nil {
		return result, &domain.ResultDecodeError{Op: c.name, TxHash: receipt.TxHash, Err: err}
	}
	result.Result = values
	return result, nil
}

// waitMined polls for the receipt until it is available or the
// confirmation timeout elapses
func (c *PendingCall) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if c.invoker.opts.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.invoker.opts.ConfirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.invoker.opts.PollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := c.invoker.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.TxHash == (common.Hash{}) {
				receipt.TxHash = hash
			}
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			lastErr = err
			c.invoker.log.Debug("receipt poll failed", "tx", hash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			cause := fmt.Errorf("timed out waiting for confirmation of %s: %w", hash.Hex(), ctx.Err())
			if lastErr != nil {
				cause = fmt.Errorf("%w (last error: %v)", cause, lastErr)
			}
			return nil, &domain.TransportError{Op: c.name, Err: cause}
		case <-ticker.C:
		}
	}
}
