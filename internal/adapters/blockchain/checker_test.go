package blockchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

type fakeRPC struct {
	chainID *big.Int
	code    map[common.Address][]byte
	closed  bool
}

func (f *fakeRPC) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return []byte{1}, nil
}
func (f *fakeRPC) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 0, nil }
func (f *fakeRPC) SuggestGasPrice(context.Context) (*big.Int, error)               { return big.NewInt(1), nil }
func (f *fakeRPC) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error)   { return 21000, nil }
func (f *fakeRPC) SendTransaction(context.Context, *types.Transaction) error       { return nil }
func (f *fakeRPC) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, ethereum.NotFound
}
func (f *fakeRPC) ChainID(context.Context) (*big.Int, error) { return f.chainID, nil }
func (f *fakeRPC) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	return f.code[account], nil
}
func (f *fakeRPC) Close() { f.closed = true }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	factory := common.HexToAddress("0x0000000000000000000000000000000000000f01")

	newClient := func(network *config.Network, rpc *fakeRPC) (*Client, *int) {
		dials := 0
		return NewClientWithDialer(network, func(context.Context, string) (RPCClient, error) {
			dials++
			return rpc, nil
		}, discardLogger()), &dials
	}

	t.Run("no network configured", func(t *testing.T) {
		client, dials := newClient(nil, &fakeRPC{})
		_, err := client.CallContract(ctx, ethereum.CallMsg{}, nil)
		assert.ErrorIs(t, err, ErrNoNetwork)
		assert.Equal(t, 0, *dials)
	})

	t.Run("dials once and forwards calls", func(t *testing.T) {
		client, dials := newClient(&config.Network{Name: "local", RPCURL: "http://localhost:8545"}, &fakeRPC{chainID: big.NewInt(31337)})

		out, err := client.CallContract(ctx, ethereum.CallMsg{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, out)

		gas, err := client.EstimateGas(ctx, ethereum.CallMsg{})
		require.NoError(t, err)
		assert.Equal(t, uint64(21000), gas)

		chainID, err := client.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(31337), chainID.Int64())
		assert.Equal(t, 1, *dials)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		rpc := &fakeRPC{chainID: big.NewInt(1)}
		client, _ := newClient(&config.Network{Name: "testnet", RPCURL: "http://x", ChainID: 11155111}, rpc)

		_, err := client.SuggestGasPrice(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain ID mismatch: expected 11155111, got 1")
		assert.True(t, rpc.closed)
	})

	t.Run("dial failure", func(t *testing.T) {
		client := NewClientWithDialer(&config.Network{RPCURL: "http://x"}, func(context.Context, string) (RPCClient, error) {
			return nil, errors.New("refused")
		}, discardLogger())

		_, err := client.PendingNonceAt(ctx, common.Address{})
		assert.ErrorContains(t, err, "failed to connect to RPC: refused")
	})

	t.Run("factory check", func(t *testing.T) {
		rpc := &fakeRPC{chainID: big.NewInt(31337), code: map[common.Address][]byte{factory: {0x60, 0x80}}}
		client, _ := newClient(&config.Network{Name: "local", RPCURL: "http://x"}, rpc)

		health, err := client.CheckFactory(ctx, factory)
		require.NoError(t, err)
		assert.True(t, health.FactoryExists)
		assert.Equal(t, uint64(31337), health.ChainID)

		health, err = client.CheckFactory(ctx, common.HexToAddress("0x01"))
		require.NoError(t, err)
		assert.False(t, health.FactoryExists)
		assert.Equal(t, "no code at address", health.Reason)

		health, err = client.CheckFactory(ctx, common.Address{})
		require.NoError(t, err)
		assert.Equal(t, "factory_address is not configured", health.Reason)

		client.Close()
		assert.True(t, rpc.closed)
	})
}
