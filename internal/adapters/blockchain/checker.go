package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/contract"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// ErrNoNetwork is returned by every call when no network is configured
var ErrNoNetwork = errors.New("no network configured: set --network or --rpc-url, or add [networks] to crowdfund.toml")

// RPCClient is the JSON-RPC surface used by the Client
type RPCClient interface {
	contract.Backend
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

// Dialer opens an RPC connection
type Dialer func(ctx context.Context, rpcURL string) (RPCClient, error)

// DialEthclient dials with go-ethereum's ethclient
func DialEthclient(ctx context.Context, rpcURL string) (RPCClient, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// Client connects to the configured network on first use and verifies the
// chain ID before any call goes out. It implements contract.Backend.
type Client struct {
	network *config.Network
	dial    Dialer
	log     *slog.Logger

	mu      sync.Mutex
	rpc     RPCClient
	chainID *big.Int
}

// NewClient creates a lazily connecting client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return NewClientWithDialer(cfg.Network, DialEthclient, log)
}

// NewClientWithDialer creates a client with a custom dialer
func NewClientWithDialer(network *config.Network, dial Dialer, log *slog.Logger) *Client {
	return &Client{network: network, dial: dial, log: log}
}

// Connect establishes the connection and verifies the chain ID. Later calls
// reuse the connection.
func (c *Client) Connect(ctx context.Context) (RPCClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rpc != nil {
		return c.rpc, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, ErrNoNetwork
	}

	client, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chain_id was not configured, use the network's chain ID
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64())
	}

	c.log.Debug("connected to network", "network", c.network.Name, "chain_id", networkChainID.Uint64())
	c.rpc = client
	c.chainID = networkChainID
	return client, nil
}

// Close releases the connection, if any
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpc != nil {
		c.rpc.Close()
		c.rpc = nil
	}
}

func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return rpc.CallContract(ctx, msg, blockNumber)
}

func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return 0, err
	}
	return rpc.PendingNonceAt(ctx, account)
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return rpc.SuggestGasPrice(ctx)
}

func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return 0, err
	}
	return rpc.EstimateGas(ctx, msg)
}

func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	return rpc.SendTransaction(ctx, tx)
}

func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return rpc.TransactionReceipt(ctx, txHash)
}

// ChainID returns the verified chain ID of the connected network
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if _, err := c.Connect(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.chainID), nil
}

// CheckFactory verifies the connection and that the registry contract has
// code at its address
func (c *Client) CheckFactory(ctx context.Context, factory common.Address) (*domain.NetworkHealth, error) {
	rpc, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}

	health := &domain.NetworkHealth{
		Network: c.network.Name,
		RPCURL:  c.network.RPCURL,
		Factory: factory,
	}
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	health.ChainID = chainID.Uint64()

	if factory == (common.Address{}) {
		health.Reason = "factory_address is not configured"
		return health, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := rpc.CodeAt(ctx, factory, nil)
	if err != nil {
		health.Reason = fmt.Sprintf("failed to check code: %v", err)
		return health, nil
	}
	if len(code) == 0 {
		health.Reason = "no code at address"
		return health, nil
	}
	health.FactoryExists = true
	return health, nil
}

// Ensure the client implements the backend and checker interfaces
var (
	_ contract.Backend       = (*Client)(nil)
	_ usecase.NetworkChecker = (*Client)(nil)
)
