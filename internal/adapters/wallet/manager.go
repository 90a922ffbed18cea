package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// ChainIDSource provides the chain ID used for replay-protected signatures
type ChainIDSource interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// KeyWallet signs with a locally held key loaded from a raw private key or
// an encrypted keystore file. It implements usecase.Wallet.
type KeyWallet struct {
	cfg    config.WalletConfig
	chain  ChainIDSource
	log    *slog.Logger
	loader func(config.WalletConfig) (*ecdsa.PrivateKey, error)

	mu       sync.RWMutex
	key      *ecdsa.PrivateKey
	identity domain.WalletIdentity
}

// NewKeyWallet creates a wallet for the configured key. The key is only
// loaded on Connect.
func NewKeyWallet(cfg *config.RuntimeConfig, chain ChainIDSource, log *slog.Logger) *KeyWallet {
	return &KeyWallet{
		cfg:    cfg.Wallet,
		chain:  chain,
		log:    log,
		loader: LoadKey,
	}
}

// LoadKey loads the private key described by cfg
func LoadKey(cfg config.WalletConfig) (*ecdsa.PrivateKey, error) {
	switch cfg.Type {
	case config.WalletTypePrivateKey:
		if cfg.PrivateKey == "" {
			return nil, fmt.Errorf("private key not configured for wallet")
		}
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		return key, nil

	case config.WalletTypeKeystore:
		if cfg.Keystore == "" {
			return nil, fmt.Errorf("keystore path not configured for wallet")
		}
		data, err := os.ReadFile(cfg.Keystore)
		if err != nil {
			return nil, fmt.Errorf("failed to read keystore: %w", err)
		}
		key, err := keystore.DecryptKey(data, cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
		}
		return key.PrivateKey, nil

	case config.WalletTypeNone:
		return nil, fmt.Errorf("no wallet configured: set [wallet] in crowdfund.toml or CROWDFUND_WALLET_TYPE")
	}

	return nil, fmt.Errorf("unsupported wallet type: %s", cfg.Type)
}

// Configured reports whether a wallet type is set
func (w *KeyWallet) Configured() bool {
	return w.cfg.Type != config.WalletTypeNone
}

// Identity returns the connected account, or domain.Disconnected
func (w *KeyWallet) Identity() domain.WalletIdentity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.identity
}

// Connect loads the key and exposes its address
func (w *KeyWallet) Connect(ctx context.Context) (domain.WalletIdentity, error) {
	key, err := w.loader(w.cfg)
	if err != nil {
		return w.Identity(), err
	}

	id := domain.WalletIdentity{Address: crypto.PubkeyToAddress(key.PublicKey), Connected: true}

	w.mu.Lock()
	w.key = key
	w.identity = id
	w.mu.Unlock()

	w.log.Debug("wallet connected", "type", w.cfg.Type, "address", id.Address.Hex())
	return id, nil
}

// Disconnect forgets the key
func (w *KeyWallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.key = nil
	w.identity = domain.Disconnected
}

// SignTransaction signs tx for the connected network's chain ID
func (w *KeyWallet) SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	w.mu.RLock()
	key := w.key
	w.mu.RUnlock()
	if key == nil {
		return nil, domain.ErrNotConnected
	}

	chainID, err := w.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

// Address returns the address of a key without connecting
func Address(cfg config.WalletConfig) (common.Address, error) {
	key, err := LoadKey(cfg)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// Ensure the wallet implements the port
var _ usecase.Wallet = (*KeyWallet)(nil)
