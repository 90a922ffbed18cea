package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigFile  string // path of crowdfund.toml, empty if none was found

	// Network settings
	Network *Network

	// Contracts
	FactoryAddress   common.Address
	CurrencyToken    common.Address
	CampaignCodeHash common.Hash

	// Currency and client-side floors (human units)
	CurrencySymbol string
	UnitsPerToken  int64
	MinGoal        decimal.Decimal
	MinDonation    decimal.Decimal
	HistoryLimit   uint32

	// Submission settings
	SettleDelay            time.Duration
	ConfirmTimeout         time.Duration
	ConfirmPollInterval    time.Duration
	BenignDecodeSignatures []string

	// Wallet
	Wallet WalletConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         string // table, json or yaml
	Timeout        time.Duration

	// HTTP API settings
	Serve ServeConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"`
}

// WalletType selects how the signing key is loaded
type WalletType string

const (
	WalletTypeNone       WalletType = ""
	WalletTypePrivateKey WalletType = "private_key"
	WalletTypeKeystore   WalletType = "keystore"
)

// WalletConfig describes the signing wallet
type WalletConfig struct {
	Type       WalletType
	PrivateKey string //nolint:gosec // resolved from env var reference
	Keystore   string
	Password   string //nolint:gosec // resolved from env var reference
}

// ServeConfig configures the read-only HTTP API
type ServeConfig struct {
	Addr           string
	AllowedOrigins []string
}
