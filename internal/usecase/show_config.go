package usecase

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// ShowConfigResult is the resolved configuration with secrets left out
type ShowConfigResult struct {
	ConfigPath     string   `json:"configPath" yaml:"configPath"`
	Exists         bool     `json:"exists" yaml:"exists"`
	Network        string   `json:"network" yaml:"network"`
	RPCURL         string   `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID        uint64   `json:"chainId" yaml:"chainId"`
	FactoryAddress string   `json:"factoryAddress" yaml:"factoryAddress"`
	CurrencyToken  string   `json:"currencyToken" yaml:"currencyToken"`
	CurrencySymbol string   `json:"currencySymbol" yaml:"currencySymbol"`
	UnitsPerToken  int64    `json:"unitsPerToken" yaml:"unitsPerToken"`
	MinGoal        string   `json:"minGoal" yaml:"minGoal"`
	MinDonation    string   `json:"minDonation" yaml:"minDonation"`
	WalletType     string   `json:"walletType" yaml:"walletType"`
	ServeAddr      string   `json:"serveAddr" yaml:"serveAddr"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{config: cfg}
}

// Run executes the show config use case
func (uc *ShowConfig) Run() *ShowConfigResult {
	cfg := uc.config
	result := &ShowConfigResult{
		ConfigPath:     cfg.ConfigFile,
		Exists:         cfg.ConfigFile != "",
		CurrencySymbol: cfg.CurrencySymbol,
		UnitsPerToken:  cfg.UnitsPerToken,
		MinGoal:        cfg.MinGoal.String(),
		MinDonation:    cfg.MinDonation.String(),
		WalletType:     string(cfg.Wallet.Type),
		ServeAddr:      cfg.Serve.Addr,
		AllowedOrigins: cfg.Serve.AllowedOrigins,
	}
	if cfg.Network != nil {
		result.Network = cfg.Network.Name
		result.RPCURL = cfg.Network.RPCURL
		result.ChainID = cfg.Network.ChainID
	}
	if cfg.FactoryAddress != (common.Address{}) {
		result.FactoryAddress = cfg.FactoryAddress.Hex()
	}
	if cfg.CurrencyToken != (common.Address{}) {
		result.CurrencyToken = cfg.CurrencyToken.Hex()
	}
	if result.WalletType == "" {
		result.WalletType = "none"
	}
	return result
}
