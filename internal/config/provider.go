package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// DefaultBenignDecodeSignatures are decoder failures known to occur after a
// confirmed transaction whose return value is empty or differently shaped
// than the interface descriptor expects.
var DefaultBenignDecodeSignatures = []string{
	"abi: attempting to unmarshal an empty string while arguments are expected",
	"abi: improperly formatted output",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	file, path, err := loadCrowdfundFile(projectRoot)
	if err != nil {
		return nil, err
	}
	applyFileDefaults(v, file)

	cfg := &config.RuntimeConfig{
		ProjectRoot:            projectRoot,
		ConfigFile:             path,
		CurrencySymbol:         v.GetString("currency_symbol"),
		UnitsPerToken:          v.GetInt64("units_per_token"),
		HistoryLimit:           v.GetUint32("history_limit"),
		SettleDelay:            v.GetDuration("settle_delay"),
		ConfirmTimeout:         v.GetDuration("confirm_timeout"),
		ConfirmPollInterval:    v.GetDuration("confirm_poll_interval"),
		BenignDecodeSignatures: v.GetStringSlice("benign_decode_signatures"),
		Debug:                  v.GetBool("debug"),
		NonInteractive:         v.GetBool("non_interactive"),
		Output:                 v.GetString("output"),
		Timeout:                v.GetDuration("timeout"),
		Wallet: config.WalletConfig{
			Type:       config.WalletType(v.GetString("wallet.type")),
			PrivateKey: v.GetString("wallet.private_key"),
			Keystore:   v.GetString("wallet.keystore"),
			Password:   v.GetString("wallet.password"),
		},
		Serve: config.ServeConfig{
			Addr:           v.GetString("serve.addr"),
			AllowedOrigins: v.GetStringSlice("serve.allowed_origins"),
		},
	}

	if cfg.UnitsPerToken <= 0 {
		return nil, fmt.Errorf("units_per_token must be positive, got %d", cfg.UnitsPerToken)
	}
	if cfg.MinGoal, err = decimal.NewFromString(v.GetString("min_goal")); err != nil {
		return nil, fmt.Errorf("invalid min_goal: %w", err)
	}
	if cfg.MinDonation, err = decimal.NewFromString(v.GetString("min_donation")); err != nil {
		return nil, fmt.Errorf("invalid min_donation: %w", err)
	}

	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", cfg.Output)
	}

	if err := resolveNetwork(v, file, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveNetwork fills network and contract settings. Explicit values from
// flags or the environment win over the selected [networks.<name>] section.
func resolveNetwork(v *viper.Viper, file *CrowdfundFile, cfg *config.RuntimeConfig) error {
	name := v.GetString("network")
	if name == "" {
		name = file.DefaultNetwork
	}

	var section NetworkTOML
	if name != "" {
		s, ok := file.Networks[name]
		if !ok && v.GetString("rpc_url") == "" {
			return fmt.Errorf("network '%s' not found in %s [networks]", name, FileName)
		}
		section = s
	}

	network := &config.Network{
		Name:    name,
		RPCURL:  firstNonEmpty(v.GetString("rpc_url"), section.RPCURL),
		ChainID: section.ChainID,
	}
	if id := v.GetUint64("chain_id"); id != 0 {
		network.ChainID = id
	}
	if network.RPCURL != "" {
		cfg.Network = network
	}

	if raw := firstNonEmpty(v.GetString("factory_address"), section.FactoryAddress); raw != "" {
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid factory_address: %q", raw)
		}
		cfg.FactoryAddress = common.HexToAddress(raw)
	}
	if raw := firstNonEmpty(v.GetString("currency_token"), section.CurrencyToken); raw != "" {
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid currency_token: %q", raw)
		}
		cfg.CurrencyToken = common.HexToAddress(raw)
	}
	if raw := firstNonEmpty(v.GetString("campaign_code_hash"), section.CampaignCodeHash); raw != "" {
		trimmed := strings.TrimPrefix(raw, "0x")
		if len(trimmed) != 2*common.HashLength {
			return fmt.Errorf("invalid campaign_code_hash: %q", raw)
		}
		cfg.CampaignCodeHash = common.HexToHash(raw)
	}

	return nil
}

// applyFileDefaults layers crowdfund.toml values below flags and environment
func applyFileDefaults(v *viper.Viper, file *CrowdfundFile) {
	if file.Currency.Symbol != "" {
		v.SetDefault("currency_symbol", file.Currency.Symbol)
	}
	if file.Currency.UnitsPerToken != 0 {
		v.SetDefault("units_per_token", file.Currency.UnitsPerToken)
	}
	if file.Currency.MinGoal != "" {
		v.SetDefault("min_goal", file.Currency.MinGoal)
	}
	if file.Currency.MinDonation != "" {
		v.SetDefault("min_donation", file.Currency.MinDonation)
	}
	if file.Wallet.Type != "" {
		v.SetDefault("wallet.type", file.Wallet.Type)
	}
	if file.Wallet.PrivateKey != "" {
		v.SetDefault("wallet.private_key", file.Wallet.PrivateKey)
	}
	if file.Wallet.Keystore != "" {
		v.SetDefault("wallet.keystore", file.Wallet.Keystore)
	}
	if file.Wallet.Password != "" {
		v.SetDefault("wallet.password", file.Wallet.Password)
	}
}

// FindProjectRoot walks up from the current directory to find crowdfund.toml.
// Falls back to the current directory when none is found.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding crowdfund.toml
			return cwd
		}
		dir = parent
	}
}

// flagKeys maps flags whose config key is nested
var flagKeys = map[string]string{
	"addr":            "serve.addr",
	"allowed-origins": "serve.allowed_origins",
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("CROWDFUND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("currency_symbol", "XLM")
	v.SetDefault("units_per_token", 10_000_000)
	v.SetDefault("min_goal", "10")
	v.SetDefault("min_donation", "0.1")
	v.SetDefault("history_limit", 20)
	v.SetDefault("settle_delay", "0s")
	v.SetDefault("confirm_timeout", "2m")
	v.SetDefault("confirm_poll_interval", "1s")
	v.SetDefault("benign_decode_signatures", DefaultBenignDecodeSignatures)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("output", "table")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.allowed_origins", []string{"*"})

	// Nested keys are only resolved from the environment once they are known to viper
	for _, key := range []string{"wallet.private_key", "wallet.keystore", "wallet.password", "wallet.type"} {
		_ = v.BindEnv(key)
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
