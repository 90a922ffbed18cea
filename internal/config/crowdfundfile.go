package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// FileName is the project configuration file looked up from the working directory upwards
const FileName = "crowdfund.toml"

// NetworkTOML is a [networks.<name>] section of crowdfund.toml
type NetworkTOML struct {
	RPCURL           string `toml:"rpc_url"`
	ChainID          uint64 `toml:"chain_id"`
	FactoryAddress   string `toml:"factory_address"`
	CurrencyToken    string `toml:"currency_token"`
	CampaignCodeHash string `toml:"campaign_code_hash"`
}

// CurrencyTOML is the [currency] section of crowdfund.toml
type CurrencyTOML struct {
	Symbol        string `toml:"symbol"`
	UnitsPerToken int64  `toml:"units_per_token"`
	MinGoal       string `toml:"min_goal"`
	MinDonation   string `toml:"min_donation"`
}

// WalletTOML is the [wallet] section of crowdfund.toml
type WalletTOML struct {
	Type       string `toml:"type"`
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Keystore   string `toml:"keystore,omitempty"`
	Password   string `toml:"password,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}

// CrowdfundFile represents the raw crowdfund.toml structure
type CrowdfundFile struct {
	DefaultNetwork string                 `toml:"default_network"`
	Networks       map[string]NetworkTOML `toml:"networks"`
	Currency       CurrencyTOML           `toml:"currency"`
	Wallet         WalletTOML             `toml:"wallet"`
}

// envVarPattern matches ${VAR_NAME} references in TOML values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// loadEnvFiles loads .env files from the project root for variable expansion
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadCrowdfundFile loads and parses crowdfund.toml. Returns an empty file
// config if crowdfund.toml doesn't exist.
func loadCrowdfundFile(projectRoot string) (*CrowdfundFile, string, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &CrowdfundFile{Networks: map[string]NetworkTOML{}}, "", nil
	}

	var raw CrowdfundFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if raw.Networks == nil {
		raw.Networks = map[string]NetworkTOML{}
	}

	for name, network := range raw.Networks {
		network.RPCURL = expandEnv(network.RPCURL)
		network.FactoryAddress = expandEnv(network.FactoryAddress)
		network.CurrencyToken = expandEnv(network.CurrencyToken)
		network.CampaignCodeHash = expandEnv(network.CampaignCodeHash)
		raw.Networks[name] = network
	}
	raw.Wallet.PrivateKey = expandEnv(raw.Wallet.PrivateKey)
	raw.Wallet.Keystore = expandEnv(raw.Wallet.Keystore)
	raw.Wallet.Password = expandEnv(raw.Wallet.Password)

	return &raw, path, nil
}

// expandEnv replaces ${VAR} references with environment values
func expandEnv(value string) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := envVarPattern.FindStringSubmatch(ref)[1]
		return os.Getenv(name)
	})
}

// NetworkNames returns the configured network names, sorted
func (f *CrowdfundFile) NetworkNames() []string {
	names := make([]string, 0, len(f.Networks))
	for name := range f.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NetworkCatalog reads the [networks] table of crowdfund.toml
type NetworkCatalog struct {
	projectRoot string
}

// NewNetworkCatalog creates a catalog for the resolved project root
func NewNetworkCatalog(cfg *config.RuntimeConfig) *NetworkCatalog {
	return &NetworkCatalog{projectRoot: cfg.ProjectRoot}
}

// Networks returns the configured networks sorted by name
func (c *NetworkCatalog) Networks(_ context.Context) ([]usecase.NetworkStatus, error) {
	file, _, err := loadCrowdfundFile(c.projectRoot)
	if err != nil {
		return nil, err
	}

	networks := make([]usecase.NetworkStatus, 0, len(file.Networks))
	for _, name := range file.NetworkNames() {
		section := file.Networks[name]
		networks = append(networks, usecase.NetworkStatus{
			Name:           name,
			RPCURL:         section.RPCURL,
			ChainID:        section.ChainID,
			FactoryAddress: section.FactoryAddress,
			Default:        name == file.DefaultNetwork,
		})
	}
	return networks, nil
}
