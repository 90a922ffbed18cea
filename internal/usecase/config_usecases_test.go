package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

type stubCatalog struct {
	networks []usecase.NetworkStatus
	err      error
}

func (s stubCatalog) Networks(context.Context) ([]usecase.NetworkStatus, error) {
	return s.networks, s.err
}

func TestShowConfig(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		result := usecase.NewShowConfig(&config.RuntimeConfig{}).Run()
		assert.False(t, result.Exists)
		assert.Equal(t, "none", result.WalletType)
		assert.Empty(t, result.FactoryAddress)
		assert.Empty(t, result.Network)
	})

	t.Run("configured", func(t *testing.T) {
		cfg := &config.RuntimeConfig{
			ConfigFile:     "/work/crowdfund.toml",
			Network:        &config.Network{Name: "testnet", RPCURL: "http://localhost:8545", ChainID: 31337},
			FactoryAddress: common.HexToAddress("0x1111111111111111111111111111111111111111"),
			CurrencySymbol: "USDC",
			UnitsPerToken:  1_000_000,
			MinGoal:        decimal.NewFromInt(25),
			Wallet:         config.WalletConfig{Type: config.WalletTypePrivateKey, PrivateKey: "secret"},
		}
		result := usecase.NewShowConfig(cfg).Run()

		assert.True(t, result.Exists)
		assert.Equal(t, "testnet", result.Network)
		assert.Equal(t, uint64(31337), result.ChainID)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", result.FactoryAddress)
		assert.Equal(t, "25", result.MinGoal)
		assert.Equal(t, "private_key", result.WalletType)
	})
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	networks := []usecase.NetworkStatus{{Name: "mainnet"}, {Name: "testnet", Default: true}}

	result, err := usecase.NewListNetworks(&config.RuntimeConfig{Network: &config.Network{Name: "testnet"}}, stubCatalog{networks: networks}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "testnet", result.Current)
	assert.Len(t, result.Networks, 2)

	_, err = usecase.NewListNetworks(&config.RuntimeConfig{}, stubCatalog{err: errors.New("bad toml")}).Run(ctx)
	assert.Error(t, err)
}
