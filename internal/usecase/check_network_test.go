package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

type fakeChecker struct {
	health *domain.NetworkHealth
	err    error
}

func (f *fakeChecker) CheckFactory(_ context.Context, factory common.Address) (*domain.NetworkHealth, error) {
	if f.err != nil {
		return nil, f.err
	}
	h := *f.health
	h.Factory = factory
	return &h, nil
}

func TestCheckNetwork(t *testing.T) {
	ctx := context.Background()
	factory := common.HexToAddress("0x0f01")
	cfg := &config.RuntimeConfig{FactoryAddress: factory}

	t.Run("healthy registry reports campaign count", func(t *testing.T) {
		contracts, _ := registry()
		uc := usecase.NewCheckNetwork(cfg, &fakeChecker{health: &domain.NetworkHealth{ChainID: 31337, FactoryExists: true}}, contracts, discardLogger())

		health, err := uc.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, factory, health.Factory)
		require.NotNil(t, health.Campaigns)
		assert.Equal(t, uint64(3), *health.Campaigns)
	})

	t.Run("missing registry", func(t *testing.T) {
		contracts, _ := registry()
		uc := usecase.NewCheckNetwork(cfg, &fakeChecker{health: &domain.NetworkHealth{Reason: "no code at address"}}, contracts, discardLogger())

		health, err := uc.Run(ctx)
		require.NoError(t, err)
		assert.False(t, health.FactoryExists)
		assert.Nil(t, health.Campaigns)
	})

	t.Run("registry read failure", func(t *testing.T) {
		contracts, _ := registry()
		contracts.factory.listErr = &domain.ContractRejection{Op: "get_campaign_count", Reason: "not a registry"}
		uc := usecase.NewCheckNetwork(cfg, &fakeChecker{health: &domain.NetworkHealth{FactoryExists: true}}, contracts, discardLogger())

		health, err := uc.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, "not a registry", health.Reason)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		uc := usecase.NewCheckNetwork(cfg, &fakeChecker{err: errors.New("refused")}, newFakeContracts(), discardLogger())
		_, err := uc.Run(ctx)
		assert.Error(t, err)
	})
}
