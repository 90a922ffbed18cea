package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

func registry() (*fakeContracts, []domain.CampaignInfo) {
	contracts := newFakeContracts()
	infos := []domain.CampaignInfo{
		{ID: 0, Address: common.HexToAddress("0x0c01"), Title: "Garden", Owner: ownerAddr, Category: domain.CategoryCommunity},
		{ID: 1, Address: common.HexToAddress("0x0c02"), Title: "Library", Owner: donorAddr, Category: domain.CategoryEducation},
		{ID: 2, Address: common.HexToAddress("0x0c03"), Title: "Clinic", Owner: ownerAddr, Category: domain.CategoryHealth},
	}
	contracts.factory.campaigns = infos

	for i, info := range infos {
		c := newFakeCampaign(info.Owner, 100, 0)
		c.ended = i == 0
		contracts.campaigns[info.Address] = c
	}
	return contracts, infos
}

func newListCampaigns(contracts *fakeContracts, caller common.Address) (*usecase.ListCampaigns, *MockProgressSink) {
	log := discardLogger()
	inflight := usecase.NewInFlight(log)
	session := usecase.NewSession(newMockWallet(caller), inflight, log)
	sink := &MockProgressSink{}
	return usecase.NewListCampaigns(contracts, session, sink, log), sink
}

func titles(campaigns []domain.CampaignInfo) []string {
	out := make([]string, len(campaigns))
	for i, c := range campaigns {
		out[i] = c.Title
	}
	return out
}

func TestListCampaigns(t *testing.T) {
	ctx := context.Background()

	t.Run("all keeps registry order", func(t *testing.T) {
		contracts, _ := registry()
		uc, sink := newListCampaigns(contracts, donorAddr)

		result := uc.Run(ctx, usecase.ListCampaignsParams{})
		require.NoError(t, result.Err)
		assert.Equal(t, domain.FilterAll, result.Filter)
		assert.Equal(t, []string{"Garden", "Library", "Clinic"}, titles(result.Campaigns))
		assert.Equal(t, []string{"loading", "complete"}, sink.stages())
	})

	t.Run("my campaigns", func(t *testing.T) {
		contracts, _ := registry()
		uc, _ := newListCampaigns(contracts, ownerAddr)

		result := uc.Run(ctx, usecase.ListCampaignsParams{Filter: domain.FilterMine})
		require.NoError(t, result.Err)
		assert.Equal(t, []string{"Garden", "Clinic"}, titles(result.Campaigns))
	})

	t.Run("my campaigns requires wallet", func(t *testing.T) {
		contracts, _ := registry()
		uc, _ := newListCampaigns(contracts, common.Address{})

		result := uc.Run(ctx, usecase.ListCampaignsParams{Filter: domain.FilterMine})
		assert.ErrorIs(t, result.Err, domain.ErrNotConnected)
		assert.Empty(t, result.Campaigns)
	})

	t.Run("active drops ended campaigns", func(t *testing.T) {
		contracts, _ := registry()
		uc, _ := newListCampaigns(contracts, donorAddr)

		result := uc.Run(ctx, usecase.ListCampaignsParams{Filter: domain.FilterActive})
		require.NoError(t, result.Err)
		assert.Equal(t, []string{"Library", "Clinic"}, titles(result.Campaigns))
	})

	t.Run("active keeps campaigns whose status read fails", func(t *testing.T) {
		contracts, infos := registry()
		contracts.campaigns[infos[0].Address].endedErr = errors.New("timeout")
		uc, _ := newListCampaigns(contracts, donorAddr)

		result := uc.Run(ctx, usecase.ListCampaignsParams{Filter: domain.FilterActive})
		require.NoError(t, result.Err)
		assert.Equal(t, []string{"Garden", "Library", "Clinic"}, titles(result.Campaigns))
	})

	t.Run("owner filter", func(t *testing.T) {
		contracts, _ := registry()
		contracts.factory.byOwner[donorAddr] = []uint64{1}
		uc, _ := newListCampaigns(contracts, common.Address{})

		owner := donorAddr
		result := uc.Run(ctx, usecase.ListCampaignsParams{Owner: &owner})
		require.NoError(t, result.Err)
		assert.Equal(t, []string{"Library"}, titles(result.Campaigns))
	})

	t.Run("registry failure yields empty list and error marker", func(t *testing.T) {
		contracts, _ := registry()
		contracts.factory.listErr = &domain.TransportError{Op: "get_all_campaigns", Err: errors.New("unreachable")}
		uc, _ := newListCampaigns(contracts, donorAddr)

		result := uc.Run(ctx, usecase.ListCampaignsParams{})
		require.Error(t, result.Err)
		assert.NotNil(t, result.Campaigns)
		assert.Empty(t, result.Campaigns)
	})

	t.Run("count", func(t *testing.T) {
		contracts, _ := registry()
		uc, _ := newListCampaigns(contracts, donorAddr)

		n, err := uc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), n)
	})
}
