package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

var campaigns = []domain.CampaignInfo{
	{ID: 0, Address: common.HexToAddress("0x1111111111111111111111111111111111111111"), Title: "Community garden", Category: domain.CategoryCommunity},
	{ID: 1, Address: common.HexToAddress("0x2222222222222222222222222222222222222222"), Title: "School library", Category: domain.CategoryEducation},
}

func TestSelectCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("non-interactive", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectCampaign(ctx, campaigns, "Select")
		assert.ErrorContains(t, err, "non-interactive")
	})

	t.Run("empty", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		_, err := s.SelectCampaign(ctx, nil, "Select")
		assert.Error(t, err)
	})

	t.Run("single campaign skips the prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		s.run = func(promptui.Select) (int, error) {
			t.Fatal("prompt should not run")
			return 0, nil
		}
		got, err := s.SelectCampaign(ctx, campaigns[:1], "Select")
		require.NoError(t, err)
		assert.Equal(t, "Community garden", got.Title)
	})

	t.Run("selection", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		var label any
		s.run = func(p promptui.Select) (int, error) {
			label = p.Label
			return 1, nil
		}
		got, err := s.SelectCampaign(ctx, campaigns, "Select a campaign")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got.ID)
		assert.Equal(t, "Select a campaign", label)
	})

	t.Run("cancelled", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		s.run = func(promptui.Select) (int, error) { return 0, errors.New("^C") }
		_, err := s.SelectCampaign(ctx, campaigns, "Select")
		assert.ErrorContains(t, err, "selection cancelled")
	})
}

func TestFormatCampaignOptions(t *testing.T) {
	color.NoColor = true
	options := formatCampaignOptions(campaigns)
	assert.Equal(t, "#0 Community garden [Community] (0x1111…1111)", options[0])
	assert.Equal(t, "#1 School library [Education] (0x2222…2222)", options[1])
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"#0 Community garden", "#1 School library"})
	assert.True(t, search("", 0))
	assert.True(t, search("garden", 0))
	assert.False(t, search("garden", 1))
	assert.True(t, search("schlib", 1))
}
