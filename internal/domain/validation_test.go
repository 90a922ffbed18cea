package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = Limits{
	MinGoal:     decimal.NewFromInt(10),
	MinDonation: decimal.RequireFromString("0.1"),
}

var testCurrency = NewCurrency("XLM", 10_000_000)

func TestValidateDonation(t *testing.T) {
	units, err := ValidateDonation(DonationInput{Amount: "0.15"}, testLimits, testCurrency)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), units.Int64())

	units, err = ValidateDonation(DonationInput{Amount: "0.1"}, testLimits, testCurrency)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), units.Int64())

	_, err = ValidateDonation(DonationInput{Amount: "0.09"}, testLimits, testCurrency)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Minimum donation is 0.1 XLM", verr.Message)

	_, err = ValidateDonation(DonationInput{Amount: "abc"}, testLimits, testCurrency)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestValidateCreateCampaign(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	valid := CreateCampaignInput{
		Title:       "Community garden",
		Description: "Raised beds for the neighbourhood",
		Category:    "community",
		Goal:        "100",
		Deadline:    now.Add(48 * time.Hour),
	}

	t.Run("valid", func(t *testing.T) {
		args, err := ValidateCreateCampaign(valid, now, testLimits, testCurrency)
		require.NoError(t, err)
		assert.Equal(t, "Community garden", args.Title)
		assert.Equal(t, CategoryCommunity, args.Category)
		assert.Equal(t, int64(1_000_000_000), args.Goal.Int64())
		assert.Equal(t, uint64(now.Add(48*time.Hour).Unix()), args.Deadline)
	})

	tests := []struct {
		name   string
		mutate func(*CreateCampaignInput)
		field  string
	}{
		{"empty title", func(in *CreateCampaignInput) { in.Title = "   " }, "title"},
		{"long title", func(in *CreateCampaignInput) { in.Title = strings.Repeat("a", MaxTitleLength+1) }, "title"},
		{"empty description", func(in *CreateCampaignInput) { in.Description = "" }, "description"},
		{"long description", func(in *CreateCampaignInput) { in.Description = strings.Repeat("d", MaxDescriptionLength+1) }, "description"},
		{"unknown category", func(in *CreateCampaignInput) { in.Category = "sports" }, "category"},
		{"goal below minimum", func(in *CreateCampaignInput) { in.Goal = "9.99" }, "goal"},
		{"goal not a number", func(in *CreateCampaignInput) { in.Goal = "lots" }, "goal"},
		{"missing deadline", func(in *CreateCampaignInput) { in.Deadline = time.Time{} }, "deadline"},
		{"deadline now", func(in *CreateCampaignInput) { in.Deadline = now }, "deadline"},
		{"deadline past", func(in *CreateCampaignInput) { in.Deadline = now.Add(-time.Minute) }, "deadline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := ValidateCreateCampaign(in, now, testLimits, testCurrency)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	t.Run("limits count characters not bytes", func(t *testing.T) {
		in := valid
		in.Title = strings.Repeat("é", MaxTitleLength)
		_, err := ValidateCreateCampaign(in, now, testLimits, testCurrency)
		assert.NoError(t, err)
	})
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("campaign", " 0x00000000000000000000000000000000000000aa ")
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, addr)

	_, err = ParseAddress("campaign", "0x1234")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, ErrInvalidAddress.Error())
}
