package render

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ownerAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	donorAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
	xlm       = domain.NewCurrency("XLM", 10_000_000)
)

func fixedNow() time.Time { return testNow }

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "0x1111…1111", TruncateAddress(ownerAddr))
}

func TestTimeRemaining(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		expected string
	}{
		{"ended", testNow.Add(-time.Second), "Ended"},
		{"exactly now", testNow, "Ended"},
		{"days", testNow.Add(50 * time.Hour), "2d 2h left"},
		{"hours", testNow.Add(3*time.Hour + 15*time.Minute), "3h 15m left"},
		{"minutes", testNow.Add(42 * time.Minute), "42m left"},
		{"seconds", testNow.Add(30 * time.Second), "less than a minute left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeRemaining(tt.deadline, testNow))
		})
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		ago      time.Duration
		expected string
	}{
		{10 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{72 * time.Hour, "3 days ago"},
		{60 * 24 * time.Hour, "2025-12-31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TimeAgo(testNow.Add(-tt.ago), testNow))
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░] 0%", ProgressBar(nil, 10))
	assert.Equal(t, "[█████░░░░░] 50%", ProgressBar(big.NewInt(50), 10))
	assert.Equal(t, "[██████████] 150%", ProgressBar(big.NewInt(150), 10))
}

func snapshot() *domain.CampaignSnapshot {
	return &domain.CampaignSnapshot{
		Address: common.HexToAddress("0x0000000000000000000000000000000000000c01"),
		Caller:  domain.WalletIdentity{Address: donorAddr, Connected: true},
		Metadata: &domain.CampaignMetadata{
			Title:       "Community Garden",
			Description: "Raised beds for the block",
			Category:    domain.CategoryCommunity,
			Owner:       ownerAddr,
			Goal:        big.NewInt(1_000_000_000),
			Deadline:    uint64(testNow.Add(48 * time.Hour).Unix()),
			CreatedAt:   uint64(testNow.Add(-24 * time.Hour).Unix()),
		},
		State: domain.CampaignState{
			TotalRaised:        big.NewInt(250_000_000),
			ProgressPercentage: big.NewInt(25),
			CallerDonation:     big.NewInt(50_000_000),
			DonationHistory: []domain.DonationRecord{
				{Donor: donorAddr, Amount: big.NewInt(50_000_000), Timestamp: uint64(testNow.Add(-time.Hour).Unix())},
			},
		},
		Ready:     true,
		FetchedAt: testNow,
	}
}

func TestCampaignRenderer(t *testing.T) {
	r := NewCampaignRenderer(nil, false, xlm)
	r.now = fixedNow

	t.Run("active campaign for a donor", func(t *testing.T) {
		s := snapshot()
		out := r.String(NewCampaignView(s, domain.Evaluate(s, s.Caller, false)))

		assert.Contains(t, out, "Community Garden")
		assert.Contains(t, out, "Community")
		assert.Contains(t, out, "100.00 XLM")
		assert.Contains(t, out, "25.00 XLM")
		assert.Contains(t, out, "5.00 XLM")
		assert.Contains(t, out, "2d 0h left")
		assert.Contains(t, out, "Donate")
		assert.Contains(t, out, "Recent donations")
		assert.Contains(t, out, "you")
	})

	t.Run("failed campaign shows notice", func(t *testing.T) {
		s := snapshot()
		s.State.IsEnded = true
		s.State.CallerDonation = big.NewInt(0)
		out := r.String(NewCampaignView(s, domain.Evaluate(s, s.Caller, false)))

		assert.Contains(t, out, "Failed")
		assert.Contains(t, out, string(domain.NoticeFailedNoDonation))
		assert.NotContains(t, out, "Available")
	})

	t.Run("stale data is flagged", func(t *testing.T) {
		s := snapshot()
		s.Stale = true
		s.FetchedAt = testNow.Add(-5 * time.Minute)
		s.Err = &domain.TransportError{Op: "get_total_raised", Err: errors.New("connection refused")}
		out := r.String(NewCampaignView(s, domain.Evaluate(s, s.Caller, false)))

		assert.Contains(t, out, "Showing data from 5 minutes ago")
	})

	t.Run("no data", func(t *testing.T) {
		s := &domain.CampaignSnapshot{Err: domain.ErrNotFound}
		out := r.String(NewCampaignView(s, domain.Evaluate(s, s.Caller, false)))
		assert.True(t, strings.HasPrefix(out, "❌"))
	})

	t.Run("disconnected hint", func(t *testing.T) {
		s := snapshot()
		s.Caller = domain.Disconnected
		out := r.String(NewCampaignView(s, domain.Evaluate(s, s.Caller, false)))
		assert.Contains(t, out, "Connect a wallet")
		assert.NotContains(t, out, "Your donation")
	})
}

func TestCampaignsRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewCampaignsRenderer(&buf, false)
	r.now = fixedNow

	require.NoError(t, r.Render(&usecase.CampaignListResult{
		Filter: domain.FilterAll,
		Caller: ownerAddr,
		Campaigns: []domain.CampaignInfo{
			{ID: 0, Title: "Garden", Category: domain.CategoryCommunity, Owner: ownerAddr, CreatedAt: uint64(testNow.Add(-2 * time.Hour).Unix())},
			{ID: 1, Title: "Clinic", Category: domain.CategoryHealth, Owner: donorAddr, CreatedAt: uint64(testNow.Unix())},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "Garden")
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "you")
	assert.Contains(t, out, "0x2222…2222")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "2 campaign(s), filter: all")

	buf.Reset()
	require.NoError(t, r.Render(&usecase.CampaignListResult{Filter: domain.FilterMine}))
	assert.Equal(t, "No campaigns found (filter: my)\n", buf.String())
}

func TestSubmissionRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewSubmissionRenderer(&buf, false, xlm)

	id := uint64(4)
	require.NoError(t, r.Render(&usecase.SubmissionResult{
		Action:      domain.ActionCreate,
		Transitions: []usecase.SubmissionState{usecase.StateValidating, usecase.StateBuilding, usecase.StateIdle},
		Receipt:     &domain.TxReceipt{Hash: common.HexToHash("0xabc"), BlockNumber: 12, GasUsed: 21000},
		CampaignID:  &id,
		Benign:      true,
		Message:     "Campaign created",
	}))

	out := buf.String()
	assert.Contains(t, out, "validating → building → idle")
	assert.Contains(t, out, "Campaign created")
	assert.Contains(t, out, "Campaign ID: 4")
	assert.Contains(t, out, "Block:       12")
	assert.Contains(t, out, "could not be decoded")

	buf.Reset()
	require.NoError(t, r.Render(&usecase.SubmissionResult{
		Transitions: []usecase.SubmissionState{usecase.StateValidating, usecase.StateFailed},
		Err:         domain.ErrNotConnected,
	}))
	assert.Contains(t, buf.String(), "❌")
}

func TestHistoryRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewHistoryRenderer(&buf, xlm)
	r.now = fixedNow

	require.NoError(t, r.Render(&usecase.DonationHistoryResult{
		Limit:  1,
		Offset: 3,
		Donations: []domain.DonationRecord{
			{Donor: donorAddr, Amount: big.NewInt(12_500_000), Timestamp: uint64(testNow.Unix())},
		},
	}))
	out := buf.String()
	assert.Contains(t, out, "1.25 XLM")
	assert.Contains(t, out, "--offset 4")
}

func TestWriteStructured(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"campaign": ownerAddr, "raised": big.NewInt(42)}

	handled, err := WriteStructured(&buf, OutputJSON, v)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.JSONEq(t, `{"campaign":"0x1111111111111111111111111111111111111111","raised":42}`, buf.String())

	buf.Reset()
	handled, err = WriteStructured(&buf, OutputYAML, map[string]string{"filter": "all"})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "filter: all\n", buf.String())

	handled, err = WriteStructured(&buf, OutputTable, v)
	require.NoError(t, err)
	assert.False(t, handled)
}
