package cli

import (
	"context"
	"math/big"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

type fakeDashboard struct {
	snapshot     *domain.CampaignSnapshot
	err          error
	loads        int
	previous     *domain.CampaignSnapshot
	connected    bool
	connectErr   error
	disconnected int
}

func (f *fakeDashboard) Load(_ context.Context, previous *domain.CampaignSnapshot) (*domain.CampaignSnapshot, error) {
	f.loads++
	f.previous = previous
	return f.snapshot, f.err
}

func (f *fakeDashboard) Connect(context.Context) error {
	if f.connectErr == nil {
		f.connected = true
	}
	return f.connectErr
}

func (f *fakeDashboard) Disconnect() { f.disconnected++ }

func (f *fakeDashboard) Eligibility(s *domain.CampaignSnapshot) domain.Eligibility {
	return domain.Evaluate(s, s.Caller, false)
}

func watchSnapshot() *domain.CampaignSnapshot {
	return &domain.CampaignSnapshot{
		Address: common.HexToAddress("0x0000000000000000000000000000000000000c01"),
		Caller:  domain.WalletIdentity{Address: common.HexToAddress("0xbb"), Connected: true},
		Metadata: &domain.CampaignMetadata{
			Title:    "Library Roof",
			Owner:    common.HexToAddress("0xaa"),
			Goal:     big.NewInt(100_000_000),
			Deadline: uint64(time.Now().Add(time.Hour).Unix()),
		},
		State: domain.CampaignState{
			TotalRaised:        big.NewInt(10_000_000),
			ProgressPercentage: big.NewInt(10),
			CallerDonation:     big.NewInt(0),
		},
		Ready:     true,
		FetchedAt: time.Now(),
	}
}

func newTestWatch(board *fakeDashboard) watchModel {
	renderer := render.NewCampaignRenderer(nil, false, domain.NewCurrency("XLM", 10_000_000))
	return newWatchModel(context.Background(), board, renderer, 0)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies msg and runs the returned command once
func step(t *testing.T, m watchModel, msg tea.Msg) (watchModel, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(watchModel)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestWatchModel(t *testing.T) {
	t.Run("refresh loads and renders the snapshot", func(t *testing.T) {
		board := &fakeDashboard{snapshot: watchSnapshot()}
		m := newTestWatch(board)

		m, msg := step(t, m, key("r"))
		assert.True(t, m.loading)
		require.IsType(t, snapshotMsg{}, msg)

		m, _ = step(t, m, msg)
		assert.False(t, m.loading)
		assert.Equal(t, 1, board.loads)
		assert.Contains(t, m.View(), "Library Roof")
		assert.Contains(t, m.View(), "r: refresh")
	})

	t.Run("previous snapshot is passed to the loader", func(t *testing.T) {
		board := &fakeDashboard{snapshot: watchSnapshot()}
		m := newTestWatch(board)
		m, msg := step(t, m, key("r"))
		m, _ = step(t, m, msg)

		first := m.snapshot
		_, _ = step(t, m, key("r"))
		assert.Same(t, first, board.previous)
	})

	t.Run("stale identity results are discarded", func(t *testing.T) {
		board := &fakeDashboard{snapshot: watchSnapshot()}
		m := newTestWatch(board)
		before := m.snapshot

		m, _ = step(t, m, snapshotMsg{err: domain.ErrStaleIdentity})
		assert.Same(t, before, m.snapshot)
		assert.Empty(t, m.status)
	})

	t.Run("disconnect reloads", func(t *testing.T) {
		board := &fakeDashboard{snapshot: watchSnapshot()}
		m := newTestWatch(board)

		m, msg := step(t, m, key("d"))
		assert.Equal(t, 1, board.disconnected)
		assert.Equal(t, "Wallet disconnected", m.status)
		require.IsType(t, snapshotMsg{}, msg)
	})

	t.Run("connect then reload", func(t *testing.T) {
		board := &fakeDashboard{snapshot: watchSnapshot()}
		m := newTestWatch(board)

		m, msg := step(t, m, key("c"))
		require.Equal(t, connectMsg{}, msg)
		assert.True(t, board.connected)

		m, msg = step(t, m, msg)
		assert.Equal(t, "Wallet connected", m.status)
		require.IsType(t, snapshotMsg{}, msg)
	})

	t.Run("connect failure is shown", func(t *testing.T) {
		board := &fakeDashboard{connectErr: domain.ErrNotConnected}
		m := newTestWatch(board)

		m, msg := step(t, m, key("c"))
		m, next := step(t, m, msg)
		assert.Nil(t, next)
		assert.Equal(t, domain.UserMessage(domain.ErrNotConnected), m.status)
	})

	t.Run("quit", func(t *testing.T) {
		m := newTestWatch(&fakeDashboard{})
		m, msg := step(t, m, key("q"))
		assert.True(t, m.quitting)
		assert.Equal(t, tea.Quit(), msg)
		assert.Empty(t, m.View())
	})
}
