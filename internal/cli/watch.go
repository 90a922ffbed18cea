package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/crowdfund-cli/internal/app"
	"github.com/trebuchet-org/crowdfund-cli/internal/cli/render"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// dashboard is what the watch view needs from the application
type dashboard interface {
	Load(ctx context.Context, previous *domain.CampaignSnapshot) (*domain.CampaignSnapshot, error)
	Connect(ctx context.Context) error
	Disconnect()
	Eligibility(snapshot *domain.CampaignSnapshot) domain.Eligibility
}

// appDashboard watches one campaign through the app's use cases
type appDashboard struct {
	app     *app.App
	address common.Address
}

func (d appDashboard) Load(ctx context.Context, previous *domain.CampaignSnapshot) (*domain.CampaignSnapshot, error) {
	return d.app.LoadCampaign.Run(ctx, usecase.LoadCampaignParams{Address: d.address, Previous: previous})
}

func (d appDashboard) Connect(ctx context.Context) error {
	_, err := d.app.Session.Connect(ctx)
	return err
}

func (d appDashboard) Disconnect() {
	d.app.Session.Disconnect()
}

func (d appDashboard) Eligibility(snapshot *domain.CampaignSnapshot) domain.Eligibility {
	return d.app.Session.Eligibility(snapshot)
}

type (
	snapshotMsg struct {
		snapshot *domain.CampaignSnapshot
		err      error
	}
	tickMsg    time.Time
	connectMsg struct{ err error }
)

// watchModel is the bubbletea model of the live campaign view
type watchModel struct {
	ctx      context.Context
	board    dashboard
	renderer *render.CampaignRenderer
	interval time.Duration

	snapshot *domain.CampaignSnapshot
	loading  bool
	status   string
	quitting bool
}

func newWatchModel(ctx context.Context, board dashboard, renderer *render.CampaignRenderer, interval time.Duration) watchModel {
	return watchModel{
		ctx:      ctx,
		board:    board,
		renderer: renderer,
		interval: interval,
		snapshot: &domain.CampaignSnapshot{},
	}
}

// Init is the initial command for bubbletea
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m watchModel) load() tea.Cmd {
	previous := m.snapshot
	return func() tea.Msg {
		snapshot, err := m.board.Load(m.ctx, previous)
		return snapshotMsg{snapshot: snapshot, err: err}
	}
}

func (m watchModel) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages and updates the model
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = "Refreshing..."
			return m, m.load()
		case "c":
			m.status = "Connecting wallet..."
			return m, func() tea.Msg { return connectMsg{err: m.board.Connect(m.ctx)} }
		case "d":
			m.board.Disconnect()
			m.status = "Wallet disconnected"
			m.loading = true
			return m, m.load()
		}

	case connectMsg:
		if msg.err != nil {
			m.status = domain.UserMessage(msg.err)
			return m, nil
		}
		m.status = "Wallet connected"
		m.loading = true
		return m, m.load()

	case snapshotMsg:
		// Results for a previous wallet identity are dropped silently
		if errors.Is(msg.err, domain.ErrStaleIdentity) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = domain.UserMessage(msg.err)
			return m, nil
		}
		m.snapshot = msg.snapshot
		if m.status == "Refreshing..." {
			m.status = ""
		}

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
		m.loading = true
		return m, tea.Batch(m.load(), m.tick())
	}
	return m, nil
}

// View renders the UI
func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderer.String(render.NewCampaignView(m.snapshot, m.board.Eligibility(m.snapshot))))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(color.New(color.Faint).Sprint("● loading\n"))
	} else if !m.snapshot.FetchedAt.IsZero() {
		b.WriteString(color.New(color.Faint).Sprintf("updated %s\n", m.snapshot.FetchedAt.Format(time.Kitchen)))
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("r: refresh  c: connect  d: disconnect  q: quit\n"))
	return b.String()
}

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [campaign]",
		Short: "Live view of a campaign",
		Long: `Show a campaign and refresh it periodically.

Keys:
  r  refresh now
  c  connect the configured wallet
  d  disconnect the wallet
  q  quit`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"long-running": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if app.Config.NonInteractive {
				return fmt.Errorf("watch requires an interactive terminal")
			}

			address, err := app.ResolveCampaign.Run(cmd.Context(), argOrEmpty(args))
			if err != nil {
				return err
			}

			// Reads are bound to the lifetime of the view
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			renderer := render.NewCampaignRenderer(nil, true, currency(app))
			model := newWatchModel(ctx, appDashboard{app: app, address: address}, renderer, interval)
			if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 15*time.Second, "Refresh interval (0 disables auto refresh)")

	return cmd
}
