package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

const progressBarWidth = 30

// CampaignView is a snapshot with the caller's eligibility, as rendered by
// show and watch
type CampaignView struct {
	Snapshot    *domain.CampaignSnapshot `json:"snapshot" yaml:"snapshot"`
	Eligibility domain.Eligibility       `json:"eligibility" yaml:"eligibility"`
	Action      domain.Action            `json:"action" yaml:"action"`
	Error       string                   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCampaignView pairs a snapshot with its eligibility
func NewCampaignView(snapshot *domain.CampaignSnapshot, eligibility domain.Eligibility) CampaignView {
	return CampaignView{
		Snapshot:    snapshot,
		Eligibility: eligibility,
		Action:      eligibility.Action(),
		Error:       domain.UserMessage(snapshot.Err),
	}
}

// CampaignRenderer renders one campaign snapshot
type CampaignRenderer struct {
	out      io.Writer
	color    bool
	currency domain.Currency
	now      func() time.Time
}

// NewCampaignRenderer creates a new campaign renderer
func NewCampaignRenderer(out io.Writer, color bool, currency domain.Currency) *CampaignRenderer {
	return &CampaignRenderer{out: out, color: color, currency: currency, now: time.Now}
}

// Render renders the campaign detail view
func (r *CampaignRenderer) Render(view CampaignView) error {
	fmt.Fprint(r.out, r.String(view))
	return nil
}

// String renders the campaign detail view to a string
func (r *CampaignRenderer) String(view CampaignView) string {
	var b strings.Builder
	s := view.Snapshot

	if !s.HasData() {
		switch {
		case s.Err != nil:
			fmt.Fprintln(&b, FormatError(domain.UserMessage(s.Err)))
		case s.Loading:
			fmt.Fprintln(&b, "Loading campaign...")
		case s.Address != (common.Address{}) && !s.Caller.IsConnected():
			fmt.Fprintf(&b, "Connect a wallet to read campaign %s\n", s.Address.Hex())
		default:
			fmt.Fprintln(&b, "No campaign loaded")
		}
		return b.String()
	}

	m := s.Metadata
	fmt.Fprintln(&b, r.style(sectionHeaderStyle, m.Title))
	if m.Description != "" {
		fmt.Fprintln(&b, m.Description)
	}
	fmt.Fprintln(&b)

	r.field(&b, "Address", s.Address.Hex())
	r.field(&b, "Category", m.Category.Label())
	owner := m.Owner.Hex()
	if s.IsOwner {
		owner += r.style(ownedStyle, " (you)")
	}
	r.field(&b, "Owner", owner)
	r.field(&b, "Created", TimeAgo(unixTime(m.CreatedAt), r.now()))
	r.field(&b, "Deadline", fmt.Sprintf("%s (%s)", m.DeadlineTime().Format(time.RFC1123), TimeRemaining(m.DeadlineTime(), r.now())))
	fmt.Fprintln(&b)

	r.field(&b, "Goal", r.currency.FormatWithSymbol(m.Goal))
	r.field(&b, "Raised", r.currency.FormatWithSymbol(s.State.TotalRaised))
	r.field(&b, "Progress", ProgressBar(s.State.ProgressPercentage, progressBarWidth))
	if s.Caller.IsConnected() {
		r.field(&b, "Your donation", r.currency.FormatWithSymbol(s.State.CallerDonation))
	}
	fmt.Fprintln(&b)

	r.field(&b, "Status", r.phase(view.Eligibility.Phase))
	if view.Action != domain.ActionNone {
		r.field(&b, "Available", r.style(color.New(color.FgGreen, color.Bold), titleCase(string(view.Action))))
	}
	if view.Eligibility.Notice != domain.NoticeNone {
		fmt.Fprintf(&b, "\n%s\n", r.style(color.New(color.FgCyan), "ℹ "+string(view.Eligibility.Notice)))
	}
	if !s.Caller.IsConnected() {
		fmt.Fprintf(&b, "\n%s\n", r.style(labelStyle, "Connect a wallet to donate, withdraw or refund"))
	}
	if s.Stale {
		fmt.Fprintf(&b, "\n%s\n", FormatWarning(fmt.Sprintf("Showing data from %s: %s", TimeAgo(s.FetchedAt, r.now()), domain.UserMessage(s.Err))))
	}

	if len(s.State.DonationHistory) > 0 {
		fmt.Fprintf(&b, "\n%s\n", r.style(sectionHeaderStyle, "Recent donations"))
		b.WriteString(r.donationTable(s.State.DonationHistory, s.Caller))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *CampaignRenderer) donationTable(donations []domain.DonationRecord, caller domain.WalletIdentity) string {
	t := newTable(nil)
	t.AppendHeader(table.Row{"DONOR", "AMOUNT", "WHEN"})
	for _, d := range donations {
		donor := TruncateAddress(d.Donor)
		if caller.IsConnected() && d.Donor == caller.Address {
			donor = r.style(ownedStyle, "you")
		}
		t.AppendRow(table.Row{donor, r.currency.FormatWithSymbol(d.Amount), r.style(timestampStyle, TimeAgo(unixTime(d.Timestamp), r.now()))})
	}
	return t.Render()
}

func (r *CampaignRenderer) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", r.style(labelStyle, fmt.Sprintf("%-14s", label+":")), value)
}

func (r *CampaignRenderer) phase(p domain.Phase) string {
	switch p {
	case domain.PhaseActive:
		return r.style(color.New(color.FgGreen), "Active")
	case domain.PhaseSucceeded:
		return r.style(color.New(color.FgBlue, color.Bold), "Goal reached")
	case domain.PhaseFailed:
		return r.style(color.New(color.FgRed), "Failed")
	}
	return r.style(staleStyle, titleCase(string(p)))
}

func (r *CampaignRenderer) style(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// ProgressBar renders a percentage as a fixed-width bar. Values above 100
// fill the bar and keep the real percentage in the label.
func ProgressBar(percent *big.Int, width int) string {
	var p int64
	if percent != nil {
		p = percent.Int64()
	}
	filled := int(min(max(p, 0), 100)) * width / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), p)
}
