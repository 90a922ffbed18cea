package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// HistoryRenderer renders a page of donation history
type HistoryRenderer struct {
	out      io.Writer
	currency domain.Currency
	now      func() time.Time
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, currency domain.Currency) *HistoryRenderer {
	return &HistoryRenderer{out: out, currency: currency, now: time.Now}
}

// Render renders the history page
func (r *HistoryRenderer) Render(result *usecase.DonationHistoryResult) error {
	if result.Err != nil {
		fmt.Fprintln(r.out, FormatError(domain.UserMessage(result.Err)))
		return nil
	}
	if len(result.Donations) == 0 {
		fmt.Fprintln(r.out, "No donations found")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"#", "DONOR", "AMOUNT", "WHEN"})
	for i, d := range result.Donations {
		t.AppendRow(table.Row{
			int(result.Offset) + i + 1,
			d.Donor.Hex(),
			r.currency.FormatWithSymbol(d.Amount),
			TimeAgo(unixTime(d.Timestamp), r.now()),
		})
	}
	t.Render()

	if uint32(len(result.Donations)) == result.Limit {
		fmt.Fprintf(r.out, "\nMore donations may exist: use --offset %d\n", result.Offset+result.Limit)
	}
	return nil
}
