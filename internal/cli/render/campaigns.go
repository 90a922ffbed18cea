package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// Color styles for table format
var (
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	categoryStyle      = color.New(color.FgCyan)
	ownedStyle         = color.New(color.FgGreen, color.Bold)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
	staleStyle         = color.New(color.FgYellow)
)

// CampaignsRenderer renders campaign lists as tables
type CampaignsRenderer struct {
	out   io.Writer
	color bool
	now   func() time.Time
}

// NewCampaignsRenderer creates a new campaigns renderer
func NewCampaignsRenderer(out io.Writer, color bool) *CampaignsRenderer {
	return &CampaignsRenderer{out: out, color: color, now: time.Now}
}

// Render renders the campaign list
func (r *CampaignsRenderer) Render(result *usecase.CampaignListResult) error {
	if result.Err != nil {
		fmt.Fprintln(r.out, FormatError(domain.UserMessage(result.Err)))
		return nil
	}
	if len(result.Campaigns) == 0 {
		fmt.Fprintf(r.out, "No campaigns found (filter: %s)\n", result.Filter)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"ID", "TITLE", "CATEGORY", "OWNER", "CREATED", "ADDRESS"})
	for _, c := range result.Campaigns {
		owner := TruncateAddress(c.Owner)
		if c.Owner == result.Caller {
			owner = r.style(ownedStyle, "you")
		}
		t.AppendRow(table.Row{
			strconv.FormatUint(c.ID, 10),
			c.Title,
			r.style(categoryStyle, c.Category.Label()),
			owner,
			r.style(timestampStyle, TimeAgo(unixTime(c.CreatedAt), r.now())),
			r.style(addressStyle, c.Address.Hex()),
		})
	}
	t.Render()

	fmt.Fprintf(r.out, "\n%d campaign(s), filter: %s\n", len(result.Campaigns), result.Filter)
	return nil
}

func (r *CampaignsRenderer) style(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// newTable creates a borderless left-aligned table writer
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatDefault
	t.Style().Box.PaddingRight = "   "
	return t
}
