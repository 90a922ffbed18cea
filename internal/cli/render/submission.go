package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// SubmissionRenderer renders the outcome of donate, withdraw, refund and create
type SubmissionRenderer struct {
	out      io.Writer
	color    bool
	currency domain.Currency
}

// NewSubmissionRenderer creates a new submission renderer
func NewSubmissionRenderer(out io.Writer, color bool, currency domain.Currency) *SubmissionRenderer {
	return &SubmissionRenderer{out: out, color: color, currency: currency}
}

// Render renders the submission result
func (r *SubmissionRenderer) Render(result *usecase.SubmissionResult) error {
	if r.color {
		fmt.Fprintln(r.out, labelStyle.Sprint(transitionTrail(result.Transitions)))
	} else {
		fmt.Fprintln(r.out, transitionTrail(result.Transitions))
	}

	if !result.Succeeded() {
		fmt.Fprintln(r.out, FormatError(domain.UserMessage(result.Err)))
		if result.Receipt != nil {
			fmt.Fprintf(r.out, "  Transaction: %s\n", result.Receipt.Hash.Hex())
		}
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	if result.Receipt != nil {
		fmt.Fprintf(r.out, "  Transaction: %s\n", result.Receipt.Hash.Hex())
		if result.Receipt.BlockNumber > 0 {
			fmt.Fprintf(r.out, "  Block:       %d (gas used %d)\n", result.Receipt.BlockNumber, result.Receipt.GasUsed)
		}
	}
	if result.CampaignID != nil {
		fmt.Fprintf(r.out, "  Campaign ID: %d\n", *result.CampaignID)
	}
	if result.Benign {
		fmt.Fprintln(r.out, FormatWarning("The transaction confirmed but its return value could not be decoded"))
	}

	if s := result.Snapshot; s.HasData() {
		raised := r.currency.FormatWithSymbol(s.State.TotalRaised)
		goal := r.currency.FormatWithSymbol(s.Metadata.Goal)
		line := fmt.Sprintf("  %s raised of %s", raised, goal)
		if r.color {
			line = color.New(color.FgCyan).Sprint(line)
		}
		fmt.Fprintln(r.out, line)
		if s.Err != nil {
			fmt.Fprintln(r.out, FormatWarning("Refresh failed: "+domain.UserMessage(s.Err)))
		}
	}
	return nil
}

func transitionTrail(states []usecase.SubmissionState) string {
	parts := make([]string, 0, len(states))
	for _, s := range states {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, " → ")
}
