package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
	run    func(promptui.Select) (int, error)
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg, run: runSelect}
}

func runSelect(p promptui.Select) (int, error) {
	index, _, err := p.Run()
	return index, err
}

// SelectCampaign asks the user to pick one campaign from the registry list
func (s *SelectorAdapter) SelectCampaign(ctx context.Context, campaigns []domain.CampaignInfo, prompt string) (*domain.CampaignInfo, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(campaigns) == 0 {
		return nil, fmt.Errorf("no campaigns to select from")
	}

	if len(campaigns) == 1 {
		return &campaigns[0], nil
	}

	options := formatCampaignOptions(campaigns)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to search, Enter to select"),
	}

	index, err := s.run(promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	})
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &campaigns[index], nil
}

// formatCampaignOptions renders "#id Title [category] (0xabcd…1234)"
func formatCampaignOptions(campaigns []domain.CampaignInfo) []string {
	options := make([]string, len(campaigns))
	for i, c := range campaigns {
		hex := c.Address.Hex()
		short := hex[:6] + "…" + hex[len(hex)-4:]

		id := color.New(color.FgWhite, color.Faint).Sprintf("#%d", c.ID)
		title := color.New(color.FgWhite, color.Bold).Sprint(c.Title)
		category := color.New(color.FgYellow).Sprintf("[%s]", c.Category.Label())
		addr := color.New(color.FgBlue).Sprint(short)

		options[i] = fmt.Sprintf("%s %s %s (%s)", id, title, category, addr)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.CampaignSelector = (*SelectorAdapter)(nil)
