package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Limits are the client-side floors checked before any call is issued
type Limits struct {
	MinGoal     decimal.Decimal
	MinDonation decimal.Decimal
}

// DonationInput is the raw user input for a donation
type DonationInput struct {
	Amount string
}

// ValidateDonation checks a donation amount and converts it to smallest units
func ValidateDonation(input DonationInput, limits Limits, currency Currency) (*big.Int, error) {
	amount, err := ParseAmount("amount", input.Amount)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(limits.MinDonation) {
		return nil, &ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("Minimum donation is %s %s", limits.MinDonation.String(), currency.Symbol),
		}
	}
	return currency.ToUnits(amount), nil
}

// CreateCampaignInput is the raw user input for a new campaign
type CreateCampaignInput struct {
	Title       string
	Description string
	Category    string
	Goal        string
	Deadline    time.Time
}

// CreateCampaignArgs are the validated contract arguments for create_campaign
type CreateCampaignArgs struct {
	Owner            common.Address
	Title            string
	Description      string
	Goal             *big.Int
	Deadline         uint64
	Category         Category
	CurrencyToken    common.Address
	CampaignCodeHash common.Hash
}

// ValidateCreateCampaign checks the campaign form and returns the goal in smallest units
func ValidateCreateCampaign(input CreateCampaignInput, now time.Time, limits Limits, currency Currency) (*CreateCampaignArgs, error) {
	title := strings.TrimSpace(input.Title)
	if n := utf8.RuneCountInString(title); n == 0 || n > MaxTitleLength {
		return nil, &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be between 1 and %d characters", MaxTitleLength),
		}
	}

	description := strings.TrimSpace(input.Description)
	if n := utf8.RuneCountInString(description); n == 0 || n > MaxDescriptionLength {
		return nil, &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("Description must be between 1 and %d characters", MaxDescriptionLength),
		}
	}

	category, err := ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	goal, err := ParseAmount("goal", input.Goal)
	if err != nil {
		return nil, err
	}
	if goal.LessThan(limits.MinGoal) {
		return nil, &ValidationError{
			Field:   "goal",
			Message: fmt.Sprintf("Goal must be at least %s %s", limits.MinGoal.String(), currency.Symbol),
		}
	}

	if input.Deadline.IsZero() {
		return nil, &ValidationError{Field: "deadline", Message: "Please select campaign end date and time"}
	}
	if input.Deadline.Unix() <= now.Unix() {
		return nil, &ValidationError{Field: "deadline", Message: "Deadline must be in the future"}
	}

	return &CreateCampaignArgs{
		Title:       title,
		Description: description,
		Goal:        currency.ToUnits(goal),
		Deadline:    uint64(input.Deadline.Unix()),
		Category:    category,
	}, nil
}

// ParseAddress parses a hex address, rejecting malformed input
func ParseAddress(field, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s: %v: %q", field, ErrInvalidAddress, input),
		}
	}
	return common.HexToAddress(input), nil
}
