package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// DonationHistoryParams selects one page of a campaign's donation history
type DonationHistoryParams struct {
	Address common.Address
	Limit   uint32
	Offset  uint32
}

// DonationHistoryResult is one page of history, newest first
type DonationHistoryResult struct {
	Campaign  common.Address          `json:"campaign" yaml:"campaign"`
	Limit     uint32                  `json:"limit" yaml:"limit"`
	Offset    uint32                  `json:"offset" yaml:"offset"`
	Donations []domain.DonationRecord `json:"donations" yaml:"donations"`
	Err       error                   `json:"-" yaml:"-"`
}

// DonationHistory pages through get_donation_history
type DonationHistory struct {
	contracts ContractClientFactory
	session   *Session
	log       *slog.Logger
}

// NewDonationHistory creates a new DonationHistory use case
func NewDonationHistory(contracts ContractClientFactory, session *Session, log *slog.Logger) *DonationHistory {
	return &DonationHistory{contracts: contracts, session: session, log: log}
}

// Run reads one page. Failures are reported on the result.
func (uc *DonationHistory) Run(ctx context.Context, params DonationHistoryParams) *DonationHistoryResult {
	if params.Limit == 0 {
		params.Limit = domain.DefaultHistoryLimit
	}
	result := &DonationHistoryResult{
		Campaign:  params.Address,
		Limit:     params.Limit,
		Offset:    params.Offset,
		Donations: []domain.DonationRecord{},
	}

	caller := uc.session.Identity().Address
	records, err := uc.contracts.Campaign(params.Address, caller).GetDonationHistory(params.Limit, params.Offset).Simulate(ctx)
	if err != nil {
		uc.log.Warn("failed to load donation history", "campaign", params.Address.Hex(), "error", err)
		result.Err = err
		return result
	}
	if records != nil {
		result.Donations = records
	}
	return result
}
