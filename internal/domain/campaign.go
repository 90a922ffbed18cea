package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Field limits enforced before a campaign is created
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500

	// DefaultHistoryLimit is the size of the donation history page loaded with a snapshot
	DefaultHistoryLimit = 20
)

// WalletIdentity is the connected account as observed by the client.
// The zero address is the "not connected" sentinel.
type WalletIdentity struct {
	Address   common.Address
	Connected bool
}

// Disconnected is the identity of a session without a wallet
var Disconnected = WalletIdentity{}

// IsConnected reports whether the identity can be used to read or sign
func (w WalletIdentity) IsConnected() bool {
	return w.Connected && w.Address != (common.Address{})
}

// CampaignMetadata holds the facts fixed when a campaign is created
type CampaignMetadata struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Category    Category       `json:"category" yaml:"category"`
	Owner       common.Address `json:"owner" yaml:"owner"`
	Goal        *big.Int       `json:"goal" yaml:"goal"`
	Deadline    uint64         `json:"deadline" yaml:"deadline"`
	CreatedAt   uint64         `json:"createdAt" yaml:"createdAt"`
}

// DeadlineTime returns the deadline as a time.Time
func (m *CampaignMetadata) DeadlineTime() time.Time {
	return time.Unix(int64(m.Deadline), 0)
}

// DonationRecord is one donation as recorded on-chain
type DonationRecord struct {
	Donor     common.Address `json:"donor" yaml:"donor"`
	Amount    *big.Int       `json:"amount" yaml:"amount"`
	Timestamp uint64         `json:"timestamp" yaml:"timestamp"`
}

// CampaignState is the mutable part of a campaign, as read from the contract
type CampaignState struct {
	TotalRaised        *big.Int         `json:"totalRaised" yaml:"totalRaised"`
	IsEnded            bool             `json:"isEnded" yaml:"isEnded"`
	IsGoalReached      bool             `json:"isGoalReached" yaml:"isGoalReached"`
	ProgressPercentage *big.Int         `json:"progressPercentage" yaml:"progressPercentage"`
	DonationHistory    []DonationRecord `json:"donationHistory" yaml:"donationHistory"`
	CallerDonation     *big.Int         `json:"callerDonation" yaml:"callerDonation"`
}

// CampaignInfo is the registry-level summary of a campaign
type CampaignInfo struct {
	ID        uint64         `json:"id" yaml:"id"`
	Address   common.Address `json:"address" yaml:"address"`
	Title     string         `json:"title" yaml:"title"`
	Category  Category       `json:"category" yaml:"category"`
	Owner     common.Address `json:"owner" yaml:"owner"`
	CreatedAt uint64         `json:"createdAt" yaml:"createdAt"`
}

// CampaignSnapshot is a point-in-time view of one campaign for one caller.
// It is rebuilt wholesale on every fetch.
type CampaignSnapshot struct {
	Address  common.Address    `json:"address" yaml:"address"`
	Caller   WalletIdentity    `json:"caller" yaml:"caller"`
	Metadata *CampaignMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	State    CampaignState     `json:"state" yaml:"state"`
	IsOwner  bool              `json:"isOwner" yaml:"isOwner"`

	// Ready is false when no read was attempted (no campaign or no wallet)
	Ready   bool `json:"ready" yaml:"ready"`
	Loading bool `json:"loading" yaml:"loading"`
	// Stale is set when a refresh failed and the data shown is from an earlier fetch
	Stale     bool      `json:"stale" yaml:"stale"`
	Err       error     `json:"-" yaml:"-"`
	FetchedAt time.Time `json:"fetchedAt" yaml:"fetchedAt"`
}

// HasData reports whether the snapshot carries campaign data
func (s *CampaignSnapshot) HasData() bool {
	return s != nil && s.Metadata != nil
}

// ErrorMessage returns the fetch error as text, or an empty string
func (s *CampaignSnapshot) ErrorMessage() string {
	if s == nil || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// ProgressPercentage computes floor(raised*100/goal), or 0 when goal is 0
func ProgressPercentage(raised, goal *big.Int) *big.Int {
	if goal == nil || goal.Sign() == 0 || raised == nil {
		return new(big.Int)
	}
	p := new(big.Int).Mul(raised, big.NewInt(100))
	return p.Quo(p, goal)
}

// IsZeroOrNil reports whether an amount is absent or zero
func IsZeroOrNil(v *big.Int) bool {
	return v == nil || v.Sign() == 0
}
