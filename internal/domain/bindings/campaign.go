package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// Campaign contract operation names
const (
	CampaignInitialize            = "initialize"
	CampaignDonate                = "donate"
	CampaignGetTotalRaised        = "get_total_raised"
	CampaignGetDonation           = "get_donation"
	CampaignGetMetadata           = "get_metadata"
	CampaignGetDonationHistory    = "get_donation_history"
	CampaignIsEnded               = "is_ended"
	CampaignIsGoalReached         = "is_goal_reached"
	CampaignGetProgressPercentage = "get_progress_percentage"
	CampaignWithdraw              = "withdraw"
	CampaignRefund                = "refund"
)

// CampaignMetadataTuple mirrors the tuple returned by get_metadata.
type CampaignMetadataTuple struct {
	Title       string
	Description string
	Category    string
	Owner       common.Address
	Goal        *big.Int
	Deadline    uint64
	CreatedAt   uint64
}

// DonationRecordTuple mirrors one element returned by get_donation_history.
type DonationRecordTuple struct {
	Donor     common.Address
	Amount    *big.Int
	Timestamp uint64
}

// CampaignMetaData contains the interface descriptor of a Campaign contract.
var CampaignMetaData = bind.MetaData{
	ABI: `[
	{"type":"function","name":"initialize","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"title","type":"string"},
		{"name":"description","type":"string"},
		{"name":"goal","type":"uint256"},
		{"name":"deadline","type":"uint64"},
		{"name":"category","type":"string"},
		{"name":"currency_token","type":"address"}],"outputs":[]},
	{"type":"function","name":"donate","stateMutability":"nonpayable","inputs":[
		{"name":"donor","type":"address"},
		{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"get_total_raised","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"uint256"}]},
	{"type":"function","name":"get_donation","stateMutability":"view","inputs":[
		{"name":"donor","type":"address"}],"outputs":[
		{"name":"","type":"uint256"}]},
	{"type":"function","name":"get_metadata","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"tuple","components":[
			{"name":"title","type":"string"},
			{"name":"description","type":"string"},
			{"name":"category","type":"string"},
			{"name":"owner","type":"address"},
			{"name":"goal","type":"uint256"},
			{"name":"deadline","type":"uint64"},
			{"name":"created_at","type":"uint64"}]}]},
	{"type":"function","name":"get_donation_history","stateMutability":"view","inputs":[
		{"name":"limit","type":"uint32"},
		{"name":"offset","type":"uint32"}],"outputs":[
		{"name":"","type":"tuple[]","components":[
			{"name":"donor","type":"address"},
			{"name":"amount","type":"uint256"},
			{"name":"timestamp","type":"uint64"}]}]},
	{"type":"function","name":"is_ended","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"bool"}]},
	{"type":"function","name":"is_goal_reached","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"bool"}]},
	{"type":"function","name":"get_progress_percentage","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"uint256"}]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"}],"outputs":[
		{"name":"","type":"uint256"}]},
	{"type":"function","name":"refund","stateMutability":"nonpayable","inputs":[
		{"name":"donor","type":"address"}],"outputs":[
		{"name":"","type":"uint256"}]}
]`,
	ID: "Campaign",
}

// CampaignABI returns the parsed Campaign interface descriptor.
func CampaignABI() abi.ABI {
	parsed, err := CampaignMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return *parsed
}
