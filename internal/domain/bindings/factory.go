package bindings

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// Factory contract operation names
const (
	FactoryCreateCampaign      = "create_campaign"
	FactoryGetCampaign         = "get_campaign"
	FactoryGetAllCampaigns     = "get_all_campaigns"
	FactoryGetCampaignsByOwner = "get_campaigns_by_owner"
	FactoryGetCampaignCount    = "get_campaign_count"
)

// CampaignInfoTuple mirrors one element returned by get_all_campaigns.
type CampaignInfoTuple struct {
	Id        uint64
	Address   common.Address
	Title     string
	Category  string
	Owner     common.Address
	CreatedAt uint64
}

// FactoryMetaData contains the interface descriptor of the Factory (registry) contract.
var FactoryMetaData = bind.MetaData{
	ABI: `[
	{"type":"function","name":"create_campaign","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"title","type":"string"},
		{"name":"description","type":"string"},
		{"name":"goal","type":"uint256"},
		{"name":"deadline","type":"uint64"},
		{"name":"category","type":"string"},
		{"name":"currency_token","type":"address"},
		{"name":"campaign_code_hash","type":"bytes32"}],"outputs":[
		{"name":"","type":"uint64"}]},
	{"type":"function","name":"get_campaign","stateMutability":"view","inputs":[
		{"name":"id","type":"uint64"}],"outputs":[
		{"name":"","type":"address"}]},
	{"type":"function","name":"get_all_campaigns","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"tuple[]","components":[
			{"name":"id","type":"uint64"},
			{"name":"address","type":"address"},
			{"name":"title","type":"string"},
			{"name":"category","type":"string"},
			{"name":"owner","type":"address"},
			{"name":"created_at","type":"uint64"}]}]},
	{"type":"function","name":"get_campaigns_by_owner","stateMutability":"view","inputs":[
		{"name":"owner","type":"address"}],"outputs":[
		{"name":"","type":"uint64[]"}]},
	{"type":"function","name":"get_campaign_count","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"uint64"}]}
]`,
	ID: "Factory",
}

// FactoryABI returns the parsed Factory interface descriptor.
func FactoryABI() abi.ABI {
	parsed, err := FactoryMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return *parsed
}
