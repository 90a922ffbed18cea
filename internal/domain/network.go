package domain

import "github.com/ethereum/go-ethereum/common"

// NetworkHealth is the result of checking the configured endpoint and registry
type NetworkHealth struct {
	Network       string         `json:"network" yaml:"network"`
	RPCURL        string         `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID       uint64         `json:"chainId" yaml:"chainId"`
	Factory       common.Address `json:"factory" yaml:"factory"`
	FactoryExists bool           `json:"factoryExists" yaml:"factoryExists"`
	Campaigns     *uint64        `json:"campaigns,omitempty" yaml:"campaigns,omitempty"`
	Reason        string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}
