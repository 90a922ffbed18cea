package usecase

import (
	"context"

	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus `json:"networks" yaml:"networks"`
	Current  string          `json:"current" yaml:"current"`
}

// NetworkStatus is one [networks.<name>] section of the project file
type NetworkStatus struct {
	Name           string `json:"name" yaml:"name"`
	RPCURL         string `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID        uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	FactoryAddress string `json:"factoryAddress,omitempty" yaml:"factoryAddress,omitempty"`
	Default        bool   `json:"default" yaml:"default"`
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	config  *config.RuntimeConfig
	catalog NetworkCatalog
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, catalog NetworkCatalog) *ListNetworks {
	return &ListNetworks{
		config:  cfg,
		catalog: catalog,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	networks, err := uc.catalog.Networks(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListNetworksResult{Networks: networks}
	if uc.config.Network != nil {
		result.Current = uc.config.Network.Name
	}
	return result, nil
}
