package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// NetworkRenderer renders the result of a network check
type NetworkRenderer struct {
	out io.Writer
}

// NewNetworkRenderer creates a new network renderer
func NewNetworkRenderer(out io.Writer) *NetworkRenderer {
	return &NetworkRenderer{out: out}
}

// Render renders the network health
func (r *NetworkRenderer) Render(health *domain.NetworkHealth) error {
	name := health.Network
	if name == "" {
		name = "(rpc_url)"
	}
	fmt.Fprintf(r.out, "🌐 Network: %s\n", name)
	fmt.Fprintf(r.out, "  RPC URL:  %s\n", health.RPCURL)
	fmt.Fprintf(r.out, "  Chain ID: %d\n", health.ChainID)
	fmt.Fprintf(r.out, "  Factory:  %s\n", health.Factory.Hex())

	if !health.FactoryExists {
		fmt.Fprintln(r.out, FormatError(health.Reason))
		return nil
	}
	if health.Campaigns != nil {
		fmt.Fprintf(r.out, "  Campaigns: %d\n", *health.Campaigns)
	}
	if health.Reason != "" {
		fmt.Fprintln(r.out, FormatWarning(health.Reason))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess("Factory is deployed and reachable"))
	return nil
}
