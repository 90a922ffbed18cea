package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the resolved configuration
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, "⚠️  No crowdfund.toml found, using flags and CROWDFUND_* environment only")
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	r.line("Network", orNotSet(result.Network))
	r.line("RPC URL", orNotSet(result.RPCURL))
	if result.ChainID != 0 {
		r.line("Chain ID", fmt.Sprintf("%d", result.ChainID))
	}
	r.line("Factory", orNotSet(result.FactoryAddress))
	r.line("Token", orNotSet(result.CurrencyToken))
	r.line("Currency", fmt.Sprintf("%s (%d units per token)", result.CurrencySymbol, result.UnitsPerToken))
	r.line("Minimums", fmt.Sprintf("goal %s, donation %s", result.MinGoal, result.MinDonation))
	r.line("Wallet", result.WalletType)
	r.line("API", fmt.Sprintf("%s (origins: %s)", result.ServeAddr, strings.Join(result.AllowedOrigins, ", ")))

	if result.Exists {
		fmt.Fprintf(r.out, "\n📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}
	return nil
}

// RenderNetworks renders the networks declared in crowdfund.toml
func (r *ConfigRenderer) RenderNetworks(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in crowdfund.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)
	for _, network := range result.Networks {
		marker := "  "
		if network.Name == result.Current {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s - %s", marker, network.Name, network.RPCURL)
		if network.ChainID != 0 {
			line += fmt.Sprintf(" (chain %d)", network.ChainID)
		}
		if network.Default {
			line += " [default]"
		}
		if network.FactoryAddress == "" {
			line += " " + FormatWarning("no factory_address")
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func (r *ConfigRenderer) line(label, value string) {
	fmt.Fprintf(r.out, "%-10s %s\n", label+":", value)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
