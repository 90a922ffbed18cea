package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/blockchain"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/contract"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/httpapi"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/interactive"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/progress"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/wallet"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// BlockchainSet provides the lazily connecting RPC client
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(contract.Backend), new(*blockchain.Client)),
	wire.Bind(new(wallet.ChainIDSource), new(*blockchain.Client)),
	wire.Bind(new(usecase.NetworkChecker), new(*blockchain.Client)),
)

// ContractSet provides the typed contract clients
var ContractSet = wire.NewSet(
	contract.NewClientFactory,
	wire.Bind(new(usecase.ContractClientFactory), new(*contract.ClientFactory)),
)

// WalletSet provides the signing wallet
var WalletSet = wire.NewSet(
	wallet.NewKeyWallet,
	wire.Bind(new(usecase.Wallet), new(*wallet.KeyWallet)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.CampaignSelector), new(*interactive.SelectorAdapter)),
)

// ProgressSet provides the progress sink for the configured output
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// HTTPSet provides the read-only campaign API
var HTTPSet = wire.NewSet(
	httpapi.NewHandler,
	httpapi.NewServer,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	ContractSet,
	WalletSet,
	InteractiveSet,
	ProgressSet,
	HTTPSet,
)
