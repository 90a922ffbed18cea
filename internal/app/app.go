package app

import (
	"log/slog"

	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/blockchain"
	"github.com/trebuchet-org/crowdfund-cli/internal/adapters/httpapi"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared state
	Session  *usecase.Session
	InFlight *usecase.InFlight
	Sink     usecase.ProgressSink

	// Use cases
	ListCampaigns   *usecase.ListCampaigns
	LoadCampaign    *usecase.LoadCampaign
	ResolveCampaign *usecase.ResolveCampaign
	SubmitAction    *usecase.SubmitAction
	DonationHistory *usecase.DonationHistory
	CheckNetwork    *usecase.CheckNetwork
	ShowConfig      *usecase.ShowConfig
	ListNetworks    *usecase.ListNetworks

	// Adapters with a lifetime
	Client    *blockchain.Client
	APIServer *httpapi.Server
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	session *usecase.Session,
	inflight *usecase.InFlight,
	sink usecase.ProgressSink,
	listCampaigns *usecase.ListCampaigns,
	loadCampaign *usecase.LoadCampaign,
	resolveCampaign *usecase.ResolveCampaign,
	submitAction *usecase.SubmitAction,
	donationHistory *usecase.DonationHistory,
	checkNetwork *usecase.CheckNetwork,
	showConfig *usecase.ShowConfig,
	listNetworks *usecase.ListNetworks,
	client *blockchain.Client,
	apiServer *httpapi.Server,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Session:         session,
		InFlight:        inflight,
		Sink:            sink,
		ListCampaigns:   listCampaigns,
		LoadCampaign:    loadCampaign,
		ResolveCampaign: resolveCampaign,
		SubmitAction:    submitAction,
		DonationHistory: donationHistory,
		CheckNetwork:    checkNetwork,
		ShowConfig:      showConfig,
		ListNetworks:    listNetworks,
		Client:          client,
		APIServer:       apiServer,
	}, nil
}

// Close releases the network connection
func (a *App) Close() {
	if a.Client != nil {
		a.Client.Close()
	}
}
