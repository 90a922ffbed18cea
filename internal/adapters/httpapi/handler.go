package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// CampaignLister lists registry campaigns
type CampaignLister interface {
	Run(ctx context.Context, params usecase.ListCampaignsParams) *usecase.CampaignListResult
	Count(ctx context.Context) (uint64, error)
}

// SnapshotLoader loads one campaign snapshot
type SnapshotLoader interface {
	Run(ctx context.Context, params usecase.LoadCampaignParams) (*domain.CampaignSnapshot, error)
}

// HistoryReader pages donation history
type HistoryReader interface {
	Run(ctx context.Context, params usecase.DonationHistoryParams) *usecase.DonationHistoryResult
}

// CampaignResolver turns an address or registry id into an address
type CampaignResolver interface {
	Run(ctx context.Context, ref string) (common.Address, error)
}

// EligibilityEvaluator derives the actions available on a snapshot
type EligibilityEvaluator interface {
	Eligibility(snapshot *domain.CampaignSnapshot) domain.Eligibility
}

// publicViewer reads campaigns when no ?caller= is given. It owns nothing
// and has donated nothing.
var publicViewer = common.HexToAddress("0x0000000000000000000000000000000000000001")

// Handler serves the read-only campaign API
type Handler struct {
	list     CampaignLister
	load     SnapshotLoader
	history  HistoryReader
	resolve  CampaignResolver
	evaluate EligibilityEvaluator
	currency domain.Currency
	log      *slog.Logger
}

// NewHandler creates the API handler
func NewHandler(
	cfg *config.RuntimeConfig,
	list *usecase.ListCampaigns,
	load *usecase.LoadCampaign,
	history *usecase.DonationHistory,
	resolve *usecase.ResolveCampaign,
	session *usecase.Session,
	log *slog.Logger,
) *Handler {
	return newHandler(cfg, list, load, history, resolve, session, log)
}

func newHandler(
	cfg *config.RuntimeConfig,
	list CampaignLister,
	load SnapshotLoader,
	history HistoryReader,
	resolve CampaignResolver,
	evaluate EligibilityEvaluator,
	log *slog.Logger,
) *Handler {
	return &Handler{
		list:     list,
		load:     load,
		history:  history,
		resolve:  resolve,
		evaluate: evaluate,
		currency: domain.NewCurrency(cfg.CurrencySymbol, cfg.UnitsPerToken),
		log:      log,
	}
}

// campaignView is a snapshot plus what the caller can do with it
type campaignView struct {
	Snapshot    *domain.CampaignSnapshot `json:"snapshot"`
	Eligibility domain.Eligibility       `json:"eligibility"`
	Action      domain.Action            `json:"action"`
	Display     *displayAmounts          `json:"display,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

// displayAmounts carries amounts in human units for the browser
type displayAmounts struct {
	Currency       string `json:"currency"`
	Goal           string `json:"goal"`
	TotalRaised    string `json:"totalRaised"`
	CallerDonation string `json:"callerDonation"`
	Progress       string `json:"progress"`
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	filter, err := domain.ParseCampaignFilter(r.URL.Query().Get("filter"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, domain.UserMessage(err), reqID)
		return
	}

	params := usecase.ListCampaignsParams{Filter: filter}
	caller, err := callerParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
		return
	}
	if owner := r.URL.Query().Get("owner"); owner != "" {
		addr, err := domain.ParseAddress("owner", owner)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", domain.UserMessage(err), reqID)
			return
		}
		params.Owner = &addr
	}

	// The API has no wallet; "my" means the campaigns owned by ?caller=
	if filter == domain.FilterMine {
		if caller == nil {
			writeError(w, http.StatusBadRequest, "caller_required", "the my filter requires a caller address", reqID)
			return
		}
		params.Filter = domain.FilterAll
		params.Owner = caller
	}

	result := h.list.Run(r.Context(), params)
	if result.Err != nil {
		status, code := mapDomainError(result.Err)
		writeError(w, status, code, domain.UserMessage(result.Err), reqID)
		return
	}
	result.Filter = filter
	writeSuccess(w, result)
}

func (h *Handler) countCampaigns(w http.ResponseWriter, r *http.Request) {
	count, err := h.list.Count(r.Context())
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, domain.UserMessage(err), middleware.GetReqID(r.Context()))
		return
	}
	writeSuccess(w, map[string]uint64{"count": count})
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	address, ok := h.campaignParam(w, r)
	if !ok {
		return
	}
	caller, err := callerParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
		return
	}
	if caller == nil {
		viewer := publicViewer
		caller = &viewer
	}

	snapshot, err := h.load.Run(r.Context(), usecase.LoadCampaignParams{Address: address, ViewAs: caller})
	if err != nil {
		writeError(w, http.StatusConflict, "superseded", "request was superseded", reqID)
		return
	}
	if !snapshot.HasData() {
		status, code := mapDomainError(snapshot.Err)
		if snapshot.Err == nil {
			status, code = http.StatusNotFound, "not_found"
		}
		writeError(w, status, code, domain.UserMessage(snapshot.Err), reqID)
		return
	}

	eligibility := h.evaluate.Eligibility(snapshot)
	writeSuccess(w, campaignView{
		Snapshot:    snapshot,
		Eligibility: eligibility,
		Action:      eligibility.Action(),
		Display:     h.display(snapshot),
		Error:       domain.UserMessage(snapshot.Err),
	})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	address, ok := h.campaignParam(w, r)
	if !ok {
		return
	}
	limit, err := uint32Param(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
		return
	}
	offset, err := uint32Param(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
		return
	}

	result := h.history.Run(r.Context(), usecase.DonationHistoryParams{Address: address, Limit: limit, Offset: offset})
	if result.Err != nil {
		status, code := mapDomainError(result.Err)
		writeError(w, status, code, domain.UserMessage(result.Err), reqID)
		return
	}
	writeSuccess(w, result)
}

func (h *Handler) campaignParam(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	address, err := h.resolve.Run(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, domain.UserMessage(err), middleware.GetReqID(r.Context()))
		return common.Address{}, false
	}
	return address, true
}

func (h *Handler) display(s *domain.CampaignSnapshot) *displayAmounts {
	progress := "0"
	if s.State.ProgressPercentage != nil {
		progress = s.State.ProgressPercentage.String()
	}
	return &displayAmounts{
		Currency:       h.currency.Symbol,
		Goal:           h.currency.Format(s.Metadata.Goal),
		TotalRaised:    h.currency.Format(s.State.TotalRaised),
		CallerDonation: h.currency.Format(s.State.CallerDonation),
		Progress:       progress,
	}
}

func callerParam(r *http.Request) (*common.Address, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("caller"))
	if raw == "" {
		return nil, nil
	}
	addr, err := domain.ParseAddress("caller", raw)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func uint32Param(r *http.Request, name string) (uint32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint32(v), nil
}
