package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ErrorPayload describes a failed request
type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorResponse wraps every error payload
type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, SuccessResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, ErrorResponse{Status: "error", Error: ErrorPayload{Code: code, Message: message, RequestID: requestID}})
}

// mapDomainError picks the HTTP status and error code for err
func mapDomainError(err error) (int, string) {
	var validation *domain.ValidationError
	var rejection *domain.ContractRejection
	var transport *domain.TransportError
	var decode *domain.ResultDecodeError

	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &validation), errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNotConnected):
		return http.StatusBadRequest, "caller_required"
	case errors.As(err, &rejection):
		return http.StatusUnprocessableEntity, "contract_rejected"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.As(err, &decode):
		return http.StatusBadGateway, "decode_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
