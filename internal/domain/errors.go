package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotConnected is returned when an operation needs a connected wallet
	ErrNotConnected = errors.New("please connect your wallet")

	// ErrStaleIdentity marks a result that resolved after its wallet identity
	// or campaign context was superseded. It is discarded, never shown.
	ErrStaleIdentity = errors.New("stale identity")

	// ErrActionInFlight is returned when the same action is already being submitted
	ErrActionInFlight = errors.New("action already in progress")

	// ErrSignatureRejected is returned when the wallet declines to sign
	ErrSignatureRejected = errors.New("signature rejected")

	// ErrNotFound is returned when a requested campaign doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an address is malformed
	ErrInvalidAddress = errors.New("invalid address")
)

// ValidationError is malformed or out-of-range user input. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError means the endpoint was unreachable or timed out
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ContractRejection is a call rejected by the contract's business rules
type ContractRejection struct {
	Op     string
	Reason string
	TxHash common.Hash
	Err    error
}

func (e *ContractRejection) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: rejected by contract", e.Op)
	}
	return fmt.Sprintf("%s: rejected by contract: %s", e.Op, e.Reason)
}

func (e *ContractRejection) Unwrap() error { return e.Err }

// ResultDecodeError means the client could not decode a call result. When
// TxHash is set the transaction itself was confirmed on-chain.
type ResultDecodeError struct {
	Op     string
	TxHash common.Hash
	Err    error
}

func (e *ResultDecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode result: %v", e.Op, e.Err)
}

func (e *ResultDecodeError) Unwrap() error { return e.Err }

// Confirmed reports whether the underlying transaction was mined successfully
func (e *ResultDecodeError) Confirmed() bool {
	return e.TxHash != (common.Hash{})
}

// IsBenignDecodeError reports whether err is a decode failure of a confirmed
// transaction whose message matches one of the known benign signatures.
// Any other decode failure is a genuine failure.
func IsBenignDecodeError(err error, signatures []string) bool {
	var decodeErr *ResultDecodeError
	if !errors.As(err, &decodeErr) || !decodeErr.Confirmed() {
		return false
	}
	msg := decodeErr.Error()
	for _, sig := range signatures {
		if sig != "" && strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// UserMessage converts an error into the message shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	var rejection *ContractRejection
	var transport *TransportError
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &rejection):
		if rejection.Reason != "" {
			return rejection.Reason
		}
		return "transaction rejected by contract"
	case errors.As(err, &transport):
		return fmt.Sprintf("network error: %v (try again)", transport.Err)
	case errors.Is(err, ErrNotConnected):
		return ErrNotConnected.Error()
	}
	return err.Error()
}
