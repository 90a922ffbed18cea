package contract

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/crowdfund-cli/internal/domain"
)

const revertedMessage = "execution reverted"

// classify maps an endpoint error to a ContractRejection when the contract
// reverted, and to a TransportError otherwise
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := revertReason(dataErr.ErrorData()); ok {
			if reason == "" {
				reason = reasonFromMessage(err.Error())
			}
			return &domain.ContractRejection{Op: op, Reason: reason, Err: err}
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), revertedMessage) {
		return &domain.ContractRejection{Op: op, Reason: reasonFromMessage(err.Error()), Err: err}
	}

	return &domain.TransportError{Op: op, Err: err}
}

// revertReason decodes revert data. ok is true when revert data is present,
// even if it isn't an Error(string) payload.
func revertReason(data any) (string, bool) {
	s, isString := data.(string)
	if !isString {
		return "", false
	}
	raw, err := hexutil.Decode(s)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		return "", true
	}
	return reason, true
}

// reasonFromMessage extracts the text after "execution reverted: "
func reasonFromMessage(msg string) string {
	idx := strings.Index(strings.ToLower(msg), revertedMessage)
	if idx == -1 {
		return ""
	}
	rest := strings.TrimSpace(msg[idx+len(revertedMessage):])
	return strings.TrimSpace(strings.TrimPrefix(rest, ":"))
}
