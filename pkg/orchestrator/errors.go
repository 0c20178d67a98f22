package orchestrator

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/price"
)

var (
	ErrFlowBusy      = errors.New("flow is already running")
	ErrPlanWithdrawn = errors.New("savings plan already withdrawn")
	ErrNoVault       = errors.New("no savings vault for this wallet")
)

// ErrorKind is the class of a flow failure.
type ErrorKind string

const (
	ErrorConfiguration     ErrorKind = "configuration"
	ErrorValidation        ErrorKind = "validation"
	ErrorUserRejected      ErrorKind = "user_rejected"
	ErrorInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorSimulation        ErrorKind = "simulation"
	ErrorPriceUnavailable  ErrorKind = "price_unavailable"
	ErrorGeneric           ErrorKind = "generic"
)

const (
	msgUserRejected      = "transaction cancelled by user"
	msgInsufficientFunds = "Insufficient funds to complete this transaction"
	msgPriceUnavailable  = "Unable to fetch the native currency price. Please try again later"
	msgGeneric           = "Something went wrong. Please try again"
)

// FlowError is the user-facing (title, message) pair of a failed phase.
type FlowError struct {
	Kind    ErrorKind `json:"kind"`
	Phase   Phase     `json:"phase"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *FlowError) Error() string {
	return e.Title + ": " + e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// ValidationError is a rejected input, detected before any chain call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

var (
	maxTopUp = decimal.NewFromInt(1_000_000)
	minTopUp = decimal.NewFromInt(1)
)

// ValidateAmount checks a display amount against the top-up bounds and the
// wallet's balance. It is a client-side guard; the chain has the final word.
func ValidateAmount(amount string, balance decimal.Decimal, symbol string) error {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return invalid("Please enter an amount")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return invalid("Please enter a valid number")
	}
	if !d.IsPositive() {
		return invalid("Amount must be greater than 0")
	}
	if d.GreaterThan(maxTopUp) {
		return invalid("Amount cannot exceed 1,000,000")
	}
	if d.LessThan(minTopUp) {
		return invalid("Minimum amount is 1")
	}
	if d.GreaterThan(balance) {
		return invalid("Insufficient balance. You have " + balance.StringFixed(4) + " " + symbol + " available")
	}
	return nil
}

// classify converts any failure into a FlowError for the phase it happened in.
func classify(kind Kind, phase Phase, err error) *FlowError {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe
	}

	out := &FlowError{Phase: phase, Title: failureTitle(kind, phase), Err: err}
	lower := strings.ToLower(err.Error())

	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		out.Kind, out.Message = ErrorValidation, vErr.Message
	case errors.Is(err, chain.ErrChainNotFound),
		errors.Is(err, chain.ErrFactoryNotConfigured),
		errors.Is(err, chain.ErrTokenNotConfigured),
		errors.Is(err, ethereum.ErrUnknownChain):
		out.Kind, out.Message = ErrorConfiguration, err.Error()
	case errors.Is(err, price.ErrPriceUnavailable):
		out.Kind, out.Message = ErrorPriceUnavailable, msgPriceUnavailable
	case isUserRejection(lower):
		out.Kind, out.Message = ErrorUserRejected, msgUserRejected
	case isInsufficientFunds(lower):
		out.Kind, out.Message = ErrorInsufficientFunds, msgInsufficientFunds
	case errors.Is(err, ethereum.ErrSimulationFailed):
		out.Kind, out.Message = ErrorSimulation, simulationMessage(err)
	default:
		out.Kind, out.Message = ErrorGeneric, err.Error()
		if out.Message == "" {
			out.Message = msgGeneric
		}
	}
	return out
}

func isUserRejection(msg string) bool {
	return strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "rejected the request")
}

func isInsufficientFunds(msg string) bool {
	return strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "exceeds balance") ||
		strings.Contains(msg, "insufficient balance")
}

func simulationMessage(err error) string {
	var simErr *ethereum.SimulationError
	if errors.As(err, &simErr) && simErr.Reason != "" {
		return "transaction would fail: " + simErr.Reason
	}
	return ethereum.ErrSimulationFailed.Error()
}
