package ethereum

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownChain        = errors.New("no rpc client for chain")
	ErrSimulationFailed    = errors.New("transaction would fail")
	ErrTransactionFailed   = errors.New("transaction reverted")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmations")
)

// Call is a contract interaction on one chain. For reads Value is ignored.
type Call struct {
	ChainID int64
	From    common.Address
	To      common.Address
	Data    []byte
	Value   *big.Int
}

// Receipt is the part of a mined transaction the savings flows care about.
type Receipt struct {
	TxHash        common.Hash
	BlockNumber   uint64
	GasUsed       uint64
	Confirmations uint64
}

// SimulationError carries the decoded revert reason of a failed dry-run.
type SimulationError struct {
	Reason string
	Err    error
}

func (e *SimulationError) Error() string {
	if e.Reason != "" {
		return "transaction would fail: " + e.Reason
	}
	if e.Err != nil {
		return "transaction would fail: " + e.Err.Error()
	}
	return ErrSimulationFailed.Error()
}

func (e *SimulationError) Unwrap() []error {
	return []error{ErrSimulationFailed, e.Err}
}
