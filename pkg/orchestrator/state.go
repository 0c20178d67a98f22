package orchestrator

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies a write flow.
type Kind string

const (
	KindJoin        Kind = "join"
	KindCreateVault Kind = "create_vault"
	KindTopUp       Kind = "top_up"
	KindWithdraw    Kind = "withdraw"
)

// Phase is the step a flow is currently in.
type Phase string

const (
	PhaseForm            Phase = "form"
	PhaseJoinBitsave     Phase = "join_bitsave"
	PhaseApproveToken    Phase = "approve_token"
	PhaseCreateSaving    Phase = "create_saving"
	PhaseIncrementSaving Phase = "increment_saving"
	PhaseWithdrawSaving  Phase = "withdraw_saving"
	PhaseFinalize        Phase = "finalize"
	PhaseDone            Phase = "done"
)

// Transaction is a transaction submitted by a flow phase.
type Transaction struct {
	Phase       Phase       `json:"phase"`
	Hash        common.Hash `json:"hash"`
	BlockNumber uint64      `json:"block_number,omitzero"`
	Confirmed   bool        `json:"confirmed"`
}

// State is what observers of a flow see. Failures return the flow to
// PhaseForm with LastError set.
type State struct {
	Phase        Phase         `json:"phase"`
	Loading      bool          `json:"loading"`
	LastError    *FlowError    `json:"last_error,omitempty"`
	Transactions []Transaction `json:"transactions"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Done reports whether the last invocation succeeded.
func (s State) Done() bool {
	return s.Phase == PhaseDone
}

func (s State) clone() State {
	out := s
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	return out
}

var phaseTitles = map[Phase]string{
	PhaseJoinBitsave:     "Join Failed",
	PhaseApproveToken:    "Approval Failed",
	PhaseCreateSaving:    "Vault Creation Failed",
	PhaseIncrementSaving: "Top Up Failed",
	PhaseWithdrawSaving:  "Withdrawal Failed",
}

var kindTitles = map[Kind]string{
	KindJoin:        "Join Failed",
	KindCreateVault: "Vault Creation Failed",
	KindTopUp:       "Top Up Failed",
	KindWithdraw:    "Withdrawal Failed",
}

func failureTitle(kind Kind, phase Phase) string {
	if t, ok := phaseTitles[phase]; ok {
		return t
	}
	if t, ok := kindTitles[kind]; ok {
		return t
	}
	return "Transaction Failed"
}
