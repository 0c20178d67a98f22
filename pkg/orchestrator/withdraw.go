package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
)

// WithdrawRequest identifies the plan to withdraw.
type WithdrawRequest struct {
	Plan    string
	ChainID int64
}

// WithdrawFlow is a withdraw flow together with the plan it closes.
type WithdrawFlow struct {
	*Flow
	record savings.Record
}

// OpenWithdraw reads the plan and opens a withdraw flow for it.
func (o *Orchestrator) OpenWithdraw(ctx context.Context, req WithdrawRequest) (*WithdrawFlow, error) {
	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		return nil, invalid("Please select a savings plan")
	}
	factory, err := o.registry.FactoryAddress(req.ChainID)
	if err != nil {
		return nil, err
	}

	user := o.chain.Address()
	rec, err := o.plans.Find(ctx, user, plan)
	switch {
	case errors.Is(err, savings.ErrNoHolder):
		return nil, ErrNoVault
	case err != nil:
		return nil, fmt.Errorf("failed to read plan %q: %w", plan, err)
	case !rec.IsValid:
		return nil, ErrPlanWithdrawn
	case rec.ChainID != req.ChainID:
		return nil, invalid(fmt.Sprintf("Savings plan %q is on %s, switch to that network to withdraw",
			plan, o.registry.ChainNameForID(rec.ChainID)))
	}

	wf := &WithdrawFlow{
		Flow:   o.newFlow(KindWithdraw, user, req.ChainID, plan),
		record: *rec,
	}
	wf.finalize = true
	wf.steps = []step{
		{phase: PhaseWithdrawSaving, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackWithdrawSaving(plan)
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: factory, Data: data}, nil
		}},
	}
	return wf, nil
}

// Record returns the plan as read when the flow was opened.
func (w *WithdrawFlow) Record() savings.Record {
	return w.record
}

// Preview estimates the payout of withdrawing now. The chain applies the
// actual penalty.
func (w *WithdrawFlow) Preview() savings.Payout {
	return savings.PayoutFor(w.record, w.o.now())
}

// WithdrawPreview is what the user confirms before withdrawing.
type WithdrawPreview struct {
	Plan         string         `json:"plan"`
	ChainID      int64          `json:"chain_id"`
	Token        string         `json:"token"`
	Symbol       string         `json:"symbol"`
	MaturityTime int64          `json:"maturity_time"`
	IsMatured    bool           `json:"is_matured"`
	Payout       savings.Payout `json:"payout"`
}

// PreviewView renders the withdraw confirmation.
func (w *WithdrawFlow) PreviewView() *WithdrawPreview {
	return &WithdrawPreview{
		Plan:         w.record.Name,
		ChainID:      w.record.ChainID,
		Token:        w.record.Token.Hex(),
		Symbol:       w.record.TokenInfo.Symbol,
		MaturityTime: w.record.MaturityTime,
		IsMatured:    w.record.IsMatured(w.o.now()),
		Payout:       w.Preview(),
	}
}
