package orchestrator

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

// TopUpRequest identifies the plan and token of a top-up.
type TopUpRequest struct {
	Plan    string
	ChainID int64
	Token   common.Address
}

// TokenBalance reads the wallet's balance of a configured stablecoin in display units.
func (o *Orchestrator) TokenBalance(ctx context.Context, chainID int64, tokenAddr common.Address) (chain.Stablecoin, decimal.Decimal, error) {
	coin, err := o.registry.Stablecoin(chainID, tokenAddr)
	if err != nil {
		return chain.Stablecoin{}, decimal.Zero, err
	}
	raw, err := o.chain.BalanceOf(ctx, chainID, tokenAddr, o.chain.Address())
	if err != nil {
		return coin, decimal.Zero, fmt.Errorf("failed to read %s balance: %w", coin.Symbol, err)
	}
	return coin, token.ToDecimal(raw, coin.Decimals), nil
}

// TopUpFlow is a top-up flow with its amount form. The wallet balance is
// fetched when the flow is opened and again on every invocation.
type TopUpFlow struct {
	*Flow

	coin chain.Stablecoin

	mu      sync.Mutex
	balance decimal.Decimal
	amount  string
}

// OpenTopUp opens a top-up flow, reading the wallet's current token balance.
func (o *Orchestrator) OpenTopUp(ctx context.Context, req TopUpRequest) (*TopUpFlow, error) {
	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		return nil, invalid("Please select a savings plan")
	}
	factory, err := o.registry.FactoryAddress(req.ChainID)
	if err != nil {
		return nil, err
	}
	coin, err := o.registry.Stablecoin(req.ChainID, req.Token)
	if err != nil {
		return nil, err
	}

	user := o.chain.Address()
	tf := &TopUpFlow{
		Flow: o.newFlow(KindTopUp, user, req.ChainID, plan),
		coin: coin,
	}
	if err := tf.RefreshBalance(ctx); err != nil {
		return nil, err
	}

	var scaled *big.Int
	tf.finalize = true
	tf.prepare = func(ctx context.Context) error {
		// every invocation, retries included, checks against a fresh balance
		if err := tf.RefreshBalance(ctx); err != nil {
			return err
		}
		amount, balance := tf.form()
		if err := ValidateAmount(amount, balance, coin.Symbol); err != nil {
			return err
		}
		v, err := token.ParseUnits(amount, coin.Decimals)
		if err != nil {
			return invalid(fmt.Sprintf("Amount supports at most %d decimal places", coin.Decimals))
		}
		scaled = v
		return nil
	}
	tf.steps = []step{
		{phase: PhaseApproveToken, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackApprove(factory, scaled)
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: *coin.Address, Data: data}, nil
		}},
		{phase: PhaseIncrementSaving, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackIncrementSaving(plan, *coin.Address, scaled)
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: factory, Data: data}, nil
		}},
	}
	tf.OnRefetch(func() {
		// Balance is only a client-side guard; a failed refresh keeps the old one.
		_ = tf.RefreshBalance(context.Background())
	})
	return tf, nil
}

// RefreshBalance re-reads the wallet's token balance.
func (t *TopUpFlow) RefreshBalance(ctx context.Context) error {
	_, balance, err := t.o.TokenBalance(ctx, t.chainID, *t.coin.Address)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.balance = balance
	t.mu.Unlock()
	return nil
}

// Balance returns the last fetched wallet balance in display units.
func (t *TopUpFlow) Balance() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balance
}

// Token returns the stablecoin being topped up.
func (t *TopUpFlow) Token() chain.Stablecoin {
	return t.coin
}

// SetAmount stores the requested amount and validates it against the
// current balance. The amount is kept even when invalid.
func (t *TopUpFlow) SetAmount(amount string) error {
	t.mu.Lock()
	t.amount = amount
	balance := t.balance
	t.mu.Unlock()
	return ValidateAmount(amount, balance, t.coin.Symbol)
}

func (t *TopUpFlow) form() (string, decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.amount, t.balance
}

// BalanceView is the wallet balance shown next to the top-up form.
type BalanceView struct {
	ChainID  int64          `json:"chain_id"`
	Token    common.Address `json:"token"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	Balance  string         `json:"balance"`
}

// NewBalanceView renders balance with the display precision of the form.
func NewBalanceView(coin chain.Stablecoin, balance decimal.Decimal) *BalanceView {
	return &BalanceView{
		ChainID:  coin.ChainID,
		Token:    *coin.Address,
		Symbol:   coin.Symbol,
		Decimals: coin.Decimals,
		Balance:  balance.StringFixed(4),
	}
}
