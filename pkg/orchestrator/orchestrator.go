// Package orchestrator runs the multi-step savings transactions: join,
// create-vault, top-up and withdraw. Each flow is an ordered list of phases
// observable through its Flow handle.
package orchestrator

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/price"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

const secondsPerDay = 86400

// ChainWriter is the simulate/write/confirm capability of the connected wallet.
type ChainWriter interface {
	Address() common.Address
	BalanceOf(ctx context.Context, chainID int64, tokenAddr, account common.Address) (*big.Int, error)
	Simulate(ctx context.Context, call ethereum.Call) (uint64, error)
	Send(ctx context.Context, call ethereum.Call) (common.Hash, error)
	WaitConfirmations(ctx context.Context, chainID int64, txHash common.Hash, confirmations uint64) (*ethereum.Receipt, error)
}

// PlanReader reads a single savings plan of a user.
type PlanReader interface {
	Find(ctx context.Context, user common.Address, name string) (*savings.Record, error)
}

// HolderCache is told when a user's holder contract may have changed.
type HolderCache interface {
	Invalidate(user common.Address)
}

// Orchestrator builds flows for the connected wallet.
type Orchestrator struct {
	cfg      config.OrchestratorConfig
	registry *chain.Registry
	chain    ChainWriter
	oracle   price.Oracle
	plans    PlanReader
	holders  HolderCache
	locks    *keyedLock
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *zap.Logger
}

// New creates an Orchestrator.
func New(
	cfg config.OrchestratorConfig,
	registry *chain.Registry,
	writer ChainWriter,
	oracle price.Oracle,
	plans PlanReader,
	holders HolderCache,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		chain:    writer,
		oracle:   oracle,
		plans:    plans,
		holders:  holders,
		locks:    newKeyedLock(),
		now:      time.Now,
		sleep:    sleepContext,
		logger:   logger,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wallet returns the connected wallet address.
func (o *Orchestrator) Wallet() common.Address {
	return o.chain.Address()
}

func (o *Orchestrator) confirmations() uint64 {
	if o.cfg.Confirmations == 0 {
		return 1
	}
	return o.cfg.Confirmations
}

// CreateVaultRequest holds the vault creation form.
type CreateVaultRequest struct {
	Name              string
	ChainID           int64
	Token             common.Address
	Amount            string
	PenaltyPercentage uint8
	DurationDays      int
	// FeeUSD overrides the configured vault creation fee when set.
	FeeUSD string
}

// CreateVault builds the approve -> createSaving flow. The USD fee is
// converted at invoke time and sent as the createSaving value.
func (o *Orchestrator) CreateVault(req CreateVaultRequest) *Flow {
	user := o.chain.Address()
	name := strings.TrimSpace(req.Name)
	f := o.newFlow(KindCreateVault, user, req.ChainID, name)

	var (
		factory  common.Address
		coin     chain.Stablecoin
		scaled   *big.Int
		fee      *big.Int
		maturity *big.Int
	)

	f.prepare = func(ctx context.Context) error {
		var err error
		if factory, coin, scaled, err = o.createVaultForm(req); err != nil {
			return err
		}

		feeUSD := req.FeeUSD
		if feeUSD == "" {
			feeUSD = o.cfg.VaultCreationFeeUSD
		}
		if fee, err = o.nativeFee(ctx, req.ChainID, feeUSD); err != nil {
			return err
		}

		maturity = big.NewInt(o.now().Unix() + int64(req.DurationDays)*secondsPerDay + int64(o.cfg.MaturityBuffer/time.Second))
		return nil
	}

	f.steps = []step{
		{phase: PhaseApproveToken, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackApprove(factory, scaled)
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: *coin.Address, Data: data}, nil
		}},
		{phase: PhaseCreateSaving, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackCreateSaving(contracts.CreateSavingArgs{
				Name:              name,
				MaturityTime:      maturity,
				PenaltyPercentage: req.PenaltyPercentage,
				SafeMode:          false,
				Token:             req.Token,
				Amount:            scaled,
			})
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: factory, Data: data, Value: fee}, nil
		}},
	}
	return f
}

// ValidateCreateVault runs the create-vault form checks that need no chain
// access, so a bad form can be rejected before a flow is started.
func (o *Orchestrator) ValidateCreateVault(req CreateVaultRequest) error {
	_, _, _, err := o.createVaultForm(req)
	return err
}

func (o *Orchestrator) createVaultForm(req CreateVaultRequest) (common.Address, chain.Stablecoin, *big.Int, error) {
	if strings.TrimSpace(req.Name) == "" {
		return common.Address{}, chain.Stablecoin{}, nil, invalid("Please enter a name for your savings plan")
	}
	if req.DurationDays <= 0 {
		return common.Address{}, chain.Stablecoin{}, nil, invalid("Duration must be at least 1 day")
	}
	if req.PenaltyPercentage > 100 {
		return common.Address{}, chain.Stablecoin{}, nil, invalid("Penalty must be between 0 and 100")
	}
	factory, err := o.registry.FactoryAddress(req.ChainID)
	if err != nil {
		return common.Address{}, chain.Stablecoin{}, nil, err
	}
	coin, err := o.registry.Stablecoin(req.ChainID, req.Token)
	if err != nil {
		return common.Address{}, chain.Stablecoin{}, nil, err
	}
	scaled, err := o.parseAmount(req.Amount, coin.Decimals)
	if err != nil {
		return common.Address{}, chain.Stablecoin{}, nil, err
	}
	return factory, coin, scaled, nil
}

// JoinRequest holds the join form.
type JoinRequest struct {
	ChainID int64
	// FeeUSD overrides the configured join fee when set.
	FeeUSD string
}

// Join builds the joinBitsave flow that deploys the user's holder contract.
func (o *Orchestrator) Join(req JoinRequest) *Flow {
	user := o.chain.Address()
	f := o.newFlow(KindJoin, user, req.ChainID, "")

	var (
		factory common.Address
		fee     *big.Int
	)
	f.prepare = func(ctx context.Context) error {
		var err error
		if factory, err = o.registry.FactoryAddress(req.ChainID); err != nil {
			return err
		}
		feeUSD := req.FeeUSD
		if feeUSD == "" {
			feeUSD = o.cfg.JoinFeeUSD
		}
		fee, err = o.nativeFee(ctx, req.ChainID, feeUSD)
		return err
	}
	f.steps = []step{
		{phase: PhaseJoinBitsave, call: func(context.Context) (ethereum.Call, error) {
			data, err := contracts.PackJoinBitsave()
			if err != nil {
				return ethereum.Call{}, err
			}
			return ethereum.Call{ChainID: req.ChainID, From: user, To: factory, Data: data, Value: fee}, nil
		}},
	}
	f.after = func() {
		if o.holders != nil {
			o.holders.Invalidate(user)
		}
	}
	return f
}

// nativeFee converts a USD fee into wei of the chain's native currency.
func (o *Orchestrator) nativeFee(ctx context.Context, chainID int64, feeUSD string) (*big.Int, error) {
	c, ok := o.registry.ChainByID(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", chain.ErrChainNotFound, chainID)
	}
	usd, err := decimal.NewFromString(feeUSD)
	if err != nil {
		return nil, fmt.Errorf("invalid fee %q: %w", feeUSD, err)
	}
	if usd.IsZero() {
		return new(big.Int), nil
	}
	p, err := o.oracle.PriceOf(ctx, c.NativeCurrency)
	if err != nil {
		return nil, fmt.Errorf("%s price: %w", c.NativeCurrency, err)
	}
	return price.ToNative(usd, p)
}

func (o *Orchestrator) parseAmount(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, invalid("Please enter an amount")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, invalid("Please enter a valid number")
	}
	if !d.IsPositive() {
		return nil, invalid("Amount must be greater than 0")
	}
	scaled, err := token.FromDecimal(d, decimals)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Amount supports at most %d decimal places", decimals))
	}
	return scaled, nil
}
