package service

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/bitsave-middleware/pkg/app/errors"
	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/flowstore"
	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
	"github.com/chainsafe/bitsave-middleware/pkg/price"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

const baseChainID = 8453

var (
	testUser    = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testFactory = common.HexToAddress("0x000000000000000000000000000000000000fac7")
	usdc        = common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
)

type testEnv struct {
	chain *MockChain
	plans *MockPlans
	store flowstore.Store
}

func newTestService(t *testing.T, env testEnv) *FlowService {
	t.Helper()
	chains := config.DefaultChains()
	chains[0].FactoryContract = testFactory.Hex()
	registry, err := chain.NewRegistry(chains)
	require.NoError(t, err)

	if env.chain == nil {
		env.chain = &MockChain{}
	}
	env.chain.Wallet = testUser
	if env.plans == nil {
		env.plans = &MockPlans{}
	}

	orch := orchestrator.New(config.OrchestratorConfig{
		Confirmations:       1,
		MaturityBuffer:      15 * time.Minute,
		VaultCreationFeeUSD: "1",
		JoinFeeUSD:          "1",
	}, registry, env.chain, price.Static{"ETH": decimal.NewFromInt(2000)}, env.plans, nil, zap.NewNop())

	svc, err := NewService(orch, env.store, 8, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Wait)
	return svc
}

func activeRecord(name string, maturity time.Time) *savings.Record {
	return &savings.Record{
		Name:                name,
		ChainID:             baseChainID,
		Amount:              big.NewInt(100_000_000),
		Token:               usdc,
		TokenInfo:           token.Info{Symbol: "USDC", Decimals: 6},
		InterestAccumulated: new(big.Int),
		StartTime:           maturity.Add(-30 * 24 * time.Hour).Unix(),
		MaturityTime:        maturity.Unix(),
		PenaltyPercentage:   10,
		IsValid:             true,
	}
}

func requireCategory(t *testing.T, err error, cat apperrors.Category) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.Is(err, cat), "expected %s, got %v", cat, err)
}

func TestFlowService_CreateVaultRunsToDone(t *testing.T) {
	mc := &MockChain{}
	svc := newTestService(t, testEnv{chain: mc})

	snap, err := svc.CreateVault(context.Background(), orchestrator.CreateVaultRequest{
		Name:              "rent",
		ChainID:           baseChainID,
		Token:             usdc,
		Amount:            "25",
		PenaltyPercentage: 5,
		DurationDays:      30,
	})
	require.NoError(t, err)
	assert.Equal(t, orchestrator.KindCreateVault, snap.Kind)
	assert.Equal(t, "rent", snap.Plan)

	svc.Wait()

	got, err := svc.GetFlow(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.PhaseDone, got.State.Phase)
	assert.Len(t, got.State.Transactions, 2)
	assert.Len(t, mc.Sent(), 2)
}

func TestFlowService_CreateVaultRejectsFormUpFront(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*orchestrator.CreateVaultRequest)
		message string
	}{
		{"empty name", func(r *orchestrator.CreateVaultRequest) { r.Name = " " }, "Please enter a name for your savings plan"},
		{"zero duration", func(r *orchestrator.CreateVaultRequest) { r.DurationDays = 0 }, "Duration must be at least 1 day"},
		{"bad amount", func(r *orchestrator.CreateVaultRequest) { r.Amount = "-3" }, "Amount must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &MockChain{}
			svc := newTestService(t, testEnv{chain: mc})
			req := orchestrator.CreateVaultRequest{
				Name:              "rent",
				ChainID:           baseChainID,
				Token:             usdc,
				Amount:            "25",
				PenaltyPercentage: 5,
				DurationDays:      30,
			}
			tt.mutate(&req)

			snap, err := svc.CreateVault(context.Background(), req)
			requireCategory(t, err, apperrors.CategoryDataError)
			assert.Nil(t, snap)

			var svcErr *apperrors.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.message, svcErr.Message)

			flows, err := svc.ListFlows(context.Background(), testUser)
			require.NoError(t, err)
			assert.Empty(t, flows, "a rejected form must not start a flow")
			assert.Empty(t, mc.Sent())
		})
	}

	t.Run("unconfigured token", func(t *testing.T) {
		svc := newTestService(t, testEnv{})
		_, err := svc.CreateVault(context.Background(), orchestrator.CreateVaultRequest{
			Name: "rent", ChainID: baseChainID, Token: common.HexToAddress("0x01"), Amount: "1", DurationDays: 1,
		})
		requireCategory(t, err, apperrors.CategoryDataError)
	})
}

func TestFlowService_FailureIsReportedInState(t *testing.T) {
	mc := &MockChain{SimulateFunc: func(context.Context, ethereum.Call) (uint64, error) {
		return 0, errors.New("execution reverted: not a member")
	}}
	svc := newTestService(t, testEnv{chain: mc})

	snap, err := svc.Join(context.Background(), orchestrator.JoinRequest{ChainID: baseChainID})
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.GetFlow(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.PhaseForm, got.State.Phase)
	require.NotNil(t, got.State.LastError)
	assert.Equal(t, "Join Failed", got.State.LastError.Title)
	assert.Empty(t, mc.Sent())
}

func TestFlowService_Retry(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	mc := &MockChain{SimulateFunc: func(context.Context, ethereum.Call) (uint64, error) {
		if failing.Load() {
			return 0, errors.New("execution reverted")
		}
		return 21000, nil
	}}
	svc := newTestService(t, testEnv{chain: mc})

	snap, err := svc.Join(context.Background(), orchestrator.JoinRequest{ChainID: baseChainID})
	require.NoError(t, err)
	svc.Wait()

	failing.Store(false)
	_, err = svc.Retry(context.Background(), snap.ID)
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.GetFlow(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.PhaseDone, got.State.Phase)
	assert.Nil(t, got.State.LastError)

	// a completed flow is never sent twice
	_, err = svc.Retry(context.Background(), snap.ID)
	requireCategory(t, err, apperrors.CategoryDataConflict)

	_, err = svc.Retry(context.Background(), uuid.New())
	requireCategory(t, err, apperrors.CategoryResourceNotFound)
}

func TestFlowService_TopUpRejectsAmountUpFront(t *testing.T) {
	mc := &MockChain{Balance: big.NewInt(5_000_000)}
	svc := newTestService(t, testEnv{chain: mc})

	_, err := svc.TopUp(context.Background(), orchestrator.TopUpRequest{
		Plan: "rent", ChainID: baseChainID, Token: usdc,
	}, "10")
	requireCategory(t, err, apperrors.CategoryDataError)

	var svcErr *apperrors.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Insufficient balance. You have 5.0000 USDC available", svcErr.Message)
	assert.Empty(t, mc.Sent())
}

func TestFlowService_TopUpBalance(t *testing.T) {
	mc := &MockChain{Balance: big.NewInt(12_345_678)}
	svc := newTestService(t, testEnv{chain: mc})

	b, err := svc.TopUpBalance(context.Background(), baseChainID, usdc)
	require.NoError(t, err)
	assert.Equal(t, "USDC", b.Symbol)
	assert.Equal(t, "12.3457", b.Balance)

	_, err = svc.TopUpBalance(context.Background(), baseChainID, common.HexToAddress("0x01"))
	requireCategory(t, err, apperrors.CategoryDataError)
}

func TestFlowService_WithdrawErrors(t *testing.T) {
	withdrawn := activeRecord("old", time.Now().Add(time.Hour))
	withdrawn.IsValid = false
	svc := newTestService(t, testEnv{plans: &MockPlans{Records: map[string]*savings.Record{"old": withdrawn}}})

	_, err := svc.Withdraw(context.Background(), orchestrator.WithdrawRequest{Plan: "old", ChainID: baseChainID})
	requireCategory(t, err, apperrors.CategoryDataConflict)

	_, err = svc.WithdrawPreview(context.Background(), orchestrator.WithdrawRequest{Plan: "missing", ChainID: baseChainID})
	requireCategory(t, err, apperrors.CategoryResourceNotFound)

	_, err = svc.Withdraw(context.Background(), orchestrator.WithdrawRequest{Plan: "old", ChainID: 1135})
	requireCategory(t, err, apperrors.CategoryDataError)
}

func TestFlowService_WithdrawPreview(t *testing.T) {
	rec := activeRecord("rent", time.Now().Add(24*time.Hour))
	svc := newTestService(t, testEnv{plans: &MockPlans{Records: map[string]*savings.Record{"rent": rec}}})

	p, err := svc.WithdrawPreview(context.Background(), orchestrator.WithdrawRequest{Plan: "rent", ChainID: baseChainID})
	require.NoError(t, err)
	assert.False(t, p.IsMatured)
	assert.Equal(t, "USDC", p.Symbol)
	assert.Equal(t, "10.00", p.Payout.Penalty)
	assert.Equal(t, "90.00", p.Payout.Net)
}

func TestFlowService_PersistsEveryTransition(t *testing.T) {
	store := NewMockStore()
	rec := activeRecord("rent", time.Now().Add(-time.Hour))
	svc := newTestService(t, testEnv{
		plans: &MockPlans{Records: map[string]*savings.Record{"rent": rec}},
		store: store,
	})

	snap, err := svc.Withdraw(context.Background(), orchestrator.WithdrawRequest{Plan: "rent", ChainID: baseChainID})
	require.NoError(t, err)
	svc.Wait()

	phases := store.Phases(snap.ID)
	require.NotEmpty(t, phases)
	assert.Equal(t, orchestrator.PhaseForm, phases[0])
	assert.Contains(t, phases, orchestrator.PhaseWithdrawSaving)
	assert.Equal(t, orchestrator.PhaseDone, phases[len(phases)-1])

	listed, err := svc.ListFlows(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, snap.ID, listed[0].ID)
}

func TestFlowService_GetFlowFallsBackToStore(t *testing.T) {
	store := NewMockStore()
	old := &orchestrator.Snapshot{
		ID:        uuid.New(),
		Kind:      orchestrator.KindJoin,
		User:      testUser,
		ChainID:   baseChainID,
		CreatedAt: time.Now().Add(-time.Hour),
		State:     orchestrator.State{Phase: orchestrator.PhaseDone},
	}
	require.NoError(t, store.SaveFlow(context.Background(), old))
	svc := newTestService(t, testEnv{store: store})

	got, err := svc.GetFlow(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.KindJoin, got.Kind)

	_, err = svc.GetFlow(context.Background(), uuid.New())
	requireCategory(t, err, apperrors.CategoryResourceNotFound)
}

func TestFlowService_ListFlowsInMemoryNewestFirst(t *testing.T) {
	svc := newTestService(t, testEnv{})

	first, err := svc.Join(context.Background(), orchestrator.JoinRequest{ChainID: baseChainID})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Join(context.Background(), orchestrator.JoinRequest{ChainID: baseChainID})
	require.NoError(t, err)
	svc.Wait()

	listed, err := svc.ListFlows(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)

	other, err := svc.ListFlows(context.Background(), common.HexToAddress("0xbeef"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
