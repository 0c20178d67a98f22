package flowstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
	"github.com/chainsafe/bitsave-middleware/pkg/pgutil"
	mghelper "github.com/chainsafe/bitsave-middleware/pkg/pgutil/migrations"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()
	ctx := context.Background()
	db := pgutil.NewTestDB(t)

	if err := mghelper.CreateSchema(ctx, db, &FlowDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db)
}

func newSnapshot(user common.Address, kind orchestrator.Kind, plan string, created time.Time) *orchestrator.Snapshot {
	return &orchestrator.Snapshot{
		ID:        uuid.New(),
		Kind:      kind,
		User:      user,
		ChainID:   8453,
		Plan:      plan,
		CreatedAt: created,
		State: orchestrator.State{
			Phase:        orchestrator.PhaseForm,
			Loading:      true,
			Transactions: []orchestrator.Transaction{},
			UpdatedAt:    created,
		},
	}
}

func TestFlowPGStore_SaveAndUpdate(t *testing.T) {
	ctx, s := setupStore(t)
	created := time.Now().UTC().Truncate(time.Millisecond)

	snap := newSnapshot(alice, orchestrator.KindTopUp, "rent", created)
	if err := s.SaveFlow(ctx, snap); err != nil {
		t.Fatalf("SaveFlow() failed: %v", err)
	}

	hash := common.HexToHash("0xabc")
	snap.State.Phase = orchestrator.PhaseForm
	snap.State.Loading = false
	snap.State.Transactions = []orchestrator.Transaction{
		{Phase: orchestrator.PhaseApproveToken, Hash: hash, BlockNumber: 42, Confirmed: true},
	}
	snap.State.LastError = &orchestrator.FlowError{
		Kind:    orchestrator.ErrorUserRejected,
		Phase:   orchestrator.PhaseIncrementSaving,
		Title:   "Top Up Failed",
		Message: "transaction cancelled by user",
	}
	snap.State.UpdatedAt = created.Add(time.Second)
	if err := s.SaveFlow(ctx, snap); err != nil {
		t.Fatalf("SaveFlow() update failed: %v", err)
	}

	got, err := s.GetFlow(ctx, snap.ID)
	if err != nil {
		t.Fatalf("GetFlow() failed: %v", err)
	}
	if got.User != alice {
		t.Fatalf("expected user %s, got %s", alice.Hex(), got.User.Hex())
	}
	if got.Plan != "rent" || got.Kind != orchestrator.KindTopUp {
		t.Fatalf("unexpected identity: kind=%s plan=%q", got.Kind, got.Plan)
	}
	if got.State.Loading {
		t.Fatalf("expected loading=false after update")
	}
	if len(got.State.Transactions) != 1 || got.State.Transactions[0].Hash != hash || got.State.Transactions[0].BlockNumber != 42 {
		t.Fatalf("unexpected transactions: %+v", got.State.Transactions)
	}
	if got.State.LastError == nil || got.State.LastError.Title != "Top Up Failed" {
		t.Fatalf("expected last error to round trip, got %+v", got.State.LastError)
	}
}

func TestFlowPGStore_GetFlowNotFound(t *testing.T) {
	ctx, s := setupStore(t)

	_, err := s.GetFlow(ctx, uuid.New())
	if !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("expected ErrFlowNotFound, got %v", err)
	}
}

func TestFlowPGStore_ListFlowsFiltersAndOrders(t *testing.T) {
	ctx, s := setupStore(t)
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := newSnapshot(alice, orchestrator.KindCreateVault, "rent", base)
	newer := newSnapshot(alice, orchestrator.KindWithdraw, "rent", base.Add(time.Minute))
	other := newSnapshot(alice, orchestrator.KindTopUp, "holiday", base.Add(2*time.Minute))
	foreign := newSnapshot(bob, orchestrator.KindJoin, "", base)
	for _, snap := range []*orchestrator.Snapshot{older, newer, other, foreign} {
		if err := s.SaveFlow(ctx, snap); err != nil {
			t.Fatalf("SaveFlow() failed: %v", err)
		}
	}

	got, err := s.ListFlows(ctx, WithUser(alice), WithPlan("rent"))
	if err != nil {
		t.Fatalf("ListFlows() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 flows, got %d", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("expected newest first")
	}

	got, err = s.ListFlows(ctx, WithUser(alice), WithLimit(1))
	if err != nil {
		t.Fatalf("ListFlows() failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("expected only the latest alice flow, got %d flows", len(got))
	}

	got, err = s.ListFlows(ctx, WithUser(bob))
	if err != nil {
		t.Fatalf("ListFlows() failed: %v", err)
	}
	if len(got) != 1 || got[0].Plan != "" {
		t.Fatalf("expected bob's join flow without plan, got %+v", got)
	}
}
