// Package service runs savings write flows on behalf of the connected wallet
// and exposes their progress.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	apperrors "github.com/chainsafe/bitsave-middleware/pkg/app/errors"
	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/flowstore"
	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
	"github.com/chainsafe/bitsave-middleware/pkg/price"
)

const saveTimeout = 5 * time.Second

// Service defines the write flow operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Join(ctx context.Context, req orchestrator.JoinRequest) (*orchestrator.Snapshot, error)
	CreateVault(ctx context.Context, req orchestrator.CreateVaultRequest) (*orchestrator.Snapshot, error)
	TopUpBalance(ctx context.Context, chainID int64, token common.Address) (*orchestrator.BalanceView, error)
	TopUp(ctx context.Context, req orchestrator.TopUpRequest, amount string) (*orchestrator.Snapshot, error)
	WithdrawPreview(ctx context.Context, req orchestrator.WithdrawRequest) (*orchestrator.WithdrawPreview, error)
	Withdraw(ctx context.Context, req orchestrator.WithdrawRequest) (*orchestrator.Snapshot, error)
	Retry(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error)
	GetFlow(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error)
	ListFlows(ctx context.Context, user common.Address) ([]*orchestrator.Snapshot, error)
}

// FlowService starts flows in the background and keeps the most recent ones
// in memory. When a store is configured every state transition is persisted.
type FlowService struct {
	orch   *orchestrator.Orchestrator
	store  flowstore.Store
	flows  *lru.Cache[uuid.UUID, *orchestrator.Flow]
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewService creates a FlowService. store may be nil.
func NewService(orch *orchestrator.Orchestrator, store flowstore.Store, history int, logger *zap.Logger) (*FlowService, error) {
	flows, err := lru.New[uuid.UUID, *orchestrator.Flow](history)
	if err != nil {
		return nil, fmt.Errorf("failed to create flow cache: %w", err)
	}
	return &FlowService{
		orch:   orch,
		store:  store,
		flows:  flows,
		logger: logger,
	}, nil
}

// Wait blocks until every started flow has returned.
func (s *FlowService) Wait() {
	s.wg.Wait()
}

func (s *FlowService) Join(ctx context.Context, req orchestrator.JoinRequest) (*orchestrator.Snapshot, error) {
	return s.start(ctx, s.orch.Join(req)), nil
}

// CreateVault rejects an invalid form before anything is started. The fee
// is still priced when the flow runs.
func (s *FlowService) CreateVault(ctx context.Context, req orchestrator.CreateVaultRequest) (*orchestrator.Snapshot, error) {
	if err := s.orch.ValidateCreateVault(req); err != nil {
		return nil, toServiceError(err)
	}
	return s.start(ctx, s.orch.CreateVault(req)), nil
}

func (s *FlowService) TopUpBalance(ctx context.Context, chainID int64, token common.Address) (*orchestrator.BalanceView, error) {
	coin, balance, err := s.orch.TokenBalance(ctx, chainID, token)
	if err != nil {
		return nil, toServiceError(err)
	}
	return orchestrator.NewBalanceView(coin, balance), nil
}

// TopUp rejects an invalid amount before anything is started.
func (s *FlowService) TopUp(ctx context.Context, req orchestrator.TopUpRequest, amount string) (*orchestrator.Snapshot, error) {
	tf, err := s.orch.OpenTopUp(ctx, req)
	if err != nil {
		return nil, toServiceError(err)
	}
	if err := tf.SetAmount(amount); err != nil {
		return nil, toServiceError(err)
	}
	return s.start(ctx, tf.Flow), nil
}

func (s *FlowService) WithdrawPreview(ctx context.Context, req orchestrator.WithdrawRequest) (*orchestrator.WithdrawPreview, error) {
	wf, err := s.orch.OpenWithdraw(ctx, req)
	if err != nil {
		return nil, toServiceError(err)
	}
	return wf.PreviewView(), nil
}

func (s *FlowService) Withdraw(ctx context.Context, req orchestrator.WithdrawRequest) (*orchestrator.Snapshot, error) {
	wf, err := s.orch.OpenWithdraw(ctx, req)
	if err != nil {
		return nil, toServiceError(err)
	}
	return s.start(ctx, wf.Flow), nil
}

// Retry re-runs a failed flow from its first phase.
func (s *FlowService) Retry(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error) {
	f, ok := s.flows.Get(id)
	if !ok {
		return nil, apperrors.ResourceNotFoundError(nil, "flow not found or expired")
	}
	st := f.State()
	if st.Loading {
		return nil, toServiceError(orchestrator.ErrFlowBusy)
	}
	if st.LastError == nil {
		return nil, apperrors.ConflictError(nil, "only failed flows can be retried")
	}
	return s.start(ctx, f), nil
}

func (s *FlowService) GetFlow(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error) {
	if f, ok := s.flows.Peek(id); ok {
		return f.Snapshot(), nil
	}
	if s.store == nil {
		return nil, apperrors.ResourceNotFoundError(nil, "flow not found")
	}
	snap, err := s.store.GetFlow(ctx, id)
	if err != nil {
		if errors.Is(err, flowstore.ErrFlowNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "flow not found")
		}
		return nil, apperrors.GeneralError(err)
	}
	return snap, nil
}

// ListFlows returns the flows of user, newest first.
func (s *FlowService) ListFlows(ctx context.Context, user common.Address) ([]*orchestrator.Snapshot, error) {
	if s.store != nil {
		snaps, err := s.store.ListFlows(ctx, flowstore.WithUser(user))
		if err != nil {
			return nil, apperrors.GeneralError(err)
		}
		return snaps, nil
	}

	out := make([]*orchestrator.Snapshot, 0)
	for _, f := range s.flows.Values() {
		if f.User() == user {
			out = append(out, f.Snapshot())
		}
	}
	slices.SortFunc(out, func(a, b *orchestrator.Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// start runs f detached from the request; a submitted transaction must
// outlive the HTTP call that started it.
func (s *FlowService) start(ctx context.Context, f *orchestrator.Flow) *orchestrator.Snapshot {
	if !s.flows.Contains(f.ID()) {
		s.flows.Add(f.ID(), f)
		s.track(f)
	}

	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// failures are reported through the flow state
		_ = f.Invoke(runCtx)
	}()
	return f.Snapshot()
}

func (s *FlowService) track(f *orchestrator.Flow) {
	if s.store == nil {
		return
	}
	save := func(snap *orchestrator.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.store.SaveFlow(ctx, snap); err != nil {
			metrics.ErrorsTotal.WithLabelValues("flowstore", "save").Inc()
			s.logger.Warn("Failed to persist flow state",
				zap.String("flow_id", snap.ID.String()),
				zap.String("phase", string(snap.State.Phase)),
				zap.Error(err))
		}
	}
	save(f.Snapshot())
	f.Subscribe(func(st orchestrator.State) {
		snap := f.Snapshot()
		snap.State = st
		save(snap)
	})
}

func toServiceError(err error) error {
	var verr *orchestrator.ValidationError
	switch {
	case errors.As(err, &verr):
		return apperrors.BadRequestError(err, verr.Message)
	case errors.Is(err, chain.ErrChainNotFound),
		errors.Is(err, chain.ErrFactoryNotConfigured),
		errors.Is(err, chain.ErrTokenNotConfigured):
		return apperrors.BadRequestError(err, err.Error())
	case errors.Is(err, orchestrator.ErrNoVault):
		return apperrors.ResourceNotFoundError(err, err.Error())
	case errors.Is(err, orchestrator.ErrPlanWithdrawn), errors.Is(err, orchestrator.ErrFlowBusy):
		return apperrors.ConflictError(err, err.Error())
	case errors.Is(err, price.ErrPriceUnavailable):
		return apperrors.DependencyError(err, "price unavailable")
	default:
		return apperrors.DependencyError(err, "chain request failed")
	}
}
