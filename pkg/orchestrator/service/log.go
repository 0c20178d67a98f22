package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
)

const serviceName = "FlowService"

// logService wraps Service with logging of the calls that start flows
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the flow Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) started(method string, fields ...zap.Field) time.Time {
	ls.logger.Info(method+" started", append([]zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
	}, fields...)...)
	return time.Now()
}

func (ls *logService) finished(method string, start time.Time, snap *orchestrator.Snapshot, err error) {
	if err != nil {
		ls.logger.Error(method+" failed",
			zap.String("service", serviceName),
			zap.String("method", method),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	ls.logger.Info(method+" completed",
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.String("flow_id", snap.ID.String()),
		zap.Duration("duration", time.Since(start)),
	)
}

// Join wraps the service method with logging
func (ls *logService) Join(ctx context.Context, req orchestrator.JoinRequest) (snap *orchestrator.Snapshot, err error) {
	start := ls.started("Join", zap.Int64("chain_id", req.ChainID))
	defer func() { ls.finished("Join", start, snap, err) }()
	return ls.svc.Join(ctx, req)
}

// CreateVault wraps the service method with logging
func (ls *logService) CreateVault(ctx context.Context, req orchestrator.CreateVaultRequest) (snap *orchestrator.Snapshot, err error) {
	start := ls.started("CreateVault",
		zap.String("plan", req.Name),
		zap.Int64("chain_id", req.ChainID),
		zap.String("token", req.Token.Hex()),
		zap.String("amount", req.Amount),
	)
	defer func() { ls.finished("CreateVault", start, snap, err) }()
	return ls.svc.CreateVault(ctx, req)
}

func (ls *logService) TopUpBalance(ctx context.Context, chainID int64, token common.Address) (*orchestrator.BalanceView, error) {
	return ls.svc.TopUpBalance(ctx, chainID, token)
}

// TopUp wraps the service method with logging
func (ls *logService) TopUp(ctx context.Context, req orchestrator.TopUpRequest, amount string) (snap *orchestrator.Snapshot, err error) {
	start := ls.started("TopUp",
		zap.String("plan", req.Plan),
		zap.Int64("chain_id", req.ChainID),
		zap.String("amount", amount),
	)
	defer func() { ls.finished("TopUp", start, snap, err) }()
	return ls.svc.TopUp(ctx, req, amount)
}

func (ls *logService) WithdrawPreview(ctx context.Context, req orchestrator.WithdrawRequest) (*orchestrator.WithdrawPreview, error) {
	return ls.svc.WithdrawPreview(ctx, req)
}

// Withdraw wraps the service method with logging
func (ls *logService) Withdraw(ctx context.Context, req orchestrator.WithdrawRequest) (snap *orchestrator.Snapshot, err error) {
	start := ls.started("Withdraw", zap.String("plan", req.Plan), zap.Int64("chain_id", req.ChainID))
	defer func() { ls.finished("Withdraw", start, snap, err) }()
	return ls.svc.Withdraw(ctx, req)
}

// Retry wraps the service method with logging
func (ls *logService) Retry(ctx context.Context, id uuid.UUID) (snap *orchestrator.Snapshot, err error) {
	start := ls.started("Retry", zap.String("flow_id", id.String()))
	defer func() { ls.finished("Retry", start, snap, err) }()
	return ls.svc.Retry(ctx, id)
}

func (ls *logService) GetFlow(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error) {
	return ls.svc.GetFlow(ctx, id)
}

func (ls *logService) ListFlows(ctx context.Context, user common.Address) ([]*orchestrator.Snapshot, error) {
	return ls.svc.ListFlows(ctx, user)
}
