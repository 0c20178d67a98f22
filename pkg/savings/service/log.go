package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/pkg/savings"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

const serviceName = "SavingsService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the savings Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) ListChains(ctx context.Context) ([]savings.ChainView, error) {
	return ls.svc.ListChains(ctx)
}

func (ls *logService) ListTokens(ctx context.Context, chainName string) ([]savings.TokenView, error) {
	return ls.svc.ListTokens(ctx, chainName)
}

func (ls *logService) ResolveToken(ctx context.Context, address string) (*token.Info, error) {
	return ls.svc.ResolveToken(ctx, address)
}

// Overview wraps the service method with logging
func (ls *logService) Overview(ctx context.Context, user string) (resp *savings.OverviewView, err error) {
	start := time.Now()

	ls.logger.Info("Overview started",
		zap.String("service", serviceName),
		zap.String("method", "Overview"),
		zap.String("user", user),
	)

	defer func() {
		duration := time.Since(start)

		switch {
		case err != nil:
			ls.logger.Error("Overview failed",
				zap.String("service", serviceName),
				zap.String("method", "Overview"),
				zap.String("user", user),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		case resp.Error != nil:
			ls.logger.Warn("Overview completed with load error",
				zap.String("service", serviceName),
				zap.String("method", "Overview"),
				zap.String("user", user),
				zap.String("load_error", *resp.Error),
				zap.Duration("duration", duration),
			)
		default:
			ls.logger.Info("Overview completed",
				zap.String("service", serviceName),
				zap.String("method", "Overview"),
				zap.String("user", user),
				zap.Bool("has_vault", resp.HasVault),
				zap.Int("active", len(resp.Active)),
				zap.Int("completed", len(resp.Completed)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Overview(ctx, user)
}

// Wallet wraps the service method with logging
func (ls *logService) Wallet(ctx context.Context) (resp *savings.WalletView, err error) {
	start := time.Now()

	defer func() {
		if err != nil {
			ls.logger.Error("Wallet failed",
				zap.String("service", serviceName),
				zap.String("method", "Wallet"),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		ls.logger.Debug("Wallet completed",
			zap.String("service", serviceName),
			zap.String("method", "Wallet"),
			zap.String("address", resp.Address),
			zap.Bool("has_vault", resp.HasVault),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	return ls.svc.Wallet(ctx)
}
