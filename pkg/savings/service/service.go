// Package service exposes the read side of the savings product: chains,
// stablecoins and a user's aggregated savings.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/bitsave-middleware/pkg/app/errors"
	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
	"github.com/chainsafe/bitsave-middleware/pkg/vault"
)

// OverviewLoader aggregates a user's savings.
type OverviewLoader interface {
	Overview(ctx context.Context, user common.Address) *savings.Overview
}

// WalletSession is the connected wallet.
type WalletSession interface {
	Address() common.Address
	Holder(ctx context.Context) (*vault.Reference, error)
}

// Service defines the read-side savings operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	ListChains(ctx context.Context) ([]savings.ChainView, error)
	ListTokens(ctx context.Context, chainName string) ([]savings.TokenView, error)
	ResolveToken(ctx context.Context, address string) (*token.Info, error)
	Overview(ctx context.Context, user string) (*savings.OverviewView, error)
	Wallet(ctx context.Context) (*savings.WalletView, error)
}

type savingsService struct {
	registry *chain.Registry
	catalog  *token.Catalog
	loader   OverviewLoader
	session  WalletSession
	now      func() time.Time
}

// NewService creates a new savings read service
func NewService(registry *chain.Registry, catalog *token.Catalog, loader OverviewLoader, session WalletSession) Service {
	return &savingsService{
		registry: registry,
		catalog:  catalog,
		loader:   loader,
		session:  session,
		now:      time.Now,
	}
}

func (s *savingsService) ListChains(_ context.Context) ([]savings.ChainView, error) {
	chains := s.registry.ListChains()
	out := make([]savings.ChainView, 0, len(chains))
	for _, c := range chains {
		v := savings.ChainView{ID: c.ID, Name: c.Name, NativeCurrency: c.NativeCurrency}
		if c.HasFactory() {
			v.Factory = c.Factory.Hex()
		}
		out = append(out, v)
	}
	return out, nil
}

// ListTokens returns the configured stablecoins of a chain; unknown chains have none.
func (s *savingsService) ListTokens(_ context.Context, chainName string) ([]savings.TokenView, error) {
	coins := s.registry.TokensFor(chainName)
	out := make([]savings.TokenView, 0, len(coins))
	for _, c := range coins {
		out = append(out, savings.TokenView{
			ChainID:  c.ChainID,
			Name:     c.Name,
			Symbol:   c.Symbol,
			Image:    c.Image,
			Address:  c.Address.Hex(),
			Decimals: c.Decimals,
		})
	}
	return out, nil
}

// ResolveToken never reports an unknown token as an error; it returns the
// UNKNOWN sentinel instead.
func (s *savingsService) ResolveToken(_ context.Context, address string) (*token.Info, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.BadRequestError(nil, "invalid token address")
	}
	info := s.catalog.ResolveHex(address)
	return &info, nil
}

func (s *savingsService) Overview(ctx context.Context, user string) (*savings.OverviewView, error) {
	if !common.IsHexAddress(user) {
		return nil, apperrors.BadRequestError(nil, "invalid user address")
	}
	ov := s.loader.Overview(ctx, common.HexToAddress(user))
	v := savings.NewOverviewView(ov, s.registry, s.now())
	return &v, nil
}

func (s *savingsService) Wallet(ctx context.Context) (*savings.WalletView, error) {
	ref, err := s.session.Holder(ctx)
	if err != nil {
		if errors.Is(err, vault.ErrNotConnected) {
			return nil, apperrors.ResourceNotFoundError(err, "no wallet connected")
		}
		return nil, apperrors.DependencyError(fmt.Errorf("failed to locate vault: %w", err), "failed to locate vault")
	}
	return &savings.WalletView{
		Address:  s.session.Address().Hex(),
		HasVault: ref != nil,
		Holder:   ref,
	}, nil
}
