// Package vault locates a user's vault holder contract across the supported chains.
package vault

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
)

// Reader is the read-only chain capability used to probe vault factories.
type Reader interface {
	CallContract(ctx context.Context, call ethereum.Call) ([]byte, error)
}

// Reference points at the one holder contract that stores a user's savings.
type Reference struct {
	Address common.Address `json:"address"`
	ChainID int64          `json:"chain_id"`
}

// Locator finds holder contracts and caches positive results per user address.
type Locator struct {
	registry    *chain.Registry
	reader      Reader
	cache       *lru.Cache[common.Address, Reference]
	concurrency int
	logger      *zap.Logger
}

// NewLocator creates a locator over every chain in the registry.
func NewLocator(registry *chain.Registry, reader Reader, cfg config.LocatorConfig, logger *zap.Logger) (*Locator, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[common.Address, Reference](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create holder cache: %w", err)
	}
	return &Locator{
		registry:    registry,
		reader:      reader,
		cache:       cache,
		concurrency: cfg.ProbeConcurrency,
		logger:      logger,
	}, nil
}

// Locate returns the user's holder contract, or nil when the user never joined.
// Chains are probed concurrently. A failed probe counts as "not on this chain",
// and when several chains answer the first one in registry order wins.
// The only error returned is the context's.
func (l *Locator) Locate(ctx context.Context, user common.Address) (*Reference, error) {
	if ref, ok := l.cache.Get(user); ok {
		metrics.LocatorCache.WithLabelValues("hit").Inc()
		return &ref, nil
	}
	metrics.LocatorCache.WithLabelValues("miss").Inc()

	chains := l.registry.ListChains()
	found := make([]*Reference, len(chains))

	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, c := range chains {
		g.Go(func() error {
			found[i] = l.probe(gctx, c, user)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref := firstFound(found)
	if ref == nil {
		l.logger.Debug("No vault holder found", zap.String("user", user.Hex()))
		return nil, nil
	}

	l.cache.Add(user, *ref)
	l.logger.Debug("Vault holder located",
		zap.String("user", user.Hex()),
		zap.String("holder", ref.Address.Hex()),
		zap.Int64("chain_id", ref.ChainID))
	return ref, nil
}

// Invalidate drops the cached holder for user, e.g. after a join.
func (l *Locator) Invalidate(user common.Address) {
	l.cache.Remove(user)
}

func (l *Locator) probe(ctx context.Context, c chain.Chain, user common.Address) *Reference {
	if !c.HasFactory() {
		metrics.LocatorProbes.WithLabelValues(c.Name, "unconfigured").Inc()
		return nil
	}

	data, err := contracts.PackGetUserChildContract(user)
	if err != nil {
		metrics.LocatorProbes.WithLabelValues(c.Name, "error").Inc()
		return nil
	}
	out, err := l.reader.CallContract(ctx, ethereum.Call{
		ChainID: c.ID,
		From:    user,
		To:      c.Factory,
		Data:    data,
	})
	if err != nil {
		metrics.LocatorProbes.WithLabelValues(c.Name, "error").Inc()
		l.logger.Debug("Holder probe failed",
			zap.String("chain", c.Name),
			zap.String("user", user.Hex()),
			zap.Error(err))
		return nil
	}
	holder, err := contracts.UnpackGetUserChildContract(out)
	if err != nil || holder == (common.Address{}) {
		metrics.LocatorProbes.WithLabelValues(c.Name, "absent").Inc()
		return nil
	}

	metrics.LocatorProbes.WithLabelValues(c.Name, "found").Inc()
	return &Reference{Address: holder, ChainID: c.ID}
}

// firstFound folds probe results in registry order.
func firstFound(results []*Reference) *Reference {
	for _, r := range results {
		if r != nil {
			return r
		}
	}
	return nil
}
