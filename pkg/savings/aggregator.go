package savings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
	"github.com/chainsafe/bitsave-middleware/pkg/vault"
)

// ErrNoHolder is returned when the user has no holder contract on any chain.
var ErrNoHolder = errors.New("no savings vault found")

// Reader is the read-only chain capability used to query holder contracts.
type Reader interface {
	CallContract(ctx context.Context, call ethereum.Call) ([]byte, error)
}

// HolderLocator finds a user's holder contract.
type HolderLocator interface {
	Locate(ctx context.Context, user common.Address) (*vault.Reference, error)
}

// Aggregator loads and normalizes all savings records of a user.
type Aggregator struct {
	reader  Reader
	locator HolderLocator
	catalog *token.Catalog
	now     func() time.Time
	logger  *zap.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(reader Reader, locator HolderLocator, catalog *token.Catalog, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		reader:  reader,
		locator: locator,
		catalog: catalog,
		now:     time.Now,
		logger:  logger,
	}
}

// LoadAll reads every record of the holder in on-chain enumeration order.
// A failure of any single record read fails the whole load.
func (a *Aggregator) LoadAll(ctx context.Context, user common.Address, ref vault.Reference) ([]Record, error) {
	data, err := contracts.PackGetSavingsNames()
	if err != nil {
		return nil, err
	}
	out, err := a.reader.CallContract(ctx, ethereum.Call{ChainID: ref.ChainID, From: user, To: ref.Address, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to list savings names: %w", err)
	}
	names, err := contracts.UnpackGetSavingsNames(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode savings names: %w", err)
	}

	records := make([]Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			rec, err := a.loadOne(gctx, user, ref, name)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordsLoaded.Observe(float64(len(records)))
	return records, nil
}

func (a *Aggregator) loadOne(ctx context.Context, user common.Address, ref vault.Reference, name string) (Record, error) {
	data, err := contracts.PackGetSaving(name)
	if err != nil {
		return Record{}, err
	}
	out, err := a.reader.CallContract(ctx, ethereum.Call{ChainID: ref.ChainID, From: user, To: ref.Address, Data: data})
	if err != nil {
		return Record{}, fmt.Errorf("failed to read saving %q: %w", name, err)
	}
	raw, err := contracts.UnpackGetSaving(out)
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode saving %q: %w", name, err)
	}
	return newRecord(name, ref.ChainID, ref.Address, raw, a.catalog)
}

// Find locates the user's holder and reads the single plan called name.
func (a *Aggregator) Find(ctx context.Context, user common.Address, name string) (*Record, error) {
	ref, err := a.locator.Locate(ctx, user)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, ErrNoHolder
	}
	r, err := a.loadOne(ctx, user, *ref, name)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Partition splits records by IsValid, keeping order.
func Partition(records []Record) (active, completed []Record) {
	active = make([]Record, 0, len(records))
	completed = make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsValid {
			active = append(active, r)
		} else {
			completed = append(completed, r)
		}
	}
	return active, completed
}

// Overview is the aggregated read-side state of one user.
type Overview struct {
	User         common.Address
	HasVault     bool
	Holder       *vault.Reference
	Records      []Record
	Active       []Record
	Completed    []Record
	TotalActive  float64
	TotalRewards float64
	Err          error
}

// Overview locates the user's holder and loads, partitions and totals its
// records. Failures are reported in Err rather than returned.
func (a *Aggregator) Overview(ctx context.Context, user common.Address) *Overview {
	ov := &Overview{User: user, Records: []Record{}, Active: []Record{}, Completed: []Record{}}

	ref, err := a.locator.Locate(ctx, user)
	if err != nil {
		ov.Err = fmt.Errorf("failed to locate vault holder: %w", err)
		return ov
	}
	if ref == nil {
		return ov
	}
	ov.HasVault = true
	ov.Holder = ref

	records, err := a.LoadAll(ctx, user, *ref)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("aggregator", "load").Inc()
		a.logger.Warn("Failed to load savings",
			zap.String("user", user.Hex()),
			zap.String("holder", ref.Address.Hex()),
			zap.Error(err))
		ov.Err = err
		return ov
	}

	ov.Records = records
	ov.Active, ov.Completed = Partition(records)
	ov.TotalActive, ov.TotalRewards = Totals(records)
	return ov
}

// Totals sums the active principal across tokens and the accrued interest
// of all records. Both are display aggregates.
func Totals(records []Record) (totalActive, totalRewards float64) {
	active := decimal.Zero
	rewards := decimal.Zero
	for _, r := range records {
		if r.IsValid {
			active = active.Add(token.ToDecimal(r.Amount, r.TokenInfo.Decimals))
		}
		rewards = rewards.Add(token.ToDecimal(r.InterestAccumulated, token.NativeDecimals))
	}
	return active.InexactFloat64(), rewards.InexactFloat64()
}
