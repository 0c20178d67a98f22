// Package savings models the savings records held in a user's vault holder
// contract and aggregates them into view models.
package savings

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

// Record is one named savings plan. The name is unique within a holder.
type Record struct {
	Name                string
	ChainID             int64
	Holder              common.Address
	Amount              *big.Int
	Token               common.Address
	TokenInfo           token.Info
	InterestAccumulated *big.Int // native currency units
	StartTime           int64
	MaturityTime        int64
	PenaltyPercentage   uint8
	IsSafeMode          bool
	IsValid             bool
}

// IsActive reports whether the plan has not been withdrawn.
func (r Record) IsActive() bool {
	return r.IsValid
}

// IsMatured reports whether the plan can be withdrawn without penalty.
func (r Record) IsMatured(now time.Time) bool {
	return now.Unix() >= r.MaturityTime
}

// TimeToMaturity is negative once the plan has matured.
func (r Record) TimeToMaturity(now time.Time) time.Duration {
	return time.Duration(r.MaturityTime-now.Unix()) * time.Second
}

// Progress is the elapsed share of the locking period, clamped to [0, 100].
func (r Record) Progress(now time.Time) float64 {
	total := r.MaturityTime - r.StartTime
	elapsed := now.Unix() - r.StartTime
	if total <= 0 {
		if elapsed >= 0 {
			return 100
		}
		return 0
	}
	p := float64(elapsed) / float64(total) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// DisplayAmount is the principal scaled by the token's decimals.
func (r Record) DisplayAmount() string {
	return token.FormatUnits(r.Amount, r.TokenInfo.Decimals)
}

// DisplayInterest is the accrued interest scaled by the native decimals.
func (r Record) DisplayInterest() string {
	return token.FormatUnits(r.InterestAccumulated, token.NativeDecimals)
}

func newRecord(name string, chainID int64, holder common.Address, raw *contracts.RawSaving, catalog *token.Catalog) (Record, error) {
	start, err := unixSeconds(raw.StartTime)
	if err != nil {
		return Record{}, fmt.Errorf("saving %q: start time: %w", name, err)
	}
	maturity, err := unixSeconds(raw.MaturityTime)
	if err != nil {
		return Record{}, fmt.Errorf("saving %q: maturity time: %w", name, err)
	}
	if raw.PenaltyPercentage == nil || !raw.PenaltyPercentage.IsUint64() || raw.PenaltyPercentage.Uint64() > 100 {
		return Record{}, fmt.Errorf("saving %q: penalty percentage out of range", name)
	}

	return Record{
		Name:                name,
		ChainID:             chainID,
		Holder:              holder,
		Amount:              orZero(raw.Amount),
		Token:               raw.TokenId,
		TokenInfo:           catalog.Resolve(raw.TokenId),
		InterestAccumulated: orZero(raw.InterestAccumulated),
		StartTime:           start,
		MaturityTime:        maturity,
		PenaltyPercentage:   uint8(raw.PenaltyPercentage.Uint64()),
		IsSafeMode:          raw.IsSafeMode,
		IsValid:             raw.IsValid,
	}, nil
}

func unixSeconds(v *big.Int) (int64, error) {
	if v == nil {
		return 0, nil
	}
	if !v.IsInt64() {
		return 0, fmt.Errorf("value %s overflows int64", v.String())
	}
	return v.Int64(), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
