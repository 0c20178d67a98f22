package savings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

var hundred = decimal.NewFromInt(100)

// Payout is the expected result of a withdrawal, for display only.
// The chain applies the authoritative penalty.
type Payout struct {
	Total          string `json:"total"`
	Penalty        string `json:"penalty"`
	Net            string `json:"net"`
	PenaltyPercent uint8  `json:"penalty_percent"`
	PenaltyApplied bool   `json:"penalty_applied"`
}

// EstimatePayout subtracts total*penaltyPct/100 when withdrawing before maturity.
func EstimatePayout(total decimal.Decimal, penaltyPct uint8, matured bool) Payout {
	penalty := decimal.Zero
	applied := !matured && penaltyPct > 0
	if applied {
		penalty = total.Mul(decimal.NewFromInt(int64(penaltyPct))).Div(hundred)
	}
	return Payout{
		Total:          total.StringFixed(2),
		Penalty:        penalty.StringFixed(2),
		Net:            total.Sub(penalty).StringFixed(2),
		PenaltyPercent: penaltyPct,
		PenaltyApplied: applied,
	}
}

// PayoutFor estimates the payout of withdrawing r at now.
func PayoutFor(r Record, now time.Time) Payout {
	return EstimatePayout(token.ToDecimal(r.Amount, r.TokenInfo.Decimals), r.PenaltyPercentage, r.IsMatured(now))
}
