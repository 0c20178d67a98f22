package savings

import (
	"time"

	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
	"github.com/chainsafe/bitsave-middleware/pkg/vault"
)

// RecordView is the JSON shape of a record with its derived fields.
type RecordView struct {
	Name                  string     `json:"name"`
	ChainID               int64      `json:"chain_id"`
	ChainName             string     `json:"chain_name"`
	Token                 string     `json:"token"`
	TokenInfo             token.Info `json:"token_info"`
	Amount                string     `json:"amount"`
	RawAmount             string     `json:"raw_amount"`
	Interest              string     `json:"interest"`
	StartTime             int64      `json:"start_time"`
	MaturityTime          int64      `json:"maturity_time"`
	PenaltyPercentage     uint8      `json:"penalty_percentage"`
	IsSafeMode            bool       `json:"is_safe_mode"`
	IsActive              bool       `json:"is_active"`
	IsMatured             bool       `json:"is_matured"`
	TimeToMaturitySeconds int64      `json:"time_to_maturity_seconds"`
	Progress              float64    `json:"progress"`
}

// OverviewView is the JSON shape of an Overview.
type OverviewView struct {
	User         string           `json:"user"`
	HasVault     bool             `json:"has_vault"`
	Holder       *vault.Reference `json:"holder,omitempty"`
	Active       []RecordView     `json:"active"`
	Completed    []RecordView     `json:"completed"`
	TotalActive  float64          `json:"total_active"`
	TotalRewards float64          `json:"total_rewards"`
	Error        *string          `json:"error"`
}

// NewRecordView renders r at now.
func NewRecordView(r Record, registry *chain.Registry, now time.Time) RecordView {
	return RecordView{
		Name:                  r.Name,
		ChainID:               r.ChainID,
		ChainName:             registry.ChainNameForID(r.ChainID),
		Token:                 r.Token.Hex(),
		TokenInfo:             r.TokenInfo,
		Amount:                r.DisplayAmount(),
		RawAmount:             r.Amount.String(),
		Interest:              r.DisplayInterest(),
		StartTime:             r.StartTime,
		MaturityTime:          r.MaturityTime,
		PenaltyPercentage:     r.PenaltyPercentage,
		IsSafeMode:            r.IsSafeMode,
		IsActive:              r.IsActive(),
		IsMatured:             r.IsMatured(now),
		TimeToMaturitySeconds: int64(r.TimeToMaturity(now) / time.Second),
		Progress:              r.Progress(now),
	}
}

// NewOverviewView renders ov at now.
func NewOverviewView(ov *Overview, registry *chain.Registry, now time.Time) OverviewView {
	v := OverviewView{
		User:         ov.User.Hex(),
		HasVault:     ov.HasVault,
		Holder:       ov.Holder,
		Active:       make([]RecordView, 0, len(ov.Active)),
		Completed:    make([]RecordView, 0, len(ov.Completed)),
		TotalActive:  ov.TotalActive,
		TotalRewards: ov.TotalRewards,
	}
	for _, r := range ov.Active {
		v.Active = append(v.Active, NewRecordView(r, registry, now))
	}
	for _, r := range ov.Completed {
		v.Completed = append(v.Completed, NewRecordView(r, registry, now))
	}
	if ov.Err != nil {
		msg := ov.Err.Error()
		v.Error = &msg
	}
	return v
}

// ChainView is the JSON shape of a supported chain.
type ChainView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	NativeCurrency string `json:"native_currency"`
	Factory        string `json:"factory,omitempty"`
}

// TokenView is the JSON shape of a configured stablecoin.
type TokenView struct {
	ChainID  int64  `json:"chain_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Image    string `json:"image,omitempty"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
}

// WalletView describes the connected wallet and its holder, if any.
type WalletView struct {
	Address  string           `json:"address"`
	HasVault bool             `json:"has_vault"`
	Holder   *vault.Reference `json:"holder,omitempty"`
}
