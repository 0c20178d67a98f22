package flowstore

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
)

// FlowDao is a data access object that maps directly to the 'flows' table in PostgreSQL.
type FlowDao struct {
	bun.BaseModel `bun:"table:flows,alias:f"`
	ID            uuid.UUID        `bun:"id,pk,type:uuid"`
	Kind          string           `bun:"kind,notnull,type:varchar(32)"`
	UserAddress   string           `bun:"user_address,notnull,type:varchar(42)"`
	ChainID       int64            `bun:"chain_id,notnull"`
	Plan          *string          `bun:"plan,type:varchar(255)"`
	Phase         string           `bun:"phase,notnull,type:varchar(32)"`
	Loading       bool             `bun:"loading,notnull,default:false"`
	ErrorKind     *string          `bun:"error_kind,type:varchar(32)"`
	ErrorPhase    *string          `bun:"error_phase,type:varchar(32)"`
	ErrorTitle    *string          `bun:"error_title,type:varchar(128)"`
	ErrorMessage  *string          `bun:"error_message,type:text"`
	Transactions  []TransactionDao `bun:"transactions,type:jsonb,notnull"`
	CreatedAt     time.Time        `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// TransactionDao is one submitted transaction, stored inline as JSON.
type TransactionDao struct {
	Phase       string `json:"phase"`
	Hash        string `json:"hash"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	Confirmed   bool   `json:"confirmed"`
}

func toFlowDao(s *orchestrator.Snapshot) *FlowDao {
	dao := &FlowDao{
		ID:           s.ID,
		Kind:         string(s.Kind),
		UserAddress:  normalizeAddress(s.User),
		ChainID:      s.ChainID,
		Phase:        string(s.State.Phase),
		Loading:      s.State.Loading,
		Transactions: make([]TransactionDao, 0, len(s.State.Transactions)),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.State.UpdatedAt,
	}
	if s.Plan != "" {
		dao.Plan = &s.Plan
	}
	if e := s.State.LastError; e != nil {
		kind, phase := string(e.Kind), string(e.Phase)
		dao.ErrorKind = &kind
		dao.ErrorPhase = &phase
		dao.ErrorTitle = &e.Title
		dao.ErrorMessage = &e.Message
	}
	for _, tx := range s.State.Transactions {
		dao.Transactions = append(dao.Transactions, TransactionDao{
			Phase:       string(tx.Phase),
			Hash:        tx.Hash.Hex(),
			BlockNumber: tx.BlockNumber,
			Confirmed:   tx.Confirmed,
		})
	}
	return dao
}

func toSnapshot(dao *FlowDao) *orchestrator.Snapshot {
	s := &orchestrator.Snapshot{
		ID:        dao.ID,
		Kind:      orchestrator.Kind(dao.Kind),
		User:      common.HexToAddress(dao.UserAddress),
		ChainID:   dao.ChainID,
		CreatedAt: dao.CreatedAt,
		State: orchestrator.State{
			Phase:        orchestrator.Phase(dao.Phase),
			Loading:      dao.Loading,
			Transactions: make([]orchestrator.Transaction, 0, len(dao.Transactions)),
			UpdatedAt:    dao.UpdatedAt,
		},
	}
	if dao.Plan != nil {
		s.Plan = *dao.Plan
	}
	if dao.ErrorKind != nil {
		fe := &orchestrator.FlowError{Kind: orchestrator.ErrorKind(*dao.ErrorKind)}
		if dao.ErrorPhase != nil {
			fe.Phase = orchestrator.Phase(*dao.ErrorPhase)
		}
		if dao.ErrorTitle != nil {
			fe.Title = *dao.ErrorTitle
		}
		if dao.ErrorMessage != nil {
			fe.Message = *dao.ErrorMessage
		}
		s.State.LastError = fe
	}
	for _, tx := range dao.Transactions {
		s.State.Transactions = append(s.State.Transactions, orchestrator.Transaction{
			Phase:       orchestrator.Phase(tx.Phase),
			Hash:        common.HexToHash(tx.Hash),
			BlockNumber: tx.BlockNumber,
			Confirmed:   tx.Confirmed,
		})
	}
	return s
}
