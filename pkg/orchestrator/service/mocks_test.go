package service

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/flowstore"
	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
)

// MockChain is a mock implementation of orchestrator.ChainWriter
type MockChain struct {
	Wallet       common.Address
	Balance      *big.Int
	SimulateFunc func(ctx context.Context, call ethereum.Call) (uint64, error)

	mu    sync.Mutex
	sent  []ethereum.Call
	nonce uint64
}

func (m *MockChain) Address() common.Address {
	return m.Wallet
}

func (m *MockChain) BalanceOf(context.Context, int64, common.Address, common.Address) (*big.Int, error) {
	if m.Balance == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(m.Balance), nil
}

func (m *MockChain) Simulate(ctx context.Context, call ethereum.Call) (uint64, error) {
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, call)
	}
	return 21000, nil
}

func (m *MockChain) Send(_ context.Context, call ethereum.Call) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, call)
	m.nonce++
	return common.BigToHash(new(big.Int).SetUint64(m.nonce)), nil
}

func (m *MockChain) WaitConfirmations(_ context.Context, _ int64, txHash common.Hash, confirmations uint64) (*ethereum.Receipt, error) {
	return &ethereum.Receipt{TxHash: txHash, BlockNumber: 42, Confirmations: confirmations}, nil
}

func (m *MockChain) Sent() []ethereum.Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ethereum.Call(nil), m.sent...)
}

// MockPlans is a mock implementation of orchestrator.PlanReader
type MockPlans struct {
	Records map[string]*savings.Record
	Err     error
}

func (m *MockPlans) Find(_ context.Context, _ common.Address, name string) (*savings.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.Records[name]
	if !ok {
		return nil, savings.ErrNoHolder
	}
	return rec, nil
}

// MockStore is an in-memory flowstore.Store
type MockStore struct {
	mu     sync.Mutex
	flows  map[uuid.UUID]*orchestrator.Snapshot
	phases map[uuid.UUID][]orchestrator.Phase
}

func NewMockStore() *MockStore {
	return &MockStore{
		flows:  make(map[uuid.UUID]*orchestrator.Snapshot),
		phases: make(map[uuid.UUID][]orchestrator.Phase),
	}
}

func (m *MockStore) SaveFlow(_ context.Context, s *orchestrator.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.flows[s.ID] = &cp
	m.phases[s.ID] = append(m.phases[s.ID], s.State.Phase)
	return nil
}

func (m *MockStore) GetFlow(_ context.Context, id uuid.UUID) (*orchestrator.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.flows[id]
	if !ok {
		return nil, flowstore.ErrFlowNotFound
	}
	return s, nil
}

func (m *MockStore) ListFlows(_ context.Context, opts ...flowstore.QueryOption) ([]*orchestrator.Snapshot, error) {
	var o flowstore.QueryOptions
	for _, opt := range opts {
		opt(&o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*orchestrator.Snapshot, 0, len(m.flows))
	for _, s := range m.flows {
		if o.User != nil && s.User != *o.User {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MockStore) Phases(id uuid.UUID) []orchestrator.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]orchestrator.Phase(nil), m.phases[id]...)
}
