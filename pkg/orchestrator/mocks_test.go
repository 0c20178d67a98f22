package orchestrator

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
)

// MockChain is a mock implementation of ChainWriter
type MockChain struct {
	AddressValue          common.Address
	BalanceOfFunc         func(ctx context.Context, chainID int64, tokenAddr, account common.Address) (*big.Int, error)
	SimulateFunc          func(ctx context.Context, call ethereum.Call) (uint64, error)
	SendFunc              func(ctx context.Context, call ethereum.Call) (common.Hash, error)
	WaitConfirmationsFunc func(ctx context.Context, chainID int64, txHash common.Hash, confirmations uint64) (*ethereum.Receipt, error)

	mu        sync.Mutex
	simulated []ethereum.Call
	sent      []ethereum.Call
	nonce     uint64
}

func (m *MockChain) Address() common.Address {
	return m.AddressValue
}

func (m *MockChain) BalanceOf(ctx context.Context, chainID int64, tokenAddr, account common.Address) (*big.Int, error) {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, chainID, tokenAddr, account)
	}
	return new(big.Int), nil
}

func (m *MockChain) Simulate(ctx context.Context, call ethereum.Call) (uint64, error) {
	m.mu.Lock()
	m.simulated = append(m.simulated, call)
	m.mu.Unlock()
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, call)
	}
	return 21000, nil
}

func (m *MockChain) Send(ctx context.Context, call ethereum.Call) (common.Hash, error) {
	if m.SendFunc != nil {
		if h, err := m.SendFunc(ctx, call); err != nil {
			return h, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, call)
	m.nonce++
	return common.BigToHash(new(big.Int).SetUint64(m.nonce)), nil
}

func (m *MockChain) WaitConfirmations(ctx context.Context, chainID int64, txHash common.Hash, confirmations uint64) (*ethereum.Receipt, error) {
	if m.WaitConfirmationsFunc != nil {
		return m.WaitConfirmationsFunc(ctx, chainID, txHash, confirmations)
	}
	return &ethereum.Receipt{TxHash: txHash, BlockNumber: 100, Confirmations: confirmations}, nil
}

func (m *MockChain) Sent() []ethereum.Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ethereum.Call(nil), m.sent...)
}

func (m *MockChain) Simulated() []ethereum.Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ethereum.Call(nil), m.simulated...)
}

// MockPlans is a mock implementation of PlanReader
type MockPlans struct {
	FindFunc func(ctx context.Context, user common.Address, name string) (*savings.Record, error)
}

func (m *MockPlans) Find(ctx context.Context, user common.Address, name string) (*savings.Record, error) {
	return m.FindFunc(ctx, user, name)
}

// MockHolders records invalidated users
type MockHolders struct {
	mu          sync.Mutex
	invalidated []common.Address
}

func (m *MockHolders) Invalidate(user common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, user)
}

func (m *MockHolders) Invalidated() []common.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Address(nil), m.invalidated...)
}
