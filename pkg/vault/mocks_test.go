package vault

import (
	"context"
	"sync"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
)

// MockReader is a scripted Reader
type MockReader struct {
	CallContractFunc func(ctx context.Context, call ethereum.Call) ([]byte, error)

	mu    sync.Mutex
	calls []ethereum.Call
}

func (m *MockReader) CallContract(ctx context.Context, call ethereum.Call) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.CallContractFunc != nil {
		return m.CallContractFunc(ctx, call)
	}
	return nil, nil
}

func (m *MockReader) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
