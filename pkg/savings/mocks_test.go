package savings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
	"github.com/chainsafe/bitsave-middleware/pkg/vault"
)

// fakeHolder answers getSavingsNames and getSaving calls from memory
type fakeHolder struct {
	names    []string
	savings  map[string]contracts.RawSaving
	namesErr error
	failing  map[string]error

	mu   sync.Mutex
	from []common.Address
}

func (f *fakeHolder) CallContract(_ context.Context, call ethereum.Call) ([]byte, error) {
	f.mu.Lock()
	f.from = append(f.from, call.From)
	f.mu.Unlock()

	parsed, err := contracts.VaultHolderMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	if len(call.Data) < 4 {
		return nil, errors.New("short calldata")
	}
	method, err := parsed.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "getSavingsNames":
		if f.namesErr != nil {
			return nil, f.namesErr
		}
		return method.Outputs.Pack(struct{ SavingsNames []string }{SavingsNames: f.names})
	case "getSaving":
		args, err := method.Inputs.Unpack(call.Data[4:])
		if err != nil {
			return nil, err
		}
		name := args[0].(string)
		if err := f.failing[name]; err != nil {
			return nil, err
		}
		s, ok := f.savings[name]
		if !ok {
			return nil, fmt.Errorf("no saving %q", name)
		}
		return method.Outputs.Pack(s)
	}
	return nil, fmt.Errorf("unexpected method %s", method.Name)
}

// MockLocator is a scripted HolderLocator
type MockLocator struct {
	LocateFunc func(ctx context.Context, user common.Address) (*vault.Reference, error)
}

func (m *MockLocator) Locate(ctx context.Context, user common.Address) (*vault.Reference, error) {
	if m.LocateFunc != nil {
		return m.LocateFunc(ctx, user)
	}
	return nil, nil
}
