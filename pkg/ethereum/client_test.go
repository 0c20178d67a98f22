package ethereum

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
)

const testChainID = 8453

// fakeBackend implements only what a test sets; anything else panics
// through the nil embedded interface.
type fakeBackend struct {
	Backend

	CallFunc    func(msg ethereum.CallMsg) ([]byte, error)
	GasFunc     func(msg ethereum.CallMsg) (uint64, error)
	ReceiptFunc func(hash common.Hash) (*types.Receipt, error)
	HeadFunc    func() (uint64, error)
	NonceFunc   func() uint64
	SendDelay   time.Duration

	mu   sync.Mutex
	sent []*types.Transaction
}

func (f *fakeBackend) Sent() []*types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Transaction(nil), f.sent...)
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	return f.CallFunc(msg)
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	if f.GasFunc == nil {
		return 100_000, nil
	}
	return f.GasFunc(msg)
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	if f.NonceFunc == nil {
		return 7, nil
	}
	return f.NonceFunc(), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: big.NewInt(10_000_000_000)}, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	time.Sleep(f.SendDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	return f.ReceiptFunc(hash)
}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) {
	return f.HeadFunc()
}

type revertErr struct{ data string }

func (e revertErr) Error() string          { return "execution reverted" }
func (e revertErr) ErrorData() interface{} { return e.data }

func revertData(t *testing.T, reason string) string {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return hexutil.Encode(append(selector, packed...))
}

func newTestClient(t *testing.T, b *fakeBackend, cfg *config.OrchestratorConfig) *Client {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return NewClientWithBackends(map[int64]Backend{testChainID: b}, cfg, key, zap.NewNop())
}

func TestClient_UnknownChain(t *testing.T) {
	c := newTestClient(t, &fakeBackend{}, nil)

	_, err := c.Simulate(context.Background(), Call{ChainID: 1135})
	require.ErrorIs(t, err, ErrUnknownChain)
}

func TestClient_BalanceOf(t *testing.T) {
	account := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	usdc := common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	wantData, err := contracts.PackBalanceOf(account)
	require.NoError(t, err)

	b := &fakeBackend{
		CallFunc: func(msg ethereum.CallMsg) ([]byte, error) {
			assert.Equal(t, usdc, *msg.To)
			assert.Equal(t, wantData, msg.Data)
			return common.LeftPadBytes(big.NewInt(1_500_000).Bytes(), 32), nil
		},
	}
	c := newTestClient(t, b, nil)

	bal, err := c.BalanceOf(context.Background(), testChainID, usdc, account)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), bal.Int64())
}

func TestClient_Simulate_DecodesRevertReason(t *testing.T) {
	b := &fakeBackend{
		CallFunc: func(ethereum.CallMsg) ([]byte, error) {
			return nil, revertErr{data: revertData(t, "ERC20: insufficient allowance")}
		},
	}
	c := newTestClient(t, b, nil)

	_, err := c.Simulate(context.Background(), Call{ChainID: testChainID})
	require.ErrorIs(t, err, ErrSimulationFailed)

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "ERC20: insufficient allowance", simErr.Reason)
	assert.Equal(t, "transaction would fail: ERC20: insufficient allowance", err.Error())
}

func TestClient_Simulate_FromDefaultsToSigner(t *testing.T) {
	var from common.Address
	b := &fakeBackend{
		CallFunc: func(msg ethereum.CallMsg) ([]byte, error) {
			from = msg.From
			return nil, nil
		},
	}
	c := newTestClient(t, b, nil)

	gas, err := c.Simulate(context.Background(), Call{ChainID: testChainID})
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), gas)
	assert.Equal(t, c.Address(), from)
}

func TestClient_Send_SignsCappedDynamicFeeTx(t *testing.T) {
	b := &fakeBackend{}
	c := newTestClient(t, b, &config.OrchestratorConfig{
		GasLimitMultiplier: 1.5,
		MaxGasPrice:        "15000000000",
	})
	factory := common.HexToAddress("0x00000000000000000000000000000000000000fa")

	hash, err := c.Send(context.Background(), Call{
		ChainID: testChainID,
		To:      factory,
		Data:    []byte{0x01},
		Value:   big.NewInt(42),
	})
	require.NoError(t, err)
	sent := b.Sent()
	require.Len(t, sent, 1)

	tx := sent[0]
	assert.Equal(t, hash, tx.Hash())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(150_000), tx.Gas())
	assert.Equal(t, "15000000000", tx.GasFeeCap().String(), "fee cap is clamped to max_gas_price")
	assert.Equal(t, "2000000000", tx.GasTipCap().String())
	assert.Equal(t, int64(42), tx.Value().Int64())
	assert.Equal(t, factory, *tx.To())

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(testChainID)), tx)
	require.NoError(t, err)
	assert.Equal(t, c.Address(), sender)
}

func TestClient_Send_ConcurrentSendsUseDistinctNonces(t *testing.T) {
	b := &fakeBackend{SendDelay: 20 * time.Millisecond}
	// the node only counts a transaction once its broadcast has completed
	b.NonceFunc = func() uint64 { return uint64(len(b.Sent())) }
	c := newTestClient(t, b, nil)

	const senders = 4
	var wg sync.WaitGroup
	errs := make(chan error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Send(context.Background(), Call{ChainID: testChainID, Data: []byte{byte(i)}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sent := b.Sent()
	require.Len(t, sent, senders)
	nonces := make(map[uint64]bool, senders)
	for _, tx := range sent {
		nonces[tx.Nonce()] = true
	}
	assert.Len(t, nonces, senders, "every transaction gets its own nonce")
}

func TestClient_Send_LaggingPendingNonceIsNotReused(t *testing.T) {
	b := &fakeBackend{NonceFunc: func() uint64 { return 3 }}
	c := newTestClient(t, b, nil)

	for i := 0; i < 3; i++ {
		_, err := c.Send(context.Background(), Call{ChainID: testChainID})
		require.NoError(t, err)
	}

	sent := b.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, uint64(3), sent[0].Nonce())
	assert.Equal(t, uint64(4), sent[1].Nonce())
	assert.Equal(t, uint64(5), sent[2].Nonce())
}

func TestClient_WaitConfirmations(t *testing.T) {
	polls := 0
	head := uint64(10)
	b := &fakeBackend{
		ReceiptFunc: func(common.Hash) (*types.Receipt, error) {
			polls++
			if polls == 1 {
				return nil, ethereum.NotFound
			}
			return &types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(10),
				GasUsed:     21_000,
			}, nil
		},
		HeadFunc: func() (uint64, error) {
			h := head
			head++
			return h, nil
		},
	}
	c := newTestClient(t, b, &config.OrchestratorConfig{ReceiptPollInterval: time.Millisecond})

	receipt, err := c.WaitConfirmations(context.Background(), testChainID, common.Hash{1}, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), receipt.BlockNumber)
	assert.Equal(t, uint64(2), receipt.Confirmations)
	assert.Equal(t, uint64(21_000), receipt.GasUsed)
	assert.Equal(t, 3, polls)
}

func TestClient_WaitConfirmations_Reverted(t *testing.T) {
	b := &fakeBackend{
		ReceiptFunc: func(common.Hash) (*types.Receipt, error) {
			return &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(5)}, nil
		},
	}
	c := newTestClient(t, b, &config.OrchestratorConfig{ReceiptPollInterval: time.Millisecond})

	_, err := c.WaitConfirmations(context.Background(), testChainID, common.Hash{2}, 1)
	require.ErrorIs(t, err, ErrTransactionFailed)
}

func TestClient_WaitConfirmations_Timeout(t *testing.T) {
	b := &fakeBackend{
		ReceiptFunc: func(common.Hash) (*types.Receipt, error) {
			return nil, ethereum.NotFound
		},
	}
	c := newTestClient(t, b, &config.OrchestratorConfig{
		ReceiptPollInterval: time.Millisecond,
		ConfirmationTimeout: 20 * time.Millisecond,
	})

	_, err := c.WaitConfirmations(context.Background(), testChainID, common.Hash{3}, 1)
	require.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.False(t, errors.Is(err, ErrTransactionFailed))
}
