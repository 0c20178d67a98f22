package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum/contracts"
)

// Backend is the subset of ethclient.Client used per chain.
type Backend interface {
	ethereum.ContractCaller
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.GasPricer1559
	ethereum.PendingStateReader
	ethereum.TransactionSender
	ethereum.TransactionReader
	ethereum.ChainReader
	BlockNumber(ctx context.Context) (uint64, error)
}

// nonceTracker serializes sends from the signer on one chain. next is the
// nonce after the last transaction this process broadcast.
type nonceTracker struct {
	mu   sync.Mutex
	next uint64
}

// Client talks to every configured chain on behalf of one signing wallet.
type Client struct {
	cfg        *config.OrchestratorConfig
	backends   map[int64]Backend
	nonces     map[int64]*nonceTracker
	closers    []func()
	names      map[int64]string
	privateKey *ecdsa.PrivateKey
	address    common.Address
	logger     *zap.Logger
}

// NewClient dials every chain's RPC endpoint and loads the signer key.
func NewClient(
	chains []config.ChainConfig,
	orchestrator *config.OrchestratorConfig,
	signerKeyHex string,
	logger *zap.Logger,
) (*Client, error) {
	privateKey, err := crypto.HexToECDSA(signerKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	c := &Client{
		cfg:        orchestrator,
		backends:   make(map[int64]Backend, len(chains)),
		nonces:     make(map[int64]*nonceTracker, len(chains)),
		names:      make(map[int64]string, len(chains)),
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		logger:     logger,
	}

	for _, ch := range chains {
		ec, err := ethclient.Dial(ch.RPCURL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to %s RPC: %w", ch.Name, err)
		}
		c.backends[ch.ChainID] = ec
		c.nonces[ch.ChainID] = &nonceTracker{}
		c.closers = append(c.closers, ec.Close)
		c.names[ch.ChainID] = ch.Name

		logger.Info("Connected to chain",
			zap.String("chain", ch.Name),
			zap.Int64("chain_id", ch.ChainID),
			zap.String("rpc_url", ch.RPCURL))
	}

	logger.Info("Signer loaded", zap.String("address", c.address.Hex()))
	return c, nil
}

// NewClientWithBackends builds a client over pre-built backends (simulated chains, tests).
func NewClientWithBackends(
	backends map[int64]Backend,
	orchestrator *config.OrchestratorConfig,
	privateKey *ecdsa.PrivateKey,
	logger *zap.Logger,
) *Client {
	names := make(map[int64]string, len(backends))
	nonces := make(map[int64]*nonceTracker, len(backends))
	for id := range backends {
		names[id] = fmt.Sprintf("chain-%d", id)
		nonces[id] = &nonceTracker{}
	}
	return &Client{
		cfg:        orchestrator,
		backends:   backends,
		nonces:     nonces,
		names:      names,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		logger:     logger,
	}
}

// Close closes all RPC connections
func (c *Client) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

// Address returns the signer (connected wallet) address.
func (c *Client) Address() common.Address {
	return c.address
}

func (c *Client) backend(chainID int64) (Backend, error) {
	b, ok := c.backends[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	return b, nil
}

// CallContract performs an eth_call at the latest block.
func (c *Client) CallContract(ctx context.Context, call Call) ([]byte, error) {
	b, err := c.backend(call.ChainID)
	if err != nil {
		return nil, err
	}
	to := call.To
	out, err := b.CallContract(ctx, ethereum.CallMsg{
		From: call.From,
		To:   &to,
		Data: call.Data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on chain %d: %w", to.Hex(), call.ChainID, err)
	}
	return out, nil
}

// BalanceOf reads an ERC20 balance.
func (c *Client) BalanceOf(ctx context.Context, chainID int64, tokenAddr, account common.Address) (*big.Int, error) {
	data, err := contracts.PackBalanceOf(account)
	if err != nil {
		return nil, err
	}
	out, err := c.CallContract(ctx, Call{ChainID: chainID, From: account, To: tokenAddr, Data: data})
	if err != nil {
		return nil, err
	}
	return contracts.UnpackUint256("balanceOf", out)
}

// Simulate dry-runs a write from the signer and returns the estimated gas.
// A revert is reported as *SimulationError with the decoded reason when available.
func (c *Client) Simulate(ctx context.Context, call Call) (uint64, error) {
	b, err := c.backend(call.ChainID)
	if err != nil {
		return 0, err
	}
	msg := c.callMsg(call)

	if _, err := b.CallContract(ctx, msg, nil); err != nil {
		return 0, &SimulationError{Reason: revertReason(err), Err: err}
	}
	gas, err := b.EstimateGas(ctx, msg)
	if err != nil {
		return 0, &SimulationError{Reason: revertReason(err), Err: err}
	}
	return gas, nil
}

// Send signs and broadcasts call from the signer wallet. Sends on the same
// chain are serialized from nonce selection to broadcast, and a nonce is
// never reused even when the node's pending count lags behind.
func (c *Client) Send(ctx context.Context, call Call) (common.Hash, error) {
	b, err := c.backend(call.ChainID)
	if err != nil {
		return common.Hash{}, err
	}

	gas, err := b.EstimateGas(ctx, c.callMsg(call))
	if err != nil {
		return common.Hash{}, &SimulationError{Reason: revertReason(err), Err: err}
	}
	gas = uint64(math.Ceil(float64(gas) * c.gasMultiplier()))

	nt := c.nonces[call.ChainID]
	nt.mu.Lock()
	defer nt.mu.Unlock()

	pending, err := b.PendingNonceAt(ctx, c.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}
	nonce := max(pending, nt.next)

	tip, err := b.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := b.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get latest header: %w", err)
	}
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(baseFee, big.NewInt(2)))
	feeCap = c.capGasPrice(feeCap)
	if tip.Cmp(feeCap) > 0 {
		tip = new(big.Int).Set(feeCap)
	}

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	to := call.To
	chainID := big.NewInt(call.ChainID)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      call.Data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := b.SendTransaction(ctx, signed); err != nil {
		metrics.TransactionsSent.WithLabelValues(c.names[call.ChainID], "rejected").Inc()
		return common.Hash{}, fmt.Errorf("failed to submit transaction: %w", err)
	}
	nt.next = nonce + 1
	metrics.TransactionsSent.WithLabelValues(c.names[call.ChainID], "submitted").Inc()

	c.logger.Info("Transaction submitted",
		zap.Int64("chain_id", call.ChainID),
		zap.String("to", to.Hex()),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.String("value", value.String()))

	return signed.Hash(), nil
}

// WaitConfirmations blocks until txHash is mined with at least confirmations
// blocks on top (the inclusion block counts as one). A reverted receipt is an
// error. Without a configured confirmation timeout this waits until ctx ends.
func (c *Client) WaitConfirmations(
	ctx context.Context,
	chainID int64,
	txHash common.Hash,
	confirmations uint64,
) (*Receipt, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}
	if confirmations == 0 {
		confirmations = 1
	}

	if c.cfg != nil && c.cfg.ConfirmationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConfirmationTimeout)
		defer cancel()
	}

	start := time.Now()
	var result *Receipt
	err = retry.Do(
		func() error {
			receipt, err := b.TransactionReceipt(ctx, txHash)
			if err != nil {
				// not yet mined, or a transient RPC error
				return err
			}
			if receipt.Status != types.ReceiptStatusSuccessful {
				return retry.Unrecoverable(fmt.Errorf("%w: %s", ErrTransactionFailed, txHash.Hex()))
			}
			head, err := b.BlockNumber(ctx)
			if err != nil {
				return err
			}
			mined := receipt.BlockNumber.Uint64()
			if head+1 < mined+confirmations {
				return fmt.Errorf("tx %s has %d of %d confirmations", txHash.Hex(), head+1-mined, confirmations)
			}
			result = &Receipt{
				TxHash:        txHash,
				BlockNumber:   mined,
				GasUsed:       receipt.GasUsed,
				Confirmations: head + 1 - mined,
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(c.pollInterval()),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, ErrTransactionFailed) {
			return nil, err
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrConfirmationTimeout, txHash.Hex())
		}
		return nil, fmt.Errorf("wait for %s: %w", txHash.Hex(), err)
	}

	metrics.ConfirmationWait.WithLabelValues(c.names[chainID]).Observe(time.Since(start).Seconds())
	metrics.GasUsed.WithLabelValues(c.names[chainID]).Observe(float64(result.GasUsed))
	return result, nil
}

func (c *Client) callMsg(call Call) ethereum.CallMsg {
	to := call.To
	from := call.From
	if from == (common.Address{}) {
		from = c.address
	}
	return ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: call.Value,
		Data:  call.Data,
	}
}

func (c *Client) capGasPrice(feeCap *big.Int) *big.Int {
	if c.cfg == nil || c.cfg.MaxGasPrice == "" {
		return feeCap
	}
	maxGasPrice, ok := new(big.Int).SetString(c.cfg.MaxGasPrice, 10)
	if !ok {
		return feeCap
	}
	if feeCap.Cmp(maxGasPrice) > 0 {
		c.logger.Warn("Suggested fee cap exceeds maximum",
			zap.String("suggested", feeCap.String()),
			zap.String("max", maxGasPrice.String()))
		return maxGasPrice
	}
	return feeCap
}

func (c *Client) gasMultiplier() float64 {
	if c.cfg == nil || c.cfg.GasLimitMultiplier < 1 {
		return 1
	}
	return c.cfg.GasLimitMultiplier
}

func (c *Client) pollInterval() time.Duration {
	if c.cfg == nil || c.cfg.ReceiptPollInterval <= 0 {
		return 2 * time.Second
	}
	return c.cfg.ReceiptPollInterval
}

// revertReason extracts an Error(string) reason from an RPC error, if any.
func revertReason(err error) string {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return ""
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return ""
	}
	raw, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil {
		return ""
	}
	reason, unpackErr := abi.UnpackRevert(raw)
	if unpackErr != nil {
		return ""
	}
	return reason
}
