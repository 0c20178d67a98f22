package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
)

// step is one mutating transaction of a flow.
type step struct {
	phase Phase
	call  func(ctx context.Context) (ethereum.Call, error)
}

// Flow is a handle on one write flow. Phases run strictly in order: each
// transaction is simulated, sent and confirmed before the next one starts.
type Flow struct {
	id       uuid.UUID
	kind     Kind
	user     common.Address
	chainID  int64
	plan     string
	lockKey  string
	finalize bool
	created  time.Time

	prepare func(ctx context.Context) error
	steps   []step
	after   func()

	o *Orchestrator

	mu          sync.Mutex
	running     bool
	state       State
	subscribers []func(State)
	onSuccess   []func(State)
	onRefetch   []func()
}

func (o *Orchestrator) newFlow(kind Kind, user common.Address, chainID int64, plan string) *Flow {
	return &Flow{
		id:      uuid.New(),
		kind:    kind,
		user:    user,
		chainID: chainID,
		plan:    plan,
		lockKey: planKey(user, plan),
		created: o.now(),
		o:       o,
		state:   State{Phase: PhaseForm, Transactions: []Transaction{}, UpdatedAt: o.now()},
	}
}

func (f *Flow) ID() uuid.UUID        { return f.id }
func (f *Flow) Kind() Kind           { return f.kind }
func (f *Flow) User() common.Address { return f.user }
func (f *Flow) ChainID() int64       { return f.chainID }
func (f *Flow) Plan() string         { return f.plan }

// Snapshot is the serializable view of a flow.
type Snapshot struct {
	ID        uuid.UUID      `json:"id"`
	Kind      Kind           `json:"kind"`
	User      common.Address `json:"user"`
	ChainID   int64          `json:"chain_id"`
	Plan      string         `json:"plan,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	State     State          `json:"state"`
}

// Snapshot captures the flow and its current state.
func (f *Flow) Snapshot() *Snapshot {
	return &Snapshot{
		ID:        f.id,
		Kind:      f.kind,
		User:      f.user,
		ChainID:   f.chainID,
		Plan:      f.plan,
		CreatedAt: f.created,
		State:     f.State(),
	}
}

// State returns a snapshot of the flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Subscribe registers fn to receive every state transition.
func (f *Flow) Subscribe(fn func(State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// OnSuccess registers fn to run once an invocation reaches PhaseDone.
func (f *Flow) OnSuccess(fn func(State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSuccess = append(f.onSuccess, fn)
}

// OnRefetch registers fn to run after a successful invocation so cached
// read models can be reloaded.
func (f *Flow) OnRefetch(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onRefetch = append(f.onRefetch, fn)
}

// Reset returns an idle flow to the form, clearing the last error.
func (f *Flow) Reset() {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return
	}
	f.state = State{Phase: PhaseForm, Transactions: []Transaction{}, UpdatedAt: f.o.now()}
	f.mu.Unlock()
	f.notify()
}

// Invoke runs the flow from the form to PhaseDone. On failure the flow is
// back in PhaseForm with LastError set, and the returned error is the same
// *FlowError. A submitted transaction is never abandoned: cancel ctx only to
// give up waiting for confirmations.
func (f *Flow) Invoke(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return ErrFlowBusy
	}
	f.running = true
	f.state = State{Phase: PhaseForm, Loading: true, Transactions: []Transaction{}, UpdatedAt: f.o.now()}
	f.mu.Unlock()
	f.notify()

	defer func() {
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
	}()

	metrics.ActiveFlows.WithLabelValues(string(f.kind)).Inc()
	defer metrics.ActiveFlows.WithLabelValues(string(f.kind)).Dec()

	logger := f.o.logger.With(
		zap.String("flow_id", f.id.String()),
		zap.String("kind", string(f.kind)),
		zap.String("user", f.user.Hex()),
		zap.Int64("chain_id", f.chainID),
		zap.String("plan", f.plan))

	if f.prepare != nil {
		if err := f.prepare(ctx); err != nil {
			return f.fail(logger, PhaseForm, err)
		}
	}

	unlock, err := f.o.locks.Lock(ctx, f.lockKey)
	if err != nil {
		return f.fail(logger, PhaseForm, err)
	}
	defer unlock()

	for _, s := range f.steps {
		if err := f.runStep(ctx, logger, s); err != nil {
			return f.fail(logger, s.phase, err)
		}
	}

	if f.finalize {
		f.runFinalize(ctx, logger)
	}

	f.transition(PhaseDone, false)
	metrics.FlowsTotal.WithLabelValues(string(f.kind), "success").Inc()
	logger.Info("Flow completed")

	if f.after != nil {
		f.after()
	}
	f.succeed()
	return nil
}

func (f *Flow) runStep(ctx context.Context, logger *zap.Logger, s step) error {
	f.transition(s.phase, true)
	logger.Info("Flow phase started", zap.String("phase", string(s.phase)))
	start := time.Now()
	defer func() {
		metrics.PhaseDuration.WithLabelValues(string(f.kind), string(s.phase)).Observe(time.Since(start).Seconds())
	}()

	call, err := s.call(ctx)
	if err != nil {
		return err
	}
	if _, err := f.o.chain.Simulate(ctx, call); err != nil {
		return err
	}

	hash, err := f.o.chain.Send(ctx, call)
	if err != nil {
		return err
	}
	f.recordTx(Transaction{Phase: s.phase, Hash: hash})
	logger.Info("Transaction submitted",
		zap.String("phase", string(s.phase)),
		zap.String("tx_hash", hash.Hex()))

	receipt, err := f.o.chain.WaitConfirmations(ctx, call.ChainID, hash, f.o.confirmations())
	if err != nil {
		return err
	}
	f.confirmTx(hash, receipt.BlockNumber)
	logger.Info("Transaction confirmed",
		zap.String("phase", string(s.phase)),
		zap.String("tx_hash", hash.Hex()),
		zap.Uint64("block", receipt.BlockNumber))
	return nil
}

// runFinalize waits the configured settle delay. Mutations already landed,
// so nothing here can fail the flow.
func (f *Flow) runFinalize(ctx context.Context, logger *zap.Logger) {
	f.transition(PhaseFinalize, true)
	delay := f.o.cfg.FinalizeDelay
	if delay <= 0 {
		return
	}
	if err := f.o.sleep(ctx, delay); err != nil {
		logger.Warn("Finalize interrupted", zap.Error(err))
	}
}

func (f *Flow) fail(logger *zap.Logger, phase Phase, err error) error {
	fe := classify(f.kind, phase, err)

	f.mu.Lock()
	f.state.Phase = PhaseForm
	f.state.Loading = false
	f.state.LastError = fe
	f.state.UpdatedAt = f.o.now()
	f.mu.Unlock()
	f.notify()

	metrics.FlowsTotal.WithLabelValues(string(f.kind), "failed").Inc()
	metrics.FlowFailures.WithLabelValues(string(f.kind), string(fe.Kind)).Inc()

	level := logger.Warn
	if fe.Kind == ErrorGeneric || fe.Kind == ErrorConfiguration {
		level = logger.Error
	}
	level("Flow failed",
		zap.String("phase", string(phase)),
		zap.String("error_kind", string(fe.Kind)),
		zap.String("title", fe.Title),
		zap.String("message", fe.Message),
		zap.Error(err))
	return fe
}

func (f *Flow) transition(phase Phase, loading bool) {
	f.mu.Lock()
	f.state.Phase = phase
	f.state.Loading = loading
	f.state.UpdatedAt = f.o.now()
	f.mu.Unlock()
	f.notify()
}

func (f *Flow) recordTx(tx Transaction) {
	f.mu.Lock()
	f.state.Transactions = append(f.state.Transactions, tx)
	f.state.UpdatedAt = f.o.now()
	f.mu.Unlock()
	f.notify()
}

func (f *Flow) confirmTx(hash common.Hash, block uint64) {
	f.mu.Lock()
	for i := range f.state.Transactions {
		if f.state.Transactions[i].Hash == hash {
			f.state.Transactions[i].Confirmed = true
			f.state.Transactions[i].BlockNumber = block
		}
	}
	f.state.UpdatedAt = f.o.now()
	f.mu.Unlock()
	f.notify()
}

func (f *Flow) notify() {
	f.mu.Lock()
	st := f.state.clone()
	subs := append([]func(State){}, f.subscribers...)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

func (f *Flow) succeed() {
	f.mu.Lock()
	st := f.state.clone()
	success := append([]func(State){}, f.onSuccess...)
	refetch := append([]func(){}, f.onRefetch...)
	f.mu.Unlock()

	for _, fn := range success {
		fn(st)
	}
	for _, fn := range refetch {
		fn()
	}
}
