// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"errors"
	"log/slog"
	"math/big"
	"sync"

	"github.com/outcryio/outcry/logdb"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/state"
	"github.com/outcryio/outcry/tx"
)

var (
	ErrUnknownReceiver = errors.New("unknown receiver account")
	ErrNotContract     = errors.New("receiver account has no contract")
)

// Output collects the observable results of one executed operation.
type Output struct {
	Ret       []byte
	Receipts  tx.Receipts
	Transfers tx.Transfers
	Events    tx.Events
}

// Runtime executes operations against ledger state, one at a time, each to
// completion. Receipts a handler dispatches are queued and delivered later
// as separate atomic steps; an outcome is observable only through a callback
// receipt, never synchronously.
type Runtime struct {
	mu        sync.Mutex
	state     *state.State
	reg       *Registry
	installer Installer
	blockCtx  BlockContext
	queue     []*tx.Receipt
	logDB     *logdb.LogDB
	logger    *slog.Logger
}

// New creates a runtime over the given state.
func New(st *state.State) *Runtime {
	return &Runtime{
		state:    st,
		reg:      &Registry{},
		blockCtx: BlockContext{Number: 1},
		logger:   slog.Default().With("pkg", "runtime"),
	}
}

// SetLogDB attaches the dispatch/event journal.
func (rt *Runtime) SetLogDB(db *logdb.LogDB) { rt.logDB = db }

// SetInstaller sets the hook that turns installed code into a live module.
func (rt *Runtime) SetInstaller(in Installer) { rt.installer = in }

// Registry returns the module registry.
func (rt *Runtime) Registry() *Registry { return rt.reg }

// RegisterModule binds a module and brings its account into existence.
func (rt *Runtime) RegisterModule(addr outcry.AccountID, m Module) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.reg.Register(addr, m); err != nil {
		return err
	}
	rt.state.CreateAccount(addr)
	return rt.state.Stage().Commit()
}

// MutateState runs fn against ledger state and commits the result. Intended
// for provisioning; state left dirty by a failed fn is reverted.
func (rt *Runtime) MutateState(fn func(st *state.State) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	chk := rt.state.NewCheckpoint()
	if err := fn(rt.state); err != nil {
		rt.state.RevertTo(chk)
		return err
	}
	if err := rt.state.Err(); err != nil {
		rt.state.RevertTo(chk)
		return err
	}
	return rt.state.Stage().Commit()
}

// SetTime advances the logical clock. Time never goes backwards.
func (rt *Runtime) SetTime(ts uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if ts < rt.blockCtx.Time {
		panic("runtime: time went backwards")
	}
	rt.blockCtx.Time = ts
	rt.blockCtx.Number++
}

// AdvanceTime moves the logical clock forward to ts; timestamps that do not
// advance it are ignored. Use this for external time sources like the wall
// clock, which may step backwards.
func (rt *Runtime) AdvanceTime(ts uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if ts <= rt.blockCtx.Time {
		return
	}
	rt.blockCtx.Time = ts
	rt.blockCtx.Number++
}

// Now returns the current logical timestamp.
func (rt *Runtime) Now() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.blockCtx.Time
}

// GetBalance reads an account's committed native balance.
func (rt *Runtime) GetBalance(addr outcry.AccountID) *big.Int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.state.GetBalance(addr)
}

// Exists reports whether an account exists.
func (rt *Runtime) Exists(addr outcry.AccountID) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.state.Exists(addr)
}

// PendingReceipts returns the number of queued, not yet delivered receipts.
func (rt *Runtime) PendingReceipts() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.queue)
}

// Execute applies one operation. Either the whole operation commits, with
// its receipts queued for later delivery, or it is rejected with no effect.
func (rt *Runtime) Execute(op *tx.Operation) (*Output, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out, err := rt.exec(&call{
		id:     op.ID,
		origin: op.Caller,
		caller: op.Caller,
		to:     op.To,
		method: op.Method,
		args:   op.Args,
		amount: op.Attached,
	})
	if err != nil {
		opsExecuted.WithLabelValues("rejected").Inc()
		return nil, err
	}
	opsExecuted.WithLabelValues("applied").Inc()
	return out, nil
}

// Query runs a read-only method and discards every state change and receipt.
func (rt *Runtime) Query(to outcry.AccountID, method string, args []byte) ([]byte, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	mod, ok := rt.findModule(to)
	if !ok {
		return nil, ErrNotContract
	}
	chk := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(chk)
	env := NewEnv(rt.state, &rt.blockCtx, &CallContext{
		Origin:   to,
		Caller:   to,
		Attached: new(big.Int),
	}, to)
	return mod.Dispatch(env, method, args)
}

// findModule resolves the module bound to an account, reviving it from the
// account's installed code when the in-memory registry has no binding yet.
// That is how a restarted node recovers modules installed in past runs.
func (rt *Runtime) findModule(addr outcry.AccountID) (Module, bool) {
	if mod, ok := rt.reg.Find(addr); ok {
		return mod, true
	}
	if rt.installer == nil {
		return nil, false
	}
	code := rt.state.GetCode(addr)
	if len(code) == 0 {
		return nil, false
	}
	mod, err := rt.installer(addr, code)
	if err != nil {
		rt.logger.Warn("module revival failed", "addr", addr, "err", err)
		return nil, false
	}
	rt.reg.ForceRegister(addr, mod)
	return mod, true
}

// Step delivers one queued receipt. Returns false when the queue is empty.
func (rt *Runtime) Step() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.step()
}

// Drain delivers queued receipts until none remain, including receipts
// enqueued by the delivery itself. Returns the number delivered.
func (rt *Runtime) Drain() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	n := 0
	for rt.step() {
		n++
	}
	return n
}

type call struct {
	id      string
	origin  outcry.AccountID
	caller  outcry.AccountID
	to      outcry.AccountID
	method  string
	args    []byte
	amount  *big.Int
	prepaid bool // value already debited from caller when the receipt was issued
	outcome *tx.Outcome
}

func (rt *Runtime) exec(c *call) (*Output, error) {
	st := rt.state
	if c.amount == nil {
		c.amount = new(big.Int)
	}
	if !st.Exists(c.to) {
		return nil, ErrUnknownReceiver
	}
	chk := st.NewCheckpoint()
	if c.amount.Sign() > 0 {
		if !c.prepaid && !st.SubBalance(c.caller, c.amount) {
			return nil, ErrInsufficientBalance
		}
		st.AddBalance(c.to, c.amount)
	}
	env := NewEnv(st, &rt.blockCtx, &CallContext{
		ID:       c.id,
		Origin:   c.origin,
		Caller:   c.caller,
		Attached: c.amount,
		Outcome:  c.outcome,
	}, c.to)

	if c.amount.Sign() > 0 {
		env.AddTransfer(c.caller, c.to, c.amount, outcry.NATIVE)
	}
	var ret []byte
	if c.method != "" {
		mod, ok := rt.findModule(c.to)
		if !ok {
			st.RevertTo(chk)
			return nil, ErrNotContract
		}
		var err error
		ret, err = mod.Dispatch(env, c.method, c.args)
		if err != nil {
			st.RevertTo(chk)
			return nil, err
		}
	}
	if err := st.Err(); err != nil {
		st.RevertTo(chk)
		return nil, err
	}

	out := &Output{Ret: ret, Receipts: env.Receipts(), Transfers: env.Transfers(), Events: env.Events()}
	// local mutations commit before any outbound receipt becomes deliverable
	if err := st.Stage().Commit(); err != nil {
		return nil, err
	}
	rt.queue = append(rt.queue, out.Receipts...)
	rt.journal(c.id, c.origin, out.Transfers, out.Events)
	return out, nil
}

func (rt *Runtime) step() bool {
	if len(rt.queue) == 0 {
		return false
	}
	r := rt.queue[0]
	rt.queue = rt.queue[1:]
	rt.process(r)
	return true
}

func (rt *Runtime) process(r *tx.Receipt) {
	st := rt.state
	switch r.Kind {
	case tx.KindTransfer:
		if st.Exists(r.To) {
			st.AddBalance(r.To, r.Amount)
		} else {
			// remote leg dropped; value returns to the sender account
			rt.logger.Warn("transfer receipt failed", "to", r.To, "amount", r.Amount)
			st.AddBalance(r.From, r.Amount)
		}
		rt.commitReceipt(r, st.Stage().Commit() == nil)

	case tx.KindCall:
		out, err := rt.exec(&call{
			id:      r.ID,
			origin:  r.Origin,
			caller:  r.From,
			to:      r.To,
			method:  r.Method,
			args:    r.Args,
			amount:  r.Amount,
			prepaid: true,
		})
		var outcome *tx.Outcome
		if err != nil {
			rt.logger.Warn("call receipt failed", "to", r.To, "method", r.Method, "err", err)
			st.AddBalance(r.From, r.Amount)
			if cerr := st.Stage().Commit(); cerr != nil {
				rt.logger.Error("refund commit failed", "err", cerr)
			}
			outcome = &tx.Outcome{Ok: false, Reason: err.Error()}
			rt.commitReceipt(r, false)
		} else {
			outcome = &tx.Outcome{Ok: true, Value: out.Ret}
			rt.commitReceipt(r, true)
		}
		rt.enqueueCallback(r, outcome)

	case tx.KindCreate:
		outcome := rt.processCreate(r)
		rt.commitReceipt(r, outcome.Ok)
		rt.enqueueCallback(r, outcome)

	case tx.KindCallback:
		_, err := rt.exec(&call{
			id:      r.ID,
			origin:  r.Origin,
			caller:  r.From,
			to:      r.To,
			method:  r.Method,
			args:    r.Args,
			outcome: r.Outcome,
		})
		if err != nil {
			// delivered at most once; a rejected callback is not retried
			rt.logger.Warn("callback rejected", "to", r.To, "method", r.Method, "err", err)
		}
		rt.commitReceipt(r, err == nil)
	}
}

// processCreate applies the batched creation unit all-or-nothing and reports
// its outcome. On failure the carried value returns to the sender.
func (rt *Runtime) processCreate(r *tx.Receipt) *tx.Outcome {
	st := rt.state
	fail := func(reason string) *tx.Outcome {
		st.AddBalance(r.From, r.Amount)
		if err := st.Stage().Commit(); err != nil {
			rt.logger.Error("refund commit failed", "err", err)
		}
		rt.logger.Warn("create receipt failed", "child", r.To, "reason", reason)
		return &tx.Outcome{Ok: false, Reason: reason}
	}
	if st.Exists(r.To) {
		return fail("account already exists")
	}
	if rt.installer == nil {
		return fail("no code installer configured")
	}
	chk := st.NewCheckpoint()
	st.CreateAccount(r.To)
	st.AddBalance(r.To, r.Amount)
	st.SetCode(r.To, r.Code)
	mod, err := rt.installer(r.To, r.Code)
	if err != nil {
		st.RevertTo(chk)
		return fail("install code: " + err.Error())
	}
	rt.reg.ForceRegister(r.To, mod)

	env := NewEnv(st, &rt.blockCtx, &CallContext{
		ID:       r.ID,
		Origin:   r.Origin,
		Caller:   r.To, // the fresh account acts for itself during provisioning
		Attached: new(big.Int),
	}, r.To)
	_, err = mod.Dispatch(env, r.Method, r.Args)
	if err == nil {
		err = st.Err()
	}
	if err != nil {
		st.RevertTo(chk)
		rt.reg.Unregister(r.To)
		return fail("init call: " + err.Error())
	}
	if err := st.Stage().Commit(); err != nil {
		rt.reg.Unregister(r.To)
		return fail("commit: " + err.Error())
	}
	rt.queue = append(rt.queue, env.Receipts()...)
	rt.journal(r.ID, r.Origin, env.Transfers(), env.Events())
	return &tx.Outcome{Ok: true}
}

func (rt *Runtime) enqueueCallback(r *tx.Receipt, outcome *tx.Outcome) {
	if r.Callback == nil {
		return
	}
	cb := tx.NewReceipt(tx.KindCallback, r.Origin, r.From, r.Callback.To, nil)
	cb.Method = r.Callback.Method
	cb.Args = r.Callback.Args
	cb.Outcome = outcome
	rt.queue = append(rt.queue, cb)
}

func (rt *Runtime) commitReceipt(r *tx.Receipt, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	receiptsDelivered.WithLabelValues(r.Kind.String(), result).Inc()
}

func (rt *Runtime) journal(id string, origin outcry.AccountID, transfers tx.Transfers, events tx.Events) {
	if rt.logDB == nil || (len(transfers) == 0 && len(events) == 0) {
		return
	}
	rec := &logdb.OpRecord{
		OpID:      id,
		Time:      rt.blockCtx.Time,
		Origin:    origin,
		Transfers: transfers,
		Events:    events,
	}
	if err := rt.logDB.Insert(rec); err != nil {
		rt.logger.Warn("journal insert failed", "opID", id, "err", err)
	}
}
