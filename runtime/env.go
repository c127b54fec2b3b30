// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/state"
	"github.com/outcryio/outcry/tx"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// BlockContext logical block context. Time is a monotonic logical timestamp
// in nanoseconds, advanced only by the runtime owner.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// CallContext context of one method invocation.
type CallContext struct {
	ID       string
	Origin   outcry.AccountID
	Caller   outcry.AccountID
	Attached *big.Int
	Outcome  *tx.Outcome // non-nil on callback invocations only
}

// Env is the execution environment handed to a module for one invocation.
// It exposes ledger state and collects the receipts and events the handler
// emits; nothing the handler dispatches is delivered until the whole
// operation has committed.
type Env struct {
	state    *state.State
	blockCtx *BlockContext
	callCtx  *CallContext
	to       outcry.AccountID

	returnData []byte
	receipts   tx.Receipts
	transfers  tx.Transfers
	events     tx.Events
}

func NewEnv(st *state.State, blockCtx *BlockContext, callCtx *CallContext, to outcry.AccountID) *Env {
	return &Env{
		state:    st,
		blockCtx: blockCtx,
		callCtx:  callCtx,
		to:       to,
	}
}

func (env *Env) State() *state.State      { return env.state }
func (env *Env) CallCtx() *CallContext    { return env.callCtx }
func (env *Env) To() outcry.AccountID     { return env.to }
func (env *Env) Caller() outcry.AccountID { return env.callCtx.Caller }
func (env *Env) Origin() outcry.AccountID { return env.callCtx.Origin }
func (env *Env) Attached() *big.Int       { return env.callCtx.Attached }
func (env *Env) Outcome() *tx.Outcome     { return env.callCtx.Outcome }
func (env *Env) BlockNumber() uint32      { return env.blockCtx.Number }

// Now returns the logical timestamp the operation executes at.
func (env *Env) Now() uint64 { return env.blockCtx.Time }

func (env *Env) SetReturnData(data []byte) { env.returnData = data }
func (env *Env) ReturnData() []byte        { return env.returnData }

func (env *Env) AddTransfer(sender, recipient outcry.AccountID, amount *big.Int, token byte) {
	env.transfers = append(env.transfers, &tx.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Token:     token,
	})
}

// AddEvent records a named event with a JSON payload.
func (env *Env) AddEvent(name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env.events = append(env.events, &tx.Event{Address: env.to, Name: name, Data: data})
	return nil
}

func (env *Env) Receipts() tx.Receipts   { return env.receipts }
func (env *Env) Transfers() tx.Transfers { return env.transfers }
func (env *Env) Events() tx.Events       { return env.events }

// DispatchTransfer issues a fire-and-forget native transfer receipt. The
// amount leaves the module account's custody immediately; the remote leg is
// neither awaited nor retried.
func (env *Env) DispatchTransfer(to outcry.AccountID, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if !env.state.SubBalance(env.to, amount) {
		return ErrInsufficientBalance
	}
	r := tx.NewReceipt(tx.KindTransfer, env.callCtx.Origin, env.to, to, amount)
	env.receipts = append(env.receipts, r)
	env.AddTransfer(env.to, to, amount, outcry.NATIVE)
	return nil
}

// DispatchCall issues a one-way method invocation receipt, optionally
// carrying native value and a callback that will observe the outcome as a
// distinct later operation.
func (env *Env) DispatchCall(to outcry.AccountID, method string, args []byte, attached *big.Int, cb *tx.Callback) error {
	if attached == nil {
		attached = new(big.Int)
	}
	if attached.Sign() > 0 && !env.state.SubBalance(env.to, attached) {
		return ErrInsufficientBalance
	}
	r := tx.NewReceipt(tx.KindCall, env.callCtx.Origin, env.to, to, attached)
	r.Method = method
	r.Args = args
	r.Callback = cb
	env.receipts = append(env.receipts, r)
	return nil
}

// DispatchCreate issues the batched create-account/fund/install/init unit.
// Its overall success or failure is observed only by the callback.
func (env *Env) DispatchCreate(child outcry.AccountID, amount *big.Int, code []byte, initMethod string, initArgs []byte, cb *tx.Callback) error {
	if amount == nil {
		amount = new(big.Int)
	}
	if amount.Sign() > 0 && !env.state.SubBalance(env.to, amount) {
		return ErrInsufficientBalance
	}
	r := tx.NewReceipt(tx.KindCreate, env.callCtx.Origin, env.to, child, amount)
	r.Method = initMethod
	r.Args = initArgs
	r.Code = code
	r.Callback = cb
	env.receipts = append(env.receipts, r)
	return nil
}
