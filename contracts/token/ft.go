// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the in-ledger asset registries: a fungible token
// ledger and a collectible registry. They exist so auctions settled in
// non-native assets have a real remote leg to dispatch against.
package token

import (
	"encoding/json"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
	"github.com/outcryio/outcry/state"
	"github.com/outcryio/outcry/tx"
	"github.com/pkg/errors"
)

// FTCodeID tags packaged fungible-registry code.
const FTCodeID = "outcry/ft@1"

var (
	ErrMarkerDeposit     = errors.New("marker deposit required")
	ErrInsufficientFunds = errors.New("insufficient token balance")
	errFTPrivateMethod   = errors.New("method is private")
	errFTUnknownMethod   = errors.New("unknown method")
)

var ftBalancePrefix = []byte("b/")

// FTPackagedCode returns the code blob an installer maps to an FT registry.
func FTPackagedCode() []byte {
	return []byte(FTCodeID)
}

// FT is a fungible token registry bound to its ledger account.
type FT struct {
	addr outcry.AccountID
}

func NewFT(addr outcry.AccountID) *FT {
	return &FT{addr: addr}
}

func (f *FT) Name() string {
	return "ft"
}

func (f *FT) Dispatch(env *runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case "ft_transfer":
		return f.handleTransfer(env, args)
	case "ft_transfer_call":
		return f.handleTransferCall(env, args)
	case "ft_resolve_transfer":
		return f.handleResolveTransfer(env, args)
	case "ft_balance_of":
		return f.handleBalanceOf(env, args)
	}
	return nil, errors.Wrap(errFTUnknownMethod, method)
}

func ftBalanceKey(holder outcry.AccountID) []byte {
	return append(append([]byte(nil), ftBalancePrefix...), holder...)
}

func (f *FT) balanceOf(st *state.State, holder outcry.AccountID) *big.Int {
	raw := st.GetStorage(f.addr, ftBalanceKey(holder))
	if len(raw) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(raw)
}

func (f *FT) setBalance(st *state.State, holder outcry.AccountID, amount *big.Int) {
	if amount.Sign() == 0 {
		st.SetStorage(f.addr, ftBalanceKey(holder), nil)
		return
	}
	st.SetStorage(f.addr, ftBalanceKey(holder), amount.Bytes())
}

// Credit mints tokens onto an account. Used when seeding the ledger.
func (f *FT) Credit(st *state.State, holder outcry.AccountID, amount *big.Int) {
	f.setBalance(st, holder, new(big.Int).Add(f.balanceOf(st, holder), amount))
}

func (f *FT) move(st *state.State, from, to outcry.AccountID, amount *big.Int) error {
	bal := f.balanceOf(st, from)
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	f.setBalance(st, from, bal.Sub(bal, amount))
	f.setBalance(st, to, new(big.Int).Add(f.balanceOf(st, to), amount))
	return nil
}

// handleTransfer moves tokens from the caller to the receiver. The marker
// deposit proves the caller signed with value attached.
func (f *FT) handleTransfer(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Attached().Cmp(outcry.MarkerDeposit) != 0 {
		return nil, ErrMarkerDeposit
	}
	var in settlement.FungibleTransferArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "ft_transfer args")
	}
	receiver, err := outcry.ParseAccountID(in.ReceiverID)
	if err != nil {
		return nil, errors.Wrap(err, "receiver_id")
	}
	amount, ok := outcry.ParseAmount(in.Amount)
	if !ok {
		return nil, errors.New("invalid amount")
	}
	if err := f.move(env.State(), env.Caller(), receiver, amount); err != nil {
		return nil, err
	}
	env.AddTransfer(env.Caller(), receiver, amount, outcry.FUNGIBLE)
	return nil, nil
}

// TransferCallArgs is the wire shape of ft_transfer_call.
type TransferCallArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
	Msg        string `json:"msg"`
}

type resolveArgs struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
}

// handleTransferCall moves tokens to the receiver and notifies it. The
// resolve callback later returns whatever the receiver did not consume.
func (f *FT) handleTransferCall(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Attached().Cmp(outcry.MarkerDeposit) != 0 {
		return nil, ErrMarkerDeposit
	}
	var in TransferCallArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "ft_transfer_call args")
	}
	receiver, err := outcry.ParseAccountID(in.ReceiverID)
	if err != nil {
		return nil, errors.Wrap(err, "receiver_id")
	}
	amount, ok := outcry.ParseAmount(in.Amount)
	if !ok {
		return nil, errors.New("invalid amount")
	}
	sender := env.Caller()
	if err := f.move(env.State(), sender, receiver, amount); err != nil {
		return nil, err
	}
	env.AddTransfer(sender, receiver, amount, outcry.FUNGIBLE)

	notify, err := json.Marshal(&FTOnTransferArgs{
		SenderID: sender.String(),
		Amount:   amount.String(),
		Msg:      in.Msg,
	})
	if err != nil {
		return nil, err
	}
	resolve, err := json.Marshal(&resolveArgs{
		SenderID:   sender.String(),
		ReceiverID: receiver.String(),
		Amount:     amount.String(),
	})
	if err != nil {
		return nil, err
	}
	return nil, env.DispatchCall(receiver, "ft_on_transfer", notify, nil, &tx.Callback{
		To:     f.addr,
		Method: "ft_resolve_transfer",
		Args:   resolve,
	})
}

// FTOnTransferArgs is the notification delivered to the receiving module.
type FTOnTransferArgs struct {
	SenderID string `json:"sender_id"`
	Amount   string `json:"amount"`
	Msg      string `json:"msg"`
}

// handleResolveTransfer finishes a transfer-and-call. If the receiver
// rejected the notification, or returned an unused remainder, that much
// goes back to the sender.
func (f *FT) handleResolveTransfer(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Caller() != f.addr {
		return nil, errors.Wrap(errFTPrivateMethod, "ft_resolve_transfer")
	}
	outcome := env.Outcome()
	if outcome == nil {
		return nil, errors.New("not a callback invocation")
	}
	var in resolveArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "callback args")
	}
	sender := outcry.MustParseAccountID(in.SenderID)
	receiver := outcry.MustParseAccountID(in.ReceiverID)
	amount, _ := outcry.ParseAmount(in.Amount)

	refund := new(big.Int)
	if !outcome.Ok {
		refund.Set(amount)
	} else if len(outcome.Value) > 0 {
		var unusedStr string
		if err := json.Unmarshal(outcome.Value, &unusedStr); err == nil {
			if unused, ok := outcry.ParseAmount(unusedStr); ok {
				refund.Set(unused)
				if refund.Cmp(amount) > 0 {
					refund.Set(amount)
				}
			}
		}
	}
	if refund.Sign() == 0 {
		return nil, nil
	}
	// The receiver may have spent part of the balance since; return what is
	// still there, capped at the refund due.
	held := f.balanceOf(env.State(), receiver)
	if held.Cmp(refund) < 0 {
		refund.Set(held)
	}
	if refund.Sign() == 0 {
		return nil, nil
	}
	if err := f.move(env.State(), receiver, sender, refund); err != nil {
		return nil, err
	}
	env.AddTransfer(receiver, sender, refund, outcry.FUNGIBLE)
	return json.Marshal(refund.String())
}

func (f *FT) handleBalanceOf(env *runtime.Env, args []byte) ([]byte, error) {
	var in struct {
		AccountID string `json:"account_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "ft_balance_of args")
	}
	holder, err := outcry.ParseAccountID(in.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "account_id")
	}
	return json.Marshal(f.balanceOf(env.State(), holder).String())
}
