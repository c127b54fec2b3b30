// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/outcryio/outcry/outcry"
)

// Kind of an outbound receipt.
type Kind byte

const (
	// KindTransfer moves native value to an existing account.
	KindTransfer Kind = iota
	// KindCall invokes a method on another account, optionally carrying value.
	KindCall
	// KindCreate is the batched create-account/fund/install-code/init unit.
	KindCreate
	// KindCallback delivers the outcome of a previously issued receipt.
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindCall:
		return "call"
	case KindCreate:
		return "create"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Callback names the method that observes a receipt's outcome later, as a
// distinct operation.
type Callback struct {
	To     outcry.AccountID
	Method string
	Args   []byte
}

// Outcome is the opaque token a callback receives. It is the only channel
// through which the asynchronous result of a receipt can be observed.
type Outcome struct {
	Ok     bool
	Value  []byte // return data of the completed call, nil on failure
	Reason string // failure reason, empty on success
}

// Receipt is a one-way dispatched message requesting an external state
// change. Once issued it cannot be withdrawn; delivery is at most once and
// never retried.
type Receipt struct {
	ID     string
	Kind   Kind
	Origin outcry.AccountID // caller of the operation that issued the receipt
	From   outcry.AccountID
	To     outcry.AccountID
	Amount *big.Int // value carried by the receipt, already debited from From

	// call / create fields
	Method string
	Args   []byte
	Code   []byte // code to install, KindCreate only

	Callback *Callback
	Outcome  *Outcome // set on KindCallback receipts only
}

// Receipts a slice of receipts.
type Receipts []*Receipt

// NewReceipt allocates a receipt with a fresh ID and a non-nil amount.
func NewReceipt(kind Kind, origin, from, to outcry.AccountID, amount *big.Int) *Receipt {
	if amount == nil {
		amount = new(big.Int)
	}
	return &Receipt{
		ID:     uuid.New().String(),
		Kind:   kind,
		Origin: origin,
		From:   from,
		To:     to,
		Amount: amount,
	}
}

func (r *Receipt) String() string {
	return fmt.Sprintf("receipt{ID:%s Kind:%s From:%s To:%s Amount:%s Method:%s}",
		r.ID, r.Kind, r.From, r.To, r.Amount, r.Method)
}
