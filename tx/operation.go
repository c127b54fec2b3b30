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

// Operation is one externally submitted ledger transaction. Operations are
// totally ordered and each one executes to completion before the next is
// observed.
type Operation struct {
	ID       string
	Caller   outcry.AccountID
	To       outcry.AccountID
	Method   string // empty for a plain native transfer
	Args     []byte // opaque structured-data boundary, JSON encoded
	Attached *big.Int
}

// NewOperation builds an operation with a fresh ID and a non-nil attached amount.
func NewOperation(caller, to outcry.AccountID, method string, args []byte, attached *big.Int) *Operation {
	if attached == nil {
		attached = new(big.Int)
	}
	return &Operation{
		ID:       uuid.New().String(),
		Caller:   caller,
		To:       to,
		Method:   method,
		Args:     args,
		Attached: attached,
	}
}

func (op *Operation) String() string {
	return fmt.Sprintf("op{ID:%s Caller:%s To:%s Method:%s Attached:%s}",
		op.ID, op.Caller, op.To, op.Method, op.Attached)
}
