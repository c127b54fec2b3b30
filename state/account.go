// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/outcryio/outcry/kv"
	"github.com/outcryio/outcry/outcry"
)

// Account is the ledger representation of an account.
type Account struct {
	Balance  *big.Int
	CodeSize uint64
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance and zero length code.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.CodeSize == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

var (
	accountPrefix = []byte("a/")
	storagePrefix = []byte("s/")
	codePrefix    = []byte("c/")
)

func accountKey(addr outcry.AccountID) []byte {
	return append(append([]byte(nil), accountPrefix...), addr...)
}

func codeKey(addr outcry.AccountID) []byte {
	return append(append([]byte(nil), codePrefix...), addr...)
}

func storageKey(addr outcry.AccountID, key []byte) []byte {
	k := append(append([]byte(nil), storagePrefix...), addr...)
	k = append(k, '/')
	return append(k, key...)
}

// loadAccount load an account object by address. Returns empty account is
// no account found at the address, along with an existence flag.
func loadAccount(store kv.Store, addr outcry.AccountID) (*Account, bool, error) {
	data, err := store.Get(accountKey(addr))
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), false, nil
		}
		return nil, false, errors.Wrapf(err, "load account %v", addr)
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, false, errors.Wrapf(err, "decode account %v", addr)
	}
	return &a, true, nil
}

// saveAccount save account into the batch.
func saveAccount(batch kv.Batch, addr outcry.AccountID, a *Account) error {
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return errors.Wrapf(err, "encode account %v", addr)
	}
	return batch.Put(accountKey(addr), data)
}
