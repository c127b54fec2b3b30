// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	lru "github.com/hashicorp/golang-lru"

	"github.com/outcryio/outcry/kv"
	"github.com/outcryio/outcry/outcry"
)

const codeCacheSize = 512

// State manages the ledger accounts: native balances, installed code and
// per-account storage records. All mutations are journaled so that a whole
// operation can be reverted to a checkpoint, and reach the underlying store
// only through Stage().Commit().
type State struct {
	store    kv.Store
	accounts map[outcry.AccountID]*cachedAccount
	codes    *lru.Cache
	journal  []journalEntry
	err      error
}

type cachedAccount struct {
	balance    *big.Int
	exists     bool
	codeSize   uint64
	code       []byte // nil until loaded or set
	codeLoaded bool
	codeDirty  bool
	storage    map[string]*storageEntry
	dirty      bool
}

type storageEntry struct {
	value []byte
	dirty bool
}

type journalEntry struct {
	addr outcry.AccountID
	// exactly one of the following reverts applies
	balance *big.Int // previous balance
	created bool     // account did not exist before
	storage *struct {
		key  string
		prev []byte
	}
	code *struct {
		prev     []byte
		prevSize uint64
	}
}

// New create a state object backed by the given store.
func New(store kv.Store) *State {
	codes, _ := lru.New(codeCacheSize)
	return &State{
		store:    store,
		accounts: make(map[outcry.AccountID]*cachedAccount),
		codes:    codes,
	}
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

func (s *State) getAccount(addr outcry.AccountID) *cachedAccount {
	if obj, ok := s.accounts[addr]; ok {
		return obj
	}
	acc, exists, err := loadAccount(s.store, addr)
	if err != nil {
		s.setError(err)
		acc, exists = emptyAccount(), false
	}
	obj := &cachedAccount{
		balance:  acc.Balance,
		exists:   exists,
		codeSize: acc.CodeSize,
		storage:  make(map[string]*storageEntry),
	}
	s.accounts[addr] = obj
	return obj
}

// Exists returns whether an account exists at the given address.
func (s *State) Exists(addr outcry.AccountID) bool {
	return s.getAccount(addr).exists
}

// CreateAccount brings the account into existence with a zero balance.
// No-op if it already exists.
func (s *State) CreateAccount(addr outcry.AccountID) {
	obj := s.getAccount(addr)
	if obj.exists {
		return
	}
	s.journal = append(s.journal, journalEntry{addr: addr, created: true})
	obj.exists = true
	obj.dirty = true
}

// GetBalance returns native balance for the given address.
func (s *State) GetBalance(addr outcry.AccountID) *big.Int {
	return new(big.Int).Set(s.getAccount(addr).balance)
}

// SetBalance set native balance for the given address.
func (s *State) SetBalance(addr outcry.AccountID, balance *big.Int) {
	obj := s.getAccount(addr)
	s.journal = append(s.journal, journalEntry{addr: addr, balance: obj.balance})
	obj.balance = new(big.Int).Set(balance)
	obj.exists = true
	obj.dirty = true
}

// AddBalance add amount of native balance to the given address.
func (s *State) AddBalance(addr outcry.AccountID, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	obj := s.getAccount(addr)
	s.SetBalance(addr, new(big.Int).Add(obj.balance, amount))
}

// SubBalance sub amount of native balance from the given address.
// Returns false if the account has insufficient balance.
func (s *State) SubBalance(addr outcry.AccountID, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	obj := s.getAccount(addr)
	if obj.balance.Cmp(amount) < 0 {
		return false
	}
	s.SetBalance(addr, new(big.Int).Sub(obj.balance, amount))
	return true
}

// GetCode returns the code installed at the given address.
func (s *State) GetCode(addr outcry.AccountID) []byte {
	obj := s.getAccount(addr)
	if obj.codeLoaded {
		return obj.code
	}
	if obj.codeSize == 0 {
		return nil
	}
	if cached, ok := s.codes.Get(addr); ok {
		code := cached.([]byte)
		obj.code, obj.codeLoaded = code, true
		return code
	}
	code, err := s.store.Get(codeKey(addr))
	if err != nil && !s.store.IsNotFound(err) {
		s.setError(err)
		return nil
	}
	obj.code, obj.codeLoaded = code, true
	s.codes.Add(addr, code)
	return code
}

// GetCodeSize returns the size of installed code without loading its bytes.
func (s *State) GetCodeSize(addr outcry.AccountID) uint64 {
	return s.getAccount(addr).codeSize
}

// SetCode installs code at the given address.
func (s *State) SetCode(addr outcry.AccountID, code []byte) {
	obj := s.getAccount(addr)
	prev := obj.code
	if !obj.codeLoaded {
		prev = s.GetCode(addr)
	}
	s.journal = append(s.journal, journalEntry{addr: addr, code: &struct {
		prev     []byte
		prevSize uint64
	}{prev, obj.codeSize}})
	obj.code, obj.codeLoaded = code, true
	obj.codeDirty = true
	obj.codeSize = uint64(len(code))
	obj.exists = true
	obj.dirty = true
	s.codes.Remove(addr)
}

// GetStorage returns the raw storage record under (addr, key).
// Empty slice means the record does not exist.
func (s *State) GetStorage(addr outcry.AccountID, key []byte) []byte {
	obj := s.getAccount(addr)
	if entry, ok := obj.storage[string(key)]; ok {
		return entry.value
	}
	raw, err := s.store.Get(storageKey(addr, key))
	if err != nil {
		if !s.store.IsNotFound(err) {
			s.setError(err)
		}
		raw = nil
	}
	obj.storage[string(key)] = &storageEntry{value: raw}
	return raw
}

// SetStorage writes the raw storage record under (addr, key).
func (s *State) SetStorage(addr outcry.AccountID, key, value []byte) {
	prev := s.GetStorage(addr, key)
	s.journal = append(s.journal, journalEntry{addr: addr, storage: &struct {
		key  string
		prev []byte
	}{string(key), prev}})
	obj := s.getAccount(addr)
	obj.storage[string(key)] = &storageEntry{value: value, dirty: true}
	obj.exists = true
	obj.dirty = true
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr outcry.AccountID, key []byte, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value.
// The dec method is called with an empty slice when the record is absent.
func (s *State) DecodeStorage(addr outcry.AccountID, key []byte, dec func([]byte) error) {
	raw := s.GetStorage(addr, key)
	if err := dec(raw); err != nil {
		s.setError(err)
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo reverts state to the given revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > len(s.journal) {
		panic("state: invalid revision")
	}
	for i := len(s.journal) - 1; i >= revision; i-- {
		e := s.journal[i]
		obj := s.accounts[e.addr]
		switch {
		case e.balance != nil:
			obj.balance = e.balance
		case e.created:
			obj.exists = false
			obj.dirty = false
		case e.storage != nil:
			obj.storage[e.storage.key] = &storageEntry{value: e.storage.prev}
		case e.code != nil:
			obj.code, obj.codeLoaded = e.code.prev, true
			obj.codeSize = e.code.prevSize
			s.codes.Remove(e.addr)
		}
	}
	s.journal = s.journal[:revision]
}

// Stage makes a stage object to compute changes ready for commit.
func (s *State) Stage() *Stage {
	return newStage(s)
}
