// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/pkg/errors"
)

// Stage abstracts the changes between two commits.
type Stage struct {
	state *State
	err   error
}

func newStage(s *State) *Stage {
	return &Stage{state: s, err: s.err}
}

// Commit flushes all dirty objects into the underlying store in one batch.
// After a successful commit the journal is reset, so a later RevertTo can
// never cross the committed boundary.
func (stg *Stage) Commit() error {
	if stg.err != nil {
		return errors.Wrap(stg.err, "state commit")
	}
	s := stg.state
	batch := s.store.NewBatch()
	for addr, obj := range s.accounts {
		if !obj.dirty {
			continue
		}
		acc := &Account{Balance: new(big.Int).Set(obj.balance), CodeSize: obj.codeSize}
		if err := saveAccount(batch, addr, acc); err != nil {
			return err
		}
		if obj.codeDirty {
			if err := batch.Put(codeKey(addr), obj.code); err != nil {
				return err
			}
		}
		for key, entry := range obj.storage {
			if !entry.dirty {
				continue
			}
			if len(entry.value) == 0 {
				if err := batch.Delete(storageKey(addr, []byte(key))); err != nil {
					return err
				}
			} else if err := batch.Put(storageKey(addr, []byte(key)), entry.value); err != nil {
				return err
			}
		}
	}
	if err := batch.Write(); err != nil {
		// the cache now holds rows the store never received; poison the
		// state so nothing executes over the divergence
		s.err = errors.Wrap(err, "state commit")
		return s.err
	}
	// the batch is durable; only now do the objects count as clean
	for _, obj := range s.accounts {
		if !obj.dirty {
			continue
		}
		for _, entry := range obj.storage {
			entry.dirty = false
		}
		obj.dirty = false
		obj.codeDirty = false
	}
	s.journal = s.journal[:0]
	return nil
}

// Dirty reports whether uncommitted changes are pending.
func (stg *Stage) Dirty() bool {
	for _, obj := range stg.state.accounts {
		if obj.dirty {
			return true
		}
	}
	return false
}
