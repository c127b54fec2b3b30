// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"fmt"
	"sync"

	"github.com/outcryio/outcry/outcry"
)

// Module is a contract program bound to one ledger account. Dispatch routes
// one method invocation; a non-nil error rejects the whole operation with no
// partial effect.
type Module interface {
	Name() string
	Dispatch(env *Env, method string, args []byte) ([]byte, error)
}

// Installer turns installed code bytes into a live module for a newly
// created account.
type Installer func(addr outcry.AccountID, code []byte) (Module, error)

// Registry is the hub of all modules on the ledger, keyed by account.
type Registry struct {
	modules sync.Map
}

// Register binds a module to an account address.
func (r *Registry) Register(addr outcry.AccountID, m Module) error {
	if _, loaded := r.modules.LoadOrStore(addr, m); loaded {
		return fmt.Errorf("module already registered at %v", addr)
	}
	return nil
}

// ForceRegister binds a module, replacing any previous binding.
func (r *Registry) ForceRegister(addr outcry.AccountID, m Module) {
	r.modules.Store(addr, m)
}

// Unregister removes the binding for an account.
func (r *Registry) Unregister(addr outcry.AccountID) {
	r.modules.Delete(addr)
}

// Find by account address.
func (r *Registry) Find(addr outcry.AccountID) (Module, bool) {
	value, ok := r.modules.Load(addr)
	if !ok {
		return nil, false
	}
	m, ok := value.(Module)
	if !ok {
		panic("registry stores an item which is not a Module")
	}
	return m, true
}

// Accounts lists all accounts with a bound module.
func (r *Registry) Accounts() []outcry.AccountID {
	all := make([]outcry.AccountID, 0)
	r.modules.Range(func(key, _ interface{}) bool {
		all = append(all, key.(outcry.AccountID))
		return true
	})
	return all
}
