// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package factory deploys auction instances onto subaccounts of the factory
// account. The attached deposit funds the child's storage; if any part of
// the batched creation fails, the deposit comes back to the factory and a
// compensating callback returns it to the original deployer.
package factory

import (
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// CodeID tags packaged factory code.
const CodeID = "outcry/factory@1"

var (
	ErrDepositTooSmall = errors.New("deposit does not cover storage cost")
	ErrBadChildName    = errors.New("invalid child account name")

	errPrivateMethod = errors.New("method is private")
	errUnknownMethod = errors.New("unknown method")
)

// PackagedCode returns the code blob an installer maps back to this module.
func PackagedCode() []byte {
	return []byte(CodeID)
}

// Factory is the instantiator module, bound to its ledger account.
type Factory struct {
	addr outcry.AccountID
}

func New(addr outcry.AccountID) *Factory {
	return &Factory{addr: addr}
}

func (f *Factory) Name() string {
	return "factory"
}

func (f *Factory) Dispatch(env *runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case "deploy_new_auction":
		return f.handleDeploy(env, args)
	case "on_auction_deployed":
		return f.handleDeployed(env, args)
	}
	return nil, errors.Wrap(errUnknownMethod, method)
}
