// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package contracts wires the built-in modules to the runtime installer.
package contracts

import (
	"github.com/outcryio/outcry/contracts/auction"
	"github.com/outcryio/outcry/contracts/factory"
	"github.com/outcryio/outcry/contracts/token"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// Install maps a packaged code blob to the module it names. It is the
// runtime installer for every built-in contract.
func Install(addr outcry.AccountID, code []byte) (runtime.Module, error) {
	switch string(code) {
	case auction.CodeID:
		return auction.New(addr), nil
	case factory.CodeID:
		return factory.New(addr), nil
	case token.FTCodeID:
		return token.NewFT(addr), nil
	case token.NFTCodeID:
		return token.NewNFT(addr), nil
	}
	return nil, errors.Errorf("no module for code %q", string(code))
}
