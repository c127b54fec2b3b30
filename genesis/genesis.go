// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis provisions a fresh ledger from a declarative config.
package genesis

import (
	"github.com/outcryio/outcry/contracts/auction"
	"github.com/outcryio/outcry/contracts/factory"
	"github.com/outcryio/outcry/contracts/token"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/state"
	"github.com/pkg/errors"
)

// Build applies the config to an empty runtime: accounts first, then module
// installs, then asset seeds. It is not idempotent and expects a fresh store.
func Build(rt *runtime.Runtime, cfg *Config) error {
	if cfg.Time > 0 {
		rt.SetTime(cfg.Time)
	}

	for _, a := range cfg.Accounts {
		addr, err := outcry.ParseAccountID(a.ID)
		if err != nil {
			return errors.Wrapf(err, "account %q", a.ID)
		}
		balance, ok := outcry.ParseAmount(a.Balance)
		if !ok {
			return errors.Errorf("account %q: invalid balance %q", a.ID, a.Balance)
		}
		err = rt.MutateState(func(st *state.State) error {
			st.CreateAccount(addr)
			st.SetBalance(addr, balance)
			return nil
		})
		if err != nil {
			return err
		}
	}

	fts := make(map[outcry.AccountID]*token.FT)
	nfts := make(map[outcry.AccountID]*token.NFT)
	for _, m := range cfg.Modules {
		addr, err := outcry.ParseAccountID(m.ID)
		if err != nil {
			return errors.Wrapf(err, "module %q", m.ID)
		}
		var (
			mod  runtime.Module
			code []byte
		)
		switch m.Kind {
		case "auction":
			mod, code = auction.New(addr), auction.PackagedCode()
		case "factory":
			mod, code = factory.New(addr), factory.PackagedCode()
		case "ft":
			ft := token.NewFT(addr)
			fts[addr] = ft
			mod, code = ft, token.FTPackagedCode()
		case "nft":
			nft := token.NewNFT(addr)
			nfts[addr] = nft
			mod, code = nft, token.NFTPackagedCode()
		default:
			return errors.Errorf("module %q: unknown kind %q", m.ID, m.Kind)
		}
		if err := rt.RegisterModule(addr, mod); err != nil {
			return err
		}
		err = rt.MutateState(func(st *state.State) error {
			st.SetCode(addr, code)
			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, c := range cfg.Fungible {
		registry, err := outcry.ParseAccountID(c.Registry)
		if err != nil {
			return errors.Wrapf(err, "fungible registry %q", c.Registry)
		}
		ft, ok := fts[registry]
		if !ok {
			return errors.Errorf("fungible seed: %q is not an ft registry", c.Registry)
		}
		holder, err := outcry.ParseAccountID(c.ID)
		if err != nil {
			return errors.Wrapf(err, "fungible holder %q", c.ID)
		}
		amount, okAmt := outcry.ParseAmount(c.Amount)
		if !okAmt {
			return errors.Errorf("fungible seed %q: invalid amount %q", c.ID, c.Amount)
		}
		err = rt.MutateState(func(st *state.State) error {
			ft.Credit(st, holder, amount)
			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, t := range cfg.Tokens {
		registry, err := outcry.ParseAccountID(t.Registry)
		if err != nil {
			return errors.Wrapf(err, "token registry %q", t.Registry)
		}
		nft, ok := nfts[registry]
		if !ok {
			return errors.Errorf("token seed: %q is not an nft registry", t.Registry)
		}
		owner, err := outcry.ParseAccountID(t.Owner)
		if err != nil {
			return errors.Wrapf(err, "token owner %q", t.Owner)
		}
		err = rt.MutateState(func(st *state.State) error {
			nft.Mint(st, t.TokenID, owner)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
