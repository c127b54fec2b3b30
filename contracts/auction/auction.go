// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auction implements the escrowed ascending-price auction module.
//
// All bid custody is local: an accepted bid is held on the auction account
// until a later bid displaces it or the claim pays it out. Refunds and
// payouts leave as one-way receipts whose remote legs are never awaited, so
// a rejected bid can never strand the previous bidder's funds and a claim
// marks the auction settled before any payout leg is known to land.
package auction

import (
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// Auction is one deployed auction instance, bound to its ledger account.
type Auction struct {
	addr outcry.AccountID
}

func New(addr outcry.AccountID) *Auction {
	return &Auction{addr: addr}
}

func (a *Auction) Name() string {
	return "auction"
}

func (a *Auction) Dispatch(env *runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case "init":
		return a.handleInit(env, args)
	case "bid":
		return a.handleBid(env)
	case "ft_on_transfer":
		return a.handleFTOnTransfer(env, args)
	case "claim":
		return a.handleClaim(env)
	case "get_highest_bid":
		return a.getHighestBid(env)
	case "get_auction_end_time":
		return a.getAuctionEndTime(env)
	case "get_auction_info":
		return a.getAuctionInfo(env)
	}
	return nil, errors.Wrap(errUnknownMethod, method)
}

func (a *Auction) record(env *runtime.Env) (*Record, error) {
	rec, found, err := loadRecord(env, a.addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotInitialized
	}
	return rec, nil
}
