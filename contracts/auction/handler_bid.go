// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
)

// handleBid places a native bid with the attached deposit. The deposit is
// already in the auction's custody when the handler runs; a rejection
// returns it wholesale with the operation's revert.
func (a *Auction) handleBid(env *runtime.Env) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	if rec.Asset != AssetNative {
		return nil, ErrUnsupportedAsset
	}
	if env.Now() >= rec.EndTime {
		return nil, ErrAuctionEnded
	}

	amount := env.Attached()
	if amount.Cmp(rec.Highest.Amount) <= 0 {
		return nil, ErrBidTooLow
	}

	prev := rec.Highest
	rec.Highest = HighestBid{
		Bidder: env.Caller(),
		Amount: new(big.Int).Set(amount),
	}
	if err := saveRecord(env, a.addr, rec); err != nil {
		return nil, err
	}

	// The seed bid carries no real depositor to refund.
	if prev.Bidder != a.addr {
		if err := settlement.New(env).SendNative(prev.Bidder, prev.Amount); err != nil {
			return nil, err
		}
	}

	return nil, env.AddEvent("auction_bid", map[string]string{
		"bidder": env.Caller().String(),
		"amount": amount.String(),
	})
}
