// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
)

// handleClaim settles an ended auction: proceeds to the auctioneer first,
// then the collectible to the winner. Anyone may call it, but only the first
// call wins; Claimed flips before the payout receipts exist, so a replay
// can never double-spend the escrow.
func (a *Auction) handleClaim(env *runtime.Env) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	if env.Now() < rec.EndTime {
		return nil, ErrNotEnded
	}
	if rec.Claimed {
		return nil, ErrAlreadyClaimed
	}

	rec.Claimed = true
	if err := saveRecord(env, a.addr, rec); err != nil {
		return nil, err
	}

	// No real bid ever arrived: nothing to pay out, nothing to deliver.
	if rec.IsSeed(a.addr) {
		return nil, env.AddEvent("auction_claim", map[string]string{
			"winner": "",
			"amount": "0",
		})
	}

	gw := settlement.New(env)
	if rec.Asset == AssetFungible {
		err = gw.SendFungible(rec.FungibleRegistry, rec.Auctioneer, rec.Highest.Amount)
	} else {
		err = gw.SendNative(rec.Auctioneer, rec.Highest.Amount)
	}
	if err != nil {
		return nil, err
	}
	if rec.HasCollectible() {
		if err := gw.SendCollectible(rec.CollectibleRegistry, rec.Highest.Bidder, rec.TokenID); err != nil {
			return nil, err
		}
	}

	return nil, env.AddEvent("auction_claim", map[string]string{
		"winner": rec.Highest.Bidder.String(),
		"amount": rec.Highest.Amount.String(),
	})
}
