// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/json"
	"strconv"

	"github.com/outcryio/outcry/runtime"
)

// HighestBidJSON is the read view of the current winning bid.
type HighestBidJSON struct {
	Bidder string `json:"bidder"`
	Amount string `json:"amount"`
}

// InfoJSON is the read view of the whole auction record.
type InfoJSON struct {
	EndTime             string         `json:"end_time"`
	Auctioneer          string         `json:"auctioneer"`
	Asset               string         `json:"asset"`
	FTRegistry          string         `json:"ft_registry,omitempty"`
	CollectibleRegistry string         `json:"collectible_registry,omitempty"`
	TokenID             string         `json:"token_id,omitempty"`
	HighestBid          HighestBidJSON `json:"highest_bid"`
	Claimed             bool           `json:"claimed"`
}

func (a *Auction) getHighestBid(env *runtime.Env) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&HighestBidJSON{
		Bidder: rec.Highest.Bidder.String(),
		Amount: rec.Highest.Amount.String(),
	})
}

func (a *Auction) getAuctionEndTime(env *runtime.Env) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(formatUint(rec.EndTime))
}

func (a *Auction) getAuctionInfo(env *runtime.Env) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&InfoJSON{
		EndTime:             formatUint(rec.EndTime),
		Auctioneer:          rec.Auctioneer.String(),
		Asset:               rec.Asset.String(),
		FTRegistry:          rec.FungibleRegistry.String(),
		CollectibleRegistry: rec.CollectibleRegistry.String(),
		TokenID:             rec.TokenID,
		HighestBid: HighestBidJSON{
			Bidder: rec.Highest.Bidder.String(),
			Amount: rec.Highest.Amount.String(),
		},
		Claimed: rec.Claimed,
	})
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
