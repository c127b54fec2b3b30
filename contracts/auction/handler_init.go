// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/json"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// InitArgs configures a fresh auction. Amount-like fields travel as decimal
// strings. An empty FTRegistry selects native bidding; an empty
// CollectibleRegistry means no prize leg on claim.
type InitArgs struct {
	EndTime             uint64 `json:"end_time,string"`
	Auctioneer          string `json:"auctioneer"`
	FTRegistry          string `json:"ft_registry,omitempty"`
	CollectibleRegistry string `json:"collectible_registry,omitempty"`
	TokenID             string `json:"token_id,omitempty"`
	StartingPrice       string `json:"starting_price,omitempty"`
}

// handleInit seeds the record. Only the auction account itself may call it,
// which in practice means the factory's batched init.
func (a *Auction) handleInit(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Caller() != a.addr {
		return nil, errors.Wrap(errPrivateMethod, "init")
	}

	_, found, err := loadRecord(env, a.addr)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrAlreadyInitialized
	}

	var in InitArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "init args")
	}
	auctioneer, err := outcry.ParseAccountID(in.Auctioneer)
	if err != nil {
		return nil, errors.Wrap(err, "auctioneer")
	}
	var collectible outcry.AccountID
	if in.CollectibleRegistry != "" {
		collectible, err = outcry.ParseAccountID(in.CollectibleRegistry)
		if err != nil {
			return nil, errors.Wrap(err, "collectible_registry")
		}
		if in.TokenID == "" {
			return nil, errors.New("collectible_registry needs a token_id")
		}
	} else if in.TokenID != "" {
		return nil, errors.New("token_id needs a collectible_registry")
	}
	if in.EndTime <= env.Now() {
		return nil, errors.New("end_time must be in the future")
	}

	rec := &Record{
		EndTime:             in.EndTime,
		Auctioneer:          auctioneer,
		Asset:               AssetNative,
		CollectibleRegistry: collectible,
		TokenID:             in.TokenID,
		Highest: HighestBid{
			// Seeded with the auction's own account so the first real bid
			// never triggers a refund leg.
			Bidder: a.addr,
			Amount: new(big.Int).Set(outcry.SentinelBid),
		},
	}
	if in.FTRegistry != "" {
		ft, err := outcry.ParseAccountID(in.FTRegistry)
		if err != nil {
			return nil, errors.Wrap(err, "ft_registry")
		}
		rec.Asset = AssetFungible
		rec.FungibleRegistry = ft
	}
	if in.StartingPrice != "" {
		price, ok := outcry.ParseAmount(in.StartingPrice)
		if !ok {
			return nil, errors.New("invalid starting_price")
		}
		rec.Highest.Amount = price
	}

	if err := saveRecord(env, a.addr, rec); err != nil {
		return nil, err
	}
	return nil, env.AddEvent("auction_init", map[string]string{
		"auctioneer": rec.Auctioneer.String(),
		"end_time":   formatUint(rec.EndTime),
		"asset":      rec.Asset.String(),
	})
}
