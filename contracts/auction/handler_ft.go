// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/json"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
	"github.com/pkg/errors"
)

// FTOnTransferArgs is the notification a fungible registry delivers after it
// has moved tokens to the auction account.
type FTOnTransferArgs struct {
	SenderID string `json:"sender_id"`
	Amount   string `json:"amount"`
	Msg      string `json:"msg"`
}

// handleFTOnTransfer places a fungible bid. The caller is the registry, not
// the bidder; the bidder is named in the arguments. A rejection makes the
// registry's resolve step return the full amount to the sender, so the
// handler either accepts the whole bid or none of it.
func (a *Auction) handleFTOnTransfer(env *runtime.Env, args []byte) ([]byte, error) {
	rec, err := a.record(env)
	if err != nil {
		return nil, err
	}
	if rec.Asset != AssetFungible || env.Caller() != rec.FungibleRegistry {
		return nil, ErrUnsupportedAsset
	}
	if env.Now() >= rec.EndTime {
		return nil, ErrAuctionEnded
	}

	var in FTOnTransferArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "ft_on_transfer args")
	}
	bidder, err := outcry.ParseAccountID(in.SenderID)
	if err != nil {
		return nil, errors.Wrap(err, "sender_id")
	}
	amount, ok := outcry.ParseAmount(in.Amount)
	if !ok {
		return nil, errors.New("invalid amount")
	}
	if amount.Cmp(rec.Highest.Amount) <= 0 {
		return nil, ErrBidTooLow
	}

	prev := rec.Highest
	rec.Highest = HighestBid{Bidder: bidder, Amount: amount}
	if err := saveRecord(env, a.addr, rec); err != nil {
		return nil, err
	}

	if prev.Bidder != a.addr {
		if err := settlement.New(env).SendFungible(rec.FungibleRegistry, prev.Bidder, prev.Amount); err != nil {
			return nil, err
		}
	}

	if err := env.AddEvent("auction_bid", map[string]string{
		"bidder": bidder.String(),
		"amount": amount.String(),
	}); err != nil {
		return nil, err
	}
	// The whole transfer is consumed; the registry keeps nothing to return.
	return json.Marshal("0")
}
