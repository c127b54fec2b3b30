// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/gob"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
)

// AssetKind selects which asset an auction accepts bids in.
type AssetKind byte

const (
	AssetNative AssetKind = iota
	AssetFungible
)

func (k AssetKind) String() string {
	switch k {
	case AssetNative:
		return "native"
	case AssetFungible:
		return "fungible"
	}
	return "unknown"
}

// HighestBid is the current winning bid. A fresh auction seeds it with the
// auction's own account as bidder so the refund path can tell the seed apart
// from a real bidder.
type HighestBid struct {
	Bidder outcry.AccountID
	Amount *big.Int
}

// Record is the whole persistent state of one auction.
type Record struct {
	EndTime             uint64
	Auctioneer          outcry.AccountID
	Asset               AssetKind
	FungibleRegistry    outcry.AccountID
	CollectibleRegistry outcry.AccountID
	TokenID             string
	Highest             HighestBid
	Claimed             bool
}

// IsSeed reports whether the highest bid is still the initialization seed.
func (r *Record) IsSeed(self outcry.AccountID) bool {
	return r.Highest.Bidder == self
}

// HasCollectible reports whether a prize leg is configured for claim.
func (r *Record) HasCollectible() bool {
	return !r.CollectibleRegistry.IsEmpty()
}

func loadRecord(env *runtime.Env, addr outcry.AccountID) (*Record, bool, error) {
	var (
		rec   Record
		found bool
	)
	var decErr error
	env.State().DecodeStorage(addr, recordKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		decErr = gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec)
		return decErr
	})
	if decErr != nil {
		return nil, false, decErr
	}
	return &rec, found, nil
}

func saveRecord(env *runtime.Env, addr outcry.AccountID, rec *Record) error {
	var encErr error
	env.State().EncodeStorage(addr, recordKey, func() ([]byte, error) {
		var buf bytes.Buffer
		encErr = gob.NewEncoder(&buf).Encode(rec)
		return buf.Bytes(), encErr
	})
	return encErr
}
