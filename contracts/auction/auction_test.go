// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/outcryio/outcry/contracts/token"
	"github.com/outcryio/outcry/lvldb"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/state"
	"github.com/outcryio/outcry/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice      = outcry.MustParseAccountID("alice")
	bob        = outcry.MustParseAccountID("bob")
	seller     = outcry.MustParseAccountID("seller")
	auctionAcc = outcry.MustParseAccountID("auction")
	nftAcc     = outcry.MustParseAccountID("nft")
	ftAcc      = outcry.MustParseAccountID("ft")
)

const tokenID = "relic-1"

type fixture struct {
	rt  *runtime.Runtime
	nft *token.NFT
	ft  *token.FT
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	rt := runtime.New(state.NewCreator(db).NewState())

	nft := token.NewNFT(nftAcc)
	ft := token.NewFT(ftAcc)
	require.NoError(t, rt.RegisterModule(auctionAcc, New(auctionAcc)))
	require.NoError(t, rt.RegisterModule(nftAcc, nft))
	require.NoError(t, rt.RegisterModule(ftAcc, ft))

	require.NoError(t, rt.MutateState(func(st *state.State) error {
		for _, acc := range []outcry.AccountID{alice, bob, seller} {
			st.CreateAccount(acc)
			st.SetBalance(acc, big.NewInt(1000))
		}
		// deployment deposit left with the auction account; marker
		// deposits for payout legs come out of it
		st.SetBalance(auctionAcc, big.NewInt(10))
		nft.Mint(st, tokenID, auctionAcc)
		ft.Credit(st, alice, big.NewInt(1000))
		ft.Credit(st, bob, big.NewInt(1000))
		return nil
	}))
	return &fixture{rt: rt, nft: nft, ft: ft}
}

func (f *fixture) initAuction(t *testing.T, args *InitArgs) {
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	// factory provisioning runs init with the auction acting for itself
	_, err = f.rt.Execute(tx.NewOperation(auctionAcc, auctionAcc, "init", raw, nil))
	require.NoError(t, err)
}

func (f *fixture) nativeArgs(endTime uint64) *InitArgs {
	return &InitArgs{
		EndTime:             endTime,
		Auctioneer:          seller.String(),
		CollectibleRegistry: nftAcc.String(),
		TokenID:             tokenID,
	}
}

func (f *fixture) highestBid(t *testing.T) *HighestBidJSON {
	raw, err := f.rt.Query(auctionAcc, "get_highest_bid", nil)
	require.NoError(t, err)
	var hb HighestBidJSON
	require.NoError(t, json.Unmarshal(raw, &hb))
	return &hb
}

func (f *fixture) ownerOf(t *testing.T, id string) string {
	raw, err := f.rt.Query(nftAcc, "nft_token", []byte(`{"token_id":"`+id+`"}`))
	require.NoError(t, err)
	var tok token.TokenJSON
	require.NoError(t, json.Unmarshal(raw, &tok))
	return tok.OwnerID
}

func TestInitIsPrivate(t *testing.T) {
	f := newFixture(t)
	raw, err := json.Marshal(f.nativeArgs(1000))
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "init", raw, nil))
	assert.ErrorContains(t, err, "private")
}

func TestInitRejectsPastEndTime(t *testing.T) {
	f := newFixture(t)
	f.rt.SetTime(500)
	raw, err := json.Marshal(f.nativeArgs(500))
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(auctionAcc, auctionAcc, "init", raw, nil))
	assert.ErrorContains(t, err, "end_time")
}

func TestInitOnlyOnce(t *testing.T) {
	f := newFixture(t)
	f.initAuction(t, f.nativeArgs(1000))
	raw, err := json.Marshal(f.nativeArgs(2000))
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(auctionAcc, auctionAcc, "init", raw, nil))
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestBidBeforeInit(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(10)))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestNativeAuctionLifecycle(t *testing.T) {
	f := newFixture(t)
	f.initAuction(t, f.nativeArgs(1000))

	hb := f.highestBid(t)
	assert.Equal(t, auctionAcc.String(), hb.Bidder)
	assert.Equal(t, "0", hb.Amount)

	// first real bid
	_, err := f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(100)))
	require.NoError(t, err)
	assert.Equal(t, "900", f.rt.GetBalance(alice).String())
	// the seed bid triggers no refund leg
	assert.Equal(t, 0, f.rt.PendingReceipts())

	// displacing bid refunds the previous bidder in full
	_, err = f.rt.Execute(tx.NewOperation(bob, auctionAcc, "bid", nil, big.NewInt(150)))
	require.NoError(t, err)
	assert.Equal(t, 1, f.rt.PendingReceipts())
	f.rt.Drain()
	assert.Equal(t, "1000", f.rt.GetBalance(alice).String())
	assert.Equal(t, "850", f.rt.GetBalance(bob).String())

	hb = f.highestBid(t)
	assert.Equal(t, bob.String(), hb.Bidder)
	assert.Equal(t, "150", hb.Amount)

	// equal and lower bids bounce, deposit returned with the rejection
	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(150)))
	assert.ErrorIs(t, err, ErrBidTooLow)
	assert.Equal(t, "1000", f.rt.GetBalance(alice).String())

	// claim is gated on the deadline
	_, err = f.rt.Execute(tx.NewOperation(bob, auctionAcc, "claim", nil, nil))
	assert.ErrorIs(t, err, ErrNotEnded)

	f.rt.SetTime(1000)

	// deadline reached: bids close, claim opens
	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(500)))
	assert.ErrorIs(t, err, ErrAuctionEnded)

	// anyone may claim, not just a participant
	_, err = f.rt.Execute(tx.NewOperation(seller, auctionAcc, "claim", nil, nil))
	require.NoError(t, err)
	f.rt.Drain()

	assert.Equal(t, "1150", f.rt.GetBalance(seller).String())
	assert.Equal(t, bob.String(), f.ownerOf(t, tokenID))

	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "claim", nil, nil))
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimWithoutBidsMovesNothing(t *testing.T) {
	f := newFixture(t)
	f.initAuction(t, f.nativeArgs(1000))
	f.rt.SetTime(1000)

	_, err := f.rt.Execute(tx.NewOperation(seller, auctionAcc, "claim", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, f.rt.PendingReceipts())
	assert.Equal(t, "1000", f.rt.GetBalance(seller).String())
	assert.Equal(t, auctionAcc.String(), f.ownerOf(t, tokenID))
}

func TestAuctionWithoutCollectible(t *testing.T) {
	f := newFixture(t)
	f.initAuction(t, &InitArgs{
		EndTime:    1000,
		Auctioneer: seller.String(),
	})

	_, err := f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(40)))
	require.NoError(t, err)

	f.rt.SetTime(1000)
	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "claim", nil, nil))
	require.NoError(t, err)
	// proceeds leg only, no prize to deliver
	assert.Equal(t, 1, f.rt.PendingReceipts())
	f.rt.Drain()
	assert.Equal(t, "1040", f.rt.GetBalance(seller).String())
	assert.Equal(t, auctionAcc.String(), f.ownerOf(t, tokenID))

	// the unset registries stay out of the read view entirely
	raw, err := f.rt.Query(auctionAcc, "get_auction_info", nil)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "collectible_registry")
	assert.NotContains(t, string(raw), "ft_registry")
	assert.NotContains(t, string(raw), "token_id")
}

func TestInitRejectsLoneTokenID(t *testing.T) {
	f := newFixture(t)
	raw, err := json.Marshal(&InitArgs{
		EndTime:    1000,
		Auctioneer: seller.String(),
		TokenID:    tokenID,
	})
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(auctionAcc, auctionAcc, "init", raw, nil))
	assert.ErrorContains(t, err, "collectible_registry")
}

func TestStartingPriceGatesFirstBid(t *testing.T) {
	f := newFixture(t)
	args := f.nativeArgs(1000)
	args.StartingPrice = "200"
	f.initAuction(t, args)

	_, err := f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(200)))
	assert.ErrorIs(t, err, ErrBidTooLow)

	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(201)))
	assert.NoError(t, err)
}

func TestNativeBidOnFungibleAuctionRejected(t *testing.T) {
	f := newFixture(t)
	args := f.nativeArgs(1000)
	args.FTRegistry = ftAcc.String()
	f.initAuction(t, args)

	_, err := f.rt.Execute(tx.NewOperation(alice, auctionAcc, "bid", nil, big.NewInt(100)))
	assert.ErrorIs(t, err, ErrUnsupportedAsset)
}

func TestFTNotificationOriginChecked(t *testing.T) {
	f := newFixture(t)
	args := f.nativeArgs(1000)
	args.FTRegistry = ftAcc.String()
	f.initAuction(t, args)

	// spoofed notification from a plain account
	raw, err := json.Marshal(&FTOnTransferArgs{SenderID: alice.String(), Amount: "100"})
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(alice, auctionAcc, "ft_on_transfer", raw, nil))
	assert.ErrorIs(t, err, ErrUnsupportedAsset)
}

func ftBid(t *testing.T, f *fixture, bidder outcry.AccountID, amount string) error {
	raw, err := json.Marshal(&token.TransferCallArgs{
		ReceiverID: auctionAcc.String(),
		Amount:     amount,
		Msg:        "",
	})
	require.NoError(t, err)
	_, err = f.rt.Execute(tx.NewOperation(bidder, ftAcc, "ft_transfer_call", raw, big.NewInt(1)))
	if err != nil {
		return err
	}
	f.rt.Drain()
	return nil
}

func ftBalance(t *testing.T, f *fixture, holder outcry.AccountID) string {
	raw, err := f.rt.Query(ftAcc, "ft_balance_of", []byte(`{"account_id":"`+holder.String()+`"}`))
	require.NoError(t, err)
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func TestFungibleAuctionLifecycle(t *testing.T) {
	f := newFixture(t)
	args := f.nativeArgs(1000)
	args.FTRegistry = ftAcc.String()
	f.initAuction(t, args)

	require.NoError(t, ftBid(t, f, alice, "100"))
	assert.Equal(t, "900", ftBalance(t, f, alice))
	assert.Equal(t, "100", ftBalance(t, f, auctionAcc))

	hb := f.highestBid(t)
	assert.Equal(t, alice.String(), hb.Bidder)
	assert.Equal(t, "100", hb.Amount)

	// displacing bid refunds alice's tokens through the registry
	require.NoError(t, ftBid(t, f, bob, "150"))
	assert.Equal(t, "1000", ftBalance(t, f, alice))
	assert.Equal(t, "850", ftBalance(t, f, bob))
	assert.Equal(t, "150", ftBalance(t, f, auctionAcc))

	// too-low bid: notification rejected, resolve returns everything
	require.NoError(t, ftBid(t, f, alice, "120"))
	assert.Equal(t, "1000", ftBalance(t, f, alice))
	assert.Equal(t, "150", ftBalance(t, f, auctionAcc))
	hb = f.highestBid(t)
	assert.Equal(t, bob.String(), hb.Bidder)

	f.rt.SetTime(1000)
	_, err := f.rt.Execute(tx.NewOperation(seller, auctionAcc, "claim", nil, nil))
	require.NoError(t, err)
	f.rt.Drain()

	assert.Equal(t, "150", ftBalance(t, f, seller))
	assert.Equal(t, "0", ftBalance(t, f, auctionAcc))
	assert.Equal(t, bob.String(), f.ownerOf(t, tokenID))
}

func TestGetAuctionInfo(t *testing.T) {
	f := newFixture(t)
	args := f.nativeArgs(1234)
	f.initAuction(t, args)

	raw, err := f.rt.Query(auctionAcc, "get_auction_info", nil)
	require.NoError(t, err)
	var info InfoJSON
	require.NoError(t, json.Unmarshal(raw, &info))
	assert.Equal(t, "1234", info.EndTime)
	assert.Equal(t, seller.String(), info.Auctioneer)
	assert.Equal(t, "native", info.Asset)
	assert.Equal(t, tokenID, info.TokenID)
	assert.False(t, info.Claimed)

	raw, err = f.rt.Query(auctionAcc, "get_auction_end_time", nil)
	require.NoError(t, err)
	var endTime string
	require.NoError(t, json.Unmarshal(raw, &endTime))
	assert.Equal(t, "1234", endTime)
}
