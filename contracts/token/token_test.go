// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/outcryio/outcry/lvldb"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/state"
	"github.com/outcryio/outcry/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice  = outcry.MustParseAccountID("alice")
	bob    = outcry.MustParseAccountID("bob")
	ftAcc  = outcry.MustParseAccountID("ft")
	nftAcc = outcry.MustParseAccountID("nft")
)

func newTestRuntime(t *testing.T) (*runtime.Runtime, *FT, *NFT) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	rt := runtime.New(state.NewCreator(db).NewState())

	ft := NewFT(ftAcc)
	nft := NewNFT(nftAcc)
	require.NoError(t, rt.RegisterModule(ftAcc, ft))
	require.NoError(t, rt.RegisterModule(nftAcc, nft))
	require.NoError(t, rt.MutateState(func(st *state.State) error {
		for _, acc := range []outcry.AccountID{alice, bob} {
			st.CreateAccount(acc)
			st.SetBalance(acc, big.NewInt(100))
		}
		ft.Credit(st, alice, big.NewInt(500))
		nft.Mint(st, "relic-1", alice)
		return nil
	}))
	return rt, ft, nft
}

func balanceOf(t *testing.T, rt *runtime.Runtime, holder outcry.AccountID) string {
	raw, err := rt.Query(ftAcc, "ft_balance_of", []byte(`{"account_id":"`+holder.String()+`"}`))
	require.NoError(t, err)
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func TestFTTransfer(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","amount":"120"}`)
	_, err := rt.Execute(tx.NewOperation(alice, ftAcc, "ft_transfer", args, big.NewInt(1)))
	require.NoError(t, err)

	assert.Equal(t, "380", balanceOf(t, rt, alice))
	assert.Equal(t, "120", balanceOf(t, rt, bob))
}

func TestFTTransferRequiresMarkerDeposit(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","amount":"120"}`)
	_, err := rt.Execute(tx.NewOperation(alice, ftAcc, "ft_transfer", args, nil))
	assert.ErrorIs(t, err, ErrMarkerDeposit)

	_, err = rt.Execute(tx.NewOperation(alice, ftAcc, "ft_transfer", args, big.NewInt(2)))
	assert.ErrorIs(t, err, ErrMarkerDeposit)
}

func TestFTTransferInsufficientBalance(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","amount":"501"}`)
	_, err := rt.Execute(tx.NewOperation(alice, ftAcc, "ft_transfer", args, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "500", balanceOf(t, rt, alice))
}

func TestFTTransferCallRefundsOnMissingReceiver(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	// bob has no module; the notification call fails and resolve returns all
	args := []byte(`{"receiver_id":"bob","amount":"200","msg":""}`)
	_, err := rt.Execute(tx.NewOperation(alice, ftAcc, "ft_transfer_call", args, big.NewInt(1)))
	require.NoError(t, err)
	assert.Equal(t, "300", balanceOf(t, rt, alice))
	assert.Equal(t, "200", balanceOf(t, rt, bob))

	rt.Drain()
	assert.Equal(t, "500", balanceOf(t, rt, alice))
	assert.Equal(t, "0", balanceOf(t, rt, bob))
}

func TestNFTTransfer(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","token_id":"relic-1"}`)
	_, err := rt.Execute(tx.NewOperation(alice, nftAcc, "nft_transfer", args, big.NewInt(1)))
	require.NoError(t, err)

	raw, err := rt.Query(nftAcc, "nft_token", []byte(`{"token_id":"relic-1"}`))
	require.NoError(t, err)
	var tok TokenJSON
	require.NoError(t, json.Unmarshal(raw, &tok))
	assert.Equal(t, "bob", tok.OwnerID)
}

func TestNFTTransferOnlyOwner(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","token_id":"relic-1"}`)
	_, err := rt.Execute(tx.NewOperation(bob, nftAcc, "nft_transfer", args, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestNFTUnknownToken(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	args := []byte(`{"receiver_id":"bob","token_id":"no-such"}`)
	_, err := rt.Execute(tx.NewOperation(alice, nftAcc, "nft_transfer", args, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = rt.Query(nftAcc, "nft_token", []byte(`{"token_id":"no-such"}`))
	assert.ErrorIs(t, err, ErrUnknownToken)
}
