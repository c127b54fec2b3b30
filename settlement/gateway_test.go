// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

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
	module   = outcry.MustParseAccountID("module")
	registry = outcry.MustParseAccountID("registry")
	payee    = outcry.MustParseAccountID("payee")
)

func newTestEnv(t *testing.T, balance int64) *runtime.Env {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	st.CreateAccount(module)
	st.SetBalance(module, big.NewInt(balance))
	return runtime.NewEnv(st, &runtime.BlockContext{Number: 1}, &runtime.CallContext{
		Origin:   module,
		Caller:   module,
		Attached: new(big.Int),
	}, module)
}

func TestSendNative(t *testing.T) {
	env := newTestEnv(t, 100)
	require.NoError(t, New(env).SendNative(payee, big.NewInt(60)))

	receipts := env.Receipts()
	require.Len(t, receipts, 1)
	assert.Equal(t, tx.KindTransfer, receipts[0].Kind)
	assert.Equal(t, payee, receipts[0].To)
	assert.Equal(t, "60", receipts[0].Amount.String())
	// custody leaves at issue
	assert.Equal(t, "40", env.State().GetBalance(module).String())
}

func TestSendNativeZeroIsDropped(t *testing.T) {
	env := newTestEnv(t, 100)
	require.NoError(t, New(env).SendNative(payee, new(big.Int)))
	assert.Empty(t, env.Receipts())
}

func TestSendNativeInsufficient(t *testing.T) {
	env := newTestEnv(t, 10)
	err := New(env).SendNative(payee, big.NewInt(60))
	assert.ErrorIs(t, err, runtime.ErrInsufficientBalance)
}

func TestSendFungible(t *testing.T) {
	env := newTestEnv(t, 100)
	require.NoError(t, New(env).SendFungible(registry, payee, big.NewInt(250)))

	receipts := env.Receipts()
	require.Len(t, receipts, 1)
	r := receipts[0]
	assert.Equal(t, tx.KindCall, r.Kind)
	assert.Equal(t, registry, r.To)
	assert.Equal(t, "ft_transfer", r.Method)
	assert.Equal(t, outcry.MarkerDeposit.String(), r.Amount.String())

	var args FungibleTransferArgs
	require.NoError(t, json.Unmarshal(r.Args, &args))
	assert.Equal(t, payee.String(), args.ReceiverID)
	assert.Equal(t, "250", args.Amount)
}

func TestSendCollectible(t *testing.T) {
	env := newTestEnv(t, 100)
	require.NoError(t, New(env).SendCollectible(registry, payee, "relic-1"))

	receipts := env.Receipts()
	require.Len(t, receipts, 1)
	r := receipts[0]
	assert.Equal(t, tx.KindCall, r.Kind)
	assert.Equal(t, "nft_transfer", r.Method)
	assert.Equal(t, outcry.MarkerDeposit.String(), r.Amount.String())

	var args CollectibleTransferArgs
	require.NoError(t, json.Unmarshal(r.Args, &args))
	assert.Equal(t, "relic-1", args.TokenID)
}
