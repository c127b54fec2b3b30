// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/outcryio/outcry/kv"
	"github.com/outcryio/outcry/lvldb"
	"github.com/outcryio/outcry/outcry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return New(db)
}

func TestAccountLifecycle(t *testing.T) {
	st := newTestState(t)
	alice := outcry.MustParseAccountID("alice")

	assert.False(t, st.Exists(alice))
	assert.Equal(t, "0", st.GetBalance(alice).String())

	st.CreateAccount(alice)
	assert.True(t, st.Exists(alice))

	st.SetBalance(alice, big.NewInt(100))
	assert.Equal(t, "100", st.GetBalance(alice).String())

	st.AddBalance(alice, big.NewInt(50))
	assert.Equal(t, "150", st.GetBalance(alice).String())

	assert.True(t, st.SubBalance(alice, big.NewInt(150)))
	assert.False(t, st.SubBalance(alice, big.NewInt(1)))
	assert.NoError(t, st.Err())
}

func TestCheckpointRevert(t *testing.T) {
	st := newTestState(t)
	alice := outcry.MustParseAccountID("alice")

	st.CreateAccount(alice)
	st.SetBalance(alice, big.NewInt(10))

	chk := st.NewCheckpoint()
	st.SetBalance(alice, big.NewInt(999))
	st.SetStorage(alice, []byte("k"), []byte("v"))
	st.RevertTo(chk)

	assert.Equal(t, "10", st.GetBalance(alice).String())
	assert.Nil(t, st.GetStorage(alice, []byte("k")))
}

func TestRevertAccountCreation(t *testing.T) {
	st := newTestState(t)
	bob := outcry.MustParseAccountID("bob")

	chk := st.NewCheckpoint()
	st.CreateAccount(bob)
	st.SetBalance(bob, big.NewInt(7))
	assert.True(t, st.Exists(bob))

	st.RevertTo(chk)
	assert.False(t, st.Exists(bob))
	assert.Equal(t, "0", st.GetBalance(bob).String())
}

func TestStageCommitPersists(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	st := New(db)
	alice := outcry.MustParseAccountID("alice")
	st.CreateAccount(alice)
	st.SetBalance(alice, big.NewInt(42))
	st.SetStorage(alice, []byte("k"), []byte("v"))
	st.SetCode(alice, []byte("code"))
	require.NoError(t, st.Stage().Commit())

	reloaded := New(db)
	assert.True(t, reloaded.Exists(alice))
	assert.Equal(t, "42", reloaded.GetBalance(alice).String())
	assert.Equal(t, []byte("v"), reloaded.GetStorage(alice, []byte("k")))
	assert.Equal(t, []byte("code"), reloaded.GetCode(alice))
	assert.Equal(t, uint64(4), reloaded.GetCodeSize(alice))
}

func TestRevertNeverCrossesCommit(t *testing.T) {
	st := newTestState(t)
	alice := outcry.MustParseAccountID("alice")

	st.CreateAccount(alice)
	st.SetBalance(alice, big.NewInt(5))
	require.NoError(t, st.Stage().Commit())

	chk := st.NewCheckpoint()
	st.SetBalance(alice, big.NewInt(6))
	st.RevertTo(chk)
	assert.Equal(t, "5", st.GetBalance(alice).String())
}

func TestKeyBuildersLeavePrefixesIntact(t *testing.T) {
	alice := outcry.MustParseAccountID("alice")
	bob := outcry.MustParseAccountID("bob")

	k1 := accountKey(alice)
	k2 := accountKey(bob)
	assert.Equal(t, "a/alice", string(k1))
	assert.Equal(t, "a/bob", string(k2))
	assert.Equal(t, "a/alice", string(k1))

	assert.Equal(t, "c/alice", string(codeKey(alice)))
	assert.Equal(t, "s/alice/k", string(storageKey(alice, []byte("k"))))
	assert.Equal(t, "a/", string(accountPrefix))
	assert.Equal(t, "s/", string(storagePrefix))
	assert.Equal(t, "c/", string(codePrefix))
}

// flakyStore fails the next batch write, then behaves normally.
type flakyStore struct {
	kv.Store
	failNext bool
}

type failingBatch struct{ kv.Batch }

func (failingBatch) Write() error { return errors.New("disk full") }

func (f *flakyStore) NewBatch() kv.Batch {
	if f.failNext {
		f.failNext = false
		return failingBatch{f.Store.NewBatch()}
	}
	return f.Store.NewBatch()
}

func TestCommitWriteFailurePoisonsState(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	store := &flakyStore{Store: db, failNext: true}

	st := New(store)
	alice := outcry.MustParseAccountID("alice")
	st.CreateAccount(alice)
	st.SetStorage(alice, []byte("k"), []byte("v"))
	require.Error(t, st.Stage().Commit())

	// the row never reached the store
	fresh := New(db)
	assert.Nil(t, fresh.GetStorage(alice, []byte("k")))

	// the cache and the store have diverged; the state refuses to commit
	// again rather than serve the mutated rows as if they were durable
	assert.Error(t, st.Err())
	assert.Error(t, st.Stage().Commit())
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newTestState(t)
	alice := outcry.MustParseAccountID("alice")
	st.CreateAccount(alice)

	st.EncodeStorage(alice, []byte("rec"), func() ([]byte, error) {
		return []byte("payload"), nil
	})
	var got []byte
	st.DecodeStorage(alice, []byte("rec"), func(raw []byte) error {
		got = append([]byte(nil), raw...)
		return nil
	})
	assert.NoError(t, st.Err())
	assert.Equal(t, []byte("payload"), got)
}
