// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/outcryio/outcry/lvldb"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return runtime.New(state.NewCreator(db).NewState())
}

func TestBuildDevnet(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, Build(rt, Devnet()))

	assert.Equal(t, "1000000000000000000000000", rt.GetBalance("alice").String())
	assert.True(t, rt.Exists("factory"))
	assert.True(t, rt.Exists("ft"))
	assert.True(t, rt.Exists("nft"))

	raw, err := rt.Query("ft", "ft_balance_of", []byte(`{"account_id":"alice"}`))
	require.NoError(t, err)
	var bal string
	require.NoError(t, json.Unmarshal(raw, &bal))
	assert.Equal(t, "1000000", bal)

	raw, err = rt.Query("nft", "nft_token", []byte(`{"token_id":"relic-1"}`))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "seller")
}

func dumpStore(t *testing.T, db *lvldb.LevelDB) map[string]string {
	it := db.NewIterator(nil)
	defer it.Release()
	rows := make(map[string]string)
	for it.Next() {
		rows[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	return rows
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() *lvldb.LevelDB {
		db, err := lvldb.NewMem()
		require.NoError(t, err)
		rt := runtime.New(state.NewCreator(db).NewState())
		require.NoError(t, Build(rt, Devnet()))
		return db
	}

	first := dumpStore(t, build())
	second := dumpStore(t, build())
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	rt := newTestRuntime(t)
	err := Build(rt, &Config{
		Modules: []ModuleConfig{{ID: "thing", Kind: "teleporter"}},
	})
	assert.ErrorContains(t, err, "unknown kind")
}

func TestBuildRejectsBadSeeds(t *testing.T) {
	rt := newTestRuntime(t)
	err := Build(rt, &Config{
		Accounts: []AccountConfig{{ID: "alice", Balance: "not-a-number"}},
	})
	assert.ErrorContains(t, err, "invalid balance")

	rt = newTestRuntime(t)
	err = Build(rt, &Config{
		Fungible: []CreditConfig{{Registry: "nowhere", ID: "alice", Amount: "5"}},
	})
	assert.ErrorContains(t, err, "not an ft registry")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: test-net
time: 42
accounts:
  - id: alice
    balance: "100"
modules:
  - id: factory
    kind: factory
`), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-net", cfg.Name)
	assert.Equal(t, uint64(42), cfg.Time)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "100", cfg.Accounts[0].Balance)

	rt := newTestRuntime(t)
	require.NoError(t, Build(rt, cfg))
	assert.Equal(t, "100", rt.GetBalance("alice").String())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nbogus: y\n"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
