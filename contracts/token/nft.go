// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"encoding/json"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
	"github.com/outcryio/outcry/state"
	"github.com/pkg/errors"
)

// NFTCodeID tags packaged collectible-registry code.
const NFTCodeID = "outcry/nft@1"

var (
	ErrUnknownToken = errors.New("unknown token")
	ErrNotOwner     = errors.New("caller does not own token")

	errNFTUnknownMethod = errors.New("unknown method")
)

var nftOwnerPrefix = []byte("t/")

// NFTPackagedCode returns the code blob an installer maps to a collectible
// registry.
func NFTPackagedCode() []byte {
	return []byte(NFTCodeID)
}

// NFT is a collectible registry bound to its ledger account. Each token ID
// maps to exactly one owner.
type NFT struct {
	addr outcry.AccountID
}

func NewNFT(addr outcry.AccountID) *NFT {
	return &NFT{addr: addr}
}

func (n *NFT) Name() string {
	return "nft"
}

func (n *NFT) Dispatch(env *runtime.Env, method string, args []byte) ([]byte, error) {
	switch method {
	case "nft_transfer":
		return n.handleTransfer(env, args)
	case "nft_token":
		return n.handleToken(env, args)
	}
	return nil, errors.Wrap(errNFTUnknownMethod, method)
}

func nftOwnerKey(tokenID string) []byte {
	return append(append([]byte(nil), nftOwnerPrefix...), tokenID...)
}

func (n *NFT) ownerOf(st *state.State, tokenID string) (outcry.AccountID, bool) {
	raw := st.GetStorage(n.addr, nftOwnerKey(tokenID))
	if len(raw) == 0 {
		return "", false
	}
	return outcry.AccountID(raw), true
}

// Mint assigns a fresh token to an owner. Used when seeding the ledger.
func (n *NFT) Mint(st *state.State, tokenID string, owner outcry.AccountID) {
	st.SetStorage(n.addr, nftOwnerKey(tokenID), []byte(owner))
}

// handleTransfer hands a token to a new owner. Only the current owner may
// move it, and the marker deposit must be attached.
func (n *NFT) handleTransfer(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Attached().Cmp(outcry.MarkerDeposit) != 0 {
		return nil, ErrMarkerDeposit
	}
	var in settlement.CollectibleTransferArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "nft_transfer args")
	}
	receiver, err := outcry.ParseAccountID(in.ReceiverID)
	if err != nil {
		return nil, errors.Wrap(err, "receiver_id")
	}
	owner, found := n.ownerOf(env.State(), in.TokenID)
	if !found {
		return nil, ErrUnknownToken
	}
	if owner != env.Caller() {
		return nil, ErrNotOwner
	}
	env.State().SetStorage(n.addr, nftOwnerKey(in.TokenID), []byte(receiver))
	env.AddTransfer(owner, receiver, big.NewInt(1), outcry.COLLECTIBLE)
	return nil, nil
}

// TokenJSON is the read view of one collectible.
type TokenJSON struct {
	TokenID string `json:"token_id"`
	OwnerID string `json:"owner_id"`
}

func (n *NFT) handleToken(env *runtime.Env, args []byte) ([]byte, error) {
	var in struct {
		TokenID string `json:"token_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "nft_token args")
	}
	owner, found := n.ownerOf(env.State(), in.TokenID)
	if !found {
		return nil, ErrUnknownToken
	}
	return json.Marshal(&TokenJSON{TokenID: in.TokenID, OwnerID: owner.String()})
}
