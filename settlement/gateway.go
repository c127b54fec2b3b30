// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"encoding/json"
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
)

// FungibleTransferArgs is the wire shape of a fungible registry transfer.
type FungibleTransferArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
}

// CollectibleTransferArgs is the wire shape of a collectible registry transfer.
type CollectibleTransferArgs struct {
	ReceiverID string `json:"receiver_id"`
	TokenID    string `json:"token_id"`
}

// Gateway dispatches value to external asset registries. Every send issues
// exactly one outbound receipt and returns without waiting for the remote
// outcome; registries may reject or drop a leg silently and nothing here
// retries it.
type Gateway struct {
	env *runtime.Env
}

// New binds a gateway to the current execution environment.
func New(env *runtime.Env) *Gateway {
	return &Gateway{env: env}
}

// SendNative dispatches a native value transfer. Zero amounts are dropped.
func (g *Gateway) SendNative(to outcry.AccountID, amount *big.Int) error {
	return g.env.DispatchTransfer(to, amount)
}

// SendFungible dispatches a fungible-asset transfer through the given
// registry, attaching the marker deposit the registry protocol requires.
func (g *Gateway) SendFungible(registry, to outcry.AccountID, amount *big.Int) error {
	args, err := json.Marshal(&FungibleTransferArgs{
		ReceiverID: to.String(),
		Amount:     amount.String(),
	})
	if err != nil {
		return err
	}
	return g.env.DispatchCall(registry, "ft_transfer", args, outcry.MarkerDeposit, nil)
}

// SendCollectible dispatches a collectible transfer through the given
// registry, attaching the marker deposit the registry protocol requires.
func (g *Gateway) SendCollectible(registry, to outcry.AccountID, tokenID string) error {
	args, err := json.Marshal(&CollectibleTransferArgs{
		ReceiverID: to.String(),
		TokenID:    tokenID,
	})
	if err != nil {
		return err
	}
	return g.env.DispatchCall(registry, "nft_transfer", args, outcry.MarkerDeposit, nil)
}
