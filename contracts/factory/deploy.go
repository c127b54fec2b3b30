// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package factory

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/outcryio/outcry/contracts/auction"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/settlement"
	"github.com/outcryio/outcry/tx"
	"github.com/pkg/errors"
)

// DeployArgs names the child and carries the auction configuration verbatim.
type DeployArgs struct {
	Name string `json:"name"`
	auction.InitArgs
}

// deployedArgs threads the compensation context through the callback.
type deployedArgs struct {
	Deployer string `json:"deployer"`
	Child    string `json:"child"`
	Attached string `json:"attached"`
}

// MinDeposit is the smallest deposit accepted for the given code size.
func MinDeposit(code []byte) *big.Int {
	return new(big.Int).Mul(outcry.StoragePricePerByte, big.NewInt(int64(len(code))))
}

// handleDeploy issues the batched create-fund-install-init unit for a new
// auction subaccount. The whole attached deposit travels with the batch.
func (f *Factory) handleDeploy(env *runtime.Env, args []byte) ([]byte, error) {
	var in DeployArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "deploy args")
	}
	if in.Name == "" || strings.Contains(in.Name, outcry.SubaccountDelimiter) {
		return nil, ErrBadChildName
	}
	child := f.addr.Subaccount(in.Name)
	if !child.IsValid() {
		return nil, ErrBadChildName
	}

	code := auction.PackagedCode()
	attached := env.Attached()
	if attached.Cmp(MinDeposit(code)) < 0 {
		return nil, ErrDepositTooSmall
	}

	initArgs, err := json.Marshal(&in.InitArgs)
	if err != nil {
		return nil, err
	}
	cbArgs, err := json.Marshal(&deployedArgs{
		Deployer: env.Caller().String(),
		Child:    child.String(),
		Attached: attached.String(),
	})
	if err != nil {
		return nil, err
	}

	err = env.DispatchCreate(child, attached, code, "init", initArgs, &tx.Callback{
		To:     f.addr,
		Method: "on_auction_deployed",
		Args:   cbArgs,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(child.String())
}

// handleDeployed observes the batch outcome. On failure the deposit has
// already bounced back to the factory account, so the compensation is a
// plain native transfer to the deployer. Decisions here rest on the outcome
// alone, never on re-reading the child's state.
func (f *Factory) handleDeployed(env *runtime.Env, args []byte) ([]byte, error) {
	if env.Caller() != f.addr {
		return nil, errors.Wrap(errPrivateMethod, "on_auction_deployed")
	}
	outcome := env.Outcome()
	if outcome == nil {
		return nil, errors.New("not a callback invocation")
	}

	var in deployedArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, errors.Wrap(err, "callback args")
	}

	if outcome.Ok {
		return nil, env.AddEvent("auction_deployed", map[string]string{
			"deployer": in.Deployer,
			"child":    in.Child,
		})
	}

	deployer, err := outcry.ParseAccountID(in.Deployer)
	if err != nil {
		return nil, errors.Wrap(err, "deployer")
	}
	attached, ok := outcry.ParseAmount(in.Attached)
	if !ok {
		return nil, errors.New("invalid attached amount")
	}
	if err := settlement.New(env).SendNative(deployer, attached); err != nil {
		return nil, err
	}
	return nil, env.AddEvent("auction_deploy_failed", map[string]string{
		"deployer": in.Deployer,
		"child":    in.Child,
		"refunded": attached.String(),
		"reason":   outcome.Reason,
	})
}
