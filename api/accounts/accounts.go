// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt: rt}
}

// Account is the read view of one ledger account.
type Account struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
	Exists  bool   `json:"exists"`
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	id, err := outcry.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	return utils.WriteJSON(w, &Account{
		ID:      id.String(),
		Balance: a.rt.GetBalance(id).String(),
		Exists:  a.rt.Exists(id),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
