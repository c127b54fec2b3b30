// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// Auctions reads deployed auction instances through the runtime's
// query path, so nothing here can mutate ledger state.
type Auctions struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Auctions {
	return &Auctions{rt: rt}
}

func (a *Auctions) query(w http.ResponseWriter, req *http.Request, method string) error {
	id, err := outcry.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	ret, err := a.rt.Query(id, method, nil)
	if err != nil {
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, json.RawMessage(ret))
}

func (a *Auctions) handleGetInfo(w http.ResponseWriter, req *http.Request) error {
	return a.query(w, req, "get_auction_info")
}

func (a *Auctions) handleGetHighestBid(w http.ResponseWriter, req *http.Request) error {
	return a.query(w, req, "get_highest_bid")
}

func (a *Auctions) handleGetEndTime(w http.ResponseWriter, req *http.Request) error {
	return a.query(w, req, "get_auction_end_time")
}

func (a *Auctions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetInfo))
	sub.Path("/{id}/highest-bid").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetHighestBid))
	sub.Path("/{id}/end-time").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetEndTime))
}
