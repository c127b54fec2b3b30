// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package debug

import (
	"fmt"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/pkg/errors"
)

// Debug exposes plain-text dumps for poking at a running node.
type Debug struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Debug {
	return &Debug{rt: rt}
}

func (d *Debug) handleDumpModules(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, addr := range d.rt.Registry().Accounts() {
		mod, _ := d.rt.Registry().Find(addr)
		fmt.Fprintf(w, "%s\t%s\n", addr, mod.Name())
	}
	return nil
}

func (d *Debug) handleDumpAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := outcry.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	ret, err := d.rt.Query(id, "get_auction_info", nil)
	if err != nil {
		return utils.BadRequest(err)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	spew.Fdump(w, string(ret))
	return nil
}

func (d *Debug) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/modules").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(d.handleDumpModules))
	sub.Path("/auctions/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(d.handleDumpAuction))
}
