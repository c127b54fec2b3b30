// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/logdb"
	"github.com/pkg/errors"
)

type Transfers struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *Transfers {
	return &Transfers{db: db}
}

func (t *Transfers) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	dbFilter, err := filter.toLogDB()
	if err != nil {
		return utils.BadRequest(err)
	}
	rows, err := t.db.FilterTransfers(req.Context(), dbFilter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertTransfers(rows))
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(t.handleFilter))
}
