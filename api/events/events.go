// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/logdb"
	"github.com/outcryio/outcry/outcry"
	"github.com/pkg/errors"
)

type Events struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *Events {
	return &Events{db: db}
}

// Filter is the POST body of an event query.
type Filter struct {
	OpID    string           `json:"opID,omitempty"`
	Range   *logdb.TimeRange `json:"range,omitempty"`
	Address string           `json:"address,omitempty"`
	Name    string           `json:"name,omitempty"`
	Order   logdb.Order      `json:"order,omitempty"`
	Options *logdb.Options   `json:"options,omitempty"`
}

func (f *Filter) toLogDB() (*logdb.EventFilter, error) {
	out := &logdb.EventFilter{
		OpID:    f.OpID,
		Range:   f.Range,
		Name:    f.Name,
		Order:   f.Order,
		Options: f.Options,
	}
	if f.Address != "" {
		addr, err := outcry.ParseAccountID(f.Address)
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		out.Address = &addr
	}
	return out, nil
}

// FilteredEvent is one event row in a query response.
type FilteredEvent struct {
	OpID    string          `json:"opID"`
	Index   uint32          `json:"index"`
	Time    uint64          `json:"time"`
	Origin  string          `json:"origin"`
	Address string          `json:"address"`
	Name    string          `json:"name"`
	Data    json.RawMessage `json:"data"`
}

func convertEvents(rows []*logdb.Event) []*FilteredEvent {
	out := make([]*FilteredEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, &FilteredEvent{
			OpID:    row.OpID,
			Index:   row.Index,
			Time:    row.Time,
			Origin:  row.Origin.String(),
			Address: row.Address.String(),
			Name:    row.Name,
			Data:    row.Data,
		})
	}
	return out
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	dbFilter, err := filter.toLogDB()
	if err != nil {
		return utils.BadRequest(err)
	}
	rows, err := e.db.FilterEvents(req.Context(), dbFilter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertEvents(rows))
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
