// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operations

import (
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/utils"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/tx"
	"github.com/pkg/errors"
)

// Operations submits operations into the runtime and drives receipt
// delivery. Each POST executes one operation to completion, then drains the
// receipt queue so remote legs settle before the response returns.
type Operations struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Operations {
	return &Operations{rt: rt}
}

// SubmitBody is one operation as posted by a client.
type SubmitBody struct {
	Caller   string          `json:"caller"`
	To       string          `json:"to"`
	Method   string          `json:"method"`
	Args     json.RawMessage `json:"args,omitempty"`
	Attached string          `json:"attached,omitempty"`
}

// SubmitResult reports what the operation did.
type SubmitResult struct {
	ID        string          `json:"id"`
	Ret       json.RawMessage `json:"ret,omitempty"`
	Receipts  int             `json:"receipts"`
	Delivered int             `json:"delivered"`
}

func (o *Operations) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body SubmitBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	caller, err := outcry.ParseAccountID(body.Caller)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "caller"))
	}
	to, err := outcry.ParseAccountID(body.To)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "to"))
	}
	var attached *big.Int
	if body.Attached != "" {
		var ok bool
		attached, ok = outcry.ParseAmount(body.Attached)
		if !ok {
			return utils.BadRequest(errors.New("invalid attached amount"))
		}
	}

	op := tx.NewOperation(caller, to, body.Method, body.Args, attached)
	out, err := o.rt.Execute(op)
	if err != nil {
		return utils.BadRequest(err)
	}
	delivered := o.rt.Drain()
	return utils.WriteJSON(w, &SubmitResult{
		ID:        op.ID,
		Ret:       out.Ret,
		Receipts:  len(out.Receipts),
		Delivered: delivered,
	})
}

func (o *Operations) handlePending(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, utils.M{"pending": o.rt.PendingReceipts()})
}

func (o *Operations) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(o.handleSubmit))
	sub.Path("/pending").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(o.handlePending))
}
