// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/outcryio/outcry/logdb"
	"github.com/outcryio/outcry/outcry"
	"github.com/pkg/errors"
)

// Filter is the POST body of a transfer query.
type Filter struct {
	OpID      string           `json:"opID,omitempty"`
	Range     *logdb.TimeRange `json:"range,omitempty"`
	Sender    string           `json:"sender,omitempty"`
	Recipient string           `json:"recipient,omitempty"`
	Order     logdb.Order      `json:"order,omitempty"`
	Options   *logdb.Options   `json:"options,omitempty"`
}

func (f *Filter) toLogDB() (*logdb.TransferFilter, error) {
	out := &logdb.TransferFilter{
		OpID:    f.OpID,
		Range:   f.Range,
		Order:   f.Order,
		Options: f.Options,
	}
	if f.Sender != "" {
		sender, err := outcry.ParseAccountID(f.Sender)
		if err != nil {
			return nil, errors.Wrap(err, "sender")
		}
		out.Sender = &sender
	}
	if f.Recipient != "" {
		recipient, err := outcry.ParseAccountID(f.Recipient)
		if err != nil {
			return nil, errors.Wrap(err, "recipient")
		}
		out.Recipient = &recipient
	}
	return out, nil
}

// FilteredTransfer is one transfer row in a query response.
type FilteredTransfer struct {
	OpID      string `json:"opID"`
	Index     uint32 `json:"index"`
	Time      uint64 `json:"time"`
	Origin    string `json:"origin"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Token     string `json:"token"`
}

func convertTransfers(rows []*logdb.Transfer) []*FilteredTransfer {
	out := make([]*FilteredTransfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, &FilteredTransfer{
			OpID:      row.OpID,
			Index:     row.Index,
			Time:      row.Time,
			Origin:    row.Origin.String(),
			Sender:    row.Sender.String(),
			Recipient: row.Recipient.String(),
			Amount:    row.Amount.String(),
			Token:     outcry.GetTokenName(row.Token),
		})
	}
	return out
}
