// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/tx"
)

// Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	OpID      string
	Index     uint32
	Time      uint64
	Origin    outcry.AccountID
	Sender    outcry.AccountID
	Recipient outcry.AccountID
	Amount    *big.Int
	Token     byte
}

// newTransfer converts tx.Transfer to Transfer.
func newTransfer(rec *OpRecord, index uint32, transfer *tx.Transfer) *Transfer {
	return &Transfer{
		OpID:      rec.OpID,
		Index:     index,
		Time:      rec.Time,
		Origin:    rec.Origin,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Token:     transfer.Token,
	}
}

// Event represents tx.Event that can be stored in db.
type Event struct {
	OpID    string
	Index   uint32
	Time    uint64
	Origin  outcry.AccountID
	Address outcry.AccountID
	Name    string
	Data    []byte
}

// newEvent converts tx.Event to Event.
func newEvent(rec *OpRecord, index uint32, ev *tx.Event) *Event {
	return &Event{
		OpID:    rec.OpID,
		Index:   index,
		Time:    rec.Time,
		Origin:  rec.Origin,
		Address: ev.Address,
		Name:    ev.Name,
		Data:    ev.Data,
	}
}

// OpRecord bundles one executed operation's journal rows.
type OpRecord struct {
	OpID      string
	Time      uint64
	Origin    outcry.AccountID
	Transfers tx.Transfers
	Events    tx.Events
}

// Order describes the ordering of the query result.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// TimeRange filters by logical timestamp, inclusive.
type TimeRange struct {
	From uint64
	To   uint64
}

// Options limits the query result.
type Options struct {
	Offset uint64
	Limit  uint64
}

// TransferFilter filter.
type TransferFilter struct {
	OpID      string
	Range     *TimeRange
	Sender    *outcry.AccountID
	Recipient *outcry.AccountID
	Order     Order
	Options   *Options
}

// EventFilter filter.
type EventFilter struct {
	OpID    string
	Range   *TimeRange
	Address *outcry.AccountID
	Name    string
	Order   Order
	Options *Options
}
