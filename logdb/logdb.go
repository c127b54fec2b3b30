// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/outcryio/outcry/outcry"
)

const (
	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	opID TEXT NOT NULL,
	transferIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	origin TEXT NOT NULL,
	sender TEXT NOT NULL,
	recipient TEXT NOT NULL,
	amount TEXT NOT NULL,
	token INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS transfer_time ON transfer(time);
CREATE INDEX IF NOT EXISTS transfer_sender ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_recipient ON transfer(recipient);`

	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	opID TEXT NOT NULL,
	eventIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	origin TEXT NOT NULL,
	address TEXT NOT NULL,
	name TEXT NOT NULL,
	data BLOB
);
CREATE INDEX IF NOT EXISTS event_time ON event(time);
CREATE INDEX IF NOT EXISTS event_address ON event(address);`
)

// LogDB is the journal of settlement dispatches and contract events. It is
// the reconciliation surface for transfers whose remote leg never confirms.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open logdb")
	}
	defer func() {
		if logDB == nil {
			_ = db.Close()
		}
	}()
	if _, err := db.Exec(transferTableSchema + eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "init logdb schema")
	}
	driverVer, _, _ := sqlite3.Version()
	return &LogDB{path, db, driverVer}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Insert journals one executed operation's transfers and events atomically.
func (db *LogDB) Insert(rec *OpRecord) (err error) {
	sqlTx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "logdb insert")
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()
	for i, t := range rec.Transfers {
		row := newTransfer(rec, uint32(i), t)
		if _, err = sqlTx.Exec(
			"INSERT INTO transfer(opID, transferIndex, time, origin, sender, recipient, amount, token) VALUES(?,?,?,?,?,?,?,?)",
			row.OpID, row.Index, row.Time, string(row.Origin), string(row.Sender), string(row.Recipient), row.Amount.String(), row.Token,
		); err != nil {
			return errors.Wrap(err, "logdb insert transfer")
		}
	}
	for i, ev := range rec.Events {
		row := newEvent(rec, uint32(i), ev)
		if _, err = sqlTx.Exec(
			"INSERT INTO event(opID, eventIndex, time, origin, address, name, data) VALUES(?,?,?,?,?,?,?)",
			row.OpID, row.Index, row.Time, string(row.Origin), string(row.Address), row.Name, row.Data,
		); err != nil {
			return errors.Wrap(err, "logdb insert event")
		}
	}
	return errors.Wrap(sqlTx.Commit(), "logdb insert")
}

// FilterTransfers query transfers with option.
func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer")
	}
	var args []interface{}
	stmt := "SELECT * FROM transfer WHERE 1"
	if filter.OpID != "" {
		args = append(args, filter.OpID)
		stmt += " AND opID = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}
	if filter.Sender != nil {
		args = append(args, string(*filter.Sender))
		stmt += " AND sender = ? "
	}
	if filter.Recipient != nil {
		args = append(args, string(*filter.Recipient))
		stmt += " AND recipient = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY time DESC,transferIndex DESC "
	} else {
		stmt += " ORDER BY time ASC,transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

// FilterEvents query events with option.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.OpID != "" {
		args = append(args, filter.OpID)
		stmt += " AND opID = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}
	if filter.Address != nil {
		args = append(args, string(*filter.Address))
		stmt += " AND address = ? "
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY time DESC,eventIndex DESC "
	} else {
		stmt += " ORDER BY time ASC,eventIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			opID      string
			index     uint32
			time      uint64
			origin    string
			sender    string
			recipient string
			amount    string
			token     byte
		)
		if err := rows.Scan(&opID, &index, &time, &origin, &sender, &recipient, &amount, &token); err != nil {
			return nil, err
		}
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, errors.Errorf("corrupt transfer amount %q", amount)
		}
		transfers = append(transfers, &Transfer{
			OpID:      opID,
			Index:     index,
			Time:      time,
			Origin:    outcry.AccountID(origin),
			Sender:    outcry.AccountID(sender),
			Recipient: outcry.AccountID(recipient),
			Amount:    value,
			Token:     token,
		})
	}
	return transfers, rows.Err()
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			opID    string
			index   uint32
			time    uint64
			origin  string
			address string
			name    string
			data    []byte
		)
		if err := rows.Scan(&opID, &index, &time, &origin, &address, &name, &data); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			OpID:    opID,
			Index:   index,
			Time:    time,
			Origin:  outcry.AccountID(origin),
			Address: outcry.AccountID(address),
			Name:    name,
			Data:    data,
		})
	}
	return events, rows.Err()
}
