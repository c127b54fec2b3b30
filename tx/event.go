// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/outcryio/outcry/outcry"

// Event emitted by a contract module during an operation.
type Event struct {
	Address outcry.AccountID // always a contract account
	Name    string
	Data    []byte // JSON encoded payload
}

// Events slice of events.
type Events []*Event
