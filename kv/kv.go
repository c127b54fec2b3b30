// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter defines methods to read/write kv.
type GetPutter interface {
	Getter
	Putter
}

// Batch batch of operations for writing.
type Batch interface {
	Putter
	NewBatch() Batch
	Len() int
	Write() error
}

// Store full functional kv store.
type Store interface {
	GetPutter
	IsNotFound(err error) bool
	NewBatch() Batch
	Close() error
}
