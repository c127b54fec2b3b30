// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "errors"

// CodeID tags packaged auction code so an installer can recognize it.
const CodeID = "outcry/auction@1"

// recordKey is the storage slot holding the gob-encoded auction record.
var recordKey = []byte("auction-record")

var (
	ErrNotInitialized     = errors.New("auction not initialized")
	ErrAlreadyInitialized = errors.New("auction already initialized")
	ErrAuctionEnded       = errors.New("auction has ended")
	ErrBidTooLow          = errors.New("bid must be greater than the highest bid")
	ErrUnsupportedAsset   = errors.New("asset not accepted by this auction")
	ErrNotEnded           = errors.New("auction has not ended yet")
	ErrAlreadyClaimed     = errors.New("auction already claimed")

	errPrivateMethod = errors.New("method is private")
	errUnknownMethod = errors.New("unknown method")
)

// PackagedCode returns the code blob a factory installs on a child account.
func PackagedCode() []byte {
	return []byte(CodeID)
}
