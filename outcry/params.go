// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package outcry

import "math/big"

// Token kinds recorded on journal transfers.
const (
	NATIVE      = byte(0)
	FUNGIBLE    = byte(1)
	COLLECTIBLE = byte(2)
)

func GetTokenName(token byte) string {
	switch token {
	case NATIVE:
		return "Native"
	case FUNGIBLE:
		return "Fungible"
	case COLLECTIBLE:
		return "Collectible"
	default:
		return "Unknown"
	}
}

var (
	// StoragePricePerByte is the native cost charged per byte of code
	// installed on a newly created account.
	StoragePricePerByte = new(big.Int).Exp(big.NewInt(10), big.NewInt(19), nil)

	// MarkerDeposit must be attached to fungible and collectible registry
	// calls; registries require it to cover their own storage accounting.
	MarkerDeposit = big.NewInt(1)

	// SentinelBid seeds a fresh auction when no starting price is given.
	// The first real bid must be strictly greater.
	SentinelBid = big.NewInt(0)
)

// ParseAmount parses a decimal string into a non-negative amount.
func ParseAmount(s string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, false
	}
	return amount, true
}
