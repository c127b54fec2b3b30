// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package outcry

import (
	"fmt"
	"regexp"
	"strings"
)

// AccountID is a hierarchical ledger account name such as "bids.outcry".
// Child accounts are addressed by prefixing a name segment to the parent,
// separated by SubaccountDelimiter.
type AccountID string

const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64

	// SubaccountDelimiter is reserved for hierarchical addressing.
	SubaccountDelimiter = "."
)

// segments are lowercase alphanumeric, with '-' or '_' allowed between
// alphanumerics, joined by the delimiter
var accountIDPattern = regexp.MustCompile(`^([a-z\d]+[\-_])*[a-z\d]+(\.([a-z\d]+[\-_])*[a-z\d]+)*$`)

// IsValid reports whether the account name satisfies the ledger's naming grammar.
func (a AccountID) IsValid() bool {
	if len(a) < MinAccountIDLen || len(a) > MaxAccountIDLen {
		return false
	}
	return accountIDPattern.MatchString(string(a))
}

// ParseAccountID validates s and converts it to an AccountID.
func ParseAccountID(s string) (AccountID, error) {
	id := AccountID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("invalid account id %q", s)
	}
	return id, nil
}

// MustParseAccountID panics on invalid input, for use with constants.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Subaccount derives the child account addressed by name under a.
// The result may violate the naming grammar and must be re-validated.
func (a AccountID) Subaccount(name string) AccountID {
	return AccountID(name + SubaccountDelimiter + string(a))
}

// IsSubaccountOf reports whether a is a direct or indirect child of parent.
func (a AccountID) IsSubaccountOf(parent AccountID) bool {
	return strings.HasSuffix(string(a), SubaccountDelimiter+string(parent))
}

func (a AccountID) IsEmpty() bool {
	return len(a) == 0
}

func (a AccountID) String() string {
	return string(a)
}
