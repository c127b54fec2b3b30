// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package outcry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountIDValidation(t *testing.T) {
	valid := []string{
		"alice",
		"bob",
		"ft",
		"sub.factory",
		"a-1.b_2.c3",
		"00",
	}
	for _, s := range valid {
		assert.True(t, AccountID(s).IsValid(), s)
	}

	invalid := []string{
		"",
		"a",
		"Alice",
		"-alice",
		"alice-",
		"alice..bob",
		".alice",
		"alice.",
		"al ice",
		strings.Repeat("a", 65),
	}
	for _, s := range invalid {
		assert.False(t, AccountID(s).IsValid(), s)
	}
}

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("auction-1.factory")
	assert.NoError(t, err)
	assert.Equal(t, "auction-1.factory", id.String())

	_, err = ParseAccountID("Bad!")
	assert.Error(t, err)
}

func TestSubaccount(t *testing.T) {
	factory := MustParseAccountID("factory")
	child := factory.Subaccount("auction-1")
	assert.Equal(t, AccountID("auction-1.factory"), child)
	assert.True(t, child.IsSubaccountOf(factory))
	assert.False(t, factory.IsSubaccountOf(child))
}

func TestParseAmount(t *testing.T) {
	amt, ok := ParseAmount("1000000000000000000000000")
	assert.True(t, ok)
	assert.Equal(t, "1000000000000000000000000", amt.String())

	_, ok = ParseAmount("-5")
	assert.False(t, ok)
	_, ok = ParseAmount("1.5")
	assert.False(t, ok)
	_, ok = ParseAmount("")
	assert.False(t, ok)
}
