// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config describes the ledger's initial contents.
type Config struct {
	Name     string          `yaml:"name"`
	Time     uint64          `yaml:"time"`
	Accounts []AccountConfig `yaml:"accounts"`
	Modules  []ModuleConfig  `yaml:"modules"`
	Fungible []CreditConfig  `yaml:"fungible"`
	Tokens   []TokenConfig   `yaml:"tokens"`
}

// AccountConfig seeds a plain account with a native balance.
type AccountConfig struct {
	ID      string `yaml:"id"`
	Balance string `yaml:"balance"`
}

// ModuleConfig installs a built-in module on an account. Kind is one of
// "auction", "factory", "ft", "nft".
type ModuleConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

// CreditConfig seeds a fungible balance on a registry.
type CreditConfig struct {
	Registry string `yaml:"registry"`
	ID       string `yaml:"id"`
	Amount   string `yaml:"amount"`
}

// TokenConfig mints a collectible on a registry.
type TokenConfig struct {
	Registry string `yaml:"registry"`
	TokenID  string `yaml:"token_id"`
	Owner    string `yaml:"owner"`
}

// LoadConfig reads a genesis config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis config")
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse genesis config")
	}
	return &cfg, nil
}

// Devnet is the development preset: a factory, both registries, and a few
// funded accounts.
func Devnet() *Config {
	return &Config{
		Name: "outcry-devnet",
		Accounts: []AccountConfig{
			{ID: "alice", Balance: "1000000000000000000000000"},
			{ID: "bob", Balance: "1000000000000000000000000"},
			{ID: "seller", Balance: "1000000000000000000000000"},
		},
		Modules: []ModuleConfig{
			{ID: "factory", Kind: "factory"},
			{ID: "ft", Kind: "ft"},
			{ID: "nft", Kind: "nft"},
		},
		Fungible: []CreditConfig{
			{Registry: "ft", ID: "alice", Amount: "1000000"},
			{Registry: "ft", ID: "bob", Amount: "1000000"},
		},
		Tokens: []TokenConfig{
			{Registry: "nft", TokenID: "relic-1", Owner: "seller"},
		},
	}
}
