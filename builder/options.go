// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package builder

import (
	"log/slog"

	stacks "github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/clarity/abi"
	"github.com/blinklabs-io/gostacks/transaction"
)

// Config holds the settings shared by the transaction builders
type Config struct {
	// Network selects the transaction version, chain ID and address versions
	Network stacks.Network
	// AnchorMode defaults to AnchorModeAny
	AnchorMode transaction.AnchorMode
	// PostConditionMode defaults to PostConditionModeDeny
	PostConditionMode transaction.PostConditionMode
	PostConditions    []transaction.PostCondition
	// Nonce is the origin nonce, or the sponsor nonce for SponsorTransaction
	Nonce uint64
	// Fee is used as-is when FeeRate is empty
	Fee uint64
	// FeeRate is a decimal fee per byte of the estimated signed transaction. When set, it
	// takes precedence over Fee
	FeeRate string
	// Sponsored builds a transaction whose fee is paid by a sponsor. The origin fee is
	// always zero for sponsored transactions
	Sponsored bool
	// ClarityVersion selects a versioned contract deploy payload when non-zero
	ClarityVersion transaction.ClarityVersion
	// Abi enables validation of contract call arguments when set
	Abi *abi.Abi
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns a Config for mainnet with any anchor mode and deny post-condition mode
func DefaultConfig() Config {
	return Config{
		Network:           stacks.NetworkMainnet,
		AnchorMode:        transaction.AnchorModeAny,
		PostConditionMode: transaction.PostConditionModeDeny,
	}
}

// Option is a functional option for configuring a builder
type Option func(*Config)

// WithConfig applies a complete Config, replacing all default values.
// Options applied after WithConfig still override the config values
func WithConfig(config Config) Option {
	return func(c *Config) {
		*c = config
	}
}

// WithNetwork sets the network
func WithNetwork(network stacks.Network) Option {
	return func(c *Config) {
		c.Network = network
	}
}

// WithAnchorMode sets the anchor mode
func WithAnchorMode(mode transaction.AnchorMode) Option {
	return func(c *Config) {
		c.AnchorMode = mode
	}
}

// WithPostConditionMode sets the post-condition mode
func WithPostConditionMode(mode transaction.PostConditionMode) Option {
	return func(c *Config) {
		c.PostConditionMode = mode
	}
}

// WithPostConditions appends post-conditions
func WithPostConditions(pcs ...transaction.PostCondition) Option {
	return func(c *Config) {
		c.PostConditions = append(c.PostConditions, pcs...)
	}
}

// WithNonce sets the nonce
func WithNonce(nonce uint64) Option {
	return func(c *Config) {
		c.Nonce = nonce
	}
}

// WithFee sets a fixed fee
func WithFee(fee uint64) Option {
	return func(c *Config) {
		c.Fee = fee
	}
}

// WithFeeRate sets a decimal fee rate per byte, such as "1" or "0.5"
func WithFeeRate(rate string) Option {
	return func(c *Config) {
		c.FeeRate = rate
	}
}

// WithSponsored specifies whether the transaction is sponsored
func WithSponsored(sponsored bool) Option {
	return func(c *Config) {
		c.Sponsored = sponsored
	}
}

// WithClarityVersion sets the Clarity version of deployed contracts
func WithClarityVersion(version transaction.ClarityVersion) Option {
	return func(c *Config) {
		c.ClarityVersion = version
	}
}

// WithAbi enables contract call argument validation against the given ABI.
// A nil ABI disables validation
func WithAbi(contractAbi *abi.Abi) Option {
	return func(c *Config) {
		c.Abi = contractAbi
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func newConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
