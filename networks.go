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

package stacks

import (
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/transaction"
)

// Network definitions
var (
	NetworkMainnet = Network{
		Name:                    "mainnet",
		TransactionVersion:      transaction.TransactionVersionMainnet,
		ChainId:                 transaction.ChainIdMainnet,
		SingleSigAddressVersion: address.AddressVersionMainnetSingleSig,
		MultiSigAddressVersion:  address.AddressVersionMainnetMultiSig,
	}
	NetworkTestnet = Network{
		Name:                    "testnet",
		TransactionVersion:      transaction.TransactionVersionTestnet,
		ChainId:                 transaction.ChainIdTestnet,
		SingleSigAddressVersion: address.AddressVersionTestnetSingleSig,
		MultiSigAddressVersion:  address.AddressVersionTestnetMultiSig,
	}
	// NetworkDevnet is a local development chain, which shares the testnet encoding
	NetworkDevnet = Network{
		Name:                    "devnet",
		TransactionVersion:      transaction.TransactionVersionTestnet,
		ChainId:                 transaction.ChainIdTestnet,
		SingleSigAddressVersion: address.AddressVersionTestnetSingleSig,
		MultiSigAddressVersion:  address.AddressVersionTestnetMultiSig,
	}

	NetworkInvalid = Network{
		Name:                    "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkDevnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByChainId returns the first predefined network with the given chain ID
func NetworkByChainId(chainId uint32) Network {
	for _, network := range networks {
		if network.ChainId == chainId {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Stacks network
type Network struct {
	Name                    string
	TransactionVersion      transaction.TransactionVersion
	ChainId                 uint32
	SingleSigAddressVersion uint8
	MultiSigAddressVersion  uint8
}

// Valid returns true for any network other than NetworkInvalid
func (n Network) Valid() bool {
	return n.Name != NetworkInvalid.Name
}

// AddressVersion returns the address version byte for principals using the given hash mode
func (n Network) AddressVersion(hashMode address.HashMode) uint8 {
	if hashMode.IsMultiSig() {
		return n.MultiSigAddressVersion
	}
	return n.SingleSigAddressVersion
}

// Address returns the address of the given spending condition signer on this network
func (n Network) Address(cond transaction.SpendingCondition) address.Address {
	header := cond.Header()
	return address.Address{
		Version: n.AddressVersion(header.HashMode),
		Hash:    header.Signer,
	}
}

func (n Network) String() string {
	return n.Name
}
