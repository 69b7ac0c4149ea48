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

package stacks_test

import (
	"testing"

	stacks "github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkLookup(t *testing.T) {
	testDefs := []struct {
		name            string
		expectedChainId uint32
		expectedVersion transaction.TransactionVersion
	}{
		{name: "mainnet", expectedChainId: transaction.ChainIdMainnet, expectedVersion: transaction.TransactionVersionMainnet},
		{name: "testnet", expectedChainId: transaction.ChainIdTestnet, expectedVersion: transaction.TransactionVersionTestnet},
		{name: "devnet", expectedChainId: transaction.ChainIdTestnet, expectedVersion: transaction.TransactionVersionTestnet},
	}
	for _, testDef := range testDefs {
		network := stacks.NetworkByName(testDef.name)
		require.True(t, network.Valid(), "network %s", testDef.name)
		assert.Equal(t, testDef.expectedChainId, network.ChainId)
		assert.Equal(t, testDef.expectedVersion, network.TransactionVersion)
		assert.Equal(t, testDef.name, network.String())
	}
	assert.False(t, stacks.NetworkByName("foo").Valid())
	assert.Equal(t, stacks.NetworkMainnet, stacks.NetworkByChainId(transaction.ChainIdMainnet))
	assert.Equal(t, stacks.NetworkTestnet, stacks.NetworkByChainId(transaction.ChainIdTestnet))
	assert.Equal(t, stacks.NetworkInvalid, stacks.NetworkByChainId(42))
}

func TestNetworkAddress(t *testing.T) {
	cond, err := transaction.NewSingleSigSpendingCondition(
		address.HashModeP2PKH,
		test.PrivateKey(0).PublicKey(),
		0,
		0,
	)
	require.NoError(t, err)
	mainnetAddr := stacks.NetworkMainnet.Address(cond)
	testnetAddr := stacks.NetworkTestnet.Address(cond)
	assert.Equal(t, uint8(address.AddressVersionMainnetSingleSig), mainnetAddr.Version)
	assert.Equal(t, uint8(address.AddressVersionTestnetSingleSig), testnetAddr.Version)
	assert.Equal(t, mainnetAddr.Hash, testnetAddr.Hash)
	assert.Equal(t, "SP", mainnetAddr.String()[:2])
	assert.Equal(t, "ST", testnetAddr.String()[:2])
	assert.Equal(
		t,
		uint8(address.AddressVersionMainnetMultiSig),
		stacks.NetworkMainnet.AddressVersion(address.HashModeP2SH),
	)
}
