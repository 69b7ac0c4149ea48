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

package builder_test

import (
	"testing"

	stacks "github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/clarity/abi"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRecipient = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	testContract  = "SP000000000000000000002Q6VF78"
)

func testMultiSigOrigin() builder.Origin {
	return builder.MultiSigOrigin(
		address.HashModeP2SH,
		2,
		test.PrivateKey(0).PublicKey(),
		test.PrivateKey(1).PublicKey(),
		test.PrivateKey(2).PublicKey(),
	)
}

func TestMakeSTXTokenTransfer(t *testing.T) {
	tx, err := builder.MakeSTXTokenTransfer(
		testRecipient,
		1000,
		"hello",
		test.PrivateKey(0),
		builder.WithNonce(3),
		builder.WithFee(180),
		builder.WithAnchorMode(transaction.AnchorModeOnChainOnly),
	)
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	assert.Equal(t, uint64(180), tx.Fee())
	assert.Equal(t, uint64(3), tx.Nonce())
	assert.Equal(t, transaction.TransactionVersionMainnet, tx.Version)
	assert.Equal(t, transaction.AnchorModeOnChainOnly, tx.AnchorMode)
	assert.Equal(t, transaction.PostConditionModeDeny, tx.PostConditionMode)
	payload, ok := tx.Payload.(transaction.TokenTransferPayload)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), payload.Amount)
	assert.Equal(t, "hello", payload.Memo.String())

	_, err = builder.MakeSTXTokenTransfer("not-an-address", 1, "", test.PrivateKey(0))
	assert.Error(t, err)
}

func TestFeeRate(t *testing.T) {
	testDefs := []struct {
		name   string
		origin builder.Origin
		keys   []keys.PrivateKey
	}{
		{
			name:   "SingleSig",
			origin: builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()),
			keys:   []keys.PrivateKey{test.PrivateKey(0)},
		},
		{
			name:   "MultiSig",
			origin: testMultiSigOrigin(),
			keys:   []keys.PrivateKey{test.PrivateKey(0), test.PrivateKey(1)},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			payload, err := builder.TokenTransferPayload(testRecipient, 50, "")
			require.NoError(t, err)
			var tx *transaction.Transaction
			if testDef.origin.HashMode.IsMultiSig() {
				tx, err = builder.MakeMultiSig(payload, testDef.origin, testDef.keys, builder.WithFeeRate("1"))
			} else {
				tx, err = builder.Make(payload, testDef.keys[0], builder.WithFeeRate("1"))
			}
			require.NoError(t, err)
			require.NoError(t, tx.Verify())
			// The estimate covers the signed transaction exactly
			data, err := tx.Serialize()
			require.NoError(t, err)
			assert.Equal(t, uint64(len(data)), tx.Fee())
		})
	}
}

func TestEstimateFee(t *testing.T) {
	tx, err := builder.MakeUnsignedSTXTokenTransfer(
		testRecipient,
		50,
		"",
		builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()),
	)
	require.NoError(t, err)
	data, err := tx.Serialize()
	require.NoError(t, err)
	size := uint64(len(data))

	fee, err := builder.EstimateFee(tx, builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()), "0.5")
	require.NoError(t, err)
	assert.Equal(t, (size+1)/2, fee)
	fee, err = builder.EstimateFee(tx, builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()), "3")
	require.NoError(t, err)
	assert.Equal(t, size*3, fee)

	for _, rate := range []string{"abc", "-1", ""} {
		_, err = builder.EstimateFee(tx, builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()), rate)
		assert.Error(t, err, "rate %q", rate)
	}
	_, err = builder.EstimateFee(tx, builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()), "1e30")
	assert.ErrorIs(t, err, transaction.ErrAmountOutOfRange)
}

func TestMakeMultiSigPartial(t *testing.T) {
	// Only one signer present for a 2-of-3 origin
	_, err := builder.MakeMultiSigSTXTokenTransfer(
		testRecipient,
		50,
		"",
		testMultiSigOrigin(),
		[]keys.PrivateKey{test.PrivateKey(2)},
	)
	assert.ErrorIs(t, err, transaction.ErrThresholdNotMet)

	_, err = builder.MakeMultiSigSTXTokenTransfer(
		testRecipient,
		50,
		"",
		builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()),
		[]keys.PrivateKey{test.PrivateKey(0)},
	)
	assert.Error(t, err)

	// Surplus signers beyond the threshold are appended as public keys
	tx, err := builder.MakeMultiSigSTXTokenTransfer(
		testRecipient,
		50,
		"",
		testMultiSigOrigin(),
		[]keys.PrivateKey{test.PrivateKey(0), test.PrivateKey(1), test.PrivateKey(2)},
	)
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	assert.Equal(t, 2, tx.Auth.Origin.SignatureCount())
}

func TestMakeContractDeploy(t *testing.T) {
	code := "(define-read-only (hello) (ok u1))"
	tx, err := builder.MakeContractDeploy(
		"hello-world",
		code,
		test.PrivateKey(0),
		builder.WithNetwork(stacks.NetworkTestnet),
	)
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	assert.Equal(t, transaction.TransactionVersionTestnet, tx.Version)
	assert.Equal(t, transaction.ChainIdTestnet, tx.ChainId)
	assert.Equal(t, transaction.PayloadTypeSmartContract, tx.Payload.Type())

	tx, err = builder.MakeUnsignedContractDeploy(
		"hello-world",
		code,
		builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()),
		builder.WithClarityVersion(transaction.ClarityVersion2),
	)
	require.NoError(t, err)
	payload, ok := tx.Payload.(transaction.VersionedSmartContractPayload)
	require.True(t, ok)
	assert.Equal(t, transaction.ClarityVersion2, payload.ClarityVersion)
	assert.Equal(t, 0, tx.Auth.Origin.SignatureCount())

	_, err = builder.MakeContractDeploy("bad name", code, test.PrivateKey(0))
	assert.Error(t, err)
}

func TestMakeContractCall(t *testing.T) {
	contractAbi := &abi.Abi{
		Functions: []abi.Function{
			{
				Name:   "transfer",
				Access: abi.AccessPublic,
				Args: []abi.Argument{
					{Name: "amount", Type: abi.Primitive(abi.KindUInt128)},
					{Name: "recipient", Type: abi.Primitive(abi.KindPrincipal)},
				},
			},
		},
	}
	recipient, err := clarity.ParsePrincipal(testRecipient)
	require.NoError(t, err)
	args := []clarity.Value{clarity.NewUIntFromUint64(10), recipient}

	tx, err := builder.MakeContractCall(
		testContract,
		"token",
		"transfer",
		args,
		test.PrivateKey(0),
		builder.WithAbi(contractAbi),
		builder.WithPostConditionMode(transaction.PostConditionModeAllow),
	)
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	assert.Equal(t, transaction.PostConditionModeAllow, tx.PostConditionMode)

	badArgs := []clarity.Value{clarity.NewIntFromInt64(10), recipient}
	_, err = builder.MakeContractCall(
		testContract,
		"token",
		"transfer",
		badArgs,
		test.PrivateKey(0),
		builder.WithAbi(contractAbi),
	)
	assert.ErrorIs(t, err, abi.ErrArgumentTypeMismatch)

	// Without an ABI the arguments are not checked
	_, err = builder.MakeUnsignedContractCall(
		testContract,
		"token",
		"transfer",
		badArgs,
		builder.SingleSigOrigin(test.PrivateKey(0).PublicKey()),
	)
	require.NoError(t, err)

	_, err = builder.MakeContractCall(
		testContract,
		"token",
		"missing",
		args,
		test.PrivateKey(0),
		builder.WithAbi(contractAbi),
	)
	assert.ErrorIs(t, err, abi.ErrFunctionNotFound)
}

func TestPostConditions(t *testing.T) {
	pc, err := transaction.NewStxPostCondition(
		transaction.OriginPrincipal(),
		transaction.FungibleConditionLessEqual,
		1000,
	)
	require.NoError(t, err)
	tx, err := builder.MakeSTXTokenTransfer(
		testRecipient,
		1000,
		"",
		test.PrivateKey(0),
		builder.WithPostConditions(pc),
	)
	require.NoError(t, err)
	require.Len(t, tx.PostConditions, 1)
	assert.Equal(t, pc, tx.PostConditions[0])
}

func TestSponsorTransaction(t *testing.T) {
	tx, err := builder.MakeSTXTokenTransfer(
		testRecipient,
		1000,
		"",
		test.PrivateKey(0),
		builder.WithSponsored(true),
		builder.WithFee(300),
	)
	require.NoError(t, err)
	assert.Equal(t, transaction.AuthTypeSponsored, tx.Auth.Type)
	assert.Equal(t, uint64(0), tx.Fee())
	assert.Equal(t, uint64(0), tx.Auth.Origin.Header().Fee)

	sponsored, err := builder.SponsorTransaction(
		tx,
		test.PrivateKey(3),
		builder.WithNonce(5),
		builder.WithFee(1000),
	)
	require.NoError(t, err)
	require.NoError(t, sponsored.Verify())
	assert.Equal(t, uint64(1000), sponsored.Fee())
	assert.Equal(t, uint64(5), sponsored.Auth.Sponsor.Header().Nonce)
	// The origin transaction is left untouched
	assert.Equal(t, uint64(0), tx.Fee())

	standard, err := builder.MakeSTXTokenTransfer(testRecipient, 1, "", test.PrivateKey(0))
	require.NoError(t, err)
	_, err = builder.SponsorTransaction(standard, test.PrivateKey(3))
	assert.ErrorIs(t, err, transaction.ErrAuthorizationKindMismatch)
}

func TestInvalidNetwork(t *testing.T) {
	_, err := builder.MakeSTXTokenTransfer(
		testRecipient,
		1,
		"",
		test.PrivateKey(0),
		builder.WithNetwork(stacks.NetworkInvalid),
	)
	assert.Error(t, err)
}

func TestOriginAddress(t *testing.T) {
	origin := testMultiSigOrigin()
	addr, err := origin.Address(stacks.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, uint8(address.AddressVersionMainnetMultiSig), addr.Version)
	assert.Equal(t, "SM", addr.String()[:2])
}
