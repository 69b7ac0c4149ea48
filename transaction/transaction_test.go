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

package transaction

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashHex = "a46ff88886c2ef9762d970b4d2c63678835bd39d"

func testAddress() address.Address {
	addr, err := address.NewAddress(
		address.AddressVersionMainnetSingleSig,
		test.DecodeHexString(testHashHex),
	)
	if err != nil {
		panic(err)
	}
	return addr
}

func testTransfer(t *testing.T) TokenTransferPayload {
	t.Helper()
	payload, err := NewTokenTransferPayload(
		clarity.NewStandardPrincipal(testAddress()),
		12345,
		"hello",
	)
	require.NoError(t, err)
	return payload
}

func newSingleSigTx(t *testing.T, keyIdx int) *Transaction {
	t.Helper()
	cond, err := NewSingleSigSpendingCondition(
		address.HashModeP2PKH,
		test.PrivateKey(keyIdx).PublicKey(),
		1,
		180,
	)
	require.NoError(t, err)
	return NewTransaction(
		TransactionVersionMainnet,
		ChainIdMainnet,
		NewStandardAuthorization(cond),
		testTransfer(t),
	)
}

func newMultiSigTx(t *testing.T, hashMode address.HashMode) *Transaction {
	t.Helper()
	pubKeys := []keys.PublicKey{
		test.PrivateKey(0).PublicKey(),
		test.PrivateKey(1).PublicKey(),
		test.PrivateKey(2).PublicKey(),
	}
	cond, err := NewMultiSigSpendingCondition(hashMode, 2, pubKeys, 4, 2500)
	require.NoError(t, err)
	return NewTransaction(
		TransactionVersionTestnet,
		ChainIdTestnet,
		NewStandardAuthorization(cond),
		testTransfer(t),
	)
}

func TestStxPostConditionFixture(t *testing.T) {
	pc, err := NewStxPostCondition(
		StandardPrincipal(testAddress()),
		FungibleConditionGreaterEqual,
		12345,
	)
	require.NoError(t, err)
	encoded, err := EncodePostCondition(pc)
	require.NoError(t, err)
	assert.Equal(
		t,
		"00"+"02"+"16"+testHashHex+"03"+"0000000000003039",
		hex.EncodeToString(encoded),
	)
}

func TestUnsignedTransferFixture(t *testing.T) {
	signer := address.NewHash160(test.DecodeHexString(testHashHex))
	cond := &SingleSigSpendingCondition{
		ConditionHeader: ConditionHeader{
			HashMode: address.HashModeP2PKH,
			Signer:   signer,
			Nonce:    1,
			Fee:      180,
		},
		KeyEncoding: PubKeyEncodingCompressed,
	}
	tx := NewTransaction(
		TransactionVersionMainnet,
		ChainIdMainnet,
		NewStandardAuthorization(cond),
		testTransfer(t),
	)
	expected := strings.Join(
		[]string{
			"00",       // version
			"00000001", // chain id
			"04",       // standard authorization
			"00",       // P2PKH
			testHashHex,
			"0000000000000001", // nonce
			"00000000000000b4", // fee
			"00",               // compressed
			strings.Repeat("00", 65),
			"03",       // anchor mode
			"02",       // deny
			"00000000", // post-conditions
			"00",       // token transfer
			"0516" + testHashHex,
			"0000000000003039",
			"68656c6c6f" + strings.Repeat("00", 29),
		},
		"",
	)
	encoded, err := tx.Serialize()
	require.NoError(t, err)
	assert.Equal(t, expected, hex.EncodeToString(encoded))
	decoded, err := Deserialize(encoded)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
	assert.Equal(t, "hello", decoded.Payload.(TokenTransferPayload).Memo.String())
}

func TestTransactionRoundTrip(t *testing.T) {
	asset, err := NewAssetInfo(testAddress(), "my-token", "token")
	require.NoError(t, err)
	contractPrincipal, err := ContractPrincipal(testAddress(), "vault")
	require.NoError(t, err)
	stxPc, err := NewStxPostCondition(OriginPrincipal(), FungibleConditionLess, 10)
	require.NoError(t, err)
	ftPc, err := NewFungiblePostCondition(contractPrincipal, asset, FungibleConditionEqual, 500)
	require.NoError(t, err)
	nftPc, err := NewNonFungiblePostCondition(
		StandardPrincipal(testAddress()),
		asset,
		clarity.NewUIntFromUint64(42),
		NonFungibleConditionOwns,
	)
	require.NoError(t, err)
	call, err := NewContractCallPayload(
		testAddress(),
		"my-token",
		"transfer",
		[]clarity.Value{clarity.NewUIntFromUint64(1), clarity.NewSome(clarity.True)},
	)
	require.NoError(t, err)
	deploy, err := NewSmartContractPayload("hello-world", "(define-public (hi) (ok u1))")
	require.NoError(t, err)
	versioned, err := NewVersionedSmartContractPayload(
		ClarityVersion2,
		"hello-world",
		"(define-read-only (hi) u1)",
	)
	require.NoError(t, err)

	testDefs := []struct {
		name string
		tx   func(t *testing.T) *Transaction
	}{
		{
			name: "SingleSigSigned",
			tx: func(t *testing.T) *Transaction {
				tx := newSingleSigTx(t, 0)
				initial, err := tx.InitialSigHash()
				require.NoError(t, err)
				_, err = tx.SignNextOrigin(initial, test.PrivateKey(0))
				require.NoError(t, err)
				return tx
			},
		},
		{
			name: "MultiSigPartial",
			tx: func(t *testing.T) *Transaction {
				tx := newMultiSigTx(t, address.HashModeP2SH)
				initial, err := tx.InitialSigHash()
				require.NoError(t, err)
				_, err = tx.SignNextOrigin(initial, test.PrivateKey(0))
				require.NoError(t, err)
				require.NoError(t, tx.AppendPubKey(test.PrivateKey(1).PublicKey()))
				return tx
			},
		},
		{
			name: "PostConditionsAndCall",
			tx: func(t *testing.T) *Transaction {
				tx := newSingleSigTx(t, 1)
				tx.Payload = call
				tx.AnchorMode = AnchorModeOnChainOnly
				tx.PostConditionMode = PostConditionModeAllow
				tx.PostConditions = []PostCondition{stxPc, ftPc, nftPc}
				return tx
			},
		},
		{
			name: "SmartContract",
			tx: func(t *testing.T) *Transaction {
				tx := newSingleSigTx(t, 1)
				tx.Payload = deploy
				return tx
			},
		},
		{
			name: "VersionedSmartContract",
			tx: func(t *testing.T) *Transaction {
				tx := newSingleSigTx(t, 1)
				tx.Payload = versioned
				return tx
			},
		},
		{
			name: "Sponsored",
			tx: func(t *testing.T) *Transaction {
				tx := newSingleSigTx(t, 0)
				sponsor, err := NewSingleSigSpendingCondition(
					address.HashModeP2WPKH,
					test.PrivateKey(3).PublicKey(),
					7,
					300,
				)
				require.NoError(t, err)
				tx.Auth = NewSponsoredAuthorization(tx.Auth.Origin, sponsor)
				return tx
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tx := testDef.tx(t)
			encoded, err := tx.Serialize()
			require.NoError(t, err)
			decoded, err := Deserialize(encoded)
			require.NoError(t, err)
			assert.Equal(t, tx, decoded)
			reencoded, err := decoded.Serialize()
			require.NoError(t, err)
			assert.Equal(t, encoded, reencoded)
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	valid, err := newSingleSigTx(t, 0).Serialize()
	require.NoError(t, err)
	// Offset of the payload type byte: everything before the token transfer body
	payloadOffset := len(valid) - (1 + 22 + 8 + MemoSize)
	require.Equal(t, byte(PayloadTypeTokenTransfer), valid[payloadOffset])

	mutate := func(offset int, b byte) []byte {
		ret := append([]byte{}, valid...)
		ret[offset] = b
		return ret
	}
	testDefs := []struct {
		name      string
		data      []byte
		expectErr error
		field     string
	}{
		{
			name:      "UnknownVersion",
			data:      mutate(0, 0x01),
			expectErr: wire.ErrUnsupportedVariant,
			field:     "transaction version",
		},
		{
			name:      "UnknownAuthType",
			data:      mutate(5, 0x07),
			expectErr: wire.ErrUnsupportedVariant,
			field:     "authorization type",
		},
		{
			name:      "UnknownHashMode",
			data:      mutate(6, 0x09),
			expectErr: wire.ErrUnsupportedVariant,
			field:     "hash mode",
		},
		{
			name:      "UnknownPayload",
			data:      mutate(payloadOffset, 0x05),
			expectErr: wire.ErrUnsupportedVariant,
			field:     "payload type",
		},
		{
			name:      "TrailingData",
			data:      append(append([]byte{}, valid...), 0x00),
			expectErr: wire.ErrTrailingData,
		},
		{
			name:      "Truncated",
			data:      valid[:len(valid)-1],
			expectErr: wire.ErrTruncatedInput,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := Deserialize(testDef.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, testDef.expectErr)
			if testDef.field != "" {
				var variantErr wire.UnsupportedVariantError
				require.ErrorAs(t, err, &variantErr)
				assert.Equal(t, testDef.field, variantErr.Field)
			}
		})
	}
}

func TestPostConditionErrors(t *testing.T) {
	_, err := NewStxPostCondition(
		OriginPrincipal(),
		FungibleConditionCode(NonFungibleConditionSends),
		1,
	)
	var codeErr InvalidConditionCodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, AssetKindStx, codeErr.AssetKind)
	assert.ErrorIs(t, err, ErrInvalidConditionCode)

	asset, err := ParseAssetInfo("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.my-nft::nft")
	require.NoError(t, err)
	assert.Equal(t, "nft", asset.AssetName)
	_, err = NewNonFungiblePostCondition(
		OriginPrincipal(),
		asset,
		clarity.True,
		NonFungibleConditionCode(FungibleConditionEqual),
	)
	assert.ErrorIs(t, err, ErrInvalidConditionCode)
	_, err = NewFungiblePostCondition(OriginPrincipal(), asset, FungibleConditionCode(0), 1)
	assert.ErrorIs(t, err, ErrInvalidConditionCode)

	_, err = AmountFromString("18446744073709551616")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
	_, err = AmountFromString("-1")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
	amount, err := AmountFromString("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), amount)

	_, err = ParseAssetInfo("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.my-nft")
	assert.Error(t, err)
	principal, err := ParsePostConditionPrincipal("origin")
	require.NoError(t, err)
	assert.Equal(t, PrincipalTypeOrigin, principal.Type)
}

func TestPayloadErrors(t *testing.T) {
	_, err := NewTokenTransferPayload(clarity.True, 1, "")
	assert.Error(t, err)
	_, err = NewTokenTransferPayload(
		clarity.NewStandardPrincipal(testAddress()),
		1,
		strings.Repeat("x", MemoSize+1),
	)
	assert.Error(t, err)
	_, err = NewSmartContractPayload("bad name", "")
	assert.ErrorIs(t, err, clarity.ErrInvalidValue)
	_, err = NewVersionedSmartContractPayload(ClarityVersion(9), "ok", "")
	assert.Error(t, err)
	_, err = NewContractCallPayload(testAddress(), "c", "1bad", nil)
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	tx := newMultiSigTx(t, address.HashModeP2WSH)
	clone := tx.Clone()
	initial, err := clone.InitialSigHash()
	require.NoError(t, err)
	_, err = clone.SignNextOrigin(initial, test.PrivateKey(0))
	require.NoError(t, err)
	clone.SetFee(1)
	clone.SetNonce(99)
	assert.Equal(t, 0, tx.Auth.Origin.SignatureCount())
	assert.Equal(t, 1, clone.Auth.Origin.SignatureCount())
	assert.Equal(t, uint64(2500), tx.Fee())
	assert.Equal(t, uint64(4), tx.Nonce())
	assert.Equal(t, uint64(99), clone.Nonce())
}

func TestFeeAndNonceSetters(t *testing.T) {
	tx := newSingleSigTx(t, 0)
	tx.SetFee(1000)
	tx.SetNonce(5)
	assert.Equal(t, uint64(1000), tx.Fee())
	assert.Equal(t, uint64(5), tx.Nonce())
	assert.ErrorIs(t, tx.SetSponsorNonce(1), ErrAuthorizationKindMismatch)
	assert.ErrorIs(t, tx.SetSponsor(nil), ErrAuthorizationKindMismatch)

	tx.Auth = NewSponsoredAuthorization(tx.Auth.Origin, nil)
	tx.SetFee(2000)
	assert.Equal(t, uint64(2000), tx.Auth.Sponsor.Header().Fee)
	assert.Equal(t, uint64(1000), tx.Auth.Origin.Header().Fee)
	require.NoError(t, tx.SetSponsorNonce(3))
	assert.Equal(t, uint64(3), tx.Auth.Sponsor.Header().Nonce)
}
