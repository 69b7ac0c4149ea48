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

package signer_test

import (
	"testing"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/signer"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecipient = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

func testTransfer(t *testing.T) transaction.TokenTransferPayload {
	t.Helper()
	addr, err := address.ParseAddress(testRecipient)
	require.NoError(t, err)
	payload, err := transaction.NewTokenTransferPayload(
		clarity.NewStandardPrincipal(addr),
		1000,
		"",
	)
	require.NoError(t, err)
	return payload
}

func newSingleSigTx(t *testing.T, keyIdx int) *transaction.Transaction {
	t.Helper()
	cond, err := transaction.NewSingleSigSpendingCondition(
		address.HashModeP2PKH,
		test.PrivateKey(keyIdx).PublicKey(),
		0,
		200,
	)
	require.NoError(t, err)
	return transaction.NewTransaction(
		transaction.TransactionVersionMainnet,
		transaction.ChainIdMainnet,
		transaction.NewStandardAuthorization(cond),
		testTransfer(t),
	)
}

func testPubKeys() []keys.PublicKey {
	return []keys.PublicKey{
		test.PrivateKey(0).PublicKey(),
		test.PrivateKey(1).PublicKey(),
		test.PrivateKey(2).PublicKey(),
	}
}

func newMultiSigTx(t *testing.T) *transaction.Transaction {
	t.Helper()
	cond, err := transaction.NewMultiSigSpendingCondition(
		address.HashModeP2SH,
		2,
		testPubKeys(),
		7,
		3000,
	)
	require.NoError(t, err)
	return transaction.NewTransaction(
		transaction.TransactionVersionTestnet,
		transaction.ChainIdTestnet,
		transaction.NewStandardAuthorization(cond),
		testTransfer(t),
	)
}

func newSponsorCondition(t *testing.T) transaction.SpendingCondition {
	t.Helper()
	cond, err := transaction.NewSingleSigSpendingCondition(
		address.HashModeP2PKH,
		test.PrivateKey(3).PublicKey(),
		2,
		500,
	)
	require.NoError(t, err)
	return cond
}

func TestSignSingleSig(t *testing.T) {
	tx := newSingleSigTx(t, 0)
	s, err := signer.New(tx)
	require.NoError(t, err)
	initial, err := tx.InitialSigHash()
	require.NoError(t, err)
	assert.Equal(t, initial, s.SigHash())

	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))
	assert.NotEqual(t, initial, s.SigHash())
	signed, err := s.Transaction()
	require.NoError(t, err)
	require.NoError(t, signed.Verify())

	err = s.SignOrigin(test.PrivateKey(0))
	assert.ErrorIs(t, err, transaction.ErrNoSlotAvailable)
}

func TestSignUnsignedThreshold(t *testing.T) {
	s, err := signer.New(newSingleSigTx(t, 0))
	require.NoError(t, err)
	_, err = s.Transaction()
	assert.ErrorIs(t, err, transaction.ErrThresholdNotMet)
	// Signing with a key that does not match the condition leaves it unsigned
	err = s.SignOrigin(test.PrivateKey(1))
	assert.ErrorIs(t, err, transaction.ErrSigningKeyMismatch)
	_, err = s.Transaction()
	assert.ErrorIs(t, err, transaction.ErrThresholdNotMet)
}

func TestSignMultiSig(t *testing.T) {
	s, err := signer.New(newMultiSigTx(t))
	require.NoError(t, err)
	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))

	_, err = s.Transaction()
	var thresholdErr transaction.ThresholdNotMetError
	require.ErrorAs(t, err, &thresholdErr)
	assert.Equal(t, 2, thresholdErr.Required)
	assert.Equal(t, 1, thresholdErr.Present)

	require.NoError(t, s.SignOrigin(test.PrivateKey(1)))
	require.NoError(t, s.AppendOrigin(test.PrivateKey(2).PublicKey()))
	err = s.SignOrigin(test.PrivateKey(2))
	assert.ErrorIs(t, err, transaction.ErrNoSlotAvailable)

	signed, err := s.Transaction()
	require.NoError(t, err)
	require.NoError(t, signed.Verify())
}

func TestSignMultiSigExtraField(t *testing.T) {
	s, err := signer.New(newMultiSigTx(t))
	require.NoError(t, err)
	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))
	require.NoError(t, s.AppendOrigin(test.PrivateKey(1).PublicKey()))
	require.NoError(t, s.AppendOrigin(test.PrivateKey(2).PublicKey()))
	// The condition lists every key already, so a second signature adds a fourth field
	require.NoError(t, s.SignOrigin(test.PrivateKey(1)))
	assert.Len(
		t,
		s.IncompleteTransaction().Auth.Origin.(*transaction.MultiSigSpendingCondition).Fields,
		4,
	)
	_, err = s.Transaction()
	assert.ErrorIs(t, err, transaction.ErrSigningKeyMismatch)
}

func TestSignMultiSigOversigned(t *testing.T) {
	s, err := signer.New(newMultiSigTx(t), signer.WithCheckOversign(false))
	require.NoError(t, err)
	for idx := range 3 {
		require.NoError(t, s.SignOrigin(test.PrivateKey(idx)))
	}
	_, err = s.Transaction()
	var slotErr transaction.NoSlotAvailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, 3, slotErr.Signatures)
	assert.Equal(t, 2, slotErr.Required)
}

func TestSignResume(t *testing.T) {
	first, err := signer.New(newMultiSigTx(t))
	require.NoError(t, err)
	require.NoError(t, first.SignOrigin(test.PrivateKey(0)))
	require.NoError(t, first.AppendOrigin(test.PrivateKey(1).PublicKey()))

	// Hand the partially signed transaction over in serialized form
	encoded, err := first.IncompleteTransaction().Serialize()
	require.NoError(t, err)
	partial, err := transaction.Deserialize(encoded)
	require.NoError(t, err)

	second, err := signer.New(partial)
	require.NoError(t, err)
	assert.Equal(t, first.SigHash(), second.SigHash())
	require.NoError(t, second.SignOrigin(test.PrivateKey(2)))
	signed, err := second.Transaction()
	require.NoError(t, err)
	require.NoError(t, signed.Verify())
}

func TestIncompleteTransactionIsCopy(t *testing.T) {
	s, err := signer.New(newMultiSigTx(t))
	require.NoError(t, err)
	snapshot := s.IncompleteTransaction()
	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))
	assert.Equal(t, 0, snapshot.Auth.Origin.SignatureCount())
	assert.Equal(t, 1, s.IncompleteTransaction().Auth.Origin.SignatureCount())
}

func TestSponsorSigner(t *testing.T) {
	tx := newSingleSigTx(t, 0)
	tx.Auth = transaction.NewSponsoredAuthorization(tx.Auth.Origin, nil)

	// The origin signs without knowing the sponsor
	originSigner, err := signer.New(tx)
	require.NoError(t, err)
	require.NoError(t, originSigner.SignOrigin(test.PrivateKey(0)))
	originTx, err := originSigner.Transaction()
	require.NoError(t, err)

	sponsorSigner, err := signer.NewSponsorSigner(originTx, newSponsorCondition(t))
	require.NoError(t, err)
	require.NoError(t, sponsorSigner.SignSponsor(test.PrivateKey(3)))
	sponsored, err := sponsorSigner.Transaction()
	require.NoError(t, err)
	require.NoError(t, sponsored.Verify())
	assert.Equal(t, uint64(500), sponsored.Fee())

	// The origin transaction is left untouched
	assert.Equal(t, 0, originTx.Auth.Sponsor.SignatureCount())

	err = sponsorSigner.SignOrigin(test.PrivateKey(0))
	assert.Error(t, err)
}

func TestSponsorSignerErrors(t *testing.T) {
	standard := newSingleSigTx(t, 0)
	_, err := signer.NewSponsorSigner(standard, newSponsorCondition(t))
	assert.ErrorIs(t, err, transaction.ErrAuthorizationKindMismatch)

	s, err := signer.New(standard)
	require.NoError(t, err)
	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))
	err = s.SignSponsor(test.PrivateKey(3))
	assert.ErrorIs(t, err, transaction.ErrAuthorizationKindMismatch)

	// The origin must be fully signed before the sponsor signs
	unsigned := newSingleSigTx(t, 0)
	unsigned.Auth = transaction.NewSponsoredAuthorization(unsigned.Auth.Origin, nil)
	_, err = signer.NewSponsorSigner(unsigned, newSponsorCondition(t))
	assert.ErrorIs(t, err, transaction.ErrThresholdNotMet)
}

func TestSignOriginThenSponsor(t *testing.T) {
	tx := newSingleSigTx(t, 0)
	tx.Auth = transaction.NewSponsoredAuthorization(
		tx.Auth.Origin,
		newSponsorCondition(t),
	)
	s, err := signer.New(tx)
	require.NoError(t, err)
	require.NoError(t, s.SignOrigin(test.PrivateKey(0)))
	require.NoError(t, s.SignSponsor(test.PrivateKey(3)))
	signed, err := s.Transaction()
	require.NoError(t, err)
	require.NoError(t, signed.Verify())

	// The origin is closed once the sponsor has signed
	assert.Error(t, s.AppendOrigin(test.PrivateKey(1).PublicKey()))
}
