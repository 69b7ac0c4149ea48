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

	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/signer"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip passes a session through its CBOR form, as when handing it to the next party
func roundTrip(t *testing.T, session *signer.Session) *signer.Session {
	t.Helper()
	data, err := session.Encode()
	require.NoError(t, err)
	ret, err := signer.DecodeSession(data)
	require.NoError(t, err)
	return ret
}

func TestSessionFlow(t *testing.T) {
	session, err := signer.NewSession(newMultiSigTx(t), testPubKeys())
	require.NoError(t, err)
	require.NoError(t, session.Sign(test.PrivateKey(0)))
	session = roundTrip(t, session)

	// Slot 1 belongs to the second key
	err = session.Sign(test.PrivateKey(2))
	assert.ErrorIs(t, err, transaction.ErrSigningKeyMismatch)

	require.NoError(t, session.Skip())
	slot, err := session.NextSlot()
	require.NoError(t, err)
	assert.Equal(t, 2, slot)
	session = roundTrip(t, session)
	require.NoError(t, session.Sign(test.PrivateKey(2)))

	tx, err := session.Finalize()
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	assert.Equal(t, 2, tx.Auth.Origin.SignatureCount())
}

func TestSessionFinalizeFillsKeys(t *testing.T) {
	session, err := signer.NewSession(newMultiSigTx(t), testPubKeys())
	require.NoError(t, err)
	require.NoError(t, session.Sign(test.PrivateKey(0)))

	_, err = session.Finalize()
	var thresholdErr transaction.ThresholdNotMetError
	require.ErrorAs(t, err, &thresholdErr)
	assert.Equal(t, 1, thresholdErr.Present)

	require.NoError(t, session.Sign(test.PrivateKey(1)))
	err = session.Sign(test.PrivateKey(2))
	assert.ErrorIs(t, err, transaction.ErrNoSlotAvailable)

	tx, err := session.Finalize()
	require.NoError(t, err)
	cond := tx.Auth.Origin.(*transaction.MultiSigSpendingCondition)
	require.Len(t, cond.Fields, 3)
	assert.False(t, cond.Fields[2].IsSignature())
	require.NoError(t, tx.Verify())
}

func TestNewSessionErrors(t *testing.T) {
	pubKeys := testPubKeys()
	reordered := []keys.PublicKey{pubKeys[1], pubKeys[0], pubKeys[2]}
	_, err := signer.NewSession(newMultiSigTx(t), reordered)
	assert.ErrorIs(t, err, transaction.ErrSigningKeyMismatch)

	_, err = signer.NewSession(newSingleSigTx(t, 0), pubKeys)
	assert.Error(t, err)
}

func TestDecodeSessionErrors(t *testing.T) {
	_, err := signer.DecodeSession([]byte{0x01})
	assert.Error(t, err)

	session, err := signer.NewSession(newMultiSigTx(t), testPubKeys())
	require.NoError(t, err)
	session.Transaction = session.Transaction[:10]
	data, err := session.Encode()
	require.NoError(t, err)
	_, err = signer.DecodeSession(data)
	assert.Error(t, err)
}
