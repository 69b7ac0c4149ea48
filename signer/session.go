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

package signer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/cbor"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

const sessionVersion = 1

// Session is a multi-sig origin signing hand-off that can be passed between the parties.
// It carries the partially signed transaction along with the ordered public keys of the
// spending condition, so each party can tell whether the next slot is theirs
type Session struct {
	cbor.StructAsArray
	Version     uint
	Transaction []byte
	PublicKeys  [][]byte
}

// NewSession starts a signing session for a transaction with a multi-sig origin. The
// public keys must be given in spending condition order and hash to its signer
func NewSession(tx *transaction.Transaction, pubKeys []keys.PublicKey) (*Session, error) {
	rawKeys := make([][]byte, 0, len(pubKeys))
	for _, pubKey := range pubKeys {
		rawKeys = append(rawKeys, pubKey.Bytes())
	}
	s := &Session{
		Version:    sessionVersion,
		PublicKeys: rawKeys,
	}
	if err := s.setTransaction(tx); err != nil {
		return nil, err
	}
	if _, _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeSession decodes a session from its CBOR form and checks its consistency
func DecodeSession(data []byte) (*Session, error) {
	s := &Session{}
	if err := cbor.DecodeFull(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.Version != sessionVersion {
		return nil, fmt.Errorf("unsupported session version %d", s.Version)
	}
	if _, _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode returns the CBOR form of the session
func (s *Session) Encode() ([]byte, error) {
	return cbor.Encode(s)
}

// load decodes the session transaction and checks the public keys against its origin
func (s *Session) load() (*transaction.Transaction, *transaction.MultiSigSpendingCondition, error) {
	tx, err := transaction.Deserialize(s.Transaction)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode session transaction: %w", err)
	}
	cond, ok := tx.Auth.Origin.(*transaction.MultiSigSpendingCondition)
	if !ok {
		return nil, nil, errors.New("session transaction origin is not multi-sig")
	}
	keyHash, err := address.HashPublicKeys(
		cond.HashMode,
		int(cond.SignaturesRequired),
		s.PublicKeys,
	)
	if err != nil {
		return nil, nil, err
	}
	if keyHash != cond.Signer {
		return nil, nil, transaction.SigningKeyMismatchError{
			Expected: cond.Signer,
			Actual:   keyHash,
		}
	}
	if len(cond.Fields) > len(s.PublicKeys) {
		return nil, nil, fmt.Errorf(
			"session transaction has %d authorization fields for %d public keys",
			len(cond.Fields),
			len(s.PublicKeys),
		)
	}
	return tx, cond, nil
}

func (s *Session) setTransaction(tx *transaction.Transaction) error {
	data, err := tx.Serialize()
	if err != nil {
		return err
	}
	s.Transaction = data
	return nil
}

// NextSlot returns the index of the next authorization field to fill
func (s *Session) NextSlot() (int, error) {
	_, cond, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(cond.Fields), nil
}

func (s *Session) nextSlot(cond *transaction.MultiSigSpendingCondition) (int, error) {
	slot := len(cond.Fields)
	if slot >= len(s.PublicKeys) || transaction.IsComplete(cond) {
		return 0, transaction.NoSlotAvailableError{
			Signatures: cond.SignatureCount(),
			Required:   cond.RequiredSignatures(),
		}
	}
	return slot, nil
}

// Sign fills the next slot with a signature from key. The key must be the one listed
// for that slot
func (s *Session) Sign(key keys.PrivateKey, opts ...SignerOptionFunc) error {
	tx, cond, err := s.load()
	if err != nil {
		return err
	}
	slot, err := s.nextSlot(cond)
	if err != nil {
		return err
	}
	pubKey := key.PublicKey().Bytes()
	if !bytes.Equal(pubKey, s.PublicKeys[slot]) {
		return transaction.SigningKeyMismatchError{
			Expected: address.Hash160Hash(s.PublicKeys[slot]),
			Actual:   address.Hash160Hash(pubKey),
		}
	}
	signer, err := New(tx, opts...)
	if err != nil {
		return err
	}
	if err := signer.SignOrigin(key); err != nil {
		return err
	}
	return s.setTransaction(tx)
}

// Skip fills the next slot with its public key, for a party that does not sign
func (s *Session) Skip() error {
	tx, cond, err := s.load()
	if err != nil {
		return err
	}
	slot := len(cond.Fields)
	if slot >= len(s.PublicKeys) {
		return transaction.NoSlotAvailableError{
			Signatures: cond.SignatureCount(),
			Required:   cond.RequiredSignatures(),
		}
	}
	pubKey, err := keys.NewPublicKey(s.PublicKeys[slot])
	if err != nil {
		return err
	}
	if err := tx.AppendPubKey(pubKey); err != nil {
		return err
	}
	return s.setTransaction(tx)
}

// Finalize fills the remaining slots with public keys and returns the verified transaction.
// It fails with a ThresholdNotMetError when signatures are missing
func (s *Session) Finalize() (*transaction.Transaction, error) {
	tx, cond, err := s.load()
	if err != nil {
		return nil, err
	}
	if !transaction.IsComplete(cond) {
		return nil, transaction.ThresholdNotMetError{
			Required: cond.RequiredSignatures(),
			Present:  cond.SignatureCount(),
		}
	}
	for _, rawKey := range s.PublicKeys[len(cond.Fields):] {
		pubKey, err := keys.NewPublicKey(rawKey)
		if err != nil {
			return nil, err
		}
		if err := tx.AppendPubKey(pubKey); err != nil {
			return nil, err
		}
	}
	if err := tx.Verify(); err != nil {
		return nil, err
	}
	if err := s.setTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}
