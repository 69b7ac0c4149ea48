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

// Package signer drives the signature hash chain of a transaction. A Signer tracks the
// running sighash while the origin, and then the sponsor, sign in turn.
package signer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

// Signer is bound to a single transaction and is not safe for concurrent use
type Signer struct {
	tx            *transaction.Transaction
	sigHash       transaction.Hash
	originDone    bool
	checkOversign bool
	checkOverlap  bool
	logger        *slog.Logger
}

// New returns a Signer for the origin of tx. Signatures already present on the origin
// spending condition are replayed so that signing resumes where it left off
func New(tx *transaction.Transaction, opts ...SignerOptionFunc) (*Signer, error) {
	s := newSigner(tx, opts...)
	sigHash, err := tx.InitialSigHash()
	if err != nil {
		return nil, err
	}
	s.sigHash, err = replay(
		tx.Auth.Origin,
		sigHash,
		transaction.AuthTypeStandard,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resume origin signing: %w", err)
	}
	return s, nil
}

// NewSponsorSigner returns a Signer for the sponsor of a sponsored transaction. The
// transaction is copied, the given sponsor spending condition is installed, and the origin
// signatures are verified to obtain the sighash the sponsor chain starts from
func NewSponsorSigner(
	tx *transaction.Transaction,
	sponsor transaction.SpendingCondition,
	opts ...SignerOptionFunc,
) (*Signer, error) {
	if tx.Auth.Type != transaction.AuthTypeSponsored {
		return nil, transaction.AuthorizationKindMismatchError{
			Expected: transaction.AuthTypeSponsored,
			Actual:   tx.Auth.Type,
		}
	}
	if sponsor == nil {
		return nil, errors.New("sponsor spending condition must not be nil")
	}
	sponsoredTx := tx.Clone()
	if err := sponsoredTx.SetSponsor(sponsor); err != nil {
		return nil, err
	}
	originSigHash, err := sponsoredTx.VerifyOrigin()
	if err != nil {
		return nil, fmt.Errorf("origin is not fully signed: %w", err)
	}
	s := newSigner(sponsoredTx, opts...)
	s.originDone = true
	s.sigHash, err = replay(sponsor, originSigHash, transaction.AuthTypeSponsored)
	if err != nil {
		return nil, fmt.Errorf("failed to resume sponsor signing: %w", err)
	}
	return s, nil
}

func newSigner(tx *transaction.Transaction, opts ...SignerOptionFunc) *Signer {
	s := &Signer{
		tx:            tx,
		checkOversign: true,
		checkOverlap:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// replay advances the sighash over the signatures already present in a spending condition
func replay(
	cond transaction.SpendingCondition,
	sigHash transaction.Hash,
	authType transaction.AuthType,
) (transaction.Hash, error) {
	header := cond.Header()
	switch c := cond.(type) {
	case *transaction.SingleSigSpendingCondition:
		if c.Signature.IsEmpty() {
			return sigHash, nil
		}
		_, next, err := transaction.NextVerification(
			sigHash,
			authType,
			header.Fee,
			header.Nonce,
			c.KeyEncoding,
			c.Signature,
		)
		return next, err
	case *transaction.MultiSigSpendingCondition:
		for idx, field := range c.Fields {
			if !field.IsSignature() {
				continue
			}
			_, next, err := transaction.NextVerification(
				sigHash,
				authType,
				header.Fee,
				header.Nonce,
				field.KeyEncoding(),
				field.Signature,
			)
			if err != nil {
				return transaction.Hash{}, fmt.Errorf("authorization field %d: %w", idx, err)
			}
			sigHash = next
		}
		return sigHash, nil
	default:
		return transaction.Hash{}, fmt.Errorf("unsupported spending condition type %T", cond)
	}
}

// SigHash returns the current running signature hash
func (s *Signer) SigHash() transaction.Hash {
	return s.sigHash
}

// SignOrigin adds the next origin signature using key
func (s *Signer) SignOrigin(key keys.PrivateKey) error {
	if s.checkOverlap && s.originDone {
		return errors.New("cannot sign origin after the sponsor signing has started")
	}
	origin := s.tx.Auth.Origin
	if err := s.checkSlot(origin); err != nil {
		return err
	}
	next, err := s.tx.SignNextOrigin(s.sigHash, key)
	if err != nil {
		return err
	}
	s.logger.Debug(
		"signed spending condition",
		"auth_type", transaction.AuthTypeStandard.String(),
		"hash_mode", origin.Header().HashMode.String(),
		"round", origin.SignatureCount(),
	)
	s.sigHash = next
	return nil
}

// AppendOrigin records the public key of a multi-sig origin party that does not sign
func (s *Signer) AppendOrigin(pubKey keys.PublicKey) error {
	if s.checkOverlap && s.originDone {
		return errors.New("cannot append to origin after the sponsor signing has started")
	}
	return s.tx.AppendPubKey(pubKey)
}

// SignSponsor adds the next sponsor signature using key. When the signer was created for
// the origin, the origin must be complete and its terminal sighash becomes the start of
// the sponsor chain
func (s *Signer) SignSponsor(key keys.PrivateKey) error {
	if s.tx.Auth.Type != transaction.AuthTypeSponsored {
		return transaction.AuthorizationKindMismatchError{
			Expected: transaction.AuthTypeSponsored,
			Actual:   s.tx.Auth.Type,
		}
	}
	if !s.originDone {
		originSigHash, err := s.tx.VerifyOrigin()
		if err != nil {
			return fmt.Errorf("origin is not fully signed: %w", err)
		}
		s.sigHash = originSigHash
		s.originDone = true
	}
	sponsor := s.tx.Auth.Sponsor
	if err := s.checkSlot(sponsor); err != nil {
		return err
	}
	next, err := s.tx.SignNextSponsor(s.sigHash, key)
	if err != nil {
		return err
	}
	s.logger.Debug(
		"signed spending condition",
		"auth_type", transaction.AuthTypeSponsored.String(),
		"hash_mode", sponsor.Header().HashMode.String(),
		"round", sponsor.SignatureCount(),
	)
	s.sigHash = next
	return nil
}

func (s *Signer) checkSlot(cond transaction.SpendingCondition) error {
	if !s.checkOversign {
		return nil
	}
	if transaction.IsComplete(cond) {
		return transaction.NoSlotAvailableError{
			Signatures: cond.SignatureCount(),
			Required:   cond.RequiredSignatures(),
		}
	}
	return nil
}

// Transaction returns the signed transaction. It fails with a ThresholdNotMetError when the
// origin, or a sponsor that has started signing, lacks required signatures, and with a
// NoSlotAvailableError when it carries more. The signatures are then replayed, so a
// transaction that does not verify is never returned
func (s *Signer) Transaction() (*transaction.Transaction, error) {
	if err := checkThreshold(s.tx.Auth.Origin); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	originSigHash, err := s.tx.VerifyOrigin()
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if s.originDone && s.tx.Auth.Type == transaction.AuthTypeSponsored {
		if err := checkThreshold(s.tx.Auth.Sponsor); err != nil {
			return nil, fmt.Errorf("sponsor: %w", err)
		}
		if _, err := s.tx.VerifySponsor(originSigHash); err != nil {
			return nil, fmt.Errorf("sponsor: %w", err)
		}
	}
	return s.tx, nil
}

// IncompleteTransaction returns a copy of the transaction in its current signing state
func (s *Signer) IncompleteTransaction() *transaction.Transaction {
	return s.tx.Clone()
}

// checkThreshold requires exactly the number of signatures the condition asks for
func checkThreshold(cond transaction.SpendingCondition) error {
	present := cond.SignatureCount()
	required := cond.RequiredSignatures()
	switch {
	case present < required:
		return transaction.ThresholdNotMetError{
			Required: required,
			Present:  present,
		}
	case present > required:
		return transaction.NoSlotAvailableError{
			Signatures: present,
			Required:   required,
		}
	}
	return nil
}
