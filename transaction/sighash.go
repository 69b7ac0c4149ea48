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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/keys"
)

// InitialSigHash returns the hash every signature chain starts from: the transaction ID
// computed with all spending conditions reset to their unsigned, zero fee and nonce form
func (tx *Transaction) InitialSigHash() (Hash, error) {
	if tx.Auth.Origin == nil {
		return Hash{}, errors.New("authorization has no origin spending condition")
	}
	tmpTx := *tx
	tmpTx.Auth = tx.Auth.intoInitialSigHash()
	return tmpTx.TxID()
}

// PresignHash binds a signing round to the spending condition's fee and nonce
func PresignHash(prev Hash, authType AuthType, fee uint64, nonce uint64) Hash {
	var tail [17]byte
	tail[0] = byte(authType)
	binary.BigEndian.PutUint64(tail[1:9], fee)
	binary.BigEndian.PutUint64(tail[9:], nonce)
	return HashData(prev[:], tail[:])
}

// PostsignHash binds the signature produced in a signing round into the chain
func PostsignHash(presign Hash, keyEncoding PubKeyEncoding, sig keys.MessageSignature) Hash {
	return HashData(presign[:], []byte{byte(keyEncoding)}, sig[:])
}

// NextSignature signs one round of the chain and returns the signature with the next sighash
func NextSignature(
	prev Hash,
	authType AuthType,
	fee uint64,
	nonce uint64,
	key keys.PrivateKey,
) (keys.MessageSignature, Hash, error) {
	presign := PresignHash(prev, authType, fee, nonce)
	sig, err := key.Sign(presign[:])
	if err != nil {
		return keys.MessageSignature{}, Hash{}, err
	}
	return sig, PostsignHash(presign, pubKeyEncodingFor(key.Compressed()), sig), nil
}

// NextVerification replays one round of the chain and returns the recovered public key
// with the next sighash
func NextVerification(
	prev Hash,
	authType AuthType,
	fee uint64,
	nonce uint64,
	keyEncoding PubKeyEncoding,
	sig keys.MessageSignature,
) (keys.PublicKey, Hash, error) {
	presign := PresignHash(prev, authType, fee, nonce)
	pubKey, err := keys.Recover(
		presign[:],
		sig,
		keyEncoding == PubKeyEncodingCompressed,
	)
	if err != nil {
		return keys.PublicKey{}, Hash{}, err
	}
	return pubKey, PostsignHash(presign, keyEncoding, sig), nil
}

// SignSpendingCondition signs the next round of a spending condition in place and returns
// the next sighash. A single-sig condition is signed only by the key matching its signer.
// A multi-sig condition gets the signature appended as its next field
func SignSpendingCondition(
	cond SpendingCondition,
	prev Hash,
	authType AuthType,
	key keys.PrivateKey,
) (Hash, error) {
	header := cond.Header()
	switch c := cond.(type) {
	case *SingleSigSpendingCondition:
		keyHash, err := address.HashPublicKeys(
			c.HashMode,
			1,
			[][]byte{key.PublicKey().Bytes()},
		)
		if err != nil {
			return Hash{}, err
		}
		if keyHash != c.Signer {
			return Hash{}, SigningKeyMismatchError{Expected: c.Signer, Actual: keyHash}
		}
		sig, next, err := NextSignature(prev, authType, header.Fee, header.Nonce, key)
		if err != nil {
			return Hash{}, err
		}
		c.KeyEncoding = pubKeyEncodingFor(key.Compressed())
		c.Signature = sig
		return next, nil
	case *MultiSigSpendingCondition:
		if c.HashMode.IsSegwit() && !key.Compressed() {
			return Hash{}, fmt.Errorf("hash mode %s requires compressed keys", c.HashMode)
		}
		sig, next, err := NextSignature(prev, authType, header.Fee, header.Nonce, key)
		if err != nil {
			return Hash{}, err
		}
		c.Fields = append(c.Fields, NewSignatureField(sig, key.Compressed()))
		return next, nil
	default:
		return Hash{}, fmt.Errorf("unsupported spending condition type %T", cond)
	}
}

// VerifySpendingCondition replays the signature chain of a spending condition from the
// given sighash. It checks the signature count against the threshold and that the
// recovered and listed public keys hash to the signer. It returns the terminal sighash
func VerifySpendingCondition(cond SpendingCondition, initial Hash, authType AuthType) (Hash, error) {
	header := cond.Header()
	switch c := cond.(type) {
	case *SingleSigSpendingCondition:
		if c.Signature.IsEmpty() {
			return Hash{}, ThresholdNotMetError{Required: 1, Present: 0}
		}
		pubKey, next, err := NextVerification(
			initial,
			authType,
			header.Fee,
			header.Nonce,
			c.KeyEncoding,
			c.Signature,
		)
		if err != nil {
			return Hash{}, err
		}
		keyHash, err := address.HashPublicKeys(c.HashMode, 1, [][]byte{pubKey.Bytes()})
		if err != nil {
			return Hash{}, err
		}
		if keyHash != c.Signer {
			return Hash{}, SigningKeyMismatchError{Expected: c.Signer, Actual: keyHash}
		}
		return next, nil
	case *MultiSigSpendingCondition:
		cur := initial
		pubKeys := make([][]byte, 0, len(c.Fields))
		numSigs := 0
		for idx, field := range c.Fields {
			if !field.IsSignature() {
				pubKeys = append(pubKeys, field.PublicKey)
				continue
			}
			pubKey, next, err := NextVerification(
				cur,
				authType,
				header.Fee,
				header.Nonce,
				field.KeyEncoding(),
				field.Signature,
			)
			if err != nil {
				return Hash{}, fmt.Errorf("authorization field %d: %w", idx, err)
			}
			pubKeys = append(pubKeys, pubKey.Bytes())
			cur = next
			numSigs++
		}
		if numSigs != int(c.SignaturesRequired) {
			return Hash{}, ThresholdNotMetError{
				Required: int(c.SignaturesRequired),
				Present:  numSigs,
			}
		}
		keyHash, err := address.HashPublicKeys(
			c.HashMode,
			int(c.SignaturesRequired),
			pubKeys,
		)
		if err != nil {
			return Hash{}, err
		}
		if keyHash != c.Signer {
			return Hash{}, SigningKeyMismatchError{Expected: c.Signer, Actual: keyHash}
		}
		return cur, nil
	default:
		return Hash{}, fmt.Errorf("unsupported spending condition type %T", cond)
	}
}

// SignNextOrigin signs the next round of the origin spending condition
func (tx *Transaction) SignNextOrigin(prev Hash, key keys.PrivateKey) (Hash, error) {
	return SignSpendingCondition(tx.Auth.Origin, prev, AuthTypeStandard, key)
}

// SignNextSponsor signs the next round of the sponsor spending condition
func (tx *Transaction) SignNextSponsor(prev Hash, key keys.PrivateKey) (Hash, error) {
	if tx.Auth.Type != AuthTypeSponsored {
		return Hash{}, AuthorizationKindMismatchError{
			Expected: AuthTypeSponsored,
			Actual:   tx.Auth.Type,
		}
	}
	return SignSpendingCondition(tx.Auth.Sponsor, prev, AuthTypeSponsored, key)
}

// AppendPubKey records the public key of a multi-sig origin party that does not sign.
// It does not advance the sighash
func (tx *Transaction) AppendPubKey(pubKey keys.PublicKey) error {
	c, ok := tx.Auth.Origin.(*MultiSigSpendingCondition)
	if !ok {
		return errors.New("cannot append a public key to a single-sig spending condition")
	}
	if c.HashMode.IsSegwit() && !pubKey.Compressed() {
		return fmt.Errorf("hash mode %s requires compressed keys", c.HashMode)
	}
	c.Fields = append(c.Fields, NewPublicKeyField(pubKey))
	return nil
}

// VerifyOrigin checks the origin signatures and returns the terminal origin sighash
func (tx *Transaction) VerifyOrigin() (Hash, error) {
	initial, err := tx.InitialSigHash()
	if err != nil {
		return Hash{}, err
	}
	return VerifySpendingCondition(tx.Auth.Origin, initial, AuthTypeStandard)
}

// VerifySponsor checks the sponsor signatures starting from the terminal origin sighash
func (tx *Transaction) VerifySponsor(originSigHash Hash) (Hash, error) {
	if tx.Auth.Type != AuthTypeSponsored {
		return Hash{}, AuthorizationKindMismatchError{
			Expected: AuthTypeSponsored,
			Actual:   tx.Auth.Type,
		}
	}
	return VerifySpendingCondition(tx.Auth.Sponsor, originSigHash, AuthTypeSponsored)
}

// Verify checks every signature of the transaction
func (tx *Transaction) Verify() error {
	originSigHash, err := tx.VerifyOrigin()
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if tx.Auth.Type == AuthTypeSponsored {
		if _, err := tx.VerifySponsor(originSigHash); err != nil {
			return fmt.Errorf("sponsor: %w", err)
		}
	}
	return nil
}
