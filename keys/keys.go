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

// Package keys wraps secp256k1 key handling and recoverable ECDSA signatures
// in the representation used by Stacks spending conditions.
package keys

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	PrivateKeySize = 32
	// A trailing 0x01 marks a private key whose public key is used in compressed form
	compressedPrivateKeySize = PrivateKeySize + 1
	compressedKeyFlag        = 0x01

	CompressedPublicKeySize   = 33
	UncompressedPublicKeySize = 65

	MessageSignatureSize = 65

	// SignCompact header byte: 27 + recovery code (+4 for compressed keys)
	compactSigMagicOffset    = 27
	compactSigCompPubKeyFlag = 4
	maxRecoveryId            = 3
	messageHashSize          = 32
)

// PrivateKey is a secp256k1 private key along with the public key encoding it signs for
type PrivateKey struct {
	key        *secp256k1.PrivateKey
	compressed bool
}

// GeneratePrivateKey returns a new random private key using compressed public keys
func GeneratePrivateKey() (PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{key: key, compressed: true}, nil
}

// NewPrivateKey returns a PrivateKey from its raw representation. A 33-byte key ending
// in 0x01 selects compressed public keys; a 32-byte key selects uncompressed public keys
func NewPrivateKey(data []byte) (PrivateKey, error) {
	compressed := false
	switch len(data) {
	case PrivateKeySize:
	case compressedPrivateKeySize:
		if data[PrivateKeySize] != compressedKeyFlag {
			return PrivateKey{}, errors.New(
				"invalid private key: 33-byte key must end in 0x01",
			)
		}
		compressed = true
		data = data[:PrivateKeySize]
	default:
		return PrivateKey{}, fmt.Errorf(
			"invalid private key length: %d",
			len(data),
		)
	}
	key := secp256k1.PrivKeyFromBytes(data)
	if key.Key.IsZero() {
		return PrivateKey{}, errors.New("invalid private key: zero scalar")
	}
	return PrivateKey{key: key, compressed: compressed}, nil
}

// ParsePrivateKey decodes a hex private key
func ParsePrivateKey(hexKey string) (PrivateKey, error) {
	data, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key hex: %w", err)
	}
	return NewPrivateKey(data)
}

// Bytes returns the raw key, with the 0x01 suffix when compressed
func (k PrivateKey) Bytes() []byte {
	ret := k.key.Serialize()
	if k.compressed {
		ret = append(ret, compressedKeyFlag)
	}
	return ret
}

func (k PrivateKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// Compressed returns true if the key signs for a compressed public key
func (k PrivateKey) Compressed() bool {
	return k.compressed
}

// PublicKey returns the matching public key
func (k PrivateKey) PublicKey() PublicKey {
	return PublicKey{key: k.key.PubKey(), compressed: k.compressed}
}

// Sign produces a recoverable signature over a 32-byte message hash
func (k PrivateKey) Sign(hash []byte) (MessageSignature, error) {
	if len(hash) != messageHashSize {
		return MessageSignature{}, fmt.Errorf(
			"invalid message hash length: %d",
			len(hash),
		)
	}
	compact := ecdsa.SignCompact(k.key, hash, k.compressed)
	recoveryId := compact[0] - compactSigMagicOffset
	if k.compressed {
		recoveryId -= compactSigCompPubKeyFlag
	}
	var sig MessageSignature
	sig[0] = recoveryId
	copy(sig[1:], compact[1:])
	return sig, nil
}

// PublicKey is a secp256k1 public key along with its serialization form
type PublicKey struct {
	key        *secp256k1.PublicKey
	compressed bool
}

// NewPublicKey parses a 33-byte compressed or 65-byte uncompressed public key
func NewPublicKey(data []byte) (PublicKey, error) {
	if len(data) != CompressedPublicKeySize &&
		len(data) != UncompressedPublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"invalid public key length: %d",
			len(data),
		)
	}
	key, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	return PublicKey{
		key:        key,
		compressed: len(data) == CompressedPublicKeySize,
	}, nil
}

// ParsePublicKey decodes a hex public key
func ParsePublicKey(hexKey string) (PublicKey, error) {
	data, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	return NewPublicKey(data)
}

// Bytes returns the serialized key in its compressed or uncompressed form
func (k PublicKey) Bytes() []byte {
	if k.key == nil {
		return nil
	}
	if k.compressed {
		return k.key.SerializeCompressed()
	}
	return k.key.SerializeUncompressed()
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// Compressed returns true if the key serializes to its 33-byte form
func (k PublicKey) Compressed() bool {
	return k.compressed
}

// Equal compares serialized keys
func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k.Bytes(), other.Bytes())
}

// Recover returns the public key that produced sig over hash, serialized in the requested form
func Recover(hash []byte, sig MessageSignature, compressed bool) (PublicKey, error) {
	if len(hash) != messageHashSize {
		return PublicKey{}, fmt.Errorf(
			"invalid message hash length: %d",
			len(hash),
		)
	}
	recoveryId := sig.RecoveryId()
	if recoveryId > maxRecoveryId {
		return PublicKey{}, fmt.Errorf(
			"invalid signature recovery id: %d",
			recoveryId,
		)
	}
	compact := make([]byte, MessageSignatureSize)
	compact[0] = compactSigMagicOffset + recoveryId + compactSigCompPubKeyFlag
	copy(compact[1:], sig[1:])
	key, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return PublicKey{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return PublicKey{key: key, compressed: compressed}, nil
}

// MessageSignature is a recoverable signature laid out as recovery id || r || s
type MessageSignature [MessageSignatureSize]byte

// EmptyMessageSignature is the all-zero signature used by unsigned spending conditions
var EmptyMessageSignature = MessageSignature{}

// NewMessageSignature returns a MessageSignature from its raw bytes
func NewMessageSignature(data []byte) (MessageSignature, error) {
	if len(data) != MessageSignatureSize {
		return MessageSignature{}, fmt.Errorf(
			"invalid signature length: %d",
			len(data),
		)
	}
	var sig MessageSignature
	copy(sig[:], data)
	return sig, nil
}

func (s MessageSignature) String() string {
	return hex.EncodeToString(s[:])
}

func (s MessageSignature) Bytes() []byte {
	return s[:]
}

// IsEmpty returns true for the all-zero signature
func (s MessageSignature) IsEmpty() bool {
	return s == EmptyMessageSignature
}

// RecoveryId returns the public key recovery id
func (s MessageSignature) RecoveryId() byte {
	return s[0]
}
