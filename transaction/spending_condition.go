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
	"fmt"
	"math"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/wire"
	"github.com/jinzhu/copier"
)

// SpendingCondition proves the authorization of one party (origin or sponsor) to spend.
// It is either a *SingleSigSpendingCondition or a *MultiSigSpendingCondition
type SpendingCondition interface {
	Header() *ConditionHeader
	// SignatureCount returns the number of signatures present
	SignatureCount() int
	// RequiredSignatures returns the number of signatures needed to be complete
	RequiredSignatures() int
	isSpendingCondition()
}

// ConditionHeader holds the fields common to every spending condition
type ConditionHeader struct {
	HashMode address.HashMode
	Signer   address.Hash160
	Nonce    uint64
	Fee      uint64
}

func (h *ConditionHeader) Header() *ConditionHeader {
	return h
}

// SingleSigSpendingCondition is authorized by one signature
type SingleSigSpendingCondition struct {
	ConditionHeader
	KeyEncoding PubKeyEncoding
	Signature   keys.MessageSignature
}

// NewSingleSigSpendingCondition returns an unsigned condition for the given public key
func NewSingleSigSpendingCondition(
	hashMode address.HashMode,
	pubKey keys.PublicKey,
	nonce uint64,
	fee uint64,
) (*SingleSigSpendingCondition, error) {
	if !hashMode.IsSingleSig() {
		return nil, fmt.Errorf("hash mode %s is not a single-sig mode", hashMode)
	}
	signer, err := address.HashPublicKeys(hashMode, 1, [][]byte{pubKey.Bytes()})
	if err != nil {
		return nil, err
	}
	return &SingleSigSpendingCondition{
		ConditionHeader: ConditionHeader{
			HashMode: hashMode,
			Signer:   signer,
			Nonce:    nonce,
			Fee:      fee,
		},
		KeyEncoding: pubKeyEncodingFor(pubKey.Compressed()),
	}, nil
}

func (c *SingleSigSpendingCondition) SignatureCount() int {
	if c.Signature.IsEmpty() {
		return 0
	}
	return 1
}

func (c *SingleSigSpendingCondition) RequiredSignatures() int {
	return 1
}

func (*SingleSigSpendingCondition) isSpendingCondition() {}

// AuthFieldType identifies the content of a multi-sig authorization field
type AuthFieldType uint8

const (
	AuthFieldPublicKeyCompressed   AuthFieldType = 0x00
	AuthFieldPublicKeyUncompressed AuthFieldType = 0x01
	AuthFieldSignatureCompressed   AuthFieldType = 0x02
	AuthFieldSignatureUncompressed AuthFieldType = 0x03
)

// AuthField is one entry of a multi-sig spending condition: either the public key of a
// party that did not sign, or the signature of a party that did
type AuthField struct {
	Type      AuthFieldType
	PublicKey []byte
	Signature keys.MessageSignature
}

// NewPublicKeyField returns a field carrying a public key
func NewPublicKeyField(pubKey keys.PublicKey) AuthField {
	fieldType := AuthFieldPublicKeyUncompressed
	if pubKey.Compressed() {
		fieldType = AuthFieldPublicKeyCompressed
	}
	return AuthField{Type: fieldType, PublicKey: pubKey.Bytes()}
}

// NewSignatureField returns a field carrying a signature made by a key of the given encoding
func NewSignatureField(sig keys.MessageSignature, compressed bool) AuthField {
	fieldType := AuthFieldSignatureUncompressed
	if compressed {
		fieldType = AuthFieldSignatureCompressed
	}
	return AuthField{Type: fieldType, Signature: sig}
}

func (f AuthField) IsSignature() bool {
	return f.Type == AuthFieldSignatureCompressed || f.Type == AuthFieldSignatureUncompressed
}

func (f AuthField) IsCompressed() bool {
	return f.Type == AuthFieldPublicKeyCompressed || f.Type == AuthFieldSignatureCompressed
}

// KeyEncoding returns the public key encoding recorded by the field
func (f AuthField) KeyEncoding() PubKeyEncoding {
	return pubKeyEncodingFor(f.IsCompressed())
}

// MultiSigSpendingCondition is authorized by a threshold of signatures from an ordered key set
type MultiSigSpendingCondition struct {
	ConditionHeader
	Fields             []AuthField
	SignaturesRequired uint16
}

// NewMultiSigSpendingCondition returns an unsigned condition for the given ordered public keys
func NewMultiSigSpendingCondition(
	hashMode address.HashMode,
	signaturesRequired uint16,
	pubKeys []keys.PublicKey,
	nonce uint64,
	fee uint64,
) (*MultiSigSpendingCondition, error) {
	if !hashMode.IsMultiSig() {
		return nil, fmt.Errorf("hash mode %s is not a multi-sig mode", hashMode)
	}
	rawKeys := make([][]byte, 0, len(pubKeys))
	for _, pubKey := range pubKeys {
		rawKeys = append(rawKeys, pubKey.Bytes())
	}
	signer, err := address.HashPublicKeys(hashMode, int(signaturesRequired), rawKeys)
	if err != nil {
		return nil, err
	}
	return &MultiSigSpendingCondition{
		ConditionHeader: ConditionHeader{
			HashMode: hashMode,
			Signer:   signer,
			Nonce:    nonce,
			Fee:      fee,
		},
		Fields:             []AuthField{},
		SignaturesRequired: signaturesRequired,
	}, nil
}

func (c *MultiSigSpendingCondition) SignatureCount() int {
	count := 0
	for _, field := range c.Fields {
		if field.IsSignature() {
			count++
		}
	}
	return count
}

func (c *MultiSigSpendingCondition) RequiredSignatures() int {
	return int(c.SignaturesRequired)
}

func (*MultiSigSpendingCondition) isSpendingCondition() {}

// IsComplete returns true when a spending condition carries all of its required signatures
func IsComplete(cond SpendingCondition) bool {
	return cond.SignatureCount() >= cond.RequiredSignatures()
}

func cloneSpendingCondition(cond SpendingCondition) SpendingCondition {
	opts := copier.Option{DeepCopy: true}
	switch c := cond.(type) {
	case *SingleSigSpendingCondition:
		ret := &SingleSigSpendingCondition{}
		if err := copier.CopyWithOption(ret, c, opts); err != nil {
			panic(fmt.Sprintf("failed to clone spending condition: %s", err))
		}
		return ret
	case *MultiSigSpendingCondition:
		ret := &MultiSigSpendingCondition{}
		if err := copier.CopyWithOption(ret, c, opts); err != nil {
			panic(fmt.Sprintf("failed to clone spending condition: %s", err))
		}
		if ret.Fields == nil {
			ret.Fields = []AuthField{}
		}
		for idx := range ret.Fields {
			if len(ret.Fields[idx].PublicKey) == 0 {
				ret.Fields[idx].PublicKey = nil
			}
		}
		return ret
	default:
		return cond
	}
}

// clearSpendingCondition returns a copy of the condition reset to its pre-signing form
// for the initial signature hash
func clearSpendingCondition(cond SpendingCondition) SpendingCondition {
	ret := cloneSpendingCondition(cond)
	header := ret.Header()
	header.Nonce = 0
	header.Fee = 0
	switch c := ret.(type) {
	case *SingleSigSpendingCondition:
		c.Signature = keys.EmptyMessageSignature
	case *MultiSigSpendingCondition:
		c.Fields = []AuthField{}
	}
	return ret
}

// initialSigHashSponsor is the placeholder sponsor used while computing the initial signature hash
func initialSigHashSponsor() SpendingCondition {
	return &SingleSigSpendingCondition{
		ConditionHeader: ConditionHeader{HashMode: address.HashModeP2PKH},
		KeyEncoding:     PubKeyEncodingCompressed,
	}
}

func encodeSpendingCondition(w *wire.Writer, cond SpendingCondition) error {
	header := cond.Header()
	_ = w.WriteByte(byte(header.HashMode))
	w.WriteBytes(header.Signer[:])
	w.WriteUint64(header.Nonce)
	w.WriteUint64(header.Fee)
	switch c := cond.(type) {
	case *SingleSigSpendingCondition:
		if !c.HashMode.IsSingleSig() {
			return fmt.Errorf("single-sig spending condition with hash mode %s", c.HashMode)
		}
		_ = w.WriteByte(byte(c.KeyEncoding))
		w.WriteBytes(c.Signature[:])
	case *MultiSigSpendingCondition:
		if !c.HashMode.IsMultiSig() {
			return fmt.Errorf("multi-sig spending condition with hash mode %s", c.HashMode)
		}
		if uint64(len(c.Fields)) > math.MaxUint32 {
			return fmt.Errorf("too many authorization fields: %d", len(c.Fields))
		}
		w.WriteUint32(uint32(len(c.Fields))) // #nosec G115
		for _, field := range c.Fields {
			_ = w.WriteByte(byte(field.Type))
			switch field.Type {
			case AuthFieldPublicKeyCompressed, AuthFieldPublicKeyUncompressed:
				expected := keys.UncompressedPublicKeySize
				if field.IsCompressed() {
					expected = keys.CompressedPublicKeySize
				}
				if len(field.PublicKey) != expected {
					return fmt.Errorf(
						"public key field of type 0x%02x has length %d",
						field.Type,
						len(field.PublicKey),
					)
				}
				w.WriteBytes(field.PublicKey)
			case AuthFieldSignatureCompressed, AuthFieldSignatureUncompressed:
				w.WriteBytes(field.Signature[:])
			default:
				return fmt.Errorf("unknown authorization field type 0x%02x", field.Type)
			}
		}
		w.WriteUint16(c.SignaturesRequired)
	default:
		return fmt.Errorf("unsupported spending condition type %T", cond)
	}
	return nil
}

func decodeSpendingCondition(r *wire.Reader) (SpendingCondition, error) {
	modeOffset := r.Offset()
	mode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	header := ConditionHeader{HashMode: address.HashMode(mode)}
	if !header.HashMode.Valid() {
		return nil, wire.UnsupportedVariantError{
			Offset: modeOffset,
			Field:  "hash mode",
			Tag:    uint64(mode),
		}
	}
	if err := r.ReadInto(header.Signer[:]); err != nil {
		return nil, err
	}
	if header.Nonce, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if header.Fee, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if header.HashMode.IsSingleSig() {
		ret := &SingleSigSpendingCondition{ConditionHeader: header}
		encOffset := r.Offset()
		enc, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		ret.KeyEncoding = PubKeyEncoding(enc)
		switch ret.KeyEncoding {
		case PubKeyEncodingCompressed:
		case PubKeyEncodingUncompressed:
			if header.HashMode.IsSegwit() {
				return nil, wire.MalformedValueError{
					Offset: encOffset,
					Reason: "uncompressed public key with segwit hash mode",
				}
			}
		default:
			return nil, wire.UnsupportedVariantError{
				Offset: encOffset,
				Field:  "public key encoding",
				Tag:    uint64(enc),
			}
		}
		if err := r.ReadInto(ret.Signature[:]); err != nil {
			return nil, err
		}
		return ret, nil
	}
	ret := &MultiSigSpendingCondition{ConditionHeader: header}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	// Every field takes at least 34 bytes
	if uint64(count)*(keys.CompressedPublicKeySize+1) > uint64(r.Remaining()) {
		return nil, wire.TruncatedInputError{
			Offset:    r.Offset(),
			Needed:    int(count) * (keys.CompressedPublicKeySize + 1),
			Remaining: r.Remaining(),
		}
	}
	ret.Fields = make([]AuthField, 0, count)
	for range count {
		typeOffset := r.Offset()
		fieldType, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		field := AuthField{Type: AuthFieldType(fieldType)}
		switch field.Type {
		case AuthFieldPublicKeyCompressed:
			if field.PublicKey, err = r.ReadBytes(keys.CompressedPublicKeySize); err != nil {
				return nil, err
			}
		case AuthFieldPublicKeyUncompressed:
			if field.PublicKey, err = r.ReadBytes(keys.UncompressedPublicKeySize); err != nil {
				return nil, err
			}
		case AuthFieldSignatureCompressed, AuthFieldSignatureUncompressed:
			if err := r.ReadInto(field.Signature[:]); err != nil {
				return nil, err
			}
		default:
			return nil, wire.UnsupportedVariantError{
				Offset: typeOffset,
				Field:  "authorization field type",
				Tag:    uint64(fieldType),
			}
		}
		ret.Fields = append(ret.Fields, field)
	}
	if ret.SignaturesRequired, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	return ret, nil
}
