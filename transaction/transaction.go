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

// Package transaction implements the Stacks transaction envelope: its canonical binary
// encoding, the authorization model, post-conditions, payloads, and the chained
// signature hash used to sign and verify spending conditions.
//
// A Transaction is not safe for concurrent mutation. Distinct transactions are fully
// independent.
package transaction

import (
	"fmt"
	"math"

	"github.com/blinklabs-io/gostacks/wire"
)

type Transaction struct {
	Version           TransactionVersion
	ChainId           uint32
	Auth              Authorization
	AnchorMode        AnchorMode
	PostConditionMode PostConditionMode
	PostConditions    []PostCondition
	Payload           Payload
}

// NewTransaction returns a transaction with no post-conditions, deny mode, and any anchor mode
func NewTransaction(
	version TransactionVersion,
	chainId uint32,
	auth Authorization,
	payload Payload,
) *Transaction {
	return &Transaction{
		Version:           version,
		ChainId:           chainId,
		Auth:              auth,
		AnchorMode:        AnchorModeAny,
		PostConditionMode: PostConditionModeDeny,
		PostConditions:    []PostCondition{},
		Payload:           payload,
	}
}

// Serialize returns the canonical binary encoding of the transaction
func (tx *Transaction) Serialize() ([]byte, error) {
	w := wire.NewWriter()
	if err := tx.encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (tx *Transaction) encode(w *wire.Writer) error {
	_ = w.WriteByte(byte(tx.Version))
	w.WriteUint32(tx.ChainId)
	if err := encodeAuthorization(w, tx.Auth); err != nil {
		return fmt.Errorf("failed to encode authorization: %w", err)
	}
	_ = w.WriteByte(byte(tx.AnchorMode))
	_ = w.WriteByte(byte(tx.PostConditionMode))
	if uint64(len(tx.PostConditions)) > math.MaxUint32 {
		return fmt.Errorf("too many post-conditions: %d", len(tx.PostConditions))
	}
	w.WriteUint32(uint32(len(tx.PostConditions))) // #nosec G115
	for idx, pc := range tx.PostConditions {
		if err := encodePostCondition(w, pc); err != nil {
			return fmt.Errorf("failed to encode post-condition %d: %w", idx, err)
		}
	}
	if err := encodePayload(w, tx.Payload); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return nil
}

// Deserialize decodes a transaction that must span all of data
func Deserialize(data []byte) (*Transaction, error) {
	r := wire.NewReader(data)
	tx, err := decodeTransaction(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return tx, nil
}

func decodeTransaction(r *wire.Reader) (*Transaction, error) {
	tx := &Transaction{}
	versionOffset := r.Offset()
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	tx.Version = TransactionVersion(version)
	switch tx.Version {
	case TransactionVersionMainnet, TransactionVersionTestnet:
	default:
		return nil, wire.UnsupportedVariantError{
			Offset: versionOffset,
			Field:  "transaction version",
			Tag:    uint64(version),
		}
	}
	if tx.ChainId, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if tx.Auth, err = decodeAuthorization(r); err != nil {
		return nil, err
	}
	anchorOffset := r.Offset()
	anchorMode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	tx.AnchorMode = AnchorMode(anchorMode)
	if !tx.AnchorMode.Valid() {
		return nil, wire.UnsupportedVariantError{
			Offset: anchorOffset,
			Field:  "anchor mode",
			Tag:    uint64(anchorMode),
		}
	}
	modeOffset := r.Offset()
	pcMode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	tx.PostConditionMode = PostConditionMode(pcMode)
	switch tx.PostConditionMode {
	case PostConditionModeAllow, PostConditionModeDeny:
	default:
		return nil, wire.UnsupportedVariantError{
			Offset: modeOffset,
			Field:  "post-condition mode",
			Tag:    uint64(pcMode),
		}
	}
	pcCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(pcCount) > uint64(r.Remaining()) {
		return nil, wire.TruncatedInputError{
			Offset:    r.Offset(),
			Needed:    int(pcCount),
			Remaining: r.Remaining(),
		}
	}
	tx.PostConditions = make([]PostCondition, 0, pcCount)
	for range pcCount {
		pc, err := decodePostCondition(r)
		if err != nil {
			return nil, err
		}
		tx.PostConditions = append(tx.PostConditions, pc)
	}
	if tx.Payload, err = decodePayload(r); err != nil {
		return nil, err
	}
	return tx, nil
}

// TxID returns the transaction identifier, the hash of its canonical encoding
func (tx *Transaction) TxID() (Hash, error) {
	data, err := tx.Serialize()
	if err != nil {
		return Hash{}, err
	}
	return HashData(data), nil
}

// Clone returns a copy of the transaction whose authorization can be changed without
// affecting the original. Payload and post-condition values are immutable and shared
func (tx *Transaction) Clone() *Transaction {
	ret := *tx
	ret.Auth = tx.Auth.clone()
	ret.PostConditions = append(
		make([]PostCondition, 0, len(tx.PostConditions)),
		tx.PostConditions...,
	)
	return &ret
}

// Fee returns the fee paid by the sponsor for sponsored transactions and by the origin otherwise
func (tx *Transaction) Fee() uint64 {
	if tx.Auth.Type == AuthTypeSponsored && tx.Auth.Sponsor != nil {
		return tx.Auth.Sponsor.Header().Fee
	}
	return tx.Auth.Origin.Header().Fee
}

// SetFee sets the fee on the paying spending condition. Signatures made before the
// change are not cleared and no longer verify
func (tx *Transaction) SetFee(fee uint64) {
	if tx.Auth.Type == AuthTypeSponsored && tx.Auth.Sponsor != nil {
		tx.Auth.Sponsor.Header().Fee = fee
		return
	}
	tx.Auth.Origin.Header().Fee = fee
}

// Nonce returns the origin nonce
func (tx *Transaction) Nonce() uint64 {
	return tx.Auth.Origin.Header().Nonce
}

// SetNonce sets the origin nonce. Signatures made before the change are not cleared
// and no longer verify
func (tx *Transaction) SetNonce(nonce uint64) {
	tx.Auth.Origin.Header().Nonce = nonce
}

// SetSponsorNonce sets the sponsor nonce of a sponsored transaction
func (tx *Transaction) SetSponsorNonce(nonce uint64) error {
	if tx.Auth.Type != AuthTypeSponsored {
		return AuthorizationKindMismatchError{
			Expected: AuthTypeSponsored,
			Actual:   tx.Auth.Type,
		}
	}
	tx.Auth.Sponsor.Header().Nonce = nonce
	return nil
}

// SetSponsor replaces the sponsor spending condition of a sponsored transaction
func (tx *Transaction) SetSponsor(sponsor SpendingCondition) error {
	if tx.Auth.Type != AuthTypeSponsored {
		return AuthorizationKindMismatchError{
			Expected: AuthTypeSponsored,
			Actual:   tx.Auth.Type,
		}
	}
	tx.Auth.Sponsor = sponsor
	return nil
}
