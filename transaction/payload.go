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
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/wire"
)

// Payload is the action a transaction performs
type Payload interface {
	Type() PayloadType
	isPayload()
}

// Memo is the fixed-size note attached to a token transfer
type Memo [MemoSize]byte

// NewMemo returns a zero-padded memo holding the given text
func NewMemo(text string) (Memo, error) {
	var ret Memo
	if len(text) > MemoSize {
		return ret, fmt.Errorf("memo of %d bytes exceeds maximum of %d", len(text), MemoSize)
	}
	copy(ret[:], text)
	return ret, nil
}

// String returns the memo text with zero padding removed
func (m Memo) String() string {
	return string(bytes.TrimRight(m[:], "\x00"))
}

type TokenTransferPayload struct {
	// Recipient is a standard or contract principal
	Recipient clarity.Value
	Amount    uint64
	Memo      Memo
}

func NewTokenTransferPayload(recipient clarity.Value, amount uint64, memo string) (TokenTransferPayload, error) {
	switch recipient.(type) {
	case clarity.StandardPrincipal, clarity.ContractPrincipal:
	default:
		return TokenTransferPayload{}, errors.New("token transfer recipient must be a principal")
	}
	tmpMemo, err := NewMemo(memo)
	if err != nil {
		return TokenTransferPayload{}, err
	}
	return TokenTransferPayload{
		Recipient: recipient,
		Amount:    amount,
		Memo:      tmpMemo,
	}, nil
}

func (TokenTransferPayload) Type() PayloadType { return PayloadTypeTokenTransfer }
func (TokenTransferPayload) isPayload()        {}

type SmartContractPayload struct {
	Name string
	Code string
}

func NewSmartContractPayload(name string, code string) (SmartContractPayload, error) {
	if err := clarity.ValidateContractName(name); err != nil {
		return SmartContractPayload{}, err
	}
	return SmartContractPayload{Name: name, Code: code}, nil
}

func (SmartContractPayload) Type() PayloadType { return PayloadTypeSmartContract }
func (SmartContractPayload) isPayload()        {}

// VersionedSmartContractPayload deploys a contract under an explicit Clarity version
type VersionedSmartContractPayload struct {
	ClarityVersion ClarityVersion
	Name           string
	Code           string
}

func NewVersionedSmartContractPayload(
	version ClarityVersion,
	name string,
	code string,
) (VersionedSmartContractPayload, error) {
	if !version.Valid() {
		return VersionedSmartContractPayload{}, fmt.Errorf("unsupported Clarity version %d", version)
	}
	if err := clarity.ValidateContractName(name); err != nil {
		return VersionedSmartContractPayload{}, err
	}
	return VersionedSmartContractPayload{
		ClarityVersion: version,
		Name:           name,
		Code:           code,
	}, nil
}

func (VersionedSmartContractPayload) Type() PayloadType {
	return PayloadTypeVersionedSmartContract
}
func (VersionedSmartContractPayload) isPayload() {}

type ContractCallPayload struct {
	Address      address.Address
	ContractName string
	FunctionName string
	Args         []clarity.Value
}

func NewContractCallPayload(
	addr address.Address,
	contractName string,
	functionName string,
	args []clarity.Value,
) (ContractCallPayload, error) {
	if err := clarity.ValidateContractName(contractName); err != nil {
		return ContractCallPayload{}, err
	}
	if err := clarity.ValidateClarityName(functionName); err != nil {
		return ContractCallPayload{}, err
	}
	return ContractCallPayload{
		Address:      addr,
		ContractName: contractName,
		FunctionName: functionName,
		Args:         append(make([]clarity.Value, 0, len(args)), args...),
	}, nil
}

func (ContractCallPayload) Type() PayloadType { return PayloadTypeContractCall }
func (ContractCallPayload) isPayload()        {}

func encodePayload(w *wire.Writer, payload Payload) error {
	if payload == nil {
		return errors.New("transaction has no payload")
	}
	_ = w.WriteByte(byte(payload.Type()))
	switch p := payload.(type) {
	case TokenTransferPayload:
		if err := clarity.EncodeTo(w, p.Recipient); err != nil {
			return fmt.Errorf("failed to encode recipient: %w", err)
		}
		w.WriteUint64(p.Amount)
		w.WriteBytes(p.Memo[:])
	case SmartContractPayload:
		return encodeContractBody(w, p.Name, p.Code)
	case VersionedSmartContractPayload:
		_ = w.WriteByte(byte(p.ClarityVersion))
		return encodeContractBody(w, p.Name, p.Code)
	case ContractCallPayload:
		encodeAddress(w, p.Address)
		if err := w.WriteShortString(p.ContractName); err != nil {
			return err
		}
		if err := w.WriteShortString(p.FunctionName); err != nil {
			return err
		}
		if uint64(len(p.Args)) > math.MaxUint32 {
			return fmt.Errorf("too many function arguments: %d", len(p.Args))
		}
		w.WriteUint32(uint32(len(p.Args))) // #nosec G115
		for idx, arg := range p.Args {
			if err := clarity.EncodeTo(w, arg); err != nil {
				return fmt.Errorf("failed to encode argument %d: %w", idx, err)
			}
		}
	default:
		return fmt.Errorf("unsupported payload type %T", payload)
	}
	return nil
}

func encodeContractBody(w *wire.Writer, name string, code string) error {
	if err := w.WriteShortString(name); err != nil {
		return err
	}
	return w.WriteLongBytes([]byte(code))
}

func decodePayload(r *wire.Reader) (Payload, error) {
	offset := r.Offset()
	payloadType, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch PayloadType(payloadType) {
	case PayloadTypeTokenTransfer:
		var ret TokenTransferPayload
		recipientOffset := r.Offset()
		if ret.Recipient, err = clarity.DecodeFrom(r); err != nil {
			return nil, err
		}
		switch ret.Recipient.(type) {
		case clarity.StandardPrincipal, clarity.ContractPrincipal:
		default:
			return nil, wire.MalformedValueError{
				Offset: recipientOffset,
				Reason: "token transfer recipient is not a principal",
			}
		}
		if ret.Amount, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if err := r.ReadInto(ret.Memo[:]); err != nil {
			return nil, err
		}
		return ret, nil
	case PayloadTypeSmartContract:
		var ret SmartContractPayload
		if ret.Name, ret.Code, err = decodeContractBody(r); err != nil {
			return nil, err
		}
		return ret, nil
	case PayloadTypeVersionedSmartContract:
		var ret VersionedSmartContractPayload
		versionOffset := r.Offset()
		version, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		ret.ClarityVersion = ClarityVersion(version)
		if !ret.ClarityVersion.Valid() {
			return nil, wire.UnsupportedVariantError{
				Offset: versionOffset,
				Field:  "clarity version",
				Tag:    uint64(version),
			}
		}
		if ret.Name, ret.Code, err = decodeContractBody(r); err != nil {
			return nil, err
		}
		return ret, nil
	case PayloadTypeContractCall:
		var ret ContractCallPayload
		if ret.Address, err = decodeAddress(r); err != nil {
			return nil, err
		}
		if ret.ContractName, err = decodeName(r, clarity.ValidateContractName); err != nil {
			return nil, err
		}
		if ret.FunctionName, err = decodeName(r, clarity.ValidateClarityName); err != nil {
			return nil, err
		}
		count, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if uint64(count) > uint64(r.Remaining()) {
			return nil, wire.TruncatedInputError{
				Offset:    r.Offset(),
				Needed:    int(count),
				Remaining: r.Remaining(),
			}
		}
		ret.Args = make([]clarity.Value, 0, count)
		for range count {
			arg, err := clarity.DecodeFrom(r)
			if err != nil {
				return nil, err
			}
			ret.Args = append(ret.Args, arg)
		}
		return ret, nil
	default:
		return nil, wire.UnsupportedVariantError{
			Offset: offset,
			Field:  "payload type",
			Tag:    uint64(payloadType),
		}
	}
}

func decodeContractBody(r *wire.Reader) (string, string, error) {
	name, err := decodeName(r, clarity.ValidateContractName)
	if err != nil {
		return "", "", err
	}
	code, err := r.ReadLongBytes()
	if err != nil {
		return "", "", err
	}
	return name, string(code), nil
}
