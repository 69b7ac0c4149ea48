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
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/wire"
)

// AssetKind identifies which asset a post-condition constrains
type AssetKind uint8

const (
	AssetKindStx         AssetKind = 0x00
	AssetKindFungible    AssetKind = 0x01
	AssetKindNonFungible AssetKind = 0x02
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindStx:
		return "stx"
	case AssetKindFungible:
		return "fungible"
	case AssetKindNonFungible:
		return "non-fungible"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(k))
	}
}

// FungibleConditionCode compares the amount transferred against the condition amount
type FungibleConditionCode uint8

const (
	FungibleConditionEqual        FungibleConditionCode = 0x01
	FungibleConditionGreater      FungibleConditionCode = 0x02
	FungibleConditionGreaterEqual FungibleConditionCode = 0x03
	FungibleConditionLess         FungibleConditionCode = 0x04
	FungibleConditionLessEqual    FungibleConditionCode = 0x05
)

func (c FungibleConditionCode) Valid() bool {
	return c >= FungibleConditionEqual && c <= FungibleConditionLessEqual
}

func (c FungibleConditionCode) String() string {
	switch c {
	case FungibleConditionEqual:
		return "eq"
	case FungibleConditionGreater:
		return "gt"
	case FungibleConditionGreaterEqual:
		return "gte"
	case FungibleConditionLess:
		return "lt"
	case FungibleConditionLessEqual:
		return "lte"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(c))
	}
}

// NonFungibleConditionCode states whether the principal gives up the asset
type NonFungibleConditionCode uint8

const (
	NonFungibleConditionSends       NonFungibleConditionCode = 0x10
	NonFungibleConditionDoesNotSend NonFungibleConditionCode = 0x11

	NonFungibleConditionDoesNotOwn = NonFungibleConditionSends
	NonFungibleConditionOwns       = NonFungibleConditionDoesNotSend
)

func (c NonFungibleConditionCode) Valid() bool {
	return c == NonFungibleConditionSends || c == NonFungibleConditionDoesNotSend
}

func (c NonFungibleConditionCode) String() string {
	switch c {
	case NonFungibleConditionSends:
		return "sent"
	case NonFungibleConditionDoesNotSend:
		return "not-sent"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(c))
	}
}

// PrincipalType identifies the form of a post-condition principal
type PrincipalType uint8

const (
	PrincipalTypeOrigin   PrincipalType = 0x01
	PrincipalTypeStandard PrincipalType = 0x02
	PrincipalTypeContract PrincipalType = 0x03
)

// PostConditionPrincipal is the party whose asset movement is constrained. The origin
// form refers to the transaction's origin without naming it
type PostConditionPrincipal struct {
	Type         PrincipalType
	Address      address.Address
	ContractName string
}

func OriginPrincipal() PostConditionPrincipal {
	return PostConditionPrincipal{Type: PrincipalTypeOrigin}
}

func StandardPrincipal(addr address.Address) PostConditionPrincipal {
	return PostConditionPrincipal{Type: PrincipalTypeStandard, Address: addr}
}

func ContractPrincipal(addr address.Address, contractName string) (PostConditionPrincipal, error) {
	if err := clarity.ValidateContractName(contractName); err != nil {
		return PostConditionPrincipal{}, err
	}
	return PostConditionPrincipal{
		Type:         PrincipalTypeContract,
		Address:      addr,
		ContractName: contractName,
	}, nil
}

// ParsePostConditionPrincipal parses "origin", an address, or a contract identifier
func ParsePostConditionPrincipal(principal string) (PostConditionPrincipal, error) {
	if principal == "origin" {
		return OriginPrincipal(), nil
	}
	if strings.Contains(principal, ".") {
		addr, name, err := address.ParseContractId(principal)
		if err != nil {
			return PostConditionPrincipal{}, err
		}
		return ContractPrincipal(addr, name)
	}
	addr, err := address.ParseAddress(principal)
	if err != nil {
		return PostConditionPrincipal{}, err
	}
	return StandardPrincipal(addr), nil
}

func (p PostConditionPrincipal) String() string {
	switch p.Type {
	case PrincipalTypeOrigin:
		return "origin"
	case PrincipalTypeStandard:
		return p.Address.String()
	case PrincipalTypeContract:
		return p.Address.String() + "." + p.ContractName
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(p.Type))
	}
}

// AssetInfo identifies a fungible or non-fungible asset by its defining contract and name
type AssetInfo struct {
	Address      address.Address
	ContractName string
	AssetName    string
}

func NewAssetInfo(addr address.Address, contractName string, assetName string) (AssetInfo, error) {
	if err := clarity.ValidateContractName(contractName); err != nil {
		return AssetInfo{}, err
	}
	if err := clarity.ValidateClarityName(assetName); err != nil {
		return AssetInfo{}, err
	}
	return AssetInfo{
		Address:      addr,
		ContractName: contractName,
		AssetName:    assetName,
	}, nil
}

// ParseAssetInfo parses an asset identifier of the form ADDRESS.contract::asset
func ParseAssetInfo(assetId string) (AssetInfo, error) {
	contractId, assetName, ok := strings.Cut(assetId, "::")
	if !ok {
		return AssetInfo{}, fmt.Errorf("invalid asset identifier %q", assetId)
	}
	addr, contractName, err := address.ParseContractId(contractId)
	if err != nil {
		return AssetInfo{}, err
	}
	return NewAssetInfo(addr, contractName, assetName)
}

func (a AssetInfo) String() string {
	return a.Address.String() + "." + a.ContractName + "::" + a.AssetName
}

// PostCondition is one of StxPostCondition, FungiblePostCondition, or NonFungiblePostCondition
type PostCondition interface {
	AssetKind() AssetKind
	isPostCondition()
}

type StxPostCondition struct {
	Principal PostConditionPrincipal
	Code      FungibleConditionCode
	Amount    uint64
}

func NewStxPostCondition(
	principal PostConditionPrincipal,
	code FungibleConditionCode,
	amount uint64,
) (StxPostCondition, error) {
	if !code.Valid() {
		return StxPostCondition{}, InvalidConditionCodeError{
			AssetKind: AssetKindStx,
			Code:      uint8(code),
		}
	}
	return StxPostCondition{Principal: principal, Code: code, Amount: amount}, nil
}

func (StxPostCondition) AssetKind() AssetKind { return AssetKindStx }
func (StxPostCondition) isPostCondition()     {}

type FungiblePostCondition struct {
	Principal PostConditionPrincipal
	Asset     AssetInfo
	Code      FungibleConditionCode
	Amount    uint64
}

func NewFungiblePostCondition(
	principal PostConditionPrincipal,
	asset AssetInfo,
	code FungibleConditionCode,
	amount uint64,
) (FungiblePostCondition, error) {
	if !code.Valid() {
		return FungiblePostCondition{}, InvalidConditionCodeError{
			AssetKind: AssetKindFungible,
			Code:      uint8(code),
		}
	}
	return FungiblePostCondition{
		Principal: principal,
		Asset:     asset,
		Code:      code,
		Amount:    amount,
	}, nil
}

func (FungiblePostCondition) AssetKind() AssetKind { return AssetKindFungible }
func (FungiblePostCondition) isPostCondition()     {}

type NonFungiblePostCondition struct {
	Principal PostConditionPrincipal
	Asset     AssetInfo
	AssetName clarity.Value
	Code      NonFungibleConditionCode
}

func NewNonFungiblePostCondition(
	principal PostConditionPrincipal,
	asset AssetInfo,
	assetName clarity.Value,
	code NonFungibleConditionCode,
) (NonFungiblePostCondition, error) {
	if !code.Valid() {
		return NonFungiblePostCondition{}, InvalidConditionCodeError{
			AssetKind: AssetKindNonFungible,
			Code:      uint8(code),
		}
	}
	if assetName == nil {
		return NonFungiblePostCondition{}, errors.New("non-fungible post-condition requires an asset name value")
	}
	return NonFungiblePostCondition{
		Principal: principal,
		Asset:     asset,
		AssetName: assetName,
		Code:      code,
	}, nil
}

func (NonFungiblePostCondition) AssetKind() AssetKind { return AssetKindNonFungible }
func (NonFungiblePostCondition) isPostCondition()     {}

// AmountFromBigInt converts an arbitrary precision amount to the 64-bit wire amount
func AmountFromBigInt(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() < 0 || !amount.IsUint64() {
		tmp := "<nil>"
		if amount != nil {
			tmp = amount.String()
		}
		return 0, AmountOutOfRangeError{Amount: tmp}
	}
	return amount.Uint64(), nil
}

// AmountFromString parses a decimal amount into the 64-bit wire amount
func AmountFromString(amount string) (uint64, error) {
	tmp, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	return AmountFromBigInt(tmp)
}

func encodePostConditionPrincipal(w *wire.Writer, p PostConditionPrincipal) error {
	_ = w.WriteByte(byte(p.Type))
	switch p.Type {
	case PrincipalTypeOrigin:
	case PrincipalTypeStandard:
		encodeAddress(w, p.Address)
	case PrincipalTypeContract:
		encodeAddress(w, p.Address)
		if err := w.WriteShortString(p.ContractName); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown post-condition principal type 0x%02x", uint8(p.Type))
	}
	return nil
}

func encodeAssetInfo(w *wire.Writer, asset AssetInfo) error {
	encodeAddress(w, asset.Address)
	if err := w.WriteShortString(asset.ContractName); err != nil {
		return err
	}
	return w.WriteShortString(asset.AssetName)
}

func encodePostCondition(w *wire.Writer, pc PostCondition) error {
	if pc == nil {
		return errors.New("nil post-condition")
	}
	_ = w.WriteByte(byte(pc.AssetKind()))
	switch c := pc.(type) {
	case StxPostCondition:
		if err := encodePostConditionPrincipal(w, c.Principal); err != nil {
			return err
		}
		_ = w.WriteByte(byte(c.Code))
		w.WriteUint64(c.Amount)
	case FungiblePostCondition:
		if err := encodePostConditionPrincipal(w, c.Principal); err != nil {
			return err
		}
		if err := encodeAssetInfo(w, c.Asset); err != nil {
			return err
		}
		_ = w.WriteByte(byte(c.Code))
		w.WriteUint64(c.Amount)
	case NonFungiblePostCondition:
		if err := encodePostConditionPrincipal(w, c.Principal); err != nil {
			return err
		}
		if err := encodeAssetInfo(w, c.Asset); err != nil {
			return err
		}
		if err := clarity.EncodeTo(w, c.AssetName); err != nil {
			return fmt.Errorf("failed to encode asset name: %w", err)
		}
		_ = w.WriteByte(byte(c.Code))
	default:
		return fmt.Errorf("unsupported post-condition type %T", pc)
	}
	return nil
}

// EncodePostCondition returns the wire encoding of a single post-condition
func EncodePostCondition(pc PostCondition) ([]byte, error) {
	w := wire.NewWriter()
	if err := encodePostCondition(w, pc); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decodePostConditionPrincipal(r *wire.Reader) (PostConditionPrincipal, error) {
	offset := r.Offset()
	principalType, err := r.ReadByte()
	if err != nil {
		return PostConditionPrincipal{}, err
	}
	ret := PostConditionPrincipal{Type: PrincipalType(principalType)}
	switch ret.Type {
	case PrincipalTypeOrigin:
	case PrincipalTypeStandard:
		if ret.Address, err = decodeAddress(r); err != nil {
			return PostConditionPrincipal{}, err
		}
	case PrincipalTypeContract:
		if ret.Address, err = decodeAddress(r); err != nil {
			return PostConditionPrincipal{}, err
		}
		if ret.ContractName, err = decodeName(r, clarity.ValidateContractName); err != nil {
			return PostConditionPrincipal{}, err
		}
	default:
		return PostConditionPrincipal{}, wire.UnsupportedVariantError{
			Offset: offset,
			Field:  "post-condition principal type",
			Tag:    uint64(principalType),
		}
	}
	return ret, nil
}

func decodeAssetInfo(r *wire.Reader) (AssetInfo, error) {
	var ret AssetInfo
	var err error
	if ret.Address, err = decodeAddress(r); err != nil {
		return AssetInfo{}, err
	}
	if ret.ContractName, err = decodeName(r, clarity.ValidateContractName); err != nil {
		return AssetInfo{}, err
	}
	if ret.AssetName, err = decodeName(r, clarity.ValidateClarityName); err != nil {
		return AssetInfo{}, err
	}
	return ret, nil
}

func decodeFungibleCode(r *wire.Reader, kind AssetKind) (FungibleConditionCode, error) {
	offset := r.Offset()
	code, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	ret := FungibleConditionCode(code)
	if !ret.Valid() {
		return 0, wire.UnsupportedVariantError{
			Offset: offset,
			Field:  kind.String() + " condition code",
			Tag:    uint64(code),
		}
	}
	return ret, nil
}

func decodePostCondition(r *wire.Reader) (PostCondition, error) {
	offset := r.Offset()
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch AssetKind(kind) {
	case AssetKindStx:
		var ret StxPostCondition
		if ret.Principal, err = decodePostConditionPrincipal(r); err != nil {
			return nil, err
		}
		if ret.Code, err = decodeFungibleCode(r, AssetKindStx); err != nil {
			return nil, err
		}
		if ret.Amount, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		return ret, nil
	case AssetKindFungible:
		var ret FungiblePostCondition
		if ret.Principal, err = decodePostConditionPrincipal(r); err != nil {
			return nil, err
		}
		if ret.Asset, err = decodeAssetInfo(r); err != nil {
			return nil, err
		}
		if ret.Code, err = decodeFungibleCode(r, AssetKindFungible); err != nil {
			return nil, err
		}
		if ret.Amount, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		return ret, nil
	case AssetKindNonFungible:
		var ret NonFungiblePostCondition
		if ret.Principal, err = decodePostConditionPrincipal(r); err != nil {
			return nil, err
		}
		if ret.Asset, err = decodeAssetInfo(r); err != nil {
			return nil, err
		}
		if ret.AssetName, err = clarity.DecodeFrom(r); err != nil {
			return nil, err
		}
		codeOffset := r.Offset()
		code, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		ret.Code = NonFungibleConditionCode(code)
		if !ret.Code.Valid() {
			return nil, wire.UnsupportedVariantError{
				Offset: codeOffset,
				Field:  "non-fungible condition code",
				Tag:    uint64(code),
			}
		}
		return ret, nil
	default:
		return nil, wire.UnsupportedVariantError{
			Offset: offset,
			Field:  "post-condition asset kind",
			Tag:    uint64(kind),
		}
	}
}
