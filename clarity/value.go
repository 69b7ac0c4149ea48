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

package clarity

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/blinklabs-io/gostacks/address"
)

// ValueType is the one-byte type tag that prefixes every encoded value
type ValueType uint8

const (
	TypeInt               ValueType = 0x00
	TypeUInt              ValueType = 0x01
	TypeBuffer            ValueType = 0x02
	TypeBoolTrue          ValueType = 0x03
	TypeBoolFalse         ValueType = 0x04
	TypePrincipalStandard ValueType = 0x05
	TypePrincipalContract ValueType = 0x06
	TypeResponseOk        ValueType = 0x07
	TypeResponseErr       ValueType = 0x08
	TypeOptionalNone      ValueType = 0x09
	TypeOptionalSome      ValueType = 0x0a
	TypeList              ValueType = 0x0b
	TypeTuple             ValueType = 0x0c
	TypeStringASCII       ValueType = 0x0d
	TypeStringUTF8        ValueType = 0x0e
)

const intSize = 16

var (
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxUInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	twoTo128   = new(big.Int).Lsh(big.NewInt(1), 128)
)

func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeBuffer:
		return "buffer"
	case TypeBoolTrue:
		return "true"
	case TypeBoolFalse:
		return "false"
	case TypePrincipalStandard:
		return "standard-principal"
	case TypePrincipalContract:
		return "contract-principal"
	case TypeResponseOk:
		return "response-ok"
	case TypeResponseErr:
		return "response-err"
	case TypeOptionalNone:
		return "none"
	case TypeOptionalSome:
		return "some"
	case TypeList:
		return "list"
	case TypeTuple:
		return "tuple"
	case TypeStringASCII:
		return "string-ascii"
	case TypeStringUTF8:
		return "string-utf8"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(t))
	}
}

// Value is a Clarity value. The set of implementations is closed and matches the ValueType tags
type Value interface {
	Type() ValueType
	isValue()
}

// Int is a signed 128-bit integer
type Int struct {
	raw [intSize]byte
}

// NewInt returns an Int, or an error if v does not fit in 128 bits
func NewInt(v *big.Int) (Int, error) {
	if v == nil || v.Cmp(minInt128) < 0 || v.Cmp(maxInt128) > 0 {
		return Int{}, IntegerOutOfRangeError{Value: bigString(v), Signed: true}
	}
	tmp := new(big.Int).Set(v)
	if tmp.Sign() < 0 {
		tmp.Add(tmp, twoTo128)
	}
	var ret Int
	tmp.FillBytes(ret.raw[:])
	return ret, nil
}

// NewIntFromInt64 returns an Int from an int64, which always fits
func NewIntFromInt64(v int64) Int {
	ret, _ := NewInt(big.NewInt(v))
	return ret
}

func (Int) Type() ValueType { return TypeInt }
func (Int) isValue()        {}

// BigInt returns the integer value
func (i Int) BigInt() *big.Int {
	ret := new(big.Int).SetBytes(i.raw[:])
	if i.raw[0]&0x80 != 0 {
		ret.Sub(ret, twoTo128)
	}
	return ret
}

// UInt is an unsigned 128-bit integer
type UInt struct {
	raw [intSize]byte
}

// NewUInt returns a UInt, or an error if v is negative or does not fit in 128 bits
func NewUInt(v *big.Int) (UInt, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxUInt128) > 0 {
		return UInt{}, IntegerOutOfRangeError{Value: bigString(v)}
	}
	var ret UInt
	v.FillBytes(ret.raw[:])
	return ret, nil
}

// NewUIntFromUint64 returns a UInt from a uint64, which always fits
func NewUIntFromUint64(v uint64) UInt {
	ret, _ := NewUInt(new(big.Int).SetUint64(v))
	return ret
}

func (UInt) Type() ValueType { return TypeUInt }
func (UInt) isValue()        {}

// BigInt returns the integer value
func (u UInt) BigInt() *big.Int {
	return new(big.Int).SetBytes(u.raw[:])
}

// Bool is a boolean. It has two type tags, one per value
type Bool bool

const (
	True  = Bool(true)
	False = Bool(false)
)

func (b Bool) Type() ValueType {
	if b {
		return TypeBoolTrue
	}
	return TypeBoolFalse
}
func (Bool) isValue() {}

// Buffer is an opaque byte string
type Buffer struct {
	Data []byte
}

// NewBuffer returns a Buffer holding a copy of data
func NewBuffer(data []byte) Buffer {
	return Buffer{Data: append([]byte{}, data...)}
}

func (Buffer) Type() ValueType { return TypeBuffer }
func (Buffer) isValue()        {}

// OptionalNone is the empty optional
type OptionalNone struct{}

func (OptionalNone) Type() ValueType { return TypeOptionalNone }
func (OptionalNone) isValue()        {}

// OptionalSome is an optional holding a value
type OptionalSome struct {
	Value Value
}

func NewSome(v Value) OptionalSome {
	return OptionalSome{Value: v}
}

func (OptionalSome) Type() ValueType { return TypeOptionalSome }
func (OptionalSome) isValue()        {}

// ResponseOk is a successful response
type ResponseOk struct {
	Value Value
}

func NewOk(v Value) ResponseOk {
	return ResponseOk{Value: v}
}

func (ResponseOk) Type() ValueType { return TypeResponseOk }
func (ResponseOk) isValue()        {}

// ResponseErr is an error response
type ResponseErr struct {
	Value Value
}

func NewErr(v Value) ResponseErr {
	return ResponseErr{Value: v}
}

func (ResponseErr) Type() ValueType { return TypeResponseErr }
func (ResponseErr) isValue()        {}

// StandardPrincipal identifies an account
type StandardPrincipal struct {
	Address address.Address
}

func NewStandardPrincipal(addr address.Address) StandardPrincipal {
	return StandardPrincipal{Address: addr}
}

func (StandardPrincipal) Type() ValueType { return TypePrincipalStandard }
func (StandardPrincipal) isValue()        {}

// ContractPrincipal identifies a deployed contract
type ContractPrincipal struct {
	Address address.Address
	Name    string
}

// NewContractPrincipal returns a ContractPrincipal after validating the contract name
func NewContractPrincipal(addr address.Address, name string) (ContractPrincipal, error) {
	if err := ValidateContractName(name); err != nil {
		return ContractPrincipal{}, err
	}
	return ContractPrincipal{Address: addr, Name: name}, nil
}

func (ContractPrincipal) Type() ValueType { return TypePrincipalContract }
func (ContractPrincipal) isValue()        {}

// ParsePrincipal parses a standard (ADDRESS) or contract (ADDRESS.name) principal
func ParsePrincipal(principal string) (Value, error) {
	if strings.Contains(principal, ".") {
		addr, name, err := address.ParseContractId(principal)
		if err != nil {
			return nil, err
		}
		return NewContractPrincipal(addr, name)
	}
	addr, err := address.ParseAddress(principal)
	if err != nil {
		return nil, err
	}
	return NewStandardPrincipal(addr), nil
}

// PrincipalString returns the address or contract identifier of a principal value
func PrincipalString(v Value) (string, error) {
	switch p := v.(type) {
	case StandardPrincipal:
		return p.Address.String(), nil
	case ContractPrincipal:
		return p.Address.String() + "." + p.Name, nil
	default:
		return "", fmt.Errorf("value of type %s is not a principal", v.Type())
	}
}

// List is an ordered sequence of values. Callers are responsible for keeping the items
// of a single type, the encoding does not enforce it
type List struct {
	Items []Value
}

func NewList(items ...Value) List {
	return List{Items: append(make([]Value, 0, len(items)), items...)}
}

func (List) Type() ValueType { return TypeList }
func (List) isValue()        {}

// TupleField is a single named entry of a Tuple
type TupleField struct {
	Name  string
	Value Value
}

// Tuple is an ordered set of uniquely named values. Fields keep their construction order
type Tuple struct {
	Fields []TupleField
}

// NewTuple returns a Tuple after validating that field names are well-formed and unique
func NewTuple(fields ...TupleField) (Tuple, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if err := ValidateClarityName(field.Name); err != nil {
			return Tuple{}, err
		}
		if _, ok := seen[field.Name]; ok {
			return Tuple{}, DuplicateTupleFieldError{Name: field.Name}
		}
		seen[field.Name] = struct{}{}
	}
	return Tuple{
		Fields: append(make([]TupleField, 0, len(fields)), fields...),
	}, nil
}

func (Tuple) Type() ValueType { return TypeTuple }
func (Tuple) isValue()        {}

// Get returns the value of the named field
func (t Tuple) Get(name string) (Value, bool) {
	for _, field := range t.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// StringASCII is an ASCII string
type StringASCII struct {
	Data string
}

// NewStringASCII returns a StringASCII, or an error if s contains non-ASCII bytes
func NewStringASCII(s string) (StringASCII, error) {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return StringASCII{}, fmt.Errorf(
				"invalid ASCII string: non-ASCII byte 0x%02x at index %d",
				s[i],
				i,
			)
		}
	}
	return StringASCII{Data: s}, nil
}

func (StringASCII) Type() ValueType { return TypeStringASCII }
func (StringASCII) isValue()        {}

// StringUTF8 is a UTF-8 string
type StringUTF8 struct {
	Data string
}

// NewStringUTF8 returns a StringUTF8, or an error if s is not valid UTF-8
func NewStringUTF8(s string) (StringUTF8, error) {
	if !utf8.ValidString(s) {
		return StringUTF8{}, fmt.Errorf("invalid UTF-8 string: %q", s)
	}
	return StringUTF8{Data: s}, nil
}

func (StringUTF8) Type() ValueType { return TypeStringUTF8 }
func (StringUTF8) isValue()        {}

func bigString(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
