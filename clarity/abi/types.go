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

package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the shape of an ABI type
type Kind uint8

const (
	KindUInt128 Kind = iota + 1
	KindInt128
	KindBool
	KindPrincipal
	KindTraitReference
	KindNone
	KindBuffer
	KindStringASCII
	KindStringUTF8
	KindOptional
	KindResponse
	KindTuple
	KindList
)

var primitiveKinds = map[string]Kind{
	"uint128":         KindUInt128,
	"int128":          KindInt128,
	"bool":            KindBool,
	"principal":       KindPrincipal,
	"trait_reference": KindTraitReference,
	"none":            KindNone,
}

// Type is a declared Clarity type as published in a contract ABI
type Type struct {
	Kind Kind
	// Length is the declared maximum for buffers, strings, and lists
	Length uint32
	// Inner is the wrapped type of an optional or the item type of a list
	Inner *Type
	// Ok and Err are the two sides of a response
	Ok  *Type
	Err *Type
	// Fields are the declared entries of a tuple
	Fields []TupleEntry
}

// TupleEntry is a single named entry of a tuple type
type TupleEntry struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func Primitive(kind Kind) Type {
	return Type{Kind: kind}
}

func BufferType(length uint32) Type {
	return Type{Kind: KindBuffer, Length: length}
}

func StringASCIIType(length uint32) Type {
	return Type{Kind: KindStringASCII, Length: length}
}

func StringUTF8Type(length uint32) Type {
	return Type{Kind: KindStringUTF8, Length: length}
}

func OptionalType(inner Type) Type {
	return Type{Kind: KindOptional, Inner: &inner}
}

func ResponseType(ok Type, err Type) Type {
	return Type{Kind: KindResponse, Ok: &ok, Err: &err}
}

func ListType(item Type, length uint32) Type {
	return Type{Kind: KindList, Inner: &item, Length: length}
}

func TupleType(fields ...TupleEntry) Type {
	return Type{Kind: KindTuple, Fields: fields}
}

// String returns the Clarity signature of the type, for example "(list 10 uint)"
func (t Type) String() string {
	switch t.Kind {
	case KindUInt128:
		return "uint"
	case KindInt128:
		return "int"
	case KindBool:
		return "bool"
	case KindPrincipal:
		return "principal"
	case KindTraitReference:
		return "trait_reference"
	case KindNone:
		return "none"
	case KindBuffer:
		return fmt.Sprintf("(buff %d)", t.Length)
	case KindStringASCII:
		return fmt.Sprintf("(string-ascii %d)", t.Length)
	case KindStringUTF8:
		return fmt.Sprintf("(string-utf8 %d)", t.Length)
	case KindOptional:
		return fmt.Sprintf("(optional %s)", typeString(t.Inner))
	case KindResponse:
		return fmt.Sprintf("(response %s %s)", typeString(t.Ok), typeString(t.Err))
	case KindList:
		return fmt.Sprintf("(list %d %s)", t.Length, typeString(t.Inner))
	case KindTuple:
		var sb strings.Builder
		sb.WriteString("(tuple")
		for _, field := range t.Fields {
			fmt.Fprintf(&sb, " (%s %s)", field.Name, field.Type.String())
		}
		sb.WriteString(")")
		return sb.String()
	default:
		return fmt.Sprintf("unknown(%d)", t.Kind)
	}
}

func typeString(t *Type) string {
	if t == nil {
		return "UnknownType"
	}
	return t.String()
}

type lengthJSON struct {
	Length uint32 `json:"length"`
}

type responseJSON struct {
	Ok    Type `json:"ok"`
	Error Type `json:"error"`
}

type listJSON struct {
	Type   Type   `json:"type"`
	Length uint32 `json:"length"`
}

func (t *Type) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		kind, ok := primitiveKinds[name]
		if !ok {
			return fmt.Errorf("unknown ABI primitive type %q", name)
		}
		*t = Type{Kind: kind}
		return nil
	}
	var tmpData map[string]json.RawMessage
	if err := json.Unmarshal(data, &tmpData); err != nil {
		return err
	}
	if len(tmpData) != 1 {
		return fmt.Errorf("ABI type object must have exactly one key, found %d", len(tmpData))
	}
	for key, raw := range tmpData {
		switch key {
		case "buffer", "string-ascii", "string-utf8":
			var tmpLength lengthJSON
			if err := json.Unmarshal(raw, &tmpLength); err != nil {
				return fmt.Errorf("decode %s type: %w", key, err)
			}
			switch key {
			case "buffer":
				*t = BufferType(tmpLength.Length)
			case "string-ascii":
				*t = StringASCIIType(tmpLength.Length)
			default:
				*t = StringUTF8Type(tmpLength.Length)
			}
		case "optional":
			var inner Type
			if err := json.Unmarshal(raw, &inner); err != nil {
				return fmt.Errorf("decode optional type: %w", err)
			}
			*t = OptionalType(inner)
		case "response":
			var tmpResponse responseJSON
			if err := json.Unmarshal(raw, &tmpResponse); err != nil {
				return fmt.Errorf("decode response type: %w", err)
			}
			*t = ResponseType(tmpResponse.Ok, tmpResponse.Error)
		case "tuple":
			var fields []TupleEntry
			if err := json.Unmarshal(raw, &fields); err != nil {
				return fmt.Errorf("decode tuple type: %w", err)
			}
			*t = TupleType(fields...)
		case "list":
			var tmpList listJSON
			if err := json.Unmarshal(raw, &tmpList); err != nil {
				return fmt.Errorf("decode list type: %w", err)
			}
			*t = ListType(tmpList.Type, tmpList.Length)
		default:
			return fmt.Errorf("unknown ABI type key %q", key)
		}
	}
	return nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	for name, kind := range primitiveKinds {
		if kind == t.Kind {
			return json.Marshal(name)
		}
	}
	switch t.Kind {
	case KindBuffer:
		return json.Marshal(map[string]lengthJSON{"buffer": {Length: t.Length}})
	case KindStringASCII:
		return json.Marshal(map[string]lengthJSON{"string-ascii": {Length: t.Length}})
	case KindStringUTF8:
		return json.Marshal(map[string]lengthJSON{"string-utf8": {Length: t.Length}})
	case KindOptional:
		if t.Inner == nil {
			return nil, errors.New("optional type has no inner type")
		}
		return json.Marshal(map[string]Type{"optional": *t.Inner})
	case KindResponse:
		if t.Ok == nil || t.Err == nil {
			return nil, errors.New("response type is missing a side")
		}
		return json.Marshal(
			map[string]responseJSON{"response": {Ok: *t.Ok, Error: *t.Err}},
		)
	case KindTuple:
		fields := t.Fields
		if fields == nil {
			fields = []TupleEntry{}
		}
		return json.Marshal(map[string][]TupleEntry{"tuple": fields})
	case KindList:
		if t.Inner == nil {
			return nil, errors.New("list type has no item type")
		}
		return json.Marshal(
			map[string]listJSON{"list": {Type: *t.Inner, Length: t.Length}},
		)
	default:
		return nil, fmt.Errorf("cannot marshal ABI type of kind %d", t.Kind)
	}
}
