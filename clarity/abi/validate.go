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
	"unicode/utf8"

	"github.com/blinklabs-io/gostacks/clarity"
)

// MatchType reports whether a value conforms to a declared type.
//
// Buffers and lists must have exactly the declared length, strings may be shorter.
// Tuples only need the declared fields: extra fields on the value are ignored
func MatchType(v clarity.Value, t Type) bool {
	switch val := v.(type) {
	case clarity.Int:
		return t.Kind == KindInt128
	case clarity.UInt:
		return t.Kind == KindUInt128
	case clarity.Bool:
		return t.Kind == KindBool
	case clarity.StandardPrincipal:
		return t.Kind == KindPrincipal
	case clarity.ContractPrincipal:
		return t.Kind == KindPrincipal || t.Kind == KindTraitReference
	case clarity.Buffer:
		return t.Kind == KindBuffer && uint64(len(val.Data)) == uint64(t.Length)
	case clarity.StringASCII:
		return t.Kind == KindStringASCII && uint64(len(val.Data)) <= uint64(t.Length)
	case clarity.StringUTF8:
		return t.Kind == KindStringUTF8 &&
			uint64(utf8.RuneCountInString(val.Data)) <= uint64(t.Length)
	case clarity.OptionalNone:
		return t.Kind == KindNone || t.Kind == KindOptional
	case clarity.OptionalSome:
		return t.Kind == KindOptional && t.Inner != nil && MatchType(val.Value, *t.Inner)
	case clarity.ResponseOk:
		return t.Kind == KindResponse && t.Ok != nil && MatchType(val.Value, *t.Ok)
	case clarity.ResponseErr:
		return t.Kind == KindResponse && t.Err != nil && MatchType(val.Value, *t.Err)
	case clarity.List:
		if t.Kind != KindList || t.Inner == nil {
			return false
		}
		if uint64(len(val.Items)) != uint64(t.Length) {
			return false
		}
		for _, item := range val.Items {
			if !MatchType(item, *t.Inner) {
				return false
			}
		}
		return true
	case clarity.Tuple:
		if t.Kind != KindTuple {
			return false
		}
		for _, field := range t.Fields {
			fieldVal, ok := val.Get(field.Name)
			if !ok || !MatchType(fieldVal, field.Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ValidateCall checks arguments against a function signature, stopping at the first
// argument that does not match
func ValidateCall(args []clarity.Value, fn Function) error {
	if len(args) != len(fn.Args) {
		return ArgumentCountMismatchError{
			Function: fn.Name,
			Expected: len(fn.Args),
			Actual:   len(args),
		}
	}
	for idx, arg := range args {
		declared := fn.Args[idx]
		if !MatchType(arg, declared.Type) {
			return ArgumentTypeMismatchError{
				Function: fn.Name,
				Index:    idx,
				Name:     declared.Name,
				Expected: declared.Type.String(),
				Actual:   clarity.TypeString(arg),
			}
		}
	}
	return nil
}

// ValidateContractCall resolves the named function in the ABI and validates the arguments against it
func ValidateContractCall(contractAbi Abi, functionName string, args []clarity.Value) error {
	fn, err := ResolveFunction(contractAbi, functionName)
	if err != nil {
		return err
	}
	return ValidateCall(args, fn)
}
