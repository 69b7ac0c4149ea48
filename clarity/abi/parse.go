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
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/blinklabs-io/gostacks/clarity"
)

// ParseValue builds a value of the declared type from its plain string form, as typed
// on a command line. Only primitive, buffer, and string types are supported
func ParseValue(input string, t Type) (clarity.Value, error) {
	switch t.Kind {
	case KindUInt128:
		tmp, ok := new(big.Int).SetString(input, 10)
		if !ok {
			return nil, fmt.Errorf("invalid uint value %q", input)
		}
		return clarity.NewUInt(tmp)
	case KindInt128:
		tmp, ok := new(big.Int).SetString(input, 10)
		if !ok {
			return nil, fmt.Errorf("invalid int value %q", input)
		}
		return clarity.NewInt(tmp)
	case KindBool:
		switch strings.ToLower(input) {
		case "true":
			return clarity.True, nil
		case "false":
			return clarity.False, nil
		default:
			return nil, fmt.Errorf("invalid bool value %q", input)
		}
	case KindPrincipal, KindTraitReference:
		return clarity.ParsePrincipal(input)
	case KindBuffer:
		if uint64(len(input)) > uint64(t.Length) {
			return nil, fmt.Errorf(
				"input of %d bytes exceeds buffer length limit of %d",
				len(input),
				t.Length,
			)
		}
		return clarity.NewBuffer([]byte(input)), nil
	case KindStringASCII:
		if uint64(len(input)) > uint64(t.Length) {
			return nil, fmt.Errorf(
				"input of %d characters exceeds string length limit of %d",
				len(input),
				t.Length,
			)
		}
		return clarity.NewStringASCII(input)
	case KindStringUTF8:
		if uint64(utf8.RuneCountInString(input)) > uint64(t.Length) {
			return nil, fmt.Errorf(
				"input of %d characters exceeds string length limit of %d",
				utf8.RuneCountInString(input),
				t.Length,
			)
		}
		return clarity.NewStringUTF8(input)
	default:
		return nil, UnsupportedAbiEncodingError{Type: t.String()}
	}
}

// ParseArgs parses one string per declared function argument
func ParseArgs(inputs []string, fn Function) ([]clarity.Value, error) {
	if len(inputs) != len(fn.Args) {
		return nil, ArgumentCountMismatchError{
			Function: fn.Name,
			Expected: len(fn.Args),
			Actual:   len(inputs),
		}
	}
	ret := make([]clarity.Value, 0, len(inputs))
	for idx, input := range inputs {
		v, err := ParseValue(input, fn.Args[idx].Type)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", idx, fn.Args[idx].Name, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}
