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
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// UnknownType stands in for a type that cannot be inferred from a value, such as the
// error side of an ok response or the item type of an empty list
const UnknownType = "UnknownType"

// TypeString returns the Clarity type signature inferred from a value, for example
// "(list 2 uint)" or "(tuple (a int) (b (buff 3)))"
func TypeString(v Value) string {
	switch val := v.(type) {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Bool:
		return "bool"
	case Buffer:
		return fmt.Sprintf("(buff %d)", len(val.Data))
	case OptionalNone:
		return "(optional none)"
	case OptionalSome:
		return fmt.Sprintf("(optional %s)", TypeString(val.Value))
	case ResponseOk:
		return fmt.Sprintf("(response %s %s)", TypeString(val.Value), UnknownType)
	case ResponseErr:
		return fmt.Sprintf("(response %s %s)", UnknownType, TypeString(val.Value))
	case StandardPrincipal, ContractPrincipal:
		return "principal"
	case List:
		itemType := UnknownType
		if len(val.Items) > 0 {
			itemType = TypeString(val.Items[0])
		}
		return fmt.Sprintf("(list %d %s)", len(val.Items), itemType)
	case Tuple:
		var sb strings.Builder
		sb.WriteString("(tuple")
		for _, field := range val.Fields {
			fmt.Fprintf(&sb, " (%s %s)", field.Name, TypeString(field.Value))
		}
		sb.WriteString(")")
		return sb.String()
	case StringASCII:
		return fmt.Sprintf("(string-ascii %d)", len(val.Data))
	case StringUTF8:
		return fmt.Sprintf("(string-utf8 %d)", utf8.RuneCountInString(val.Data))
	default:
		return UnknownType
	}
}

// String renders a value in Clarity literal syntax, for example "(some u10)"
func String(v Value) string {
	switch val := v.(type) {
	case Int:
		return val.BigInt().String()
	case UInt:
		return "u" + val.BigInt().String()
	case Bool:
		return strconv.FormatBool(bool(val))
	case Buffer:
		return "0x" + hex.EncodeToString(val.Data)
	case OptionalNone:
		return "none"
	case OptionalSome:
		return "(some " + String(val.Value) + ")"
	case ResponseOk:
		return "(ok " + String(val.Value) + ")"
	case ResponseErr:
		return "(err " + String(val.Value) + ")"
	case StandardPrincipal:
		return val.Address.String()
	case ContractPrincipal:
		return val.Address.String() + "." + val.Name
	case List:
		parts := make([]string, 0, len(val.Items)+1)
		parts = append(parts, "list")
		for _, item := range val.Items {
			parts = append(parts, String(item))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case Tuple:
		var sb strings.Builder
		sb.WriteString("(tuple")
		for _, field := range val.Fields {
			fmt.Fprintf(&sb, " (%s %s)", field.Name, String(field.Value))
		}
		sb.WriteString(")")
		return sb.String()
	case StringASCII:
		return strconv.Quote(val.Data)
	case StringUTF8:
		return "u" + strconv.Quote(val.Data)
	default:
		return "<invalid>"
	}
}
