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
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/wire"
)

// Encode returns the canonical binary encoding of a value
func Encode(v Value) ([]byte, error) {
	w := wire.NewWriter()
	if err := EncodeTo(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeTo appends the canonical binary encoding of a value to w
func EncodeTo(w *wire.Writer, v Value) error {
	if v == nil {
		return errors.New("cannot encode nil clarity value")
	}
	_ = w.WriteByte(byte(v.Type()))
	switch val := v.(type) {
	case Int:
		w.WriteBytes(val.raw[:])
	case UInt:
		w.WriteBytes(val.raw[:])
	case Bool, OptionalNone:
		// Type tag only
	case Buffer:
		if err := w.WriteLongBytes(val.Data); err != nil {
			return fmt.Errorf("failed to encode buffer: %w", err)
		}
	case OptionalSome:
		return EncodeTo(w, val.Value)
	case ResponseOk:
		return EncodeTo(w, val.Value)
	case ResponseErr:
		return EncodeTo(w, val.Value)
	case StandardPrincipal:
		return encodeAddress(w, val.Address)
	case ContractPrincipal:
		if err := encodeAddress(w, val.Address); err != nil {
			return err
		}
		if err := ValidateContractName(val.Name); err != nil {
			return err
		}
		if err := w.WriteShortString(val.Name); err != nil {
			return fmt.Errorf("failed to encode contract name: %w", err)
		}
	case List:
		if uint64(len(val.Items)) > math.MaxUint32 {
			return fmt.Errorf("list length %d too large", len(val.Items))
		}
		w.WriteUint32(uint32(len(val.Items))) // #nosec G115
		for idx, item := range val.Items {
			if err := EncodeTo(w, item); err != nil {
				return fmt.Errorf("failed to encode list item %d: %w", idx, err)
			}
		}
	case Tuple:
		if uint64(len(val.Fields)) > math.MaxUint32 {
			return fmt.Errorf("tuple size %d too large", len(val.Fields))
		}
		w.WriteUint32(uint32(len(val.Fields))) // #nosec G115
		seen := make(map[string]struct{}, len(val.Fields))
		for _, field := range val.Fields {
			if err := ValidateClarityName(field.Name); err != nil {
				return err
			}
			if _, ok := seen[field.Name]; ok {
				return DuplicateTupleFieldError{Name: field.Name}
			}
			seen[field.Name] = struct{}{}
			if err := w.WriteShortString(field.Name); err != nil {
				return fmt.Errorf("failed to encode tuple field name: %w", err)
			}
			if err := EncodeTo(w, field.Value); err != nil {
				return fmt.Errorf(
					"failed to encode tuple field %q: %w",
					field.Name,
					err,
				)
			}
		}
	case StringASCII:
		if _, err := NewStringASCII(val.Data); err != nil {
			return err
		}
		if err := w.WriteLongBytes([]byte(val.Data)); err != nil {
			return fmt.Errorf("failed to encode string: %w", err)
		}
	case StringUTF8:
		if _, err := NewStringUTF8(val.Data); err != nil {
			return err
		}
		if err := w.WriteLongBytes([]byte(val.Data)); err != nil {
			return fmt.Errorf("failed to encode string: %w", err)
		}
	default:
		return fmt.Errorf("unsupported clarity value type %T", v)
	}
	return nil
}

func encodeAddress(w *wire.Writer, addr address.Address) error {
	if addr.Version > maxPrincipalVersion {
		return fmt.Errorf("principal version %d out of range", addr.Version)
	}
	_ = w.WriteByte(addr.Version)
	w.WriteBytes(addr.Hash[:])
	return nil
}
