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
)

// ErrInvalidValue is matched by every value construction error in this package
var ErrInvalidValue = errors.New("invalid clarity value")

// IntegerOutOfRangeError indicates an integer that does not fit in 128 bits
type IntegerOutOfRangeError struct {
	Value  string
	Signed bool
}

func (e IntegerOutOfRangeError) Error() string {
	kind := "uint128"
	if e.Signed {
		kind = "int128"
	}
	return fmt.Sprintf("integer %s out of range for %s", e.Value, kind)
}

func (IntegerOutOfRangeError) Is(target error) bool {
	return target == ErrInvalidValue
}

// InvalidNameError indicates a malformed contract, function, or tuple field name
type InvalidNameError struct {
	Kind   string
	Name   string
	Reason string
}

func (e InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q: %s", e.Kind, e.Name, e.Reason)
}

func (InvalidNameError) Is(target error) bool {
	return target == ErrInvalidValue
}

// DuplicateTupleFieldError indicates a tuple with two fields of the same name
type DuplicateTupleFieldError struct {
	Name string
}

func (e DuplicateTupleFieldError) Error() string {
	return fmt.Sprintf("duplicate tuple field name %q", e.Name)
}

func (DuplicateTupleFieldError) Is(target error) bool {
	return target == ErrInvalidValue
}
