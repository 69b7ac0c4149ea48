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
	"errors"
	"fmt"
)

var (
	ErrArgumentCountMismatch  = errors.New("argument count mismatch")
	ErrArgumentTypeMismatch   = errors.New("argument type mismatch")
	ErrFunctionNotFound       = errors.New("function not found")
	ErrAmbiguousAbi           = errors.New("ambiguous ABI")
	ErrUnsupportedAbiEncoding = errors.New("unsupported ABI encoding")
)

type ArgumentCountMismatchError struct {
	Function string
	Expected int
	Actual   int
}

func (e ArgumentCountMismatchError) Error() string {
	return fmt.Sprintf(
		"function %q expects %d arguments, got %d",
		e.Function,
		e.Expected,
		e.Actual,
	)
}

func (ArgumentCountMismatchError) Is(target error) bool {
	return target == ErrArgumentCountMismatch
}

// ArgumentTypeMismatchError reports the first argument that does not match its declared type
type ArgumentTypeMismatchError struct {
	Function string
	Index    int
	Name     string
	Expected string
	Actual   string
}

func (e ArgumentTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"function %q argument %d (%s): expected type %s, got %s",
		e.Function,
		e.Index,
		e.Name,
		e.Expected,
		e.Actual,
	)
}

func (ArgumentTypeMismatchError) Is(target error) bool {
	return target == ErrArgumentTypeMismatch
}

type FunctionNotFoundError struct {
	Name string
}

func (e FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function %q not found in contract ABI", e.Name)
}

func (FunctionNotFoundError) Is(target error) bool {
	return target == ErrFunctionNotFound
}

// AmbiguousAbiError indicates a malformed ABI declaring the same function more than once
type AmbiguousAbiError struct {
	Name  string
	Count int
}

func (e AmbiguousAbiError) Error() string {
	return fmt.Sprintf(
		"contract ABI declares function %q %d times",
		e.Name,
		e.Count,
	)
}

func (AmbiguousAbiError) Is(target error) bool {
	return target == ErrAmbiguousAbi
}

// UnsupportedAbiEncodingError indicates a declared type that cannot be built from a plain string
type UnsupportedAbiEncodingError struct {
	Type string
}

func (e UnsupportedAbiEncodingError) Error() string {
	return fmt.Sprintf("cannot parse a value of type %s from a string", e.Type)
}

func (UnsupportedAbiEncodingError) Is(target error) bool {
	return target == ErrUnsupportedAbiEncoding
}
