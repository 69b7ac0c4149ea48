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

package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors so callers can use errors.Is against any of the structured errors below
var (
	ErrMalformedValue     = errors.New("malformed value")
	ErrTruncatedInput     = errors.New("truncated input")
	ErrDepthExceeded      = errors.New("nesting depth exceeded")
	ErrUnsupportedVariant = errors.New("unsupported variant")
	ErrTrailingData       = errors.New("trailing data")
)

// MalformedValueError indicates structurally invalid encoded data
type MalformedValueError struct {
	Offset int
	Reason string
}

func (e MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value at offset %d: %s", e.Offset, e.Reason)
}

func (MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}

// TruncatedInputError indicates that a declared length runs past the end of the input.
// It is also a malformed value
type TruncatedInputError struct {
	Offset    int
	Needed    int
	Remaining int
}

func (e TruncatedInputError) Error() string {
	return fmt.Sprintf(
		"truncated input at offset %d: need %d bytes, %d remaining",
		e.Offset,
		e.Needed,
		e.Remaining,
	)
}

func (TruncatedInputError) Is(target error) bool {
	return target == ErrTruncatedInput || target == ErrMalformedValue
}

// DepthExceededError indicates that nested values go deeper than the configured limit
type DepthExceededError struct {
	Offset int
	Limit  int
}

func (e DepthExceededError) Error() string {
	return fmt.Sprintf(
		"nesting depth exceeds limit of %d at offset %d",
		e.Limit,
		e.Offset,
	)
}

func (DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// UnsupportedVariantError indicates an unknown discriminator byte for a closed set of variants
type UnsupportedVariantError struct {
	Offset int
	Field  string
	Tag    uint64
}

func (e UnsupportedVariantError) Error() string {
	return fmt.Sprintf(
		"unsupported %s 0x%02x at offset %d",
		e.Field,
		e.Tag,
		e.Offset,
	)
}

func (UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// TrailingDataError indicates bytes left over after a complete decode
type TrailingDataError struct {
	Offset    int
	Remaining int
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf(
		"%d bytes of trailing data at offset %d",
		e.Remaining,
		e.Offset,
	)
}

func (TrailingDataError) Is(target error) bool {
	return target == ErrTrailingData
}
