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

	"github.com/blinklabs-io/gostacks/address"
)

var (
	ErrNoSlotAvailable           = errors.New("no signature slot available")
	ErrThresholdNotMet           = errors.New("signature threshold not met")
	ErrAuthorizationKindMismatch = errors.New("authorization kind mismatch")
	ErrSigningKeyMismatch        = errors.New("signing key mismatch")
	ErrAmountOutOfRange          = errors.New("amount out of range")
	ErrInvalidConditionCode      = errors.New("invalid condition code for asset kind")
)

// NoSlotAvailableError indicates a signature for a spending condition that is already complete
type NoSlotAvailableError struct {
	Signatures int
	Required   int
}

func (e NoSlotAvailableError) Error() string {
	return fmt.Sprintf(
		"no signature slot available: %d of %d signatures already present",
		e.Signatures,
		e.Required,
	)
}

func (NoSlotAvailableError) Is(target error) bool {
	return target == ErrNoSlotAvailable
}

type ThresholdNotMetError struct {
	Required int
	Present  int
}

func (e ThresholdNotMetError) Error() string {
	return fmt.Sprintf(
		"signature threshold not met: %d of %d signatures present",
		e.Present,
		e.Required,
	)
}

func (ThresholdNotMetError) Is(target error) bool {
	return target == ErrThresholdNotMet
}

type AuthorizationKindMismatchError struct {
	Expected AuthType
	Actual   AuthType
}

func (e AuthorizationKindMismatchError) Error() string {
	return fmt.Sprintf(
		"authorization kind mismatch: expected %s, got %s",
		e.Expected,
		e.Actual,
	)
}

func (AuthorizationKindMismatchError) Is(target error) bool {
	return target == ErrAuthorizationKindMismatch
}

// SigningKeyMismatchError indicates public keys that do not hash to the spending condition's signer
type SigningKeyMismatchError struct {
	Expected address.Hash160
	Actual   address.Hash160
}

func (e SigningKeyMismatchError) Error() string {
	return fmt.Sprintf(
		"signing key mismatch: spending condition signer is %s, keys hash to %s",
		e.Expected,
		e.Actual,
	)
}

func (SigningKeyMismatchError) Is(target error) bool {
	return target == ErrSigningKeyMismatch
}

type AmountOutOfRangeError struct {
	Amount string
}

func (e AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("amount %s does not fit in an unsigned 64-bit integer", e.Amount)
}

func (AmountOutOfRangeError) Is(target error) bool {
	return target == ErrAmountOutOfRange
}

type InvalidConditionCodeError struct {
	AssetKind AssetKind
	Code      uint8
}

func (e InvalidConditionCodeError) Error() string {
	return fmt.Sprintf(
		"condition code 0x%02x is not valid for %s post-conditions",
		e.Code,
		e.AssetKind,
	)
}

func (InvalidConditionCodeError) Is(target error) bool {
	return target == ErrInvalidConditionCode
}
