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

package address

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

const (
	Hash160Size = 20

	// Address versions, as encoded in the first c32 character after the 'S' prefix
	AddressVersionMainnetSingleSig = 22 // P
	AddressVersionMainnetMultiSig  = 20 // M
	AddressVersionTestnetSingleSig = 26 // T
	AddressVersionTestnetMultiSig  = 21 // N

	// Highest version representable by a single c32 character
	maxAddressVersion = 31

	addressPrefix = "S"
)

type Hash160 [Hash160Size]byte

func NewHash160(data []byte) Hash160 {
	h := Hash160{}
	copy(h[:], data)
	return h
}

func (h Hash160) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash160) Bytes() []byte {
	return h[:]
}

func (h Hash160) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// Hash160Hash generates RIPEMD160(SHA256(data)), the key and script hash used in addresses
func Hash160Hash(data []byte) Hash160 {
	sha := sha256.Sum256(data)
	tmpHash := ripemd160.New()
	tmpHash.Write(sha[:])
	return Hash160(tmpHash.Sum(nil))
}

// Address is a Stacks account address: a version byte and a hash160
type Address struct {
	Version uint8
	Hash    Hash160
}

// NewAddress returns an Address from its parts
func NewAddress(version uint8, hash []byte) (Address, error) {
	if version > maxAddressVersion {
		return Address{}, fmt.Errorf("invalid address version: %d", version)
	}
	if len(hash) != Hash160Size {
		return Address{}, fmt.Errorf(
			"invalid address hash length: %d",
			len(hash),
		)
	}
	return Address{
		Version: version,
		Hash:    NewHash160(hash),
	}, nil
}

// ParseAddress decodes a c32check address string such as SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7
func ParseAddress(addr string) (Address, error) {
	if len(addr) < 2 || !strings.HasPrefix(addr, addressPrefix) {
		return Address{}, fmt.Errorf("invalid address: %q", addr)
	}
	version, data, err := c32CheckDecode(addr[1:])
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if len(data) != Hash160Size {
		return Address{}, fmt.Errorf(
			"invalid address %q: hash is not expected length",
			addr,
		)
	}
	return Address{
		Version: version,
		Hash:    NewHash160(data),
	}, nil
}

// ParseContractId splits a fully qualified contract identifier (ADDRESS.contract-name)
func ParseContractId(contractId string) (Address, string, error) {
	addrPart, name, ok := strings.Cut(contractId, ".")
	if !ok || name == "" {
		return Address{}, "", fmt.Errorf(
			"invalid contract identifier: %q",
			contractId,
		)
	}
	addr, err := ParseAddress(addrPart)
	if err != nil {
		return Address{}, "", err
	}
	return addr, name, nil
}

// String returns the c32check encoding of the address
func (a Address) String() string {
	encoded, err := c32CheckEncode(a.Version, a.Hash[:])
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error encoding address: %s", err),
		)
	}
	return addressPrefix + encoded
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	addr, err := ParseAddress(tmp)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// IsMainnet returns true for the mainnet address versions
func (a Address) IsMainnet() bool {
	return a.Version == AddressVersionMainnetSingleSig ||
		a.Version == AddressVersionMainnetMultiSig
}

// FromPublicKeys derives the address controlled by the given public keys under the given hash mode
func FromPublicKeys(
	version uint8,
	hashMode HashMode,
	numSigs int,
	publicKeys [][]byte,
) (Address, error) {
	hash, err := HashPublicKeys(hashMode, numSigs, publicKeys)
	if err != nil {
		return Address{}, err
	}
	return NewAddress(version, hash[:])
}

var errNoPublicKeys = errors.New("no public keys provided")
