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
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// Crockford base32 alphabet
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const c32ChecksumSize = 4

var c32Normalizer = strings.NewReplacer(
	"O", "0",
	"L", "1",
	"I", "1",
)

// c32Encode encodes data as a big-endian base32 number, with one '0' per leading zero byte
func c32Encode(data []byte) string {
	leadingZeros := 0
	for _, b := range data {
		if b != 0 {
			break
		}
		leadingZeros++
	}
	n := new(big.Int).SetBytes(data)
	base := big.NewInt(32)
	mod := new(big.Int)
	digits := []byte{}
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}
	for range leadingZeros {
		digits = append(digits, c32Alphabet[0])
	}
	slices.Reverse(digits)
	return string(digits)
}

func c32Decode(input string) ([]byte, error) {
	input = c32Normalizer.Replace(strings.ToUpper(input))
	leadingZeros := 0
	for i := range len(input) {
		if input[i] != c32Alphabet[0] {
			break
		}
		leadingZeros++
	}
	n := new(big.Int)
	base := big.NewInt(32)
	for i := leadingZeros; i < len(input); i++ {
		idx := strings.IndexByte(c32Alphabet, input[i])
		if idx < 0 {
			return nil, fmt.Errorf("invalid c32 character: %q", input[i])
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	ret := make([]byte, leadingZeros)
	return append(ret, n.Bytes()...), nil
}

func c32Checksum(version uint8, data []byte) []byte {
	tmp := append([]byte{version}, data...)
	first := sha256.Sum256(tmp)
	second := sha256.Sum256(first[:])
	return second[:c32ChecksumSize]
}

func c32CheckEncode(version uint8, data []byte) (string, error) {
	if version > maxAddressVersion {
		return "", fmt.Errorf("invalid c32check version: %d", version)
	}
	payload := append(slices.Clone(data), c32Checksum(version, data)...)
	return string(c32Alphabet[version]) + c32Encode(payload), nil
}

func c32CheckDecode(input string) (uint8, []byte, error) {
	if len(input) < 2 {
		return 0, nil, errors.New("c32check string too short")
	}
	input = c32Normalizer.Replace(strings.ToUpper(input))
	versionIdx := strings.IndexByte(c32Alphabet, input[0])
	if versionIdx < 0 {
		return 0, nil, fmt.Errorf("invalid c32 character: %q", input[0])
	}
	version := uint8(versionIdx) // #nosec G115
	payload, err := c32Decode(input[1:])
	if err != nil {
		return 0, nil, err
	}
	if len(payload) < c32ChecksumSize {
		return 0, nil, errors.New("c32check payload too short")
	}
	data := payload[:len(payload)-c32ChecksumSize]
	checksum := payload[len(payload)-c32ChecksumSize:]
	if !bytes.Equal(checksum, c32Checksum(version, data)) {
		return 0, nil, errors.New("c32check checksum does not match")
	}
	return version, data, nil
}
