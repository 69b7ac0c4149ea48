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
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

const HashSize = sha512.Size256

// Hash is a SHA-512/256 digest, used for transaction IDs and signature hashes
type Hash [HashSize]byte

func NewHash(data []byte) (Hash, error) {
	if len(data) != HashSize {
		return Hash{}, fmt.Errorf(
			"invalid hash length %d, expected %d",
			len(data),
			HashSize,
		)
	}
	var ret Hash
	copy(ret[:], data)
	return ret, nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// HashData computes the SHA-512/256 digest of the concatenated inputs
func HashData(data ...[]byte) Hash {
	h := sha512.New512_256()
	for _, chunk := range data {
		h.Write(chunk)
	}
	var ret Hash
	h.Sum(ret[:0])
	return ret
}
