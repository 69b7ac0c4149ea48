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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gostacks/keys"
)

// Fixed private keys for tests. All use compressed public keys
var TestPrivateKeys = []string{
	"edf9aee84d9b7abc145504dde6726c64f369d37ee34ded868fabd876c26570bc01",
	"cb3df38053d132895220b9ce471f6b676db5b9bf0b4adefb55f2118ece2478df01",
	"7287ba251d44a4d3fd9276c88ce34c5c52a038955511cccaf77e61068649c17801",
	"530d9f61984c888536871c6573073bdfc0058896dc1adfe9a6a10dfacadc209101",
}

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// PrivateKey returns the test private key at the given index
func PrivateKey(idx int) keys.PrivateKey {
	key, err := keys.ParsePrivateKey(TestPrivateKeys[idx])
	if err != nil {
		panic(fmt.Sprintf("error parsing test private key: %s", err))
	}
	return key
}

// PublicKeyBytes returns the serialized public keys for the test private keys at the given indexes
func PublicKeyBytes(idxs ...int) [][]byte {
	ret := make([][]byte, 0, len(idxs))
	for _, idx := range idxs {
		ret = append(ret, PrivateKey(idx).PublicKey().Bytes())
	}
	return ret
}
