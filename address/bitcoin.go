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
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Bitcoin base58check address versions
const (
	bitcoinVersionMainnetP2PKH = 0
	bitcoinVersionMainnetP2SH  = 5
	bitcoinVersionTestnetP2PKH = 111
	bitcoinVersionTestnetP2SH  = 196
)

var stacksToBitcoinVersion = map[uint8]byte{
	AddressVersionMainnetSingleSig: bitcoinVersionMainnetP2PKH,
	AddressVersionMainnetMultiSig:  bitcoinVersionMainnetP2SH,
	AddressVersionTestnetSingleSig: bitcoinVersionTestnetP2PKH,
	AddressVersionTestnetMultiSig:  bitcoinVersionTestnetP2SH,
}

// ToBitcoin returns the base58check Bitcoin address that shares this address' hash
func (a Address) ToBitcoin() (string, error) {
	btcVersion, ok := stacksToBitcoinVersion[a.Version]
	if !ok {
		return "", fmt.Errorf(
			"no bitcoin equivalent for address version %d",
			a.Version,
		)
	}
	return base58.CheckEncode(a.Hash[:], btcVersion), nil
}

// FromBitcoin converts a base58check Bitcoin P2PKH/P2SH address into the Stacks address with the same hash
func FromBitcoin(btcAddr string) (Address, error) {
	data, btcVersion, err := base58.CheckDecode(btcAddr)
	if err != nil {
		return Address{}, fmt.Errorf(
			"invalid bitcoin address %q: %w",
			btcAddr,
			err,
		)
	}
	for version, tmpBtcVersion := range stacksToBitcoinVersion {
		if tmpBtcVersion == btcVersion {
			return NewAddress(version, data)
		}
	}
	return Address{}, fmt.Errorf(
		"unsupported bitcoin address version %d",
		btcVersion,
	)
}
