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
	"fmt"
)

// HashMode selects how public keys are hashed into a spending condition's signer hash
type HashMode uint8

const (
	HashModeP2PKH  HashMode = 0x00
	HashModeP2SH   HashMode = 0x01
	HashModeP2WPKH HashMode = 0x02
	HashModeP2WSH  HashMode = 0x03
)

const (
	CompressedPublicKeySize   = 33
	UncompressedPublicKeySize = 65

	// Bitcoin script opcodes used to build multi-sig redeem scripts
	opCheckMultisig = 0xae
	opNumBase       = 0x50
	maxScriptKeys   = 16
)

func (m HashMode) String() string {
	switch m {
	case HashModeP2PKH:
		return "p2pkh"
	case HashModeP2SH:
		return "p2sh"
	case HashModeP2WPKH:
		return "p2wpkh"
	case HashModeP2WSH:
		return "p2wsh"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(m))
	}
}

// Valid returns true for the hash modes defined by the protocol
func (m HashMode) Valid() bool {
	return m <= HashModeP2WSH
}

// IsSingleSig returns true for the hash modes used by single-signer spending conditions
func (m HashMode) IsSingleSig() bool {
	return m == HashModeP2PKH || m == HashModeP2WPKH
}

// IsMultiSig returns true for the hash modes used by multi-signer spending conditions
func (m HashMode) IsMultiSig() bool {
	return m == HashModeP2SH || m == HashModeP2WSH
}

// IsSegwit returns true for the hash modes that require compressed public keys
func (m HashMode) IsSegwit() bool {
	return m == HashModeP2WPKH || m == HashModeP2WSH
}

// SingleSigVersion returns the address version for single-signer addresses on the network selected by mainnet
func SingleSigVersion(mainnet bool) uint8 {
	if mainnet {
		return AddressVersionMainnetSingleSig
	}
	return AddressVersionTestnetSingleSig
}

// MultiSigVersion returns the address version for multi-signer addresses on the network selected by mainnet
func MultiSigVersion(mainnet bool) uint8 {
	if mainnet {
		return AddressVersionMainnetMultiSig
	}
	return AddressVersionTestnetMultiSig
}

// HashPublicKeys computes the signer hash for the given public keys under the given hash mode
func HashPublicKeys(
	hashMode HashMode,
	numSigs int,
	publicKeys [][]byte,
) (Hash160, error) {
	if len(publicKeys) == 0 {
		return Hash160{}, errNoPublicKeys
	}
	for _, pubKey := range publicKeys {
		if err := checkPublicKey(hashMode, pubKey); err != nil {
			return Hash160{}, err
		}
	}
	switch hashMode {
	case HashModeP2PKH:
		if len(publicKeys) != 1 {
			return Hash160{}, fmt.Errorf(
				"hash mode %s requires exactly 1 public key, got %d",
				hashMode,
				len(publicKeys),
			)
		}
		return Hash160Hash(publicKeys[0]), nil
	case HashModeP2WPKH:
		if len(publicKeys) != 1 {
			return Hash160{}, fmt.Errorf(
				"hash mode %s requires exactly 1 public key, got %d",
				hashMode,
				len(publicKeys),
			)
		}
		keyHash := Hash160Hash(publicKeys[0])
		program := append([]byte{0x00, Hash160Size}, keyHash[:]...)
		return Hash160Hash(program), nil
	case HashModeP2SH:
		script, err := multiSigScript(numSigs, publicKeys)
		if err != nil {
			return Hash160{}, err
		}
		return Hash160Hash(script), nil
	case HashModeP2WSH:
		script, err := multiSigScript(numSigs, publicKeys)
		if err != nil {
			return Hash160{}, err
		}
		digest := sha256.Sum256(script)
		program := append([]byte{0x00, sha256.Size}, digest[:]...)
		return Hash160Hash(program), nil
	default:
		return Hash160{}, fmt.Errorf("unsupported hash mode: %s", hashMode)
	}
}

func checkPublicKey(hashMode HashMode, pubKey []byte) error {
	switch len(pubKey) {
	case CompressedPublicKeySize:
		return nil
	case UncompressedPublicKeySize:
		if hashMode.IsSegwit() {
			return fmt.Errorf(
				"hash mode %s requires compressed public keys",
				hashMode,
			)
		}
		return nil
	default:
		return fmt.Errorf("invalid public key length: %d", len(pubKey))
	}
}

// multiSigScript builds the m-of-n CHECKMULTISIG redeem script
func multiSigScript(numSigs int, publicKeys [][]byte) ([]byte, error) {
	if len(publicKeys) > maxScriptKeys {
		return nil, fmt.Errorf(
			"too many public keys for multi-sig script: %d",
			len(publicKeys),
		)
	}
	if numSigs < 1 || numSigs > len(publicKeys) {
		return nil, fmt.Errorf(
			"invalid number of required signatures: %d of %d",
			numSigs,
			len(publicKeys),
		)
	}
	buf := bytes.NewBuffer(nil)
	buf.WriteByte(byte(opNumBase + numSigs))
	for _, pubKey := range publicKeys {
		buf.WriteByte(byte(len(pubKey)))
		buf.Write(pubKey)
	}
	buf.WriteByte(byte(opNumBase + len(publicKeys)))
	buf.WriteByte(opCheckMultisig)
	return buf.Bytes(), nil
}
