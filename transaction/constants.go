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

import "fmt"

type TransactionVersion uint8

const (
	TransactionVersionMainnet TransactionVersion = 0x00
	TransactionVersionTestnet TransactionVersion = 0x80
)

const (
	ChainIdMainnet uint32 = 0x00000001
	ChainIdTestnet uint32 = 0x80000000
)

func (v TransactionVersion) String() string {
	switch v {
	case TransactionVersionMainnet:
		return "mainnet"
	case TransactionVersionTestnet:
		return "testnet"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(v))
	}
}

type AuthType uint8

const (
	AuthTypeStandard  AuthType = 0x04
	AuthTypeSponsored AuthType = 0x05
)

func (a AuthType) String() string {
	switch a {
	case AuthTypeStandard:
		return "standard"
	case AuthTypeSponsored:
		return "sponsored"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(a))
	}
}

// AnchorMode controls how a transaction may be included in a block
type AnchorMode uint8

const (
	AnchorModeOnChainOnly  AnchorMode = 0x01
	AnchorModeOffChainOnly AnchorMode = 0x02
	AnchorModeAny          AnchorMode = 0x03
)

func (a AnchorMode) Valid() bool {
	return a >= AnchorModeOnChainOnly && a <= AnchorModeAny
}

func (a AnchorMode) String() string {
	switch a {
	case AnchorModeOnChainOnly:
		return "on-chain-only"
	case AnchorModeOffChainOnly:
		return "off-chain-only"
	case AnchorModeAny:
		return "any"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(a))
	}
}

// PostConditionMode controls whether asset transfers not covered by a post-condition are allowed
type PostConditionMode uint8

const (
	PostConditionModeAllow PostConditionMode = 0x01
	PostConditionModeDeny  PostConditionMode = 0x02
)

func (m PostConditionMode) String() string {
	switch m {
	case PostConditionModeAllow:
		return "allow"
	case PostConditionModeDeny:
		return "deny"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(m))
	}
}

// PubKeyEncoding records whether a signer's public key is compressed
type PubKeyEncoding uint8

const (
	PubKeyEncodingCompressed   PubKeyEncoding = 0x00
	PubKeyEncodingUncompressed PubKeyEncoding = 0x01
)

func pubKeyEncodingFor(compressed bool) PubKeyEncoding {
	if compressed {
		return PubKeyEncodingCompressed
	}
	return PubKeyEncodingUncompressed
}

func (e PubKeyEncoding) String() string {
	switch e {
	case PubKeyEncodingCompressed:
		return "compressed"
	case PubKeyEncodingUncompressed:
		return "uncompressed"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(e))
	}
}

type PayloadType uint8

const (
	PayloadTypeTokenTransfer          PayloadType = 0x00
	PayloadTypeSmartContract          PayloadType = 0x01
	PayloadTypeContractCall           PayloadType = 0x02
	PayloadTypeVersionedSmartContract PayloadType = 0x06
)

func (p PayloadType) String() string {
	switch p {
	case PayloadTypeTokenTransfer:
		return "token-transfer"
	case PayloadTypeSmartContract:
		return "smart-contract"
	case PayloadTypeContractCall:
		return "contract-call"
	case PayloadTypeVersionedSmartContract:
		return "versioned-smart-contract"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(p))
	}
}

// ClarityVersion selects the language version of a deployed contract
type ClarityVersion uint8

const (
	ClarityVersion1 ClarityVersion = 1
	ClarityVersion2 ClarityVersion = 2
	ClarityVersion3 ClarityVersion = 3
)

func (v ClarityVersion) Valid() bool {
	return v >= ClarityVersion1 && v <= ClarityVersion3
}

// MemoSize is the fixed size of a token transfer memo
const MemoSize = 34
