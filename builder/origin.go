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

package builder

import (
	"errors"

	stacks "github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

// Origin describes the account that authorizes a transaction
type Origin struct {
	HashMode           address.HashMode
	PublicKeys         []keys.PublicKey
	SignaturesRequired uint16
}

// SingleSigOrigin returns a P2PKH origin for one public key
func SingleSigOrigin(pubKey keys.PublicKey) Origin {
	return Origin{
		HashMode:           address.HashModeP2PKH,
		PublicKeys:         []keys.PublicKey{pubKey},
		SignaturesRequired: 1,
	}
}

// MultiSigOrigin returns an origin requiring signaturesRequired of the given ordered public keys
func MultiSigOrigin(
	hashMode address.HashMode,
	signaturesRequired uint16,
	pubKeys ...keys.PublicKey,
) Origin {
	return Origin{
		HashMode:           hashMode,
		PublicKeys:         pubKeys,
		SignaturesRequired: signaturesRequired,
	}
}

// SpendingCondition returns the unsigned spending condition for the origin
func (o Origin) SpendingCondition(nonce uint64, fee uint64) (transaction.SpendingCondition, error) {
	if o.HashMode.IsMultiSig() {
		return transaction.NewMultiSigSpendingCondition(
			o.HashMode,
			o.SignaturesRequired,
			o.PublicKeys,
			nonce,
			fee,
		)
	}
	if len(o.PublicKeys) != 1 {
		return nil, errors.New("single-sig origin requires exactly one public key")
	}
	return transaction.NewSingleSigSpendingCondition(o.HashMode, o.PublicKeys[0], nonce, fee)
}

// Address returns the address of the origin on the given network
func (o Origin) Address(network stacks.Network) (address.Address, error) {
	cond, err := o.SpendingCondition(0, 0)
	if err != nil {
		return address.Address{}, err
	}
	return network.Address(cond), nil
}

// signingOverhead returns the number of bytes a complete set of multi-sig authorization
// fields adds to an unsigned spending condition. Single-sig conditions are always full size
func (o Origin) signingOverhead() int {
	if !o.HashMode.IsMultiSig() {
		return 0
	}
	size := 0
	for idx, pubKey := range o.PublicKeys {
		if idx < int(o.SignaturesRequired) {
			size += 1 + keys.MessageSignatureSize
		} else {
			size += 1 + len(pubKey.Bytes())
		}
	}
	return size
}
