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
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gostacks/transaction"
)

// EstimateSize returns the size in bytes of the transaction once the origin has signed
func EstimateSize(tx *transaction.Transaction, origin Origin) (int, error) {
	data, err := tx.Serialize()
	if err != nil {
		return 0, err
	}
	size := len(data)
	if origin.HashMode.IsMultiSig() && tx.Auth.Origin.SignatureCount() == 0 {
		size += origin.signingOverhead()
	}
	return size, nil
}

// EstimateFee returns ceil(feeRate * estimated signed size). The fee rate is a non-negative
// decimal string
func EstimateFee(tx *transaction.Transaction, origin Origin, feeRate string) (uint64, error) {
	rate, ok := new(big.Rat).SetString(feeRate)
	if !ok || rate.Sign() < 0 {
		return 0, fmt.Errorf("invalid fee rate: %q", feeRate)
	}
	size, err := EstimateSize(tx, origin)
	if err != nil {
		return 0, err
	}
	fee := new(big.Rat).Mul(rate, new(big.Rat).SetInt64(int64(size)))
	quo, rem := new(big.Int).QuoRem(fee.Num(), fee.Denom(), new(big.Int))
	if rem.Sign() > 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return transaction.AmountFromBigInt(quo)
}
