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

// Package builder assembles common transactions from a few inputs and a set of options,
// then optionally signs them.
package builder

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/clarity/abi"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/signer"
	"github.com/blinklabs-io/gostacks/transaction"
)

// MakeUnsigned returns an unsigned transaction carrying payload for the given origin
func MakeUnsigned(
	payload transaction.Payload,
	origin Origin,
	opts ...Option,
) (*transaction.Transaction, error) {
	return makeUnsigned(payload, origin, newConfig(opts...))
}

// Make returns a transaction carrying payload signed by a single key
func Make(
	payload transaction.Payload,
	key keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	return makeSigned(
		payload,
		SingleSigOrigin(key.PublicKey()),
		[]keys.PrivateKey{key},
		newConfig(opts...),
	)
}

// MakeMultiSig returns a transaction carrying payload for a multi-sig origin. The origin
// public keys are walked in order: a key with a matching private key in signerKeys signs
// until the threshold is reached, and every other key is appended as a public key
func MakeMultiSig(
	payload transaction.Payload,
	origin Origin,
	signerKeys []keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	if !origin.HashMode.IsMultiSig() {
		return nil, fmt.Errorf("hash mode %s is not a multi-sig mode", origin.HashMode)
	}
	return makeSigned(payload, origin, signerKeys, newConfig(opts...))
}

func makeUnsigned(
	payload transaction.Payload,
	origin Origin,
	cfg Config,
) (*transaction.Transaction, error) {
	if !cfg.Network.Valid() {
		return nil, errors.New("invalid network")
	}
	cond, err := origin.SpendingCondition(cfg.Nonce, 0)
	if err != nil {
		return nil, err
	}
	auth := transaction.NewStandardAuthorization(cond)
	if cfg.Sponsored {
		auth = transaction.NewSponsoredAuthorization(cond, nil)
	}
	tx := transaction.NewTransaction(
		cfg.Network.TransactionVersion,
		cfg.Network.ChainId,
		auth,
		payload,
	)
	tx.AnchorMode = cfg.AnchorMode
	tx.PostConditionMode = cfg.PostConditionMode
	tx.PostConditions = append(tx.PostConditions, cfg.PostConditions...)
	feeSource := "sponsor"
	if !cfg.Sponsored {
		fee, source, err := resolveFee(tx, origin, cfg)
		if err != nil {
			return nil, err
		}
		tx.SetFee(fee)
		feeSource = source
	}
	cfg.Logger.Debug(
		"built transaction",
		"payload_type", payload.Type().String(),
		"network", cfg.Network.String(),
		"fee", tx.Fee(),
		"fee_source", feeSource,
	)
	return tx, nil
}

func resolveFee(tx *transaction.Transaction, origin Origin, cfg Config) (uint64, string, error) {
	if cfg.FeeRate == "" {
		return cfg.Fee, "fixed", nil
	}
	fee, err := EstimateFee(tx, origin, cfg.FeeRate)
	if err != nil {
		return 0, "", err
	}
	return fee, "fee_rate", nil
}

func makeSigned(
	payload transaction.Payload,
	origin Origin,
	signerKeys []keys.PrivateKey,
	cfg Config,
) (*transaction.Transaction, error) {
	tx, err := makeUnsigned(payload, origin, cfg)
	if err != nil {
		return nil, err
	}
	return signOrigin(tx, origin, signerKeys, cfg)
}

// Sign adds origin signatures from signerKeys to an unsigned transaction, following the
// same rules as MakeMultiSig for multi-sig origins. The transaction is modified in place
func Sign(
	tx *transaction.Transaction,
	origin Origin,
	signerKeys []keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	return signOrigin(tx, origin, signerKeys, newConfig(opts...))
}

func signOrigin(
	tx *transaction.Transaction,
	origin Origin,
	signerKeys []keys.PrivateKey,
	cfg Config,
) (*transaction.Transaction, error) {
	s, err := signer.New(tx, signer.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	if !origin.HashMode.IsMultiSig() {
		if len(signerKeys) == 0 {
			return nil, errors.New("no signing key provided")
		}
		if err := s.SignOrigin(signerKeys[0]); err != nil {
			return nil, err
		}
		return s.Transaction()
	}
	signed := 0
	for _, pubKey := range origin.PublicKeys {
		key, ok := findKey(signerKeys, pubKey)
		if ok && signed < int(origin.SignaturesRequired) {
			if err := s.SignOrigin(key); err != nil {
				return nil, err
			}
			signed++
			continue
		}
		if err := s.AppendOrigin(pubKey); err != nil {
			return nil, err
		}
	}
	return s.Transaction()
}

func findKey(signerKeys []keys.PrivateKey, pubKey keys.PublicKey) (keys.PrivateKey, bool) {
	for _, key := range signerKeys {
		if key.PublicKey().Equal(pubKey) {
			return key, true
		}
	}
	return keys.PrivateKey{}, false
}

// SponsorTransaction adds a sponsor signature from key to a sponsored transaction whose
// origin is fully signed. The sponsor nonce comes from WithNonce, and the fee from WithFee
// or WithFeeRate. The given transaction is not modified
func SponsorTransaction(
	tx *transaction.Transaction,
	key keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	sponsorOrigin := SingleSigOrigin(key.PublicKey())
	// The sponsor placeholder has the size of any single-sig condition
	fee, feeSource, err := resolveFee(tx, sponsorOrigin, cfg)
	if err != nil {
		return nil, err
	}
	sponsor, err := sponsorOrigin.SpendingCondition(cfg.Nonce, fee)
	if err != nil {
		return nil, err
	}
	s, err := signer.NewSponsorSigner(tx, sponsor, signer.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	if err := s.SignSponsor(key); err != nil {
		return nil, err
	}
	cfg.Logger.Debug(
		"sponsored transaction",
		"fee", fee,
		"fee_source", feeSource,
	)
	return s.Transaction()
}

// TokenTransferPayload returns a payload sending amount micro-STX to a standard or
// contract principal
func TokenTransferPayload(
	recipient string,
	amount uint64,
	memo string,
) (transaction.TokenTransferPayload, error) {
	principal, err := clarity.ParsePrincipal(recipient)
	if err != nil {
		return transaction.TokenTransferPayload{}, fmt.Errorf("invalid recipient: %w", err)
	}
	return transaction.NewTokenTransferPayload(principal, amount, memo)
}

// ContractDeployPayload returns a contract deploy payload, versioned when the config
// carries a Clarity version
func ContractDeployPayload(name string, code string, cfg Config) (transaction.Payload, error) {
	if cfg.ClarityVersion == 0 {
		return transaction.NewSmartContractPayload(name, code)
	}
	return transaction.NewVersionedSmartContractPayload(cfg.ClarityVersion, name, code)
}

// ContractCallPayload returns a contract call payload. When the config carries an ABI,
// the arguments are validated against it first
func ContractCallPayload(
	contractAddress string,
	contractName string,
	functionName string,
	args []clarity.Value,
	cfg Config,
) (transaction.ContractCallPayload, error) {
	addr, err := address.ParseAddress(contractAddress)
	if err != nil {
		return transaction.ContractCallPayload{}, err
	}
	if cfg.Abi != nil {
		if err := abi.ValidateContractCall(*cfg.Abi, functionName, args); err != nil {
			return transaction.ContractCallPayload{}, err
		}
	}
	return transaction.NewContractCallPayload(addr, contractName, functionName, args)
}
