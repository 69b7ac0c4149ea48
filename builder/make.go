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
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

// MakeSTXTokenTransfer returns a token transfer signed by key
func MakeSTXTokenTransfer(
	recipient string,
	amount uint64,
	memo string,
	key keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	payload, err := TokenTransferPayload(recipient, amount, memo)
	if err != nil {
		return nil, err
	}
	return Make(payload, key, opts...)
}

func MakeUnsignedSTXTokenTransfer(
	recipient string,
	amount uint64,
	memo string,
	origin Origin,
	opts ...Option,
) (*transaction.Transaction, error) {
	payload, err := TokenTransferPayload(recipient, amount, memo)
	if err != nil {
		return nil, err
	}
	return MakeUnsigned(payload, origin, opts...)
}

func MakeMultiSigSTXTokenTransfer(
	recipient string,
	amount uint64,
	memo string,
	origin Origin,
	signerKeys []keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	payload, err := TokenTransferPayload(recipient, amount, memo)
	if err != nil {
		return nil, err
	}
	return MakeMultiSig(payload, origin, signerKeys, opts...)
}

// MakeContractDeploy returns a contract deploy signed by key
func MakeContractDeploy(
	name string,
	code string,
	key keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractDeployPayload(name, code, cfg)
	if err != nil {
		return nil, err
	}
	return makeSigned(
		payload,
		SingleSigOrigin(key.PublicKey()),
		[]keys.PrivateKey{key},
		cfg,
	)
}

func MakeUnsignedContractDeploy(
	name string,
	code string,
	origin Origin,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractDeployPayload(name, code, cfg)
	if err != nil {
		return nil, err
	}
	return makeUnsigned(payload, origin, cfg)
}

func MakeMultiSigContractDeploy(
	name string,
	code string,
	origin Origin,
	signerKeys []keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractDeployPayload(name, code, cfg)
	if err != nil {
		return nil, err
	}
	return MakeMultiSig(payload, origin, signerKeys, WithConfig(cfg))
}

// MakeContractCall returns a contract call signed by key
func MakeContractCall(
	contractAddress string,
	contractName string,
	functionName string,
	args []clarity.Value,
	key keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractCallPayload(contractAddress, contractName, functionName, args, cfg)
	if err != nil {
		return nil, err
	}
	return makeSigned(
		payload,
		SingleSigOrigin(key.PublicKey()),
		[]keys.PrivateKey{key},
		cfg,
	)
}

func MakeUnsignedContractCall(
	contractAddress string,
	contractName string,
	functionName string,
	args []clarity.Value,
	origin Origin,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractCallPayload(contractAddress, contractName, functionName, args, cfg)
	if err != nil {
		return nil, err
	}
	return makeUnsigned(payload, origin, cfg)
}

func MakeMultiSigContractCall(
	contractAddress string,
	contractName string,
	functionName string,
	args []clarity.Value,
	origin Origin,
	signerKeys []keys.PrivateKey,
	opts ...Option,
) (*transaction.Transaction, error) {
	cfg := newConfig(opts...)
	payload, err := ContractCallPayload(contractAddress, contractName, functionName, args, cfg)
	if err != nil {
		return nil, err
	}
	return MakeMultiSig(payload, origin, signerKeys, WithConfig(cfg))
}
