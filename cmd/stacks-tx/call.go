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

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/clarity/abi"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
	"go.uber.org/zap"
)

type callFlags struct {
	flagset  *flag.FlagSet
	tx       txFlags
	origin   originFlags
	contract string
	function string
	args     stringList
	abiFile  string
}

func newCallFlags() *callFlags {
	f := &callFlags{
		flagset: flag.NewFlagSet("call", flag.ExitOnError),
	}
	f.tx.register(f.flagset)
	f.origin.register(f.flagset)
	f.flagset.StringVar(&f.contract, "contract", "", "contract identifier (ADDRESS.name)")
	f.flagset.StringVar(&f.function, "function", "", "function name")
	f.flagset.Var(
		&f.args,
		"arg",
		"function argument, may be repeated: a plain value with -abi-file, otherwise a hex encoded Clarity value",
	)
	f.flagset.StringVar(
		&f.abiFile,
		"abi-file",
		"",
		"path to the contract ABI JSON, enables argument parsing and validation",
	)
	return f
}

func runCall(ctx *cmdContext) error {
	f := newCallFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	if f.contract == "" || f.function == "" {
		return fmt.Errorf("you must specify -contract and -function")
	}
	contractAddr, contractName, err := address.ParseContractId(f.contract)
	if err != nil {
		return err
	}
	opts, err := f.tx.options(ctx)
	if err != nil {
		return err
	}
	var args []clarity.Value
	if f.abiFile != "" {
		data, err := os.ReadFile(f.abiFile)
		if err != nil {
			return err
		}
		contractAbi, err := abi.ParseAbi(data)
		if err != nil {
			return err
		}
		fn, err := abi.ResolveFunction(contractAbi, f.function)
		if err != nil {
			return err
		}
		if args, err = abi.ParseArgs(f.args, fn); err != nil {
			return err
		}
		opts = append(opts, builder.WithAbi(&contractAbi))
	} else {
		for idx, arg := range f.args {
			data, err := hex.DecodeString(arg)
			if err != nil {
				return fmt.Errorf("argument %d: %w", idx, err)
			}
			value, err := clarity.Decode(data)
			if err != nil {
				return fmt.Errorf("argument %d: %w", idx, err)
			}
			args = append(args, value)
		}
	}
	ctx.logger.Debug(
		"contract call",
		zap.String("contract", f.contract),
		zap.String("function", f.function),
		zap.Int("args", len(args)),
	)
	contractAddress := contractAddr.String()
	tx, err := buildTransaction(
		&f.tx,
		&f.origin,
		func(origin builder.Origin) (*transaction.Transaction, error) {
			return builder.MakeUnsignedContractCall(
				contractAddress,
				contractName,
				f.function,
				args,
				origin,
				opts...,
			)
		},
		func(key keys.PrivateKey) (*transaction.Transaction, error) {
			return builder.MakeContractCall(
				contractAddress,
				contractName,
				f.function,
				args,
				key,
				opts...,
			)
		},
	)
	if err != nil {
		return err
	}
	return printTransaction(tx)
}
