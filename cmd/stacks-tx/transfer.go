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
	"flag"
	"fmt"

	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

type transferFlags struct {
	flagset   *flag.FlagSet
	tx        txFlags
	origin    originFlags
	recipient string
	amount    string
	memo      string
}

func newTransferFlags() *transferFlags {
	f := &transferFlags{
		flagset: flag.NewFlagSet("transfer", flag.ExitOnError),
	}
	f.tx.register(f.flagset)
	f.origin.register(f.flagset)
	f.flagset.StringVar(&f.recipient, "recipient", "", "recipient address or contract identifier")
	f.flagset.StringVar(&f.amount, "amount", "", "amount in micro-STX")
	f.flagset.StringVar(&f.memo, "memo", "", "memo text, up to 34 bytes")
	return f
}

func runTransfer(ctx *cmdContext) error {
	f := newTransferFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	if f.recipient == "" || f.amount == "" {
		return fmt.Errorf("you must specify -recipient and -amount")
	}
	amount, err := transaction.AmountFromString(f.amount)
	if err != nil {
		return err
	}
	opts, err := f.tx.options(ctx)
	if err != nil {
		return err
	}
	tx, err := buildTransaction(
		&f.tx,
		&f.origin,
		func(origin builder.Origin) (*transaction.Transaction, error) {
			return builder.MakeUnsignedSTXTokenTransfer(f.recipient, amount, f.memo, origin, opts...)
		},
		func(key keys.PrivateKey) (*transaction.Transaction, error) {
			return builder.MakeSTXTokenTransfer(f.recipient, amount, f.memo, key, opts...)
		},
	)
	if err != nil {
		return err
	}
	return printTransaction(tx)
}
