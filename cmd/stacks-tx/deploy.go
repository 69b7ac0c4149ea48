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
	"os"

	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

type deployFlags struct {
	flagset        *flag.FlagSet
	tx             txFlags
	origin         originFlags
	name           string
	codeFile       string
	clarityVersion uint
}

func newDeployFlags() *deployFlags {
	f := &deployFlags{
		flagset: flag.NewFlagSet("deploy", flag.ExitOnError),
	}
	f.tx.register(f.flagset)
	f.origin.register(f.flagset)
	f.flagset.StringVar(&f.name, "name", "", "contract name")
	f.flagset.StringVar(&f.codeFile, "code-file", "", "path to the Clarity source")
	f.flagset.UintVar(
		&f.clarityVersion,
		"clarity-version",
		0,
		"Clarity version for a versioned deploy (0 for an unversioned deploy)",
	)
	return f
}

func runDeploy(ctx *cmdContext) error {
	f := newDeployFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	if f.name == "" || f.codeFile == "" {
		return fmt.Errorf("you must specify -name and -code-file")
	}
	code, err := os.ReadFile(f.codeFile)
	if err != nil {
		return err
	}
	opts, err := f.tx.options(ctx)
	if err != nil {
		return err
	}
	if f.clarityVersion > 0 {
		version := transaction.ClarityVersion(f.clarityVersion) // #nosec G115
		if !version.Valid() {
			return fmt.Errorf("unsupported Clarity version %d", f.clarityVersion)
		}
		opts = append(opts, builder.WithClarityVersion(version))
	}
	tx, err := buildTransaction(
		&f.tx,
		&f.origin,
		func(origin builder.Origin) (*transaction.Transaction, error) {
			return builder.MakeUnsignedContractDeploy(f.name, string(code), origin, opts...)
		},
		func(key keys.PrivateKey) (*transaction.Transaction, error) {
			return builder.MakeContractDeploy(f.name, string(code), key, opts...)
		},
	)
	if err != nil {
		return err
	}
	return printTransaction(tx)
}
