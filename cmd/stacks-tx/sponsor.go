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
	"github.com/blinklabs-io/gostacks/transaction"
	"go.uber.org/zap"
)

type sponsorFlags struct {
	flagset *flag.FlagSet
	tx      string
	txFile  string
	keyFile string
	nonce   uint64
	fee     uint64
	feeRate string
}

func newSponsorFlags() *sponsorFlags {
	f := &sponsorFlags{
		flagset: flag.NewFlagSet("sponsor", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.tx, "tx", "", "hex encoded sponsored transaction signed by its origin")
	f.flagset.StringVar(&f.txFile, "tx-file", "", "file containing a hex encoded transaction")
	f.flagset.StringVar(&f.keyFile, "key-file", "", "file containing the sponsor's hex private key")
	f.flagset.Uint64Var(&f.nonce, "nonce", 0, "sponsor nonce")
	f.flagset.Uint64Var(&f.fee, "fee", 0, "fee in micro-STX paid by the sponsor")
	f.flagset.StringVar(&f.feeRate, "fee-rate", "", "micro-STX per byte, overrides -fee")
	return f
}

func runSponsor(ctx *cmdContext) error {
	f := newSponsorFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	data, err := readHexInput(f.tx, f.txFile)
	if err != nil {
		return err
	}
	tx, err := transaction.Deserialize(data)
	if err != nil {
		return err
	}
	key, err := readPrivateKey(f.keyFile)
	if err != nil {
		return err
	}
	opts := []builder.Option{
		builder.WithNetwork(ctx.network),
		builder.WithNonce(f.nonce),
		builder.WithFee(f.fee),
		builder.WithLogger(ctx.slogger),
	}
	if f.feeRate != "" {
		opts = append(opts, builder.WithFeeRate(f.feeRate))
	}
	sponsored, err := builder.SponsorTransaction(tx, key, opts...)
	if err != nil {
		return err
	}
	ctx.logger.Debug("sponsored transaction", zap.Uint64("fee", sponsored.Fee()))
	return printTransaction(sponsored)
}
