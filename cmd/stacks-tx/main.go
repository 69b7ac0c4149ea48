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
	"log/slog"
	"os"

	stacks "github.com/blinklabs-io/gostacks"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

type globalFlags struct {
	flagset *flag.FlagSet
	network string
	debug   bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.network,
		"network",
		"mainnet",
		"network to build transactions for (mainnet, testnet, devnet)",
	)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	return f
}

// cmdContext carries the parsed global settings into subcommands
type cmdContext struct {
	network stacks.Network
	logger  *zap.Logger
	slogger *slog.Logger
	args    []string
}

// newLogger returns a development logger with debug enabled, and a no-op logger otherwise
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	network := stacks.NetworkByName(f.network)
	if network == stacks.NetworkInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.network)
		os.Exit(1)
	}

	logger, err := newLogger(f.debug)
	if err != nil {
		fmt.Printf("failed to create logger: %s\n", err)
		os.Exit(1)
	}
	ctx := &cmdContext{
		network: network,
		logger:  logger,
		// Library packages log through slog backed by the same zap core
		slogger: slog.New(zapslog.NewHandler(logger.Core())),
	}
	defer func() {
		_ = ctx.logger.Sync()
	}()

	if len(f.flagset.Args()) == 0 {
		fmt.Printf(
			"You must specify a subcommand (address, decode, transfer, deploy, call, session-sign, sponsor)\n",
		)
		os.Exit(1)
	}
	ctx.args = f.flagset.Args()[1:]
	ctx.logger.Debug(
		"running subcommand",
		zap.String("subcommand", f.flagset.Arg(0)),
		zap.String("network", network.Name),
	)
	switch f.flagset.Arg(0) {
	case "address":
		err = runAddress(ctx)
	case "decode":
		err = runDecode(ctx)
	case "transfer":
		err = runTransfer(ctx)
	case "deploy":
		err = runDeploy(ctx)
	case "call":
		err = runCall(ctx)
	case "session-sign":
		err = runSessionSign(ctx)
	case "sponsor":
		err = runSponsor(ctx)
	default:
		fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
		os.Exit(1)
	}
	if err != nil {
		ctx.logger.Debug("subcommand failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("ERROR: %s", err)))
		os.Exit(1)
	}
}
