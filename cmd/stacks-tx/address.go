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

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/keys"
	"go.uber.org/zap"
)

type addressFlags struct {
	flagset            *flag.FlagSet
	publicKeys         stringList
	signaturesRequired uint
	hashMode           string
	keyFile            string
}

func newAddressFlags() *addressFlags {
	f := &addressFlags{
		flagset: flag.NewFlagSet("address", flag.ExitOnError),
	}
	f.flagset.Var(
		&f.publicKeys,
		"public-key",
		"hex public key, may be repeated or comma separated (reads a private key when not set)",
	)
	f.flagset.UintVar(
		&f.signaturesRequired,
		"signatures-required",
		1,
		"signatures required for multi-sig hash modes",
	)
	f.flagset.StringVar(
		&f.hashMode,
		"hash-mode",
		"p2pkh",
		"hash mode (p2pkh, p2sh, p2wpkh, p2wsh)",
	)
	f.flagset.StringVar(&f.keyFile, "key-file", "", "path to a file with the hex private key")
	return f
}

func parseHashMode(name string) (address.HashMode, error) {
	for _, hashMode := range []address.HashMode{
		address.HashModeP2PKH,
		address.HashModeP2SH,
		address.HashModeP2WPKH,
		address.HashModeP2WSH,
	} {
		if hashMode.String() == name {
			return hashMode, nil
		}
	}
	return 0, fmt.Errorf("unknown hash mode: %s", name)
}

func runAddress(ctx *cmdContext) error {
	f := newAddressFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	hashMode, err := parseHashMode(f.hashMode)
	if err != nil {
		return err
	}
	pubKeys, err := parsePublicKeys(f.publicKeys)
	if err != nil {
		return err
	}
	if len(pubKeys) == 0 {
		key, err := readPrivateKey(f.keyFile)
		if err != nil {
			return err
		}
		pubKeys = []keys.PublicKey{key.PublicKey()}
	}
	if f.signaturesRequired > uint(len(pubKeys)) {
		return fmt.Errorf(
			"%d signatures required with only %d public keys",
			f.signaturesRequired,
			len(pubKeys),
		)
	}
	origin := builder.MultiSigOrigin(hashMode, uint16(f.signaturesRequired), pubKeys...) // #nosec G115
	if !hashMode.IsMultiSig() {
		if len(pubKeys) != 1 {
			return fmt.Errorf("hash mode %s takes exactly one public key", hashMode)
		}
		origin = builder.SingleSigOrigin(pubKeys[0])
		origin.HashMode = hashMode
	}
	addr, err := origin.Address(ctx.network)
	if err != nil {
		return err
	}
	ctx.logger.Debug(
		"derived address",
		zap.String("hash_mode", hashMode.String()),
		zap.Int("public_keys", len(pubKeys)),
	)
	fmt.Println(labelStyle.Render("Address") + valueStyle.Render(addr.String()))
	btcAddr, err := addr.ToBitcoin()
	if err == nil {
		fmt.Println(labelStyle.Render("Bitcoin address") + valueStyle.Render(btcAddr))
	}
	return nil
}
