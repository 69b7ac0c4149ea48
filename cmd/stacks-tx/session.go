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
	"errors"
	"flag"
	"fmt"

	"github.com/blinklabs-io/gostacks/signer"
	"github.com/blinklabs-io/gostacks/transaction"
	"go.uber.org/zap"
)

type sessionSignFlags struct {
	flagset     *flag.FlagSet
	session     string
	sessionFile string
	tx          string
	txFile      string
	publicKeys  stringList
	keyFile     string
	skip        bool
	finalize    bool
}

func newSessionSignFlags() *sessionSignFlags {
	f := &sessionSignFlags{
		flagset: flag.NewFlagSet("session-sign", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.session, "session", "", "hex encoded signing session")
	f.flagset.StringVar(&f.sessionFile, "session-file", "", "file containing a hex encoded signing session")
	f.flagset.StringVar(&f.tx, "tx", "", "hex encoded unsigned transaction, starts a new session")
	f.flagset.StringVar(&f.txFile, "tx-file", "", "file containing a hex encoded unsigned transaction")
	f.flagset.Var(
		&f.publicKeys,
		"public-key",
		"hex public key of the multi-sig origin in order, repeated for each party (new sessions only)",
	)
	f.flagset.StringVar(&f.keyFile, "key-file", "", "file containing the hex private key to sign with")
	f.flagset.BoolVar(&f.skip, "skip", false, "fill the next slot with its public key instead of signing")
	f.flagset.BoolVar(&f.finalize, "finalize", false, "complete the session and print the signed transaction")
	return f
}

func (f *sessionSignFlags) load() (*signer.Session, error) {
	if f.session != "" || f.sessionFile != "" {
		data, err := readHexInput(f.session, f.sessionFile)
		if err != nil {
			return nil, err
		}
		return signer.DecodeSession(data)
	}
	if f.tx == "" && f.txFile == "" {
		return nil, errors.New("you must specify -session/-session-file or -tx/-tx-file")
	}
	data, err := readHexInput(f.tx, f.txFile)
	if err != nil {
		return nil, err
	}
	tx, err := transaction.Deserialize(data)
	if err != nil {
		return nil, err
	}
	pubKeys, err := parsePublicKeys(f.publicKeys)
	if err != nil {
		return nil, err
	}
	return signer.NewSession(tx, pubKeys)
}

func runSessionSign(ctx *cmdContext) error {
	f := newSessionSignFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	if f.skip && f.finalize {
		return errors.New("-skip and -finalize cannot be combined")
	}
	session, err := f.load()
	if err != nil {
		return err
	}
	slot, err := session.NextSlot()
	if err != nil {
		return err
	}
	switch {
	case f.finalize:
		tx, err := session.Finalize()
		if err != nil {
			return err
		}
		ctx.logger.Debug("finalized session")
		return printTransaction(tx)
	case f.skip:
		if err := session.Skip(); err != nil {
			return err
		}
		ctx.logger.Debug("skipped slot", zap.Int("slot", slot))
	default:
		key, err := readPrivateKey(f.keyFile)
		if err != nil {
			return err
		}
		if err := session.Sign(key, signer.WithLogger(ctx.slogger)); err != nil {
			return err
		}
		ctx.logger.Debug("signed slot", zap.Int("slot", slot))
	}
	data, err := session.Encode()
	if err != nil {
		return err
	}
	fmt.Println(
		labelStyle.Render("Next slot:"),
		valueStyle.Render(fmt.Sprintf("%d of %d", slot+1, len(session.PublicKeys))),
	)
	fmt.Println(hex.EncodeToString(data))
	return nil
}
