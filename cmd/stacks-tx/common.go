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
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// stringList is a flag.Value collecting repeated flags
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// txFlags holds the flags shared by the transaction building subcommands
type txFlags struct {
	keyFile           string
	nonce             uint64
	fee               uint64
	feeRate           string
	sponsored         bool
	anchorMode        string
	postConditionMode string
}

func (t *txFlags) register(flagset *flag.FlagSet) {
	flagset.StringVar(
		&t.keyFile,
		"key-file",
		"",
		"path to a file with the hex private key (prompts when not set)",
	)
	flagset.Uint64Var(&t.nonce, "nonce", 0, "origin nonce")
	flagset.Uint64Var(&t.fee, "fee", 0, "fee in micro-STX")
	flagset.StringVar(
		&t.feeRate,
		"fee-rate",
		"",
		"decimal fee per byte, overrides -fee",
	)
	flagset.BoolVar(&t.sponsored, "sponsored", false, "build a sponsored transaction")
	flagset.StringVar(
		&t.anchorMode,
		"anchor-mode",
		"any",
		"anchor mode (on-chain, off-chain, any)",
	)
	flagset.StringVar(
		&t.postConditionMode,
		"post-condition-mode",
		"deny",
		"post-condition mode (allow, deny)",
	)
}

func (t *txFlags) options(ctx *cmdContext) ([]builder.Option, error) {
	opts := []builder.Option{
		builder.WithNetwork(ctx.network),
		builder.WithNonce(t.nonce),
		builder.WithFee(t.fee),
		builder.WithFeeRate(t.feeRate),
		builder.WithSponsored(t.sponsored),
		builder.WithLogger(ctx.slogger),
	}
	switch t.anchorMode {
	case "on-chain":
		opts = append(opts, builder.WithAnchorMode(transaction.AnchorModeOnChainOnly))
	case "off-chain":
		opts = append(opts, builder.WithAnchorMode(transaction.AnchorModeOffChainOnly))
	case "any":
		opts = append(opts, builder.WithAnchorMode(transaction.AnchorModeAny))
	default:
		return nil, fmt.Errorf("unknown anchor mode: %s", t.anchorMode)
	}
	switch t.postConditionMode {
	case "allow":
		opts = append(opts, builder.WithPostConditionMode(transaction.PostConditionModeAllow))
	case "deny":
		opts = append(opts, builder.WithPostConditionMode(transaction.PostConditionModeDeny))
	default:
		return nil, fmt.Errorf("unknown post-condition mode: %s", t.postConditionMode)
	}
	return opts, nil
}

// readPrivateKey loads a hex private key from a file, or from the terminal without echo,
// or from the first line of stdin when it is not a terminal
func readPrivateKey(keyFile string) (keys.PrivateKey, error) {
	var keyHex string
	switch {
	case keyFile != "":
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return keys.PrivateKey{}, err
		}
		keyHex = string(data)
	case term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Fprint(os.Stderr, "Private key: ")
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return keys.PrivateKey{}, err
		}
		keyHex = string(data)
	default:
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return keys.PrivateKey{}, fmt.Errorf("failed to read private key: %w", err)
		}
		keyHex = line
	}
	return keys.ParsePrivateKey(strings.TrimSpace(keyHex))
}

// readHexInput returns the bytes of a hex string given directly or in a file
func readHexInput(hexData string, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		hexData = string(data)
	}
	hexData = strings.TrimPrefix(strings.TrimSpace(hexData), "0x")
	if hexData == "" {
		return nil, errors.New("no input provided")
	}
	return hex.DecodeString(hexData)
}

func parsePublicKeys(values []string) ([]keys.PublicKey, error) {
	ret := make([]keys.PublicKey, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			pubKey, err := keys.ParsePublicKey(strings.TrimSpace(item))
			if err != nil {
				return nil, fmt.Errorf("invalid public key %q: %w", item, err)
			}
			ret = append(ret, pubKey)
		}
	}
	return ret, nil
}

// printTransaction writes the hex encoding of a transaction to stdout
func printTransaction(tx *transaction.Transaction) error {
	data, err := tx.Serialize()
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(data))
	return nil
}

// originFlags selects between signing with a private key and building an unsigned
// transaction for the given public keys
type originFlags struct {
	publicKeys         stringList
	signaturesRequired uint
}

func (o *originFlags) register(flagset *flag.FlagSet) {
	flagset.Var(
		&o.publicKeys,
		"public-key",
		"build an unsigned transaction for this hex public key, may be repeated for multi-sig",
	)
	flagset.UintVar(
		&o.signaturesRequired,
		"signatures-required",
		1,
		"signatures required for a multi-sig origin",
	)
}

// origin returns the unsigned origin, or false when the transaction should be signed
func (o *originFlags) origin() (builder.Origin, bool, error) {
	pubKeys, err := parsePublicKeys(o.publicKeys)
	if err != nil {
		return builder.Origin{}, false, err
	}
	switch {
	case len(pubKeys) == 0:
		return builder.Origin{}, false, nil
	case len(pubKeys) == 1 && o.signaturesRequired <= 1:
		return builder.SingleSigOrigin(pubKeys[0]), true, nil
	case o.signaturesRequired > uint(len(pubKeys)):
		return builder.Origin{}, false, fmt.Errorf(
			"%d signatures required with only %d public keys",
			o.signaturesRequired,
			len(pubKeys),
		)
	default:
		return builder.MultiSigOrigin(
			address.HashModeP2SH,
			uint16(o.signaturesRequired), // #nosec G115
			pubKeys...,
		), true, nil
	}
}

// buildTransaction builds an unsigned transaction when public keys were given, and a
// transaction signed by the private key otherwise
func buildTransaction(
	t *txFlags,
	o *originFlags,
	unsigned func(builder.Origin) (*transaction.Transaction, error),
	signed func(keys.PrivateKey) (*transaction.Transaction, error),
) (*transaction.Transaction, error) {
	origin, ok, err := o.origin()
	if err != nil {
		return nil, err
	}
	if ok {
		return unsigned(origin)
	}
	key, err := readPrivateKey(t.keyFile)
	if err != nil {
		return nil, err
	}
	return signed(key)
}
