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
	"strconv"
	"strings"

	stacks "github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/transaction"
	"go.uber.org/zap"
)

type decodeFlags struct {
	flagset *flag.FlagSet
	txHex   string
	txFile  string
}

func newDecodeFlags() *decodeFlags {
	f := &decodeFlags{
		flagset: flag.NewFlagSet("decode", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.txHex, "tx", "", "hex encoded transaction")
	f.flagset.StringVar(&f.txFile, "tx-file", "", "path to a file with the hex encoded transaction")
	return f
}

func runDecode(ctx *cmdContext) error {
	f := newDecodeFlags()
	if err := f.flagset.Parse(ctx.args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	data, err := readHexInput(f.txHex, f.txFile)
	if err != nil {
		return err
	}
	tx, err := transaction.Deserialize(data)
	if err != nil {
		return err
	}
	ctx.logger.Debug("decoded transaction", zap.Int("size", len(data)))
	fmt.Print(renderTransaction(tx))
	return nil
}

// renderTransaction formats a transaction for display
func renderTransaction(tx *transaction.Transaction) string {
	var sb strings.Builder
	row := func(label string, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}
	network := stacks.NetworkByChainId(tx.ChainId)
	if !network.Valid() {
		network = stacks.NetworkTestnet
		if tx.Version == transaction.TransactionVersionMainnet {
			network = stacks.NetworkMainnet
		}
	}
	txId, err := tx.TxID()
	sb.WriteString(titleStyle.Render("Transaction"))
	sb.WriteString("\n")
	if err == nil {
		row("TxID", txId.String())
	}
	row("Version", tx.Version.String())
	row("Chain ID", fmt.Sprintf("0x%08x", tx.ChainId))
	row("Anchor mode", tx.AnchorMode.String())
	row("Auth", tx.Auth.Type.String())
	renderCondition := func(name string, cond transaction.SpendingCondition) {
		header := cond.Header()
		row(name, network.Address(cond).String())
		row("  Hash mode", header.HashMode.String())
		row("  Nonce", strconv.FormatUint(header.Nonce, 10))
		row("  Fee", strconv.FormatUint(header.Fee, 10))
		row(
			"  Signatures",
			fmt.Sprintf("%d of %d", cond.SignatureCount(), cond.RequiredSignatures()),
		)
	}
	renderCondition("Origin", tx.Auth.Origin)
	if tx.Auth.Type == transaction.AuthTypeSponsored {
		renderCondition("Sponsor", tx.Auth.Sponsor)
	}
	if err := tx.Verify(); err != nil {
		sb.WriteString(labelStyle.Render("Signatures"))
		sb.WriteString(errorStyle.Render(err.Error()))
	} else {
		sb.WriteString(labelStyle.Render("Signatures"))
		sb.WriteString(okStyle.Render("valid"))
	}
	sb.WriteString("\n")
	row("Post-condition mode", tx.PostConditionMode.String())
	for idx, pc := range tx.PostConditions {
		row(fmt.Sprintf("Post-condition %d", idx), postConditionString(pc))
	}
	row("Payload", tx.Payload.Type().String())
	switch p := tx.Payload.(type) {
	case transaction.TokenTransferPayload:
		row("  Recipient", clarity.String(p.Recipient))
		row("  Amount", strconv.FormatUint(p.Amount, 10))
		row("  Memo", strconv.Quote(p.Memo.String()))
	case transaction.SmartContractPayload:
		row("  Name", p.Name)
		row("  Code size", strconv.Itoa(len(p.Code)))
	case transaction.VersionedSmartContractPayload:
		row("  Clarity version", strconv.Itoa(int(p.ClarityVersion)))
		row("  Name", p.Name)
		row("  Code size", strconv.Itoa(len(p.Code)))
	case transaction.ContractCallPayload:
		row("  Contract", p.Address.String()+"."+p.ContractName)
		row("  Function", p.FunctionName)
		for idx, arg := range p.Args {
			row(fmt.Sprintf("  Arg %d", idx), clarity.String(arg))
		}
	}
	return sb.String()
}

func postConditionString(pc transaction.PostCondition) string {
	switch p := pc.(type) {
	case transaction.StxPostCondition:
		return fmt.Sprintf("%s stx %s %d", p.Principal, p.Code, p.Amount)
	case transaction.FungiblePostCondition:
		return fmt.Sprintf("%s %s %s %d", p.Principal, p.Asset, p.Code, p.Amount)
	case transaction.NonFungiblePostCondition:
		return fmt.Sprintf(
			"%s %s %s %s",
			p.Principal,
			p.Asset,
			clarity.String(p.AssetName),
			p.Code,
		)
	default:
		return fmt.Sprintf("%T", pc)
	}
}
