// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/ticker"

	"github.com/george-popescu/expo-trust-core/chain"
	"github.com/george-popescu/expo-trust-core/txbuilder"
	"github.com/george-popescu/expo-trust-core/unit"
)

// defaultFeePollInterval is how often the fees --watch mode refreshes the
// recommendation snapshot.
const defaultFeePollInterval = 30 * time.Second

// buildCommand assembles an unsigned transaction and prints its JSON wire
// form to stdout.
type buildCommand struct {
	From     string `long:"from" description:"Sender address" required:"true"`
	To       string `long:"to" description:"Recipient address" required:"true"`
	Amount   int64  `long:"amount" description:"Amount to send, in the chain's smallest unit" required:"true"`
	FeeRate  int64  `long:"feerate" description:"Fee rate in smallest unit per byte (default: chain profile default)"`
	Change   string `long:"change" description:"Change address (default: sender address)"`
	Strategy string `long:"strategy" description:"Coin selection strategy" choice:"largest-first" choice:"smallest-first" choice:"optimal" default:"largest-first"`
	Provider string `long:"provider" description:"UTXO provider key (default: configured default)"`
}

// Execute runs the build command.
func (c *buildCommand) Execute(_ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	builder, _, err := newBuilder()
	if err != nil {
		return err
	}

	strategy, err := txbuilder.StrategyByName(c.Strategy)
	if err != nil {
		return err
	}

	tx, err := builder.CreateTransaction(
		context.Background(), &txbuilder.TxIntent{
			FromAddress:   c.From,
			ToAddress:     c.To,
			Amount:        btcutil.Amount(c.Amount),
			FeeRate:       unit.SatPerVByte(c.FeeRate),
			ChangeAddress: c.Change,
			Strategy:      strategy,
			Provider:      c.Provider,
		},
	)
	if err != nil {
		return err
	}

	log.Infof("Built unsigned tx: %d input(s), amount=%v, fee=%v, "+
		"change=%v, size=%v", len(tx.UTXOs), tx.Amount, tx.Fee,
		tx.ChangeAmount, tx.EstimatedSize)

	return printJSON(marshalUnsignedTx(tx))
}

// feesCommand prints the active chain's recommended fee tiers.
type feesCommand struct {
	Watch bool `long:"watch" description:"Keep polling and print every refresh"`
}

// Execute runs the fees command.
func (c *feesCommand) Execute(_ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	profile, err := activeProfile()
	if err != nil {
		return err
	}

	clients, err := newClients(profile)
	if err != nil {
		return err
	}

	// Prefer the fee-capable clients in a fixed order.
	var reader chain.FeeReader
	for _, key := range []string{"mempoolspace", "blockcypher"} {
		if feeReader, ok := clients[key].(chain.FeeReader); ok {
			reader = feeReader
			break
		}
	}
	if reader == nil {
		return fmt.Errorf("no fee-capable provider configured for "+
			"chain %s", profile.Name)
	}

	if c.Watch {
		return watchFees(reader)
	}

	estimates, err := reader.RecommendedFees(context.Background())
	if err != nil {
		return err
	}

	return printFees(estimates)
}

// watchFees keeps a FeeWatcher running and prints every refreshed snapshot
// until the process is interrupted.
func watchFees(reader chain.FeeReader) error {
	watcher, err := chain.NewFeeWatcher(&chain.FeeWatcherConfig{
		Reader: reader,
		Ticker: ticker.New(defaultFeePollInterval),
	})
	if err != nil {
		return err
	}

	watcher.Start()
	defer watcher.Stop()

	var last *chain.FeeEstimates
	for {
		time.Sleep(time.Second)

		current := watcher.Current()
		if current == nil || current == last {
			continue
		}
		last = current

		if err := printFees(current); err != nil {
			return err
		}
	}
}

// printFees writes the fee tiers to stdout as JSON.
func printFees(estimates *chain.FeeEstimates) error {
	return printJSON(struct {
		Fastest  int64 `json:"fastest"`
		HalfHour int64 `json:"halfHour"`
		Hour     int64 `json:"hour"`
		Economy  int64 `json:"economy"`
		Minimum  int64 `json:"minimum"`
	}{
		Fastest:  int64(estimates.Fastest),
		HalfHour: int64(estimates.HalfHour),
		Hour:     int64(estimates.Hour),
		Economy:  int64(estimates.Economy),
		Minimum:  int64(estimates.Minimum),
	})
}

// scanCommand sums the spendable balance of one or more addresses.
type scanCommand struct {
	Provider string `long:"provider" description:"UTXO provider key (default: configured default)"`

	Args struct {
		Addresses []string `positional-arg-name:"address" required:"1"`
	} `positional-args:"true"`
}

// Execute runs the scan command.
func (c *scanCommand) Execute(_ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	builder, _, err := newBuilder()
	if err != nil {
		return err
	}

	balances, err := builder.ScanBalances(
		context.Background(), c.Args.Addresses, c.Provider,
	)
	if err != nil {
		return err
	}

	type balanceJSON struct {
		Address   string `json:"address"`
		Total     int64  `json:"total"`
		UTXOCount int    `json:"utxoCount"`
	}

	out := make([]balanceJSON, len(balances))
	for i, balance := range balances {
		out[i] = balanceJSON{
			Address:   balance.Address,
			Total:     int64(balance.Total),
			UTXOCount: balance.UTXOCount,
		}
	}

	return printJSON(out)
}

// validateCommand reads an unsigned transaction in JSON wire form from a
// file (or stdin) and prints the full validation report.
type validateCommand struct {
	Args struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"true"`
}

// Execute runs the validate command.
func (c *validateCommand) Execute(_ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	profile, err := activeProfile()
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if c.Args.File != "" && c.Args.File != "-" {
		f, err := os.Open(c.Args.File)
		if err != nil {
			return err
		}
		defer f.Close()

		in = f
	}

	var wireTx unsignedTxJSON
	if err := json.NewDecoder(in).Decode(&wireTx); err != nil {
		return fmt.Errorf("unable to decode transaction: %w", err)
	}

	tx, err := unmarshalUnsignedTx(&wireTx)
	if err != nil {
		return err
	}

	report := txbuilder.Validate(tx, profile)
	if err := printJSON(report); err != nil {
		return err
	}

	if !report.Valid {
		return fmt.Errorf("transaction failed validation with %d "+
			"error(s)", len(report.Errors))
	}

	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
