// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// trustcore is a command line front end for the transaction construction
// engine: it assembles unsigned transactions from explorer-reported UTXOs,
// scans address balances, shows recommended fee rates and re-validates
// transactions. It never touches private keys; signing and broadcast belong
// to external tools.
package main

import (
	"fmt"
	"os"
)

func main() {
	// loadConfig parses the command line and config file; the requested
	// subcommand runs as part of the parse.
	err := loadConfig()

	if logRotator != nil {
		logRotator.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
