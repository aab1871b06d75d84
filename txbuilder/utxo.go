// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// UTXO represents a spendable output reported by an explorer backend which is
// available for coin selection. Its identity is the embedded outpoint; a
// selected set never contains the same outpoint twice.
type UTXO struct {
	wire.TxOut
	wire.OutPoint

	// Confirmations is the number of confirmations the funding
	// transaction has. Zero means unconfirmed or unknown, depending on
	// what the backend reports.
	Confirmations int64
}

// Amount returns the output value as a btcutil.Amount.
func (u *UTXO) Amount() btcutil.Amount {
	return btcutil.Amount(u.Value)
}

// UTXOProvider fetches the spendable outputs of an address from an external
// source, typically a public explorer HTTP API. The provider key selects
// which backend to query; an empty key means the implementation's default.
//
// The engine performs exactly one provider call per build and never retries;
// a hung or failing call propagates directly to the caller, who owns any
// retry or backoff policy. Implementations must be safe for concurrent
// invocation if builds are issued from multiple goroutines.
type UTXOProvider interface {
	// GetUTXOs returns the current spendable outputs of the given
	// address.
	GetUTXOs(ctx context.Context, address, provider string) ([]UTXO,
		error)
}
