// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

var (
	// ErrInvalidAddress is returned when a sender, recipient or change
	// address does not match the chain's address format.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when the requested amount is not
	// positive or is below the chain's dust limit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNoUTXOs is returned when the UTXO provider reports no spendable
	// outputs for the sender address.
	ErrNoUTXOs = errors.New("no utxos found")

	// ErrInsufficientFunds is returned when coin selection exhausts the
	// full UTXO set without covering the target amount plus fees. Use
	// errors.As with *InsufficientFundsError to obtain the amounts.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownStrategy is returned when a coin selection strategy name
	// does not resolve to a known strategy.
	ErrUnknownStrategy = errors.New("unknown coin selection strategy")

	// ErrUnknownChain is returned when a chain name does not resolve to a
	// registered chain profile.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrMissingProfile is returned when a Builder is configured without
	// a chain profile.
	ErrMissingProfile = errors.New("missing chain profile")

	// ErrMissingProvider is returned when a Builder is configured without
	// a UTXO provider.
	ErrMissingProvider = errors.New("missing utxo provider")

	// ErrNilTxIntent is returned when a nil TxIntent is provided.
	ErrNilTxIntent = errors.New("nil TxIntent")
)

// InsufficientFundsError describes a failed coin selection. Needed is the
// target amount plus the last fee estimate at the point the UTXO set was
// exhausted; Have is the sum of every available input.
type InsufficientFundsError struct {
	// Needed is the total amount the selection would have had to cover.
	Needed btcutil.Amount

	// Have is the total value of all candidate inputs.
	Have btcutil.Amount
}

// Error implements the error interface.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %v, have %v",
		e.Needed, e.Have)
}

// Unwrap returns the ErrInsufficientFunds sentinel so callers can match the
// failure with errors.Is.
func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
