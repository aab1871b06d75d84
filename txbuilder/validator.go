// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// ValidationReport aggregates every invariant violation found in an unsigned
// transaction. Errors preserves the order the checks run in, so reports are
// deterministic for a given transaction.
type ValidationReport struct {
	// Valid is true when no check failed.
	Valid bool `json:"valid"`

	// Errors lists every violated invariant, not just the first.
	Errors []string `json:"errors"`
}

// Validate re-verifies all construction invariants on an unsigned
// transaction, whether it was built by this engine or supplied externally.
// Every check is evaluated; nothing short-circuits, so callers can display
// all problems at once. Validate never returns an error and never panics.
func Validate(tx *UnsignedTx, profile *Profile) *ValidationReport {
	if tx == nil {
		return &ValidationReport{
			Errors: []string{"transaction is nil"},
		}
	}

	var errs []string

	if len(tx.UTXOs) == 0 {
		errs = append(errs, "transaction has no inputs")
	}

	if !profile.ValidAddress(tx.ToAddress) {
		errs = append(errs, fmt.Sprintf("recipient address %q is "+
			"not a valid %s address", tx.ToAddress, profile.Name))
	}
	if !profile.ValidAddress(tx.ChangeAddress) {
		errs = append(errs, fmt.Sprintf("change address %q is not "+
			"a valid %s address", tx.ChangeAddress, profile.Name))
	}

	switch {
	case tx.Amount <= 0:
		errs = append(errs, fmt.Sprintf("amount of %v is not "+
			"positive", tx.Amount))

	case tx.Amount < profile.DustLimit:
		errs = append(errs, fmt.Sprintf("amount of %v is below the "+
			"dust limit of %v", tx.Amount, profile.DustLimit))
	}

	if tx.ChangeAmount > 0 && tx.ChangeAmount < profile.DustLimit {
		errs = append(errs, fmt.Sprintf("change of %v is below the "+
			"dust limit of %v", tx.ChangeAmount,
			profile.DustLimit))
	}

	if tx.TotalInput < tx.Amount+tx.Fee {
		errs = append(errs, fmt.Sprintf("total input of %v does not "+
			"cover amount %v plus fee %v", tx.TotalInput,
			tx.Amount, tx.Fee))
	}

	if tx.Fee <= 0 {
		errs = append(errs, fmt.Sprintf("fee of %v is not positive",
			tx.Fee))
	}

	outpoints := fn.NewSet[wire.OutPoint]()
	for _, utxo := range tx.UTXOs {
		outpoints.Add(utxo.OutPoint)
	}
	if len(outpoints) != len(tx.UTXOs) {
		errs = append(errs, "inputs contain duplicate outpoints")
	}

	return &ValidationReport{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
