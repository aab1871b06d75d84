// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/george-popescu/expo-trust-core/unit"
)

// SelectionStrategy is an interface that represents a coin selection
// strategy. A strategy is responsible for ordering the candidate UTXOs
// before they are handed to the greedy selection loop; it never decides
// which coins are ultimately spent.
type SelectionStrategy interface {
	// ArrangeUTXOs returns the eligible UTXOs in the order the greedy
	// loop should consume them. The arrangement must be a copy: the
	// caller's slice is never mutated. The sort must be stable so that
	// UTXOs with equal sort keys preserve the provider's original order.
	ArrangeUTXOs(eligible []UTXO, target btcutil.Amount) []UTXO

	// Name returns the strategy's wire name as accepted by
	// StrategyByName.
	Name() string
}

var (
	// SelectLargestFirst always picks the largest available UTXO to add
	// to the transaction next. This is the engine's default strategy.
	SelectLargestFirst SelectionStrategy = &LargestFirstSelector{}

	// SelectSmallestFirst always picks the smallest available UTXO to
	// add to the transaction next. This consolidates small outputs at
	// the cost of a larger transaction.
	SelectSmallestFirst SelectionStrategy = &SmallestFirstSelector{}

	// SelectClosestMatch picks the UTXO whose value is closest to the
	// target amount first. Despite its "optimal" wire name this is a
	// closest-single-match heuristic, not a minimal-fee or minimal-input
	// subset-sum solver.
	SelectClosestMatch SelectionStrategy = &ClosestMatchSelector{}
)

// StrategyByName resolves a strategy wire name to its implementation. The
// accepted names are "largest-first", "smallest-first" and "optimal".
func StrategyByName(name string) (SelectionStrategy, error) {
	switch name {
	case SelectLargestFirst.Name():
		return SelectLargestFirst, nil

	case SelectSmallestFirst.Name():
		return SelectSmallestFirst, nil

	case SelectClosestMatch.Name():
		return SelectClosestMatch, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// sortByValue is a sortable type for ordering UTXOs by their value.
type sortByValue []UTXO

func (s sortByValue) Len() int { return len(s) }
func (s sortByValue) Less(i, j int) bool {
	return s[i].Value < s[j].Value
}
func (s sortByValue) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// LargestFirstSelector is an implementation of the SelectionStrategy that
// arranges coins in descending order of value.
type LargestFirstSelector struct{}

// ArrangeUTXOs returns the eligible UTXOs sorted by descending value.
func (*LargestFirstSelector) ArrangeUTXOs(eligible []UTXO,
	_ btcutil.Amount) []UTXO {

	arranged := make([]UTXO, len(eligible))
	copy(arranged, eligible)

	sort.Stable(sort.Reverse(sortByValue(arranged)))

	return arranged
}

// Name returns the strategy's wire name.
func (*LargestFirstSelector) Name() string { return "largest-first" }

// SmallestFirstSelector is an implementation of the SelectionStrategy that
// arranges coins in ascending order of value.
type SmallestFirstSelector struct{}

// ArrangeUTXOs returns the eligible UTXOs sorted by ascending value.
func (*SmallestFirstSelector) ArrangeUTXOs(eligible []UTXO,
	_ btcutil.Amount) []UTXO {

	arranged := make([]UTXO, len(eligible))
	copy(arranged, eligible)

	sort.Stable(sortByValue(arranged))

	return arranged
}

// Name returns the strategy's wire name.
func (*SmallestFirstSelector) Name() string { return "smallest-first" }

// ClosestMatchSelector is an implementation of the SelectionStrategy that
// arranges coins by ascending distance between their value and the target
// amount, so a single near-exact coin is tried before any others.
type ClosestMatchSelector struct{}

// ArrangeUTXOs returns the eligible UTXOs sorted by ascending
// |value - target|.
func (*ClosestMatchSelector) ArrangeUTXOs(eligible []UTXO,
	target btcutil.Amount) []UTXO {

	arranged := make([]UTXO, len(eligible))
	copy(arranged, eligible)

	distance := func(u *UTXO) btcutil.Amount {
		d := btcutil.Amount(u.Value) - target
		if d < 0 {
			return -d
		}

		return d
	}

	sort.SliceStable(arranged, func(i, j int) bool {
		return distance(&arranged[i]) < distance(&arranged[j])
	})

	return arranged
}

// Name returns the strategy's wire name.
func (*ClosestMatchSelector) Name() string { return "optimal" }

// SelectionResult describes the outcome of a successful coin selection. The
// following always hold: TotalInput is the exact sum of the selected values,
// TotalInput covers the target amount plus Fee, and Change is either zero or
// at least the profile's dust limit.
type SelectionResult struct {
	// Selected holds the chosen inputs in selection order.
	Selected []UTXO

	// TotalInput is the sum of the selected input values.
	TotalInput btcutil.Amount

	// Fee is the projected fee, including any sub-dust change that was
	// folded into it.
	Fee btcutil.Amount

	// Change is the value returned to the sender, or zero when no
	// change output is created.
	Change btcutil.Amount
}

// SelectCoins greedily accumulates inputs in the order chosen by the
// strategy until the target amount plus the projected fee is covered.
//
// The fee depends on the number of inputs and outputs, which depends on how
// much is still needed, which depends on the fee. The loop resolves this by
// recomputing the projection after every added input: a change output is
// projected only when the running total exceeds the target plus the current
// fee estimate by more than the dust limit, and the fee is then re-estimated
// from the current input count and that projected output count. Change that
// ends up below the dust limit is folded into the fee rather than emitted.
//
// This is a single-pass heuristic without backtracking. It is deterministic
// for a given arrangement but may select more inputs, and therefore pay more
// fee, than a subset-sum-optimal solution would. Duplicate outpoints in the
// candidate set are skipped so no input can be spent twice.
func SelectCoins(utxos []UTXO, target btcutil.Amount,
	feeRate unit.SatPerVByte, profile *Profile,
	strategy SelectionStrategy) (*SelectionResult, error) {

	if target <= 0 {
		return nil, fmt.Errorf("%w: target of %v is not positive",
			ErrInvalidAmount, target)
	}
	if strategy == nil {
		strategy = SelectLargestFirst
	}

	arranged := strategy.ArrangeUTXOs(utxos, target)

	var (
		selected   []UTXO
		totalInput btcutil.Amount
		fee        btcutil.Amount
	)

	seen := fn.NewSet[wire.OutPoint]()

	for _, utxo := range arranged {
		if seen.Contains(utxo.OutPoint) {
			log.Warnf("Skipping duplicate outpoint %v in "+
				"candidate set", utxo.OutPoint)

			continue
		}
		seen.Add(utxo.OutPoint)

		selected = append(selected, utxo)
		totalInput += btcutil.Amount(utxo.Value)

		// Project the output count using the fee estimate from the
		// previous round: a change output is only worth creating if
		// the surplus clears the dust limit.
		outputCount := 1
		if totalInput > target+fee+profile.DustLimit {
			outputCount = 2
		}

		fee = feeRate.FeeForSize(EstimateSize(
			len(selected), outputCount, profile,
		))

		if totalInput < target+fee {
			continue
		}

		change := totalInput - target - fee
		if change > 0 && change < profile.DustLimit {
			// Sub-dust change is absorbed into the fee rather
			// than emitted as an uneconomical output.
			fee += change
			change = 0
		}

		log.Debugf("Selected %d input(s) with strategy %v: "+
			"total=%v, fee=%v, change=%v", len(selected),
			strategy.Name(), totalInput, fee, change)

		return &SelectionResult{
			Selected:   selected,
			TotalInput: totalInput,
			Fee:        fee,
			Change:     change,
		}, nil
	}

	return nil, &InsufficientFundsError{
		Needed: target + fee,
		Have:   totalInput,
	}
}
