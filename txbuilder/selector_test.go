// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/george-popescu/expo-trust-core/unit"
)

// testUTXO builds a UTXO with a synthetic txid derived from the given seed.
func testUTXO(t *testing.T, seed string, vout uint32, value int64) UTXO {
	t.Helper()

	hash, err := chainhash.NewHashFromStr(seed)
	require.NoError(t, err)

	return UTXO{
		TxOut:    wire.TxOut{Value: value},
		OutPoint: wire.OutPoint{Hash: *hash, Index: vout},
	}
}

// values extracts the input values of a UTXO slice, in order.
func values(utxos []UTXO) []int64 {
	vals := make([]int64, len(utxos))
	for i, u := range utxos {
		vals[i] = u.Value
	}

	return vals
}

// TestArrangeUTXOs checks the ordering produced by each selection strategy,
// including stability for equal sort keys.
func TestArrangeUTXOs(t *testing.T) {
	t.Parallel()

	utxos := []UTXO{
		testUTXO(t, "a1", 0, 5000),
		testUTXO(t, "b2", 1, 3000),
		testUTXO(t, "c3", 0, 1000),
	}

	testCases := []struct {
		name     string
		strategy SelectionStrategy
		target   btcutil.Amount
		expected []int64
	}{
		{
			name:     "largest first",
			strategy: SelectLargestFirst,
			target:   4000,
			expected: []int64{5000, 3000, 1000},
		},
		{
			name:     "smallest first",
			strategy: SelectSmallestFirst,
			target:   4000,
			expected: []int64{1000, 3000, 5000},
		},
		{
			name:     "closest match prefers near-exact coin",
			strategy: SelectClosestMatch,
			target:   2900,
			expected: []int64{3000, 1000, 5000},
		},
		{
			name:     "closest match ties keep provider order",
			strategy: SelectClosestMatch,
			target:   4000,
			expected: []int64{5000, 3000, 1000},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			arranged := tc.strategy.ArrangeUTXOs(
				utxos, tc.target,
			)
			require.Equal(t, tc.expected, values(arranged))

			// The input slice is never reordered.
			require.Equal(t, []int64{5000, 3000, 1000},
				values(utxos))
		})
	}
}

// TestArrangeUTXOsStable checks that UTXOs with equal values preserve the
// provider's original order under both value sorts.
func TestArrangeUTXOsStable(t *testing.T) {
	t.Parallel()

	utxos := []UTXO{
		testUTXO(t, "d4", 0, 2000),
		testUTXO(t, "d4", 1, 2000),
		testUTXO(t, "e5", 0, 2000),
	}

	for _, strategy := range []SelectionStrategy{
		SelectLargestFirst, SelectSmallestFirst,
	} {
		arranged := strategy.ArrangeUTXOs(utxos, 1000)
		require.Equal(t, utxos, arranged, "strategy %v",
			strategy.Name())
	}
}

// TestStrategyByName checks strategy wire name resolution.
func TestStrategyByName(t *testing.T) {
	t.Parallel()

	for _, strategy := range []SelectionStrategy{
		SelectLargestFirst, SelectSmallestFirst, SelectClosestMatch,
	} {
		resolved, err := StrategyByName(strategy.Name())
		require.NoError(t, err)
		require.Same(t, strategy, resolved)
	}

	_, err := StrategyByName("branch-and-bound")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

// TestSelectCoins checks the greedy selection loop against both chain
// profiles, including the change projection and the dust folding policy.
func TestSelectCoins(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		profile        *Profile
		utxos          []UTXO
		target         btcutil.Amount
		feeRate        unit.SatPerVByte
		expectedValues []int64
		expectedTotal  btcutil.Amount
		expectedFee    btcutil.Amount
		expectedChange btcutil.Amount
	}{
		{
			// The first input already exceeds the target by more
			// than the dust limit, so a change output is
			// projected and the fee covers 1 input and 2
			// outputs: 68 + 2*31 + 10 = 140 vbytes.
			name:    "bitcoin single input with change",
			profile: BitcoinProfile,
			utxos: []UTXO{
				testUTXO(t, "a1", 0, 5000),
				testUTXO(t, "b2", 0, 3000),
				testUTXO(t, "c3", 0, 1000),
			},
			target:         4000,
			feeRate:        1,
			expectedValues: []int64{5000},
			expectedTotal:  5000,
			expectedFee:    140,
			expectedChange: 860,
		},
		{
			// The surplus of 291 is below the dust limit, so it
			// is folded into the single-output fee of 109.
			name:    "bitcoin sub-dust change folds into fee",
			profile: BitcoinProfile,
			utxos: []UTXO{
				testUTXO(t, "a1", 0, 5000),
			},
			target:         4600,
			feeRate:        1,
			expectedValues: []int64{5000},
			expectedTotal:  5000,
			expectedFee:    400,
			expectedChange: 0,
		},
		{
			// The input covers the target plus fee exactly.
			name:    "bitcoin exact cover without change",
			profile: BitcoinProfile,
			utxos: []UTXO{
				testUTXO(t, "a1", 0, 4709),
			},
			target:         4600,
			feeRate:        1,
			expectedValues: []int64{4709},
			expectedTotal:  4709,
			expectedFee:    109,
			expectedChange: 0,
		},
		{
			// Three inputs are needed; the leftover 155 is
			// sub-dust and folded into the fee.
			name:    "bitcoin multiple inputs",
			profile: BitcoinProfile,
			utxos: []UTXO{
				testUTXO(t, "a1", 0, 1000),
				testUTXO(t, "b2", 0, 800),
				testUTXO(t, "c3", 0, 600),
			},
			target:         2000,
			feeRate:        1,
			expectedValues: []int64{1000, 800, 600},
			expectedTotal:  2400,
			expectedFee:    400,
			expectedChange: 0,
		},
		{
			// A surplus of 0.5 DOGE is below the 1 DOGE dust
			// limit and must never surface as a change output.
			name:    "dogecoin dust folding",
			profile: DogecoinProfile,
			utxos: []UTXO{
				testUTXO(t, "a1", 0, 1_050_192_000),
			},
			target:         1_000_000_000,
			feeRate:        1000,
			expectedValues: []int64{1_050_192_000},
			expectedTotal:  1_050_192_000,
			expectedFee:    50_192_000,
			expectedChange: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := SelectCoins(
				tc.utxos, tc.target, tc.feeRate, tc.profile,
				SelectLargestFirst,
			)
			require.NoError(t, err)

			require.Equal(t, tc.expectedValues,
				values(result.Selected))
			require.Equal(t, tc.expectedTotal, result.TotalInput)
			require.Equal(t, tc.expectedFee, result.Fee)
			require.Equal(t, tc.expectedChange, result.Change)

			assertSelectionInvariants(
				t, result, tc.target, tc.profile,
			)
		})
	}
}

// assertSelectionInvariants checks the numeric invariants every successful
// selection must satisfy regardless of the inputs.
func assertSelectionInvariants(t *testing.T, result *SelectionResult,
	target btcutil.Amount, profile *Profile) {

	t.Helper()

	var sum btcutil.Amount
	outpoints := make(map[wire.OutPoint]struct{})
	for _, utxo := range result.Selected {
		sum += btcutil.Amount(utxo.Value)

		_, dup := outpoints[utxo.OutPoint]
		require.False(t, dup, "duplicate outpoint %v", utxo.OutPoint)
		outpoints[utxo.OutPoint] = struct{}{}
	}

	require.Equal(t, sum, result.TotalInput)
	require.GreaterOrEqual(t, result.TotalInput, target+result.Fee)
	require.Equal(t, result.TotalInput-target-result.Fee, result.Change)

	if result.Change > 0 {
		require.GreaterOrEqual(t, result.Change, profile.DustLimit)
	}
}

// TestSelectCoinsClosestMatch checks the greedy loop fed by the closest
// match arrangement: a second input triggers the change output projection
// and the fee is re-estimated for the larger size.
func TestSelectCoinsClosestMatch(t *testing.T) {
	t.Parallel()

	utxos := []UTXO{
		testUTXO(t, "a1", 0, 5000),
		testUTXO(t, "b2", 0, 3000),
		testUTXO(t, "c3", 0, 1000),
	}

	result, err := SelectCoins(
		utxos, 2900, 1, BitcoinProfile, SelectClosestMatch,
	)
	require.NoError(t, err)

	// The 3000 coin alone cannot cover 2900 plus the 109 single-output
	// fee, so the next-closest 1000 coin joins. The surplus then clears
	// the dust limit, the fee is re-estimated for 2 inputs and 2 outputs
	// (208 vbytes) and the rest is change.
	require.Equal(t, []int64{3000, 1000}, values(result.Selected))
	require.Equal(t, btcutil.Amount(208), result.Fee)
	require.Equal(t, btcutil.Amount(892), result.Change)

	assertSelectionInvariants(t, result, 2900, BitcoinProfile)
}

// TestSelectCoinsInsufficientFunds checks that exhaustion of the UTXO set
// reports the shortfall with the last fee estimate included.
func TestSelectCoinsInsufficientFunds(t *testing.T) {
	t.Parallel()

	utxos := []UTXO{
		testUTXO(t, "a1", 0, 100),
		testUTXO(t, "b2", 0, 200),
	}

	_, err := SelectCoins(utxos, 1000, 1, BitcoinProfile,
		SelectLargestFirst)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)

	// Both inputs were consumed before failing. The last fee estimate
	// covered 2 inputs and 1 output: 2*68 + 31 + 10 = 177.
	require.Equal(t, btcutil.Amount(300), fundsErr.Have)
	require.Equal(t, btcutil.Amount(1177), fundsErr.Needed)
}

// TestSelectCoinsDuplicateOutpoints checks that a duplicated outpoint in the
// provider snapshot is only ever counted once.
func TestSelectCoinsDuplicateOutpoints(t *testing.T) {
	t.Parallel()

	dup := testUTXO(t, "a1", 0, 5000)
	utxos := []UTXO{dup, dup}

	_, err := SelectCoins(utxos, 8000, 1, BitcoinProfile,
		SelectLargestFirst)

	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)

	// The duplicate must not be double counted towards the total.
	require.Equal(t, btcutil.Amount(5000), fundsErr.Have)
}

// TestSelectCoinsInvalidTarget checks that non-positive targets are
// rejected.
func TestSelectCoinsInvalidTarget(t *testing.T) {
	t.Parallel()

	utxos := []UTXO{testUTXO(t, "a1", 0, 5000)}

	_, err := SelectCoins(utxos, 0, 1, BitcoinProfile,
		SelectLargestFirst)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SelectCoins(utxos, -1, 1, BitcoinProfile,
		SelectLargestFirst)
	require.ErrorIs(t, err, ErrInvalidAmount)
}
