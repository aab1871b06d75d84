// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unit

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

// TestFeeForSize checks the fee calculation for per-vbyte rates.
func TestFeeForSize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		rate        SatPerVByte
		size        VByte
		expectedFee btcutil.Amount
	}{
		{
			name:        "one sat per vbyte",
			rate:        NewSatPerVByte(1),
			size:        109,
			expectedFee: 109,
		},
		{
			name:        "ten sats per vbyte",
			rate:        NewSatPerVByte(10),
			size:        140,
			expectedFee: 1400,
		},
		{
			name:        "zero size",
			rate:        NewSatPerVByte(25),
			size:        0,
			expectedFee: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expectedFee,
				tc.rate.FeeForSize(tc.size))
		})
	}
}

// TestFeeForSizeRoundUp checks that the kilobyte-denominated rate rounds the
// resulting fee up to the nearest satoshi.
func TestFeeForSizeRoundUp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		rate        SatPerKVByte
		size        VByte
		expectedFee btcutil.Amount
	}{
		{
			name:        "exact kilobyte",
			rate:        NewSatPerKVByte(1000),
			size:        1000,
			expectedFee: 1000,
		},
		{
			name:        "sub-satoshi remainder rounds up",
			rate:        NewSatPerKVByte(999),
			size:        109,
			expectedFee: 109,
		},
		{
			name:        "one extra vbyte rounds up",
			rate:        NewSatPerKVByte(1500),
			size:        101,
			expectedFee: 152,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expectedFee,
				tc.rate.FeeForSizeRoundUp(tc.size))

			// The rounded-up fee is never smaller than the
			// truncated fee.
			require.GreaterOrEqual(t,
				tc.rate.FeeForSizeRoundUp(tc.size),
				tc.rate.FeeForSize(tc.size))
		})
	}
}

// TestRateConversions checks the conversions between per-vbyte and
// per-kilo-vbyte rates.
func TestRateConversions(t *testing.T) {
	t.Parallel()

	rate := NewSatPerVByte(7)
	require.Equal(t, NewSatPerKVByte(7000), rate.FeePerKVByte())
	require.Equal(t, rate, rate.FeePerKVByte().FeePerVByte())

	require.Equal(t, "7 sat/vb", rate.String())
	require.Equal(t, "7000 sat/kvb", rate.FeePerKVByte().String())
	require.Equal(t, "109 vb", VByte(109).String())
}
