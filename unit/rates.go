// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unit

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// kilo is the conversion factor between a per-byte rate and a per-kilobyte
// rate.
const kilo = 1000

// SatPerVByte represents a fee rate in the chain's smallest unit per virtual
// byte. For Bitcoin this is sat/vb, for Dogecoin koinu per byte.
type SatPerVByte btcutil.Amount

// NewSatPerVByte creates a new fee rate from a raw integer rate.
func NewSatPerVByte(rate int64) SatPerVByte {
	return SatPerVByte(rate)
}

// FeeForSize calculates the fee resulting from this fee rate and the given
// size. Because the rate is an integer number of satoshis per vbyte, the
// product is exact and needs no rounding.
func (s SatPerVByte) FeeForSize(size VByte) btcutil.Amount {
	return btcutil.Amount(s) * btcutil.Amount(size)
}

// FeePerKVByte converts the current fee rate from sat/vb to sat/kvb.
func (s SatPerVByte) FeePerKVByte() SatPerKVByte {
	return SatPerKVByte(s * kilo)
}

// String returns a human-readable string of the fee rate.
func (s SatPerVByte) String() string {
	return fmt.Sprintf("%v sat/vb", int64(s))
}

// SatPerKVByte represents a fee rate in the chain's smallest unit per
// kilo-virtual-byte.
type SatPerKVByte btcutil.Amount

// NewSatPerKVByte creates a new fee rate from a raw integer rate.
func NewSatPerKVByte(rate int64) SatPerKVByte {
	return SatPerKVByte(rate)
}

// FeeForSize calculates the fee resulting from this fee rate and the given
// size in vbytes. The resulting fee is rounded down.
func (s SatPerKVByte) FeeForSize(size VByte) btcutil.Amount {
	return btcutil.Amount(s) * btcutil.Amount(size) / kilo
}

// FeeForSizeRoundUp calculates the fee resulting from this fee rate and the
// given size in vbytes, rounding up to the nearest satoshi.
func (s SatPerKVByte) FeeForSizeRoundUp(size VByte) btcutil.Amount {
	return (btcutil.Amount(s)*btcutil.Amount(size) + kilo - 1) / kilo
}

// FeePerVByte converts the current fee rate from sat/kvb to sat/vb. The
// conversion truncates any sub-vbyte remainder.
func (s SatPerKVByte) FeePerVByte() SatPerVByte {
	return SatPerVByte(s / kilo)
}

// String returns a human-readable string of the fee rate.
func (s SatPerKVByte) String() string {
	return fmt.Sprintf("%v sat/kvb", int64(s))
}
