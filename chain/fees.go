// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "github.com/george-popescu/expo-trust-core/unit"

// FeeEstimates is the five-tier fee recommendation served by explorer fee
// APIs, from next-block inclusion down to the relay minimum. All tiers are
// denominated in the chain's smallest unit per vbyte.
type FeeEstimates struct {
	// Fastest targets inclusion in the next block.
	Fastest unit.SatPerVByte

	// HalfHour targets inclusion within roughly 30 minutes.
	HalfHour unit.SatPerVByte

	// Hour targets inclusion within roughly an hour.
	Hour unit.SatPerVByte

	// Economy targets eventual inclusion at low cost.
	Economy unit.SatPerVByte

	// Minimum is the lowest rate the network currently relays.
	Minimum unit.SatPerVByte
}
