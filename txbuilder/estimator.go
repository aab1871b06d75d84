// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import "github.com/george-popescu/expo-trust-core/unit"

// EstimateSize returns the projected serialized size of an unsigned
// transaction with the given number of inputs and outputs under the given
// chain profile:
//
//	size = inputCount*InputSize + outputCount*OutputSize + Overhead
//
// The exact size of each input cannot be known before the transaction is
// signed, so a fixed per-input weight is used as a conservative estimate
// instead of serializing the unsigned transaction. The estimate grows
// strictly with both counts, so adding a change output always increases the
// projected size.
func EstimateSize(inputCount, outputCount int, profile *Profile) unit.VByte {
	return unit.VByte(inputCount)*profile.InputSize +
		unit.VByte(outputCount)*profile.OutputSize +
		profile.Overhead
}
