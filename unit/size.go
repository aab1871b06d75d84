// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unit defines the value types used to express estimated transaction
// sizes and fee rates. All types are integer-backed so that fee arithmetic is
// exact; there is no floating point anywhere in the fee pipeline.
package unit

import "fmt"

// VByte expresses an estimated transaction size in virtual bytes. For
// segwit-style chains the per-input and per-output weights are already
// denominated in vbytes; for legacy chains one virtual byte is exactly one
// raw byte, so the same type serves both.
type VByte int64

// String returns a human-readable string of the size.
func (v VByte) String() string {
	return fmt.Sprintf("%d vb", int64(v))
}
