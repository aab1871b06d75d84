// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain implements the external collaborators the transaction engine
// depends on: clients for public blockchain explorer HTTP APIs
// (mempool.space, Blockbook, BlockCypher), a registry that routes UTXO
// fetches to a named backend, and a poller for recommended fee rates.
//
// Fee recommendations are informational only. They are surfaced to callers
// for display and are never wired into transaction construction; the caller
// always chooses a rate explicitly.
package chain
