// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txbuilder implements the unsigned-transaction construction engine
// for UTXO-based chains. It selects spendable inputs, estimates fees from the
// projected size of the not-yet-signed transaction, decides whether a change
// output is economically worth creating, and assembles a fully-specified
// unsigned transaction ready to be handed to an external signer.
//
// The engine is stateless. Every operation is a pure function of its explicit
// inputs plus a single injected UTXO-provider call, so independent builds may
// run concurrently without synchronization as long as the provider
// implementation is itself safe for concurrent use. Nothing in this package
// touches private keys, broadcasts transactions, or persists state between
// calls.
package txbuilder
