// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"fmt"
	"regexp"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/mempool"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txsizes"

	"github.com/george-popescu/expo-trust-core/unit"
)

// Profile bundles the per-chain constants the engine is parameterized by.
// Profiles are immutable; one package-level instance exists per supported
// chain.
type Profile struct {
	// Name is the chain's lowercase identifier, e.g. "bitcoin".
	Name string

	// DustLimit is the minimum output value below which an output is
	// uneconomical to create. Change below this limit is absorbed into
	// the fee instead of being emitted as an output.
	DustLimit btcutil.Amount

	// InputSize is the projected size contribution of a single input.
	// Exact signature sizes are unknown before signing, so this is a
	// fixed conservative estimate rather than a measured size.
	InputSize unit.VByte

	// OutputSize is the projected size contribution of a single output.
	OutputSize unit.VByte

	// Overhead is the fixed per-transaction size contribution (version,
	// locktime, input/output counts).
	Overhead unit.VByte

	// DefaultFeeRate is the rate used when the caller does not choose
	// one explicitly.
	DefaultFeeRate unit.SatPerVByte

	// Segwit reports whether inputs are witness-style, which is what
	// makes the per-input weight smaller than the legacy serialization.
	Segwit bool

	// addrPattern is the chain's regex-level address format predicate.
	// This is a format check only, not a checksum validation; checksum
	// verification is owned by the external wallet-core library.
	addrPattern *regexp.Regexp
}

// ValidAddress reports whether addr matches the chain's address format. This
// is a regex-level predicate only.
func (p *Profile) ValidAddress(addr string) bool {
	return p.addrPattern.MatchString(addr)
}

var (
	// BitcoinProfile holds the constants for segwit Bitcoin estimation.
	// The dust limit is derived from the standard relay policy and
	// evaluates to 546 satoshis for a P2PKH output.
	BitcoinProfile = &Profile{
		Name: "bitcoin",
		DustLimit: btcutil.Amount(mempool.GetDustThreshold(&wire.TxOut{
			PkScript: make([]byte, txsizes.P2PKHPkScriptSize),
		})),
		InputSize:      68,
		OutputSize:     31,
		Overhead:       10,
		DefaultFeeRate: unit.NewSatPerVByte(10),
		Segwit:         true,
		addrPattern: regexp.MustCompile(
			`^(bc1[ac-hj-np-z02-9]{25,87}|` +
				`[13][a-km-zA-HJ-NP-Z1-9]{25,34})$`,
		),
	}

	// DogecoinProfile holds the constants for legacy Dogecoin estimation.
	// The dust limit is Dogecoin Core's 1 DOGE relay policy and the
	// default rate matches the recommended 0.01 DOGE/kB.
	DogecoinProfile = &Profile{
		Name:           "dogecoin",
		DustLimit:      100_000_000,
		InputSize:      148,
		OutputSize:     34,
		Overhead:       10,
		DefaultFeeRate: unit.NewSatPerVByte(1000),
		Segwit:         false,
		addrPattern: regexp.MustCompile(
			`^[DA9][a-km-zA-HJ-NP-Z1-9]{25,34}$`,
		),
	}
)

// ProfileByName resolves a chain name to its profile. It returns
// ErrUnknownChain for names no profile is registered under.
func ProfileByName(name string) (*Profile, error) {
	switch name {
	case BitcoinProfile.Name:
		return BitcoinProfile, nil

	case DogecoinProfile.Name:
		return DogecoinProfile, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChain, name)
	}
}
