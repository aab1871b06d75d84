// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider is returned when a provider key does not
	// resolve to a registered explorer client.
	ErrUnknownProvider = errors.New("unknown utxo provider")

	// ErrBadStatus is returned when an explorer API responds with a
	// non-200 status code.
	ErrBadStatus = errors.New("unexpected http status")

	// ErrMissingBaseURL is returned when a client is configured without
	// a base URL.
	ErrMissingBaseURL = errors.New("missing base url")

	// ErrMissingCoin is returned when a BlockCypher client is configured
	// without a coin identifier.
	ErrMissingCoin = errors.New("missing coin identifier")

	// ErrNoClients is returned when a registry is configured without any
	// explorer clients.
	ErrNoClients = errors.New("no explorer clients configured")

	// ErrMissingFeeReader is returned when a fee watcher is configured
	// without a fee reader.
	ErrMissingFeeReader = errors.New("missing fee reader")

	// ErrMissingTicker is returned when a fee watcher is configured
	// without a ticker.
	ErrMissingTicker = errors.New("missing ticker")
)

// ProviderError wraps a fetch or decode failure with the identity of the
// explorer backend it came from, so callers can tell which of several
// configured sources misbehaved.
type ProviderError struct {
	// Provider is the name of the backend that failed.
	Provider string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying failure for errors.Is and errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
