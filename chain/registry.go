// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"fmt"

	"github.com/george-popescu/expo-trust-core/txbuilder"
)

// RegistryConfig defines the config options used when initializing a
// Registry.
type RegistryConfig struct {
	// Clients maps provider keys to explorer clients. This field is
	// required and must not be empty.
	Clients map[string]Client

	// Default is the provider key used when a fetch does not name one.
	// It must be present in Clients.
	Default string
}

// validate checks the config for required fields.
func (cfg *RegistryConfig) validate() error {
	if len(cfg.Clients) == 0 {
		return ErrNoClients
	}

	if _, ok := cfg.Clients[cfg.Default]; !ok {
		return fmt.Errorf("%w: default %q is not a configured "+
			"client", ErrUnknownProvider, cfg.Default)
	}

	return nil
}

// Registry routes UTXO fetches to a named explorer client, with a
// configured default for fetches that do not name one. It implements the
// engine's UTXOProvider capability.
//
// The registry holds no mutable state after construction, so it is safe for
// concurrent use as long as the underlying clients are.
type Registry struct {
	clients    map[string]Client
	defaultKey string
}

// A compile-time check to ensure Registry implements the engine's provider
// interface.
var _ txbuilder.UTXOProvider = (*Registry)(nil)

// NewRegistry creates a new Registry from the given config.
func NewRegistry(cfg *RegistryConfig) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	clients := make(map[string]Client, len(cfg.Clients))
	for key, client := range cfg.Clients {
		clients[key] = client
	}

	return &Registry{
		clients:    clients,
		defaultKey: cfg.Default,
	}, nil
}

// GetUTXOs returns the current spendable outputs of the given address,
// queried from the client registered under the provider key. An empty key
// selects the configured default.
func (r *Registry) GetUTXOs(ctx context.Context, address,
	provider string) ([]txbuilder.UTXO, error) {

	key := provider
	if key == "" {
		key = r.defaultKey
	}

	client, ok := r.clients[key]
	if !ok {
		return nil, &ProviderError{
			Provider: key,
			Err:      ErrUnknownProvider,
		}
	}

	return client.ListUTXOs(ctx, address)
}
