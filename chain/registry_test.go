// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/george-popescu/expo-trust-core/txbuilder"
)

// stubClient is a canned Client implementation for registry tests.
type stubClient struct {
	name  string
	utxos []txbuilder.UTXO
	err   error
}

func (s *stubClient) Name() string {
	return s.name
}

func (s *stubClient) ListUTXOs(_ context.Context, _ string) (
	[]txbuilder.UTXO, error) {

	return s.utxos, s.err
}

// TestRegistryRouting checks that fetches are routed by provider key with
// fallback to the configured default.
func TestRegistryRouting(t *testing.T) {
	t.Parallel()

	primary := &stubClient{
		name: "primary",
		utxos: []txbuilder.UTXO{
			{TxOut: wire.TxOut{Value: 5000}},
		},
	}
	secondary := &stubClient{
		name: "secondary",
		utxos: []txbuilder.UTXO{
			{TxOut: wire.TxOut{Value: 3000}},
		},
	}

	registry, err := NewRegistry(&RegistryConfig{
		Clients: map[string]Client{
			"primary":   primary,
			"secondary": secondary,
		},
		Default: "primary",
	})
	require.NoError(t, err)

	// An empty key selects the default client.
	utxos, err := registry.GetUTXOs(context.Background(), testAddr, "")
	require.NoError(t, err)
	require.Equal(t, int64(5000), utxos[0].Value)

	// A named key selects that client.
	utxos, err = registry.GetUTXOs(
		context.Background(), testAddr, "secondary",
	)
	require.NoError(t, err)
	require.Equal(t, int64(3000), utxos[0].Value)

	// An unknown key fails with the provider identity attached.
	_, err = registry.GetUTXOs(context.Background(), testAddr, "bogus")
	require.ErrorIs(t, err, ErrUnknownProvider)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "bogus", provErr.Provider)
}

// TestRegistryPropagatesClientFailure checks that client failures surface
// unchanged.
func TestRegistryPropagatesClientFailure(t *testing.T) {
	t.Parallel()

	clientErr := errors.New("rate limited")
	registry, err := NewRegistry(&RegistryConfig{
		Clients: map[string]Client{
			"primary": &stubClient{
				name: "primary",
				err:  clientErr,
			},
		},
		Default: "primary",
	})
	require.NoError(t, err)

	_, err = registry.GetUTXOs(context.Background(), testAddr, "")
	require.ErrorIs(t, err, clientErr)
}

// TestRegistryConfigValidation checks the required config fields.
func TestRegistryConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(&RegistryConfig{})
	require.ErrorIs(t, err, ErrNoClients)

	_, err = NewRegistry(&RegistryConfig{
		Clients: map[string]Client{
			"primary": &stubClient{name: "primary"},
		},
		Default: "missing",
	})
	require.ErrorIs(t, err, ErrUnknownProvider)
}
