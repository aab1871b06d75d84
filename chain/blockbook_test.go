// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDogeAddr = "DH5yaieqoZN36fDVciNyRueRGvGLR3mr7L"

// TestBlockbookListUTXOs checks decoding of the Blockbook UTXO endpoint,
// including its decimal-string value field.
func TestBlockbookListUTXOs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v2/utxo/"+testDogeAddr,
				r.URL.Path)

			_, err := w.Write([]byte(`[
				{
					"txid": "bb00000000000000000000000000000000000000000000000000000000000001",
					"vout": 2,
					"value": "1050192000",
					"height": 5100000,
					"confirmations": 12
				}
			]`))
			require.NoError(t, err)
		},
	))
	defer server.Close()

	client, err := NewBlockbookClient(&BlockbookConfig{
		BaseURL:    server.URL,
		Name:       "blockbook-doge",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	utxos, err := client.ListUTXOs(context.Background(), testDogeAddr)
	require.NoError(t, err)
	require.Len(t, utxos, 1)

	require.Equal(t, int64(1_050_192_000), utxos[0].Value)
	require.Equal(t, uint32(2), utxos[0].Index)
	require.Equal(t, int64(12), utxos[0].Confirmations)
}

// TestBlockbookBadValue checks that a non-numeric value string is reported
// as a provider failure instead of silently dropping the output.
func TestBlockbookBadValue(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[
				{
					"txid": "bb00000000000000000000000000000000000000000000000000000000000001",
					"vout": 0,
					"value": "not-a-number"
				}
			]`))
		},
	))
	defer server.Close()

	client, err := NewBlockbookClient(&BlockbookConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	_, err = client.ListUTXOs(context.Background(), testDogeAddr)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "blockbook", provErr.Provider)
	require.Contains(t, err.Error(), "bad value")
}

// TestBlockbookConfigValidation checks the required config fields and the
// default instance name.
func TestBlockbookConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewBlockbookClient(&BlockbookConfig{})
	require.ErrorIs(t, err, ErrMissingBaseURL)

	client, err := NewBlockbookClient(&BlockbookConfig{
		BaseURL: "https://btc1.trezor.io",
	})
	require.NoError(t, err)
	require.Equal(t, "blockbook", client.Name())
}
