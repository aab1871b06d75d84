// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/george-popescu/expo-trust-core/txbuilder"
)

// BlockbookConfig defines the config options used when initializing a
// Blockbook client. Blockbook instances exist for many chains (e.g. Trezor
// runs public ones for both Bitcoin and Dogecoin), so the instance name is
// configurable.
type BlockbookConfig struct {
	// BaseURL is the instance base, e.g. "https://btc1.trezor.io". This
	// field is required.
	BaseURL string

	// Name optionally identifies this instance in errors and logs. If
	// empty, "blockbook" is used.
	Name string

	// HTTPClient optionally overrides the http.Client used for requests.
	HTTPClient *http.Client
}

// validate checks the config for required fields.
func (cfg *BlockbookConfig) validate() error {
	if cfg.BaseURL == "" {
		return ErrMissingBaseURL
	}

	return nil
}

// BlockbookClient fetches UTXOs from a Blockbook instance.
type BlockbookClient struct {
	baseURL string
	name    string
	client  *http.Client
}

// A compile-time check to ensure BlockbookClient implements the Client
// interface.
var _ Client = (*BlockbookClient)(nil)

// NewBlockbookClient creates a new Blockbook client from the given config.
func NewBlockbookClient(cfg *BlockbookConfig) (*BlockbookClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "blockbook"
	}

	client := cfg.HTTPClient
	if client == nil {
		client = newDefaultHTTPClient()
	}

	return &BlockbookClient{
		baseURL: cfg.BaseURL,
		name:    name,
		client:  client,
	}, nil
}

// Name identifies the backend in errors and logs.
func (c *BlockbookClient) Name() string {
	return c.name
}

// blockbookUTXO is the wire form of a single spendable output as served by
// GET /api/v2/utxo/{addr}. Note the value is a decimal string.
type blockbookUTXO struct {
	Txid          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Value         string `json:"value"`
	Height        int64  `json:"height"`
	Confirmations int64  `json:"confirmations"`
}

// ListUTXOs returns the current spendable outputs of an address.
func (c *BlockbookClient) ListUTXOs(ctx context.Context, address string) (
	[]txbuilder.UTXO, error) {

	url := fmt.Sprintf("%s/api/v2/utxo/%s", c.baseURL, address)

	var raw []blockbookUTXO
	if err := getJSON(ctx, c.client, url, &raw); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: err}
	}

	utxos := make([]txbuilder.UTXO, 0, len(raw))
	for _, entry := range raw {
		hash, err := chainhash.NewHashFromStr(entry.Txid)
		if err != nil {
			return nil, &ProviderError{
				Provider: c.Name(),
				Err: fmt.Errorf("bad txid %q: %w",
					entry.Txid, err),
			}
		}

		value, err := strconv.ParseInt(entry.Value, 10, 64)
		if err != nil {
			return nil, &ProviderError{
				Provider: c.Name(),
				Err: fmt.Errorf("bad value %q for txid %s: "+
					"%w", entry.Value, entry.Txid, err),
			}
		}

		utxos = append(utxos, txbuilder.UTXO{
			TxOut: wire.TxOut{Value: value},
			OutPoint: wire.OutPoint{
				Hash:  *hash,
				Index: entry.Vout,
			},
			Confirmations: entry.Confirmations,
		})
	}

	log.Debugf("Fetched %d utxo(s) for %s from %s", len(utxos), address,
		c.Name())

	return utxos, nil
}
