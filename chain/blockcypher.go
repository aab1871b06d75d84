// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/george-popescu/expo-trust-core/txbuilder"
	"github.com/george-popescu/expo-trust-core/unit"
)

// DefaultBlockCypherURL is the public BlockCypher API base.
const DefaultBlockCypherURL = "https://api.blockcypher.com"

// BlockCypherConfig defines the config options used when initializing a
// BlockCypher client.
type BlockCypherConfig struct {
	// BaseURL is the API base, e.g. "https://api.blockcypher.com". This
	// field is required.
	BaseURL string

	// Coin is the BlockCypher coin identifier, e.g. "btc" or "doge".
	// This field is required.
	Coin string

	// HTTPClient optionally overrides the http.Client used for requests.
	HTTPClient *http.Client
}

// validate checks the config for required fields.
func (cfg *BlockCypherConfig) validate() error {
	if cfg.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if cfg.Coin == "" {
		return ErrMissingCoin
	}

	return nil
}

// BlockCypherClient fetches UTXOs and fee recommendations from the
// BlockCypher API. BlockCypher serves both Bitcoin and Dogecoin and is the
// one backend here that returns the locking script of each output.
type BlockCypherClient struct {
	baseURL string
	coin    string
	client  *http.Client
}

// Compile-time checks to ensure BlockCypherClient implements both
// collaborator interfaces.
var _ Client = (*BlockCypherClient)(nil)
var _ FeeReader = (*BlockCypherClient)(nil)

// NewBlockCypherClient creates a new BlockCypher client from the given
// config.
func NewBlockCypherClient(cfg *BlockCypherConfig) (*BlockCypherClient,
	error) {

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = newDefaultHTTPClient()
	}

	return &BlockCypherClient{
		baseURL: cfg.BaseURL,
		coin:    cfg.Coin,
		client:  client,
	}, nil
}

// Name identifies the backend in errors and logs.
func (c *BlockCypherClient) Name() string {
	return fmt.Sprintf("blockcypher-%s", c.coin)
}

// blockCypherTxRef is the wire form of a single unspent output reference in
// an address response.
type blockCypherTxRef struct {
	TxHash        string `json:"tx_hash"`
	TxOutputN     uint32 `json:"tx_output_n"`
	Value         int64  `json:"value"`
	Confirmations int64  `json:"confirmations"`
	Script        string `json:"script"`
}

// blockCypherAddr is the wire form of GET /v1/{coin}/main/addrs/{addr}.
type blockCypherAddr struct {
	TxRefs []blockCypherTxRef `json:"txrefs"`
}

// blockCypherChain is the wire form of GET /v1/{coin}/main, which carries
// the per-kilobyte fee tiers.
type blockCypherChain struct {
	HighFeePerKb   int64 `json:"high_fee_per_kb"`
	MediumFeePerKb int64 `json:"medium_fee_per_kb"`
	LowFeePerKb    int64 `json:"low_fee_per_kb"`
}

// ListUTXOs returns the current spendable outputs of an address.
func (c *BlockCypherClient) ListUTXOs(ctx context.Context, address string) (
	[]txbuilder.UTXO, error) {

	url := fmt.Sprintf(
		"%s/v1/%s/main/addrs/%s?unspentOnly=true&includeScript=true",
		c.baseURL, c.coin, address,
	)

	var raw blockCypherAddr
	if err := getJSON(ctx, c.client, url, &raw); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: err}
	}

	utxos := make([]txbuilder.UTXO, 0, len(raw.TxRefs))
	for _, ref := range raw.TxRefs {
		hash, err := chainhash.NewHashFromStr(ref.TxHash)
		if err != nil {
			return nil, &ProviderError{
				Provider: c.Name(),
				Err: fmt.Errorf("bad txid %q: %w",
					ref.TxHash, err),
			}
		}

		var pkScript []byte
		if ref.Script != "" {
			pkScript, err = hex.DecodeString(ref.Script)
			if err != nil {
				return nil, &ProviderError{
					Provider: c.Name(),
					Err: fmt.Errorf("bad script %q for "+
						"txid %s: %w", ref.Script,
						ref.TxHash, err),
				}
			}
		}

		utxos = append(utxos, txbuilder.UTXO{
			TxOut: wire.TxOut{
				Value:    ref.Value,
				PkScript: pkScript,
			},
			OutPoint: wire.OutPoint{
				Hash:  *hash,
				Index: ref.TxOutputN,
			},
			Confirmations: ref.Confirmations,
		})
	}

	log.Debugf("Fetched %d utxo(s) for %s from %s", len(utxos), address,
		c.Name())

	return utxos, nil
}

// RecommendedFees returns the backend's current fee tiers. BlockCypher
// serves three per-kilobyte tiers, which are mapped onto the five-tier shape
// by reusing the medium tier for the half-hour target and the low tier for
// the economy and minimum targets.
func (c *BlockCypherClient) RecommendedFees(ctx context.Context) (
	*FeeEstimates, error) {

	url := fmt.Sprintf("%s/v1/%s/main", c.baseURL, c.coin)

	var raw blockCypherChain
	if err := getJSON(ctx, c.client, url, &raw); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: err}
	}

	perByte := func(perKb int64) unit.SatPerVByte {
		return unit.NewSatPerKVByte(perKb).FeePerVByte()
	}

	return &FeeEstimates{
		Fastest:  perByte(raw.HighFeePerKb),
		HalfHour: perByte(raw.MediumFeePerKb),
		Hour:     perByte(raw.MediumFeePerKb),
		Economy:  perByte(raw.LowFeePerKb),
		Minimum:  perByte(raw.LowFeePerKb),
	}, nil
}
