// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/george-popescu/expo-trust-core/txbuilder"
	"github.com/george-popescu/expo-trust-core/unit"
)

// DefaultMempoolSpaceURL is the public mempool.space API base.
const DefaultMempoolSpaceURL = "https://mempool.space/api"

// MempoolSpaceConfig defines the config options used when initializing a
// mempool.space client.
type MempoolSpaceConfig struct {
	// BaseURL is the API base, e.g. "https://mempool.space/api". This
	// field is required.
	BaseURL string

	// HTTPClient optionally overrides the http.Client used for requests.
	// If nil, a pooled client with a default timeout is used.
	HTTPClient *http.Client
}

// validate checks the config for required fields.
func (cfg *MempoolSpaceConfig) validate() error {
	if cfg.BaseURL == "" {
		return ErrMissingBaseURL
	}

	return nil
}

// MempoolSpaceClient fetches UTXOs and fee recommendations from a
// mempool.space instance. It serves Bitcoin only.
type MempoolSpaceClient struct {
	baseURL string
	client  *http.Client
}

// Compile-time checks to ensure MempoolSpaceClient implements both
// collaborator interfaces.
var _ Client = (*MempoolSpaceClient)(nil)
var _ FeeReader = (*MempoolSpaceClient)(nil)

// NewMempoolSpaceClient creates a new mempool.space client from the given
// config.
func NewMempoolSpaceClient(cfg *MempoolSpaceConfig) (*MempoolSpaceClient,
	error) {

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = newDefaultHTTPClient()
	}

	return &MempoolSpaceClient{
		baseURL: cfg.BaseURL,
		client:  client,
	}, nil
}

// Name identifies the backend in errors and logs.
func (c *MempoolSpaceClient) Name() string {
	return "mempool.space"
}

// mempoolUTXO is the wire form of a single spendable output as served by
// GET /address/{addr}/utxo.
type mempoolUTXO struct {
	Txid   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  int64  `json:"value"`
	Status struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	} `json:"status"`
}

// mempoolFees is the wire form of GET /v1/fees/recommended.
type mempoolFees struct {
	FastestFee  int64 `json:"fastestFee"`
	HalfHourFee int64 `json:"halfHourFee"`
	HourFee     int64 `json:"hourFee"`
	EconomyFee  int64 `json:"economyFee"`
	MinimumFee  int64 `json:"minimumFee"`
}

// ListUTXOs returns the current spendable outputs of an address.
func (c *MempoolSpaceClient) ListUTXOs(ctx context.Context,
	address string) ([]txbuilder.UTXO, error) {

	url := fmt.Sprintf("%s/address/%s/utxo", c.baseURL, address)

	var raw []mempoolUTXO
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

		// The API reports a confirmation flag rather than a depth,
		// so confirmed outputs are recorded with a depth of one.
		var confs int64
		if entry.Status.Confirmed {
			confs = 1
		}

		utxos = append(utxos, txbuilder.UTXO{
			TxOut: wire.TxOut{Value: entry.Value},
			OutPoint: wire.OutPoint{
				Hash:  *hash,
				Index: entry.Vout,
			},
			Confirmations: confs,
		})
	}

	log.Debugf("Fetched %d utxo(s) for %s from %s", len(utxos), address,
		c.Name())

	return utxos, nil
}

// RecommendedFees returns the backend's current fee tiers.
func (c *MempoolSpaceClient) RecommendedFees(ctx context.Context) (
	*FeeEstimates, error) {

	url := fmt.Sprintf("%s/v1/fees/recommended", c.baseURL)

	var raw mempoolFees
	if err := getJSON(ctx, c.client, url, &raw); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: err}
	}

	return &FeeEstimates{
		Fastest:  unit.NewSatPerVByte(raw.FastestFee),
		HalfHour: unit.NewSatPerVByte(raw.HalfHourFee),
		Hour:     unit.NewSatPerVByte(raw.HourFee),
		Economy:  unit.NewSatPerVByte(raw.EconomyFee),
		Minimum:  unit.NewSatPerVByte(raw.MinimumFee),
	}, nil
}
