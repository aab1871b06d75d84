// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/george-popescu/expo-trust-core/txbuilder"
)

const (
	// defaultRequestTimeout bounds every explorer API request issued by
	// a client created without an explicit http.Client.
	defaultRequestTimeout = 30 * time.Second

	// defaultMaxIdleConns is the connection pool size of the default
	// transport.
	defaultMaxIdleConns = 10

	// defaultIdleConnTimeout is how long pooled connections of the
	// default transport stay open.
	defaultIdleConnTimeout = 90 * time.Second
)

// Client is an explorer-backed source of spendable outputs for a single
// chain.
type Client interface {
	// Name identifies the backend in errors and logs.
	Name() string

	// ListUTXOs returns the current spendable outputs of an address.
	ListUTXOs(ctx context.Context, address string) ([]txbuilder.UTXO,
		error)
}

// FeeReader serves the explorer's current fee recommendations. The estimates
// are informational only and are never consulted during transaction
// construction.
type FeeReader interface {
	// RecommendedFees returns the backend's current fee tiers.
	RecommendedFees(ctx context.Context) (*FeeEstimates, error)
}

// newDefaultHTTPClient returns the http.Client used when a client config
// does not inject one.
func newDefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultRequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:    defaultMaxIdleConns,
			IdleConnTimeout: defaultIdleConnTimeout,
		},
	}
}

// getJSON performs a GET request against an explorer endpoint and decodes
// the JSON response body into out.
func getJSON(ctx context.Context, client *http.Client, url string,
	out any) error {

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, url, nil,
	)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s from %s", ErrBadStatus,
			resp.Status, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}

	return nil
}
