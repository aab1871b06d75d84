// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/ticker"
)

// FeeWatcherConfig defines the config options used when initializing a
// FeeWatcher.
type FeeWatcherConfig struct {
	// Reader is the fee source to poll. This field is required.
	Reader FeeReader

	// Ticker drives the polling interval. This field is required; tests
	// inject a force ticker here.
	Ticker ticker.Ticker
}

// validate checks the config for required fields.
func (cfg *FeeWatcherConfig) validate() error {
	if cfg.Reader == nil {
		return ErrMissingFeeReader
	}
	if cfg.Ticker == nil {
		return ErrMissingTicker
	}

	return nil
}

// FeeWatcher polls a FeeReader on an interval and serves the most recent
// snapshot. It exists purely for display purposes: the transaction engine
// never reads from it, and a stale or missing snapshot never affects a
// build.
type FeeWatcher struct {
	cfg FeeWatcherConfig

	mtx     sync.RWMutex
	current *FeeEstimates

	started sync.Once
	stopped sync.Once
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewFeeWatcher creates a new FeeWatcher from the given config.
func NewFeeWatcher(cfg *FeeWatcherConfig) (*FeeWatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &FeeWatcher{
		cfg:  *cfg,
		quit: make(chan struct{}),
	}, nil
}

// Start launches the polling goroutine. It is idempotent.
func (w *FeeWatcher) Start() {
	w.started.Do(func() {
		w.cfg.Ticker.Resume()

		w.wg.Add(1)
		go w.pollLoop()
	})
}

// Stop shuts the polling goroutine down and waits for it to exit. It is
// idempotent.
func (w *FeeWatcher) Stop() {
	w.stopped.Do(func() {
		w.cfg.Ticker.Stop()
		close(w.quit)
	})

	w.wg.Wait()
}

// Current returns the most recent fee snapshot, or nil if no poll has
// succeeded yet.
func (w *FeeWatcher) Current() *FeeEstimates {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	return w.current
}

// pollLoop fetches fee estimates on every tick until Stop is called.
func (w *FeeWatcher) pollLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.cfg.Ticker.Ticks():
			w.poll()

		case <-w.quit:
			return
		}
	}
}

// poll performs a single fetch and replaces the snapshot on success. A
// failed fetch keeps the previous snapshot.
func (w *FeeWatcher) poll() {
	estimates, err := w.cfg.Reader.RecommendedFees(context.Background())
	if err != nil {
		log.Warnf("Unable to refresh fee estimates: %v", err)

		return
	}

	w.mtx.Lock()
	w.current = estimates
	w.mtx.Unlock()

	log.Debugf("Refreshed fee estimates: fastest=%v, half-hour=%v, "+
		"hour=%v, economy=%v, minimum=%v", estimates.Fastest,
		estimates.HalfHour, estimates.Hour, estimates.Economy,
		estimates.Minimum)
}
