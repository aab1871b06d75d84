// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/george-popescu/expo-trust-core/unit"
)

// maxConcurrentScans bounds the number of provider fetches ScanBalances has
// in flight at once.
const maxConcurrentScans = 8

// BuilderConfig defines the options used when initializing a Builder.
type BuilderConfig struct {
	// Profile supplies the chain constants the engine is parameterized
	// by. This field is required.
	Profile *Profile

	// Provider is the external source of spendable outputs. This field
	// is required.
	Provider UTXOProvider
}

// validate checks the config for required fields.
func (cfg *BuilderConfig) validate() error {
	if cfg.Profile == nil {
		return ErrMissingProfile
	}
	if cfg.Provider == nil {
		return ErrMissingProvider
	}

	return nil
}

// Builder assembles unsigned transactions for a single chain. It holds no
// mutable state, so a single Builder may be shared by concurrent callers as
// long as the injected provider is itself safe for concurrent use.
type Builder struct {
	cfg BuilderConfig
}

// NewBuilder creates a new Builder from the given config.
func NewBuilder(cfg *BuilderConfig) (*Builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Builder{cfg: *cfg}, nil
}

// TxIntent represents the caller's intent to create a transaction. It
// bundles all the parameters required to construct an unsigned transaction
// into a single structure.
type TxIntent struct {
	// FromAddress is the sender address whose UTXOs fund the
	// transaction. This field is required.
	FromAddress string

	// ToAddress is the recipient address. This field is required.
	ToAddress string

	// Amount is the value to send, in the chain's smallest unit. It
	// must be positive and at least the chain's dust limit.
	Amount btcutil.Amount

	// FeeRate is the desired fee rate. If zero, the profile's default
	// rate is used.
	FeeRate unit.SatPerVByte

	// ChangeAddress is the destination for the change output. If empty,
	// change is returned to FromAddress.
	ChangeAddress string

	// Strategy is the coin selection strategy. If nil, largest-first is
	// used.
	Strategy SelectionStrategy

	// Provider optionally names the UTXO source to query. If empty, the
	// provider implementation's default backend is used.
	Provider string
}

// UnsignedTx is a fully-specified unsigned transaction ready to be handed to
// an external signer. It is created once per build call and never mutated
// afterwards; ownership passes to the caller.
type UnsignedTx struct {
	// UTXOs holds the selected inputs in selection order.
	UTXOs []UTXO

	// ToAddress is the recipient address.
	ToAddress string

	// Amount is the value sent to the recipient.
	Amount btcutil.Amount

	// ChangeAddress is the destination of the change output. It is set
	// even when ChangeAmount is zero.
	ChangeAddress string

	// ChangeAmount is the value returned to the sender, or zero when no
	// change output is created.
	ChangeAmount btcutil.Amount

	// Fee is the total fee, including any folded sub-dust change.
	Fee btcutil.Amount

	// ByteFee is the fee rate the transaction was built with.
	ByteFee unit.SatPerVByte

	// TotalInput is the sum of the selected input values.
	TotalInput btcutil.Amount

	// EstimatedSize is the projected serialized size based on the final
	// input and output counts.
	EstimatedSize unit.VByte
}

// validateIntent runs every precondition check on the intent. All checks
// happen before any network access: a failure here means the UTXO provider
// is never called.
func (b *Builder) validateIntent(intent *TxIntent) error {
	profile := b.cfg.Profile

	if !profile.ValidAddress(intent.FromAddress) {
		return fmt.Errorf("%w: sender address %q is not a valid %s "+
			"address", ErrInvalidAddress, intent.FromAddress,
			profile.Name)
	}
	if !profile.ValidAddress(intent.ToAddress) {
		return fmt.Errorf("%w: recipient address %q is not a valid "+
			"%s address", ErrInvalidAddress, intent.ToAddress,
			profile.Name)
	}
	if intent.ChangeAddress != "" &&
		!profile.ValidAddress(intent.ChangeAddress) {

		return fmt.Errorf("%w: change address %q is not a valid %s "+
			"address", ErrInvalidAddress, intent.ChangeAddress,
			profile.Name)
	}

	if intent.Amount <= 0 {
		return fmt.Errorf("%w: amount of %v is not positive",
			ErrInvalidAmount, intent.Amount)
	}
	if intent.Amount < profile.DustLimit {
		return fmt.Errorf("%w: amount of %v is below the dust "+
			"limit of %v", ErrInvalidAmount, intent.Amount,
			profile.DustLimit)
	}

	return nil
}

// CreateTransaction creates a new unsigned transaction based on the provided
// intent. The resulting UnsignedTx contains the selected inputs and all the
// metadata an external signer needs; no signing, key handling or broadcast
// happens here.
//
// Precondition failures are reported before the UTXO provider is consulted.
// The build performs exactly one provider call and no retries, so a given
// (intent, UTXO snapshot) pair always yields the same result or the same
// failure.
func (b *Builder) CreateTransaction(ctx context.Context,
	intent *TxIntent) (*UnsignedTx, error) {

	if intent == nil {
		return nil, ErrNilTxIntent
	}

	if err := b.validateIntent(intent); err != nil {
		return nil, err
	}

	profile := b.cfg.Profile

	// Apply defaults after validation so the checks above report on the
	// caller's own values.
	feeRate := intent.FeeRate
	if feeRate == 0 {
		feeRate = profile.DefaultFeeRate
	}
	strategy := intent.Strategy
	if strategy == nil {
		strategy = SelectLargestFirst
	}
	changeAddress := intent.ChangeAddress
	if changeAddress == "" {
		changeAddress = intent.FromAddress
	}

	utxos, err := b.cfg.Provider.GetUTXOs(
		ctx, intent.FromAddress, intent.Provider,
	)
	if err != nil {
		return nil, err
	}
	if len(utxos) == 0 {
		return nil, fmt.Errorf("%w: address %s", ErrNoUTXOs,
			intent.FromAddress)
	}

	result, err := SelectCoins(
		utxos, intent.Amount, feeRate, profile, strategy,
	)
	if err != nil {
		return nil, err
	}

	// Recompute the projected size from the final counts. The change
	// output only exists when the selection produced one.
	outputCount := 1
	if result.Change > 0 {
		outputCount = 2
	}
	size := EstimateSize(len(result.Selected), outputCount, profile)

	tx := &UnsignedTx{
		UTXOs:         result.Selected,
		ToAddress:     intent.ToAddress,
		Amount:        intent.Amount,
		ChangeAddress: changeAddress,
		ChangeAmount:  result.Change,
		Fee:           result.Fee,
		ByteFee:       feeRate,
		TotalInput:    result.TotalInput,
		EstimatedSize: size,
	}

	log.Debugf("Assembled unsigned tx for %s: %v", intent.FromAddress,
		newLogClosure(func() string {
			return spew.Sdump(tx)
		}))

	return tx, nil
}

// AddressBalance is the spendable balance of a single scanned address.
type AddressBalance struct {
	// Address is the scanned address.
	Address string

	// Total is the sum of all spendable outputs.
	Total btcutil.Amount

	// UTXOCount is the number of spendable outputs.
	UTXOCount int
}

// ScanBalances fetches and sums the spendable outputs of every given address
// through the configured provider. The fetches run concurrently with a
// bounded number in flight; results are returned in input order. The first
// failing fetch cancels the remaining ones and is returned to the caller.
//
// Every address is validated against the chain's address format before any
// provider call is made.
func (b *Builder) ScanBalances(ctx context.Context, addresses []string,
	provider string) ([]AddressBalance, error) {

	for _, addr := range addresses {
		if !b.cfg.Profile.ValidAddress(addr) {
			return nil, fmt.Errorf("%w: %q is not a valid %s "+
				"address", ErrInvalidAddress, addr,
				b.cfg.Profile.Name)
		}
	}

	balances := make([]AddressBalance, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScans)

	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			utxos, err := b.cfg.Provider.GetUTXOs(
				gctx, addr, provider,
			)
			if err != nil {
				return err
			}

			var total btcutil.Amount
			for _, utxo := range utxos {
				total += btcutil.Amount(utxo.Value)
			}

			balances[i] = AddressBalance{
				Address:   addr,
				Total:     total,
				UTXOCount: len(utxos),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return balances, nil
}
