// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/george-popescu/expo-trust-core/txbuilder"
	"github.com/george-popescu/expo-trust-core/unit"
)

// utxoJSON is the wire form of a selected input: txid as a hex string and
// the value as an integer in the chain's smallest unit.
type utxoJSON struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Value         int64  `json:"value"`
	ScriptPubKey  string `json:"scriptPubKey,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
}

// unsignedTxJSON is the wire form of an assembled unsigned transaction, as
// emitted by the build command and accepted back by the validate command.
type unsignedTxJSON struct {
	UTXOs         []utxoJSON `json:"utxos"`
	ToAddress     string     `json:"toAddress"`
	Amount        int64      `json:"amount"`
	ChangeAddress string     `json:"changeAddress"`
	ChangeAmount  int64      `json:"changeAmount"`
	Fee           int64      `json:"fee"`
	ByteFee       int64      `json:"byteFee"`
	TotalInput    int64      `json:"totalInput"`
	EstimatedSize int64      `json:"estimatedSize"`
}

// marshalUnsignedTx converts an assembled transaction to its wire form.
func marshalUnsignedTx(tx *txbuilder.UnsignedTx) *unsignedTxJSON {
	utxos := make([]utxoJSON, len(tx.UTXOs))
	for i, utxo := range tx.UTXOs {
		utxos[i] = utxoJSON{
			TxID:          utxo.Hash.String(),
			Vout:          utxo.Index,
			Value:         utxo.Value,
			ScriptPubKey:  hex.EncodeToString(utxo.PkScript),
			Confirmations: utxo.Confirmations,
		}
	}

	return &unsignedTxJSON{
		UTXOs:         utxos,
		ToAddress:     tx.ToAddress,
		Amount:        int64(tx.Amount),
		ChangeAddress: tx.ChangeAddress,
		ChangeAmount:  int64(tx.ChangeAmount),
		Fee:           int64(tx.Fee),
		ByteFee:       int64(tx.ByteFee),
		TotalInput:    int64(tx.TotalInput),
		EstimatedSize: int64(tx.EstimatedSize),
	}
}

// unmarshalUnsignedTx converts a wire-form transaction back to the engine
// type so it can be re-validated.
func unmarshalUnsignedTx(in *unsignedTxJSON) (*txbuilder.UnsignedTx, error) {
	utxos := make([]txbuilder.UTXO, len(in.UTXOs))
	for i, utxo := range in.UTXOs {
		hash, err := chainhash.NewHashFromStr(utxo.TxID)
		if err != nil {
			return nil, fmt.Errorf("bad txid %q: %w", utxo.TxID,
				err)
		}

		var pkScript []byte
		if utxo.ScriptPubKey != "" {
			pkScript, err = hex.DecodeString(utxo.ScriptPubKey)
			if err != nil {
				return nil, fmt.Errorf("bad script %q: %w",
					utxo.ScriptPubKey, err)
			}
		}

		utxos[i] = txbuilder.UTXO{
			TxOut: wire.TxOut{
				Value:    utxo.Value,
				PkScript: pkScript,
			},
			OutPoint: wire.OutPoint{
				Hash:  *hash,
				Index: utxo.Vout,
			},
			Confirmations: utxo.Confirmations,
		}
	}

	return &txbuilder.UnsignedTx{
		UTXOs:         utxos,
		ToAddress:     in.ToAddress,
		Amount:        btcutil.Amount(in.Amount),
		ChangeAddress: in.ChangeAddress,
		ChangeAmount:  btcutil.Amount(in.ChangeAmount),
		Fee:           btcutil.Amount(in.Fee),
		ByteFee:       unit.SatPerVByte(in.ByteFee),
		TotalInput:    btcutil.Amount(in.TotalInput),
		EstimatedSize: unit.VByte(in.EstimatedSize),
	}, nil
}
