// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/george-popescu/expo-trust-core/chain"
	"github.com/george-popescu/expo-trust-core/txbuilder"
)

// logWriter implements an io.Writer that outputs to both standard output
// and the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}

	return len(p), nil
}

var (
	// logRotator is one of the logging outputs. It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	backendLog = btclog.NewBackend(logWriter{})

	log     = backendLog.Logger("TRCO")
	txbdLog = backendLog.Logger("TXBD")
	chioLog = backendLog.Logger("CHIO")
)

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"TRCO": log,
	"TXBD": txbdLog,
	"CHIO": chioLog,
}

func init() {
	txbuilder.UseLogger(txbdLog)
	chain.UseLogger(chioLog)
}

// initLogRotator initializes the logging rotator to write logs to logFile
// and create roll files in the same directory. It must be called before the
// package-global log rotator variables are used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r

	return nil
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level name. Invalid names are ignored.
func setLogLevels(levelName string) {
	level, _ := btclog.LevelFromString(levelName)
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
