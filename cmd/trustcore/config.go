// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"

	"github.com/george-popescu/expo-trust-core/chain"
	"github.com/george-popescu/expo-trust-core/txbuilder"
)

const (
	defaultConfigFilename = "trustcore.conf"
	defaultLogFilename    = "trustcore.log"
	defaultDebugLevel     = "info"
)

var (
	defaultHomeDir    = btcutil.AppDataDir("trustcore", false)
	defaultConfigFile = filepath.Join(
		defaultHomeDir, defaultConfigFilename,
	)
	defaultLogFile = filepath.Join(defaultHomeDir, defaultLogFilename)
)

// config defines the configuration options of the trustcore tool.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogFile    string `long:"logfile" description:"Path to the log file"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`

	Chain    string `long:"chain" description:"Chain to operate on" choice:"bitcoin" choice:"dogecoin" default:"bitcoin"`
	Provider string `long:"provider" description:"Default UTXO provider key" default:"mempoolspace"`

	MempoolSpaceURL string `long:"mempoolspaceurl" description:"mempool.space API base URL"`
	BlockbookURL    string `long:"blockbookurl" description:"Blockbook instance base URL"`
	BlockCypherURL  string `long:"blockcypherurl" description:"BlockCypher API base URL"`

	Build    buildCommand    `command:"build" description:"Assemble an unsigned transaction"`
	Fees     feesCommand     `command:"fees" description:"Show recommended fee rates"`
	Scan     scanCommand     `command:"scan" description:"Sum the spendable balance of one or more addresses"`
	Validate validateCommand `command:"validate" description:"Re-check the invariants of an unsigned transaction"`
}

// cfg is the parsed configuration, shared by the command Execute methods.
// It is populated once by loadConfig before any command runs.
var cfg = &config{
	ConfigFile: defaultConfigFile,
	LogFile:    defaultLogFile,
	DebugLevel: defaultDebugLevel,
}

// preConfig holds the only option that must be known before the config file
// is loaded. It deliberately carries no subcommands so the pre-parse cannot
// execute one.
type preConfig struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
}

// loadConfig initializes and parses the config using a config file and
// command line options. Command line options always take precedence. The
// subcommand, if any, is executed by the parser as a side effect of the
// final parse.
func loadConfig() error {
	// Pre-parse the command line to see if an alternative config file
	// was specified. Everything else, including the subcommand name, is
	// left for the real parse below.
	preCfg := preConfig{ConfigFile: defaultConfigFile}
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	_, _ = preParser.Parse()

	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)

	// Load any additional config from the file, unless the default file
	// is absent.
	iniParser := flags.NewIniParser(parser)
	err := iniParser.ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) ||
			preCfg.ConfigFile != defaultConfigFile {

			return fmt.Errorf("unable to parse config file: %w",
				err)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) &&
			flagsErr.Type == flags.ErrHelp {

			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}

		return err
	}

	return nil
}

// setupLogging wires the rotator and levels from the parsed config. It is
// called by each command before doing any work.
func setupLogging() error {
	if err := initLogRotator(cfg.LogFile); err != nil {
		return err
	}

	setLogLevels(cfg.DebugLevel)

	return nil
}

// activeProfile resolves the configured chain to its profile.
func activeProfile() (*txbuilder.Profile, error) {
	return txbuilder.ProfileByName(cfg.Chain)
}

// newClients instantiates every explorer client the config carries a base
// URL for, keyed by provider name. Defaults are applied for the public
// Bitcoin endpoints when no URL is set.
func newClients(profile *txbuilder.Profile) (map[string]chain.Client,
	error) {

	clients := make(map[string]chain.Client)

	bitcoin := profile == txbuilder.BitcoinProfile

	// mempool.space serves Bitcoin only.
	if bitcoin {
		url := cfg.MempoolSpaceURL
		if url == "" {
			url = chain.DefaultMempoolSpaceURL
		}

		client, err := chain.NewMempoolSpaceClient(
			&chain.MempoolSpaceConfig{BaseURL: url},
		)
		if err != nil {
			return nil, err
		}
		clients["mempoolspace"] = client
	}

	if cfg.BlockbookURL != "" {
		client, err := chain.NewBlockbookClient(
			&chain.BlockbookConfig{
				BaseURL: cfg.BlockbookURL,
				Name: fmt.Sprintf("blockbook-%s",
					profile.Name),
			},
		)
		if err != nil {
			return nil, err
		}
		clients["blockbook"] = client
	}

	coin := "doge"
	if bitcoin {
		coin = "btc"
	}
	blockCypherURL := cfg.BlockCypherURL
	if blockCypherURL == "" {
		blockCypherURL = chain.DefaultBlockCypherURL
	}
	client, err := chain.NewBlockCypherClient(&chain.BlockCypherConfig{
		BaseURL: blockCypherURL,
		Coin:    coin,
	})
	if err != nil {
		return nil, err
	}
	clients["blockcypher"] = client

	return clients, nil
}

// newBuilder assembles the full fetch-select-assemble pipeline from the
// parsed config: profile, explorer clients, registry, builder.
func newBuilder() (*txbuilder.Builder, *txbuilder.Profile, error) {
	profile, err := activeProfile()
	if err != nil {
		return nil, nil, err
	}

	clients, err := newClients(profile)
	if err != nil {
		return nil, nil, err
	}

	defaultKey := cfg.Provider
	if _, ok := clients[defaultKey]; !ok {
		// The configured default does not serve this chain; fall
		// back to any client that does.
		defaultKey = "blockcypher"
	}

	registry, err := chain.NewRegistry(&chain.RegistryConfig{
		Clients: clients,
		Default: defaultKey,
	})
	if err != nil {
		return nil, nil, err
	}

	builder, err := txbuilder.NewBuilder(&txbuilder.BuilderConfig{
		Profile:  profile,
		Provider: registry,
	})
	if err != nil {
		return nil, nil, err
	}

	return builder, profile, nil
}
