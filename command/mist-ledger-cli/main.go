// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/mistcoin/mistd/configuration"
	"github.com/mistcoin/mistd/ledger"
	"github.com/mistcoin/mistd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		printUsage(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	store, err := storage.Open(theConfiguration.StorageConfig())
	if nil != err {
		exitwithstatus.Message("%s: cannot open ledger: %q  error: %s", program, theConfiguration.DatabasePath(), err)
	}
	defer store.Close()

	if err := processCommand(ledger.New(store), arguments); nil != err {
		exitwithstatus.Message("%s: %s command failed, error: %s", program, arguments[0], err)
	}
}

func printUsage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--version] --config-file=FILE command [args]\n", program)
	fmt.Printf("       --help             -h            print this message\n")
	fmt.Printf("       --verbose          -v            more messages\n")
	fmt.Printf("       --version          -V            display version and exit\n")
	fmt.Printf("       --config-file=FILE -c FILE       the configuration file\n")
	fmt.Printf("commands:\n")
	fmt.Printf("       info                             chain summary\n")
	fmt.Printf("       block INDEX                      dump one block header and contents\n")
	fmt.Printf("       txo GLOBAL-INDEX                 dump one transaction output\n")
	fmt.Printf("       proof GLOBAL-INDEX BLOCK         membership proof as of a block\n")
	fmt.Printf("       spent KEY-IMAGE-HEX              key image spend status\n")
}
