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
		fmt.Printf("usage: %s [--help] [--version] --config-file=FILE (status|upgrade)\n", program)
		fmt.Printf("       status    report the database version\n")
		fmt.Printf("       upgrade   bring the database to the current version\n")
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

	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	access, err := storage.OpenForMigration(theConfiguration.StorageConfig())
	if nil != err {
		exitwithstatus.Message("%s: cannot open ledger: %q  error: %s", program, theConfiguration.DatabasePath(), err)
	}
	defer access.Close()

	switch arguments[0] {

	case "status":
		fmt.Printf("database: %q\n", theConfiguration.DatabasePath())
		fmt.Printf("version:  0x%x\n", access.Version())
		fmt.Printf("current:  0x%x\n", storage.CurrentDBVersion)
		if storage.CurrentDBVersion == access.Version() {
			fmt.Printf("status:   up to date\n")
		} else {
			fmt.Printf("status:   upgrade required\n")
		}

	case "upgrade":
		if err := upgrade(access); nil != err {
			exitwithstatus.Message("%s: upgrade failed, error: %s", program, err)
		}
		fmt.Printf("database is at version 0x%x\n", access.Version())

	default:
		exitwithstatus.Message("%s: unknown command: %q", program, arguments[0])
	}
}
