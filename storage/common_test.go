// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
)

// common test setup routines

const testingDirName = "testing"

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// post test cleanup
func teardown(t *testing.T) {
	removeFiles()
}

// remove all files created by a test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// database path inside the testing directory
func databasePath(name string) string {
	return filepath.Join(testingDirName, name)
}
