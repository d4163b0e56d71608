// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/mistcoin/mistd/chain"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/storage"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultDatabaseDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "mist-ledger.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when log exceeds this size
)

// DatabaseType - where the ledger data files live
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Backend   string `gluamapper:"backend" json:"backend"`
	MaxSize   int64  `gluamapper:"max_size" json:"max_size"`
}

// Configuration - the full ledger tool configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify a configuration file
func GetConfiguration(fileName string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	options := &Configuration{
		DataDirectory: ".",
		Chain:         chain.Mist,
		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Backend:   storage.BoltBackend,
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(fileName, options); nil != err {
		return nil, err
	}

	if !chain.Valid(options.Chain) {
		return nil, fault.ErrInvalidChain
	}
	switch options.Database.Backend {
	case storage.BoltBackend, storage.LevelDBBackend, storage.MemoryBackend:
	default:
		return nil, fault.ErrInvalidStorageBackend
	}

	// relative paths hang off the data directory
	if !filepath.IsAbs(options.DataDirectory) {
		configDirectory, _ := filepath.Split(fileName)
		options.DataDirectory = filepath.Join(configDirectory, options.DataDirectory)
	}
	if !filepath.IsAbs(options.Database.Directory) {
		options.Database.Directory = filepath.Join(options.DataDirectory, options.Database.Directory)
	}
	if !filepath.IsAbs(options.Logging.Directory) {
		options.Logging.Directory = filepath.Join(options.DataDirectory, options.Logging.Directory)
	}

	return options, nil
}

// DatabasePath - the data file for the configured chain
//
// each chain gets its own file so switching chains cannot mix data
func (config *Configuration) DatabasePath() string {
	return filepath.Join(config.Database.Directory, config.Chain+".db")
}

// StorageConfig - the storage open parameters from this configuration
func (config *Configuration) StorageConfig() storage.Config {
	return storage.Config{
		Backend: config.Database.Backend,
		Path:    config.DatabasePath(),
		MaxSize: config.Database.MaxSize,
	}
}
