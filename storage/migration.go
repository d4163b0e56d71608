// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"

	"github.com/mistcoin/mistd/fault"
)

// MigrationAccess - privileged raw access to the store
//
// this is the only path that accepts a database whose version is not
// current and the only path that can rewrite the version marker.  it
// exists solely for the external migration tool; ordinary read/write
// callers go through Open and can never reach it.
type MigrationAccess struct {
	backend Backend
	version int
	log     *logger.L
}

// OpenForMigration - open a store regardless of its version
//
// versions newer than the current one are still refused: this tool
// only upgrades, it never downgrades
func OpenForMigration(cfg Config) (*MigrationAccess, error) {
	backend, version, err := openBackend(cfg)
	if nil != err {
		return nil, err
	}

	log := logger.New("migration")

	if version > CurrentDBVersion {
		log.Criticalf("database version: 0x%x is newer than supported version: 0x%x", version, CurrentDBVersion)
		backend.Close()
		return nil, fault.ErrDatabaseVersionMismatch
	}

	log.Warnf("privileged open: %q version: 0x%x", cfg.Path, version)

	return &MigrationAccess{
		backend: backend,
		version: version,
		log:     log,
	}, nil
}

// Version - the version marker as read at open; zero for a new store
func (m *MigrationAccess) Version() int {
	return m.version
}

// SetVersion - rewrite the version marker
func (m *MigrationAccess) SetVersion(version int) error {
	err := stampVersion(m.backend, version)
	if nil != err {
		return err
	}
	m.log.Warnf("version marker set to: 0x%x", version)
	m.version = version
	return nil
}

// Begin - start a raw transaction over all tables
func (m *MigrationAccess) Begin(writable bool) (Txn, error) {
	return m.backend.Begin(writable)
}

// Close - close the store
func (m *MigrationAccess) Close() error {
	return m.backend.Close()
}
