// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/mistcoin/mistd/fault"
)

// backend selector names for Config.Backend
const (
	BoltBackend    = "bolt"
	LevelDBBackend = "leveldb"
	MemoryBackend  = "memory"
)

// Config - parameters for opening a store
type Config struct {
	Backend string // bolt, leveldb or memory
	Path    string // database file (bolt) or directory (leveldb)
	MaxSize int64  // capacity limit in bytes; 0 means unlimited
}

// Store - an open, version-checked ledger store
type Store struct {
	backend Backend
	maxSize int64
	log     *logger.L
}

// Open - open or create a store
//
// a newly created store is stamped with the current database version;
// an existing store with any other version is refused - the operator
// must run the migration tool or restore from a known good copy
func Open(cfg Config) (*Store, error) {

	backend, version, err := openBackend(cfg)
	if nil != err {
		return nil, err
	}

	log := logger.New("storage")

	if 0 == version {
		// database was empty so tag as current version
		err = stampVersion(backend, CurrentDBVersion)
		if nil != err {
			backend.Close()
			return nil, err
		}
		log.Infof("created: %q version: 0x%x", cfg.Path, CurrentDBVersion)
	} else if CurrentDBVersion != version {
		log.Criticalf("database version: 0x%x  supported version: 0x%x", version, CurrentDBVersion)
		backend.Close()
		return nil, fault.ErrDatabaseVersionMismatch
	} else {
		log.Infof("opened: %q version: 0x%x", cfg.Path, version)
	}

	return &Store{
		backend: backend,
		maxSize: cfg.MaxSize,
		log:     log,
	}, nil
}

// Begin - start a transaction on the ledger tables
//
// writable transactions are serialized by the backend; beginning one
// while another is active blocks until it finishes
func (s *Store) Begin(writable bool) (Txn, error) {
	if writable && s.maxSize > 0 {
		size, err := s.backend.Size()
		if nil != err {
			return nil, err
		}
		if size >= s.maxSize {
			s.log.Criticalf("capacity exceeded: %d >= %d", size, s.maxSize)
			return nil, fault.ErrStorageCapacityExceeded
		}
	}
	return s.backend.Begin(writable)
}

// View - run a read-only function inside a fresh read transaction
func (s *Store) View(fn func(Txn) error) error {
	txn, err := s.Begin(false)
	if nil != err {
		return err
	}
	defer txn.Abort()
	return fn(txn)
}

// Update - run a function inside a single write transaction
//
// the transaction commits only if fn returns nil, otherwise every
// mutation is discarded
func (s *Store) Update(fn func(Txn) error) error {
	txn, err := s.Begin(true)
	if nil != err {
		return err
	}
	err = fn(txn)
	if nil != err {
		txn.Abort()
		return err
	}
	return txn.Commit()
}

// Close - close the store
func (s *Store) Close() error {
	s.log.Info("closing…")
	s.log.Flush()
	return s.backend.Close()
}

// open the configured backend and read its version marker
//
// a zero version means the store was just created
func openBackend(cfg Config) (Backend, int, error) {
	var backend Backend
	var err error

	switch cfg.Backend {
	case BoltBackend, "":
		backend, err = newBoltBackend(cfg.Path)
	case LevelDBBackend:
		backend, err = newLevelDBBackend(cfg.Path)
	case MemoryBackend:
		backend, err = newMemoryBackend()
	default:
		return nil, 0, fault.ErrInvalidStorageBackend
	}
	if nil != err {
		return nil, 0, err
	}

	version, err := readVersion(backend)
	if nil != err {
		backend.Close()
		return nil, 0, err
	}
	return backend, version, nil
}

// read the version marker; zero if absent
func readVersion(backend Backend) (int, error) {
	txn, err := backend.Begin(false)
	if nil != err {
		return 0, err
	}
	defer txn.Abort()

	buffer, err := txn.Get(Metadata, versionKey)
	if nil != err {
		return 0, err
	}
	if nil == buffer {
		return 0, nil
	}
	if 4 != len(buffer) {
		return 0, fault.ErrCorruptRecord
	}
	return int(binary.BigEndian.Uint32(buffer)), nil
}

// write the version marker
func stampVersion(backend Backend, version int) error {
	txn, err := backend.Begin(true)
	if nil != err {
		return err
	}
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, uint32(version))
	err = txn.Put(Metadata, versionKey, buffer)
	if nil != err {
		txn.Abort()
		return err
	}
	return txn.Commit()
}
