// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/mistcoin/mistd/fault"
)

// Backend - the minimal contract an embedded key-value store must
// provide to hold the ledger
type Backend interface {

	// Begin - start a transaction
	//
	// at most one writable transaction is active at any instant;
	// beginning a second one blocks until the first commits or
	// aborts.  read transactions never block and observe the state
	// committed at the time they began.
	Begin(writable bool) (Txn, error)

	// Size - approximate bytes used by the store
	Size() (int64, error)

	// Close - release the store; no transactions may be in flight
	Close() error
}

// Txn - a transaction over the named tables
//
// values returned by Get are copies and remain valid after the
// transaction ends
type Txn interface {
	Get(table string, key []byte) ([]byte, error) // nil value if key absent
	Put(table string, key []byte, value []byte) error
	Delete(table string, key []byte) error
	Has(table string, key []byte) (bool, error)
	Cursor(table string) (Cursor, error)
	Commit() error
	Abort()
}

// Cursor - ordered iteration over one table in ascending key order
type Cursor interface {
	First() (key []byte, value []byte, ok bool)
	Last() (key []byte, value []byte, ok bool)
	Next() (key []byte, value []byte, ok bool)
	Seek(prefix []byte) (key []byte, value []byte, ok bool)
}

// PutN - store a big endian uint64 under a key
func PutN(txn Txn, table string, key []byte, value uint64) error {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return txn.Put(table, key, buffer)
}

// GetN - read a big endian uint64 record
//
// second return is false if the record was not found
func GetN(txn Txn, table string, key []byte) (uint64, bool, error) {
	buffer, err := txn.Get(table, key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if 8 != len(buffer) {
		return 0, false, fault.ErrCorruptRecord
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

// Uint64Key - render a uint64 as a big endian table key
func Uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}
