// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mistcoin/mistd/fault"
)

// the default durable backend
//
// bbolt gives exactly the transaction model the ledger relies on: a
// memory-mapped data file, one writable transaction at a time and
// read transactions pinned to the page state at begin
type boltBackend struct {
	path string
	db   *bolt.DB
}

func newBoltBackend(path string) (Backend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
		// pre-size the mmap so a write commit never has to re-map the
		// data file; re-mapping blocks while any read transaction is
		// open, which deadlocks a goroutine that commits a write while
		// holding its own read snapshot
		InitialMmapSize: 1 << 30,
	})
	if nil != err {
		return nil, err
	}

	// make sure all ledger tables exist
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range TableNames {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		db.Close()
		return nil, err
	}

	return &boltBackend{
		path: path,
		db:   db,
	}, nil
}

func (s *boltBackend) Begin(writable bool) (Txn, error) {
	tx, err := s.db.Begin(writable)
	if nil != err {
		return nil, err
	}
	return &boltTxn{tx: tx}, nil
}

func (s *boltBackend) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if nil != err {
		return 0, err
	}
	return info.Size(), nil
}

func (s *boltBackend) Close() error {
	return s.db.Close()
}

type boltTxn struct {
	tx *bolt.Tx
}

func (t *boltTxn) bucket(table string) (*bolt.Bucket, error) {
	b := t.tx.Bucket([]byte(table))
	if nil == b {
		return nil, fault.ErrTableNotFound
	}
	return b, nil
}

func (t *boltTxn) Get(table string, key []byte) ([]byte, error) {
	b, err := t.bucket(table)
	if nil != err {
		return nil, err
	}
	value := b.Get(key)
	if nil == value {
		return nil, nil
	}
	// bbolt values are only valid for the life of the transaction
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (t *boltTxn) Put(table string, key []byte, value []byte) error {
	b, err := t.bucket(table)
	if nil != err {
		return err
	}
	return b.Put(key, value)
}

func (t *boltTxn) Delete(table string, key []byte) error {
	b, err := t.bucket(table)
	if nil != err {
		return err
	}
	return b.Delete(key)
}

func (t *boltTxn) Has(table string, key []byte) (bool, error) {
	b, err := t.bucket(table)
	if nil != err {
		return false, err
	}
	return nil != b.Get(key), nil
}

func (t *boltTxn) Cursor(table string) (Cursor, error) {
	b, err := t.bucket(table)
	if nil != err {
		return nil, err
	}
	return &boltCursor{cursor: b.Cursor()}, nil
}

func (t *boltTxn) Commit() error {
	if !t.tx.Writable() {
		t.Abort()
		return nil
	}
	return t.tx.Commit()
}

func (t *boltTxn) Abort() {
	_ = t.tx.Rollback()
}

type boltCursor struct {
	cursor *bolt.Cursor
}

// copy out of the mmap before returning
func clone(key []byte, value []byte) ([]byte, []byte, bool) {
	if nil == key {
		return nil, nil, false
	}
	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)
	return k, v, true
}

func (c *boltCursor) First() ([]byte, []byte, bool) {
	return clone(c.cursor.First())
}

func (c *boltCursor) Last() ([]byte, []byte, bool) {
	return clone(c.cursor.Last())
}

func (c *boltCursor) Next() ([]byte, []byte, bool) {
	return clone(c.cursor.Next())
}

func (c *boltCursor) Seek(prefix []byte) ([]byte, []byte, bool) {
	return clone(c.cursor.Seek(prefix))
}
