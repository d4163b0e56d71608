// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/mistcoin/mistd/fault"
)

// alternate backend on LevelDB
//
// LevelDB has no named tables so each table is a single byte key
// prefix ("B" for blocks etc.) over one keyspace.  writes accumulate
// in a batch that is applied atomically at commit; a mutex keeps one
// write transaction active at a time and reads run against snapshots.
type levelDBBackend struct {
	dir     string
	db      *leveldb.DB
	writeMu sync.Mutex
}

func newLevelDBBackend(dir string) (Backend, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if nil != err {
		return nil, err
	}
	return &levelDBBackend{
		dir: dir,
		db:  db,
	}, nil
}

func (s *levelDBBackend) Begin(writable bool) (Txn, error) {
	if writable {
		s.writeMu.Lock()
	}
	snapshot, err := s.db.GetSnapshot()
	if nil != err {
		if writable {
			s.writeMu.Unlock()
		}
		return nil, err
	}
	txn := &levelDBTxn{
		backend:  s,
		snapshot: snapshot,
	}
	if writable {
		txn.batch = new(leveldb.Batch)
		txn.overlay = make(map[string][]byte)
		txn.deleted = make(map[string]struct{})
	}
	return txn, nil
}

func (s *levelDBBackend) Size() (int64, error) {
	var total int64
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

func (s *levelDBBackend) Close() error {
	return s.db.Close()
}

// prepend the table prefix onto a key
func prefixKey(table string, key []byte) ([]byte, error) {
	prefix, ok := tablePrefix[table]
	if !ok {
		return nil, fault.ErrTableNotFound
	}
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = prefix
	return append(prefixedKey, key...), nil
}

type levelDBTxn struct {
	backend  *levelDBBackend
	snapshot *leveldb.Snapshot

	// write transactions only
	batch   *leveldb.Batch
	overlay map[string][]byte   // prefixed key → pending value
	deleted map[string]struct{} // prefixed key → pending delete
}

func (t *levelDBTxn) writable() bool {
	return nil != t.batch
}

func (t *levelDBTxn) Get(table string, key []byte) ([]byte, error) {
	prefixedKey, err := prefixKey(table, key)
	if nil != err {
		return nil, err
	}

	if t.writable() {
		if value, ok := t.overlay[string(prefixedKey)]; ok {
			result := make([]byte, len(value))
			copy(result, value)
			return result, nil
		}
		if _, ok := t.deleted[string(prefixedKey)]; ok {
			return nil, nil
		}
	}

	value, err := t.snapshot.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

func (t *levelDBTxn) Put(table string, key []byte, value []byte) error {
	if !t.writable() {
		return fault.ErrTransactionIsNotWritable
	}
	prefixedKey, err := prefixKey(table, key)
	if nil != err {
		return err
	}
	t.batch.Put(prefixedKey, value)
	stored := make([]byte, len(value))
	copy(stored, value)
	t.overlay[string(prefixedKey)] = stored
	delete(t.deleted, string(prefixedKey))
	return nil
}

func (t *levelDBTxn) Delete(table string, key []byte) error {
	if !t.writable() {
		return fault.ErrTransactionIsNotWritable
	}
	prefixedKey, err := prefixKey(table, key)
	if nil != err {
		return err
	}
	t.batch.Delete(prefixedKey)
	delete(t.overlay, string(prefixedKey))
	t.deleted[string(prefixedKey)] = struct{}{}
	return nil
}

func (t *levelDBTxn) Has(table string, key []byte) (bool, error) {
	value, err := t.Get(table, key)
	if nil != err {
		return false, err
	}
	return nil != value, nil
}

// Cursor - iterate one table in key order
//
// within a write transaction the cursor observes the snapshot taken
// at begin, not the pending writes; the ledger never iterates over
// records it wrote in the same transaction
func (t *levelDBTxn) Cursor(table string) (Cursor, error) {
	prefix, ok := tablePrefix[table]
	if !ok {
		return nil, fault.ErrTableNotFound
	}
	keyRange := ldb_util.Range{
		Start: []byte{prefix},
		Limit: []byte{prefix + 1},
	}
	return &levelDBCursor{
		prefix:   prefix,
		iterator: t.snapshot.NewIterator(&keyRange, nil),
	}, nil
}

func (t *levelDBTxn) Commit() error {
	defer t.release()
	if t.writable() {
		return t.backend.db.Write(t.batch, nil)
	}
	return nil
}

func (t *levelDBTxn) Abort() {
	t.release()
}

func (t *levelDBTxn) release() {
	if nil == t.snapshot {
		return
	}
	t.snapshot.Release()
	t.snapshot = nil
	if t.writable() {
		t.batch = nil
		t.backend.writeMu.Unlock()
	}
}

type levelDBCursor struct {
	prefix   byte
	iterator ldbIterator
}

// the subset of goleveldb's iterator the cursor needs
type ldbIterator interface {
	First() bool
	Last() bool
	Next() bool
	Seek(key []byte) bool
	Key() []byte
	Value() []byte
}

// strip the table prefix and copy out of the iterator's buffers
func (c *levelDBCursor) element(ok bool) ([]byte, []byte, bool) {
	if !ok {
		return nil, nil, false
	}
	rawKey := c.iterator.Key()
	rawValue := c.iterator.Value()

	key := make([]byte, len(rawKey)-1)
	copy(key, rawKey[1:])
	value := make([]byte, len(rawValue))
	copy(value, rawValue)
	return key, value, true
}

func (c *levelDBCursor) First() ([]byte, []byte, bool) {
	return c.element(c.iterator.First())
}

func (c *levelDBCursor) Last() ([]byte, []byte, bool) {
	return c.element(c.iterator.Last())
}

func (c *levelDBCursor) Next() ([]byte, []byte, bool) {
	return c.element(c.iterator.Next())
}

func (c *levelDBCursor) Seek(prefix []byte) ([]byte, []byte, bool) {
	// the sought prefix is within the table so the table byte goes back on
	seekKey := make([]byte, 1, len(prefix)+1)
	seekKey[0] = c.prefix
	seekKey = append(seekKey, prefix...)
	return c.element(c.iterator.Seek(seekKey))
}
