// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/storage"
)

// open one store of each backend kind and run the same checks
func eachBackend(t *testing.T, test func(t *testing.T, store *storage.Store)) {
	configurations := []storage.Config{
		{Backend: storage.MemoryBackend},
		{Backend: storage.BoltBackend, Path: databasePath("test.bolt")},
		{Backend: storage.LevelDBBackend, Path: databasePath("test.leveldb")},
	}

	for _, cfg := range configurations {
		cfg := cfg
		t.Run(cfg.Backend, func(t *testing.T) {
			store, err := storage.Open(cfg)
			if nil != err {
				t.Fatalf("open %s error: %s", cfg.Backend, err)
			}
			defer store.Close()
			test(t, store)
		})
	}
}

// basic get/put/delete/has on every backend
func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	eachBackend(t, func(t *testing.T, store *storage.Store) {
		err := store.Update(func(txn storage.Txn) error {
			return txn.Put(storage.Blocks, []byte("key-one"), []byte("data-one"))
		})
		if nil != err {
			t.Fatalf("update error: %s", err)
		}

		err = store.View(func(txn storage.Txn) error {
			value, err := txn.Get(storage.Blocks, []byte("key-one"))
			if nil != err {
				return err
			}
			if !bytes.Equal([]byte("data-one"), value) {
				t.Errorf("value mismatch: %q", value)
			}

			value, err = txn.Get(storage.Blocks, []byte("no-such-key"))
			if nil != err {
				return err
			}
			if nil != value {
				t.Errorf("unexpected value: %q", value)
			}

			ok, err := txn.Has(storage.Blocks, []byte("key-one"))
			if nil != err {
				return err
			}
			if !ok {
				t.Error("has: missing key-one")
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}

		err = store.Update(func(txn storage.Txn) error {
			return txn.Delete(storage.Blocks, []byte("key-one"))
		})
		if nil != err {
			t.Fatalf("delete error: %s", err)
		}

		err = store.View(func(txn storage.Txn) error {
			ok, err := txn.Has(storage.Blocks, []byte("key-one"))
			if nil != err {
				return err
			}
			if ok {
				t.Error("has: key-one not deleted")
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}
	})
}

// tables must be fully independent keyspaces
func TestTableSeparation(t *testing.T) {
	setup(t)
	defer teardown(t)

	eachBackend(t, func(t *testing.T, store *storage.Store) {
		err := store.Update(func(txn storage.Txn) error {
			if err := txn.Put(storage.Blocks, []byte("k"), []byte("block")); nil != err {
				return err
			}
			return txn.Put(storage.TxOuts, []byte("k"), []byte("txout"))
		})
		if nil != err {
			t.Fatalf("update error: %s", err)
		}

		err = store.View(func(txn storage.Txn) error {
			blockValue, _ := txn.Get(storage.Blocks, []byte("k"))
			txoValue, _ := txn.Get(storage.TxOuts, []byte("k"))
			if !bytes.Equal([]byte("block"), blockValue) {
				t.Errorf("blocks value mismatch: %q", blockValue)
			}
			if !bytes.Equal([]byte("txout"), txoValue) {
				t.Errorf("txouts value mismatch: %q", txoValue)
			}

			ok, _ := txn.Has(storage.KeyImages, []byte("k"))
			if ok {
				t.Error("key leaked into key images table")
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}
	})
}

// cursors iterate in ascending key order and respect Seek
func TestCursorOrdering(t *testing.T) {
	setup(t)
	defer teardown(t)

	eachBackend(t, func(t *testing.T, store *storage.Store) {
		err := store.Update(func(txn storage.Txn) error {
			for _, n := range []uint64{5, 1, 9, 3, 7} {
				err := txn.Put(storage.Blocks, storage.Uint64Key(n), []byte{byte(n)})
				if nil != err {
					return err
				}
			}
			return nil
		})
		if nil != err {
			t.Fatalf("update error: %s", err)
		}

		err = store.View(func(txn storage.Txn) error {
			cursor, err := txn.Cursor(storage.Blocks)
			if nil != err {
				return err
			}

			expected := []uint64{1, 3, 5, 7, 9}
			i := 0
			for key, _, ok := cursor.First(); ok; key, _, ok = cursor.Next() {
				if !bytes.Equal(storage.Uint64Key(expected[i]), key) {
					t.Errorf("position %d: key %x  expected %x", i, key, storage.Uint64Key(expected[i]))
				}
				i += 1
			}
			if len(expected) != i {
				t.Errorf("iterated %d keys, expected %d", i, len(expected))
			}

			key, _, ok := cursor.Last()
			if !ok || !bytes.Equal(storage.Uint64Key(9), key) {
				t.Errorf("last key: %x", key)
			}

			key, _, ok = cursor.Seek(storage.Uint64Key(4))
			if !ok || !bytes.Equal(storage.Uint64Key(5), key) {
				t.Errorf("seek key: %x", key)
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}
	})
}

// an aborted transaction must leave no trace
func TestAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	eachBackend(t, func(t *testing.T, store *storage.Store) {
		txn, err := store.Begin(true)
		if nil != err {
			t.Fatalf("begin error: %s", err)
		}
		err = txn.Put(storage.Blocks, []byte("doomed"), []byte("data"))
		if nil != err {
			t.Fatalf("put error: %s", err)
		}
		txn.Abort()

		err = store.View(func(txn storage.Txn) error {
			ok, _ := txn.Has(storage.Blocks, []byte("doomed"))
			if ok {
				t.Error("aborted write is visible")
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}
	})
}

// a read transaction begun before a commit never sees that commit
func TestSnapshotIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	eachBackend(t, func(t *testing.T, store *storage.Store) {
		err := store.Update(func(txn storage.Txn) error {
			return txn.Put(storage.Blocks, []byte("stable"), []byte("before"))
		})
		if nil != err {
			t.Fatalf("update error: %s", err)
		}

		reader, err := store.Begin(false)
		if nil != err {
			t.Fatalf("begin read error: %s", err)
		}

		err = store.Update(func(txn storage.Txn) error {
			if err := txn.Put(storage.Blocks, []byte("stable"), []byte("after")); nil != err {
				return err
			}
			return txn.Put(storage.Blocks, []byte("fresh"), []byte("new"))
		})
		if nil != err {
			t.Fatalf("update error: %s", err)
		}

		value, err := reader.Get(storage.Blocks, []byte("stable"))
		if nil != err {
			t.Fatalf("get error: %s", err)
		}
		if !bytes.Equal([]byte("before"), value) {
			t.Errorf("snapshot read value: %q  expected: %q", value, "before")
		}

		ok, _ := reader.Has(storage.Blocks, []byte("fresh"))
		if ok {
			t.Error("snapshot read observed a later commit")
		}
		reader.Abort()

		// a fresh read sees the committed state
		err = store.View(func(txn storage.Txn) error {
			value, _ := txn.Get(storage.Blocks, []byte("stable"))
			if !bytes.Equal([]byte("after"), value) {
				t.Errorf("fresh read value: %q  expected: %q", value, "after")
			}
			return nil
		})
		if nil != err {
			t.Fatalf("view error: %s", err)
		}
	})
}

// data must survive close and reopen on the durable backends
func TestPersistence(t *testing.T) {
	setup(t)
	defer teardown(t)

	configurations := []storage.Config{
		{Backend: storage.BoltBackend, Path: databasePath("persist.bolt")},
		{Backend: storage.LevelDBBackend, Path: databasePath("persist.leveldb")},
	}

	for _, cfg := range configurations {
		cfg := cfg
		t.Run(cfg.Backend, func(t *testing.T) {
			store, err := storage.Open(cfg)
			if nil != err {
				t.Fatalf("open error: %s", err)
			}
			err = store.Update(func(txn storage.Txn) error {
				return storage.PutN(txn, storage.Metadata, []byte("n"), 42)
			})
			if nil != err {
				t.Fatalf("update error: %s", err)
			}
			store.Close()

			store, err = storage.Open(cfg)
			if nil != err {
				t.Fatalf("reopen error: %s", err)
			}
			defer store.Close()

			err = store.View(func(txn storage.Txn) error {
				n, ok, err := storage.GetN(txn, storage.Metadata, []byte("n"))
				if nil != err {
					return err
				}
				if !ok || 42 != n {
					t.Errorf("counter after reopen: %d  found: %v", n, ok)
				}
				return nil
			})
			if nil != err {
				t.Fatalf("view error: %s", err)
			}
		})
	}
}

// normal open must refuse a store stamped with an unknown version
func TestVersionMismatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	cfg := storage.Config{Backend: storage.BoltBackend, Path: databasePath("version.bolt")}

	store, err := storage.Open(cfg)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	store.Close()

	// stamp an old version through the privileged interface
	access, err := storage.OpenForMigration(cfg)
	if nil != err {
		t.Fatalf("open for migration error: %s", err)
	}
	err = access.SetVersion(storage.CountersDBVersion)
	if nil != err {
		t.Fatalf("set version error: %s", err)
	}
	access.Close()

	_, err = storage.Open(cfg)
	if fault.ErrDatabaseVersionMismatch != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrDatabaseVersionMismatch)
	}

	// the migration tool can still open it and upgrade
	access, err = storage.OpenForMigration(cfg)
	if nil != err {
		t.Fatalf("open for migration error: %s", err)
	}
	if storage.CountersDBVersion != access.Version() {
		t.Fatalf("version: 0x%x  expected: 0x%x", access.Version(), storage.CountersDBVersion)
	}
	err = access.SetVersion(storage.CurrentDBVersion)
	if nil != err {
		t.Fatalf("set version error: %s", err)
	}
	access.Close()

	store, err = storage.Open(cfg)
	if nil != err {
		t.Fatalf("open after upgrade error: %s", err)
	}
	store.Close()
}

// writes fail once the configured capacity is reached
func TestCapacityLimit(t *testing.T) {
	setup(t)
	defer teardown(t)

	cfg := storage.Config{
		Backend: storage.BoltBackend,
		Path:    databasePath("capacity.bolt"),
		MaxSize: 1, // anything already on disk exceeds this
	}

	store, err := storage.Open(cfg)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer store.Close()

	err = store.Update(func(txn storage.Txn) error {
		return txn.Put(storage.Blocks, []byte("k"), []byte("v"))
	})
	if fault.ErrStorageCapacityExceeded != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrStorageCapacityExceeded)
	}

	// reads must still work
	err = store.View(func(txn storage.Txn) error {
		_, err := txn.Get(storage.Blocks, []byte("k"))
		return err
	})
	if nil != err {
		t.Fatalf("view error: %s", err)
	}
}
