// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"
	"sync"

	"github.com/mistcoin/mistd/fault"
)

// non-durable backend for tests
//
// snapshot isolation comes from never mutating a published table map:
// a commit builds fresh maps for the tables it touched and swaps the
// whole set in one step, so read transactions keep the map set they
// grabbed at begin
type memoryBackend struct {
	mu      sync.RWMutex // guards current
	writeMu sync.Mutex   // serializes write transactions
	current map[string]map[string][]byte
}

func newMemoryBackend() (Backend, error) {
	current := make(map[string]map[string][]byte)
	for _, name := range TableNames {
		current[name] = make(map[string][]byte)
	}
	return &memoryBackend{current: current}, nil
}

func (s *memoryBackend) snapshot() map[string]map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *memoryBackend) Begin(writable bool) (Txn, error) {
	if writable {
		s.writeMu.Lock()
	}
	txn := &memoryTxn{
		backend: s,
		view:    s.snapshot(),
	}
	if writable {
		txn.overlay = make(map[string]map[string][]byte)
		txn.deleted = make(map[string]map[string]struct{})
	}
	return txn, nil
}

func (s *memoryBackend) Size() (int64, error) {
	var total int64
	for _, table := range s.snapshot() {
		for key, value := range table {
			total += int64(len(key) + len(value))
		}
	}
	return total, nil
}

func (s *memoryBackend) Close() error {
	return nil
}

type memoryTxn struct {
	backend *memoryBackend
	view    map[string]map[string][]byte

	// write transactions only
	overlay map[string]map[string][]byte
	deleted map[string]map[string]struct{}
}

func (t *memoryTxn) writable() bool {
	return nil != t.overlay
}

func (t *memoryTxn) table(name string) (map[string][]byte, error) {
	table, ok := t.view[name]
	if !ok {
		return nil, fault.ErrTableNotFound
	}
	return table, nil
}

func (t *memoryTxn) Get(name string, key []byte) ([]byte, error) {
	table, err := t.table(name)
	if nil != err {
		return nil, err
	}

	if t.writable() {
		if value, ok := t.overlay[name][string(key)]; ok {
			return append([]byte(nil), value...), nil
		}
		if _, ok := t.deleted[name][string(key)]; ok {
			return nil, nil
		}
	}

	value, ok := table[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (t *memoryTxn) Put(name string, key []byte, value []byte) error {
	if !t.writable() {
		return fault.ErrTransactionIsNotWritable
	}
	if _, err := t.table(name); nil != err {
		return err
	}
	if nil == t.overlay[name] {
		t.overlay[name] = make(map[string][]byte)
		t.deleted[name] = make(map[string]struct{})
	}
	t.overlay[name][string(key)] = append([]byte(nil), value...)
	delete(t.deleted[name], string(key))
	return nil
}

func (t *memoryTxn) Delete(name string, key []byte) error {
	if !t.writable() {
		return fault.ErrTransactionIsNotWritable
	}
	if _, err := t.table(name); nil != err {
		return err
	}
	if nil == t.overlay[name] {
		t.overlay[name] = make(map[string][]byte)
		t.deleted[name] = make(map[string]struct{})
	}
	delete(t.overlay[name], string(key))
	t.deleted[name][string(key)] = struct{}{}
	return nil
}

func (t *memoryTxn) Has(name string, key []byte) (bool, error) {
	value, err := t.Get(name, key)
	if nil != err {
		return false, err
	}
	return nil != value, nil
}

func (t *memoryTxn) Cursor(name string) (Cursor, error) {
	table, err := t.table(name)
	if nil != err {
		return nil, err
	}

	merged := make(map[string][]byte, len(table))
	for key, value := range table {
		merged[key] = value
	}
	if t.writable() {
		for key := range t.deleted[name] {
			delete(merged, key)
		}
		for key, value := range t.overlay[name] {
			merged[key] = value
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &memoryCursor{
		keys:     keys,
		values:   merged,
		position: -1,
	}, nil
}

func (t *memoryTxn) Commit() error {
	if !t.writable() {
		return nil
	}

	next := make(map[string]map[string][]byte, len(t.view))
	for name, table := range t.view {
		if nil == t.overlay[name] {
			next[name] = table
			continue
		}
		replacement := make(map[string][]byte, len(table)+len(t.overlay[name]))
		for key, value := range table {
			replacement[key] = value
		}
		for key := range t.deleted[name] {
			delete(replacement, key)
		}
		for key, value := range t.overlay[name] {
			replacement[key] = value
		}
		next[name] = replacement
	}

	t.backend.mu.Lock()
	t.backend.current = next
	t.backend.mu.Unlock()

	t.overlay = nil
	t.deleted = nil
	t.backend.writeMu.Unlock()
	return nil
}

func (t *memoryTxn) Abort() {
	if !t.writable() {
		return
	}
	t.overlay = nil
	t.deleted = nil
	t.backend.writeMu.Unlock()
}

type memoryCursor struct {
	keys     []string
	values   map[string][]byte
	position int
}

func (c *memoryCursor) element(position int) ([]byte, []byte, bool) {
	if position < 0 || position >= len(c.keys) {
		c.position = len(c.keys) // exhausted
		return nil, nil, false
	}
	c.position = position
	key := c.keys[position]
	value := c.values[key]
	return []byte(key), append([]byte(nil), value...), true
}

func (c *memoryCursor) First() ([]byte, []byte, bool) {
	return c.element(0)
}

func (c *memoryCursor) Last() ([]byte, []byte, bool) {
	return c.element(len(c.keys) - 1)
}

func (c *memoryCursor) Next() ([]byte, []byte, bool) {
	return c.element(c.position + 1)
}

func (c *memoryCursor) Seek(prefix []byte) ([]byte, []byte, bool) {
	target := string(prefix)
	position := sort.SearchStrings(c.keys, target)
	return c.element(position)
}
