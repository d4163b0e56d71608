// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - embedded transactional key-value store for the ledger
//
// The ledger only needs a small contract from its store: named tables,
// one serialized write transaction at a time, snapshot isolated read
// transactions and ordered iteration by key.  That contract is the
// Backend interface; the engine never talks to a concrete database
// directly so the whole engine can run against the in-memory backend
// in tests.
//
// Three backends are provided:
//
//	bolt    - the default durable store (memory-mapped, single writer)
//	leveldb - alternate store, tables emulated by single byte key prefixes
//	memory  - non-durable, for tests
//
// A database version marker is kept in the metadata table.  Open
// refuses any store whose version is not the current one; older
// stores must be upgraded by the external migration tool which is the
// only caller of OpenForMigration.
package storage
