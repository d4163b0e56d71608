// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the block chain storage engine
//
// A Ledger is constructed over an open storage.Store and provides the
// only write path into the chain: Append, which validates a candidate
// block against the current chain head and commits it atomically.
//
// All read operations run inside a fresh read transaction and see a
// single consistent snapshot of the chain.
package ledger
