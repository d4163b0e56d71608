// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - the output membership accumulator
//
// A binary SHA3-256 hash tree over every transaction output ever
// appended to the ledger, addressed by txo global index as leaf
// position.  When a level has an odd number of nodes the last node is
// paired with itself.
//
// Only complete subtrees are persisted: once a node's span of leaves
// is fully populated its digest can never change, so the stored part
// of the tree is strictly append-only.  Nodes on the ragged right
// edge depend on the current leaf count and are recomputed on demand,
// which is also what makes historical roots cheap - the root at any
// past leaf count is derived from the same stored nodes.
package merkle
