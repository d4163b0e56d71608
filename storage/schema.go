// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// names of the ledger tables
const (
	Blocks     = "blocks"     // block index → packed block header
	Contents   = "contents"   // block index → packed block contents
	Signatures = "signatures" // block index → packed signatures
	TxOuts     = "txouts"     // txo global index → packed txout
	KeyImages  = "keyimages"  // key image → spent in block index
	Merkle     = "merkle"     // level ‖ node index → digest
	Metadata   = "metadata"   // version marker, counters
)

// TableNames - all tables created at open, in a fixed order
var TableNames = []string{
	Blocks,
	Contents,
	Signatures,
	TxOuts,
	KeyImages,
	Merkle,
	Metadata,
}

// for the database version marker in the metadata table
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// layout of the metadata table: counters maintained by the block
// writer, rebuilt by the migration tool when absent
var (
	BlockCountKey = []byte{0x00, 'B', 'L', 'O', 'C', 'K', 'S'}
	TxoCountKey   = []byte{0x00, 'T', 'X', 'O', 'U', 'T', 'S'}
)

// database versions
const (
	// CurrentDBVersion - the only version Open accepts
	CurrentDBVersion = 0x102

	// CountersDBVersion - before this version the block and txo
	// counters were not persisted and must be rebuilt by the
	// migration tool
	CountersDBVersion = 0x101
)

// table prefixes for backends without native named tables
//
// note these are part of the on-disk format and must never change
var tablePrefix = map[string]byte{
	Blocks:     'B',
	Contents:   'C',
	Signatures: 'S',
	TxOuts:     'T',
	KeyImages:  'K',
	Merkle:     'M',
	Metadata:   'D',
}
