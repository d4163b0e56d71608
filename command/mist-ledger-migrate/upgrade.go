// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/storage"
)

// one upgrade step: transform a database at exactly From to To
type upgradeStep struct {
	from    int
	to      int
	apply   func(access *storage.MigrationAccess) error
	comment string
}

// steps are applied in sequence until the version is current
var upgradeSteps = []upgradeStep{
	{
		from:    storage.CountersDBVersion,
		to:      storage.CurrentDBVersion,
		apply:   rebuildCounters,
		comment: "rebuild the block and txo counters from the stored chain",
	},
}

// upgrade - walk the version chain up to the current version
//
// a store with no version marker at all is simply stamped current: it
// is empty, there is nothing to transform
func upgrade(access *storage.MigrationAccess) error {

	if 0 == access.Version() {
		return access.SetVersion(storage.CurrentDBVersion)
	}

steps:
	for storage.CurrentDBVersion != access.Version() {
		for _, step := range upgradeSteps {
			if step.from == access.Version() {
				fmt.Printf("0x%x -> 0x%x: %s\n", step.from, step.to, step.comment)
				if err := step.apply(access); nil != err {
					return err
				}
				if err := access.SetVersion(step.to); nil != err {
					return err
				}
				continue steps
			}
		}
		return fault.ErrDatabaseVersionMismatch
	}
	return nil
}

// derive the block and txo counters from the chain itself: the count
// of blocks is one past the highest stored index and the txo count is
// the cumulative count carried by the last block header
func rebuildCounters(access *storage.MigrationAccess) error {
	txn, err := access.Begin(true)
	if nil != err {
		return err
	}
	defer txn.Abort()

	cursor, err := txn.Cursor(storage.Blocks)
	if nil != err {
		return err
	}

	blockCount := uint64(0)
	txoCount := uint64(0)

	_, value, ok := cursor.Last()
	if ok {
		packed, err := blockrecord.PackedHeaderFromBytes(value)
		if nil != err {
			return err
		}
		header, err := packed.Unpack()
		if nil != err {
			return err
		}
		blockCount = header.Index + 1
		txoCount = header.CumulativeTxoCount
	}

	if err := storage.PutN(txn, storage.Metadata, storage.BlockCountKey, blockCount); nil != err {
		return err
	}
	if err := storage.PutN(txn, storage.Metadata, storage.TxoCountKey, txoCount); nil != err {
		return err
	}
	return txn.Commit()
}
