// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - build the origin block of a chain
package genesis

import (
	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
)

// MakeBlock - assemble the index zero block from the initial outputs
//
// the origin block spends nothing so it carries no key images, and
// its parent identifier is all zero
func MakeBlock(txOuts []blockrecord.TxOut) (*blockrecord.Header, *blockrecord.Contents, error) {
	if 0 == len(txOuts) || len(txOuts) > blockrecord.MaximumTxOuts {
		return nil, nil, fault.ErrTransactionCountOutOfRange
	}

	contents := &blockrecord.Contents{
		TxOuts:    txOuts,
		KeyImages: nil,
	}

	header := &blockrecord.Header{
		Version:            blockrecord.Version,
		Index:              0,
		ParentID:           blockdigest.Digest{},
		CumulativeTxoCount: uint64(len(txOuts)),
		ContentsHash:       contents.Pack().Digest(),
	}
	return header, contents, nil
}
